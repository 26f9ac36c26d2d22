// Package kvtest holds a behavioural test suite shared by every kv backend.
package kvtest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Storage mirrors kv.Storage; kept local so backend packages can use this
// suite from internal tests without an import cycle.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, keys ...string) error
	Close() error
}

// Run exercises the Storage contract. newStorage must return an empty,
// independent store for each call.
func Run(t *testing.T, newStorage func(t *testing.T) Storage) {
	t.Helper()
	ctx := context.Background()

	t.Run("get absent returns nil nil", func(t *testing.T) {
		s := newStorage(t)
		v, err := s.Get(ctx, "absent")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("set then get", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.Set(ctx, "persist:root", []byte(`{"version":1}`)))

		v, err := s.Get(ctx, "persist:root")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"version":1}`), v)
	})

	t.Run("set overwrites in full", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.Set(ctx, "k", []byte("a much longer old value")))
		require.NoError(t, s.Set(ctx, "k", []byte("new")))

		v, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("new"), v)
	})

	t.Run("returned value is a copy", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.Set(ctx, "k", []byte("abc")))

		v, err := s.Get(ctx, "k")
		require.NoError(t, err)
		v[0] = 'z'

		again, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})

	t.Run("remove several keys", func(t *testing.T) {
		s := newStorage(t)
		for _, k := range []string{"userName", "userEmail", "profileImage", "keep"} {
			require.NoError(t, s.Set(ctx, k, []byte(k)))
		}

		require.NoError(t, s.Remove(ctx, "userName", "userEmail", "profileImage"))

		for _, k := range []string{"userName", "userEmail", "profileImage"} {
			v, err := s.Get(ctx, k)
			require.NoError(t, err)
			assert.Nil(t, v, k)
		}
		v, err := s.Get(ctx, "keep")
		require.NoError(t, err)
		assert.Equal(t, []byte("keep"), v)
	})

	t.Run("remove absent and empty is not an error", func(t *testing.T) {
		s := newStorage(t)
		require.NoError(t, s.Remove(ctx, "never-set"))
		require.NoError(t, s.Remove(ctx))
	})
}
