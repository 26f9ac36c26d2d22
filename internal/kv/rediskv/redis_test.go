package rediskv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/traveljournal/internal/kv/kvtest"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	s, err := Open(context.Background(), Options{Addr: srv.Addr(), Prefix: "test:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, srv
}

func TestContract(t *testing.T) {
	kvtest.Run(t, func(t *testing.T) kvtest.Storage {
		s, _ := newTestStore(t)
		return s
	})
}

func TestKeysArePrefixed(t *testing.T) {
	s, srv := newTestStore(t)

	require.NoError(t, s.Set(context.Background(), "persist:root", []byte("blob")))

	got, err := srv.Get("test:persist:root")
	require.NoError(t, err)
	assert.Equal(t, "blob", got)
	assert.False(t, srv.Exists("persist:root"))
}

func TestNew_DefaultPrefix(t *testing.T) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	s := New(client, "")
	defer s.Close()

	require.NoError(t, s.Set(context.Background(), "k", []byte("v")))
	assert.True(t, srv.Exists("traveljournal:k"))
}

func TestOpen_Unreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	_, err := Open(context.Background(), Options{Addr: addr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping redis")
}

func TestOpen_RequiresAddr(t *testing.T) {
	_, err := Open(context.Background(), Options{})
	require.Error(t, err)
}

func TestGet_ServerErrorWrapped(t *testing.T) {
	s, srv := newTestStore(t)
	srv.SetError("LOADING Redis is loading the dataset in memory")

	_, err := s.Get(context.Background(), "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get kv[k]")
}
