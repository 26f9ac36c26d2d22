// Package kv defines the durable key-value capability the persistence layer
// relies on, and opens one of the available backends by name.
//
// # Contract
//
//   - Get returns (nil, nil) when the key is absent.
//   - Set overwrites any previous value in full.
//   - Remove deletes every given key; absent keys are not an error.
//
// Backends
//
//   - sqlite: modernc.org/sqlite file database with goose migrations (default)
//   - bolt:   go.etcd.io/bbolt single-file store
//   - redis:  redis/go-redis client with a key prefix
//   - memory: process-local map, lost on exit
package kv

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/traveljournal/internal/kv/boltkv"
	"github.com/dmitrijs2005/traveljournal/internal/kv/memkv"
	"github.com/dmitrijs2005/traveljournal/internal/kv/rediskv"
	"github.com/dmitrijs2005/traveljournal/internal/kv/sqlitekv"
)

// Storage is a durable key-value store.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, keys ...string) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config selects and configures a backend.
type Config struct {
	Backend string
	// DSN is the database file path for sqlite and bolt.
	DSN           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open connects to the configured backend. An empty Backend means sqlite.
func Open(ctx context.Context, cfg Config) (Storage, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendSQLite:
		return sqlitekv.Open(ctx, cfg.DSN)
	case BackendBolt, "bbolt":
		return boltkv.Open(cfg.DSN)
	case BackendRedis:
		return rediskv.Open(ctx, rediskv.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   cfg.RedisPrefix,
		})
	case BackendMemory:
		return memkv.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
