package config

import (
	"time"

	"github.com/dmitrijs2005/traveljournal/internal/kv"
	"github.com/dmitrijs2005/traveljournal/internal/persist"
)

// Config holds runtime settings for the journal client.
//
// Units: RehydrateTimeout and PersistDebounce are time.Duration values.
type Config struct {
	Backend          string        `env:"JOURNAL_BACKEND"`
	DSN              string        `env:"JOURNAL_DSN"`
	RedisAddr        string        `env:"JOURNAL_REDIS_ADDR"`
	RedisPassword    string        `env:"JOURNAL_REDIS_PASSWORD"`
	RedisDB          int           `env:"JOURNAL_REDIS_DB"`
	RedisPrefix      string        `env:"JOURNAL_REDIS_PREFIX"`
	StorageKey       string        `env:"JOURNAL_STORAGE_KEY"`
	RehydrateTimeout time.Duration `env:"JOURNAL_REHYDRATE_TIMEOUT"`
	PersistDebounce  time.Duration `env:"JOURNAL_PERSIST_DEBOUNCE"`
	Whitelist        []string      `env:"JOURNAL_WHITELIST" envSeparator:","`
	LogLevel         string        `env:"JOURNAL_LOG_LEVEL"`
	LogFormat        string        `env:"JOURNAL_LOG_FORMAT"`
}

// LoadDefaults populates c with defaults for a local sqlite journal.
func (c *Config) LoadDefaults() {
	c.Backend = kv.BackendSQLite
	c.DSN = "journal.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "traveljournal:"
	c.StorageKey = persist.DefaultKey
	c.RehydrateTimeout = persist.DefaultRehydrateTimeout
	c.PersistDebounce = 0
	c.Whitelist = nil
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// LoadConfig builds a Config from defaults, then an optional config file,
// then JOURNAL_* environment variables, then command-line flags. Later
// sources win. args excludes the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}

// KV returns the storage settings.
func (c *Config) KV() kv.Config {
	return kv.Config{
		Backend:       c.Backend,
		DSN:           c.DSN,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
		RedisPrefix:   c.RedisPrefix,
	}
}

// Persist returns the persistence settings.
func (c *Config) Persist() persist.Config {
	return persist.Config{
		Key:              c.StorageKey,
		Whitelist:        c.Whitelist,
		RehydrateTimeout: c.RehydrateTimeout,
		Debounce:         c.PersistDebounce,
	}
}
