package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/traveljournal/internal/flagx"
	"github.com/dmitrijs2005/traveljournal/internal/timex"
)

// fileConfig is a DTO used only for decoding config files. Durations go
// through timex.Duration so files can say "3s". Absent fields stay nil and
// do not override earlier values.
type fileConfig struct {
	Backend          *string         `json:"backend" yaml:"backend"`
	DSN              *string         `json:"dsn" yaml:"dsn"`
	RedisAddr        *string         `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword    *string         `json:"redis_password" yaml:"redis_password"`
	RedisDB          *int            `json:"redis_db" yaml:"redis_db"`
	RedisPrefix      *string         `json:"redis_prefix" yaml:"redis_prefix"`
	StorageKey       *string         `json:"storage_key" yaml:"storage_key"`
	RehydrateTimeout *timex.Duration `json:"rehydrate_timeout" yaml:"rehydrate_timeout"`
	PersistDebounce  *timex.Duration `json:"persist_debounce" yaml:"persist_debounce"`
	Whitelist        []string        `json:"whitelist" yaml:"whitelist"`
	LogLevel         *string         `json:"log_level" yaml:"log_level"`
	LogFormat        *string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays Config with the file named by -c or -config. Files
// ending in .yaml or .yml are YAML; anything else is JSON.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setString(&cfg.Backend, fc.Backend)
	setString(&cfg.DSN, fc.DSN)
	setString(&cfg.RedisAddr, fc.RedisAddr)
	setString(&cfg.RedisPassword, fc.RedisPassword)
	setString(&cfg.RedisPrefix, fc.RedisPrefix)
	setString(&cfg.StorageKey, fc.StorageKey)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)

	if fc.RedisDB != nil {
		cfg.RedisDB = *fc.RedisDB
	}
	if fc.RehydrateTimeout != nil {
		cfg.RehydrateTimeout = fc.RehydrateTimeout.Duration
	}
	if fc.PersistDebounce != nil {
		cfg.PersistDebounce = fc.PersistDebounce.Duration
	}
	if fc.Whitelist != nil {
		cfg.Whitelist = fc.Whitelist
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
