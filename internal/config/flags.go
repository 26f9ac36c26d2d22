package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/traveljournal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-b string     storage backend: sqlite, bolt, redis or memory
//	-d string     database file for sqlite and bolt
//	-k string     storage key of the state blob
//	-t duration   rehydration timeout, e.g. 3s
//	-l string     log level: debug, info, warn or error
//
// Other arguments are filtered out with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-b", "-d", "-k", "-t", "-l"})

	fs := flag.NewFlagSet("journal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.Backend, "b", cfg.Backend, "storage backend (sqlite, bolt, redis, memory)")
	fs.StringVar(&cfg.DSN, "d", cfg.DSN, "database file for sqlite and bolt")
	fs.StringVar(&cfg.StorageKey, "k", cfg.StorageKey, "storage key of the state blob")
	fs.DurationVar(&cfg.RehydrateTimeout, "t", cfg.RehydrateTimeout, "rehydration timeout")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
