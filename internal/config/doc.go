// Package config loads runtime configuration for the journal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config.
//  3. JOURNAL_* environment variables.
//  4. Command-line flags -b, -d, -k, -t and -l.
//
// # File schema
//
// Durations accept strings like "3s" or integer nanoseconds:
//
//	backend: bolt
//	dsn: /var/lib/journal/journal.bolt
//	storage_key: persist:root
//	rehydrate_timeout: 3s
//	persist_debounce: 250ms
//	whitelist: [session, journal]
//	log_level: info
//	log_format: json
//
// # Environment
//
//	JOURNAL_BACKEND, JOURNAL_DSN, JOURNAL_REDIS_ADDR, JOURNAL_REDIS_PASSWORD,
//	JOURNAL_REDIS_DB, JOURNAL_REDIS_PREFIX, JOURNAL_STORAGE_KEY,
//	JOURNAL_REHYDRATE_TIMEOUT, JOURNAL_PERSIST_DEBOUNCE,
//	JOURNAL_WHITELIST (comma separated), JOURNAL_LOG_LEVEL, JOURNAL_LOG_FORMAT
package config
