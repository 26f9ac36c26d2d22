// Package filex holds small filesystem helpers for file-backed storage.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirPerm is the mode of directories created for database files.
const DirPerm = 0o700

// DBPath strips the "file:" scheme and query string from a SQLite style
// DSN. It returns "" for in-memory databases.
func DBPath(dsn string) string {
	p := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	if p == "" || p == ":memory:" {
		return ""
	}
	return p
}

// EnsureParentDir creates the directory that will hold the database file
// named by dsn and returns the cleaned file path. In-memory DSNs are
// left alone and yield "".
func EnsureParentDir(dsn string) (string, error) {
	path := DBPath(dsn)
	if path == "" {
		return "", nil
	}
	path = filepath.Clean(path)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return path, nil
}
