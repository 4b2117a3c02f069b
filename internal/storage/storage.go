// Package storage provides the game.Store backends: JSON and TOML files
// and a SQLite key/value table.
package storage

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"pocketpal/internal/game"
)

// Backend names
const (
	BackendJSON   = "json"
	BackendTOML   = "toml"
	BackendSQLite = "sqlite"
)

// Backends lists the accepted backend names
var Backends = []string{BackendJSON, BackendTOML, BackendSQLite}

// DefaultDir returns ~/.config/pocketpal, or a relative fallback when the
// home directory is unknown
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Printf("Error getting home directory: %v", err)
		return ".pocketpal"
	}
	return filepath.Join(home, ".config", "pocketpal")
}

// Open creates the store for backend rooted at dir. An empty dir means
// DefaultDir.
func Open(backend, dir string) (game.Store, error) {
	if strings.TrimSpace(dir) == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendJSON:
		return NewJSONStore(dir), nil
	case BackendTOML:
		return NewTOMLStore(dir), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "pocketpal.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want one of %s)", backend, strings.Join(Backends, ", "))
	}
}

// writeFileAtomic writes data next to path and renames it into place so a
// crash never leaves a half-written record
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename state file: %w", err)
	}
	return nil
}

// validKey rejects keys that would escape the storage directory
func validKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("storage key is required")
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}
