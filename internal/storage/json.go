package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"pocketpal/internal/game"
)

// JSONStore keeps each record in <dir>/<key>.json
type JSONStore struct {
	dir string
}

// NewJSONStore returns a store rooted at dir
func NewJSONStore(dir string) *JSONStore {
	return &JSONStore{dir: dir}
}

// Path returns the file a key is stored in
func (s *JSONStore) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads the record saved under key
func (s *JSONStore) Load(ctx context.Context, key string) (game.State, error) {
	if err := ctx.Err(); err != nil {
		return game.State{}, err
	}
	if err := validKey(key); err != nil {
		return game.State{}, err
	}

	data, err := os.ReadFile(s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return game.State{}, game.ErrNoState
	}
	if err != nil {
		return game.State{}, fmt.Errorf("read state file: %w", err)
	}
	return decodeJSON(data)
}

// Save writes the record under key
func (s *JSONStore) Save(ctx context.Context, key string, st game.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validKey(key); err != nil {
		return err
	}

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return writeFileAtomic(s.Path(key), data)
}

// Close is a no-op
func (s *JSONStore) Close() error { return nil }

func decodeJSON(data []byte) (game.State, error) {
	var st game.State
	if err := json.Unmarshal(data, &st); err != nil {
		return game.State{}, fmt.Errorf("parse state: %w", err)
	}
	return st, nil
}

var _ game.Store = (*JSONStore)(nil)
