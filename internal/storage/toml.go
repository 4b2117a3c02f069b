package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"pocketpal/internal/game"
	"pocketpal/internal/pet"
)

// TOMLStore keeps each record in <dir>/<key>.toml
type TOMLStore struct {
	dir string
}

// NewTOMLStore returns a store rooted at dir
func NewTOMLStore(dir string) *TOMLStore {
	return &TOMLStore{dir: dir}
}

// tomlState mirrors game.State with string dex keys, since TOML tables are
// keyed by strings
type tomlState struct {
	Companion      pet.Companion            `toml:"companion"`
	Dex            map[string]game.DexEntry `toml:"pokedex"`
	Inventory      map[string]int           `toml:"inventory"`
	LastInteracted int64                    `toml:"lastInteracted"`
	LastFed        int64                    `toml:"lastFed"`
	LastTrained    int64                    `toml:"lastTrained"`
	Theme          string                   `toml:"theme"`
	SoundEnabled   bool                     `toml:"soundEnabled"`
}

// Path returns the file a key is stored in
func (s *TOMLStore) Path(key string) string {
	return filepath.Join(s.dir, key+".toml")
}

// Load reads the record saved under key
func (s *TOMLStore) Load(ctx context.Context, key string) (game.State, error) {
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

	var ts tomlState
	if err := toml.Unmarshal(data, &ts); err != nil {
		return game.State{}, fmt.Errorf("parse state file: %w", err)
	}

	st := game.State{
		Companion:      ts.Companion,
		Dex:            make(map[int]game.DexEntry, len(ts.Dex)),
		Inventory:      ts.Inventory,
		LastInteracted: ts.LastInteracted,
		LastFed:        ts.LastFed,
		LastTrained:    ts.LastTrained,
		Theme:          ts.Theme,
		SoundEnabled:   ts.SoundEnabled,
	}
	for k, e := range ts.Dex {
		id, err := strconv.Atoi(k)
		if err != nil {
			return game.State{}, fmt.Errorf("parse dex key %q: %w", k, err)
		}
		st.Dex[id] = e
	}
	return st, nil
}

// Save writes the record under key
func (s *TOMLStore) Save(ctx context.Context, key string, st game.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validKey(key); err != nil {
		return err
	}

	ts := tomlState{
		Companion:      st.Companion,
		Dex:            make(map[string]game.DexEntry, len(st.Dex)),
		Inventory:      st.Inventory,
		LastInteracted: st.LastInteracted,
		LastFed:        st.LastFed,
		LastTrained:    st.LastTrained,
		Theme:          st.Theme,
		SoundEnabled:   st.SoundEnabled,
	}
	for id, e := range st.Dex {
		ts.Dex[strconv.Itoa(id)] = e
	}

	data, err := toml.Marshal(ts)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	return writeFileAtomic(s.Path(key), data)
}

// Close is a no-op
func (s *TOMLStore) Close() error { return nil }

var _ game.Store = (*TOMLStore)(nil)
