// Package game holds the persisted game record and the container that owns
// it. All mutations go through a Container so there is a single writer.
package game

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"

	"pocketpal/internal/pet"
	"pocketpal/internal/species"
)

// DefaultKey is the storage key the game record lives under
const DefaultKey = "pocket-pal-state"

// Themes
const (
	ThemeClassic = "classic"
	ThemeNight   = "night"
)

// ErrNoState is returned by a Store when nothing has been saved under a key
var ErrNoState = errors.New("no saved state")

// Store persists the game record
type Store interface {
	Load(ctx context.Context, key string) (State, error)
	Save(ctx context.Context, key string, s State) error
	Close() error
}

// DexEntry records whether a species has been seen and caught
type DexEntry struct {
	Seen   bool `json:"seen" toml:"seen"`
	Caught bool `json:"caught" toml:"caught"`
}

// State is the complete persisted game record. Timestamps are epoch
// milliseconds.
type State struct {
	Companion      pet.Companion    `json:"companion"`
	Dex            map[int]DexEntry `json:"pokedex"`
	Inventory      map[string]int   `json:"inventory"`
	LastInteracted int64            `json:"lastInteracted"`
	LastFed        int64            `json:"lastFed"`
	LastTrained    int64            `json:"lastTrained"`
	Theme          string           `json:"theme"`
	SoundEnabled   bool             `json:"soundEnabled"`
}

// DefaultState builds a new game: the catalog's starter at the baseline
// level, a dex with every species and only the starter seen and caught, the
// default inventory, all timestamps at now, classic theme and sound off.
func DefaultState(catalog *species.Catalog, rng pet.NatureSource, now time.Time) State {
	starter := catalog.Starter()
	ts := now.UnixMilli()

	dex := make(map[int]DexEntry, catalog.Len())
	for _, s := range catalog.All() {
		dex[s.ID] = DexEntry{}
	}
	dex[starter.ID] = DexEntry{Seen: true, Caught: true}

	return State{
		Companion:      pet.NewCompanion(starter, pet.RandomNature(rng)),
		Dex:            dex,
		Inventory:      pet.DefaultInventory(),
		LastInteracted: ts,
		LastFed:        ts,
		LastTrained:    ts,
		Theme:          ThemeClassic,
		SoundEnabled:   false,
	}
}

// Clone returns a deep copy
func (s State) Clone() State {
	s.Dex = maps.Clone(s.Dex)
	s.Inventory = maps.Clone(s.Inventory)
	return s
}

// CaughtIDs lists the caught species in ascending id order
func (s State) CaughtIDs() []int {
	var ids []int
	for id, e := range s.Dex {
		if e.Caught {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// DexCounts returns how many species have been seen and caught
func (s State) DexCounts() (seen, caught int) {
	for _, e := range s.Dex {
		if e.Seen {
			seen++
		}
		if e.Caught {
			caught++
		}
	}
	return seen, caught
}

// Normalize repairs a record read from storage: missing dex entries and
// inventory items are filled in, counts and gauges are clamped, and derived
// fields are recomputed. It reports false when the record cannot be
// repaired, which is the case when its companion species is unknown.
func Normalize(s State, catalog *species.Catalog) (State, bool) {
	if _, ok := catalog.Lookup(s.Companion.SpeciesID); !ok {
		return s, false
	}
	s = s.Clone()
	s.Companion = pet.Normalize(s.Companion, catalog)

	if s.Dex == nil {
		s.Dex = make(map[int]DexEntry, catalog.Len())
	}
	for _, sp := range catalog.All() {
		e := s.Dex[sp.ID]
		if e.Caught {
			e.Seen = true
		}
		s.Dex[sp.ID] = e
	}
	for id := range s.Dex {
		if _, ok := catalog.Lookup(id); !ok {
			delete(s.Dex, id)
		}
	}
	s.Dex[s.Companion.SpeciesID] = DexEntry{Seen: true, Caught: true}

	if s.Inventory == nil {
		s.Inventory = pet.DefaultInventory()
	}
	for item, n := range s.Inventory {
		s.Inventory[item] = max(n, 0)
	}

	if s.Theme != ThemeNight {
		s.Theme = ThemeClassic
	}
	return s, true
}
