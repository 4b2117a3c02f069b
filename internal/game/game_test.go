package game

import (
	"context"
	"errors"
	"io"
	"log"
	"math/rand"
	"os"
	"sync"
	"testing"
	"time"

	"pocketpal/internal/pet"
	"pocketpal/internal/species"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

var baseTime = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// memStore is an in-memory Store that records saves
type memStore struct {
	mu      sync.Mutex
	states  map[string]State
	saves   int
	loadErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{states: map[string]State{}}
}

func (m *memStore) Load(_ context.Context, key string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return State{}, m.loadErr
	}
	s, ok := m.states[key]
	if !ok {
		return State{}, ErrNoState
	}
	return s.Clone(), nil
}

func (m *memStore) Save(_ context.Context, key string, s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.states[key] = s.Clone()
	return nil
}

func (m *memStore) Close() error { return nil }

func (m *memStore) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// clock is a settable time source for containers
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newState(t *testing.T) State {
	t.Helper()
	return DefaultState(species.Default(), rand.New(rand.NewSource(1)), baseTime)
}

func newContainer(t *testing.T, store Store) (*Container, *clock) {
	t.Helper()
	clk := &clock{now: baseTime}
	c := NewContainer(context.Background(), Options{
		Store: store,
		Now:   clk.Now,
		Rand:  rand.New(rand.NewSource(1)),
	})
	return c, clk
}

func TestDefaultState(t *testing.T) {
	s := newState(t)
	catalog := species.Default()

	if s.Companion.SpeciesID != catalog.Starter().ID {
		t.Errorf("Expected starter #%d, got #%d", catalog.Starter().ID, s.Companion.SpeciesID)
	}
	if s.Companion.Level != pet.BaselineLevel {
		t.Errorf("Expected level %d, got %d", pet.BaselineLevel, s.Companion.Level)
	}
	if len(s.Dex) != catalog.Len() {
		t.Errorf("Expected %d dex entries, got %d", catalog.Len(), len(s.Dex))
	}
	seen, caught := s.DexCounts()
	if seen != 1 || caught != 1 {
		t.Errorf("Expected only the starter seen and caught, got %d seen %d caught", seen, caught)
	}
	if s.Inventory[pet.ItemBerry] != 5 || s.Inventory[pet.ItemPotion] != 3 {
		t.Errorf("Unexpected inventory %v", s.Inventory)
	}
	want := baseTime.UnixMilli()
	if s.LastInteracted != want || s.LastFed != want || s.LastTrained != want {
		t.Error("Expected all timestamps set to now")
	}
	if s.Theme != ThemeClassic || s.SoundEnabled {
		t.Errorf("Expected classic theme with sound off, got %s/%v", s.Theme, s.SoundEnabled)
	}
	if !pet.IsNature(s.Companion.Nature) {
		t.Errorf("Unknown nature %q", s.Companion.Nature)
	}
}

func TestCloneIsDeep(t *testing.T) {
	s := newState(t)
	c := s.Clone()
	c.Inventory[pet.ItemBerry] = 0
	c.Dex[4] = DexEntry{Seen: true}

	if s.Inventory[pet.ItemBerry] != 5 {
		t.Error("Clone shares the inventory map")
	}
	if s.Dex[4].Seen {
		t.Error("Clone shares the dex map")
	}
}

func TestFeed(t *testing.T) {
	t.Run("without berries nothing changes", func(t *testing.T) {
		s := newState(t)
		s.Inventory[pet.ItemBerry] = 0

		after, out := Feed(s, baseTime.Add(time.Hour))
		if out.Applied {
			t.Error("Expected feed to be refused")
		}
		if after.Companion != s.Companion || after.LastFed != s.LastFed || after.LastInteracted != s.LastInteracted {
			t.Error("Expected state to be unchanged")
		}
	})

	t.Run("consumes a berry", func(t *testing.T) {
		s := newState(t)
		now := baseTime.Add(time.Minute)

		after, out := Feed(s, now)
		if !out.Applied {
			t.Fatal("Expected feed to apply")
		}
		if after.Inventory[pet.ItemBerry] != 4 {
			t.Errorf("Expected 4 berries, got %d", after.Inventory[pet.ItemBerry])
		}
		if s.Inventory[pet.ItemBerry] != 5 {
			t.Error("Feed mutated its input")
		}
		if after.LastFed != now.UnixMilli() || after.LastInteracted != now.UnixMilli() {
			t.Error("Expected LastFed and LastInteracted stamped")
		}
		if after.Companion.Hunger != pet.MaxStat {
			t.Errorf("Expected hunger %d, got %d", pet.MaxStat, after.Companion.Hunger)
		}
	})
}

func TestUsePotion(t *testing.T) {
	s := newState(t)
	s.Companion.CurrentHP = 2

	after, out := UsePotion(s, baseTime)
	if !out.Applied {
		t.Fatal("Expected potion to apply")
	}
	if after.Companion.CurrentHP != after.Companion.MaxHP {
		t.Errorf("Expected full HP, got %d/%d", after.Companion.CurrentHP, after.Companion.MaxHP)
	}
	if after.Inventory[pet.ItemPotion] != 2 {
		t.Errorf("Expected 2 potions, got %d", after.Inventory[pet.ItemPotion])
	}

	after.Inventory[pet.ItemPotion] = 0
	again, out := UsePotion(after, baseTime)
	if out.Applied || again.Inventory[pet.ItemPotion] != 0 {
		t.Error("Expected potion to be refused without stock")
	}
}

func TestTrainStampsTimes(t *testing.T) {
	s := newState(t)
	now := baseTime.Add(30 * time.Minute)

	after, out := Train(s, species.Default(), now)
	if !out.Applied {
		t.Fatal("Expected train to apply")
	}
	if after.LastTrained != now.UnixMilli() || after.LastInteracted != now.UnixMilli() {
		t.Error("Expected LastTrained and LastInteracted stamped")
	}
	if after.LastFed != s.LastFed {
		t.Error("Training should not touch LastFed")
	}
}

func TestPetReportsLevelUp(t *testing.T) {
	s := newState(t)
	s.Companion.XP = s.Companion.XPToNextLevel - 1

	after, out := Pet(s, species.Default(), baseTime)
	if out.LevelsGained != 1 || after.Companion.Level != 6 {
		t.Errorf("Expected one level gained to 6, got %d levels and level %d", out.LevelsGained, after.Companion.Level)
	}
}

func TestApplyDecay(t *testing.T) {
	s := newState(t)
	now := baseTime.Add(2 * time.Hour)

	after, out := ApplyDecay(s, now)
	if !out.Applied || out.Decay != 10 {
		t.Fatalf("Expected decay of 10, got %+v", out)
	}
	c := after.Companion
	if c.Friendship != 40 || c.Hunger != 60 || c.Energy != 70 {
		t.Errorf("Expected gauges 40/60/70, got %d/%d/%d", c.Friendship, c.Hunger, c.Energy)
	}
	if c.CurrentHP != s.Companion.CurrentHP-5 {
		t.Errorf("Expected HP %d, got %d", s.Companion.CurrentHP-5, c.CurrentHP)
	}
	if after.LastInteracted != now.UnixMilli() {
		t.Error("Expected LastInteracted stamped")
	}

	again, out := ApplyDecay(after, now)
	if out.Applied {
		t.Error("Second evaluation at the same instant should be a no-op")
	}
	if again.Companion != after.Companion {
		t.Error("Decay is not idempotent")
	}

	t.Run("below threshold", func(t *testing.T) {
		s := newState(t)
		after, out := ApplyDecay(s, baseTime.Add(5*time.Minute))
		if out.Applied || after.LastInteracted != s.LastInteracted {
			t.Error("Expected no decay under six minutes")
		}
	})

	t.Run("long absence is capped", func(t *testing.T) {
		s := newState(t)
		after, out := ApplyDecay(s, baseTime.Add(72*time.Hour))
		if out.Decay != pet.MaxDecayPerTick {
			t.Errorf("Expected decay capped at %d, got %d", pet.MaxDecayPerTick, out.Decay)
		}
		if after.Companion.Hunger != pet.InitialHunger-pet.MaxDecayPerTick {
			t.Errorf("Unexpected hunger %d", after.Companion.Hunger)
		}
	})
}

func TestEvolve(t *testing.T) {
	catalog := species.Default()

	s := newState(t)
	s.Companion.Level = 15
	after, out := Evolve(s, catalog, baseTime)
	if out.Applied || after.Companion.SpeciesID != 1 {
		t.Error("Expected no evolution at level 15")
	}

	s.Companion.Level = 16
	after, out = Evolve(s, catalog, baseTime.Add(time.Minute))
	if !out.Applied || !out.Evolved {
		t.Fatal("Expected evolution at level 16")
	}
	if after.Companion.SpeciesID != 2 {
		t.Errorf("Expected Ivysaur, got #%d", after.Companion.SpeciesID)
	}
	if e := after.Dex[2]; !e.Seen || !e.Caught {
		t.Error("Expected Ivysaur marked seen and caught")
	}
	if s.Dex[2].Caught {
		t.Error("Evolve mutated its input dex")
	}
	if after.LastInteracted != baseTime.Add(time.Minute).UnixMilli() {
		t.Error("Expected LastInteracted stamped")
	}
}

func TestSetCompanion(t *testing.T) {
	catalog := species.Default()
	rng := rand.New(rand.NewSource(3))

	s := newState(t)
	s.Inventory[pet.ItemBerry] = 2

	after, out := SetCompanion(s, 9999, catalog, rng, baseTime)
	if out.Applied || after.Companion != s.Companion {
		t.Error("Unknown species should be a no-op")
	}

	after, out = SetCompanion(s, 25, catalog, rng, baseTime)
	if !out.Applied {
		t.Fatal("Expected switch to apply")
	}
	c := after.Companion
	if c.SpeciesID != 25 || c.Level != 5 || c.XP != 0 {
		t.Errorf("Unexpected companion %+v", c)
	}
	if c.Friendship != 50 || c.Hunger != 70 || c.Energy != 80 || c.Mood != pet.MoodContent {
		t.Errorf("Unexpected gauges %+v", c)
	}
	if c.CurrentHP != c.MaxHP || c.MaxHP != pet.MaxHP(35, 5) {
		t.Errorf("Expected full HP at %d, got %d/%d", pet.MaxHP(35, 5), c.CurrentHP, c.MaxHP)
	}
	if after.Inventory[pet.ItemBerry] != 2 {
		t.Error("Switching should not touch the inventory")
	}
	if e := after.Dex[25]; !e.Caught || !e.Seen {
		t.Error("Expected Pikachu marked seen and caught")
	}
}

func TestToggles(t *testing.T) {
	s := newState(t)

	s, _ = ToggleTheme(s)
	if s.Theme != ThemeNight {
		t.Errorf("Expected night theme, got %s", s.Theme)
	}
	s, _ = ToggleTheme(s)
	if s.Theme != ThemeClassic {
		t.Errorf("Expected classic theme, got %s", s.Theme)
	}

	s, _ = ToggleSound(s)
	if !s.SoundEnabled {
		t.Error("Expected sound on")
	}
	s, _ = ToggleSound(s)
	if s.SoundEnabled {
		t.Error("Expected sound off")
	}
}

func TestNormalize(t *testing.T) {
	catalog := species.Default()

	t.Run("valid state is unchanged", func(t *testing.T) {
		s := newState(t)
		got, ok := Normalize(s, catalog)
		if !ok {
			t.Fatal("Expected valid state to normalize")
		}
		if got.Companion != s.Companion || len(got.Dex) != len(s.Dex) || got.Theme != s.Theme {
			t.Error("Normalize changed a valid state")
		}
	})

	t.Run("repairs missing pieces", func(t *testing.T) {
		s := newState(t)
		s.Dex = map[int]DexEntry{5: {Caught: true}, 4242: {Seen: true}}
		s.Inventory = nil
		s.Theme = "neon"
		s.Companion.Hunger = 300

		got, ok := Normalize(s, catalog)
		if !ok {
			t.Fatal("Expected state to normalize")
		}
		if len(got.Dex) != catalog.Len() {
			t.Errorf("Expected %d dex entries, got %d", catalog.Len(), len(got.Dex))
		}
		if e := got.Dex[5]; !e.Seen {
			t.Error("Caught entries must also be seen")
		}
		if _, ok := got.Dex[4242]; ok {
			t.Error("Unknown species should be dropped from the dex")
		}
		if !got.Dex[1].Caught {
			t.Error("Current companion should be caught")
		}
		if got.Inventory[pet.ItemBerry] != 5 {
			t.Error("Expected default inventory")
		}
		if got.Theme != ThemeClassic {
			t.Errorf("Expected classic theme, got %s", got.Theme)
		}
		if got.Companion.Hunger != pet.MaxStat {
			t.Errorf("Expected hunger clamped, got %d", got.Companion.Hunger)
		}
	})

	t.Run("unknown companion species", func(t *testing.T) {
		s := newState(t)
		s.Companion.SpeciesID = 4242
		if _, ok := Normalize(s, catalog); ok {
			t.Error("Expected unknown species to be rejected")
		}
	})
}

func TestContainerLoad(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*memStore)
		wantLevel int
	}{
		{
			name:      "nothing saved",
			setup:     func(m *memStore) {},
			wantLevel: pet.BaselineLevel,
		},
		{
			name:      "unreadable store",
			setup:     func(m *memStore) { m.loadErr = errors.New("disk on fire") },
			wantLevel: pet.BaselineLevel,
		},
		{
			name: "saved progress",
			setup: func(m *memStore) {
				s := DefaultState(species.Default(), rand.New(rand.NewSource(1)), baseTime)
				s.Companion.Level = 42
				m.states[DefaultKey] = s
			},
			wantLevel: 42,
		},
		{
			name: "saved companion no longer exists",
			setup: func(m *memStore) {
				s := DefaultState(species.Default(), rand.New(rand.NewSource(1)), baseTime)
				s.Companion.SpeciesID = 9001
				s.Companion.Level = 42
				m.states[DefaultKey] = s
			},
			wantLevel: pet.BaselineLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			tt.setup(store)
			c, _ := newContainer(t, store)
			if got := c.State().Companion.Level; got != tt.wantLevel {
				t.Errorf("Expected level %d, got %d", tt.wantLevel, got)
			}
		})
	}
}

func TestContainerPersistsTransitions(t *testing.T) {
	store := newMemStore()
	c, clk := newContainer(t, store)

	c.Pet()
	if store.saveCount() != 1 {
		t.Fatalf("Expected 1 save, got %d", store.saveCount())
	}
	saved, err := store.Load(context.Background(), DefaultKey)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if saved.Companion.XP != pet.PetXPGain {
		t.Errorf("Expected saved xp %d, got %d", pet.PetXPGain, saved.Companion.XP)
	}

	// no-ops do not persist
	c.Decay()
	c.SetCompanion(-1)
	if store.saveCount() != 1 {
		t.Errorf("Expected no extra saves for no-ops, got %d", store.saveCount())
	}

	clk.Advance(2 * time.Hour)
	out := c.Decay()
	if !out.Applied || out.Decay != 10 {
		t.Errorf("Expected decay of 10 after two hours, got %+v", out)
	}
	if store.saveCount() != 2 {
		t.Errorf("Expected decay to persist, got %d saves", store.saveCount())
	}
}

func TestContainerSaveFailureKeepsState(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("read-only filesystem")
	c, _ := newContainer(t, store)

	out := c.Feed()
	if !out.Applied {
		t.Fatal("Expected feed to apply despite save failure")
	}
	if got := c.State().Inventory[pet.ItemBerry]; got != 4 {
		t.Errorf("Expected in-memory berries 4, got %d", got)
	}
	if err := c.Flush(context.Background()); err == nil {
		t.Error("Expected Flush to surface the save error")
	}
}

func TestContainerSubscribe(t *testing.T) {
	c, _ := newContainer(t, newMemStore())

	var got []State
	c.Subscribe(func(s State) { got = append(got, s) })

	c.ToggleTheme()
	c.Feed()

	if len(got) != 2 {
		t.Fatalf("Expected 2 notifications, got %d", len(got))
	}
	if got[0].Theme != ThemeNight {
		t.Error("Expected first snapshot to carry the new theme")
	}
	if got[1].Inventory[pet.ItemBerry] != 4 {
		t.Error("Expected second snapshot to carry the fed inventory")
	}
}

func TestContainerStateIsSnapshot(t *testing.T) {
	c, _ := newContainer(t, nil)

	s := c.State()
	s.Inventory[pet.ItemBerry] = 0
	s.Companion.Level = 99

	live := c.State()
	if live.Inventory[pet.ItemBerry] != 5 || live.Companion.Level != pet.BaselineLevel {
		t.Error("Mutating a snapshot leaked into the container")
	}
}

func TestContainerReset(t *testing.T) {
	c, clk := newContainer(t, newMemStore())
	c.SetCompanion(150)
	c.Feed()
	c.ToggleSound()

	clk.Advance(time.Hour)
	c.Reset()

	s := c.State()
	if s.Companion.SpeciesID != 1 || s.Inventory[pet.ItemBerry] != 5 || s.SoundEnabled {
		t.Errorf("Expected a fresh game, got %+v", s)
	}
	if _, caught := s.DexCounts(); caught != 1 {
		t.Errorf("Expected only the starter caught, got %d", caught)
	}
	if s.LastInteracted != clk.Now().UnixMilli() {
		t.Error("Expected timestamps at reset time")
	}
}

func TestContainerConcurrentActions(t *testing.T) {
	store := newMemStore()
	c, _ := newContainer(t, store)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Pet()
		}()
	}
	wg.Wait()

	s := c.State()
	if s.Companion.Friendship != pet.MaxStat {
		t.Errorf("Expected friendship capped at %d after 50 pets, got %d", pet.MaxStat, s.Companion.Friendship)
	}
	if store.saveCount() != 50 {
		t.Errorf("Expected 50 saves, got %d", store.saveCount())
	}
}

func TestRunDecay(t *testing.T) {
	store := newMemStore()
	c, clk := newContainer(t, store)
	clk.Advance(2 * time.Hour)

	decayed := make(chan State, 10)
	c.Subscribe(func(s State) {
		select {
		case decayed <- s:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- RunDecay(ctx, c, time.Hour) }()

	select {
	case s := <-decayed:
		if s.Companion.Hunger != pet.InitialHunger-10 {
			t.Errorf("Expected hunger %d, got %d", pet.InitialHunger-10, s.Companion.Hunger)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("RunDecay did not evaluate immediately")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("RunDecay did not stop after cancel")
	}
}
