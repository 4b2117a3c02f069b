package game

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"slices"
	"sync"
	"time"

	"pocketpal/internal/pet"
	"pocketpal/internal/species"
)

// Options configures a Container. Zero values fall back to the embedded
// catalog, the wall clock, a time-seeded source and DefaultKey.
type Options struct {
	Store   Store
	Key     string
	Catalog *species.Catalog
	Now     func() time.Time
	Rand    pet.NatureSource
}

// Container owns the live game record. Every transition runs under its
// lock, persists the result and then notifies subscribers.
type Container struct {
	mu          sync.Mutex
	state       State
	store       Store
	key         string
	catalog     *species.Catalog
	now         func() time.Time
	rng         pet.NatureSource
	subscribers []func(State)
}

// NewContainer loads the saved record, or starts a new game when nothing
// usable is stored
func NewContainer(ctx context.Context, opts Options) *Container {
	c := &Container{
		store:   opts.Store,
		key:     opts.Key,
		catalog: opts.Catalog,
		now:     opts.Now,
		rng:     opts.Rand,
	}
	if c.key == "" {
		c.key = DefaultKey
	}
	if c.catalog == nil {
		c.catalog = species.Default()
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c.state = c.load(ctx)
	return c
}

func (c *Container) load(ctx context.Context) State {
	if c.store == nil {
		return DefaultState(c.catalog, c.rng, c.now())
	}

	s, err := c.store.Load(ctx, c.key)
	if err != nil {
		if !errors.Is(err, ErrNoState) {
			log.Printf("Error loading state: %v. Starting a new game.", err)
		} else {
			log.Printf("No saved state under %q. Starting a new game.", c.key)
		}
		return DefaultState(c.catalog, c.rng, c.now())
	}

	s, ok := Normalize(s, c.catalog)
	if !ok {
		log.Printf("Saved companion #%d is not in the catalog. Starting a new game.", s.Companion.SpeciesID)
		return DefaultState(c.catalog, c.rng, c.now())
	}
	return s
}

// Catalog returns the species catalog the container resolves against
func (c *Container) Catalog() *species.Catalog {
	return c.catalog
}

// State returns a snapshot of the current record
func (c *Container) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Subscribe registers fn to receive a snapshot after every committed
// transition
func (c *Container) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

// modifyState runs a transition and, if it applied, saves the result and
// notifies subscribers
func (c *Container) modifyState(f func(State, time.Time) (State, Outcome)) Outcome {
	c.mu.Lock()
	next, out := f(c.state.Clone(), c.now())
	if !out.Applied {
		c.mu.Unlock()
		return out
	}
	c.state = next
	c.save()
	snapshot := c.state.Clone()
	subs := slices.Clone(c.subscribers)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
	return out
}

// save must be called with mu held. Failures are logged; the in-memory
// record stays authoritative.
func (c *Container) save() {
	if c.store == nil {
		return
	}
	if err := c.store.Save(context.Background(), c.key, c.state); err != nil {
		log.Printf("Error saving state: %v", err)
	}
}

// Decay applies passive decay for the time since the last interaction
func (c *Container) Decay() Outcome {
	return c.modifyState(ApplyDecay)
}

// Pet pets the companion
func (c *Container) Pet() Outcome {
	return c.modifyState(func(s State, now time.Time) (State, Outcome) {
		return Pet(s, c.catalog, now)
	})
}

// Feed feeds the companion a berry
func (c *Container) Feed() Outcome {
	return c.modifyState(Feed)
}

// Train trains the companion
func (c *Container) Train() Outcome {
	return c.modifyState(func(s State, now time.Time) (State, Outcome) {
		return Train(s, c.catalog, now)
	})
}

// UsePotion heals the companion with a potion
func (c *Container) UsePotion() Outcome {
	return c.modifyState(UsePotion)
}

// Evolve evolves the companion if it is ready
func (c *Container) Evolve() Outcome {
	return c.modifyState(func(s State, now time.Time) (State, Outcome) {
		return Evolve(s, c.catalog, now)
	})
}

// SetCompanion switches to a fresh companion of species id
func (c *Container) SetCompanion(id int) Outcome {
	return c.modifyState(func(s State, now time.Time) (State, Outcome) {
		return SetCompanion(s, id, c.catalog, c.rng, now)
	})
}

// Reset discards all progress and starts a new game
func (c *Container) Reset() Outcome {
	return c.modifyState(func(_ State, now time.Time) (State, Outcome) {
		log.Printf("Game reset")
		return DefaultState(c.catalog, c.rng, now), Outcome{Applied: true, Message: "A new adventure begins"}
	})
}

// ToggleTheme flips the display theme
func (c *Container) ToggleTheme() Outcome {
	return c.modifyState(func(s State, _ time.Time) (State, Outcome) {
		return ToggleTheme(s)
	})
}

// ToggleSound flips the sound setting
func (c *Container) ToggleSound() Outcome {
	return c.modifyState(func(s State, _ time.Time) (State, Outcome) {
		return ToggleSound(s)
	})
}

// Flush saves the current record. It returns the store's error instead of
// logging it, for callers that want to report it.
func (c *Container) Flush(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		return nil
	}
	return c.store.Save(ctx, c.key, c.state)
}

// RunDecay evaluates decay immediately and then every interval until ctx is
// done
func RunDecay(ctx context.Context, c *Container, interval time.Duration) error {
	if interval <= 0 {
		interval = pet.DefaultDecayEvery
	}

	c.Decay()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.Decay()
		}
	}
}
