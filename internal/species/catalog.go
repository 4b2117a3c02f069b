package species

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/gocarina/gocsv"
)

//go:embed data/species.csv
var speciesCSV []byte

// Catalog is a read-only index of species definitions
type Catalog struct {
	ordered     []Species
	byID        map[int]int // id -> index into ordered
	predecessor map[int]int // evolved id -> source id
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog embedded in the binary. It is parsed once.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(bytes.NewReader(speciesCSV))
		if err != nil {
			panic(fmt.Sprintf("embedded species catalog is invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses a catalog from CSV and validates it
func Load(r io.Reader) (*Catalog, error) {
	var rows []Species
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("parse species csv: %w", err)
	}
	return New(rows)
}

// New builds a catalog from already-decoded definitions. Order is preserved;
// the first entry is the starter.
func New(defs []Species) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, errors.New("catalog is empty")
	}

	c := &Catalog{
		ordered:     make([]Species, 0, len(defs)),
		byID:        make(map[int]int, len(defs)),
		predecessor: make(map[int]int),
	}
	for _, s := range defs {
		if s.ID <= 0 {
			return nil, fmt.Errorf("species %q: id must be positive, got %d", s.Name, s.ID)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("species %d: duplicate id", s.ID)
		}
		if len(s.Types) == 0 {
			return nil, fmt.Errorf("species %d: at least one type is required", s.ID)
		}
		c.byID[s.ID] = len(c.ordered)
		c.ordered = append(c.ordered, s)
	}

	for _, s := range c.ordered {
		if !s.CanEvolve() {
			continue
		}
		if _, ok := c.byID[s.EvolvesTo]; !ok {
			return nil, fmt.Errorf("species %d: evolves to unknown id %d", s.ID, s.EvolvesTo)
		}
		if prev, taken := c.predecessor[s.EvolvesTo]; taken {
			return nil, fmt.Errorf("species %d: both %d and %d evolve into it", s.EvolvesTo, prev, s.ID)
		}
		c.predecessor[s.EvolvesTo] = s.ID
	}

	// Every forward walk must end within len(ordered) steps.
	for _, s := range c.ordered {
		current, steps := s, 0
		for current.CanEvolve() {
			if steps++; steps > len(c.ordered) {
				return nil, fmt.Errorf("species %d: evolution cycle", s.ID)
			}
			current, _ = c.Lookup(current.EvolvesTo)
		}
	}

	return c, nil
}

// Lookup returns the species with the given id
func (c *Catalog) Lookup(id int) (Species, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Species{}, false
	}
	return c.ordered[i], true
}

// FindEvolutionSource returns the species that evolves into targetID.
// Base forms have none.
func (c *Catalog) FindEvolutionSource(targetID int) (Species, bool) {
	src, ok := c.predecessor[targetID]
	if !ok {
		return Species{}, false
	}
	return c.Lookup(src)
}

// EvolutionChain returns the full line id belongs to, base form first
func (c *Catalog) EvolutionChain(id int) []Species {
	current, ok := c.Lookup(id)
	if !ok {
		return nil
	}

	for {
		prev, ok := c.FindEvolutionSource(current.ID)
		if !ok {
			break
		}
		current = prev
	}

	chain := []Species{current}
	for current.CanEvolve() {
		next, ok := c.Lookup(current.EvolvesTo)
		if !ok {
			break
		}
		chain = append(chain, next)
		current = next
	}
	return chain
}

// Starter is the first species in the catalog
func (c *Catalog) Starter() Species {
	return c.ordered[0]
}

// All returns every species in catalog order
func (c *Catalog) All() []Species {
	out := make([]Species, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Len is the number of species
func (c *Catalog) Len() int {
	return len(c.ordered)
}
