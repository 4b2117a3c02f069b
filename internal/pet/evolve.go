package pet

import (
	"log"

	"pocketpal/internal/species"
)

// CanEvolve reports whether the companion meets its species' evolution
// requirements and returns the species it would become
func CanEvolve(c Companion, lookup SpeciesLookup) (species.Species, bool) {
	current, ok := lookup.Lookup(c.SpeciesID)
	if !ok || !current.CanEvolve() {
		return species.Species{}, false
	}
	if current.MinLevel > 0 && c.Level < current.MinLevel {
		return species.Species{}, false
	}
	return lookup.Lookup(current.EvolvesTo)
}

// Evolve switches the companion to its evolved species. MaxHP is recomputed
// at the unchanged level and HP is fully restored; level, experience, gauges,
// nature and mood carry over. It reports false and returns c unchanged when
// the requirements are not met.
func Evolve(c Companion, lookup SpeciesLookup) (Companion, bool) {
	evolved, ok := CanEvolve(c, lookup)
	if !ok {
		return c, false
	}

	from := c.SpeciesID
	c.SpeciesID = evolved.ID
	c.MaxHP = MaxHP(evolved.HP, c.Level)
	c.CurrentHP = c.MaxHP

	log.Printf("Companion evolved from #%d to #%d %s at level %d", from, evolved.ID, evolved.Name, c.Level)
	return c, true
}
