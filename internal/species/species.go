// Package species holds the immutable catalog of creature definitions the
// companion can belong to.
package species

import (
	"fmt"
	"strings"
)

// SpecialEvolutionLevel marks evolutions that are not reached through
// ordinary leveling (stones, trades). The requirement is still enforced.
const SpecialEvolutionLevel = 99

// BaseStats is a species' base stat block
type BaseStats struct {
	HP        int `csv:"hp"`
	Attack    int `csv:"attack"`
	Defense   int `csv:"defense"`
	SpAttack  int `csv:"sp_attack"`
	SpDefense int `csv:"sp_defense"`
	Speed     int `csv:"speed"`
}

// Total returns the sum of all base stats
func (b BaseStats) Total() int {
	return b.HP + b.Attack + b.Defense + b.SpAttack + b.SpDefense + b.Speed
}

// List is a |-separated list cell in the catalog file
type List []string

// UnmarshalCSV implements gocsv.TypeUnmarshaller
func (l *List) UnmarshalCSV(value string) error {
	*l = nil
	for _, part := range strings.Split(value, "|") {
		if part = strings.TrimSpace(part); part != "" {
			*l = append(*l, part)
		}
	}
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller
func (l List) MarshalCSV() (string, error) {
	return strings.Join(l, "|"), nil
}

// String joins the list for display
func (l List) String() string {
	return strings.Join(l, "/")
}

// Species is a single catalog entry
type Species struct {
	ID          int    `csv:"id"`
	Name        string `csv:"name"`
	Types       List   `csv:"types"`
	EvolvesTo   int    `csv:"evolves_to"`
	MinLevel    int    `csv:"min_level"`
	BaseStats
	Natures     List   `csv:"natures"`
	Description string `csv:"description"`
}

// CanEvolve reports whether the species has a successor form
func (s Species) CanEvolve() bool {
	return s.EvolvesTo != 0
}

// IsSpecialEvolution reports whether the evolution requirement is shown as
// "Special" rather than as a level
func (s Species) IsSpecialEvolution() bool {
	return s.MinLevel >= SpecialEvolutionLevel
}

// RequirementLabel describes what is needed to evolve ("Lv. 16", "Special"),
// or "" when the species does not evolve
func (s Species) RequirementLabel() string {
	switch {
	case !s.CanEvolve():
		return ""
	case s.IsSpecialEvolution():
		return "Special"
	case s.MinLevel > 0:
		return fmt.Sprintf("Lv. %d", s.MinLevel)
	default:
		return "Any level"
	}
}

// DexNumber formats the id the way the creature index shows it (#001)
func (s Species) DexNumber() string {
	return fmt.Sprintf("#%03d", s.ID)
}
