package pet

import "slices"

// Natures is the fixed set a companion's nature is drawn from
var Natures = []string{
	"Hardy", "Lonely", "Brave", "Adamant", "Naughty",
	"Bold", "Docile", "Relaxed", "Impish", "Lax",
	"Timid", "Hasty", "Serious", "Jolly", "Naive",
	"Modest", "Mild", "Quiet", "Bashful", "Rash",
	"Calm", "Gentle", "Sassy", "Careful", "Quirky",
}

// NatureSource supplies the random draw for a nature. *rand.Rand satisfies it.
type NatureSource interface {
	Intn(n int) int
}

// RandomNature draws a nature uniformly
func RandomNature(rng NatureSource) string {
	return Natures[rng.Intn(len(Natures))]
}

// IsNature reports whether name is a known nature
func IsNature(name string) bool {
	return slices.Contains(Natures, name)
}
