// Package pet implements the companion simulation: experience and level-up
// cascades, stat decay, mood, and evolution. Every transition takes a
// Companion by value and returns the next one.
package pet

import (
	"log"

	"pocketpal/internal/species"
)

// SpeciesLookup resolves species definitions by id
type SpeciesLookup interface {
	Lookup(id int) (species.Species, bool)
}

// Companion is the creature the player is raising
type Companion struct {
	SpeciesID     int    `json:"pokemonId" toml:"pokemonId"`
	Level         int    `json:"level" toml:"level"`
	CurrentHP     int    `json:"currentHP" toml:"currentHP"`
	MaxHP         int    `json:"maxHP" toml:"maxHP"`
	XP            int    `json:"xp" toml:"xp"`
	XPToNextLevel int    `json:"xpToNextLevel" toml:"xpToNextLevel"`
	Friendship    int    `json:"friendship" toml:"friendship"`
	Hunger        int    `json:"hunger" toml:"hunger"`
	Energy        int    `json:"energy" toml:"energy"`
	Mood          string `json:"mood" toml:"mood"`
	Nature        string `json:"nature" toml:"nature"`
}

// NewCompanion creates a baseline companion of the given species
func NewCompanion(s species.Species, nature string) Companion {
	maxHP := MaxHP(s.HP, BaselineLevel)
	return Companion{
		SpeciesID:     s.ID,
		Level:         BaselineLevel,
		CurrentHP:     maxHP,
		MaxHP:         maxHP,
		XP:            0,
		XPToNextLevel: XPRequiredForLevel(BaselineLevel + 1),
		Friendship:    InitialFriendship,
		Hunger:        InitialHunger,
		Energy:        InitialEnergy,
		Mood:          InitialMood,
		Nature:        nature,
	}
}

// Pet grants a little experience and friendship
func Pet(c Companion, lookup SpeciesLookup) Companion {
	c, levels := ApplyXPGain(c, lookup, PetXPGain)
	c.Friendship += PetFriendshipGain
	c = settle(c)

	log.Printf("Petted companion (+%d xp, %d level(s) gained). Friendship is now %d", PetXPGain, levels, c.Friendship)
	return c
}

// Feed restores hunger and a little HP. The berry it costs is the caller's
// concern.
func Feed(c Companion) Companion {
	c.Hunger += FeedHungerGain
	c.CurrentHP += FeedHPGain
	c.Friendship += FeedFriendshipGain
	c = settle(c)

	log.Printf("Fed companion. Hunger is now %d, HP is now %d/%d", c.Hunger, c.CurrentHP, c.MaxHP)
	return c
}

// Train trades hunger and energy for experience. Low gauges do not block it.
func Train(c Companion, lookup SpeciesLookup) Companion {
	c, levels := ApplyXPGain(c, lookup, TrainXPGain)
	c.Hunger -= TrainHungerCost
	c.Energy -= TrainEnergyCost
	c.Friendship += TrainFriendship
	c = settle(c)

	log.Printf("Trained companion (+%d xp, %d level(s) gained). Hunger is now %d, Energy is now %d",
		TrainXPGain, levels, c.Hunger, c.Energy)
	return c
}

// Heal restores HP up to MaxHP
func Heal(c Companion, amount int) Companion {
	c.CurrentHP += amount
	return settle(c)
}

// Normalize restores the derived fields and bounds of a companion read from
// storage. It is the identity on any state the engine produced.
func Normalize(c Companion, lookup SpeciesLookup) Companion {
	c.Level = clamp(c.Level, MinLevel, MaxLevel)
	c.XPToNextLevel = XPRequiredForLevel(c.Level + 1)
	if s, ok := lookup.Lookup(c.SpeciesID); ok {
		c.MaxHP = MaxHP(s.HP, c.Level)
	}
	c.XP = clamp(c.XP, 0, c.XPToNextLevel-1)
	return settle(c)
}

// settle clamps every gauge and re-derives mood
func settle(c Companion) Companion {
	c.Friendship = clamp(c.Friendship, MinStat, MaxStat)
	c.Hunger = clamp(c.Hunger, MinStat, MaxStat)
	c.Energy = clamp(c.Energy, MinStat, MaxStat)
	c.CurrentHP = clamp(c.CurrentHP, 0, c.MaxHP)
	c.Mood = DeriveMood(c.Friendship, c.Hunger, c.Energy)
	return c
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
