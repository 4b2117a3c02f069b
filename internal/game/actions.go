package game

import (
	"fmt"
	"log"
	"time"

	"pocketpal/internal/pet"
	"pocketpal/internal/species"
)

// Outcome describes what a transition did
type Outcome struct {
	Applied      bool   // false when a precondition failed and nothing changed
	Message      string // short text for the player
	LevelsGained int
	Evolved      bool
	Decay        int
}

// ApplyDecay drains the companion for the time since the last interaction.
// Less than a tenth of an hour is a no-op, so evaluating twice at the same
// instant changes nothing.
func ApplyDecay(s State, now time.Time) (State, Outcome) {
	elapsed := now.Sub(time.UnixMilli(s.LastInteracted))
	amount, ok := pet.DecayAmount(elapsed)
	if !ok {
		return s, Outcome{}
	}

	s.Companion = pet.ApplyDecay(s.Companion, amount)
	s.LastInteracted = now.UnixMilli()

	msg := "Time passes quietly"
	if amount > 0 {
		msg = fmt.Sprintf("Your companion missed you (-%d)", amount)
	}
	return s, Outcome{Applied: true, Message: msg, Decay: amount}
}

// Pet grants experience and friendship
func Pet(s State, catalog *species.Catalog, now time.Time) (State, Outcome) {
	before := s.Companion.Level
	s.Companion = pet.Pet(s.Companion, catalog)
	s.LastInteracted = now.UnixMilli()

	out := Outcome{Applied: true, Message: "Your companion enjoyed that!", LevelsGained: s.Companion.Level - before}
	if out.LevelsGained > 0 {
		out.Message = levelUpMessage(s.Companion.Level)
	}
	return s, out
}

// Feed spends a berry to restore hunger and HP. Without a berry it does
// nothing.
func Feed(s State, now time.Time) (State, Outcome) {
	if s.Inventory[pet.ItemBerry] < 1 {
		return s, Outcome{Message: "No berries left"}
	}

	s = s.Clone()
	s.Companion = pet.Feed(s.Companion)
	s.Inventory[pet.ItemBerry]--
	s.LastFed = now.UnixMilli()
	s.LastInteracted = s.LastFed

	return s, Outcome{Applied: true, Message: "Yum! That berry hit the spot"}
}

// Train trades hunger and energy for experience. It is never blocked.
func Train(s State, catalog *species.Catalog, now time.Time) (State, Outcome) {
	before := s.Companion.Level
	s.Companion = pet.Train(s.Companion, catalog)
	s.LastTrained = now.UnixMilli()
	s.LastInteracted = s.LastTrained

	out := Outcome{Applied: true, Message: "Training complete", LevelsGained: s.Companion.Level - before}
	if out.LevelsGained > 0 {
		out.Message = levelUpMessage(s.Companion.Level)
	}
	return s, out
}

// UsePotion spends a potion to restore HP. Without a potion it does nothing.
func UsePotion(s State, now time.Time) (State, Outcome) {
	if s.Inventory[pet.ItemPotion] < 1 {
		return s, Outcome{Message: "No potions left"}
	}

	s = s.Clone()
	s.Companion = pet.Heal(s.Companion, pet.PotionHPGain)
	s.Inventory[pet.ItemPotion]--
	s.LastInteracted = now.UnixMilli()

	log.Printf("Used a potion. HP is now %d/%d", s.Companion.CurrentHP, s.Companion.MaxHP)
	return s, Outcome{Applied: true, Message: "HP restored"}
}

// Evolve switches the companion to its evolved form when the requirements
// are met and records the new species as caught
func Evolve(s State, catalog *species.Catalog, now time.Time) (State, Outcome) {
	evolved, ok := pet.Evolve(s.Companion, catalog)
	if !ok {
		return s, Outcome{Message: "Not ready to evolve"}
	}

	s = s.Clone()
	s.Companion = evolved
	s.markCaught(evolved.SpeciesID)
	s.LastInteracted = now.UnixMilli()

	name := fmt.Sprintf("#%d", evolved.SpeciesID)
	if sp, ok := catalog.Lookup(evolved.SpeciesID); ok {
		name = sp.Name
	}
	return s, Outcome{Applied: true, Evolved: true, Message: "Evolved into " + name + "!"}
}

// SetCompanion replaces the companion with a fresh one of species id.
// Unknown ids are a no-op. The inventory is untouched.
func SetCompanion(s State, id int, catalog *species.Catalog, rng pet.NatureSource, now time.Time) (State, Outcome) {
	sp, ok := catalog.Lookup(id)
	if !ok {
		return s, Outcome{Message: fmt.Sprintf("Unknown species #%d", id)}
	}

	s = s.Clone()
	s.Companion = pet.NewCompanion(sp, pet.RandomNature(rng))
	s.markCaught(sp.ID)
	s.LastInteracted = now.UnixMilli()

	log.Printf("Switched companion to #%d %s (%s nature)", sp.ID, sp.Name, s.Companion.Nature)
	return s, Outcome{Applied: true, Message: sp.Name + " is your new companion"}
}

// ToggleTheme flips between the classic and night themes
func ToggleTheme(s State) (State, Outcome) {
	if s.Theme == ThemeNight {
		s.Theme = ThemeClassic
	} else {
		s.Theme = ThemeNight
	}
	return s, Outcome{Applied: true, Message: "Theme: " + s.Theme}
}

// ToggleSound flips the sound setting
func ToggleSound(s State) (State, Outcome) {
	s.SoundEnabled = !s.SoundEnabled
	msg := "Sound off"
	if s.SoundEnabled {
		msg = "Sound on"
	}
	return s, Outcome{Applied: true, Message: msg}
}

func (s *State) markCaught(id int) {
	if s.Dex == nil {
		s.Dex = make(map[int]DexEntry)
	}
	s.Dex[id] = DexEntry{Seen: true, Caught: true}
}

func levelUpMessage(level int) string {
	return fmt.Sprintf("Level up! Now level %d", level)
}
