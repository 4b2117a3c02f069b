package pet

// XPRequiredForLevel is the experience needed to reach level from the one below
func XPRequiredForLevel(level int) int {
	return level * level * level
}

// MaxHP computes maximum HP from a species' base HP and the current level
func MaxHP(baseHP, level int) int {
	return (2*baseHP*level)/100 + level + 10
}

// ApplyXPGain adds experience and cascades level-ups. Each level gained
// recomputes MaxHP and fully heals. The cascade stops at MaxLevel, where
// leftover experience is kept but capped just below the next threshold.
// It returns the number of levels gained.
func ApplyXPGain(c Companion, lookup SpeciesLookup, gain int) (Companion, int) {
	if gain > 0 {
		c.XP += gain
	}

	levels := 0
	for c.XP >= c.XPToNextLevel && c.Level < MaxLevel {
		c.XP -= c.XPToNextLevel
		c.Level++
		levels++
		c.XPToNextLevel = XPRequiredForLevel(c.Level + 1)
		if s, ok := lookup.Lookup(c.SpeciesID); ok {
			c.MaxHP = MaxHP(s.HP, c.Level)
			c.CurrentHP = c.MaxHP
		}
	}

	if c.Level >= MaxLevel && c.XP >= c.XPToNextLevel {
		c.XP = c.XPToNextLevel - 1
	}
	c.CurrentHP = min(c.CurrentHP, c.MaxHP)

	return c, levels
}
