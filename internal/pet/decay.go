package pet

import (
	"log"
	"math"
	"time"
)

// DecayAmount converts time since the last interaction into a gauge loss.
// It reports false when too little time has passed for decay to apply.
// The loss is capped per evaluation no matter how long the gap was.
func DecayAmount(elapsed time.Duration) (int, bool) {
	if elapsed < DecayThreshold {
		return 0, false
	}
	amount := int(math.Floor(elapsed.Hours() * DecayPerHour))
	return min(amount, MaxDecayPerTick), true
}

// ApplyDecay drains the gauges by amount and HP by half of it
func ApplyDecay(c Companion, amount int) Companion {
	c.Friendship -= amount
	c.Hunger -= amount
	c.Energy -= amount
	c.CurrentHP = max(MinDecayHP, c.CurrentHP-amount/2)
	c = settle(c)

	if amount > 0 {
		log.Printf("Decay of %d applied. Friendship %d, Hunger %d, Energy %d, HP %d/%d",
			amount, c.Friendship, c.Hunger, c.Energy, c.CurrentHP, c.MaxHP)
	}
	return c
}
