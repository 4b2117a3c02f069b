package pet

import "time"

// Game constants
const (
	MaxStat = 100
	MinStat = 0

	MinLevel      = 1
	MaxLevel      = 100
	BaselineLevel = 5 // Level of a freshly set or reset companion

	// Baseline gauges for a fresh companion
	InitialFriendship = 50
	InitialHunger     = 70
	InitialEnergy     = 80
	InitialMood       = MoodContent

	// Interaction effects
	PetXPGain          = 10
	PetFriendshipGain  = 5
	FeedHungerGain     = 30
	FeedHPGain         = 10
	FeedFriendshipGain = 3
	TrainXPGain        = 25
	TrainHungerCost    = 10
	TrainEnergyCost    = 15
	TrainFriendship    = 2
	PotionHPGain       = 20

	// Passive decay
	DecayThreshold    = 6 * time.Minute // Elapsed time below which decay is skipped (0.1h)
	DecayPerHour      = 5
	MaxDecayPerTick   = 30
	MinDecayHP        = 1 // Decay alone never knocks a companion out
	DefaultDecayEvery = 5 * time.Minute

	// Mood thresholds on the average of friendship, hunger and energy
	HappyThreshold   = 80
	ContentThreshold = 60
	OkayThreshold    = 40
	UnhappyThreshold = 20

	// A gauge below this shows as the companion's most pressing need
	LowStatThreshold = 30
)

// Mood labels
const (
	MoodHappy   = "Happy"
	MoodContent = "Content"
	MoodOkay    = "Okay"
	MoodUnhappy = "Unhappy"
	MoodSleepy  = "Sleepy"
)

// Status emojis
const (
	StatusEmojiHappy   = "😸"
	StatusEmojiContent = "🙂"
	StatusEmojiOkay    = "😐"
	StatusEmojiUnhappy = "😿"
	StatusEmojiSleepy  = "😴"
	StatusEmojiHungry  = "🙀"
	StatusEmojiTired   = "😾"
	StatusEmojiLonely  = "🥺"
	StatusEmojiHurt    = "🤕"
)
