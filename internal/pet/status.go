package pet

import "strings"

// DeriveMood summarizes the three gauges as a mood label
func DeriveMood(friendship, hunger, energy int) string {
	avg := float64(friendship+hunger+energy) / 3

	switch {
	case avg >= HappyThreshold:
		return MoodHappy
	case avg >= ContentThreshold:
		return MoodContent
	case avg >= OkayThreshold:
		return MoodOkay
	case avg >= UnhappyThreshold:
		return MoodUnhappy
	default:
		return MoodSleepy
	}
}

// MoodEmoji returns the emoji for a mood label
func MoodEmoji(mood string) string {
	switch mood {
	case MoodHappy:
		return StatusEmojiHappy
	case MoodContent:
		return StatusEmojiContent
	case MoodOkay:
		return StatusEmojiOkay
	case MoodUnhappy:
		return StatusEmojiUnhappy
	default:
		return StatusEmojiSleepy
	}
}

// GetStatus returns the status emoji(s) for the companion: its mood, then
// its most pressing need if any gauge is low
func GetStatus(c Companion) string {
	status := MoodEmoji(c.Mood)

	lowestStat := c.Hunger
	lowestFeeling := StatusEmojiHungry

	if c.Energy < lowestStat {
		lowestStat = c.Energy
		lowestFeeling = StatusEmojiTired
	}
	if c.Friendship < lowestStat {
		lowestStat = c.Friendship
		lowestFeeling = StatusEmojiLonely
	}

	if lowestStat < LowStatThreshold {
		return status + lowestFeeling
	}
	// HP below a third
	if c.MaxHP > 0 && c.CurrentHP*3 < c.MaxHP {
		return status + StatusEmojiHurt
	}
	return status
}

// GetStatusWithLabel returns status with a text label for the UI
func GetStatusWithLabel(c Companion) string {
	status := GetStatus(c)
	need := NeedLabel(c)
	if need == "" {
		return status + " " + c.Mood
	}
	return status + " " + c.Mood + " (" + need + ")"
}

// NeedLabel names the companion's most pressing need, or "" if none
func NeedLabel(c Companion) string {
	status := GetStatus(c)
	switch {
	case strings.HasSuffix(status, StatusEmojiHungry):
		return "hungry"
	case strings.HasSuffix(status, StatusEmojiTired):
		return "tired"
	case strings.HasSuffix(status, StatusEmojiLonely):
		return "lonely"
	case strings.HasSuffix(status, StatusEmojiHurt):
		return "hurt"
	default:
		return ""
	}
}
