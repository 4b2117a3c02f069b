package ui

import (
	"testing"
	"time"
)

func TestAnimationTypes(t *testing.T) {
	tests := []struct {
		name     string
		animType AnimationType
		expected int // minimum expected frames
	}{
		{"Pet animation has frames", AnimPet, 3},
		{"Feed animation has frames", AnimFeed, 3},
		{"Train animation has frames", AnimTrain, 4},
		{"Potion animation has frames", AnimPotion, 4},
		{"Evolve animation has frames", AnimEvolve, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := AnimationTotalFrames(tt.animType)
			if frames < tt.expected {
				t.Errorf("Expected at least %d frames for %v, got %d", tt.expected, tt.animType, frames)
			}
		})
	}
}

func TestGetAnimationFrame(t *testing.T) {
	anim := Animation{
		Type:      AnimFeed,
		Frame:     0,
		StartTime: time.Now(),
	}

	if frame := GetAnimationFrame(anim); frame == "" {
		t.Error("Expected non-empty frame for AnimFeed at frame 0")
	}

	// Frame beyond total
	anim.Frame = 100
	if frame := GetAnimationFrame(anim); frame != AnimationFrames[AnimFeed][AnimationTotalFrames(AnimFeed)-1] {
		t.Error("Expected last frame for out-of-bounds frame index")
	}

	if frame := GetAnimationFrame(Animation{Type: AnimNone}); frame != "" {
		t.Errorf("Expected empty frame for AnimNone, got %q", frame)
	}
}

func TestIsAnimationComplete(t *testing.T) {
	tests := []struct {
		name     string
		anim     Animation
		expected bool
	}{
		{"Animation at start is not complete", Animation{Type: AnimTrain, Frame: 0}, false},
		{"Animation at middle is not complete", Animation{Type: AnimTrain, Frame: 1}, false},
		{"Animation past end is complete", Animation{Type: AnimTrain, Frame: AnimationTotalFrames(AnimTrain)}, true},
		{"No animation is complete", Animation{Type: AnimNone, Frame: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := IsAnimationComplete(tt.anim); result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestAnimationFrameDuration(t *testing.T) {
	if AnimationFrameDuration < 100*time.Millisecond {
		t.Error("Animation frame duration too short")
	}
	if AnimationFrameDuration > 500*time.Millisecond {
		t.Error("Animation frame duration too long")
	}
}

func TestAllAnimationsHaveContent(t *testing.T) {
	for _, animType := range []AnimationType{AnimPet, AnimFeed, AnimTrain, AnimPotion, AnimEvolve} {
		frames := AnimationFrames[animType]
		if len(frames) == 0 {
			t.Errorf("Animation type %v has no frames", animType)
			continue
		}
		for i, frame := range frames {
			if frame == "" {
				t.Errorf("Animation type %v has empty frame at index %d", animType, i)
			}
		}
	}
}
