// Package track holds the uncompressed keyframe representation produced by
// extraction: per-joint animation tracks keyed in clip-local seconds, and
// generic single-property tracks keyed in normalized [0,1] time.
package track

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/ivlev/scene2anim/internal/mathx"
)

// Interpolation selects how a keyframe blends toward the next one.
type Interpolation int

const (
	// Step holds the value constant until the next key.
	Step Interpolation = iota
	// Linear blends linearly between adjacent keys.
	Linear
)

func (i Interpolation) String() string {
	if i == Step {
		return "step"
	}
	return "linear"
}

// timeTolerance absorbs float accumulation across the sampling loop when
// comparing a track's last key against the clip duration.
const timeTolerance = 1e-6

// Key3 is a vector keyframe in clip-local seconds.
type Key3 struct {
	Time  float64
	Value mathx.Vec3
}

// KeyQ is a rotation keyframe in clip-local seconds.
type KeyQ struct {
	Time  float64
	Value mathx.Quaternion
}

// JointTrack is the animation of one skeleton joint: translation, rotation
// and scale channels over the clip. A bind-pose fallback track holds exactly
// one key per channel at time 0.
type JointTrack struct {
	Translations []Key3
	Rotations    []KeyQ
	Scales       []Key3
}

// RawAnimation is one extracted clip. Tracks are indexed by skeleton joint
// index; consumers align positionally, never by name.
type RawAnimation struct {
	Name     string
	Duration float64
	Tracks   []JointTrack
}

// AnimationSet is the ordered result of a batch extraction, one entry per
// clip in discovery order.
type AnimationSet []RawAnimation

// Validate checks the structural invariants of an extracted animation:
// positive duration and, per channel, at least one key, strictly increasing
// times starting at 0, with the last key of a resampled channel landing on
// the clip duration.
func (a *RawAnimation) Validate() error {
	if a.Duration <= 0 {
		return fmt.Errorf("animation %q: non-positive duration %g", a.Name, a.Duration)
	}
	for i := range a.Tracks {
		t := &a.Tracks[i]
		if err := validateKeys3(t.Translations, a.Duration); err != nil {
			return fmt.Errorf("animation %q joint %d translations: %w", a.Name, i, err)
		}
		if err := validateKeysQ(t.Rotations, a.Duration); err != nil {
			return fmt.Errorf("animation %q joint %d rotations: %w", a.Name, i, err)
		}
		if err := validateKeys3(t.Scales, a.Duration); err != nil {
			return fmt.Errorf("animation %q joint %d scales: %w", a.Name, i, err)
		}
	}
	return nil
}

func validateKeys3(keys []Key3, duration float64) error {
	times := make([]float64, len(keys))
	for i, k := range keys {
		times[i] = k.Time
	}
	return validateTimes(times, duration)
}

func validateKeysQ(keys []KeyQ, duration float64) error {
	times := make([]float64, len(keys))
	for i, k := range keys {
		times[i] = k.Time
	}
	return validateTimes(times, duration)
}

func validateTimes(times []float64, duration float64) error {
	if len(times) == 0 {
		return fmt.Errorf("empty channel")
	}
	if times[0] != 0 {
		return fmt.Errorf("first key at %g, want 0", times[0])
	}
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return fmt.Errorf("key %d time %g not after %g", i, times[i], times[i-1])
		}
	}
	// A single key is a bind-pose or degenerate-span channel; only resampled
	// channels must end on the clip duration.
	if last := times[len(times)-1]; len(times) > 1 && !scalar.EqualWithinAbs(last, duration, timeTolerance) {
		return fmt.Errorf("last key at %g, want duration %g", last, duration)
	}
	return nil
}
