package track

import (
	"testing"

	"github.com/ivlev/scene2anim/internal/mathx"
)

func key3(t float64) Key3 {
	return Key3{Time: t, Value: mathx.Vec3{X: t}}
}

func keyQ(t float64) KeyQ {
	return KeyQ{Time: t, Value: mathx.Quaternion{Real: 1}}
}

func validAnimation() RawAnimation {
	return RawAnimation{
		Name:     "walk",
		Duration: 1,
		Tracks: []JointTrack{
			{
				Translations: []Key3{key3(0), key3(0.5), key3(1)},
				Rotations:    []KeyQ{keyQ(0), keyQ(0.5), keyQ(1)},
				Scales:       []Key3{key3(0), key3(0.5), key3(1)},
			},
			{
				// Bind-pose fallback: one key per channel at time 0.
				Translations: []Key3{key3(0)},
				Rotations:    []KeyQ{keyQ(0)},
				Scales:       []Key3{key3(0)},
			},
		},
	}
}

func TestRawAnimationValidate(t *testing.T) {
	anim := validAnimation()
	if err := anim.Validate(); err != nil {
		t.Fatalf("valid animation rejected: %v", err)
	}
}

func TestRawAnimationValidateFailures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*RawAnimation)
	}{
		{"non-positive duration", func(a *RawAnimation) { a.Duration = 0 }},
		{"empty channel", func(a *RawAnimation) { a.Tracks[0].Translations = nil }},
		{"first key not at zero", func(a *RawAnimation) { a.Tracks[0].Translations[0].Time = 0.1 }},
		{"non-increasing times", func(a *RawAnimation) { a.Tracks[0].Scales[2].Time = 0.5 }},
		{"last key off duration", func(a *RawAnimation) { a.Tracks[0].Rotations[2].Time = 0.7 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			anim := validAnimation()
			tc.mutate(&anim)
			if err := anim.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestRawAnimationValidateToleratesFloatDrift(t *testing.T) {
	anim := validAnimation()
	// Accumulated sampling error within tolerance is fine.
	anim.Tracks[0].Translations[2].Time = 1 + 5e-7
	anim.Tracks[0].Rotations[2].Time = 1 - 5e-7
	anim.Tracks[0].Scales[2].Time = 1 + 5e-7
	if err := anim.Validate(); err != nil {
		t.Fatalf("drift within tolerance rejected: %v", err)
	}
}

func TestGenericTrackValidate(t *testing.T) {
	good := &FloatTrack{Keys: []Key[float64]{
		{Interpolation: Linear, Time: 0, Value: 1},
		{Interpolation: Linear, Time: 0.5, Value: 2},
		{Interpolation: Linear, Time: 1, Value: 3},
	}}
	if err := good.Validate(); err != nil {
		t.Fatalf("valid track rejected: %v", err)
	}
	if good.Len() != 3 {
		t.Fatalf("Len = %d, want 3", good.Len())
	}

	outOfRange := &FloatTrack{Keys: []Key[float64]{{Time: 1.5}}}
	if err := outOfRange.Validate(); err == nil {
		t.Fatal("time outside [0,1] accepted")
	}

	unordered := &Float2Track{Keys: []Key[mathx.Vec2]{{Time: 0.5}, {Time: 0.5}}}
	if err := unordered.Validate(); err == nil {
		t.Fatal("duplicate times accepted")
	}
}
