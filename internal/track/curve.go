package track

import (
	"fmt"

	"github.com/ivlev/scene2anim/internal/mathx"
)

// Key is one generic-track keyframe. Time is normalized to [0,1] over the
// sampling window.
type Key[T any] struct {
	Interpolation Interpolation
	Time          float64
	Value         T
}

// Track is a generic single-property curve, independent of skeleton
// structure.
type Track[T any] struct {
	Keys []Key[T]
}

// Curve is the type-erased view of a generic track, returned by ad-hoc
// property extraction where the value kind is only known at runtime.
type Curve interface {
	Len() int
	Validate() error
}

// The closed set of value kinds a property curve can carry.
type (
	FloatTrack  = Track[float64]
	Float2Track = Track[mathx.Vec2]
	Float3Track = Track[mathx.Vec3]
	Float4Track = Track[mathx.Vec4]
)

func (t *Track[T]) Len() int { return len(t.Keys) }

// Validate checks that keys are strictly increasing within normalized [0,1]
// time.
func (t *Track[T]) Validate() error {
	for i, k := range t.Keys {
		if k.Time < 0 || k.Time > 1 {
			return fmt.Errorf("key %d: normalized time %g outside [0,1]", i, k.Time)
		}
		if i > 0 && k.Time <= t.Keys[i-1].Time {
			return fmt.Errorf("key %d: time %g not after %g", i, k.Time, t.Keys[i-1].Time)
		}
	}
	return nil
}
