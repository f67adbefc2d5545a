package sampler

import (
	"fmt"

	"github.com/ivlev/scene2anim/internal/mathx"
	"github.com/ivlev/scene2anim/internal/scene"
	"github.com/ivlev/scene2anim/internal/track"
)

// sampleProperty extracts one property into a typed generic track,
// dispatching on the declared type over the closed set of value kinds.
func sampleProperty(ev scene.Evaluator, p scene.Property, w Window) (track.Curve, error) {
	switch pt := p.Type(); pt {
	case scene.TypeBool, scene.TypeInt, scene.TypeFloat, scene.TypeDouble:
		return sampleCurve(ev, p, w, func(v scene.Value) (float64, error) {
			return decodeScalar(v, pt)
		})
	case scene.TypeDouble2:
		return sampleCurve(ev, p, w, decodeVec2)
	case scene.TypeDouble3:
		return sampleCurve(ev, p, w, decodeVec3)
	default:
		return nil, fmt.Errorf("property %q: %w: %s", p.Name(), ErrUnsupportedType, pt)
	}
}

// sampleCurve holds the sampling policy, written once and parametrized by a
// value-kind decode function. A scene-constant property becomes a single
// Step key at time 0: one key means "holds for the whole timeline", and Step
// avoids implying interpolation toward a second key that does not exist. An
// animated property is resampled across the full window with Linear keys in
// normalized time.
func sampleCurve[T any](ev scene.Evaluator, p scene.Property, w Window, decode func(scene.Value) (T, error)) (*track.Track[T], error) {
	tr := &track.Track[T]{}

	if !p.Animated() {
		v, err := decode(ev.PropertyValue(p, 0))
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", p.Name(), err)
		}
		tr.Keys = []track.Key[T]{{Interpolation: track.Step, Time: 0, Value: v}}
		return tr, nil
	}

	tr.Keys = make([]track.Key[T], 0, w.maxKeys())

	// Same sweep as joint sampling: inclusive end, at least one iteration.
	for t, again := w.Start, true; again; t += w.Period {
		if t >= w.End {
			t = w.End
			again = false
		}

		v, err := decode(ev.PropertyValue(p, t))
		if err != nil {
			return nil, fmt.Errorf("property %q at t=%gs: %w", p.Name(), t, err)
		}

		tr.Keys = append(tr.Keys, track.Key[T]{
			Interpolation: track.Linear,
			Time:          (t - w.Start) / w.Duration,
			Value:         v,
		})
	}
	return tr, nil
}

// decodeScalar coerces a sampled value to float64 according to the declared
// scalar type.
func decodeScalar(v scene.Value, pt scene.PropertyType) (float64, error) {
	switch pt {
	case scene.TypeBool:
		b, ok := v.(bool)
		if !ok {
			return 0, decodeError(v, pt)
		}
		if b {
			return 1, nil
		}
		return 0, nil
	case scene.TypeInt:
		i, ok := v.(int)
		if !ok {
			return 0, decodeError(v, pt)
		}
		return float64(i), nil
	case scene.TypeFloat, scene.TypeDouble:
		f, ok := v.(float64)
		if !ok {
			return 0, decodeError(v, pt)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedType, pt)
	}
}

func decodeVec2(v scene.Value) (mathx.Vec2, error) {
	d, ok := v.([2]float64)
	if !ok {
		return mathx.Vec2{}, decodeError(v, scene.TypeDouble2)
	}
	return mathx.Vec2{X: d[0], Y: d[1]}, nil
}

func decodeVec3(v scene.Value) (mathx.Vec3, error) {
	d, ok := v.([3]float64)
	if !ok {
		return mathx.Vec3{}, decodeError(v, scene.TypeDouble3)
	}
	return mathx.Vec3{X: d[0], Y: d[1], Z: d[2]}, nil
}

func decodeError(v scene.Value, pt scene.PropertyType) error {
	return fmt.Errorf("evaluated value %T does not match declared type %s", v, pt)
}
