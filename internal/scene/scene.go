// Package scene declares the capabilities an animated scene backend must
// provide for keyframe extraction: node and property lookup, clip
// enumeration, timeline metadata, and time-based evaluation. The sampling
// code depends only on these interfaces so it can run against any backend,
// including scripted ones in tests.
package scene

import (
	"gonum.org/v1/gonum/mat"

	"github.com/ivlev/scene2anim/internal/mathx"
)

// TimeSpan is a [Start, End] interval in seconds.
type TimeSpan struct {
	Start float64
	End   float64
}

// Scene is the read-only asset graph queried during extraction.
type Scene interface {
	// FindNode returns the node with the given name, or nil.
	FindNode(name string) Node

	// Clips returns all animation clips in discovery order.
	Clips() []Clip

	// DefaultTimeSpan returns the scene's default timeline span, used for
	// clips that carry no local span of their own.
	DefaultTimeSpan() TimeSpan

	// TimeMode returns the scene's timeline mode.
	TimeMode() TimeMode

	// CustomFrameRate returns the frame rate used when TimeMode is
	// TimeModeCustom.
	CustomFrameRate() float64

	// Evaluate returns an evaluator scoped to the given clip. The clip is an
	// explicit input rather than ambient scene state, so evaluations against
	// different clips cannot interfere. A nil clip selects the scene's
	// default scope.
	Evaluate(clip Clip) Evaluator
}

// Clip is one named take of animated data.
type Clip interface {
	Name() string

	// LocalTimeSpan returns the clip's own time span, if it has one.
	LocalTimeSpan() (TimeSpan, bool)
}

// Node is a named object in the scene graph.
type Node interface {
	Name() string

	// FindProperty returns the named property of this node, or nil.
	FindProperty(name string) Property
}

// Property is a named, typed value attached to a node.
type Property interface {
	Name() string
	Type() PropertyType

	// Animated reports whether the property carries time-varying data.
	Animated() bool
}

// Value is one evaluated property sample. Its dynamic type is one of
// bool, int, float64, [2]float64 or [3]float64, matching the property's
// declared type.
type Value = any

// Evaluator answers time-based queries for one clip scope. Calls are
// synchronous and may be expensive; the caller drives them strictly
// sequentially.
type Evaluator interface {
	// GlobalTransform evaluates the node's world-space transform matrix at
	// time t (seconds).
	GlobalTransform(n Node, t float64) *mat.Dense

	// LocalTransform evaluates the node's parent-relative transform matrix
	// at time t (seconds).
	LocalTransform(n Node, t float64) *mat.Dense

	// PropertyValue evaluates the property at time t (seconds).
	PropertyValue(p Property, t float64) Value
}

// Converter translates a raw evaluated 4x4 matrix into a normalized
// transform in the output unit/axis system. It fails when the matrix cannot
// be represented as a translation/rotation/scale triple.
type Converter interface {
	Transform(m *mat.Dense) (mathx.Transform, error)
}
