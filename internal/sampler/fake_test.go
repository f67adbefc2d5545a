package sampler

import (
	"io"
	"log"
	"os"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ivlev/scene2anim/internal/mathx"
	"github.com/ivlev/scene2anim/internal/scene"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// fakeScene is a scripted scene backend: transforms and property values are
// plain functions of time, so tests control every sample exactly.
type fakeScene struct {
	nodes      map[string]*fakeNode
	clips      []scene.Clip
	span       scene.TimeSpan
	mode       scene.TimeMode
	customRate float64

	// Clips listed here evaluate to a degenerate (all-zero) matrix, which
	// the identity converter rejects.
	failClips map[string]bool
}

func (s *fakeScene) FindNode(name string) scene.Node {
	n, ok := s.nodes[name]
	if !ok {
		return nil
	}
	return n
}

func (s *fakeScene) Clips() []scene.Clip             { return s.clips }
func (s *fakeScene) DefaultTimeSpan() scene.TimeSpan { return s.span }
func (s *fakeScene) TimeMode() scene.TimeMode        { return s.mode }
func (s *fakeScene) CustomFrameRate() float64        { return s.customRate }

func (s *fakeScene) Evaluate(clip scene.Clip) scene.Evaluator {
	return &fakeEvaluator{scene: s, clip: clip}
}

type fakeClip struct {
	name string
	span *scene.TimeSpan
}

func (c *fakeClip) Name() string { return c.name }

func (c *fakeClip) LocalTimeSpan() (scene.TimeSpan, bool) {
	if c.span == nil {
		return scene.TimeSpan{}, false
	}
	return *c.span, true
}

type fakeNode struct {
	name   string
	props  map[string]*fakeProp
	global func(t float64) mathx.Transform
	local  func(t float64) mathx.Transform
}

func (n *fakeNode) Name() string { return n.name }

func (n *fakeNode) FindProperty(name string) scene.Property {
	p, ok := n.props[name]
	if !ok {
		return nil
	}
	return p
}

type fakeProp struct {
	name     string
	typ      scene.PropertyType
	animated bool
	at       func(t float64) scene.Value
}

func (p *fakeProp) Name() string             { return p.name }
func (p *fakeProp) Type() scene.PropertyType { return p.typ }
func (p *fakeProp) Animated() bool           { return p.animated }

type fakeEvaluator struct {
	scene *fakeScene
	clip  scene.Clip
}

func (e *fakeEvaluator) failing() bool {
	return e.clip != nil && e.scene.failClips[e.clip.Name()]
}

func (e *fakeEvaluator) GlobalTransform(n scene.Node, t float64) *mat.Dense {
	if e.failing() {
		return mat.NewDense(4, 4, nil)
	}
	return mathx.Matrix(n.(*fakeNode).global(t))
}

func (e *fakeEvaluator) LocalTransform(n scene.Node, t float64) *mat.Dense {
	if e.failing() {
		return mat.NewDense(4, 4, nil)
	}
	return mathx.Matrix(n.(*fakeNode).local(t))
}

func (e *fakeEvaluator) PropertyValue(p scene.Property, t float64) scene.Value {
	return p.(*fakeProp).at(t)
}

// staticNode moves linearly on X in world space and holds a distinct local
// placement, so global-vs-local sampling decisions are observable.
func staticNode(name string) *fakeNode {
	return &fakeNode{
		name: name,
		global: func(t float64) mathx.Transform {
			x := mathx.Identity()
			x.Translation = mathx.Vec3{X: t, Y: 2, Z: 3}
			return x
		},
		local: func(t float64) mathx.Transform {
			x := mathx.Identity()
			x.Translation = mathx.Vec3{X: -t, Y: 9, Z: 9}
			return x
		},
	}
}
