package yamlscene

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ivlev/scene2anim/internal/mathx"
	"github.com/ivlev/scene2anim/internal/scene"
	"github.com/ivlev/scene2anim/internal/skeleton"
)

// Scene builds the runtime scene graph from the document: resolves node
// parents, canonicalizes property values, and indexes clip curves.
func (d *Document) Scene() (scene.Scene, error) {
	sc := &sceneImpl{
		doc:   d,
		nodes: make(map[string]*nodeImpl, len(d.Nodes)),
	}

	for i := range d.Nodes {
		nd := &d.Nodes[i]
		if nd.Name == "" {
			return nil, fmt.Errorf("node %d: empty name", i)
		}
		if _, dup := sc.nodes[nd.Name]; dup {
			return nil, fmt.Errorf("duplicate node %q", nd.Name)
		}
		n := &nodeImpl{
			name:  nd.Name,
			rest:  nd.Rest.transform(),
			props: make(map[string]*propertyImpl, len(nd.Properties)),
		}
		for j := range nd.Properties {
			pd := &nd.Properties[j]
			p, err := newProperty(pd)
			if err != nil {
				return nil, fmt.Errorf("node %q property %q: %w", nd.Name, pd.Name, err)
			}
			n.props[pd.Name] = p
		}
		sc.nodes[nd.Name] = n
	}

	// Parents resolve after all nodes exist; order in the document is free.
	for i := range d.Nodes {
		nd := &d.Nodes[i]
		if nd.Parent == "" {
			continue
		}
		parent, ok := sc.nodes[nd.Parent]
		if !ok {
			return nil, fmt.Errorf("node %q: unknown parent %q", nd.Name, nd.Parent)
		}
		sc.nodes[nd.Name].parent = parent
	}

	for i := range d.Clips {
		cd := &d.Clips[i]
		if cd.Name == "" {
			return nil, fmt.Errorf("clip %d: empty name", i)
		}
		c := &clipImpl{
			doc:    cd,
			curves: make(map[string]*CurveDoc, len(cd.Curves)),
		}
		for j := range cd.Curves {
			cv := &cd.Curves[j]
			if _, ok := sc.nodes[cv.Node]; !ok {
				return nil, fmt.Errorf("clip %q: curve for unknown node %q", cd.Name, cv.Node)
			}
			c.curves[cv.Node] = cv
		}
		sc.clips = append(sc.clips, c)
	}

	return sc, nil
}

// BuildSkeleton constructs the skeleton from the document's skeleton
// section, resolving parent names to indices.
func (d *Document) BuildSkeleton() (*skeleton.Skeleton, error) {
	index := make(map[string]int, len(d.Skeleton.Joints))
	joints := make([]skeleton.Joint, 0, len(d.Skeleton.Joints))
	for i, jd := range d.Skeleton.Joints {
		parent := skeleton.NoParent
		if jd.Parent != "" {
			pi, ok := index[jd.Parent]
			if !ok {
				return nil, fmt.Errorf("joint %q: parent %q not declared before it", jd.Name, jd.Parent)
			}
			parent = pi
		}
		index[jd.Name] = i
		joints = append(joints, skeleton.Joint{
			Name:     jd.Name,
			Parent:   parent,
			BindPose: jd.BindPose.transform(),
		})
	}
	return skeleton.New(joints)
}

type sceneImpl struct {
	doc   *Document
	nodes map[string]*nodeImpl
	clips []*clipImpl
}

func (s *sceneImpl) FindNode(name string) scene.Node {
	n, ok := s.nodes[name]
	if !ok {
		return nil
	}
	return n
}

func (s *sceneImpl) Clips() []scene.Clip {
	out := make([]scene.Clip, len(s.clips))
	for i, c := range s.clips {
		out[i] = c
	}
	return out
}

func (s *sceneImpl) DefaultTimeSpan() scene.TimeSpan {
	return scene.TimeSpan{Start: s.doc.Timeline.Start, End: s.doc.Timeline.End}
}

// The document always runs at its own declared rate.
func (s *sceneImpl) TimeMode() scene.TimeMode { return scene.TimeModeCustom }
func (s *sceneImpl) CustomFrameRate() float64 { return s.doc.FrameRate }

func (s *sceneImpl) Evaluate(clip scene.Clip) scene.Evaluator {
	ev := &evaluator{scene: s}
	if clip != nil {
		ev.clip = clip.(*clipImpl)
	}
	return ev
}

type clipImpl struct {
	doc    *ClipDoc
	curves map[string]*CurveDoc
}

func (c *clipImpl) Name() string { return c.doc.Name }

func (c *clipImpl) LocalTimeSpan() (scene.TimeSpan, bool) {
	if c.doc.Span == nil {
		return scene.TimeSpan{}, false
	}
	return scene.TimeSpan{Start: c.doc.Span.Start, End: c.doc.Span.End}, true
}

type nodeImpl struct {
	name   string
	parent *nodeImpl
	rest   mathx.Transform
	props  map[string]*propertyImpl
}

func (n *nodeImpl) Name() string { return n.name }

func (n *nodeImpl) FindProperty(name string) scene.Property {
	p, ok := n.props[name]
	if !ok {
		return nil
	}
	return p
}

type propertyImpl struct {
	name     string
	typ      scene.PropertyType
	animated bool
	constant scene.Value
	keys     []valueKey
}

type valueKey struct {
	time  float64
	value scene.Value
}

func newProperty(pd *PropertyDoc) (*propertyImpl, error) {
	p := &propertyImpl{
		name:     pd.Name,
		typ:      parseType(pd.Type),
		animated: pd.Animated,
	}
	if pd.Value != nil {
		v, err := parseValue(p.typ, pd.Value)
		if err != nil {
			return nil, err
		}
		p.constant = v
	}
	for _, kd := range pd.Keys {
		v, err := parseValue(p.typ, kd.Value)
		if err != nil {
			return nil, fmt.Errorf("key at t=%g: %w", kd.Time, err)
		}
		p.keys = append(p.keys, valueKey{time: kd.Time, value: v})
	}
	if p.constant == nil && len(p.keys) > 0 {
		p.constant = p.keys[0].value
	}
	return p, nil
}

func (p *propertyImpl) Name() string             { return p.name }
func (p *propertyImpl) Type() scene.PropertyType { return p.typ }
func (p *propertyImpl) Animated() bool           { return p.animated }

type evaluator struct {
	scene *sceneImpl
	clip  *clipImpl // nil for the default scope
}

// LocalTransform samples the node's clip curve (falling back to its rest
// transform for channels without keys) and composes the T*R*S matrix.
func (e *evaluator) LocalTransform(n scene.Node, t float64) *mat.Dense {
	node := n.(*nodeImpl)
	return mathx.Matrix(e.localAt(node, t))
}

// GlobalTransform is the product of the local transforms along the parent
// chain.
func (e *evaluator) GlobalTransform(n scene.Node, t float64) *mat.Dense {
	node := n.(*nodeImpl)
	m := mathx.Matrix(e.localAt(node, t))
	for p := node.parent; p != nil; p = p.parent {
		pm := mathx.Matrix(e.localAt(p, t))
		var out mat.Dense
		out.Mul(pm, m)
		m = &out
	}
	return m
}

func (e *evaluator) localAt(n *nodeImpl, t float64) mathx.Transform {
	x := n.rest
	if e.clip == nil {
		return x
	}
	cv, ok := e.clip.curves[n.name]
	if !ok {
		return x
	}
	if len(cv.Translation) > 0 {
		x.Translation = sampleVec3(cv.Translation, t)
	}
	if len(cv.Rotation) > 0 {
		x.Rotation = sampleQuat(cv.Rotation, t)
	}
	if len(cv.Scale) > 0 {
		x.Scale = sampleVec3(cv.Scale, t)
	}
	return x
}

// PropertyValue interpolates the keyed property values at t. Discrete types
// (bool, int) hold the last key; continuous ones blend linearly.
func (e *evaluator) PropertyValue(sp scene.Property, t float64) scene.Value {
	p := sp.(*propertyImpl)
	if !p.animated || len(p.keys) == 0 {
		return p.constant
	}

	prev, next, f := surround(len(p.keys), t, func(i int) float64 { return p.keys[i].time })
	a, b := p.keys[prev].value, p.keys[next].value

	switch p.typ {
	case scene.TypeFloat, scene.TypeDouble:
		return mathx.Lerp(a.(float64), b.(float64), f)
	case scene.TypeDouble2:
		av, bv := a.([2]float64), b.([2]float64)
		return [2]float64{mathx.Lerp(av[0], bv[0], f), mathx.Lerp(av[1], bv[1], f)}
	case scene.TypeDouble3:
		av, bv := a.([3]float64), b.([3]float64)
		return [3]float64{
			mathx.Lerp(av[0], bv[0], f),
			mathx.Lerp(av[1], bv[1], f),
			mathx.Lerp(av[2], bv[2], f),
		}
	default:
		return a
	}
}

func sampleVec3(keys []Vec3Key, t float64) mathx.Vec3 {
	prev, next, f := surround(len(keys), t, func(i int) float64 { return keys[i].Time })
	a := mathx.Vec3{X: keys[prev].Value[0], Y: keys[prev].Value[1], Z: keys[prev].Value[2]}
	b := mathx.Vec3{X: keys[next].Value[0], Y: keys[next].Value[1], Z: keys[next].Value[2]}
	return mathx.LerpVec3(a, b, f)
}

func sampleQuat(keys []QuatKey, t float64) mathx.Quaternion {
	prev, next, f := surround(len(keys), t, func(i int) float64 { return keys[i].Time })
	a := mathx.Quaternion{Real: keys[prev].Value[0], Imag: keys[prev].Value[1], Jmag: keys[prev].Value[2], Kmag: keys[prev].Value[3]}
	b := mathx.Quaternion{Real: keys[next].Value[0], Imag: keys[next].Value[1], Jmag: keys[next].Value[2], Kmag: keys[next].Value[3]}
	return mathx.NLerp(a, b, f)
}

// surround locates the keys around t: before the first key it clamps to the
// first, after the last to the last, otherwise it returns the enclosing pair
// and the interpolation factor between them.
func surround(n int, t float64, timeAt func(int) float64) (prev, next int, f float64) {
	if t <= timeAt(0) {
		return 0, 0, 0
	}
	if t >= timeAt(n-1) {
		return n - 1, n - 1, 0
	}
	for i := 0; i < n-1; i++ {
		if t >= timeAt(i) && t < timeAt(i+1) {
			delta := timeAt(i+1) - timeAt(i)
			return i, i + 1, (t - timeAt(i)) / delta
		}
	}
	return n - 1, n - 1, 0
}
