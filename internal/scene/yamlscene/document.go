// Package yamlscene implements the scene interfaces on top of a YAML
// document describing nodes, keyed transform curves per clip, and keyed
// properties. It is the reference backend: real asset-SDK backends plug in
// behind the same interfaces.
package yamlscene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/scene2anim/internal/mathx"
	"github.com/ivlev/scene2anim/internal/scene"
)

// Document is the root of a scene file.
type Document struct {
	Version   string      `yaml:"version"`
	FrameRate float64     `yaml:"frame_rate"`
	Timeline  SpanDoc     `yaml:"timeline"`
	Skeleton  SkeletonDoc `yaml:"skeleton"`
	Nodes     []NodeDoc   `yaml:"nodes"`
	Clips     []ClipDoc   `yaml:"clips"`
}

// SpanDoc is a time interval in seconds.
type SpanDoc struct {
	Start float64 `yaml:"start"`
	End   float64 `yaml:"end"`
}

// SkeletonDoc lists joints in hierarchy order (parents first).
type SkeletonDoc struct {
	Joints []JointDoc `yaml:"joints"`
}

// JointDoc references its parent by name; an empty parent marks a root.
type JointDoc struct {
	Name     string       `yaml:"name"`
	Parent   string       `yaml:"parent,omitempty"`
	BindPose TransformDoc `yaml:"bind_pose"`
}

// TransformDoc is a TRS triple. Rotation is [w,x,y,z]. Omitted rotation and
// scale default to identity.
type TransformDoc struct {
	Translation [3]float64 `yaml:"translation"`
	Rotation    [4]float64 `yaml:"rotation"`
	Scale       [3]float64 `yaml:"scale"`
}

// NodeDoc is one scene-graph node with its rest transform and properties.
type NodeDoc struct {
	Name       string        `yaml:"name"`
	Parent     string        `yaml:"parent,omitempty"`
	Rest       TransformDoc  `yaml:"rest"`
	Properties []PropertyDoc `yaml:"properties,omitempty"`
}

// PropertyDoc declares a typed property. An animated property carries keys;
// a constant one carries a single value.
type PropertyDoc struct {
	Name     string        `yaml:"name"`
	Type     string        `yaml:"type"`
	Animated bool          `yaml:"animated,omitempty"`
	Value    any           `yaml:"value,omitempty"`
	Keys     []ValueKeyDoc `yaml:"keys,omitempty"`
}

// ValueKeyDoc is one keyed property value; the value shape follows the
// property's declared type (scalar or component list).
type ValueKeyDoc struct {
	Time  float64 `yaml:"time"`
	Value any     `yaml:"value"`
}

// ClipDoc is one animation take. A missing span falls back to the document
// timeline.
type ClipDoc struct {
	Name   string     `yaml:"name"`
	Span   *SpanDoc   `yaml:"span,omitempty"`
	Curves []CurveDoc `yaml:"curves,omitempty"`
}

// CurveDoc animates one node's transform channels within a clip. Channels
// without keys hold the node's rest value.
type CurveDoc struct {
	Node        string    `yaml:"node"`
	Translation []Vec3Key `yaml:"translation,omitempty"`
	Rotation    []QuatKey `yaml:"rotation,omitempty"`
	Scale       []Vec3Key `yaml:"scale,omitempty"`
}

// Vec3Key is a keyed 3-vector.
type Vec3Key struct {
	Time  float64    `yaml:"time"`
	Value [3]float64 `yaml:"value"`
}

// QuatKey is a keyed rotation, [w,x,y,z].
type QuatKey struct {
	Time  float64    `yaml:"time"`
	Value [4]float64 `yaml:"value"`
}

// Load reads and parses a scene document from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a scene document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scene document: %w", err)
	}
	return &doc, nil
}

// transform converts a TransformDoc to a mathx.Transform, applying the
// identity defaults for omitted rotation/scale.
func (d TransformDoc) transform() mathx.Transform {
	x := mathx.Transform{
		Translation: mathx.Vec3{X: d.Translation[0], Y: d.Translation[1], Z: d.Translation[2]},
		Rotation:    mathx.Quaternion{Real: d.Rotation[0], Imag: d.Rotation[1], Jmag: d.Rotation[2], Kmag: d.Rotation[3]},
		Scale:       mathx.Vec3{X: d.Scale[0], Y: d.Scale[1], Z: d.Scale[2]},
	}
	if x.Rotation == (mathx.Quaternion{}) {
		x.Rotation = mathx.Quaternion{Real: 1}
	}
	if x.Scale == (mathx.Vec3{}) {
		x.Scale = mathx.Vec3{X: 1, Y: 1, Z: 1}
	}
	return x
}

// parseType maps a declared type name to its PropertyType.
func parseType(s string) scene.PropertyType {
	switch s {
	case "bool":
		return scene.TypeBool
	case "int":
		return scene.TypeInt
	case "float":
		return scene.TypeFloat
	case "double":
		return scene.TypeDouble
	case "double2":
		return scene.TypeDouble2
	case "double3":
		return scene.TypeDouble3
	case "double4":
		return scene.TypeDouble4
	case "string":
		return scene.TypeString
	case "enum":
		return scene.TypeEnum
	default:
		return scene.TypeUndefined
	}
}

// parseValue canonicalizes a YAML-decoded value into the dynamic type
// matching the declared property type.
func parseValue(pt scene.PropertyType, raw any) (scene.Value, error) {
	switch pt {
	case scene.TypeBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fmt.Errorf("value %v is not a bool", raw)
		}
		return b, nil
	case scene.TypeInt:
		i, ok := raw.(int)
		if !ok {
			return nil, fmt.Errorf("value %v is not an int", raw)
		}
		return i, nil
	case scene.TypeFloat, scene.TypeDouble:
		f, ok := toFloat(raw)
		if !ok {
			return nil, fmt.Errorf("value %v is not a number", raw)
		}
		return f, nil
	case scene.TypeDouble2:
		c, err := toComponents(raw, 2)
		if err != nil {
			return nil, err
		}
		return [2]float64{c[0], c[1]}, nil
	case scene.TypeDouble3:
		c, err := toComponents(raw, 3)
		if err != nil {
			return nil, err
		}
		return [3]float64{c[0], c[1], c[2]}, nil
	default:
		// Kept raw; the sampler rejects the declared type before decoding.
		return raw, nil
	}
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

func toComponents(raw any, n int) ([]float64, error) {
	list, ok := raw.([]any)
	if !ok || len(list) != n {
		return nil, fmt.Errorf("value %v is not a %d-component list", raw, n)
	}
	out := make([]float64, n)
	for i, item := range list {
		f, ok := toFloat(item)
		if !ok {
			return nil, fmt.Errorf("component %d of %v is not a number", i, raw)
		}
		out[i] = f
	}
	return out, nil
}
