// Package export writes extracted animation sets to human-readable YAML.
// This is a debug and interchange surface, not the compressed runtime
// format.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/scene2anim/internal/skeleton"
	"github.com/ivlev/scene2anim/internal/track"
)

// Document is the root of an exported file.
type Document struct {
	Version    string         `yaml:"version"`
	Animations []AnimationDoc `yaml:"animations"`
}

// AnimationDoc is one exported clip.
type AnimationDoc struct {
	Name     string          `yaml:"name"`
	Duration float64         `yaml:"duration"`
	Tracks   []JointTrackDoc `yaml:"tracks"`
}

// JointTrackDoc carries one joint's channels. Joint records the skeleton
// joint name for readability; consumers align by position.
type JointTrackDoc struct {
	Joint        string    `yaml:"joint"`
	Translations []Vec3Key `yaml:"translations"`
	Rotations    []QuatKey `yaml:"rotations"`
	Scales       []Vec3Key `yaml:"scales"`
}

// Vec3Key mirrors track.Key3 in document form.
type Vec3Key struct {
	Time  float64    `yaml:"time"`
	Value [3]float64 `yaml:"value"`
}

// QuatKey mirrors track.KeyQ in document form, [w,x,y,z].
type QuatKey struct {
	Time  float64    `yaml:"time"`
	Value [4]float64 `yaml:"value"`
}

// Build converts an animation set into its document form. The skeleton
// provides joint names and must be the one the set was extracted against.
func Build(set track.AnimationSet, skel *skeleton.Skeleton) (*Document, error) {
	doc := &Document{Version: "1.0"}
	for _, anim := range set {
		if len(anim.Tracks) != skel.NumJoints() {
			return nil, fmt.Errorf("animation %q has %d tracks for a %d-joint skeleton",
				anim.Name, len(anim.Tracks), skel.NumJoints())
		}
		ad := AnimationDoc{Name: anim.Name, Duration: anim.Duration}
		for i, jt := range anim.Tracks {
			td := JointTrackDoc{Joint: skel.JointName(i)}
			for _, k := range jt.Translations {
				td.Translations = append(td.Translations, Vec3Key{Time: k.Time, Value: [3]float64{k.Value.X, k.Value.Y, k.Value.Z}})
			}
			for _, k := range jt.Rotations {
				td.Rotations = append(td.Rotations, QuatKey{Time: k.Time, Value: [4]float64{k.Value.Real, k.Value.Imag, k.Value.Jmag, k.Value.Kmag}})
			}
			for _, k := range jt.Scales {
				td.Scales = append(td.Scales, Vec3Key{Time: k.Time, Value: [3]float64{k.Value.X, k.Value.Y, k.Value.Z}})
			}
			ad.Tracks = append(ad.Tracks, td)
		}
		doc.Animations = append(doc.Animations, ad)
	}
	return doc, nil
}

// Write builds and writes the document to path.
func Write(set track.AnimationSet, skel *skeleton.Skeleton, path string) error {
	doc, err := Build(set, skel)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read loads an exported document back, for tooling.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// OutputPath creates a timestamped export filename for a scene document.
func OutputPath(dir, sceneName string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.anim.yaml", sceneName, timestamp))
}
