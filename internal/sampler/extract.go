package sampler

import (
	"fmt"
	"log"

	"github.com/ivlev/scene2anim/internal/scene"
	"github.com/ivlev/scene2anim/internal/skeleton"
	"github.com/ivlev/scene2anim/internal/track"
)

// ExtractAnimations resamples every clip of the scene against the skeleton
// and returns one RawAnimation per clip, in discovery order. A positive
// samplingRate overrides the scene's own frame rate.
//
// Failure semantics are all-or-nothing: the first clip that fails aborts the
// batch and the returned set is empty, never a partial prefix.
func ExtractAnimations(sc scene.Scene, conv scene.Converter, skel *skeleton.Skeleton, samplingRate float64) (track.AnimationSet, error) {
	clips := sc.Clips()
	if len(clips) == 0 {
		return nil, ErrNoAnimation
	}

	set := make(track.AnimationSet, 0, len(clips))
	for _, clip := range clips {
		w := PlanWindow(sc, clip, samplingRate)

		log.Printf("[*] extracting animation %q", clip.Name())
		anim := track.RawAnimation{
			Name:     clip.Name(),
			Duration: w.Duration,
		}
		if err := sampleJoints(sc, clip, conv, skel, w, &anim); err != nil {
			return nil, fmt.Errorf("clip %q: %w", clip.Name(), err)
		}
		set = append(set, anim)
	}
	return set, nil
}

// ExtractTrack samples one named property of one named node across the
// window into a generic track. Unlike joint sampling, a failed node lookup
// here is fatal: there is no bind pose to fall back to.
func ExtractTrack(sc scene.Scene, nodeName, propertyName string, w Window) (track.Curve, error) {
	log.Printf("[*] extracting animation track %q:%q", nodeName, propertyName)

	node := sc.FindNode(nodeName)
	if node == nil {
		return nil, fmt.Errorf("node %q: %w", nodeName, ErrNodeNotFound)
	}

	p := node.FindProperty(propertyName)
	if p == nil {
		return nil, fmt.Errorf("property %q on node %q: %w", propertyName, nodeName, ErrPropertyNotFound)
	}

	curve, err := sampleProperty(sc.Evaluate(nil), p, w)
	if err != nil {
		return nil, err
	}
	if err := curve.Validate(); err != nil {
		return nil, fmt.Errorf("track %q:%q: %w", nodeName, propertyName, err)
	}
	return curve, nil
}
