package sampler

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/ivlev/scene2anim/internal/scene"
	"github.com/ivlev/scene2anim/internal/skeleton"
	"github.com/ivlev/scene2anim/internal/track"
)

// sampleJoints fills one JointTrack per skeleton joint, in joint index
// order. A joint with no matching scene node gets a single bind-pose key per
// channel; a matched joint is resampled across the window. Any conversion
// failure aborts the whole clip.
func sampleJoints(sc scene.Scene, clip scene.Clip, conv scene.Converter, skel *skeleton.Skeleton, w Window, anim *track.RawAnimation) error {
	ev := sc.Evaluate(clip)

	// One track per joint up front; unmatched joints keep their bind pose.
	anim.Tracks = make([]track.JointTrack, skel.NumJoints())

	for i := 0; i < skel.NumJoints(); i++ {
		jt := &anim.Tracks[i]
		name := skel.JointName(i)

		node := sc.FindNode(name)
		if node == nil {
			if Verbose {
				log.Printf("[*] no animation track found for joint %q, using skeleton bind pose", name)
			}
			bind := skel.LocalBindPose(i)
			jt.Translations = []track.Key3{{Time: 0, Value: bind.Translation}}
			jt.Rotations = []track.KeyQ{{Time: 0, Value: bind.Rotation}}
			jt.Scales = []track.Key3{{Time: 0, Value: bind.Scale}}
			continue
		}

		n := w.maxKeys()
		jt.Translations = make([]track.Key3, 0, n)
		jt.Rotations = make([]track.KeyQ, 0, n)
		jt.Scales = make([]track.Key3, 0, n)

		// Fixed-period sweep. The end time is always sampled exactly, and the
		// loop body runs at least once even for a degenerate window.
		for t, again := w.Start, true; again; t += w.Period {
			if t >= w.End {
				t = w.End
				again = false
			}

			// A root joint needs its world placement; a child is defined
			// relative to its parent by construction.
			var raw *mat.Dense
			if skel.HasParent(i) {
				raw = ev.LocalTransform(node, t)
			} else {
				raw = ev.GlobalTransform(node, t)
			}

			xf, err := conv.Transform(raw)
			if err != nil {
				return fmt.Errorf("joint %q at t=%gs: %w: %v", name, t, ErrConversion, err)
			}

			local := t - w.Start
			jt.Translations = append(jt.Translations, track.Key3{Time: local, Value: xf.Translation})
			jt.Rotations = append(jt.Rotations, track.KeyQ{Time: local, Value: xf.Rotation})
			jt.Scales = append(jt.Scales, track.Key3{Time: local, Value: xf.Scale})
		}
	}
	return nil
}
