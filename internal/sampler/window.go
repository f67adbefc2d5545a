// Package sampler converts time-varying scene data into normalized keyframe
// tracks: a window planner, a per-joint transform sampler, a generic
// property-curve sampler, and the batch builder that ties them together.
package sampler

import (
	"log"

	"github.com/ivlev/scene2anim/internal/scene"
)

// Verbose enables informational per-joint logging.
var Verbose bool

// Window is the sampling plan for one clip: the time interval to sample,
// the clip duration, and the sampling period. Immutable once planned.
type Window struct {
	Start    float64
	End      float64
	Duration float64
	Period   float64
}

// PlanWindow derives the sampling window for a clip. The clip's local time
// span wins over the scene default when present; the override rate wins over
// the scene rate when positive. A degenerate span (end <= start) is a
// pose-only clip and gets a default 1s duration.
//
// The caller guarantees a positive resolved rate; planning itself cannot
// fail.
func PlanWindow(sc scene.Scene, clip scene.Clip, overrideRate float64) Window {
	span := sc.DefaultTimeSpan()
	if clip != nil {
		if local, ok := clip.LocalTimeSpan(); ok {
			span = local
		}
	}

	sceneRate := sc.TimeMode().FrameRate()
	if sc.TimeMode() == scene.TimeModeCustom {
		sceneRate = sc.CustomFrameRate()
	}

	rate := sceneRate
	if overrideRate > 0 {
		rate = overrideRate
		if Verbose {
			log.Printf("[*] using sampling rate of %ghz", rate)
		}
	} else if Verbose {
		log.Printf("[*] using scene sampling rate of %ghz", rate)
	}

	w := Window{
		Start:  span.Start,
		End:    span.End,
		Period: 1 / rate,
	}
	if w.End > w.Start {
		w.Duration = w.End - w.Start
	} else {
		w.Duration = 1
	}
	return w
}

// maxKeys bounds track reallocation: one key per period across the window,
// plus slack for the forced end sample.
func (w Window) maxKeys() int {
	return int(3 + (w.End-w.Start)/w.Period)
}
