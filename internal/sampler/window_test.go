package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ivlev/scene2anim/internal/scene"
)

func TestPlanWindow(t *testing.T) {
	base := &fakeScene{
		span: scene.TimeSpan{Start: 0, End: 2},
		mode: scene.TimeModeFrames30,
	}

	t.Run("override rate wins over scene rate", func(t *testing.T) {
		w := PlanWindow(base, nil, 24)
		assert.Equal(t, 1.0/24, w.Period)
	})

	t.Run("zero override falls back to scene rate", func(t *testing.T) {
		w := PlanWindow(base, nil, 0)
		assert.Equal(t, 1.0/30, w.Period)
	})

	t.Run("negative override falls back to scene rate", func(t *testing.T) {
		w := PlanWindow(base, nil, -5)
		assert.Equal(t, 1.0/30, w.Period)
	})

	t.Run("custom time mode uses the custom rate", func(t *testing.T) {
		sc := &fakeScene{
			span:       scene.TimeSpan{Start: 0, End: 1},
			mode:       scene.TimeModeCustom,
			customRate: 12,
		}
		w := PlanWindow(sc, nil, 0)
		assert.Equal(t, 1.0/12, w.Period)
	})

	t.Run("clip local span wins over scene default", func(t *testing.T) {
		clip := &fakeClip{name: "walk", span: &scene.TimeSpan{Start: 0.5, End: 1.5}}
		w := PlanWindow(base, clip, 0)
		assert.Equal(t, 0.5, w.Start)
		assert.Equal(t, 1.5, w.End)
		assert.Equal(t, 1.0, w.Duration)
	})

	t.Run("clip without local span uses scene default", func(t *testing.T) {
		clip := &fakeClip{name: "walk"}
		w := PlanWindow(base, clip, 0)
		assert.Equal(t, 0.0, w.Start)
		assert.Equal(t, 2.0, w.End)
		assert.Equal(t, 2.0, w.Duration)
	})

	t.Run("degenerate span gets a 1s duration", func(t *testing.T) {
		clip := &fakeClip{name: "pose", span: &scene.TimeSpan{Start: 1, End: 1}}
		w := PlanWindow(base, clip, 0)
		assert.Equal(t, 1.0, w.Duration)

		clip = &fakeClip{name: "reversed", span: &scene.TimeSpan{Start: 2, End: 1}}
		w = PlanWindow(base, clip, 0)
		assert.Equal(t, 1.0, w.Duration)
	})
}
