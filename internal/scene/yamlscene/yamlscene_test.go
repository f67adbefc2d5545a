package yamlscene

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/scene2anim/internal/mathx"
)

const rigDoc = `
version: "1.0"
frame_rate: 4
timeline: {start: 0, end: 1}
skeleton:
  joints:
    - name: root
      bind_pose: {translation: [0, 0, 0]}
    - name: arm
      parent: root
      bind_pose: {translation: [0, 1, 0]}
nodes:
  - name: root
    rest: {translation: [0, 0, 0]}
  - name: arm
    parent: root
    rest: {translation: [0, 1, 0]}
    properties:
      - name: intensity
        type: float
        animated: true
        keys:
          - {time: 0, value: 0}
          - {time: 1, value: 10}
      - name: visible
        type: bool
        animated: true
        keys:
          - {time: 0, value: false}
          - {time: 0.5, value: true}
clips:
  - name: wave
    curves:
      - node: arm
        translation:
          - {time: 0, value: [0, 1, 0]}
          - {time: 1, value: [2, 1, 0]}
`

func loadRig(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse([]byte(rigDoc))
	require.NoError(t, err)
	return doc
}

func TestParseDocument(t *testing.T) {
	doc := loadRig(t)

	assert.Equal(t, 4.0, doc.FrameRate)
	assert.Equal(t, 1.0, doc.Timeline.End)
	require.Len(t, doc.Skeleton.Joints, 2)
	require.Len(t, doc.Nodes, 2)
	require.Len(t, doc.Clips, 1)
	assert.Equal(t, "wave", doc.Clips[0].Name)
}

func TestBuildSkeleton(t *testing.T) {
	skel, err := loadRig(t).BuildSkeleton()
	require.NoError(t, err)

	require.Equal(t, 2, skel.NumJoints())
	assert.Equal(t, "root", skel.JointName(0))
	assert.False(t, skel.HasParent(0))
	assert.True(t, skel.HasParent(1))
	assert.Equal(t, 0, skel.Parent(1))
	assert.Equal(t, mathx.Vec3{Y: 1}, skel.LocalBindPose(1).Translation)
	// Omitted rotation/scale in the document default to identity.
	assert.Equal(t, mathx.Quaternion{Real: 1}, skel.LocalBindPose(1).Rotation)
	assert.Equal(t, mathx.Vec3{X: 1, Y: 1, Z: 1}, skel.LocalBindPose(1).Scale)
}

func TestSkeletonRejectsForwardParent(t *testing.T) {
	doc, err := Parse([]byte(`
skeleton:
  joints:
    - name: arm
      parent: root
    - name: root
`))
	require.NoError(t, err)
	_, err = doc.BuildSkeleton()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not declared before")
}

func TestSceneBuildFailures(t *testing.T) {
	t.Run("unknown node parent", func(t *testing.T) {
		doc, err := Parse([]byte("nodes:\n  - name: a\n    parent: ghost\n"))
		require.NoError(t, err)
		_, err = doc.Scene()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ghost")
	})

	t.Run("curve for unknown node", func(t *testing.T) {
		doc, err := Parse([]byte("clips:\n  - name: c\n    curves:\n      - node: ghost\n"))
		require.NoError(t, err)
		_, err = doc.Scene()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ghost")
	})
}

func TestCurveEvaluation(t *testing.T) {
	sc, err := loadRig(t).Scene()
	require.NoError(t, err)

	arm := sc.FindNode("arm")
	require.NotNil(t, arm)
	clip := sc.Clips()[0]
	conv := IdentityConverter{}

	t.Run("clip curve interpolates between keys", func(t *testing.T) {
		ev := sc.Evaluate(clip)
		xf, err := conv.Transform(ev.LocalTransform(arm, 0.5))
		require.NoError(t, err)
		assert.InDelta(t, 1.0, xf.Translation.X, 1e-12)
		assert.InDelta(t, 1.0, xf.Translation.Y, 1e-12)
	})

	t.Run("default scope holds the rest transform", func(t *testing.T) {
		ev := sc.Evaluate(nil)
		xf, err := conv.Transform(ev.LocalTransform(arm, 0.5))
		require.NoError(t, err)
		assert.Equal(t, 0.0, xf.Translation.X)
		assert.Equal(t, 1.0, xf.Translation.Y)
	})

	t.Run("global composes the parent chain", func(t *testing.T) {
		ev := sc.Evaluate(clip)
		// root is identity, so arm's global equals its local.
		local, err := conv.Transform(ev.LocalTransform(arm, 0.25))
		require.NoError(t, err)
		global, err := conv.Transform(ev.GlobalTransform(arm, 0.25))
		require.NoError(t, err)
		assert.InDelta(t, local.Translation.X, global.Translation.X, 1e-12)
	})

	t.Run("times outside the key range clamp", func(t *testing.T) {
		ev := sc.Evaluate(clip)
		xf, err := conv.Transform(ev.LocalTransform(arm, 5))
		require.NoError(t, err)
		assert.InDelta(t, 2.0, xf.Translation.X, 1e-12)
	})
}

func TestPropertyEvaluation(t *testing.T) {
	sc, err := loadRig(t).Scene()
	require.NoError(t, err)
	arm := sc.FindNode("arm")
	ev := sc.Evaluate(nil)

	t.Run("float lerps", func(t *testing.T) {
		p := arm.FindProperty("intensity")
		require.NotNil(t, p)
		assert.True(t, p.Animated())
		assert.InDelta(t, 5.0, ev.PropertyValue(p, 0.5).(float64), 1e-12)
	})

	t.Run("bool steps on the previous key", func(t *testing.T) {
		p := arm.FindProperty("visible")
		require.NotNil(t, p)
		assert.Equal(t, false, ev.PropertyValue(p, 0.25))
		assert.Equal(t, true, ev.PropertyValue(p, 0.75))
	})

	t.Run("unknown property lookup", func(t *testing.T) {
		assert.Nil(t, arm.FindProperty("ghost"))
	})
}

func TestIdentityConverterRoundTrip(t *testing.T) {
	s := math.Sqrt2 / 2
	in := mathx.Transform{
		Translation: mathx.Vec3{X: 1, Y: -2, Z: 3},
		Rotation:    mathx.Quaternion{Real: s, Kmag: s}, // 90 degrees about Z
		Scale:       mathx.Vec3{X: 2, Y: 3, Z: 4},
	}

	out, err := IdentityConverter{}.Transform(mathx.Matrix(in))
	require.NoError(t, err)

	approx := cmpopts.EquateApprox(0, 1e-9)
	if diff := cmp.Diff(in, out, approx); diff != "" {
		t.Errorf("decomposition mismatch (-want +got):\n%s", diff)
	}
}

func TestIdentityConverterRejectsDegenerateMatrix(t *testing.T) {
	in := mathx.Transform{
		Translation: mathx.Vec3{},
		Rotation:    mathx.Quaternion{Real: 1},
		Scale:       mathx.Vec3{X: 0, Y: 1, Z: 1},
	}
	_, err := IdentityConverter{}.Transform(mathx.Matrix(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "degenerate scale")
}
