package yamlscene

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/ivlev/scene2anim/internal/mathx"
)

const (
	// Basis vectors shorter than this cannot be normalized into a rotation.
	minScale = 1e-9
	// Maximum tolerated deviation from orthogonality between basis vectors.
	maxShear = 1e-4
)

// IdentityConverter decomposes evaluated matrices into TRS without any
// unit or axis-system change: the document is authored in the output
// conventions. It rejects matrices that are not a pure TRS composition
// (collapsed scale, shearing).
type IdentityConverter struct{}

// Transform implements scene.Converter.
func (IdentityConverter) Transform(m *mat.Dense) (mathx.Transform, error) {
	r, c := m.Dims()
	if r != 4 || c != 4 {
		return mathx.Transform{}, fmt.Errorf("matrix is %dx%d, want 4x4", r, c)
	}

	var basis [3][3]float64 // basis[axis] is the axis column of the upper 3x3
	var scale [3]float64
	for axis := 0; axis < 3; axis++ {
		for row := 0; row < 3; row++ {
			basis[axis][row] = m.At(row, axis)
		}
		scale[axis] = math.Sqrt(basis[axis][0]*basis[axis][0] +
			basis[axis][1]*basis[axis][1] +
			basis[axis][2]*basis[axis][2])
		if scale[axis] < minScale {
			return mathx.Transform{}, fmt.Errorf("degenerate scale on axis %d", axis)
		}
	}

	// A negative determinant means a mirrored basis; fold the mirror into
	// the x scale so the remaining basis is a proper rotation.
	if det3(basis) < 0 {
		scale[0] = -scale[0]
	}

	var rot [3][3]float64
	for axis := 0; axis < 3; axis++ {
		for row := 0; row < 3; row++ {
			rot[row][axis] = basis[axis][row] / scale[axis]
		}
	}

	if shear := maxAbsDot(rot); shear > maxShear {
		return mathx.Transform{}, fmt.Errorf("sheared basis (deviation %g) cannot be decomposed", shear)
	}

	return mathx.Transform{
		Translation: mathx.Vec3{X: m.At(0, 3), Y: m.At(1, 3), Z: m.At(2, 3)},
		Rotation:    mathx.QuatFromRotation(rot),
		Scale:       mathx.Vec3{X: scale[0], Y: scale[1], Z: scale[2]},
	}, nil
}

// det3 computes the determinant of the 3x3 basis (columns given per axis).
func det3(b [3][3]float64) float64 {
	return b[0][0]*(b[1][1]*b[2][2]-b[1][2]*b[2][1]) -
		b[1][0]*(b[0][1]*b[2][2]-b[0][2]*b[2][1]) +
		b[2][0]*(b[0][1]*b[1][2]-b[0][2]*b[1][1])
}

// maxAbsDot returns the largest pairwise dot product between the normalized
// basis columns; non-zero values indicate shear.
func maxAbsDot(rot [3][3]float64) float64 {
	dot := func(a, b int) float64 {
		return rot[0][a]*rot[0][b] + rot[1][a]*rot[1][b] + rot[2][a]*rot[2][b]
	}
	max := math.Abs(dot(0, 1))
	if d := math.Abs(dot(0, 2)); d > max {
		max = d
	}
	if d := math.Abs(dot(1, 2)); d > max {
		max = d
	}
	return max
}
