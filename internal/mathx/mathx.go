package mathx

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Vec2 and Vec3 reuse gonum's planar and spatial vector types.
type (
	Vec2 = r2.Vec
	Vec3 = r3.Vec
)

// Vec4 is a plain 4-component vector; gonum has no r4 analogue.
type Vec4 struct {
	X, Y, Z, W float64
}

// Quaternion follows gonum's convention: Real is the scalar part.
type Quaternion = quat.Number

// Transform is a translation/rotation/scale triple in the target system's
// unit and axis conventions.
type Transform struct {
	Translation Vec3
	Rotation    Quaternion
	Scale       Vec3
}

// Identity returns the identity transform (no translation, unit rotation, unit scale).
func Identity() Transform {
	return Transform{
		Rotation: Quaternion{Real: 1},
		Scale:    Vec3{X: 1, Y: 1, Z: 1},
	}
}

// Lerp performs linear interpolation between a and b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec3 interpolates each component of a and b
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{
		X: Lerp(a.X, b.X, t),
		Y: Lerp(a.Y, b.Y, t),
		Z: Lerp(a.Z, b.Z, t),
	}
}

// NLerp interpolates rotations along the shortest arc and renormalizes.
func NLerp(a, b Quaternion, t float64) Quaternion {
	// Flip b onto a's hemisphere so interpolation takes the short way round.
	if a.Real*b.Real+a.Imag*b.Imag+a.Jmag*b.Jmag+a.Kmag*b.Kmag < 0 {
		b = Quaternion{Real: -b.Real, Imag: -b.Imag, Jmag: -b.Jmag, Kmag: -b.Kmag}
	}
	q := Quaternion{
		Real: Lerp(a.Real, b.Real, t),
		Imag: Lerp(a.Imag, b.Imag, t),
		Jmag: Lerp(a.Jmag, b.Jmag, t),
		Kmag: Lerp(a.Kmag, b.Kmag, t),
	}
	return NormalizeQuat(q)
}

// NormalizeQuat scales q to unit length; a zero quaternion becomes identity.
func NormalizeQuat(q Quaternion) Quaternion {
	n := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	if n == 0 {
		return Quaternion{Real: 1}
	}
	return Quaternion{Real: q.Real / n, Imag: q.Imag / n, Jmag: q.Jmag / n, Kmag: q.Kmag / n}
}

// Matrix builds the 4x4 column-major affine matrix T*R*S of a transform.
func Matrix(x Transform) *mat.Dense {
	r := rotationMatrix(x.Rotation)
	m := mat.NewDense(4, 4, nil)
	for row := 0; row < 3; row++ {
		m.Set(row, 0, r[row][0]*x.Scale.X)
		m.Set(row, 1, r[row][1]*x.Scale.Y)
		m.Set(row, 2, r[row][2]*x.Scale.Z)
	}
	m.Set(0, 3, x.Translation.X)
	m.Set(1, 3, x.Translation.Y)
	m.Set(2, 3, x.Translation.Z)
	m.Set(3, 3, 1)
	return m
}

// rotationMatrix expands a unit quaternion into a 3x3 rotation matrix.
func rotationMatrix(q Quaternion) [3][3]float64 {
	q = NormalizeQuat(q)
	w, x, y, z := q.Real, q.Imag, q.Jmag, q.Kmag
	return [3][3]float64{
		{1 - 2*(y*y+z*z), 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 1 - 2*(x*x+z*z), 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 1 - 2*(x*x+y*y)},
	}
}

// QuatFromRotation recovers a unit quaternion from an orthonormal 3x3 basis.
// Uses the standard trace-based construction, branching on the dominant
// diagonal element for numeric stability.
func QuatFromRotation(r [3][3]float64) Quaternion {
	trace := r[0][0] + r[1][1] + r[2][2]
	var q Quaternion
	switch {
	case trace > 0:
		s := math.Sqrt(trace+1) * 2
		q = Quaternion{
			Real: s / 4,
			Imag: (r[2][1] - r[1][2]) / s,
			Jmag: (r[0][2] - r[2][0]) / s,
			Kmag: (r[1][0] - r[0][1]) / s,
		}
	case r[0][0] > r[1][1] && r[0][0] > r[2][2]:
		s := math.Sqrt(1+r[0][0]-r[1][1]-r[2][2]) * 2
		q = Quaternion{
			Real: (r[2][1] - r[1][2]) / s,
			Imag: s / 4,
			Jmag: (r[0][1] + r[1][0]) / s,
			Kmag: (r[0][2] + r[2][0]) / s,
		}
	case r[1][1] > r[2][2]:
		s := math.Sqrt(1+r[1][1]-r[0][0]-r[2][2]) * 2
		q = Quaternion{
			Real: (r[0][2] - r[2][0]) / s,
			Imag: (r[0][1] + r[1][0]) / s,
			Jmag: s / 4,
			Kmag: (r[1][2] + r[2][1]) / s,
		}
	default:
		s := math.Sqrt(1+r[2][2]-r[0][0]-r[1][1]) * 2
		q = Quaternion{
			Real: (r[1][0] - r[0][1]) / s,
			Imag: (r[0][2] + r[2][0]) / s,
			Jmag: (r[1][2] + r[2][1]) / s,
			Kmag: s / 4,
		}
	}
	return NormalizeQuat(q)
}
