package spatialmath

import (
	"fmt"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Transform is an affine transform stored as a 4x4 homogeneous matrix acting on column vectors.
type Transform struct {
	m *mat.Dense
}

// NewIdentityTransform returns the transform that leaves everything in place.
func NewIdentityTransform() *Transform {
	return &Transform{m: eye4()}
}

// NewTranslation returns a transform that moves points by v. Vectors are unaffected.
func NewTranslation(v r3.Vector) *Transform {
	m := eye4()
	m.Set(0, 3, v.X)
	m.Set(1, 3, v.Y)
	m.Set(2, 3, v.Z)
	return &Transform{m: m}
}

// NewScaleInPlane returns a non-uniform scale about the plane's origin with the given factors along the
// plane's X, Y and Z axes.
func NewScaleInPlane(plane Plane, sx, sy, sz float64) *Transform {
	scale := eye4()
	scale.Set(0, 0, sx)
	scale.Set(1, 1, sy)
	scale.Set(2, 2, sz)
	return Compose(plane.FromWorldXY(), Compose(&Transform{m: scale}, plane.ToWorldXY()))
}

// NewTransformFromRows builds a transform from a row-major 4x4 matrix.
func NewTransformFromRows(rows [16]float64) *Transform {
	return &Transform{m: mat.NewDense(4, 4, rows[:])}
}

// Compose returns the transform that applies b first and then a.
func Compose(a, b *Transform) *Transform {
	var out mat.Dense
	out.Mul(a.m, b.m)
	return &Transform{m: &out}
}

// Inverse returns the matrix inverse of the transform. An error is returned if the matrix is singular
// or too ill-conditioned to invert reliably.
func (t *Transform) Inverse() (*Transform, error) {
	var inv mat.Dense
	if err := inv.Inverse(t.m); err != nil {
		return nil, errors.Wrap(err, "transform is not invertible")
	}
	return &Transform{m: &inv}, nil
}

// At returns the matrix entry at row i, column j.
func (t *Transform) At(i, j int) float64 {
	return t.m.At(i, j)
}

// Point applies the transform to a point, including translation.
func (t *Transform) Point(p r3.Vector) r3.Vector {
	m := t.m
	x := m.At(0, 0)*p.X + m.At(0, 1)*p.Y + m.At(0, 2)*p.Z + m.At(0, 3)
	y := m.At(1, 0)*p.X + m.At(1, 1)*p.Y + m.At(1, 2)*p.Z + m.At(1, 3)
	z := m.At(2, 0)*p.X + m.At(2, 1)*p.Y + m.At(2, 2)*p.Z + m.At(2, 3)
	return r3.Vector{X: x, Y: y, Z: z}
}

// Vector applies the linear part of the transform to a direction. Translation is ignored.
func (t *Transform) Vector(v r3.Vector) r3.Vector {
	m := t.m
	return r3.Vector{
		X: m.At(0, 0)*v.X + m.At(0, 1)*v.Y + m.At(0, 2)*v.Z,
		Y: m.At(1, 0)*v.X + m.At(1, 1)*v.Y + m.At(1, 2)*v.Z,
		Z: m.At(2, 0)*v.X + m.At(2, 1)*v.Y + m.At(2, 2)*v.Z,
	}
}

// Points applies the transform to every point, returning a new slice.
func (t *Transform) Points(pts []r3.Vector) []r3.Vector {
	out := make([]r3.Vector, len(pts))
	for i, p := range pts {
		out[i] = t.Point(p)
	}
	return out
}

// AlmostEqual returns whether every matrix entry of the two transforms is within epsilon.
func (t *Transform) AlmostEqual(other *Transform, epsilon float64) bool {
	return mat.EqualApprox(t.m, other.m, epsilon)
}

// IsIdentity returns whether the transform is the identity within epsilon.
func (t *Transform) IsIdentity(epsilon float64) bool {
	return t.AlmostEqual(NewIdentityTransform(), epsilon)
}

func (t *Transform) String() string {
	rows := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		rows = append(rows, fmt.Sprintf("[%.4g %.4g %.4g %.4g]", t.m.At(i, 0), t.m.At(i, 1), t.m.At(i, 2), t.m.At(i, 3)))
	}
	return strings.Join(rows, " ")
}

func eye4() *mat.Dense {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		m.Set(i, i, 1)
	}
	return m
}
