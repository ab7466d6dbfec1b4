package spatialmath

import (
	"github.com/golang/geo/r3"
)

// Triangle is a single facet of a mesh or boundary representation.
type Triangle struct {
	p0 r3.Vector
	p1 r3.Vector
	p2 r3.Vector

	normal r3.Vector
}

// NewTriangle returns a triangle whose normal follows the right-hand rule over p0, p1, p2.
func NewTriangle(p0, p1, p2 r3.Vector) *Triangle {
	return &Triangle{
		p0:     p0,
		p1:     p1,
		p2:     p2,
		normal: PlaneNormal(p0, p1, p2).Normalize(),
	}
}

// Points returns the three vertices in order.
func (t *Triangle) Points() []r3.Vector {
	return []r3.Vector{t.p0, t.p1, t.p2}
}

// Normal returns the unit normal, or the zero vector for a degenerate triangle.
func (t *Triangle) Normal() r3.Vector {
	return t.normal
}

// Area returns the area of the triangle.
func (t *Triangle) Area() float64 {
	return 0.5 * PlaneNormal(t.p0, t.p1, t.p2).Norm()
}

// Centroid returns the average of the three vertices.
func (t *Triangle) Centroid() r3.Vector {
	return t.p0.Add(t.p1).Add(t.p2).Mul(1. / 3.)
}

// signedVolume returns the signed volume of the tetrahedron formed by the triangle and ref.
func (t *Triangle) signedVolume(ref r3.Vector) float64 {
	a, b, c := t.p0.Sub(ref), t.p1.Sub(ref), t.p2.Sub(ref)
	return a.Dot(b.Cross(c)) / 6
}

// Transform returns a copy of the triangle with every vertex transformed.
func (t *Triangle) Transform(tf *Transform) *Triangle {
	return NewTriangle(tf.Point(t.p0), tf.Point(t.p1), tf.Point(t.p2))
}
