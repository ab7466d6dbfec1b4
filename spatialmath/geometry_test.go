package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestGeometryKind(t *testing.T) {
	for _, k := range []GeometryKind{BrepGeometry, MeshGeometry, CurveGeometry, PointSetGeometry} {
		parsed, err := ParseGeometryKind(k.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, k)
	}
	_, err := ParseGeometryKind("nurbs")
	test.That(t, err, test.ShouldBeError, `unknown geometry kind "nurbs"`)
	test.That(t, UnknownGeometry.String(), test.ShouldEqual, "unknown")
}

func TestCurve(t *testing.T) {
	c := NewCurve([]r3.Vector{{}, {X: 3}, {X: 3, Y: 4}})
	test.That(t, c.Kind(), test.ShouldEqual, CurveGeometry)

	bb, err := c.BoundingBox()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bb.Center(), test.ShouldResemble, r3.Vector{X: 1.5, Y: 2})

	scaled := c.Transform(NewScaleInPlane(WorldXY, 2, 1, 1)).(*Curve)
	test.That(t, R3VectorAlmostEqual(scaled.Vertices()[2], r3.Vector{X: 6, Y: 4}, 1e-12), test.ShouldBeTrue)
	test.That(t, c.Vertices()[2], test.ShouldResemble, r3.Vector{X: 3, Y: 4})
}

func TestPointSet(t *testing.T) {
	pts := []r3.Vector{{X: 1}, {Y: -1}, {Z: 2}}
	ps := NewPointSet(pts)
	pts[0] = r3.Vector{X: 100}
	test.That(t, ps.Points()[0], test.ShouldResemble, r3.Vector{X: 1})

	bb, err := ps.BoundingBox()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bb.Min, test.ShouldResemble, r3.Vector{Y: -1})
	test.That(t, bb.Max, test.ShouldResemble, r3.Vector{X: 1, Z: 2})
	test.That(t, bb.Diagonal(), test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 2})
}

func TestBoundingBox(t *testing.T) {
	empty := NewEmptyBoundingBox()
	test.That(t, empty.IsValid(), test.ShouldBeFalse)

	bb := NewBoundingBoxFromPoints([]r3.Vector{{X: 1, Y: 1, Z: 1}})
	test.That(t, bb.IsValid(), test.ShouldBeTrue)

	grown := bb
	grown.Extend(r3.Vector{X: -1})
	test.That(t, grown.Min, test.ShouldResemble, r3.Vector{X: -1})
	test.That(t, grown.Max, test.ShouldResemble, r3.Vector{X: 1, Y: 1, Z: 1})

	nan := NewBoundingBoxFromPoints([]r3.Vector{{X: math.Inf(1)}})
	test.That(t, nan.IsValid(), test.ShouldBeFalse)
}

func TestVectorHelpers(t *testing.T) {
	v, err := ParseVector([]string{"1.5", "-2", "3e-2"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, v, test.ShouldResemble, r3.Vector{X: 1.5, Y: -2, Z: 0.03})

	_, err = ParseVector([]string{"1", "2"})
	test.That(t, err, test.ShouldBeError, "expected 3 coordinates, got 2")

	_, err = ParseVector([]string{"1", "2,5", "3"})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `invalid coordinate "2,5"`)

	_, ok := Unitize(r3.Vector{X: 1e-12})
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = Unitize(r3.Vector{X: math.NaN()})
	test.That(t, ok, test.ShouldBeFalse)
	u, ok := Unitize(r3.Vector{Y: -4})
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, u, test.ShouldResemble, r3.Vector{Y: -1})

	test.That(t, Component(r3.Vector{X: 1, Y: 2, Z: 3}, 2), test.ShouldEqual, 3.)
}
