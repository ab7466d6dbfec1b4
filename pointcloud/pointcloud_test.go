package pointcloud

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

func TestPointCloudBasic(t *testing.T) {
	pc := New()
	test.That(t, pc.Size(), test.ShouldEqual, 0)

	p0 := r3.Vector{X: 0, Y: 0, Z: 0}
	p1 := r3.Vector{X: 1, Y: 0, Z: 1}
	p2 := r3.Vector{X: -1, Y: -2, Z: 1}
	for _, p := range []r3.Vector{p0, p1, p2, p1} {
		test.That(t, pc.Append(p), test.ShouldBeNil)
	}
	test.That(t, pc.Size(), test.ShouldEqual, 4)
	test.That(t, pc.At(1), test.ShouldResemble, p1)
	test.That(t, pc.At(3), test.ShouldResemble, p1)
	test.That(t, Points(pc), test.ShouldResemble, []r3.Vector{p0, p1, p2, p1})

	err := pc.Append(r3.Vector{X: math.NaN()})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "not finite")
	test.That(t, pc.Size(), test.ShouldEqual, 4)

	meta := pc.MetaData()
	test.That(t, meta.MinX, test.ShouldEqual, -1.)
	test.That(t, meta.MaxX, test.ShouldEqual, 1.)
	test.That(t, meta.MinY, test.ShouldEqual, -2.)
	test.That(t, meta.MaxY, test.ShouldEqual, 0.)
	test.That(t, meta.MinZ, test.ShouldEqual, 0.)
	test.That(t, meta.MaxZ, test.ShouldEqual, 1.)
	test.That(t, meta.BoundingBox().Center(), test.ShouldResemble, r3.Vector{X: 0, Y: -1, Z: 0.5})
}

func TestIterateBatches(t *testing.T) {
	pts := make([]r3.Vector, 0, 10)
	for i := 0; i < 10; i++ {
		pts = append(pts, r3.Vector{X: float64(i)})
	}
	pc, err := NewFromPoints(pts)
	test.That(t, err, test.ShouldBeNil)

	seen := make([]int, 0, 10)
	for batch := 0; batch < 3; batch++ {
		pc.Iterate(3, batch, func(i int, p r3.Vector) bool {
			test.That(t, p.X, test.ShouldEqual, float64(i))
			seen = append(seen, i)
			return true
		})
	}
	test.That(t, seen, test.ShouldResemble, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9})

	count := 0
	pc.Iterate(0, 0, func(i int, p r3.Vector) bool {
		count++
		return i < 4
	})
	test.That(t, count, test.ShouldEqual, 5)

	_, err = NewFromPoints([]r3.Vector{{}, {Y: math.Inf(-1)}})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "point 1")
}

func TestCentroid(t *testing.T) {
	_, err := Centroid(New())
	test.That(t, err, test.ShouldBeError, ErrEmpty)

	pc, err := NewFromPoints([]r3.Vector{{X: 0}, {X: 1}, {X: 2}})
	test.That(t, err, test.ShouldBeNil)
	c, err := Centroid(pc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(c, r3.Vector{X: 1}, 1e-12), test.ShouldBeTrue)

	moved, err := Transform(pc, spatialmath.NewTranslation(r3.Vector{Y: 5}))
	test.That(t, err, test.ShouldBeNil)
	c, err = Centroid(moved)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(c, r3.Vector{X: 1, Y: 5}, 1e-12), test.ShouldBeTrue)
	test.That(t, pc.At(0), test.ShouldResemble, r3.Vector{})

	geom := ToGeometry(pc)
	test.That(t, geom.Kind(), test.ShouldEqual, spatialmath.PointSetGeometry)
	test.That(t, len(geom.Points()), test.ShouldEqual, 3)
}
