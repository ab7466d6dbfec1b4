package pointcloud

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

func TestFitLine(t *testing.T) {
	pc, err := NewFromPoints([]r3.Vector{{X: 0}, {X: 1}, {X: 2}})
	test.That(t, err, test.ShouldBeNil)
	line, err := FitLine(pc)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(line.Point, r3.Vector{X: 1}, 1e-12), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(line.Direction, r3.Vector{X: 1}, 1e-9), test.ShouldBeTrue)

	t.Run("skew line with scatter", func(t *testing.T) {
		dir := r3.Vector{X: 1, Y: 2, Z: 3}.Normalize()
		origin := r3.Vector{X: 4, Y: -1, Z: 2}
		perp := r3.Vector{X: 2, Y: -1}.Normalize()
		pts := make([]r3.Vector, 0, 21)
		for i := 10; i >= -10; i-- {
			offset := 0.01
			if i%2 == 0 {
				offset = -offset
			}
			pts = append(pts, origin.Add(dir.Mul(float64(i))).Add(perp.Mul(offset)))
		}
		pc, err := NewFromPoints(pts)
		test.That(t, err, test.ShouldBeNil)
		line, err := FitLine(pc)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, line.Direction.Dot(dir), test.ShouldAlmostEqual, 1., 1e-6)
		test.That(t, line.Distance(origin), test.ShouldBeLessThan, 0.01)
		test.That(t, line.Distance(origin.Add(dir.Mul(100))), test.ShouldBeLessThan, 0.01)
	})

	t.Run("too few points", func(t *testing.T) {
		pc, err := NewFromPoints([]r3.Vector{{X: 1}})
		test.That(t, err, test.ShouldBeNil)
		_, err = FitLine(pc)
		test.That(t, err, test.ShouldBeError, "need at least two points to fit a line")
	})

	t.Run("coincident points", func(t *testing.T) {
		pc, err := NewFromPoints([]r3.Vector{{X: 1}, {X: 1}, {X: 1}})
		test.That(t, err, test.ShouldBeNil)
		_, err = FitLine(pc)
		test.That(t, err, test.ShouldBeError, "points are coincident")
	})
}

func TestLineClosestPoint(t *testing.T) {
	line := Line{Point: r3.Vector{X: 1}, Direction: r3.Vector{Z: 1}}
	test.That(t, line.ClosestPoint(r3.Vector{X: 3, Z: 7}), test.ShouldResemble, r3.Vector{X: 1, Z: 7})
	test.That(t, line.Distance(r3.Vector{X: 3, Z: 7}), test.ShouldEqual, 2.)
}
