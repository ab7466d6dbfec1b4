package beam

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/pointcloud"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

func TestResolveCentroid(t *testing.T) {
	pc := cloud(t, r3.Vector{}, r3.Vector{X: 1, Y: 1, Z: 1}, r3.Vector{X: 2, Y: 2, Z: 2}, r3.Vector{X: 3, Y: 3, Z: 3})

	t.Run("cloud only", func(t *testing.T) {
		choice, err := ResolveCentroid(pc, nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, spatialmath.R3VectorAlmostEqual(choice.Cloud, r3.Vector{X: 1.5, Y: 1.5, Z: 1.5}, 1e-12), test.ShouldBeTrue)
		test.That(t, choice.Used, test.ShouldResemble, choice.Cloud)
		test.That(t, choice.UsesBoundary(), test.ShouldBeFalse)
		_, ok := choice.Delta()
		test.That(t, ok, test.ShouldBeFalse)

		d := choice.Diagnostic(3)
		test.That(t, d.BeamID, test.ShouldEqual, 3)
		test.That(t, d.Alternative, test.ShouldBeNil)
		test.That(t, d.Delta, test.ShouldBeNil)
		test.That(t, d.BoundarySucceeded, test.ShouldBeFalse)
		test.That(t, d.Reason, test.ShouldBeEmpty)
	})

	t.Run("closed boundary", func(t *testing.T) {
		cube := spatialmath.BoundingBox{Max: r3.Vector{X: 1, Y: 1, Z: 1}}.ToBrep()
		choice, err := ResolveCentroid(pc, cube)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, choice.UsesBoundary(), test.ShouldBeTrue)
		test.That(t, spatialmath.R3VectorAlmostEqual(choice.Used, r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}, 1e-12), test.ShouldBeTrue)
		alt, ok := choice.Alternative()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, alt, test.ShouldResemble, choice.Cloud)
		delta, ok := choice.Delta()
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, delta, test.ShouldAlmostEqual, r3.Vector{X: 1, Y: 1, Z: 1}.Norm(), 1e-12)

		d := choice.Diagnostic(0)
		test.That(t, d.BoundarySucceeded, test.ShouldBeTrue)
		test.That(t, *d.Delta, test.ShouldAlmostEqual, delta)
	})

	t.Run("open boundary", func(t *testing.T) {
		square := spatialmath.NewBrep([]*spatialmath.Triangle{
			spatialmath.NewTriangle(r3.Vector{}, r3.Vector{X: 2}, r3.Vector{X: 2, Y: 2}),
			spatialmath.NewTriangle(r3.Vector{}, r3.Vector{X: 2, Y: 2}, r3.Vector{Y: 2}),
		}, false)
		choice, err := ResolveCentroid(pc, square)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, spatialmath.R3VectorAlmostEqual(choice.Used, r3.Vector{X: 1, Y: 1}, 1e-12), test.ShouldBeTrue)
	})

	t.Run("degenerate boundary", func(t *testing.T) {
		flat := spatialmath.BoundingBox{Max: r3.Vector{X: 1, Y: 1}}.ToBrep()
		choice, err := ResolveCentroid(pc, flat)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, choice.UsesBoundary(), test.ShouldBeFalse)
		test.That(t, choice.BoundaryErr, test.ShouldNotBeNil)
		test.That(t, choice.Used, test.ShouldResemble, choice.Cloud)
		test.That(t, choice.Diagnostic(1).Reason, test.ShouldContainSubstring, "degenerate")
	})

	t.Run("empty cloud", func(t *testing.T) {
		_, err := ResolveCentroid(pointcloud.New(), nil)
		test.That(t, err, test.ShouldBeError, pointcloud.ErrEmpty)
	})
}
