package beam

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/pointcloud"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

func TestStraightBeamScenario(t *testing.T) {
	pc := cloud(t, r3.Vector{}, r3.Vector{X: 1}, r3.Vector{X: 2})

	axis, fitted := FitAxis(pc)
	test.That(t, fitted, test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(axis, r3.Vector{X: 1}, 1e-9), test.ShouldBeTrue)

	choice, err := ResolveCentroid(pc, nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(choice.Used, r3.Vector{X: 1}, 1e-12), test.ShouldBeTrue)

	frame, err := NewFrame(0, choice.Used, axis, 1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, frame.ScalingActive, test.ShouldBeFalse)
	test.That(t, frame.Scale.IsIdentity(0), test.ShouldBeTrue)

	canonical, err := frame.ForwardCloud(pc)
	test.That(t, err, test.ShouldBeNil)
	for i, want := range []r3.Vector{{X: -1}, {}, {X: 1}} {
		test.That(t, spatialmath.R3VectorAlmostEqual(canonical.At(i), want, 1e-12), test.ShouldBeTrue)
	}
}

func TestFitAxisDegenerate(t *testing.T) {
	for _, pc := range []pointcloud.PointCloud{
		cloud(t, r3.Vector{X: 1}),
		cloud(t, r3.Vector{X: 1, Y: 1}, r3.Vector{X: 1, Y: 1}),
		pointcloud.New(),
	} {
		axis, fitted := FitAxis(pc)
		test.That(t, fitted, test.ShouldBeFalse)
		test.That(t, axis, test.ShouldResemble, DefaultAxis)
	}
}

func TestFitResidual(t *testing.T) {
	pc := cloud(t, r3.Vector{Y: 1}, r3.Vector{Y: -1}, r3.Vector{X: 4, Y: 1}, r3.Vector{X: 4, Y: -1})
	axis, fitted := FitAxis(pc)
	test.That(t, fitted, test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(axis, r3.Vector{X: 1}, 1e-9), test.ShouldBeTrue)

	residual, err := FitResidual(pc, axis)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, residual, test.ShouldAlmostEqual, 1, 1e-9)

	residual, err = FitResidual(cloud(t, r3.Vector{}, r3.Vector{X: 1}, r3.Vector{X: 2}), r3.Vector{X: 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, residual, test.ShouldAlmostEqual, 0, 1e-12)

	_, err = FitResidual(pointcloud.New(), r3.Vector{X: 1})
	test.That(t, err, test.ShouldEqual, pointcloud.ErrEmpty)
}

func TestScalingActive(t *testing.T) {
	test.That(t, ScalingActive(1), test.ShouldBeFalse)
	test.That(t, ScalingActive(math.NaN()), test.ShouldBeFalse)
	test.That(t, ScalingActive(math.Inf(1)), test.ShouldBeFalse)
	test.That(t, ScalingActive(math.Inf(-1)), test.ShouldBeFalse)
	test.That(t, ScalingActive(0.5), test.ShouldBeTrue)
	test.That(t, ScalingActive(0), test.ShouldBeTrue)
	test.That(t, ScalingActive(-2), test.ShouldBeTrue)

	frame, err := NewFrame(2, r3.Vector{X: 1}, r3.Vector{Y: 1}, math.NaN())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, frame.ScalingActive, test.ShouldBeFalse)
	test.That(t, frame.ScaleInverse.IsIdentity(0), test.ShouldBeTrue)
}

func TestFrameRoundTrip(t *testing.T) {
	centroid := r3.Vector{X: 12, Y: -3, Z: 40}
	axes := []r3.Vector{{X: 1, Y: 1, Z: 0.2}, {Y: 1}, {Z: -1}, {X: 0.05, Y: 0.999}}
	pts := []r3.Vector{{}, {X: 12, Y: -3, Z: 40}, {X: 15, Y: 1, Z: 38.5}, {X: -100, Y: 7, Z: 0.001}}
	for _, axis := range axes {
		for _, s := range []float64{2.5, 0.1, -3} {
			frame, err := NewFrame(1, centroid, axis, s)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, frame.ScalingActive, test.ShouldBeTrue)
			test.That(t, frame.Plane.IsOrthonormal(1e-12), test.ShouldBeTrue)
			test.That(t, spatialmath.Compose(frame.MoveInverse, frame.Move).IsIdentity(1e-12), test.ShouldBeTrue)
			test.That(t, spatialmath.Compose(frame.ScaleInverse, frame.Scale).IsIdentity(1e-9), test.ShouldBeTrue)
			test.That(t, spatialmath.Compose(frame.Inverse(), frame.Forward()).IsIdentity(1e-9), test.ShouldBeTrue)

			forward := frame.Forward()
			for _, p := range pts {
				back := frame.InversePoint(forward.Point(p))
				test.That(t, spatialmath.R3VectorAlmostEqual(back, p, 1e-9), test.ShouldBeTrue)
			}

			// the centroid maps to the origin and the axis is stretched by s
			test.That(t, spatialmath.R3VectorAlmostEqual(forward.Point(centroid), r3.Vector{}, 1e-9), test.ShouldBeTrue)
			unit := axis.Normalize()
			test.That(t, spatialmath.R3VectorAlmostEqual(forward.Vector(unit), unit.Mul(s), 1e-9), test.ShouldBeTrue)

			dir, err := frame.InverseDirection(forward.Vector(unit).Mul(7))
			test.That(t, err, test.ShouldBeNil)
			test.That(t, dir.Dot(unit), test.ShouldAlmostEqual, 1., 1e-9)
		}
	}
}

func TestFrameInverseDirection(t *testing.T) {
	frame, err := NewFrame(5, r3.Vector{X: 100}, r3.Vector{X: 1}, 2)
	test.That(t, err, test.ShouldBeNil)

	// the canonical frame is twice as long along the axis, so a diagonal there is steeper in world space
	dir, err := frame.InverseDirection(r3.Vector{X: 2, Y: 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(dir, r3.Vector{X: 1, Y: 1}.Normalize(), 1e-12), test.ShouldBeTrue)

	center := frame.InversePoint(r3.Vector{X: 2})
	test.That(t, spatialmath.R3VectorAlmostEqual(center, r3.Vector{X: 101}, 1e-12), test.ShouldBeTrue)

	_, err = frame.InverseDirection(r3.Vector{})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "beam 5")
}

func TestFrameSingularScale(t *testing.T) {
	_, err := NewFrame(7, r3.Vector{X: 1}, r3.Vector{X: 1}, 0)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "beam 7: scale factor 0")
	test.That(t, err.Error(), test.ShouldContainSubstring, "transform is not invertible")
}
