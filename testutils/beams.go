package testutils

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/pointcloud"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

// barFrame is the frame of a square bar from start to end. Its origin is the middle of the bar.
func barFrame(t *testing.T, start, end r3.Vector) (spatialmath.Plane, float64) {
	t.Helper()
	axis := end.Sub(start)
	plane, err := spatialmath.NewPlaneFromAxis(start.Add(end).Mul(0.5), axis, spatialmath.BeamFrameHelpers)
	test.That(t, err, test.ShouldBeNil)
	return plane, axis.Norm()
}

// BarPoints samples the four long edges of a square bar from start to end at the given number of stations.
// The cross section is symmetric, so the principal axis of the points is the bar axis and their mean is
// the middle of the bar.
func BarPoints(t *testing.T, start, end r3.Vector, halfWidth float64, stations int) []r3.Vector {
	t.Helper()
	test.That(t, stations, test.ShouldBeGreaterThan, 1)
	plane, length := barFrame(t, start, end)
	pts := make([]r3.Vector, 0, 4*stations)
	for i := 0; i < stations; i++ {
		x := -length/2 + length*float64(i)/float64(stations-1)
		for _, yz := range [][2]float64{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}} {
			pts = append(pts, plane.FromLocal(r3.Vector{X: x, Y: yz[0] * halfWidth, Z: yz[1] * halfWidth}))
		}
	}
	return pts
}

// BarCloud is BarPoints as a point cloud.
func BarCloud(t *testing.T, start, end r3.Vector, halfWidth float64, stations int) pointcloud.PointCloud {
	t.Helper()
	pc, err := pointcloud.NewFromPoints(BarPoints(t, start, end, halfWidth, stations))
	test.That(t, err, test.ShouldBeNil)
	return pc
}

// BarBrep returns the closed solid of a square bar from start to end.
func BarBrep(t *testing.T, start, end r3.Vector, halfWidth float64) *spatialmath.Brep {
	t.Helper()
	plane, length := barFrame(t, start, end)
	box := &spatialmath.OrientedBox{
		Plane: plane,
		X:     spatialmath.Interval{T0: -length / 2, T1: length / 2},
		Y:     spatialmath.Interval{T0: -halfWidth, T1: halfWidth},
		Z:     spatialmath.Interval{T0: -halfWidth, T1: halfWidth},
	}
	return box.ToBrep()
}
