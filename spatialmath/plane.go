package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Plane is a right-handed orthonormal frame anchored at Origin.
type Plane struct {
	Origin r3.Vector
	XAxis  r3.Vector
	YAxis  r3.Vector
	ZAxis  r3.Vector
}

// WorldXY is the world frame.
var WorldXY = Plane{XAxis: XAxis, YAxis: YAxis, ZAxis: ZAxis}

// FrameHelpers controls how the two remaining axes of a plane are derived from its X axis. Up is crossed into
// the X axis unless |X·Up| exceeds ParallelThreshold, in which case Alternate is used instead.
type FrameHelpers struct {
	Up                r3.Vector
	Alternate         r3.Vector
	ParallelThreshold float64
}

var (
	// BeamFrameHelpers are used for the per-beam canonical frame.
	BeamFrameHelpers = FrameHelpers{Up: YAxis, Alternate: ZAxis, ParallelThreshold: 0.99}

	// BoxFrameHelpers are used for oriented bounding boxes.
	BoxFrameHelpers = FrameHelpers{Up: ZAxis, Alternate: YAxis, ParallelThreshold: 0.95}
)

// NewPlaneFromAxis builds a plane at origin whose X axis is the given axis. The Y axis is helper × X and
// the Z axis is X × Y; either falls back to the canonical world axis if its cross product degenerates.
// An error is returned only when axis itself cannot be normalized.
func NewPlaneFromAxis(origin, axis r3.Vector, helpers FrameHelpers) (Plane, error) {
	x, ok := Unitize(axis)
	if !ok {
		return Plane{}, errors.Errorf("cannot build a frame from degenerate axis %v", axis)
	}
	helper := helpers.Up
	if math.Abs(x.Dot(helper)) > helpers.ParallelThreshold {
		helper = helpers.Alternate
	}
	y, ok := Unitize(helper.Cross(x))
	if !ok {
		y = YAxis
	}
	z, ok := Unitize(x.Cross(y))
	if !ok {
		z = ZAxis
	}
	return Plane{Origin: origin, XAxis: x, YAxis: y, ZAxis: z}, nil
}

// IsOrthonormal returns whether the three axes are unit length and mutually orthogonal within epsilon.
func (p Plane) IsOrthonormal(epsilon float64) bool {
	axes := [3]r3.Vector{p.XAxis, p.YAxis, p.ZAxis}
	for i := 0; i < 3; i++ {
		if math.Abs(axes[i].Norm()-1) > epsilon {
			return false
		}
		for j := i + 1; j < 3; j++ {
			if math.Abs(axes[i].Dot(axes[j])) > epsilon {
				return false
			}
		}
	}
	return VectorIsFinite(p.Origin)
}

// ToLocal returns the coordinates of the world point pt in this plane.
func (p Plane) ToLocal(pt r3.Vector) r3.Vector {
	d := pt.Sub(p.Origin)
	return r3.Vector{X: d.Dot(p.XAxis), Y: d.Dot(p.YAxis), Z: d.Dot(p.ZAxis)}
}

// FromLocal returns the world point at the given plane coordinates.
func (p Plane) FromLocal(local r3.Vector) r3.Vector {
	return p.Origin.Add(p.XAxis.Mul(local.X)).Add(p.YAxis.Mul(local.Y)).Add(p.ZAxis.Mul(local.Z))
}

// ToWorldXY returns the change of basis that maps this plane onto the world frame, so that world points end
// up expressed in plane coordinates.
func (p Plane) ToWorldXY() *Transform {
	x, y, z := p.XAxis, p.YAxis, p.ZAxis
	return NewTransformFromRows([16]float64{
		x.X, x.Y, x.Z, -x.Dot(p.Origin),
		y.X, y.Y, y.Z, -y.Dot(p.Origin),
		z.X, z.Y, z.Z, -z.Dot(p.Origin),
		0, 0, 0, 1,
	})
}

// FromWorldXY is the inverse of ToWorldXY.
func (p Plane) FromWorldXY() *Transform {
	x, y, z, o := p.XAxis, p.YAxis, p.ZAxis, p.Origin
	return NewTransformFromRows([16]float64{
		x.X, y.X, z.X, o.X,
		x.Y, y.Y, z.Y, o.Y,
		x.Z, y.Z, z.Z, o.Z,
		0, 0, 0, 1,
	})
}
