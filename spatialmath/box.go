package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// parallelEpsilon is the magnitude below which a segment is considered parallel to a slab.
const parallelEpsilon = 1e-12

// ErrSegmentMissesBox is returned by ClipSegment when the segment does not cross the box.
var ErrSegmentMissesBox = errors.New("segment does not intersect box")

// OrientedBox is a box aligned to an arbitrary plane. X, Y and Z are the extents of the box in plane coordinates.
type OrientedBox struct {
	Plane   Plane
	X, Y, Z Interval
}

// NewOrientedBoxFromGeometry builds the box enclosing g in a frame whose X axis is direction and whose origin is
// the center of g's world bounding box. g is duplicated, mapped into that frame, and measured there.
func NewOrientedBoxFromGeometry(g Geometry, direction r3.Vector) (*OrientedBox, error) {
	if !isSupportedGeometry(g) {
		return nil, newUnsupportedGeometryError(g)
	}

	worldBox, err := g.BoundingBox()
	if err != nil {
		return nil, errors.Wrapf(err, "invalid world bounding box for %s", g.Kind())
	}
	if !worldBox.IsValid() {
		return nil, errors.Errorf("invalid world bounding box for %s", g.Kind())
	}

	plane, err := NewPlaneFromAxis(worldBox.Center(), direction, BoxFrameHelpers)
	if err != nil {
		return nil, errors.Wrap(err, "degenerate local frame")
	}
	if !plane.IsOrthonormal(1e-6) {
		return nil, errors.Errorf("degenerate local frame for direction %v", direction)
	}

	localBox, err := g.Transform(plane.ToWorldXY()).BoundingBox()
	if err != nil {
		return nil, errors.Wrap(err, "invalid local bounding box")
	}
	if !localBox.IsValid() {
		return nil, errors.New("invalid local bounding box")
	}

	box := &OrientedBox{
		Plane: plane,
		X:     Interval{localBox.Min.X, localBox.Max.X},
		Y:     Interval{localBox.Min.Y, localBox.Max.Y},
		Z:     Interval{localBox.Min.Z, localBox.Max.Z},
	}
	if !box.IsValid() {
		return nil, errors.New("invalid oriented box")
	}
	return box, nil
}

// Intervals returns the X, Y and Z extents in order.
func (b *OrientedBox) Intervals() [3]Interval {
	return [3]Interval{b.X, b.Y, b.Z}
}

// IsValid returns whether the plane is orthonormal and every extent is finite.
func (b *OrientedBox) IsValid() bool {
	return b.Plane.IsOrthonormal(1e-6) && b.X.IsValid() && b.Y.IsValid() && b.Z.IsValid()
}

// Center returns the world position of the box center.
func (b *OrientedBox) Center() r3.Vector {
	return b.Plane.FromLocal(r3.Vector{X: b.X.Mid(), Y: b.Y.Mid(), Z: b.Z.Mid()})
}

// Dims returns the edge lengths of the box along the plane axes.
func (b *OrientedBox) Dims() r3.Vector {
	return r3.Vector{X: b.X.Length(), Y: b.Y.Length(), Z: b.Z.Length()}
}

// LocalDiagonal returns the length of the box diagonal.
func (b *OrientedBox) LocalDiagonal() float64 {
	return b.Dims().Norm()
}

// Corners returns the eight world-space corners of the box.
func (b *OrientedBox) Corners() [8]r3.Vector {
	local := BoundingBox{
		Min: r3.Vector{X: b.X.Min(), Y: b.Y.Min(), Z: b.Z.Min()},
		Max: r3.Vector{X: b.X.Max(), Y: b.Y.Max(), Z: b.Z.Max()},
	}
	corners := local.Corners()
	for i := range corners {
		corners[i] = b.Plane.FromLocal(corners[i])
	}
	return corners
}

// Contains returns whether the world point lies inside the box, widened by epsilon.
func (b *OrientedBox) Contains(pt r3.Vector, epsilon float64) bool {
	local := b.Plane.ToLocal(pt)
	for i, iv := range b.Intervals() {
		if !iv.Includes(Component(local, i), epsilon) {
			return false
		}
	}
	return true
}

// OnBoundary returns whether the world point lies on a face of the box: inside, with at least one coordinate at an
// extreme of its interval.
func (b *OrientedBox) OnBoundary(pt r3.Vector, epsilon float64) bool {
	if !b.Contains(pt, epsilon) {
		return false
	}
	local := b.Plane.ToLocal(pt)
	for i, iv := range b.Intervals() {
		if iv.AtExtreme(Component(local, i), epsilon) {
			return true
		}
	}
	return false
}

// ClipSegment clips the segment from→to against the box with per-axis slab tests in the box frame and returns the
// world points where the clipped segment starts and ends, in the segment's direction. A segment parallel to a
// slab must lie within it, up to floating point noise, so flat boxes can still be crossed.
func (b *OrientedBox) ClipSegment(from, to r3.Vector) (r3.Vector, r3.Vector, error) {
	origin := b.Plane.ToLocal(from)
	delta := b.Plane.ToLocal(to).Sub(origin)

	tmin, tmax := 0., 1.
	for i, iv := range b.Intervals() {
		o := Component(origin, i)
		d := Component(delta, i)
		if math.Abs(d) < parallelEpsilon {
			if !iv.Includes(o, floatEpsilon) {
				return r3.Vector{}, r3.Vector{}, ErrSegmentMissesBox
			}
			continue
		}
		t1 := (iv.Min() - o) / d
		t2 := (iv.Max() - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return r3.Vector{}, r3.Vector{}, ErrSegmentMissesBox
		}
	}

	p1 := origin.Add(delta.Mul(tmin))
	p2 := origin.Add(delta.Mul(tmax))
	return b.Plane.FromLocal(p1), b.Plane.FromLocal(p2), nil
}

// ToBrep returns the box as a closed boundary representation with outward facing triangles.
func (b *OrientedBox) ToBrep() *Brep {
	corners := b.Corners()
	return newBoxBrep(corners)
}

// String returns a human readable string that represents the box.
func (b *OrientedBox) String() string {
	c := b.Center()
	d := b.Dims()
	return fmt.Sprintf("Type: OrientedBox | Center: X:%.3f, Y:%.3f, Z:%.3f | Dims: X:%.3f, Y:%.3f, Z:%.3f",
		c.X, c.Y, c.Z, d.X, d.Y, d.Z)
}
