package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Ordered list of box vertices, as signs applied to the half sizes.
var boxVertices = [8]r3.Vector{
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: 1, Z: -1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: -1, Y: -1, Z: -1},
}

// The sets of indices of the box vertices that tile the box exterior, wound so that normals face outward.
var boxTriangles = [12][3]int{
	{2, 3, 1}, {2, 1, 0},
	{6, 4, 5}, {6, 5, 7},
	{0, 1, 5}, {0, 5, 4},
	{2, 7, 3}, {2, 6, 7},
	{0, 4, 6}, {0, 6, 2},
	{1, 3, 7}, {1, 7, 5},
}

// BoundingBox is an axis-aligned box. The zero value is not valid; use NewEmptyBoundingBox and Extend.
type BoundingBox struct {
	Min r3.Vector
	Max r3.Vector
}

// NewEmptyBoundingBox returns a box that becomes valid once a point is added.
func NewEmptyBoundingBox() BoundingBox {
	return BoundingBox{
		Min: r3.Vector{X: math.MaxFloat64, Y: math.MaxFloat64, Z: math.MaxFloat64},
		Max: r3.Vector{X: -math.MaxFloat64, Y: -math.MaxFloat64, Z: -math.MaxFloat64},
	}
}

// NewBoundingBoxFromPoints returns the tightest box around pts.
func NewBoundingBoxFromPoints(pts []r3.Vector) BoundingBox {
	bb := NewEmptyBoundingBox()
	for _, p := range pts {
		bb.Extend(p)
	}
	return bb
}

// Extend grows the box to include p.
func (bb *BoundingBox) Extend(p r3.Vector) {
	bb.Min = r3.Vector{X: math.Min(bb.Min.X, p.X), Y: math.Min(bb.Min.Y, p.Y), Z: math.Min(bb.Min.Z, p.Z)}
	bb.Max = r3.Vector{X: math.Max(bb.Max.X, p.X), Y: math.Max(bb.Max.Y, p.Y), Z: math.Max(bb.Max.Z, p.Z)}
}

// IsValid returns whether the box contains at least one finite point.
func (bb BoundingBox) IsValid() bool {
	return VectorIsFinite(bb.Min) && VectorIsFinite(bb.Max) &&
		bb.Min.X <= bb.Max.X && bb.Min.Y <= bb.Max.Y && bb.Min.Z <= bb.Max.Z
}

// Center returns the center of the box.
func (bb BoundingBox) Center() r3.Vector {
	return bb.Min.Add(bb.Max).Mul(0.5)
}

// Diagonal returns the vector from Min to Max.
func (bb BoundingBox) Diagonal() r3.Vector {
	return bb.Max.Sub(bb.Min)
}

// Corners returns the eight corners of the box.
func (bb BoundingBox) Corners() [8]r3.Vector {
	center := bb.Center()
	half := bb.Diagonal().Mul(0.5)
	var corners [8]r3.Vector
	for i, v := range boxVertices {
		corners[i] = center.Add(r3.Vector{X: v.X * half.X, Y: v.Y * half.Y, Z: v.Z * half.Z})
	}
	return corners
}

// ToBrep returns the box as a closed boundary representation with outward facing triangles.
func (bb BoundingBox) ToBrep() *Brep {
	return newBoxBrep(bb.Corners())
}

func newBoxBrep(corners [8]r3.Vector) *Brep {
	faces := make([]*Triangle, 0, len(boxTriangles))
	for _, tri := range boxTriangles {
		faces = append(faces, NewTriangle(corners[tri[0]], corners[tri[1]], corners[tri[2]]))
	}
	return NewBrep(faces, true)
}
