// Package pointcloud defines the ordered point clouds sampled from beams and the readers that load them.
//
// Unlike a spatial index, a cloud here keeps every point in insertion order, duplicates included, because
// the predictor consumes points in the order they were captured.
package pointcloud

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

// ErrEmpty is returned by operations that need at least one point.
var ErrEmpty = errors.New("point cloud is empty")

// MetaData is data about what's stored in the point cloud.
type MetaData struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64

	totalX, totalY, totalZ float64
}

// NewMetaData returns bounds that any point will tighten.
func NewMetaData() MetaData {
	return MetaData{
		MinX: math.MaxFloat64,
		MinY: math.MaxFloat64,
		MinZ: math.MaxFloat64,
		MaxX: -math.MaxFloat64,
		MaxY: -math.MaxFloat64,
		MaxZ: -math.MaxFloat64,
	}
}

// Merge updates the bounds and running totals to include p.
func (meta *MetaData) Merge(p r3.Vector) {
	meta.MinX = math.Min(meta.MinX, p.X)
	meta.MinY = math.Min(meta.MinY, p.Y)
	meta.MinZ = math.Min(meta.MinZ, p.Z)
	meta.MaxX = math.Max(meta.MaxX, p.X)
	meta.MaxY = math.Max(meta.MaxY, p.Y)
	meta.MaxZ = math.Max(meta.MaxZ, p.Z)

	meta.totalX += p.X
	meta.totalY += p.Y
	meta.totalZ += p.Z
}

// BoundingBox returns the axis aligned bounds of every merged point.
func (meta *MetaData) BoundingBox() spatialmath.BoundingBox {
	return spatialmath.BoundingBox{
		Min: r3.Vector{X: meta.MinX, Y: meta.MinY, Z: meta.MinZ},
		Max: r3.Vector{X: meta.MaxX, Y: meta.MaxY, Z: meta.MaxZ},
	}
}

// PointCloud is an ordered sequence of 3D points.
type PointCloud interface {
	// Size returns the number of points in the cloud.
	Size() int

	// MetaData returns meta data.
	MetaData() MetaData

	// Append adds a point to the end of the cloud. Non-finite points are rejected.
	Append(p r3.Vector) error

	// At returns the i-th point in insertion order.
	At(i int) r3.Vector

	// Iterate calls fn for every point in order until fn returns false.
	// numBatches lets you divide up the work. 0 means don't divide.
	// myBatch is used iff numBatches > 0 and is which batch you want.
	Iterate(numBatches, myBatch int, fn func(i int, p r3.Vector) bool)
}

// Points returns a copy of the points of the cloud in order.
func Points(pc PointCloud) []r3.Vector {
	pts := make([]r3.Vector, 0, pc.Size())
	pc.Iterate(0, 0, func(_ int, p r3.Vector) bool {
		pts = append(pts, p)
		return true
	})
	return pts
}

// Centroid returns the arithmetic mean of the points.
func Centroid(pc PointCloud) (r3.Vector, error) {
	if pc == nil || pc.Size() == 0 {
		return r3.Vector{}, ErrEmpty
	}
	meta := pc.MetaData()
	return r3.Vector{X: meta.totalX, Y: meta.totalY, Z: meta.totalZ}.Mul(1 / float64(pc.Size())), nil
}

// Transform returns a new cloud with every point mapped through t. The input is left untouched.
func Transform(pc PointCloud, t *spatialmath.Transform) (PointCloud, error) {
	out := NewWithPrealloc(pc.Size())
	var err error
	pc.Iterate(0, 0, func(i int, p r3.Vector) bool {
		if err = out.Append(t.Point(p)); err != nil {
			err = errors.Wrapf(err, "transforming point %d", i)
			return false
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// ToGeometry returns the cloud as a point set geometry.
func ToGeometry(pc PointCloud) *spatialmath.PointSet {
	return spatialmath.NewPointSet(Points(pc))
}
