package pointcloud

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

// basicPointCloud is the basic implementation of the PointCloud interface backed by a slice.
type basicPointCloud struct {
	points []r3.Vector
	meta   MetaData
}

// New returns an empty PointCloud backed by a basicPointCloud.
func New() PointCloud {
	return NewWithPrealloc(0)
}

// NewWithPrealloc returns an empty, preallocated PointCloud backed by a basicPointCloud.
func NewWithPrealloc(size int) PointCloud {
	return &basicPointCloud{
		points: make([]r3.Vector, 0, size),
		meta:   NewMetaData(),
	}
}

// NewFromPoints returns a cloud over pts in order.
func NewFromPoints(pts []r3.Vector) (PointCloud, error) {
	pc := NewWithPrealloc(len(pts))
	for i, p := range pts {
		if err := pc.Append(p); err != nil {
			return nil, errors.Wrapf(err, "point %d", i)
		}
	}
	return pc, nil
}

func (cloud *basicPointCloud) Size() int {
	return len(cloud.points)
}

func (cloud *basicPointCloud) MetaData() MetaData {
	return cloud.meta
}

func (cloud *basicPointCloud) At(i int) r3.Vector {
	return cloud.points[i]
}

// Append validates that the point is finite before adding it to the cloud.
func (cloud *basicPointCloud) Append(p r3.Vector) error {
	if !spatialmath.VectorIsFinite(p) {
		return errors.Errorf("point %v is not finite", p)
	}
	cloud.points = append(cloud.points, p)
	cloud.meta.Merge(p)
	return nil
}

func (cloud *basicPointCloud) Iterate(numBatches, myBatch int, fn func(i int, p r3.Vector) bool) {
	lowerBound := 0
	upperBound := len(cloud.points)
	if numBatches > 0 {
		batchSize := (len(cloud.points) + numBatches - 1) / numBatches
		lowerBound = myBatch * batchSize
		upperBound = lowerBound + batchSize
		if upperBound > len(cloud.points) {
			upperBound = len(cloud.points)
		}
	}
	for i := lowerBound; i < upperBound; i++ {
		if !fn(i, cloud.points[i]) {
			return
		}
	}
}
