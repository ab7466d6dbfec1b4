// Package beam holds the per-beam records of an axis prediction run and the canonical frame each beam is
// normalized into before prediction.
package beam

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/pointcloud"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

// MinPoints is the fewest points a beam needs to take part in a run.
const MinPoints = 2

var (
	// ErrMisaligned is returned by Zip when an optional input collection does not match the point clouds.
	ErrMisaligned = errors.New("beam inputs are misaligned")

	// ErrTooFewPoints is returned by Validate for beams that cannot be fitted.
	ErrTooFewPoints = errors.New("beam has too few points")
)

// Beam is one structural member. ID is stable for the whole run: it is the beam's index in the ingested
// collections and the id exchanged with the predictor.
type Beam struct {
	ID     int
	Label  string
	Points pointcloud.PointCloud

	// Boundary is an optional solid or surface used for a higher fidelity centroid.
	Boundary *spatialmath.Brep

	// Geometry is the optional source of the beam's oriented bounding box. When nil, the point cloud is used.
	Geometry spatialmath.Geometry
}

// Inputs are the independently indexed collections a run starts from. Clouds is required; every other
// collection is either empty or exactly as long as Clouds, with nil entries for beams that lack one.
type Inputs struct {
	Clouds     []pointcloud.PointCloud
	Labels     []string
	Boundaries []*spatialmath.Brep
	Geometries []spatialmath.Geometry
}

// DefaultLabel is the label given to beam id when none is supplied.
func DefaultLabel(id int) string {
	return fmt.Sprintf("{%d}", id)
}

// Zip pairs the input collections by index into beams. Misaligned collections are rejected instead of being
// matched up by position.
func Zip(in Inputs) ([]*Beam, error) {
	n := len(in.Clouds)
	for _, other := range []struct {
		name string
		size int
	}{
		{"labels", len(in.Labels)},
		{"boundaries", len(in.Boundaries)},
		{"geometries", len(in.Geometries)},
	} {
		if other.size != 0 && other.size != n {
			return nil, errors.Wrapf(ErrMisaligned, "%d %s for %d point clouds", other.size, other.name, n)
		}
	}

	beams := make([]*Beam, 0, n)
	for i, pc := range in.Clouds {
		b := &Beam{ID: i, Label: DefaultLabel(i), Points: pc}
		if len(in.Labels) != 0 && in.Labels[i] != "" {
			b.Label = in.Labels[i]
		}
		if len(in.Boundaries) != 0 {
			b.Boundary = in.Boundaries[i]
		}
		if len(in.Geometries) != 0 {
			b.Geometry = in.Geometries[i]
		}
		beams = append(beams, b)
	}
	return beams, nil
}

// Validate returns ErrTooFewPoints when the beam cannot take part in a run.
func (b *Beam) Validate() error {
	if b.Points == nil || b.Points.Size() < MinPoints {
		size := 0
		if b.Points != nil {
			size = b.Points.Size()
		}
		return errors.Wrapf(ErrTooFewPoints, "beam %d has %d points", b.ID, size)
	}
	return nil
}

// BoxGeometry returns the geometry the beam's oriented bounding box is built from.
func (b *Beam) BoxGeometry() spatialmath.Geometry {
	if b.Geometry != nil {
		return b.Geometry
	}
	return pointcloud.ToGeometry(b.Points)
}
