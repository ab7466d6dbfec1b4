package beam

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/pointcloud"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/utils"
)

// DefaultAxis is used whenever a beam's axis cannot be fitted.
var DefaultAxis = spatialmath.XAxis

// minSegmentLength is the fitted segment length below which a fit is considered degenerate.
const minSegmentLength = 1e-9

// FitAxis returns the unit direction of the least squares line through the cloud. The second return is false
// when the fit degenerated and DefaultAxis was returned instead.
func FitAxis(pc pointcloud.PointCloud) (r3.Vector, bool) {
	line, err := pointcloud.FitLine(pc)
	if err != nil {
		return DefaultAxis, false
	}

	low, high := math.Inf(1), math.Inf(-1)
	pc.Iterate(0, 0, func(_ int, p r3.Vector) bool {
		t := p.Sub(line.Point).Dot(line.Direction)
		low = math.Min(low, t)
		high = math.Max(high, t)
		return true
	})
	if high-low < minSegmentLength {
		return DefaultAxis, false
	}

	axis, ok := spatialmath.Unitize(line.Direction)
	if !ok {
		return DefaultAxis, false
	}
	return axis, true
}

// FitResidual returns the largest distance from a point of the cloud to the line through its mean along the
// unit vector axis.
func FitResidual(pc pointcloud.PointCloud, axis r3.Vector) (float64, error) {
	mean, err := pointcloud.Centroid(pc)
	if err != nil {
		return 0, err
	}
	line := pointcloud.Line{Point: mean, Direction: axis}
	var residual float64
	pc.Iterate(0, 0, func(_ int, p r3.Vector) bool {
		residual = math.Max(residual, line.Distance(p))
		return true
	})
	return residual, nil
}

// ScalingActive returns whether scale factor s changes anything: it must differ from 1 and be finite.
func ScalingActive(s float64) bool {
	return s != 1 && utils.IsFinite(s)
}

// Frame is the canonical frame of one beam: the beam is moved so that its centroid sits at the origin and is
// then optionally stretched by ScaleFactor along its axis.
type Frame struct {
	BeamID        int
	Axis          r3.Vector
	Centroid      r3.Vector
	Plane         spatialmath.Plane
	ScaleFactor   float64
	ScalingActive bool

	Move         *spatialmath.Transform
	MoveInverse  *spatialmath.Transform
	Scale        *spatialmath.Transform
	ScaleInverse *spatialmath.Transform
}

// NewFrame builds the canonical frame of beam id. The scale is applied about the world origin, after the move,
// along axis only. An error is returned when the scale cannot be inverted.
func NewFrame(id int, centroid, axis r3.Vector, scaleFactor float64) (*Frame, error) {
	unit, ok := spatialmath.Unitize(axis)
	if !ok {
		unit = DefaultAxis
	}
	plane, err := spatialmath.NewPlaneFromAxis(r3.Vector{}, unit, spatialmath.BeamFrameHelpers)
	if err != nil {
		return nil, errors.Wrapf(err, "beam %d", id)
	}

	f := &Frame{
		BeamID:        id,
		Axis:          unit,
		Centroid:      centroid,
		Plane:         plane,
		ScaleFactor:   scaleFactor,
		ScalingActive: ScalingActive(scaleFactor),
		Move:          spatialmath.NewTranslation(centroid.Mul(-1)),
		MoveInverse:   spatialmath.NewTranslation(centroid),
		Scale:         spatialmath.NewIdentityTransform(),
		ScaleInverse:  spatialmath.NewIdentityTransform(),
	}
	if f.ScalingActive {
		f.Scale = spatialmath.NewScaleInPlane(plane, scaleFactor, 1, 1)
		inv, err := f.Scale.Inverse()
		if err != nil {
			return nil, errors.Wrapf(err, "beam %d: scale factor %g", id, scaleFactor)
		}
		f.ScaleInverse = inv
	}
	return f, nil
}

// Forward returns the world to canonical transform.
func (f *Frame) Forward() *spatialmath.Transform {
	return spatialmath.Compose(f.Scale, f.Move)
}

// Inverse returns the canonical to world transform.
func (f *Frame) Inverse() *spatialmath.Transform {
	return spatialmath.Compose(f.MoveInverse, f.ScaleInverse)
}

// ForwardCloud returns the beam's points expressed in the canonical frame.
func (f *Frame) ForwardCloud(pc pointcloud.PointCloud) (pointcloud.PointCloud, error) {
	return pointcloud.Transform(pc, f.Forward())
}

// InversePoint maps a canonical point back to world space: the scale is undone, then the move.
func (f *Frame) InversePoint(p r3.Vector) r3.Vector {
	return f.MoveInverse.Point(f.ScaleInverse.Point(p))
}

// InverseDirection maps a canonical direction back to world space and normalizes it. Translation does not
// apply to directions. An error is returned for a zero or non-finite direction.
func (f *Frame) InverseDirection(v r3.Vector) (r3.Vector, error) {
	world, ok := spatialmath.Unitize(f.MoveInverse.Vector(f.ScaleInverse.Vector(v)))
	if !ok {
		return r3.Vector{}, errors.Errorf("beam %d: predicted direction %v is degenerate", f.BeamID, v)
	}
	return world, nil
}
