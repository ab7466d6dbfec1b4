package beam

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/pointcloud"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

// CentroidChoice records the centroids available for a beam and which one anchors its frame.
type CentroidChoice struct {
	// Cloud is the mean of the beam's points.
	Cloud r3.Vector
	// Boundary is the centroid of the boundary geometry, or nil when there is none.
	Boundary *r3.Vector
	// BoundaryErr explains why a supplied boundary produced no centroid.
	BoundaryErr error
	// Used is Boundary when present, otherwise Cloud.
	Used r3.Vector
}

// UsesBoundary returns whether the boundary centroid was chosen.
func (c CentroidChoice) UsesBoundary() bool {
	return c.Boundary != nil
}

// Alternative returns the centroid that was not used, and false when there was no alternative.
func (c CentroidChoice) Alternative() (r3.Vector, bool) {
	if c.Boundary == nil {
		return r3.Vector{}, false
	}
	return c.Cloud, true
}

// Delta returns the distance between the cloud and boundary centroids, and false when only one exists.
func (c CentroidChoice) Delta() (float64, bool) {
	if c.Boundary == nil {
		return 0, false
	}
	return c.Boundary.Sub(c.Cloud).Norm(), true
}

// ResolveCentroid computes the centroid choice for a cloud and an optional boundary. A boundary whose
// centroid cannot be computed is recorded in BoundaryErr and otherwise ignored.
func ResolveCentroid(pc pointcloud.PointCloud, boundary *spatialmath.Brep) (CentroidChoice, error) {
	cloud, err := pointcloud.Centroid(pc)
	if err != nil {
		return CentroidChoice{}, err
	}
	choice := CentroidChoice{Cloud: cloud, Used: cloud}
	if boundary == nil {
		return choice, nil
	}

	c, err := boundaryCentroid(boundary)
	if err != nil {
		choice.BoundaryErr = err
		return choice, nil
	}
	choice.Boundary = &c
	choice.Used = c
	return choice, nil
}

func boundaryCentroid(b *spatialmath.Brep) (r3.Vector, error) {
	var c r3.Vector
	var err error
	if b.IsSolid() {
		c, err = b.VolumeCentroid()
	} else {
		c, err = b.AreaCentroid()
	}
	if err != nil {
		return r3.Vector{}, err
	}
	if !spatialmath.VectorIsFinite(c) {
		return r3.Vector{}, errors.New("boundary centroid is not finite")
	}
	return c, nil
}

// CentroidDiagnostic is the audit record of one beam's centroid choice.
type CentroidDiagnostic struct {
	BeamID            int        `json:"beam_id"`
	Used              r3.Vector  `json:"used"`
	Alternative       *r3.Vector `json:"alternative,omitempty"`
	Delta             *float64   `json:"delta,omitempty"`
	BoundarySucceeded bool       `json:"boundary_succeeded"`
	Reason            string     `json:"reason,omitempty"`
}

// Diagnostic returns the audit record for the choice.
func (c CentroidChoice) Diagnostic(id int) CentroidDiagnostic {
	d := CentroidDiagnostic{BeamID: id, Used: c.Used, BoundarySucceeded: c.UsesBoundary()}
	if alt, ok := c.Alternative(); ok {
		d.Alternative = &alt
	}
	if delta, ok := c.Delta(); ok {
		d.Delta = &delta
	}
	if c.BoundaryErr != nil {
		d.Reason = c.BoundaryErr.Error()
	}
	return d
}
