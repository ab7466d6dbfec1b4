package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// GeometryKind enumerates the geometry variants accepted for bounding box construction.
type GeometryKind int

// The geometry variants.
const (
	UnknownGeometry GeometryKind = iota
	BrepGeometry
	MeshGeometry
	CurveGeometry
	PointSetGeometry
)

func (k GeometryKind) String() string {
	switch k {
	case BrepGeometry:
		return "brep"
	case MeshGeometry:
		return "mesh"
	case CurveGeometry:
		return "curve"
	case PointSetGeometry:
		return "pointset"
	case UnknownGeometry:
	}
	return "unknown"
}

// ParseGeometryKind is the inverse of GeometryKind.String.
func ParseGeometryKind(s string) (GeometryKind, error) {
	for _, k := range []GeometryKind{BrepGeometry, MeshGeometry, CurveGeometry, PointSetGeometry} {
		if k.String() == s {
			return k, nil
		}
	}
	return UnknownGeometry, errors.Errorf("unknown geometry kind %q", s)
}

// Geometry is the closed set of beam geometries: *Brep, *Mesh, *Curve and *PointSet.
type Geometry interface {
	Kind() GeometryKind
	// BoundingBox returns the world-aligned bounding box. An error is returned for empty geometry.
	BoundingBox() (BoundingBox, error)
	// Transform returns a transformed copy; the receiver is left untouched.
	Transform(t *Transform) Geometry

	isGeometry()
}

// ErrUnsupportedGeometry is returned when a geometry is not one of the supported variants.
var ErrUnsupportedGeometry = errors.New("unsupported geometry")

func newUnsupportedGeometryError(g Geometry) error {
	if g == nil {
		return errors.Wrap(ErrUnsupportedGeometry, "geometry is nil")
	}
	switch g.(type) {
	case *Brep, *Mesh, *Curve, *PointSet:
		return errors.Wrapf(ErrUnsupportedGeometry, "nil %T", g)
	default:
		return errors.Wrapf(ErrUnsupportedGeometry, "%T", g)
	}
}

func isSupportedGeometry(g Geometry) bool {
	switch v := g.(type) {
	case *Brep:
		return v != nil
	case *Mesh:
		return v != nil
	case *Curve:
		return v != nil
	case *PointSet:
		return v != nil
	default:
		return false
	}
}

func newEmptyGeometryError(kind GeometryKind) error {
	return errors.Errorf("%s has no vertices", kind)
}

func boundingBoxOf(kind GeometryKind, pts []r3.Vector) (BoundingBox, error) {
	if len(pts) == 0 {
		return BoundingBox{}, newEmptyGeometryError(kind)
	}
	bb := NewBoundingBoxFromPoints(pts)
	if !bb.IsValid() {
		return BoundingBox{}, errors.Errorf("%s has non-finite vertices", kind)
	}
	return bb, nil
}

// PointSet is a bare collection of points.
type PointSet struct {
	points []r3.Vector
}

// NewPointSet returns a point set over a copy of pts.
func NewPointSet(pts []r3.Vector) *PointSet {
	return &PointSet{points: append([]r3.Vector(nil), pts...)}
}

// Points returns the points of the set.
func (ps *PointSet) Points() []r3.Vector {
	return ps.points
}

// Kind implements Geometry.
func (ps *PointSet) Kind() GeometryKind {
	return PointSetGeometry
}

// BoundingBox implements Geometry.
func (ps *PointSet) BoundingBox() (BoundingBox, error) {
	return boundingBoxOf(PointSetGeometry, ps.points)
}

// Transform implements Geometry.
func (ps *PointSet) Transform(t *Transform) Geometry {
	return &PointSet{points: t.Points(ps.points)}
}

func (ps *PointSet) isGeometry() {}

// Curve is a polyline through its vertices. Smooth curves are expected to arrive sampled.
type Curve struct {
	vertices []r3.Vector
}

// NewCurve returns a polyline curve over a copy of vertices.
func NewCurve(vertices []r3.Vector) *Curve {
	return &Curve{vertices: append([]r3.Vector(nil), vertices...)}
}

// Vertices returns the curve's vertices.
func (c *Curve) Vertices() []r3.Vector {
	return c.vertices
}

// Kind implements Geometry.
func (c *Curve) Kind() GeometryKind {
	return CurveGeometry
}

// BoundingBox implements Geometry.
func (c *Curve) BoundingBox() (BoundingBox, error) {
	return boundingBoxOf(CurveGeometry, c.vertices)
}

// Transform implements Geometry.
func (c *Curve) Transform(t *Transform) Geometry {
	return &Curve{vertices: t.Points(c.vertices)}
}

func (c *Curve) isGeometry() {}
