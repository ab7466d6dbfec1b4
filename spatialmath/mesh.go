package spatialmath

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Mesh is a triangle soup.
type Mesh struct {
	triangles []*Triangle
}

// NewMesh returns a mesh over the given triangles.
func NewMesh(triangles []*Triangle) *Mesh {
	return &Mesh{triangles: triangles}
}

// Triangles returns the triangles of the mesh.
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}

// Vertices returns every triangle vertex, with repeats.
func (m *Mesh) Vertices() []r3.Vector {
	return trianglesVertices(m.triangles)
}

// Kind implements Geometry.
func (m *Mesh) Kind() GeometryKind {
	return MeshGeometry
}

// BoundingBox implements Geometry.
func (m *Mesh) BoundingBox() (BoundingBox, error) {
	return boundingBoxOf(MeshGeometry, m.Vertices())
}

// Transform implements Geometry.
func (m *Mesh) Transform(t *Transform) Geometry {
	return &Mesh{triangles: transformTriangles(m.triangles, t)}
}

func (m *Mesh) isGeometry() {}

// Brep is a boundary representation given by its tessellated faces. A closed Brep encloses a solid.
type Brep struct {
	faces  []*Triangle
	closed bool
}

// NewBrep returns a boundary representation. closed states whether the faces enclose a solid.
func NewBrep(faces []*Triangle, closed bool) *Brep {
	return &Brep{faces: faces, closed: closed}
}

// Faces returns the tessellated faces.
func (b *Brep) Faces() []*Triangle {
	return b.faces
}

// IsSolid returns whether the Brep is closed.
func (b *Brep) IsSolid() bool {
	return b.closed
}

// Area returns the total surface area.
func (b *Brep) Area() float64 {
	var area float64
	for _, f := range b.faces {
		area += f.Area()
	}
	return area
}

// AreaCentroid returns the area-weighted centroid of the surface.
func (b *Brep) AreaCentroid() (r3.Vector, error) {
	var area float64
	var weighted r3.Vector
	for _, f := range b.faces {
		a := f.Area()
		area += a
		weighted = weighted.Add(f.Centroid().Mul(a))
	}
	if area < floatEpsilon {
		return r3.Vector{}, errors.Errorf("surface area %g is degenerate", area)
	}
	c := weighted.Mul(1 / area)
	if !VectorIsFinite(c) {
		return r3.Vector{}, errors.New("area centroid is not finite")
	}
	return c, nil
}

// Volume returns the enclosed volume of a closed Brep, regardless of face winding.
func (b *Brep) Volume() (float64, error) {
	v, _, err := b.volumeMoments()
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = -v
	}
	return v, nil
}

// VolumeCentroid returns the centroid of the solid enclosed by a closed Brep.
func (b *Brep) VolumeCentroid() (r3.Vector, error) {
	v, moment, err := b.volumeMoments()
	if err != nil {
		return r3.Vector{}, err
	}
	c := moment.Mul(1 / v)
	if !VectorIsFinite(c) {
		return r3.Vector{}, errors.New("volume centroid is not finite")
	}
	return c, nil
}

// volumeMoments decomposes the solid into tetrahedra against the bounding box center and returns the signed
// volume and the first moment.
func (b *Brep) volumeMoments() (float64, r3.Vector, error) {
	if !b.closed {
		return 0, r3.Vector{}, errors.New("brep is not closed")
	}
	bb, err := b.BoundingBox()
	if err != nil {
		return 0, r3.Vector{}, err
	}
	ref := bb.Center()
	var volume float64
	var moment r3.Vector
	for _, f := range b.faces {
		v := f.signedVolume(ref)
		volume += v
		tetCentroid := f.p0.Add(f.p1).Add(f.p2).Add(ref).Mul(0.25)
		moment = moment.Add(tetCentroid.Mul(v))
	}
	if volume > -floatEpsilon && volume < floatEpsilon {
		return 0, r3.Vector{}, errors.Errorf("enclosed volume %g is degenerate", volume)
	}
	return volume, moment, nil
}

// Kind implements Geometry.
func (b *Brep) Kind() GeometryKind {
	return BrepGeometry
}

// BoundingBox implements Geometry.
func (b *Brep) BoundingBox() (BoundingBox, error) {
	return boundingBoxOf(BrepGeometry, trianglesVertices(b.faces))
}

// Transform implements Geometry.
func (b *Brep) Transform(t *Transform) Geometry {
	return &Brep{faces: transformTriangles(b.faces, t), closed: b.closed}
}

func (b *Brep) isGeometry() {}

func trianglesVertices(triangles []*Triangle) []r3.Vector {
	verts := make([]r3.Vector, 0, 3*len(triangles))
	for _, t := range triangles {
		verts = append(verts, t.p0, t.p1, t.p2)
	}
	return verts
}

func transformTriangles(triangles []*Triangle, t *Transform) []*Triangle {
	out := make([]*Triangle, 0, len(triangles))
	for _, tri := range triangles {
		out = append(out, tri.Transform(t))
	}
	return out
}
