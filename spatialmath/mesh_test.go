package spatialmath

import (
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func reversed(b *Brep) *Brep {
	faces := make([]*Triangle, 0, len(b.Faces()))
	for _, f := range b.Faces() {
		pts := f.Points()
		faces = append(faces, NewTriangle(pts[0], pts[2], pts[1]))
	}
	return NewBrep(faces, b.IsSolid())
}

func TestBrepVolumeCentroid(t *testing.T) {
	cube := BoundingBox{Max: r3.Vector{X: 1, Y: 1, Z: 1}}.ToBrep()
	test.That(t, cube.IsSolid(), test.ShouldBeTrue)
	test.That(t, cube.Area(), test.ShouldAlmostEqual, 6.)

	for _, b := range []*Brep{cube, reversed(cube)} {
		vol, err := b.Volume()
		test.That(t, err, test.ShouldBeNil)
		test.That(t, vol, test.ShouldAlmostEqual, 1.)

		c, err := b.VolumeCentroid()
		test.That(t, err, test.ShouldBeNil)
		test.That(t, R3VectorAlmostEqual(c, r3.Vector{X: 0.5, Y: 0.5, Z: 0.5}, 1e-12), test.ShouldBeTrue)
	}

	for _, f := range cube.Faces() {
		test.That(t, f.Normal().Dot(f.Centroid().Sub(r3.Vector{X: 0.5, Y: 0.5, Z: 0.5})), test.ShouldBeGreaterThan, 0.)
	}

	t.Run("offset box", func(t *testing.T) {
		box := BoundingBox{Min: r3.Vector{X: 10, Y: -2, Z: 3}, Max: r3.Vector{X: 14, Y: -1, Z: 5}}.ToBrep()
		vol, err := box.Volume()
		test.That(t, err, test.ShouldBeNil)
		test.That(t, vol, test.ShouldAlmostEqual, 8.)
		c, err := box.VolumeCentroid()
		test.That(t, err, test.ShouldBeNil)
		test.That(t, R3VectorAlmostEqual(c, r3.Vector{X: 12, Y: -1.5, Z: 4}, 1e-9), test.ShouldBeTrue)
	})

	t.Run("open surface", func(t *testing.T) {
		open := NewBrep(cube.Faces()[:4], false)
		_, err := open.VolumeCentroid()
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "not closed")
	})

	t.Run("flat solid", func(t *testing.T) {
		flat := BoundingBox{Max: r3.Vector{X: 1, Y: 1}}.ToBrep()
		_, err := flat.VolumeCentroid()
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "degenerate")
	})
}

func TestBrepAreaCentroid(t *testing.T) {
	square := NewBrep([]*Triangle{
		NewTriangle(r3.Vector{}, r3.Vector{X: 2}, r3.Vector{X: 2, Y: 2}),
		NewTriangle(r3.Vector{}, r3.Vector{X: 2, Y: 2}, r3.Vector{Y: 2}),
	}, false)
	test.That(t, square.Area(), test.ShouldAlmostEqual, 4.)
	c, err := square.AreaCentroid()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, R3VectorAlmostEqual(c, r3.Vector{X: 1, Y: 1}, 1e-12), test.ShouldBeTrue)

	// a small far triangle barely moves an area weighted centroid
	weighted := NewBrep(append(square.Faces(),
		NewTriangle(r3.Vector{X: 100}, r3.Vector{X: 100.01}, r3.Vector{X: 100, Y: 0.01})), false)
	c, err = weighted.AreaCentroid()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, c.X, test.ShouldBeLessThan, 1.01)

	_, err = NewBrep([]*Triangle{NewTriangle(r3.Vector{}, r3.Vector{X: 1}, r3.Vector{X: 2})}, false).AreaCentroid()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "degenerate")
}

func TestMesh(t *testing.T) {
	cube := BoundingBox{Max: r3.Vector{X: 1, Y: 2, Z: 3}}.ToBrep()
	mesh := NewMesh(cube.Faces())
	test.That(t, mesh.Kind(), test.ShouldEqual, MeshGeometry)
	test.That(t, len(mesh.Triangles()), test.ShouldEqual, 12)
	test.That(t, len(mesh.Vertices()), test.ShouldEqual, 36)

	bb, err := mesh.BoundingBox()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bb.Min, test.ShouldResemble, r3.Vector{})
	test.That(t, bb.Max, test.ShouldResemble, r3.Vector{X: 1, Y: 2, Z: 3})

	moved := mesh.Transform(NewTranslation(r3.Vector{X: 1}))
	bb, err = moved.BoundingBox()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bb.Min, test.ShouldResemble, r3.Vector{X: 1})
	bb, err = mesh.BoundingBox()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bb.Min, test.ShouldResemble, r3.Vector{})

	_, err = NewMesh(nil).BoundingBox()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldEqual, "mesh has no vertices")
}
