package beam

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/logging"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/pointcloud"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/utils"
)

// Vertex is a point written as [x, y, z].
type Vertex [3]float64

// Vector returns v as a vector.
func (v Vertex) Vector() r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}

// GeometryConfig describes a geometry in a beam set file. Curves and point sets use Vertices. Breps and meshes
// use Triangles, three vertices each.
type GeometryConfig struct {
	Kind      string      `json:"kind"`
	Vertices  []Vertex    `json:"vertices,omitempty"`
	Triangles [][3]Vertex `json:"triangles,omitempty"`
	Closed    bool        `json:"closed,omitempty"`
}

// BeamConfig is one beam of a beam set file. Points are given inline or as a point cloud file.
type BeamConfig struct {
	Label      string          `json:"label,omitempty"`
	Points     []Vertex        `json:"points,omitempty"`
	PointsFile string          `json:"points_file,omitempty"`
	Boundary   *GeometryConfig `json:"boundary,omitempty"`
	Geometry   *GeometryConfig `json:"geometry,omitempty"`
}

// SetConfig is the contents of a beam set file. Beam ids are positions in Beams.
type SetConfig struct {
	Beams []BeamConfig `json:"beams"`
}

// ReadSet reads a beam set file. Relative point cloud files are resolved against the directory of path.
func ReadSet(path string, logger logging.Logger) (beams []*Beam, err error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open beam set")
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return DecodeSet(f, filepath.Dir(path), logger)
}

// DecodeSet decodes a beam set, resolving relative point cloud files against dir.
func DecodeSet(r io.Reader, dir string, logger logging.Logger) ([]*Beam, error) {
	var cfg SetConfig
	if err := json.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, errors.Wrap(err, "cannot decode beam set")
	}
	in := Inputs{
		Clouds:     make([]pointcloud.PointCloud, len(cfg.Beams)),
		Labels:     make([]string, len(cfg.Beams)),
		Boundaries: make([]*spatialmath.Brep, len(cfg.Beams)),
		Geometries: make([]spatialmath.Geometry, len(cfg.Beams)),
	}
	for i, bc := range cfg.Beams {
		if err := bc.load(i, dir, &in, logger); err != nil {
			return nil, errors.Wrapf(err, "beam %d", i)
		}
	}
	return Zip(in)
}

func (bc BeamConfig) load(i int, dir string, in *Inputs, logger logging.Logger) error {
	var err error
	switch {
	case bc.PointsFile != "" && len(bc.Points) != 0:
		return errors.New("points and points_file are mutually exclusive")
	case bc.PointsFile != "":
		fn := bc.PointsFile
		if !filepath.IsAbs(fn) {
			fn = filepath.Join(dir, fn)
		}
		in.Clouds[i], err = pointcloud.NewFromFile(fn, logger)
	default:
		in.Clouds[i], err = pointcloud.NewFromPoints(vectors(bc.Points))
	}
	if err != nil {
		return err
	}
	in.Labels[i] = bc.Label

	if bc.Boundary != nil {
		g, err := bc.Boundary.Geometry()
		if err != nil {
			return errors.Wrap(err, "boundary")
		}
		brep, err := utils.AssertType[*spatialmath.Brep](g)
		if err != nil {
			return errors.Wrap(err, "boundary")
		}
		in.Boundaries[i] = brep
	}
	if bc.Geometry != nil {
		if in.Geometries[i], err = bc.Geometry.Geometry(); err != nil {
			return errors.Wrap(err, "geometry")
		}
	}
	return nil
}

// Geometry builds the described geometry.
func (gc *GeometryConfig) Geometry() (spatialmath.Geometry, error) {
	kind, err := spatialmath.ParseGeometryKind(gc.Kind)
	if err != nil {
		return nil, err
	}
	switch kind {
	case spatialmath.CurveGeometry:
		return spatialmath.NewCurve(vectors(gc.Vertices)), nil
	case spatialmath.PointSetGeometry:
		return spatialmath.NewPointSet(vectors(gc.Vertices)), nil
	case spatialmath.BrepGeometry:
		return spatialmath.NewBrep(gc.triangles(), gc.Closed), nil
	case spatialmath.MeshGeometry:
		return spatialmath.NewMesh(gc.triangles()), nil
	case spatialmath.UnknownGeometry:
	}
	return nil, errors.Wrap(spatialmath.ErrUnsupportedGeometry, gc.Kind)
}

func (gc *GeometryConfig) triangles() []*spatialmath.Triangle {
	triangles := make([]*spatialmath.Triangle, 0, len(gc.Triangles))
	for _, tri := range gc.Triangles {
		triangles = append(triangles, spatialmath.NewTriangle(tri[0].Vector(), tri[1].Vector(), tri[2].Vector()))
	}
	return triangles
}

func vectors(vs []Vertex) []r3.Vector {
	out := make([]r3.Vector, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Vector())
	}
	return out
}
