package pointcloud

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

// Line is an infinite line through Point along the unit vector Direction.
type Line struct {
	Point     r3.Vector
	Direction r3.Vector
}

// FitLine returns the least squares line through the cloud: it passes through the centroid and runs along the
// principal eigenvector of the covariance matrix. The sign of the direction is chosen so that its largest
// component is positive, which keeps fits of the same points stable.
func FitLine(pc PointCloud) (Line, error) {
	if pc == nil || pc.Size() < 2 {
		return Line{}, errors.New("need at least two points to fit a line")
	}
	centroid, err := Centroid(pc)
	if err != nil {
		return Line{}, err
	}

	cov := mat.NewSymDense(3, nil)
	pc.Iterate(0, 0, func(_ int, p r3.Vector) bool {
		d := p.Sub(centroid)
		v := [3]float64{d.X, d.Y, d.Z}
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				cov.SetSym(i, j, cov.At(i, j)+v[i]*v[j])
			}
		}
		return true
	})

	var eig mat.EigenSym
	if ok := eig.Factorize(cov, true); !ok {
		return Line{}, errors.New("eigen decomposition of point covariance failed")
	}
	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	// eigenvalues are in ascending order
	largest := len(values) - 1
	if values[largest] < 1e-18 {
		return Line{}, errors.New("points are coincident")
	}
	dir := r3.Vector{X: vectors.At(0, largest), Y: vectors.At(1, largest), Z: vectors.At(2, largest)}
	dir, ok := spatialmath.Unitize(dir)
	if !ok {
		return Line{}, errors.New("degenerate principal direction")
	}
	if c := dir.Abs().LargestComponent(); spatialmath.Component(dir, int(c)) < 0 {
		dir = dir.Mul(-1)
	}
	return Line{Point: centroid, Direction: dir}, nil
}

// ClosestPoint returns the projection of p onto the line.
func (l Line) ClosestPoint(p r3.Vector) r3.Vector {
	return l.Point.Add(l.Direction.Mul(p.Sub(l.Point).Dot(l.Direction)))
}

// Distance returns the distance from p to the line.
func (l Line) Distance(p r3.Vector) float64 {
	return p.Sub(l.ClosestPoint(p)).Norm()
}
