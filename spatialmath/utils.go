package spatialmath

import (
	"math"
	"strconv"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/utils"
)

// floatEpsilon is the tolerance below which lengths, areas and volumes are treated as zero.
const floatEpsilon = 1e-9

// Canonical world axes.
var (
	XAxis = r3.Vector{X: 1}
	YAxis = r3.Vector{Y: 1}
	ZAxis = r3.Vector{Z: 1}
)

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}

// VectorIsFinite returns whether no component of v is NaN or infinite.
func VectorIsFinite(v r3.Vector) bool {
	return utils.IsFinite(v.X) && utils.IsFinite(v.Y) && utils.IsFinite(v.Z)
}

// Unitize returns v scaled to unit length. The second return is false when v is zero, tiny, or not finite,
// in which case the first return is meaningless.
func Unitize(v r3.Vector) (r3.Vector, bool) {
	n := v.Norm()
	if !VectorIsFinite(v) || n < floatEpsilon || math.IsNaN(n) {
		return r3.Vector{}, false
	}
	return v.Mul(1 / n), true
}

// Component returns the i-th coordinate of v, 0 for X, 1 for Y and 2 for Z.
func Component(v r3.Vector, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// ParseVector parses three whitespace-separated tokens as a vector. Parsing is locale-invariant.
func ParseVector(tokens []string) (r3.Vector, error) {
	if len(tokens) < 3 {
		return r3.Vector{}, errors.Errorf("expected 3 coordinates, got %d", len(tokens))
	}
	var xyz [3]float64
	for i := 0; i < 3; i++ {
		value, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return r3.Vector{}, errors.Wrapf(err, "invalid coordinate %q", tokens[i])
		}
		xyz[i] = value
	}
	return r3.Vector{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}

// PlaneNormal returns the normal vector of the plane defined by three points.
func PlaneNormal(p0, p1, p2 r3.Vector) r3.Vector {
	return p1.Sub(p0).Cross(p2.Sub(p0))
}
