// Package axis turns a predicted infinite axis into a finite line by clipping it against the beam's
// oriented bounding box.
package axis

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/utils"
)

const (
	// MinHalfLength is the shortest half-length of the clip segment.
	MinHalfLength = 1.0

	// extendEpsilon is the magnitude below which an extension is ignored.
	extendEpsilon = 1e-9
)

// ErrNoIntersection is returned when the predicted axis does not cross the box.
var ErrNoIntersection = errors.New("axis does not intersect bounding box")

// Line is a finite axis. P1 has the smaller projection onto Direction.
type Line struct {
	P1        r3.Vector `json:"p1"`
	P2        r3.Vector `json:"p2"`
	Center    r3.Vector `json:"center"`
	Direction r3.Vector `json:"direction"`

	// Extended is true when a non-zero extension was applied.
	Extended bool `json:"extended"`
	// ExtensionRejected is true when the extension would have swapped the endpoints and was dropped.
	ExtensionRejected bool `json:"extension_rejected,omitempty"`
}

// Length returns the distance between the endpoints.
func (l Line) Length() float64 {
	return l.P2.Sub(l.P1).Norm()
}

// Midpoint returns the point halfway between the endpoints.
func (l Line) Midpoint() r3.Vector {
	return l.P1.Add(l.P2).Mul(0.5)
}

// HalfLength returns the half-length of the clip segment used against box.
func HalfLength(box *spatialmath.OrientedBox) float64 {
	return math.Max(MinHalfLength, 2*box.LocalDiagonal())
}

// Reconstruct intersects the line through center along direction with box and returns the two boundary
// points, ordered along direction. A non-zero extend moves P1 backward and P2 forward by extend; a negative
// extend shortens the line. An extension that would invert the endpoints is rejected and the intersection
// endpoints are kept.
func Reconstruct(center, direction r3.Vector, box *spatialmath.OrientedBox, extend float64) (Line, error) {
	if box == nil || !box.IsValid() {
		return Line{}, errors.New("invalid bounding box")
	}
	if !spatialmath.VectorIsFinite(center) {
		return Line{}, errors.Errorf("center %v is not finite", center)
	}
	dir, ok := spatialmath.Unitize(direction)
	if !ok || !spatialmath.VectorIsFinite(dir) {
		return Line{}, errors.Errorf("direction %v is degenerate", direction)
	}
	if !utils.IsFinite(extend) {
		return Line{}, errors.Errorf("extend %g is not finite", extend)
	}

	half := HalfLength(box)
	from := center.Sub(dir.Mul(half))
	to := center.Add(dir.Mul(half))
	p1, p2, err := box.ClipSegment(from, to)
	if err != nil {
		if errors.Is(err, spatialmath.ErrSegmentMissesBox) {
			return Line{}, ErrNoIntersection
		}
		return Line{}, err
	}
	if p1.Sub(center).Dot(dir) > p2.Sub(center).Dot(dir) {
		p1, p2 = p2, p1
	}

	line := Line{P1: p1, P2: p2, Center: center, Direction: dir}
	if math.Abs(extend) <= extendEpsilon {
		return line, nil
	}
	e1 := p1.Sub(dir.Mul(extend))
	e2 := p2.Add(dir.Mul(extend))
	if e1.Sub(center).Dot(dir) > e2.Sub(center).Dot(dir) {
		line.ExtensionRejected = true
		return line, nil
	}
	line.P1, line.P2 = e1, e2
	line.Extended = true
	return line, nil
}
