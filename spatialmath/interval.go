package spatialmath

import (
	"math"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/utils"
)

// Interval is a closed range of parameters. T0 may be larger than T1.
type Interval struct {
	T0, T1 float64
}

// Min returns the smaller end of the interval.
func (i Interval) Min() float64 {
	return math.Min(i.T0, i.T1)
}

// Max returns the larger end of the interval.
func (i Interval) Max() float64 {
	return math.Max(i.T0, i.T1)
}

// Length returns the non-negative width of the interval.
func (i Interval) Length() float64 {
	return i.Max() - i.Min()
}

// Mid returns the midpoint of the interval.
func (i Interval) Mid() float64 {
	return 0.5 * (i.T0 + i.T1)
}

// IsValid returns whether both ends are finite numbers.
func (i Interval) IsValid() bool {
	return utils.IsFinite(i.T0) && utils.IsFinite(i.T1)
}

// Includes returns whether t lies within the interval, widened by epsilon on both ends.
func (i Interval) Includes(t, epsilon float64) bool {
	return t >= i.Min()-epsilon && t <= i.Max()+epsilon
}

// AtExtreme returns whether t is within epsilon of either end of the interval.
func (i Interval) AtExtreme(t, epsilon float64) bool {
	return utils.Float64AlmostEqual(t, i.T0, epsilon) || utils.Float64AlmostEqual(t, i.T1, epsilon)
}
