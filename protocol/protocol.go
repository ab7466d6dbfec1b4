// Package protocol implements the line oriented text format exchanged with an axis predictor.
//
// A request holds one record per beam:
//
//	beam <id> <label>
//	<x> <y> <z>
//	...
//	endbeam
//
// and a response one record per predicted beam:
//
//	result <id>
//	c <x> <y> <z>
//	v <x> <y> <z>
//	endresult
//
// Numbers are locale-invariant decimals, tokens are whitespace delimited and blank lines are ignored.
package protocol

import (
	"fmt"

	"github.com/golang/geo/r3"
)

// Record keywords.
const (
	BeamKeyword      = "beam"
	EndBeamKeyword   = "endbeam"
	ResultKeyword    = "result"
	EndResultKeyword = "endresult"
	CenterKeyword    = "c"
	DirectionKeyword = "v"
	ReservedKeyword  = "t"
)

// BeamRecord is one beam of a request. Points are expressed in the beam's canonical frame.
type BeamRecord struct {
	ID     int
	Label  string
	Points []r3.Vector
}

// Request is an ordered batch of beams.
type Request struct {
	Beams []BeamRecord
}

// IDs returns the beam ids of the request in order.
func (req Request) IDs() []int {
	ids := make([]int, 0, len(req.Beams))
	for _, b := range req.Beams {
		ids = append(ids, b.ID)
	}
	return ids
}

// Prediction is a predicted axis in the canonical frame of its beam.
type Prediction struct {
	ID        int
	Center    r3.Vector
	Direction r3.Vector
}

// Result maps beam ids to predictions and remembers the order they were added in.
type Result struct {
	predictions map[int]Prediction
	order       []int
}

// NewResult returns an empty result.
func NewResult() *Result {
	return &Result{predictions: map[int]Prediction{}}
}

// Put adds or replaces the prediction for p.ID.
func (r *Result) Put(p Prediction) {
	if _, ok := r.predictions[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.predictions[p.ID] = p
}

// Get returns the prediction for id.
func (r *Result) Get(id int) (Prediction, bool) {
	p, ok := r.predictions[id]
	return p, ok
}

// Len returns the number of predictions.
func (r *Result) Len() int {
	return len(r.predictions)
}

// Predictions returns every prediction in the order it was first added.
func (r *Result) Predictions() []Prediction {
	out := make([]Prediction, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.predictions[id])
	}
	return out
}

// ParseError reports malformed input along with the 1-based line it was found on.
type ParseError struct {
	Line int
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
