package pipeline

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/golang/geo/r3"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/axis"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/beam"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/logging"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

// Stage names the step of a run a note was raised in.
type Stage string

// Stages of a run.
const (
	StageInput      Stage = "input"
	StageFrame      Stage = "frame"
	StagePrediction Stage = "prediction"
	StageBox        Stage = "box"
	StageLine       Stage = "line"
)

// Note is a non-fatal problem with one beam.
type Note struct {
	BeamID  int    `json:"beam_id"`
	Stage   Stage  `json:"stage"`
	Message string `json:"message"`
}

// BoxReport describes the oriented bounding box a beam's axis was clipped against.
type BoxReport struct {
	Center  r3.Vector    `json:"center"`
	Dims    r3.Vector    `json:"dims"`
	Corners [8]r3.Vector `json:"corners"`
}

func newBoxReport(box *spatialmath.OrientedBox) *BoxReport {
	return &BoxReport{Center: box.Center(), Dims: box.Dims(), Corners: box.Corners()}
}

// BeamResult is everything a run produced for one predicted beam. The pointer fields stay nil when the step
// that produces them failed.
type BeamResult struct {
	ID            int       `json:"id"`
	Label         string    `json:"label"`
	Centroid      r3.Vector `json:"centroid"`
	FittedAxis    r3.Vector `json:"fitted_axis"`
	AxisDefaulted bool      `json:"axis_defaulted,omitempty"`

	// FitResidual is the largest distance from a beam point to the fitted axis through the point mean.
	FitResidual float64 `json:"fit_residual"`

	Center    *r3.Vector `json:"center,omitempty"`
	Direction *r3.Vector `json:"direction,omitempty"`
	Box       *BoxReport `json:"box,omitempty"`
	Line      *axis.Line `json:"line,omitempty"`
}

// CentroidSummary aggregates the distances between cloud and boundary centroids.
type CentroidSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// Report is the outcome of a run.
type Report struct {
	RunID   string  `json:"run_id"`
	Options Options `json:"options"`

	Beams               []BeamResult              `json:"beams"`
	Notes               []Note                    `json:"notes,omitempty"`
	CentroidDiagnostics []beam.CentroidDiagnostic `json:"centroid_diagnostics,omitempty"`
	CentroidSummary     *CentroidSummary          `json:"centroid_summary,omitempty"`

	// MissingIDs are beams that were requested but got no prediction back.
	MissingIDs []int `json:"missing_ids,omitempty"`
}

func (r *Report) note(id int, stage Stage, err error, logger logging.Logger) {
	r.Notes = append(r.Notes, Note{BeamID: id, Stage: stage, Message: err.Error()})
	logger.Warnw("beam issue", "beam", id, "stage", stage, "error", err)
}

// Lines returns the reconstructed axes in beam order.
func (r *Report) Lines() []axis.Line {
	var lines []axis.Line
	for _, b := range r.Beams {
		if b.Line != nil {
			lines = append(lines, *b.Line)
		}
	}
	return lines
}

// Result returns the result for beam id.
func (r *Report) Result(id int) (*BeamResult, bool) {
	for i := range r.Beams {
		if r.Beams[i].ID == id {
			return &r.Beams[i], true
		}
	}
	return nil, false
}

// NotesFor returns the notes raised for beam id.
func (r *Report) NotesFor(id int) []Note {
	var notes []Note
	for _, n := range r.Notes {
		if n.BeamID == id {
			notes = append(notes, n)
		}
	}
	return notes
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Table renders one row per predicted beam.
func (r *Report) Table() string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"ID", "Label", "Center", "Direction", "P1", "P2", "Midpoint", "Length"})
	for _, b := range r.Beams {
		row := table.Row{b.ID, b.Label, formatVector(b.Center), formatVector(b.Direction), "", "", "", ""}
		if b.Line != nil {
			mid := b.Line.Midpoint()
			row[4] = formatVector(&b.Line.P1)
			row[5] = formatVector(&b.Line.P2)
			row[6] = formatVector(&mid)
			row[7] = fmt.Sprintf("%.3f", b.Line.Length())
		}
		t.AppendRow(row)
	}
	t.AppendFooter(table.Row{"", "", "", "", "", "", "missing", len(r.MissingIDs)})
	return t.Render()
}

func formatVector(v *r3.Vector) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("X:%.3f, Y:%.3f, Z:%.3f", v.X, v.Y, v.Z)
}

func summarizeCentroids(diags []beam.CentroidDiagnostic) *CentroidSummary {
	var deltas stats.Float64Data
	for _, d := range diags {
		if d.Delta != nil {
			deltas = append(deltas, *d.Delta)
		}
	}
	if len(deltas) == 0 {
		return nil
	}
	// errors are only returned for empty input
	mean, _ := stats.Mean(deltas)
	median, _ := stats.Median(deltas)
	maxDelta, _ := stats.Max(deltas)
	return &CentroidSummary{Count: len(deltas), Mean: mean, Median: median, Max: maxDelta}
}
