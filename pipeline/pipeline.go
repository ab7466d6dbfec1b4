// Package pipeline runs an axis prediction over a set of beams: each beam is normalized into its canonical
// frame, the whole batch is predicted at once, and the predictions are mapped back to world space and
// clipped against the beam's oriented bounding box.
package pipeline

import (
	"context"

	"github.com/golang/geo/r3"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/axis"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/beam"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/logging"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/pointcloud"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/predictor"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/protocol"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

// ErrNoBeams is returned when no beam has enough points to be predicted.
var ErrNoBeams = errors.New("no beam has enough points to predict")

// Options tune a run.
type Options struct {
	// ScaleFactor stretches each beam along its fitted axis before prediction. 1 disables scaling.
	ScaleFactor float64 `json:"scale_factor"`
	// Extend lengthens both ends of every reconstructed axis. Negative values shorten it.
	Extend float64 `json:"extend"`
	// UseBoundaryCentroid anchors frames at the boundary centroid when a beam has a usable boundary.
	UseBoundaryCentroid bool `json:"use_boundary_centroid"`
}

// DefaultOptions returns options that leave beams unscaled and axes unextended.
func DefaultOptions() Options {
	return Options{ScaleFactor: 1, UseBoundaryCentroid: true}
}

// prepared is a beam that made it into the request.
type prepared struct {
	beam   *beam.Beam
	frame  *beam.Frame
	result *BeamResult
}

// Run predicts the axis of every beam with p. Beams that cannot be handled are skipped with a note in the
// report; a transform that cannot be inverted, a failing predictor and a malformed response abort the run.
func Run(
	ctx context.Context,
	beams []*beam.Beam,
	p predictor.Predictor,
	opts Options,
	logger logging.Logger,
) (*Report, error) {
	req, ready, report, err := buildRequest(beams, opts, logger)
	if err != nil {
		return report, err
	}

	res, err := p.Predict(ctx, req)
	if err != nil {
		return nil, errors.Wrap(err, "prediction failed")
	}
	requested := req.IDs()
	if extra := lo.Without(lo.Map(res.Predictions(), func(pr protocol.Prediction, _ int) int {
		return pr.ID
	}), requested...); len(extra) != 0 {
		logger.Debugw("ignoring results for beams that were not requested", "ids", extra)
	}

	for _, prep := range ready {
		pred, ok := res.Get(prep.beam.ID)
		if !ok {
			report.MissingIDs = append(report.MissingIDs, prep.beam.ID)
			logger.Debugw("no result for beam", "beam", prep.beam.ID)
			continue
		}
		finish(prep, pred, opts, report, logger)
		report.Beams = append(report.Beams, *prep.result)
	}
	logger.Infow("finished run", "run", report.RunID,
		"predicted", len(report.Beams), "lines", len(report.Lines()), "notes", len(report.Notes))
	return report, nil
}

// BuildRequest normalizes every usable beam into its canonical frame and returns the request a predictor
// would receive for them, along with the report of the preparation.
func BuildRequest(beams []*beam.Beam, opts Options, logger logging.Logger) (protocol.Request, *Report, error) {
	req, _, report, err := buildRequest(beams, opts, logger)
	return req, report, err
}

func buildRequest(
	beams []*beam.Beam,
	opts Options,
	logger logging.Logger,
) (protocol.Request, []*prepared, *Report, error) {
	if dups := lo.FindDuplicatesBy(beams, func(b *beam.Beam) int { return b.ID }); len(dups) != 0 {
		return protocol.Request{}, nil, nil, errors.Errorf("duplicate beam id %d", dups[0].ID)
	}

	report := &Report{RunID: uuid.NewString(), Options: opts}
	logger.Infow("starting run", "run", report.RunID, "beams", len(beams), "scale_factor", opts.ScaleFactor)

	var req protocol.Request
	var ready []*prepared
	for _, b := range beams {
		prep, err := prepare(b, opts, report, logger)
		if err != nil {
			return protocol.Request{}, nil, nil, err
		}
		if prep == nil {
			continue
		}
		canonical, err := prep.frame.ForwardCloud(b.Points)
		if err != nil {
			return protocol.Request{}, nil, nil, errors.Wrapf(err, "beam %d", b.ID)
		}
		req.Beams = append(req.Beams, protocol.NewBeamRecord(b.ID, b.Label, pointcloud.Points(canonical)))
		ready = append(ready, prep)
	}
	report.CentroidSummary = summarizeCentroids(report.CentroidDiagnostics)
	if len(ready) == 0 {
		return req, nil, report, ErrNoBeams
	}
	return req, ready, report, nil
}

// prepare resolves the centroid and frame of b. A nil result means the beam was skipped.
func prepare(b *beam.Beam, opts Options, report *Report, logger logging.Logger) (*prepared, error) {
	if err := b.Validate(); err != nil {
		report.note(b.ID, StageInput, err, logger)
		return nil, nil
	}

	var boundary *spatialmath.Brep
	if opts.UseBoundaryCentroid {
		boundary = b.Boundary
	}
	choice, err := beam.ResolveCentroid(b.Points, boundary)
	if err != nil {
		report.note(b.ID, StageInput, err, logger)
		return nil, nil
	}
	diag := choice.Diagnostic(b.ID)
	report.CentroidDiagnostics = append(report.CentroidDiagnostics, diag)
	logger.Debugw("centroid", "beam", b.ID, "used", diag.Used, "boundary", diag.BoundarySucceeded,
		"delta", diag.Delta, "reason", diag.Reason)

	fitted, ok := beam.FitAxis(b.Points)
	if !ok {
		report.note(b.ID, StageFrame, errors.Errorf("axis fit degenerated, using %v", beam.DefaultAxis), logger)
	}
	frame, err := beam.NewFrame(b.ID, choice.Used, fitted, opts.ScaleFactor)
	if err != nil {
		return nil, err
	}
	result := &BeamResult{
		ID:            b.ID,
		Label:         b.Label,
		Centroid:      choice.Used,
		FittedAxis:    frame.Axis,
		AxisDefaulted: !ok,
	}
	if ok {
		if result.FitResidual, err = beam.FitResidual(b.Points, frame.Axis); err != nil {
			return nil, errors.Wrapf(err, "beam %d", b.ID)
		}
	}
	return &prepared{beam: b, frame: frame, result: result}, nil
}

// finish maps pred back to world space and reconstructs the finite axis. Failures are recorded on the beam
// and never abort the run.
func finish(prep *prepared, pred protocol.Prediction, opts Options, report *Report, logger logging.Logger) {
	id := prep.beam.ID
	center := prep.frame.InversePoint(pred.Center)
	if !spatialmath.VectorIsFinite(center) {
		report.note(id, StagePrediction, errors.Errorf("predicted center %v is not finite", pred.Center), logger)
		return
	}
	prep.result.Center = &center
	direction, err := prep.frame.InverseDirection(pred.Direction)
	if err != nil {
		report.note(id, StagePrediction, err, logger)
		return
	}
	prep.result.Direction = &direction

	box, err := spatialmath.NewOrientedBoxFromGeometry(prep.beam.BoxGeometry(), direction)
	if err != nil {
		report.note(id, StageBox, err, logger)
		return
	}
	prep.result.Box = newBoxReport(box)

	line, err := axis.Reconstruct(center, direction, box, opts.Extend)
	if err != nil {
		report.note(id, StageLine, err, logger)
		return
	}
	if line.ExtensionRejected {
		report.note(id, StageLine, errors.Errorf("extension %g would invert the axis, ignored", opts.Extend), logger)
	}
	prep.result.Line = &line
}

// Predict is a convenience for a single beam given as raw points.
func Predict(ctx context.Context, id int, pts []r3.Vector, p predictor.Predictor, opts Options) (*BeamResult, error) {
	pc, err := pointcloud.NewFromPoints(pts)
	if err != nil {
		return nil, err
	}
	report, err := Run(ctx, []*beam.Beam{{ID: id, Label: beam.DefaultLabel(id), Points: pc}}, p, opts,
		logging.NewBlankLogger("pipeline"))
	if err != nil {
		return nil, err
	}
	if len(report.Beams) == 0 {
		return nil, errors.Errorf("no result for beam %d", id)
	}
	return &report.Beams[0], nil
}
