package predictor

import (
	"context"

	"github.com/pkg/errors"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/logging"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/pointcloud"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/protocol"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

// DefaultBatchSize is the number of beams a LineFit predicts between cancellation checks.
const DefaultBatchSize = 32

// LineFit predicts each axis as the least squares line through the beam's points. The center is reported
// as the point on the line closest to the canonical origin, the same convention the trained model follows.
type LineFit struct {
	BatchSize int
	Logger    logging.Logger
}

// Predict implements Predictor.
func (lf *LineFit) Predict(ctx context.Context, req protocol.Request) (*protocol.Result, error) {
	if len(req.Beams) == 0 {
		return nil, ErrEmptyRequest
	}
	batchSize := lf.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	logger := lf.Logger
	if logger == nil {
		logger = logging.NewBlankLogger("linefit")
	}

	res := protocol.NewResult()
	for start := 0; start < len(req.Beams); start += batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := start + batchSize
		if end > len(req.Beams) {
			end = len(req.Beams)
		}
		for _, b := range req.Beams[start:end] {
			p, err := fitBeam(b)
			if err != nil {
				logger.Warnw("cannot predict beam", "beam", b.ID, "error", err)
				continue
			}
			res.Put(p)
		}
	}
	return res, nil
}

func fitBeam(b protocol.BeamRecord) (protocol.Prediction, error) {
	pc, err := pointcloud.NewFromPoints(b.Points)
	if err != nil {
		return protocol.Prediction{}, err
	}
	line, err := pointcloud.FitLine(pc)
	if err != nil {
		return protocol.Prediction{}, err
	}
	v, ok := spatialmath.Unitize(line.Direction)
	if !ok {
		return protocol.Prediction{}, errors.New("degenerate direction")
	}
	c := line.Point.Sub(v.Mul(line.Point.Dot(v)))
	return protocol.Prediction{ID: b.ID, Center: c, Direction: v}, nil
}
