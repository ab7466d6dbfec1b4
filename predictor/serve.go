package predictor

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/protocol"
)

// ServeFiles answers a request file with a response file using p. This is the predictor side of the
// contract Subprocess relies on.
func ServeFiles(ctx context.Context, p Predictor, inputPath, outputPath string) (res *protocol.Result, err error) {
	//nolint:gosec
	in, err := os.Open(inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "opening input")
	}
	req, err := protocol.ReadRequest(in)
	err = multierr.Combine(err, in.Close())
	if err != nil {
		return nil, errors.Wrapf(err, "reading %q", inputPath)
	}

	res, err = p.Predict(ctx, req)
	if err != nil {
		return nil, err
	}

	//nolint:gosec
	out, err := os.Create(outputPath)
	if err != nil {
		return nil, errors.Wrap(err, "creating output")
	}
	defer func() {
		err = multierr.Combine(err, out.Close())
	}()
	if err := protocol.WriteResult(out, res); err != nil {
		return nil, errors.Wrapf(err, "writing %q", outputPath)
	}
	return res, nil
}
