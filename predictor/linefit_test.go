package predictor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/logging"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/protocol"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/spatialmath"
)

func TestLineFitPredict(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	lf := &LineFit{BatchSize: 1, Logger: logger}

	req := straightRequest()
	// offset along the axis, the reported center is still the point closest to the origin
	req.Beams = append(req.Beams,
		protocol.NewBeamRecord(7, "", []r3.Vector{{X: 5, Y: 1, Z: 5}, {X: 5, Y: 1, Z: 6}, {X: 5, Y: 1, Z: 9}}),
		protocol.NewBeamRecord(8, "", []r3.Vector{{X: 1}}),
	)
	res, err := lf.Predict(context.Background(), req)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Len(), test.ShouldEqual, 3)

	p, ok := res.Get(7)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(p.Center, r3.Vector{X: 5, Y: 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(p.Direction, r3.Vector{Z: 1}, 1e-9), test.ShouldBeTrue)
	test.That(t, p.Center.Dot(p.Direction), test.ShouldAlmostEqual, 0, 1e-9)

	_, ok = res.Get(8)
	test.That(t, ok, test.ShouldBeFalse)
	test.That(t, logs.FilterMessage("cannot predict beam").Len(), test.ShouldEqual, 1)

	_, err = lf.Predict(context.Background(), protocol.Request{})
	test.That(t, err, test.ShouldBeError, ErrEmptyRequest)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = lf.Predict(ctx, req)
	test.That(t, err, test.ShouldBeError, context.Canceled)
}

func TestServeFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "request.txt")
	output := filepath.Join(dir, "response.txt")
	test.That(t, os.WriteFile(input, []byte("beam 3 {3}\n0 0 1\n0 0 2\n0 0 3\nendbeam\n"), 0o600), test.ShouldBeNil)

	res, err := ServeFiles(context.Background(), &LineFit{}, input, output)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, res.Len(), test.ShouldEqual, 1)

	written, err := os.ReadFile(output)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(written), test.ShouldEqual,
		"result 3\nc 0.000000 0.000000 0.000000\nv 0.000000 0.000000 1.000000\nt 0.000000 0.000000\nendresult\n")

	test.That(t, os.WriteFile(input, []byte("\n"), 0o600), test.ShouldBeNil)
	_, err = ServeFiles(context.Background(), &LineFit{}, input, output)
	test.That(t, err, test.ShouldBeError, ErrEmptyRequest)

	_, err = ServeFiles(context.Background(), &LineFit{}, filepath.Join(dir, "missing.txt"), output)
	test.That(t, err, test.ShouldNotBeNil)
}
