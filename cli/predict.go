package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/beam"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/config"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/logging"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/pipeline"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/pointcloud"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/predictor"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/protocol"
)

func newLogger(c *cli.Context) logging.Logger {
	if c.Bool(generalFlagDebug) {
		return logging.NewDebugLogger("axispredict")
	}
	return logging.NewLogger("axispredict")
}

// PredictAction runs the pipeline over a beam set with the configured subprocess predictor.
func PredictAction(c *cli.Context) error {
	cfg, err := config.Read(c.String(generalFlagConfig), newLogger(c))
	if err != nil {
		return err
	}
	if c.Bool(generalFlagDebug) {
		cfg.Debug = true
	}
	logger := cfg.NewLogger("axispredict")
	//nolint:errcheck
	defer logger.Sync()

	beams, err := beam.ReadSet(c.String(predictFlagBeams), logger)
	if err != nil {
		return err
	}
	sp, err := predictor.NewSubprocess(cfg.Predictor, logger.Sublogger("predictor"))
	if err != nil {
		return err
	}
	report, err := pipeline.Run(c.Context, beams, sp, cfg.Options(), logger.Sublogger("pipeline"))
	if err != nil {
		if stdout := sp.LastTranscript().Stdout; stdout != "" {
			printf(c.App.ErrWriter, "predictor output:\n%s", stdout)
		}
		return err
	}

	if out := c.String(predictFlagOut); out != "" {
		if err := writeReport(out, report); err != nil {
			return err
		}
		logger.Infow("wrote report", "path", out)
	}
	printf(c.App.Writer, "%s\n", report.Table())
	for _, note := range report.Notes {
		printf(c.App.Writer, "beam %d (%s): %s\n", note.BeamID, note.Stage, note.Message)
	}
	return nil
}

// LineFitPredictorAction answers a request file the way the trained predictor would.
func LineFitPredictorAction(c *cli.Context) error {
	logger := newLogger(c)
	lf := &predictor.LineFit{BatchSize: c.Int(linefitFlagBatchSize), Logger: logger.Sublogger("linefit")}
	out := c.String(predictor.OutputFlag)
	res, err := predictor.ServeFiles(c.Context, lf, c.String(predictor.InputFlag), out)
	if err != nil {
		return err
	}
	printf(c.App.Writer, "[OK] wrote %d results to: %s\n", res.Len(), out)
	return nil
}

// RequestAction writes the request a predictor would receive for a beam set.
func RequestAction(c *cli.Context) error {
	logger := newLogger(c)
	beams, err := beam.ReadSet(c.String(predictFlagBeams), logger)
	if err != nil {
		return err
	}
	opts := pipeline.DefaultOptions()
	opts.ScaleFactor = c.Float64(requestFlagScaleFactor)
	opts.UseBoundaryCentroid = c.Bool(requestFlagUseBoundaryCentroid)
	req, report, err := pipeline.BuildRequest(beams, opts, logger)
	if err != nil {
		return err
	}
	out := c.String(predictor.OutputFlag)
	if err := writeRequest(out, req); err != nil {
		return err
	}
	printf(c.App.Writer, "wrote %d beams to %s (%d notes)\n", len(req.Beams), out, len(report.Notes))

	if dir := c.String(requestFlagClouds); dir != "" {
		if err := writeClouds(dir, c.String(requestFlagCloudFormat), req); err != nil {
			return err
		}
		printf(c.App.Writer, "wrote %d clouds to %s\n", len(req.Beams), dir)
	}
	return nil
}

func writeClouds(dir, format string, req protocol.Request) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.Wrap(err, "cannot create cloud directory")
	}
	for _, b := range req.Beams {
		pc, err := pointcloud.NewFromPoints(b.Points)
		if err != nil {
			return errors.Wrapf(err, "beam %d", b.ID)
		}
		fn := filepath.Join(dir, fmt.Sprintf("beam_%d.%s", b.ID, format))
		if err := pointcloud.WriteToFile(pc, fn); err != nil {
			return errors.Wrapf(err, "beam %d", b.ID)
		}
	}
	return nil
}

// ConfigSchemaAction prints the JSON schema of the config file.
func ConfigSchemaAction(c *cli.Context) error {
	out, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot marshal config schema")
	}
	printf(c.App.Writer, "%s\n", out)
	return nil
}

func writeReport(path string, report *pipeline.Report) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot create report")
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return report.WriteJSON(f)
}

func writeRequest(path string, req protocol.Request) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "cannot create request")
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return protocol.WriteRequest(f, req)
}

func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format, a...)
}
