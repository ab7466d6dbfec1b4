// Package cli contains the axispredict command line app.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/predictor"
)

// Flags.
const (
	generalFlagConfig = "config"
	generalFlagDebug  = "debug"

	predictFlagBeams = "beams"
	predictFlagOut   = "out"

	linefitFlagBatchSize = "batch_size"

	requestFlagScaleFactor         = "scale_factor"
	requestFlagUseBoundaryCentroid = "use_boundary_centroid"
	requestFlagClouds              = "clouds"
	requestFlagCloudFormat         = "cloud_format"
)

var app = &cli.App{
	Name:            "axispredict",
	Usage:           "predict the analytical axes of beams sampled as point clouds",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    generalFlagDebug,
			Aliases: []string{"vvv"},
			Usage:   "enable debug logging",
		},
	},
	Commands: []*cli.Command{
		{
			Name:      "predict",
			Usage:     "predict the axes of a beam set with the configured predictor",
			UsageText: "axispredict predict --config <config.json> --beams <beams.json> [--out <report.json>]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     generalFlagConfig,
					Aliases:  []string{"c"},
					Usage:    "load configuration from `FILE`",
					Required: true,
				},
				&cli.StringFlag{
					Name:     predictFlagBeams,
					Usage:    "beam set `FILE`",
					Required: true,
				},
				&cli.StringFlag{
					Name:  predictFlagOut,
					Usage: "write the JSON report to `FILE`",
				},
			},
			Action: PredictAction,
		},
		{
			Name:  "linefit-predictor",
			Usage: "answer a request file with least squares line fits",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     predictor.InputFlag,
					Usage:    "request `FILE`",
					Required: true,
				},
				&cli.StringFlag{
					Name:     predictor.OutputFlag,
					Usage:    "response `FILE`",
					Required: true,
				},
				&cli.StringFlag{
					Name:     predictor.CheckpointFlag,
					Usage:    "model checkpoint `FILE`, accepted for compatibility",
					Required: true,
				},
				&cli.IntFlag{
					Name:  linefitFlagBatchSize,
					Usage: "beams predicted between cancellation checks",
					Value: predictor.DefaultBatchSize,
				},
			},
			Action: LineFitPredictorAction,
		},
		{
			Name:   "config-schema",
			Usage:  "print the JSON schema of the config file",
			Action: ConfigSchemaAction,
		},
		{
			Name:  "request",
			Usage: "write the canonical request for a beam set without predicting",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     predictFlagBeams,
					Usage:    "beam set `FILE`",
					Required: true,
				},
				&cli.StringFlag{
					Name:     predictor.OutputFlag,
					Usage:    "request `FILE`",
					Required: true,
				},
				&cli.Float64Flag{
					Name:  requestFlagScaleFactor,
					Usage: "stretch beams along their fitted axis by this factor",
					Value: 1,
				},
				&cli.BoolFlag{
					Name:  requestFlagUseBoundaryCentroid,
					Usage: "anchor frames at boundary centroids when available",
					Value: true,
				},
				&cli.StringFlag{
					Name:  requestFlagClouds,
					Usage: "also write each canonical beam cloud into `DIR`",
				},
				&cli.StringFlag{
					Name:  requestFlagCloudFormat,
					Usage: "format of the written clouds, pcd or las",
					Value: "pcd",
				},
			},
			Action: RequestAction,
		},
	},
}

// NewApp returns a new app with the CLI API, Writer set to out, and ErrWriter
// set to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	app.Writer = out
	app.ErrWriter = errOut
	return app
}
