// Package config defines the configuration of an axis prediction run.
package config

import (
	"math"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/logging"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/pipeline"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/predictor"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/utils"
)

// A Config describes how to run a prediction.
type Config struct {
	ConfigFilePath string `json:"-"`

	Predictor predictor.Config `json:"predictor"`

	ScaleFactor         float64 `json:"scale_factor"`
	Extend              float64 `json:"extend"`
	UseBoundaryCentroid bool    `json:"use_boundary_centroid"`

	// Log additionally writes every log line to a rotated file.
	Log   *logging.FileConfig `json:"log,omitempty"`
	Debug bool                `json:"debug,omitempty"`
}

// Default returns a config with every optional field at its default.
func Default() *Config {
	opts := pipeline.DefaultOptions()
	return &Config{
		ScaleFactor:         opts.ScaleFactor,
		Extend:              opts.Extend,
		UseBoundaryCentroid: opts.UseBoundaryCentroid,
	}
}

// Validate returns an error when the config cannot be run. Nothing is written before a config validates.
func (c *Config) Validate() error {
	path := "config"
	if c.ConfigFilePath != "" {
		path = c.ConfigFilePath
	}
	if c.ScaleFactor == 0 || math.IsInf(c.ScaleFactor, 0) {
		return utils.NewConfigValidationError(path,
			errors.Errorf("scale_factor %g cannot be inverted", c.ScaleFactor))
	}
	if !utils.IsFinite(c.Extend) {
		return utils.NewConfigValidationError(path, errors.Errorf("extend %g is not finite", c.Extend))
	}
	if c.Log != nil && c.Log.Path == "" {
		return utils.NewConfigValidationFieldRequiredError(path+".log", "path")
	}
	return c.Predictor.Validate(path + ".predictor")
}

// Options returns the pipeline options of the config.
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		ScaleFactor:         c.ScaleFactor,
		Extend:              c.Extend,
		UseBoundaryCentroid: c.UseBoundaryCentroid,
	}
}

// Schema describes the config file as a JSON schema.
func Schema() *jsonschema.Schema {
	return jsonschema.Reflect(&Config{})
}

// NewLogger returns the logger the config asks for.
func (c *Config) NewLogger(name string) logging.Logger {
	var logger logging.Logger
	if c.Log != nil {
		logger = logging.NewFileLogger(name, *c.Log)
	} else {
		logger = logging.NewLogger(name)
	}
	if c.Debug {
		logger.SetLevel(zapcore.DebugLevel)
	}
	return logger
}
