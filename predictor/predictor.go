// Package predictor predicts beam axes from canonical point clouds, either by running an external trained
// model or with an in-process line fit.
package predictor

import (
	"context"
	"os"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/protocol"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/utils"
)

// A Predictor predicts the axis of every beam in a request. Beams it cannot predict are left out of the
// result rather than failing the whole batch.
type Predictor interface {
	Predict(ctx context.Context, req protocol.Request) (*protocol.Result, error)
}

// ErrEmptyRequest is returned when a request holds no beams.
var ErrEmptyRequest = errors.New("no beams found in input file")

// Config configures a Subprocess predictor.
type Config struct {
	// Executable is the program to launch, either a path or a name looked up on PATH.
	Executable string `json:"executable"`
	// Script is an optional script passed as the first argument, for interpreters.
	Script string `json:"script,omitempty"`
	// Checkpoint is the trained model the predictor loads.
	Checkpoint string `json:"checkpoint"`
	// WorkDir receives the request and response files. Defaults to the system temp dir.
	WorkDir string `json:"work_dir,omitempty"`
	// Args are passed after the script and before the protocol arguments.
	Args []string `json:"args,omitempty"`
	// Log copies the predictor's output to the debug log.
	Log bool `json:"log,omitempty"`
}

// Validate ensures all parts of the config are valid. Paths are checked here so that a bad config fails
// before any file is written.
func (config *Config) Validate(path string) error {
	if config.Executable == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "executable")
	}
	if _, err := exec.LookPath(config.Executable); err != nil {
		return utils.NewConfigValidationError(path, errors.Wrap(err, "executable"))
	}
	if config.Script != "" {
		if err := utils.CheckRegularFile(config.Script); err != nil {
			return utils.NewConfigValidationError(path, errors.Wrap(err, "script"))
		}
	}
	if config.Checkpoint == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "checkpoint")
	}
	if err := utils.CheckRegularFile(config.Checkpoint); err != nil {
		return utils.NewConfigValidationError(path, errors.Wrap(err, "checkpoint"))
	}
	if config.WorkDir != "" {
		if err := utils.CheckDir(config.WorkDir); err != nil {
			return utils.NewConfigValidationError(path, errors.Wrap(err, "work_dir"))
		}
	}
	return nil
}

func (config *Config) workDir() string {
	if config.WorkDir != "" {
		return config.WorkDir
	}
	return os.TempDir()
}
