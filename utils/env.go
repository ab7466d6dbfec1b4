package utils

import (
	"os"
	"strings"
)

const (
	// PredictorExecutableEnvVar overrides the predictor executable from the config file.
	PredictorExecutableEnvVar = "AXIS_PREDICTOR_EXECUTABLE"

	// PredictorScriptEnvVar overrides the predictor script from the config file.
	PredictorScriptEnvVar = "AXIS_PREDICTOR_SCRIPT"

	// PredictorCheckpointEnvVar overrides the model checkpoint from the config file.
	PredictorCheckpointEnvVar = "AXIS_PREDICTOR_CHECKPOINT"

	// WorkDirEnvVar overrides where request and response files are written.
	WorkDirEnvVar = "AXIS_WORK_DIR"
)

// GetenvString returns the trimmed value of the environment variable, or def if it is unset or blank.
func GetenvString(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}
