package config

import (
	"encoding/json"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/logging"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/utils"
)

// Read reads a config from the given JSON file, applies environment overrides and validates it.
func Read(path string, logger logging.Logger) (*Config, error) {
	//nolint:gosec
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read config file")
	}
	var attrs map[string]interface{}
	if err := json.Unmarshal(buf, &attrs); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config file %q", path)
	}
	cfg, err := FromMap(attrs, logger)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot decode config file %q", path)
	}
	cfg.ConfigFilePath = path
	ApplyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromMap decodes attrs over the default config. Keys that match no field are logged and otherwise ignored.
func FromMap(attrs map[string]interface{}, logger logging.Logger) (*Config, error) {
	cfg := Default()
	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:  "json",
		Result:   cfg,
		Metadata: &md,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attrs); err != nil {
		return nil, err
	}
	for _, key := range md.Unused {
		logger.Warnw("unused config key", "key", key)
	}
	return cfg, nil
}

// ApplyEnvOverrides replaces predictor settings with any that are set in the environment.
func ApplyEnvOverrides(cfg *Config) {
	cfg.Predictor.Executable = utils.GetenvString(utils.PredictorExecutableEnvVar, cfg.Predictor.Executable)
	cfg.Predictor.Script = utils.GetenvString(utils.PredictorScriptEnvVar, cfg.Predictor.Script)
	cfg.Predictor.Checkpoint = utils.GetenvString(utils.PredictorCheckpointEnvVar, cfg.Predictor.Checkpoint)
	cfg.Predictor.WorkDir = utils.GetenvString(utils.WorkDirEnvVar, cfg.Predictor.WorkDir)
}
