package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/logging"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/testutils"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/utils"
)

func checkpointFile(t *testing.T) string {
	t.Helper()
	return testutils.WriteFile(t, "model.pt", "weights")
}

func TestRead(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	checkpoint := checkpointFile(t)
	workDir := t.TempDir()
	path := testutils.WriteFile(t, "axis.json", `{
		"predictor": {
			"executable": "`+os.Args[0]+`",
			"checkpoint": "`+checkpoint+`",
			"work_dir": "`+workDir+`",
			"args": ["-u"],
			"gpu": true
		},
		"scale_factor": 2.5,
		"extend": -0.1,
		"log": {"path": "`+filepath.Join(workDir, "axis.log")+`", "max_backups": 3},
		"colour": "blue"
	}`)

	cfg, err := Read(path, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.ConfigFilePath, test.ShouldEqual, path)
	test.That(t, cfg.Predictor.Executable, test.ShouldEqual, os.Args[0])
	test.That(t, cfg.Predictor.Checkpoint, test.ShouldEqual, checkpoint)
	test.That(t, cfg.Predictor.Args, test.ShouldResemble, []string{"-u"})
	test.That(t, cfg.Log.MaxBackups, test.ShouldEqual, 3)

	opts := cfg.Options()
	test.That(t, opts.ScaleFactor, test.ShouldEqual, 2.5)
	test.That(t, opts.Extend, test.ShouldEqual, -0.1)
	// unset keys keep their defaults
	test.That(t, opts.UseBoundaryCentroid, test.ShouldBeTrue)

	unused := logs.FilterMessage("unused config key")
	test.That(t, unused.Len(), test.ShouldEqual, 2)
	keys := []interface{}{unused.All()[0].ContextMap()["key"], unused.All()[1].ContextMap()["key"]}
	test.That(t, keys, test.ShouldContain, "colour")
	test.That(t, keys, test.ShouldContain, "predictor.gpu")
}

func TestReadErrors(t *testing.T) {
	logger := logging.NewTestLogger(t)

	_, err := Read(filepath.Join(t.TempDir(), "missing.json"), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot read config file")

	_, err = Read(testutils.WriteFile(t, "bad.json", "{"), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot parse config file")

	_, err = Read(testutils.WriteFile(t, "typed.json", `{"scale_factor": "big"}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot decode config file")

	_, err = Read(testutils.WriteFile(t, "empty.json", `{}`), logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"executable" is required`)
}

func TestEnvOverrides(t *testing.T) {
	checkpoint := checkpointFile(t)
	t.Setenv(utils.PredictorExecutableEnvVar, os.Args[0])
	t.Setenv(utils.PredictorCheckpointEnvVar, " "+checkpoint+" ")
	t.Setenv(utils.WorkDirEnvVar, "")

	path := testutils.WriteFile(t, "axis.json", `{"predictor": {"executable": "python3", "work_dir": "/tmp"}}`)
	cfg, err := Read(path, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Predictor.Executable, test.ShouldEqual, os.Args[0])
	test.That(t, cfg.Predictor.Checkpoint, test.ShouldEqual, checkpoint)
	test.That(t, cfg.Predictor.WorkDir, test.ShouldEqual, "/tmp")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Predictor.Executable = os.Args[0]
		cfg.Predictor.Checkpoint = checkpointFile(t)
		return cfg
	}
	test.That(t, valid().Validate(), test.ShouldBeNil)

	cfg := valid()
	cfg.ScaleFactor = 0
	err := cfg.Validate()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "scale_factor 0 cannot be inverted")

	cfg = valid()
	cfg.Log = &logging.FileConfig{}
	test.That(t, cfg.Validate(), test.ShouldBeError, `config.log: "path" is required`)

	cfg = valid()
	cfg.ConfigFilePath = "axis.json"
	cfg.Predictor.Checkpoint = ""
	test.That(t, cfg.Validate(), test.ShouldBeError, `axis.json.predictor: "checkpoint" is required`)
}

func TestSchema(t *testing.T) {
	out, err := json.Marshal(Schema())
	test.That(t, err, test.ShouldBeNil)
	for _, key := range []string{`"scale_factor"`, `"use_boundary_centroid"`, `"checkpoint"`, `"max_size_mb"`} {
		test.That(t, string(out), test.ShouldContainSubstring, key)
	}
	test.That(t, string(out), test.ShouldNotContainSubstring, "ConfigFilePath")
}
