package predictor

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/logging"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/protocol"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/rexec"
)

// Protocol arguments understood by every predictor executable.
const (
	InputFlag      = "input"
	OutputFlag     = "output"
	CheckpointFlag = "checkpoint"
)

// Transcript is what one predictor invocation was given and printed.
type Transcript struct {
	Command      string `json:"command"`
	RequestPath  string `json:"request_path"`
	ResponsePath string `json:"response_path"`
	Stdout       string `json:"stdout"`
	Stderr       string `json:"stderr"`
}

// Subprocess runs an external predictor once per request. Requests and responses are exchanged through
// files in the work directory named after a per-call id; they are left in place afterwards.
type Subprocess struct {
	config Config
	logger logging.Logger

	mu   sync.Mutex
	last Transcript
}

// NewSubprocess validates config and returns a predictor that runs it.
func NewSubprocess(config Config, logger logging.Logger) (*Subprocess, error) {
	if err := config.Validate("predictor"); err != nil {
		return nil, err
	}
	return &Subprocess{config: config, logger: logger}, nil
}

// Predict writes the request, runs the predictor to completion and parses its response. A predictor that
// cannot be launched, exits unsuccessfully or leaves no response fails the call; its output is kept in
// the returned error and in LastTranscript.
func (s *Subprocess) Predict(ctx context.Context, req protocol.Request) (*protocol.Result, error) {
	id := uuid.NewString()
	workDir := s.config.workDir()
	requestPath := filepath.Join(workDir, "axis_request_"+id+".txt")
	responsePath := filepath.Join(workDir, "axis_response_"+id+".txt")

	if err := writeRequestFile(requestPath, req); err != nil {
		return nil, err
	}

	args := make([]string, 0, len(s.config.Args)+7)
	if s.config.Script != "" {
		args = append(args, s.config.Script)
	}
	args = append(args, s.config.Args...)
	args = append(args,
		"--"+InputFlag, requestPath,
		"--"+OutputFlag, responsePath,
		"--"+CheckpointFlag, s.config.Checkpoint,
	)
	procConfig := rexec.ProcessConfig{Name: s.config.Executable, Args: args, Log: s.config.Log}

	s.logger.Infow("running predictor", "beams", len(req.Beams), "run", id)
	out, runErr := rexec.RunOnce(ctx, procConfig, s.logger)
	s.setLast(Transcript{
		Command:      procConfig.String(),
		RequestPath:  requestPath,
		ResponsePath: responsePath,
		Stdout:       out.Stdout,
		Stderr:       out.Stderr,
	})
	if runErr != nil {
		return nil, errors.Wrap(runErr, "predictor failed")
	}

	res, err := readResultFile(responsePath)
	if err != nil {
		return nil, errors.Wrapf(err, "predictor response unreadable (stderr: %q)", out.Stderr)
	}
	s.logger.Infow("predictor finished", "results", res.Len(), "duration", out.Duration)
	return res, nil
}

// LastTranscript returns the transcript of the most recent invocation.
func (s *Subprocess) LastTranscript() Transcript {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Subprocess) setLast(t Transcript) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = t
}

func writeRequestFile(path string, req protocol.Request) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating request file")
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return errors.Wrap(protocol.WriteRequest(f, req), "writing request file")
}

func readResultFile(path string) (res *protocol.Result, err error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
	}()
	return protocol.ReadResult(f)
}
