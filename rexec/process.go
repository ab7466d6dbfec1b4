// Package rexec runs external processes to completion and captures what they print.
package rexec

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/larsolavtoppe/Predict-Analytical-Axis/logging"
	"github.com/larsolavtoppe/Predict-Analytical-Axis/utils"
)

// ProcessConfig describes how to run a process.
type ProcessConfig struct {
	Name string   `json:"name"`
	Args []string `json:"args"`
	CWD  string   `json:"cwd"`
	// Env is appended to the environment of the current process.
	Env []string `json:"env,omitempty"`
	// Log copies the captured output to the logger once the process exits.
	Log bool `json:"log"`
}

// Validate ensures all parts of the config are valid.
func (config ProcessConfig) Validate(path string) error {
	if config.Name == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "name")
	}
	return nil
}

// String returns the command line the config runs.
func (config ProcessConfig) String() string {
	return strings.Join(append([]string{config.Name}, config.Args...), " ")
}

// Output is what a finished process printed.
type Output struct {
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// ProcessError is returned when a process could not be launched or exited unsuccessfully. Whatever the
// process printed before failing is kept for diagnosis. ExitCode is -1 when the process never started or
// was terminated by a signal; Started tells the two apart.
type ProcessError struct {
	Name     string
	Started  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	if !e.Started {
		return fmt.Sprintf("failed to launch %q: %v", e.Name, e.Err)
	}
	msg := fmt.Sprintf("%q exited with code %d", e.Name, e.ExitCode)
	if e.ExitCode < 0 {
		msg = fmt.Sprintf("%q was terminated: %v", e.Name, e.Err)
	}
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// RunOnce runs the configured process and waits for it to exit. Both output streams are drained into memory
// while the process runs, so a chatty process can never block on a full pipe. A launch failure or a non-zero
// exit code is returned as a *ProcessError.
func RunOnce(ctx context.Context, config ProcessConfig, logger logging.Logger) (Output, error) {
	if err := config.Validate("process"); err != nil {
		return Output{}, err
	}

	//nolint:gosec
	cmd := exec.CommandContext(ctx, config.Name, config.Args...)
	cmd.Dir = config.CWD
	if len(config.Env) != 0 {
		cmd.Env = append(os.Environ(), config.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debugw("running process", "cmd", config.String(), "cwd", config.CWD)
	start := time.Now()
	runErr := cmd.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String(), Duration: time.Since(start)}

	if config.Log {
		logLines(logger, "stdout", out.Stdout)
		logLines(logger, "stderr", out.Stderr)
	}

	if runErr != nil {
		perr := &ProcessError{Name: config.Name, ExitCode: -1, Stdout: out.Stdout, Stderr: out.Stderr, Err: runErr}
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			perr.Started = true
			perr.ExitCode = exitErr.ExitCode()
		}
		return out, perr
	}
	logger.Debugw("process finished", "cmd", config.Name, "duration", out.Duration)
	return out, nil
}

func logLines(logger logging.Logger, stream, text string) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		logger.Debugw("output", "stream", stream, "line", scanner.Text())
	}
}
