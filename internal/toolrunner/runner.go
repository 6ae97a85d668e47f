package toolrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/devautomator-labs/devautomator/internal/logger"
)

// Output captures the result of one external tool invocation.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// TimeoutError reports a subprocess that was terminated after
// exceeding the caller-level timeout.
type TimeoutError struct {
	Tool    string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Tool, e.Timeout)
}

// Runner executes external tools with uniform success/failure
// reporting. Calls block for the duration of the subprocess; a
// configured Timeout terminates the subprocess and surfaces
// *TimeoutError.
type Runner struct {
	// Dir is the working directory for invocations. A project .env
	// file there, if any, is loaded into the subprocess environment.
	Dir string
	// Timeout bounds each invocation. Zero means no bound.
	Timeout time.Duration
	// Stdout and Stderr can be set for testing; default to os.Stdout
	// and os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes the named tool. A non-zero tool exit is not an error:
// the caller reads Output.ExitCode and Output.Stderr. The error return
// covers the tool being absent, the timeout firing, and start failures.
func (r *Runner) Run(ctx context.Context, name string, args ...string) (*Output, error) {
	bin, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("command %q not found, please ensure it is installed: %w", name, err)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = r.Dir
	cmd.Env = buildEnv(r.Dir)

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	logger.L().Debug("running external tool",
		zap.String("tool", name),
		zap.Strings("args", args),
		zap.String("dir", r.Dir))

	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if ctx.Err() == context.DeadlineExceeded {
		return output, &TimeoutError{Tool: name, Timeout: r.Timeout}
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return output, fmt.Errorf("executing %s: %w", name, err)
	}

	return output, nil
}

// Capture runs the tool with output captured only, not streamed. Used
// by metrics collection where the raw output is parsed, not shown.
func (r *Runner) Capture(ctx context.Context, name string, args ...string) (*Output, error) {
	quiet := *r
	quiet.Stdout = io.Discard
	quiet.Stderr = io.Discard
	return quiet.Run(ctx, name, args...)
}

// FailureDiagnostic formats a non-zero tool exit for user display,
// attaching the tool's own stderr rather than swallowing it.
func FailureDiagnostic(tool string, out *Output) error {
	diag := strings.TrimSpace(out.Stderr)
	if diag == "" {
		diag = strings.TrimSpace(out.Stdout)
	}
	if diag == "" {
		return fmt.Errorf("%s exited with code %d", tool, out.ExitCode)
	}
	return fmt.Errorf("%s exited with code %d:\n%s", tool, out.ExitCode, diag)
}
