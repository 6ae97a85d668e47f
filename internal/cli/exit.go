package cli

import (
	"errors"
	"fmt"
)

// Process exit codes. Hard failures (unknown template, missing
// parameter, path escape, corrupt manifest, tool failures) exit 1;
// a run that only skipped conflicting paths exits 2 so scripts can
// distinguish "needs attention" from "broken".
const (
	exitFailure   = 1
	exitAttention = 2
)

// attentionError signals that one or more paths were skipped as
// UserModified or Conflict and require manual resolution.
type attentionError struct {
	count int
}

func (e *attentionError) Error() string {
	return fmt.Sprintf("%d path(s) require manual attention (re-run with --force to overwrite)", e.count)
}

// ExitCode maps an Execute error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var att *attentionError
	if errors.As(err, &att) {
		return exitAttention
	}
	return exitFailure
}
