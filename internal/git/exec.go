package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Runner invokes a single git subcommand in a working copy. Implementations
// return trimmed stdout on success and a *CommandError on non-zero exit.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

// CommandError is returned when a git invocation exits non-zero.
type CommandError struct {
	Args   []string
	Dir    string
	Stdout string
	Stderr string
	Err    error
}

// Diagnostic is the most useful text the failed process produced.
func (e *CommandError) Diagnostic() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(e.Stdout); msg != "" {
		return msg
	}
	return "unknown error"
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("git command failed: git %s\n  in %s\n  %s", strings.Join(e.Args, " "), e.Dir, e.Diagnostic())
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// IsCommandError reports whether err wraps a *CommandError.
func IsCommandError(err error) bool {
	var cmdErr *CommandError
	return errors.As(err, &cmdErr)
}

// ExecRunner runs the git binary found on PATH.
type ExecRunner struct {
	// Binary overrides the executable name; empty means "git".
	Binary string
}

func (r ExecRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	bin := r.Binary
	if bin == "" {
		bin = "git"
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &CommandError{
			Args:   args,
			Dir:    dir,
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return strings.TrimSpace(stdout.String()), nil
}
