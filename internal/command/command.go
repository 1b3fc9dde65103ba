package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

var ErrCommand = errors.New("command failed to start")

// Describes a single external process invocation.
type Command struct {
	Program string            // Executable name or path.
	Args    []string          // Arguments, not including the program name.
	Dir     string            // Working directory. Empty means the caller's.
	Env     map[string]string // Extra environment variables, appended to the inherited set.
}

// Output of a completed external process.
//
// A non-zero exit code is not an error at this layer; the caller decides
// how to handle it.
type Result struct {
	ExitCode int    // Exit code of the process.
	Stdout   string // Captured standard output.
	Stderr   string // Captured standard error.
}

// Runs external processes.
//
// The single-method interface keeps every subprocess consumer testable with
// an in-memory fake; the process-backed implementation is [Local].
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// Runs commands as local subprocesses.
type Local struct{}

// Runs the command, blocking until it exits.
//
// Stdout and stderr are captured in full. The context cancels the process
// when it fires. Failure to start the process (missing executable, bad
// working directory) is an error; a process that starts and exits non-zero
// is reported through Result.ExitCode instead.
func (Local) Run(ctx context.Context, cmd Command) (*Result, error) {
	proc := exec.CommandContext(ctx, cmd.Program, cmd.Args...)
	proc.Dir = cmd.Dir

	if len(cmd.Env) > 0 {
		proc.Env = proc.Environ()
		for k, v := range cmd.Env {
			proc.Env = append(proc.Env, k+"="+v)
		}
	}

	var stdout, stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	slog.Debug("exec", "program", cmd.Program, "args", strings.Join(cmd.Args, " "), "dir", cmd.Dir)

	err := proc.Run()

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("%w: %s: %w", ErrCommand, cmd.Program, err)
	}

	return &Result{
		ExitCode: proc.ProcessState.ExitCode(),
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
	}, nil
}

// Returns the trailing lines of captured stderr, for error reporting.
//
// External tools bury the interesting diagnostics at the end of long
// output; the tail keeps wrapped errors readable.
func (r *Result) StderrTail(lines int) string {
	all := strings.Split(strings.TrimRight(r.Stderr, "\n"), "\n")
	if len(all) > lines {
		all = all[len(all)-lines:]
	}
	return strings.Join(all, "\n")
}
