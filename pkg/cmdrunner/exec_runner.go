package cmdrunner

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/core-tools/hsu-monit-go/pkg/errors"
	"github.com/core-tools/hsu-monit-go/pkg/logging"

	"github.com/mattn/go-shellwords"
)

// Options configures how commands are executed
type Options struct {
	// Timeout bounds a single command, zero means no limit
	Timeout          time.Duration
	WorkingDirectory string
	// Environment entries (KEY=VALUE) appended to the inherited environment
	Environment []string
}

// Result is the outcome of a command that was started successfully
type Result struct {
	Stdout     string
	ExitStatus int
}

type ExecRunner struct {
	options  Options
	logger   logging.Logger
	lookPath func(file string) (string, error)
}

func NewExecRunner(options Options, logger logging.Logger) *ExecRunner {
	return &ExecRunner{
		options:  options,
		logger:   logger,
		lookPath: exec.LookPath,
	}
}

// Run executes the command line and returns its captured stdout.
// A non-zero exit status is not an error.
func (r *ExecRunner) Run(ctx context.Context, cmd string) (string, error) {
	result, err := r.Execute(ctx, cmd)
	if err != nil {
		return "", err
	}
	return result.Stdout, nil
}

// RetCode executes the command line and returns only its exit status
func (r *ExecRunner) RetCode(ctx context.Context, cmd string) (int, error) {
	result, err := r.Execute(ctx, cmd)
	if err != nil {
		return -1, err
	}
	return result.ExitStatus, nil
}

// Which resolves a binary name against PATH
func (r *ExecRunner) Which(name string) (string, bool) {
	path, err := r.lookPath(name)
	if err != nil {
		r.logger.Debugf("Binary %s not found: %v", name, err)
		return "", false
	}
	return path, true
}

// Execute splits the command line into words and runs it without a shell.
// Errors are returned only when the command could not be run to completion.
func (r *ExecRunner) Execute(ctx context.Context, cmdString string) (Result, error) {
	if ctx == nil {
		return Result{}, errors.NewValidationError("context cannot be nil", nil)
	}

	args, err := shellwords.Parse(cmdString)
	if err != nil {
		return Result{}, errors.NewValidationError("failed to parse command line", err).
			WithContext("command", cmdString)
	}
	if len(args) == 0 {
		return Result{}, errors.NewValidationError("command line is empty", nil).
			WithContext("command", cmdString)
	}

	if r.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.options.Timeout)
		defer cancel()
	}

	r.logger.Debugf("Running command: %s %v", args[0], args[1:])

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	stdout := &bytes.Buffer{}
	cmd.Stdout = stdout
	if r.options.WorkingDirectory != "" {
		cmd.Dir = r.options.WorkingDirectory
	}
	if len(r.options.Environment) > 0 {
		cmd.Env = append(os.Environ(), r.options.Environment...)
	}

	startTime := time.Now()
	err = cmd.Run()
	elapsed := time.Since(startTime)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, classifyContextError(ctxErr, cmdString, elapsed)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			r.logger.Debugf("Command %s exited with status %d after %v, stdout %d bytes",
				args[0], exitErr.ExitCode(), elapsed, stdout.Len())
			return Result{Stdout: stdout.String(), ExitStatus: exitErr.ExitCode()}, nil
		}
		return Result{}, errors.NewProcessError("failed to run command", err).
			WithContext("command", cmdString)
	}

	r.logger.Debugf("Command %s completed after %v, stdout %d bytes", args[0], elapsed, stdout.Len())
	return Result{Stdout: stdout.String(), ExitStatus: 0}, nil
}

func classifyContextError(ctxErr error, cmdString string, elapsed time.Duration) error {
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		return errors.NewTimeoutError("command timed out", ctxErr).
			WithContext("command", cmdString).
			WithContext("elapsed", elapsed.String())
	}
	return errors.NewCancelledError("command cancelled", ctxErr).
		WithContext("command", cmdString)
}

// FormatCommand joins words into a command line, quoting words that would not
// survive splitting unchanged
func FormatCommand(words ...string) string {
	parts := make([]string, 0, len(words))
	for _, word := range words {
		if word == "" || strings.ContainsAny(word, " \t\n'\"\\$`|&;<>()*?[]#~") {
			parts = append(parts, fmt.Sprintf("'%s'", strings.ReplaceAll(word, "'", `'\''`)))
			continue
		}
		parts = append(parts, word)
	}
	return strings.Join(parts, " ")
}
