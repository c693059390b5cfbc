package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
)

// Runner executes an external program and returns its standard output.
// A failed run yields an *entities.CommandError.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs programs with os/exec, inheriting the process environment.
type ExecRunner struct{}

// NewExecRunner creates a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args in dir and waits for it to finish.
func (it *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debugf("Running %s %s in %s", name, strings.Join(args, " "), dir)

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return stdout.Bytes(), &entities.CommandError{
			Command:  append([]string{name}, args...),
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}

	return stdout.Bytes(), nil
}
