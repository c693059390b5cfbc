//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/shell"
)

// SpyRunner implements shell.Runner, recording invocations instead of running them.
type SpyRunner struct {
	Runs []RunCall

	// Output is returned by every call; Errs is consumed call by call.
	Output []byte
	Errs   []error
	// OnRun, when set, is invoked before returning (e.g. to touch files).
	OnRun func(call RunCall)
}

// RunCall records a single invocation of Run.
type RunCall struct {
	Dir  string
	Name string
	Args []string
}

var _ shell.Runner = (*SpyRunner)(nil)

func (s *SpyRunner) Run(_ context.Context, dir, name string, args ...string) ([]byte, error) {
	call := RunCall{Dir: dir, Name: name, Args: args}
	s.Runs = append(s.Runs, call)
	if s.OnRun != nil {
		s.OnRun(call)
	}

	var err error
	if len(s.Errs) > 0 {
		err, s.Errs = s.Errs[0], s.Errs[1:]
	}
	return s.Output, err
}
