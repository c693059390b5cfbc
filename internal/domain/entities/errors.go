package entities

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedTask is returned when the task description is missing or ill-shaped.
	ErrMalformedTask = errors.New("malformed update task")

	// ErrInvalidEnvironment is returned when the job environment lacks a job ID or base revision.
	ErrInvalidEnvironment = errors.New("invalid job environment")

	// ErrBranchCollision is returned when two units of one job would share a branch.
	ErrBranchCollision = errors.New("branch name collision")

	// ErrAdapter wraps failures raised by an updater or inspector.
	ErrAdapter = errors.New("adapter failure")

	// ErrUnsupportedFile is returned when no adapter handles a given file.
	ErrUnsupportedFile = errors.New("unsupported file")

	// ErrSubmission wraps failures of the pull request submission command.
	ErrSubmission = errors.New("pull request submission failed")
)

// CommandError describes an external command that did not exit successfully.
type CommandError struct {
	Command  []string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", strings.Join(e.Command, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}
