package entities

import "fmt"

// Mode selects how side effects on the remote are handled.
type Mode string

// ModeTest suppresses the push to the remote. Every other value behaves as production.
const ModeTest Mode = "test"

// JobEnvironment is the per-invocation configuration of an update job.
type JobEnvironment struct {
	JobID        string // uniqueness salt for branch names
	BaseRevision string // commit or ref every unit branch is cut from
	Mode         Mode
}

// IsTest reports whether remote pushes must be skipped.
func (e JobEnvironment) IsTest() bool {
	return e.Mode == ModeTest
}

// Validate checks that the environment can drive a job.
func (e JobEnvironment) Validate() error {
	if e.JobID == "" {
		return fmt.Errorf("%w: job ID is required", ErrInvalidEnvironment)
	}
	if e.BaseRevision == "" {
		return fmt.Errorf("%w: base revision is required", ErrInvalidEnvironment)
	}
	return nil
}
