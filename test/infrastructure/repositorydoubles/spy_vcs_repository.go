//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/dependactor/internal/domain/repositories"
)

// SpyVCSRepository implements repositories.VCSRepository as a configurable spy.
type SpyVCSRepository struct {
	Journal *CallJournal

	// --- recorded calls ---
	Checkouts []string
	Branches  []string
	Added     []string
	Commits   []string
	Pushes    []PushCall

	// --- configured failures ---
	CheckoutErr  error
	NewBranchErr error
	AddErr       error
	CommitErr    error
	PushErr      error
}

// PushCall records a single invocation of Push.
type PushCall struct {
	Remote string
	Branch string
}

var _ repositories.VCSRepository = (*SpyVCSRepository)(nil)

func (s *SpyVCSRepository) Checkout(_ context.Context, ref string) error {
	s.Journal.Record("checkout %s", ref)
	s.Checkouts = append(s.Checkouts, ref)
	return s.CheckoutErr
}

func (s *SpyVCSRepository) CheckoutNewBranch(_ context.Context, name string) error {
	s.Journal.Record("branch %s", name)
	s.Branches = append(s.Branches, name)
	return s.NewBranchErr
}

func (s *SpyVCSRepository) Add(_ context.Context, path string) error {
	s.Journal.Record("add %s", path)
	s.Added = append(s.Added, path)
	return s.AddErr
}

func (s *SpyVCSRepository) Commit(_ context.Context, message string) error {
	s.Journal.Record("commit %s", message)
	s.Commits = append(s.Commits, message)
	return s.CommitErr
}

func (s *SpyVCSRepository) Push(_ context.Context, remote, branch string) error {
	s.Journal.Record("push %s %s", remote, branch)
	s.Pushes = append(s.Pushes, PushCall{Remote: remote, Branch: branch})
	return s.PushErr
}
