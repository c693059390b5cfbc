package repositories

import "context"

// VCSRepository sequences the version-control steps of a unit on the working copy.
// Every call is synchronous and returns an *entities.CommandError when the step fails.
type VCSRepository interface {
	// Checkout switches the working copy to the given commit or ref.
	Checkout(ctx context.Context, ref string) error

	// CheckoutNewBranch creates a branch at the current commit and switches to it.
	CheckoutNewBranch(ctx context.Context, name string) error

	// Add stages a path relative to the working copy root.
	Add(ctx context.Context, path string) error

	// Commit records the staged changes. It fails when nothing is staged.
	Commit(ctx context.Context, message string) error

	// Push publishes a branch to the remote and sets it as upstream.
	Push(ctx context.Context, remote, branch string) error
}
