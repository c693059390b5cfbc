package gogit

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/domain/repositories"
)

// errNothingToCommit mirrors the git CLI refusing an empty commit.
var errNothingToCommit = errors.New("nothing to commit, working tree clean")

// VCSRepository performs the version-control steps in-process with go-git.
// It reports failures as *entities.CommandError naming the equivalent git command.
type VCSRepository struct {
	repoDir string
	author  entities.Author
	now     func() time.Time
}

var _ repositories.VCSRepository = (*VCSRepository)(nil)

// NewVCSRepository is the registry factory for the go-git backend.
func NewVCSRepository(settings *entities.Settings) repositories.VCSRepository {
	return &VCSRepository{
		repoDir: settings.Repository,
		author:  settings.Author,
		now:     time.Now,
	}
}

func (it *VCSRepository) Checkout(_ context.Context, ref string) error {
	args := []string{"checkout", ref}

	repo, wt, err := it.open()
	if err != nil {
		return failed(args, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return failed(args, err)
	}

	logger.Debugf("[git] Checking out %s (%s)", ref, hash)
	if err = wt.Checkout(&git.CheckoutOptions{Hash: *hash}); err != nil {
		return failed(args, err)
	}
	return nil
}

func (it *VCSRepository) CheckoutNewBranch(_ context.Context, name string) error {
	args := []string{"checkout", "-b", name}

	_, wt, err := it.open()
	if err != nil {
		return failed(args, err)
	}

	logger.Debugf("[git] Creating branch %s", name)
	if err = wt.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(name),
		Create: true,
	}); err != nil {
		return failed(args, err)
	}
	return nil
}

func (it *VCSRepository) Add(_ context.Context, path string) error {
	args := []string{"add", path}

	_, wt, err := it.open()
	if err != nil {
		return failed(args, err)
	}

	rel, err := it.worktreePath(wt, path)
	if err != nil {
		return failed(args, err)
	}
	if _, err = wt.Add(rel); err != nil {
		return failed(args, err)
	}
	return nil
}

func (it *VCSRepository) Commit(_ context.Context, message string) error {
	args := []string{"commit", "-m", message}

	_, wt, err := it.open()
	if err != nil {
		return failed(args, err)
	}

	status, err := wt.Status()
	if err != nil {
		return failed(args, err)
	}
	if !hasStagedChanges(status) {
		return failed(args, errNothingToCommit)
	}

	//nolint:exhaustruct // only the author is relevant here
	if _, err = wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  it.author.Name,
			Email: it.author.Email,
			When:  it.now(),
		},
	}); err != nil {
		return failed(args, err)
	}
	return nil
}

func (it *VCSRepository) Push(ctx context.Context, remote, branch string) error {
	args := []string{"push", "--set-upstream", remote, branch}

	repo, _, err := it.open()
	if err != nil {
		return failed(args, err)
	}

	ref := plumbing.NewBranchReferenceName(branch)
	logger.Debugf("[git] Pushing %s to %s", branch, remote)

	//nolint:exhaustruct // remote and refspec are enough
	err = repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   []config.RefSpec{config.RefSpec(fmt.Sprintf("%s:%s", ref, ref))},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return failed(args, err)
	}

	// --set-upstream
	err = repo.CreateBranch(&config.Branch{Name: branch, Remote: remote, Merge: ref})
	if err != nil && !errors.Is(err, git.ErrBranchExists) {
		return failed(args, err)
	}
	return nil
}

func (it *VCSRepository) open() (*git.Repository, *git.Worktree, error) {
	//nolint:exhaustruct // default options besides DetectDotGit
	repo, err := git.PlainOpenWithOptions(it.repoDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open repository %q: %w", it.repoDir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open worktree: %w", err)
	}
	return repo, wt, nil
}

// worktreePath resolves path against the configured repository directory,
// like the git CLI run from there, and returns it relative to the worktree root.
func (it *VCSRepository) worktreePath(wt *git.Worktree, path string) (string, error) {
	abs, err := filepath.Abs(filepath.Join(it.repoDir, path))
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the repository", path)
	}
	return filepath.ToSlash(rel), nil
}

func hasStagedChanges(status git.Status) bool {
	for _, file := range status {
		if file.Staging != git.Unmodified && file.Staging != git.Untracked {
			return true
		}
	}
	return false
}

func failed(args []string, err error) error {
	return &entities.CommandError{
		Command:  append([]string{"git"}, args...),
		ExitCode: 1,
		Err:      err,
	}
}
