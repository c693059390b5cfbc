package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/dependactor/internal/infrastructure/repositories"
)

// Update is the interface for the update command.
type Update interface {
	Execute(
		ctx context.Context,
		settings *entities.Settings,
		env entities.JobEnvironment,
	) ([]entities.TransactionResult, error)
}

// UpdateCommand turns a task description into one branch, one commit and one
// pull request per unit. Units run one at a time on the same working copy,
// each cut from the base revision. The first failing step aborts the job.
type UpdateCommand struct {
	taskRepository     repositories.TaskRepository
	vcsRegistry        *infraRepos.VCSRegistry
	adapterRegistry    *infraRepos.AdapterRegistry
	pullRequestFactory infraRepos.PullRequestFactory
}

// NewUpdateCommand creates a new UpdateCommand.
func NewUpdateCommand(
	taskRepository repositories.TaskRepository,
	vcsRegistry *infraRepos.VCSRegistry,
	adapterRegistry *infraRepos.AdapterRegistry,
	pullRequestFactory infraRepos.PullRequestFactory,
) *UpdateCommand {
	return &UpdateCommand{
		taskRepository:     taskRepository,
		vcsRegistry:        vcsRegistry,
		adapterRegistry:    adapterRegistry,
		pullRequestFactory: pullRequestFactory,
	}
}

// Execute loads the task, runs every unit and, when configured, writes the
// final task to the report file. Results of the units completed before a
// failure are returned together with the error.
func (it *UpdateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	env entities.JobEnvironment,
) ([]entities.TransactionResult, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}

	task, err := it.taskRepository.Load(ctx, settings.Input)
	if err != nil {
		return nil, err
	}

	units, err := entities.PlanUnits(task, env.JobID)
	if err != nil {
		return nil, err
	}
	logger.Infof("Planned %d update units for job %s", len(units), env.JobID)

	vcs, err := it.vcsRegistry.Get(settings)
	if err != nil {
		return nil, err
	}
	adapters := it.adapterRegistry.Resolve(settings)

	run := &transactionRunner{
		env:         env,
		remote:      settings.Remote,
		vcs:         vcs,
		updater:     adapters,
		inspector:   adapters,
		pullRequest: it.pullRequestFactory(settings),
	}

	results := make([]entities.TransactionResult, 0, len(units))
	for _, unit := range units {
		result, runErr := run.execute(ctx, task, unit)
		if runErr != nil {
			logger.Errorf("[%s] %s failed: %v", unit.Kind, unit, runErr)
			return results, fmt.Errorf("%s: %w", unit, runErr)
		}
		results = append(results, result)
	}

	if settings.Report != "" {
		if saveErr := it.taskRepository.Save(ctx, settings.Report, task); saveErr != nil {
			return results, saveErr
		}
		logger.Infof("Wrote report to %s", settings.Report)
	}

	logger.Infof("Job %s complete: %d pull requests submitted", env.JobID, len(results))
	return results, nil
}

// transactionRunner holds the collaborators of one job.
type transactionRunner struct {
	env         entities.JobEnvironment
	remote      string
	vcs         repositories.VCSRepository
	updater     repositories.UpdaterRepository
	inspector   repositories.InspectorRepository
	pullRequest repositories.PullRequestRepository
}

func (r *transactionRunner) execute(
	ctx context.Context,
	task *entities.UpdateTask,
	unit entities.UpdateUnit,
) (entities.TransactionResult, error) {
	if unit.Kind == entities.UnitLockfile {
		return r.updateLockfile(ctx, task.Lockfiles[unit.Path], unit)
	}
	return r.updateDependency(ctx, task.Manifests[unit.Path], unit)
}

func (r *transactionRunner) updateLockfile(
	ctx context.Context,
	entry *entities.LockfileEntry,
	unit entities.UpdateUnit,
) (entities.TransactionResult, error) {
	logger.Infof("[lockfile] Updating %s on %s", unit.Path, unit.Branch)

	if err := r.branch(ctx, unit.Branch); err != nil {
		return entities.TransactionResult{}, err
	}

	snapshot, err := r.updater.UpdateLockfile(ctx, unit.Path)
	if err != nil {
		return entities.TransactionResult{}, fmt.Errorf("%w: update: %w", entities.ErrAdapter, err)
	}

	// The resolver may not land exactly on what was requested; report what it did.
	dependencies, err := r.inspector.CollectDependencies(ctx, snapshot)
	if err != nil {
		return entities.TransactionResult{}, fmt.Errorf("%w: collect: %w", entities.ErrAdapter, err)
	}
	if len(dependencies) == 0 {
		return entities.TransactionResult{}, fmt.Errorf("%w: no dependencies found in %s", entities.ErrAdapter, unit.Path)
	}
	fingerprint, err := r.inspector.Fingerprint(ctx, unit.Path)
	if err != nil {
		return entities.TransactionResult{}, fmt.Errorf("%w: fingerprint: %w", entities.ErrAdapter, err)
	}
	if fingerprint == "" {
		return entities.TransactionResult{}, fmt.Errorf("%w: empty fingerprint for %s", entities.ErrAdapter, unit.Path)
	}
	entry.ApplyLockfileUpdate(dependencies, fingerprint)

	message := entities.CommitMessage(unit, "", "")
	pushed, err := r.commitAndPush(ctx, unit, message)
	if err != nil {
		return entities.TransactionResult{}, err
	}

	payload := entities.NewLockfilePayload(unit.Path, entry)
	if err = r.pullRequest.Submit(ctx, unit.Branch, payload); err != nil {
		return entities.TransactionResult{}, err
	}

	logger.Infof("[lockfile] Submitted %s (%d dependencies, fingerprint %s)", unit.Branch, len(dependencies), fingerprint)
	return entities.TransactionResult{Unit: unit, CommitMessage: message, Pushed: pushed, Payload: payload}, nil
}

func (r *transactionRunner) updateDependency(
	ctx context.Context,
	entry *entities.ManifestEntry,
	unit entities.UpdateUnit,
) (entities.TransactionResult, error) {
	current := entry.Current.Dependencies[unit.Dependency]
	latest, _ := current.Latest()
	installed, target := current.Installed.Name, latest.Name

	logger.Infof("[manifest] Updating %s in %s from %s to %s on %s",
		unit.Dependency, unit.Path, installed, target, unit.Branch)

	if err := r.branch(ctx, unit.Branch); err != nil {
		return entities.TransactionResult{}, err
	}

	if err := r.updater.UpdateManifest(ctx, unit.Path, unit.Dependency, target); err != nil {
		return entities.TransactionResult{}, fmt.Errorf("%w: update: %w", entities.ErrAdapter, err)
	}

	message := entities.CommitMessage(unit, installed, target)
	pushed, err := r.commitAndPush(ctx, unit, message)
	if err != nil {
		return entities.TransactionResult{}, err
	}

	updated := entry.ApplyDependencyUpdate(unit.Dependency, target)
	payload := entities.NewManifestPayload(unit.Path, unit.Dependency, current, updated)
	if err = r.pullRequest.Submit(ctx, unit.Branch, payload); err != nil {
		return entities.TransactionResult{}, err
	}

	logger.Infof("[manifest] Submitted %s", unit.Branch)
	return entities.TransactionResult{Unit: unit, CommitMessage: message, Pushed: pushed, Payload: payload}, nil
}

// branch cuts a fresh branch from the base revision.
func (r *transactionRunner) branch(ctx context.Context, name string) error {
	if err := r.vcs.Checkout(ctx, r.env.BaseRevision); err != nil {
		return err
	}
	return r.vcs.CheckoutNewBranch(ctx, name)
}

// commitAndPush commits the unit's file and pushes the branch outside test mode.
func (r *transactionRunner) commitAndPush(
	ctx context.Context,
	unit entities.UpdateUnit,
	message string,
) (bool, error) {
	if err := r.vcs.Add(ctx, unit.Path); err != nil {
		return false, err
	}
	if err := r.vcs.Commit(ctx, message); err != nil {
		return false, err
	}

	if r.env.IsTest() {
		logger.Infof("[%s] Test mode, not pushing %s", unit.Kind, unit.Branch)
		return false, nil
	}

	if err := r.vcs.Push(ctx, r.remote, unit.Branch); err != nil {
		return false, err
	}
	return true, nil
}
