package controllers

import (
	"context"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/dependactor/internal/domain/commands"
	"github.com/rios0rios0/dependactor/internal/domain/entities"
)

// UpdateController handles the "update" subcommand.
type UpdateController struct {
	command commands.Update
}

// NewUpdateController creates a new UpdateController.
func NewUpdateController(command commands.Update) *UpdateController {
	return &UpdateController{command: command}
}

// GetBind returns the Cobra command metadata for the update controller.
func (it *UpdateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "update",
		Short: "Create one branch and pull request per outdated dependency",
		Long: `Read the task description and, for every lockfile and every manifest
dependency in it, cut a branch from the base revision, apply the update,
commit it, push it and submit a pull request.

The job ID, base revision and mode come from JOB_ID, GIT_SHA and
DEPENDENCIES_ENV unless overridden by flags. In test mode nothing is pushed.`,
	}
}

// Execute runs the update job.
func (it *UpdateController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	env := resolveEnvironment(cmd)

	logger.Infof("Starting job %s from %s (input: %s)", env.JobID, env.BaseRevision, settings.Input)

	results, err := it.command.Execute(ctx, settings, env)
	for _, result := range results {
		logger.Infof("  %s -> %s (pushed: %t)", result.Unit, result.Unit.Branch, result.Pushed)
	}
	return err
}

// AddFlags adds the update-specific flags to the given Cobra command.
func (it *UpdateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", "", "Task description file (default: "+entities.DefaultInputPath+")")
	cmd.Flags().String("report", "", "Write the final task with all updates to this file")
	cmd.Flags().String("repository", "", "Working copy root (default: current directory)")
	cmd.Flags().String("vcs", "", "Version control backend (cli, gogit)")
	cmd.Flags().String("job-id", "", "Job identifier used in branch names (or set "+envJobID+")")
	cmd.Flags().String("base", "", "Revision every branch is cut from (or set "+envBaseRevision+")")
	cmd.Flags().String("mode", "", "Job mode; \"test\" disables pushing (or set "+envMode+")")
}
