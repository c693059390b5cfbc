package controllers

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/dependactor/internal/domain/commands"
	"github.com/rios0rios0/dependactor/internal/domain/entities"
)

// PlanController handles the "plan" subcommand.
type PlanController struct {
	command commands.Plan
}

// NewPlanController creates a new PlanController.
func NewPlanController(command commands.Plan) *PlanController {
	return &PlanController{command: command}
}

// GetBind returns the Cobra command metadata for the plan controller.
func (it *PlanController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "plan",
		Short: "List the update units and branch names of a task",
		Long: `Read the task description and print every unit the update command
would run, in order, with its branch name. Nothing is changed.`,
	}
}

// Execute prints the plan as a table.
func (it *PlanController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	env := resolveEnvironment(cmd)
	if env.JobID == "" {
		return fmt.Errorf("%w: job ID is required", entities.ErrInvalidEnvironment)
	}

	units, err := it.command.Execute(ctx, settings, env.JobID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0) //nolint:mnd // column padding
	_, _ = fmt.Fprintln(w, "KIND\tPATH\tDEPENDENCY\tBRANCH")
	for _, unit := range units {
		dependency := unit.Dependency
		if dependency == "" {
			dependency = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", unit.Kind, unit.Path, dependency, unit.Branch)
	}
	return w.Flush()
}

// AddFlags adds the plan-specific flags to the given Cobra command.
func (it *PlanController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("input", "", "Task description file (default: "+entities.DefaultInputPath+")")
	cmd.Flags().String("job-id", "", "Job identifier used in branch names (or set "+envJobID+")")
}
