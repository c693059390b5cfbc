//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/dependactor/internal/domain/commands"
	"github.com/rios0rios0/dependactor/internal/domain/entities"
)

// StubPlanCommand is a stub implementation of commands.Plan.
type StubPlanCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Units            []entities.UpdateUnit
	LastSettings     *entities.Settings
	LastJobID        string
}

var _ commands.Plan = (*StubPlanCommand)(nil)

func (s *StubPlanCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	jobID string,
) ([]entities.UpdateUnit, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastJobID = jobID
	return s.Units, s.ExecuteErr
}
