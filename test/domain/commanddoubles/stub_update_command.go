//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/dependactor/internal/domain/commands"
	"github.com/rios0rios0/dependactor/internal/domain/entities"
)

// StubUpdateCommand is a stub implementation of commands.Update.
type StubUpdateCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Results          []entities.TransactionResult
	LastSettings     *entities.Settings
	LastEnv          entities.JobEnvironment
}

var _ commands.Update = (*StubUpdateCommand)(nil)

func (s *StubUpdateCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	env entities.JobEnvironment,
) ([]entities.TransactionResult, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastEnv = env
	return s.Results, s.ExecuteErr
}
