//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"encoding/json"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/domain/repositories"
)

// SpyPullRequestRepository implements repositories.PullRequestRepository as a configurable spy.
type SpyPullRequestRepository struct {
	Journal *CallJournal

	Submissions []SubmitCall
	SubmitErr   error
}

// SubmitCall records a single invocation of Submit with its serialized payload.
type SubmitCall struct {
	Branch  string
	Payload *entities.UpdateTask
	JSON    string
}

var _ repositories.PullRequestRepository = (*SpyPullRequestRepository)(nil)

func (s *SpyPullRequestRepository) Submit(
	_ context.Context,
	branch string,
	payload *entities.UpdateTask,
) error {
	s.Journal.Record("submit %s", branch)
	data, _ := json.Marshal(payload)
	s.Submissions = append(s.Submissions, SubmitCall{Branch: branch, Payload: payload, JSON: string(data)})
	return s.SubmitErr
}
