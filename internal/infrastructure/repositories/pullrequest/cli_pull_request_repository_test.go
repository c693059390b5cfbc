//go:build unit

package pullrequest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
	"github.com/rios0rios0/dependactor/internal/infrastructure/repositories/pullrequest"
	doubles "github.com/rios0rios0/dependactor/test/infrastructure/repositorydoubles"
)

func TestCLIPullRequestRepositorySubmit(t *testing.T) {
	t.Parallel()

	t.Run("should pass the branch and the JSON payload as arguments", func(t *testing.T) {
		t.Parallel()

		// given
		runner := &doubles.SpyRunner{}
		repo := pullrequest.NewCLIPullRequestRepository(runner, "/work", "pullrequest")
		entry := &entities.LockfileEntry{Current: map[string]any{}}
		entry.ApplyLockfileUpdate(map[string]any{"rails": "7.0.1"}, "abc123")
		payload := entities.NewLockfilePayload("Gemfile.lock", entry)

		// when
		err := repo.Submit(context.Background(), "update-lockfile-Gemfile.lock-42", payload)

		// then
		require.NoError(t, err)
		require.Len(t, runner.Runs, 1)
		call := runner.Runs[0]
		assert.Equal(t, "/work", call.Dir)
		assert.Equal(t, "pullrequest", call.Name)
		require.Len(t, call.Args, 4)
		assert.Equal(t, []string{"--branch", "update-lockfile-Gemfile.lock-42", "--dependencies-json"}, call.Args[:3])
		assert.JSONEq(t,
			`{"lockfiles":{"Gemfile.lock":{"current":{},"updated":{"dependencies":{"rails":"7.0.1"},"fingerprint":"abc123"}}}}`,
			call.Args[3],
		)
	})

	t.Run("should wrap a failed submission", func(t *testing.T) {
		t.Parallel()

		// given
		failure := &entities.CommandError{Command: []string{"pullrequest"}, ExitCode: 2}
		runner := &doubles.SpyRunner{Errs: []error{failure}}
		repo := pullrequest.NewCLIPullRequestRepository(runner, "/work", "pullrequest")

		// when
		err := repo.Submit(context.Background(), "update-lodash-42", &entities.UpdateTask{})

		// then
		require.ErrorIs(t, err, entities.ErrSubmission)
		var cmdErr *entities.CommandError
		require.ErrorAs(t, err, &cmdErr)
		assert.Equal(t, 2, cmdErr.ExitCode)
	})
}
