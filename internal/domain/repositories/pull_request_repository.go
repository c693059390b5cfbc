package repositories

import (
	"context"

	"github.com/rios0rios0/dependactor/internal/domain/entities"
)

// PullRequestRepository hands a finished unit over to the pull request service.
type PullRequestRepository interface {
	Submit(ctx context.Context, branch string, payload *entities.UpdateTask) error
}
