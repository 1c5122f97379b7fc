package ports

import (
	"context"

	"github.com/bnema/rebor-cli/internal/domain"
)

type TaskClient interface {
	CompleteTask(ctx context.Context, taskID domain.TaskID, credential domain.Credential) domain.TaskResult
}

type AccountSource interface {
	Load(ctx context.Context) []domain.Credential
}
