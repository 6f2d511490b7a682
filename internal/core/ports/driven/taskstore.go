package driven

import (
	"context"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
)

// TaskStore is the external to-do service tasks are created in.
type TaskStore interface {
	// ListTasks returns the existing tasks new items are compared
	// against.
	ListTasks(ctx context.Context) ([]domain.ExistingTask, error)

	// CreateTask creates a task and returns its external id.
	CreateTask(ctx context.Context, task domain.NewTask) (string, error)
}
