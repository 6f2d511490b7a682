package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/inkwell-labs/inkwell-cli/internal/core/domain"
	"github.com/inkwell-labs/inkwell-cli/internal/core/ports/driven"
)

// Ensure TaskStore implements the interface.
var _ driven.TaskStore = (*TaskStore)(nil)

// TaskStore is an in-memory TaskStore. It backs tests and the CLI's
// dry-run mode, where created tasks must go nowhere.
type TaskStore struct {
	mu      sync.Mutex
	nextID  int
	tasks   []domain.ExistingTask
	created []domain.NewTask
}

// NewTaskStore creates a store pre-seeded with the given tasks.
func NewTaskStore(existing ...domain.ExistingTask) *TaskStore {
	return &TaskStore{nextID: 1, tasks: existing}
}

// ListTasks returns the current tasks.
func (s *TaskStore) ListTasks(_ context.Context) ([]domain.ExistingTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ExistingTask, len(s.tasks))
	copy(out, s.tasks)
	return out, nil
}

// CreateTask appends a task and returns a generated id.
func (s *TaskStore) CreateTask(_ context.Context, task domain.NewTask) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("mem-%d", s.nextID)
	s.nextID++
	s.tasks = append(s.tasks, domain.ExistingTask{ID: id, Text: task.Text})
	s.created = append(s.created, task)
	return id, nil
}

// Created returns the tasks created through this store, in order.
func (s *TaskStore) Created() []domain.NewTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.NewTask, len(s.created))
	copy(out, s.created)
	return out
}
