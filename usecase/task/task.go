package task

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/repository"
)

// CreateInput carries the caller-supplied fields of a new task. Priority
// and DueDate are optional.
type CreateInput struct {
	Text     string
	Priority string
	DueDate  string
}

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

// List returns every task owned by ownerID, oldest first.
func (uc *UseCase) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return uc.tasks.ListByOwner(ctx, ownerID)
}

// Create validates the input, applies defaults and persists the task.
func (uc *UseCase) Create(ctx context.Context, ownerID string, in CreateInput) (*domain.Task, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, domain.ErrEmptyText
	}

	priority := domain.Priority(in.Priority)
	if in.Priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, domain.ErrInvalidPriority
	}

	if !domain.ValidDueDate(in.DueDate) {
		return nil, domain.ErrInvalidDueDate
	}

	task := &domain.Task{
		OwnerID:   ownerID,
		Text:      text,
		Completed: false,
		Priority:  priority,
		DueDate:   in.DueDate,
	}
	return uc.tasks.Create(ctx, task)
}

// Update applies only the fields present in patch to the caller's task.
// A patch with no fields still round-trips, bumping updated_at.
func (uc *UseCase) Update(ctx context.Context, ownerID, id string, patch repository.TaskPatch) (*domain.Task, error) {
	if patch.Text != nil {
		text := strings.TrimSpace(*patch.Text)
		if text == "" {
			return nil, domain.ErrEmptyText
		}
		patch.Text = &text
	}
	if patch.Priority != nil && !patch.Priority.Valid() {
		return nil, domain.ErrInvalidPriority
	}
	// An explicit empty due date clears the field.
	if patch.DueDate != nil && !domain.ValidDueDate(*patch.DueDate) {
		return nil, domain.ErrInvalidDueDate
	}

	return uc.tasks.Update(ctx, ownerID, id, patch)
}

// Delete removes the caller's task.
func (uc *UseCase) Delete(ctx context.Context, ownerID, id string) error {
	return uc.tasks.Delete(ctx, ownerID, id)
}
