package repository

import (
	"context"

	"github.com/taskflow/backend/domain"
)

// TaskPatch carries the fields of a partial update. Nil pointers mean the
// field was absent from the request and must be left untouched.
type TaskPatch struct {
	Text      *string
	Completed *bool
	Priority  *domain.Priority
	DueDate   *string
}

// TaskRepository provides owner-scoped task persistence. Every accessor
// takes the owner id as a mandatory argument: matching id AND owner doubles
// as the authorization check, so a foreign id is indistinguishable from a
// missing one.
type TaskRepository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, ownerID, id string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, ownerID, id string) error
}
