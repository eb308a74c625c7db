package repository

import (
	"context"

	"taskboard/internal/domain"
)

// TaskRepository exposes persistence operations for Task rows.
//
// The owner-scoped mutations filter on user_id and report ErrNotFound when
// no row matched, so a user can never touch another user's tasks. The Any
// variants skip the ownership filter and back the admin moderation routes.
type TaskRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, task *domain.Task) (int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Task, error)
	Get(ctx context.Context, id int64) (*domain.Task, error)
	UpdateTitle(ctx context.Context, id, userID int64, title string) error
	SetDone(ctx context.Context, id, userID int64, done bool) error
	Delete(ctx context.Context, id, userID int64) error
	SetDoneAny(ctx context.Context, id int64, done bool) error
	DeleteAny(ctx context.Context, id int64) error
}
