package services

import (
	"context"
	"time"

	"todoapi/internal/domain/models"
)

// UserStore is the persistence collaborator for users.
// Lookups return nil, nil when nothing matches; writes report uniqueness
// violations as domain.ConflictError.
type UserStore interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	UpdateByID(ctx context.Context, id int64, in models.UserInput) (*models.User, error)
	DeleteByID(ctx context.Context, id int64) (*models.User, error)
}

type TodoStore interface {
	Count(ctx context.Context) (int64, error)
	List(ctx context.Context, offset, limit int) ([]models.Todo, error)
	FindAll(ctx context.Context) ([]models.Todo, error)
	FindByID(ctx context.Context, id int64) (*models.Todo, error)
	Create(ctx context.Context, in models.TodoInput) (models.Todo, error)
	UpdateByID(ctx context.Context, id int64, in models.TodoInput) (*models.Todo, error)
	DeleteByID(ctx context.Context, id int64) (*models.Todo, error)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
