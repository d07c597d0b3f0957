package repositories

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"todoapi/internal/domain"
	"todoapi/internal/domain/models"
)

// MemoryUserRepository mirrors UserRepository, including the unique email index.
type MemoryUserRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{rows: map[int64]models.User{}}
}

func (r *MemoryUserRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *MemoryUserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	return r.List(ctx, 0, -1)
}

// List with a negative limit returns everything from offset.
func (r *MemoryUserRepository) List(ctx context.Context, offset, limit int) ([]models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]models.User, 0, len(r.rows))
	for _, u := range r.rows {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return window(all, offset, limit), nil
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	email = strings.TrimSpace(email)
	for _, u := range r.rows {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *MemoryUserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.emailTaken(u.Email, 0) {
		return models.User{}, domain.ConflictError{Resource: "User", Field: "email"}
	}
	r.nextID++
	now := time.Now().UTC().Truncate(time.Second)
	u.ID = r.nextID
	u.CreatedAt, u.UpdatedAt = now, now
	r.rows[u.ID] = u
	return u, nil
}

func (r *MemoryUserRepository) UpdateByID(ctx context.Context, id int64, in models.UserInput) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	if r.emailTaken(in.Email, id) {
		return nil, domain.ConflictError{Resource: "User", Field: "email"}
	}
	u.Name, u.Email, u.Mobile = in.Name, in.Email, in.Mobile
	if in.Role != "" {
		u.Role = in.Role
	}
	u.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	r.rows[id] = u
	return &u, nil
}

func (r *MemoryUserRepository) DeleteByID(ctx context.Context, id int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	delete(r.rows, id)
	return &u, nil
}

func (r *MemoryUserRepository) emailTaken(email string, except int64) bool {
	for id, u := range r.rows {
		if id != except && u.Email == email {
			return true
		}
	}
	return false
}

type MemoryTodoRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Todo
}

func NewMemoryTodoRepository() *MemoryTodoRepository {
	return &MemoryTodoRepository{rows: map[int64]models.Todo{}}
}

func (r *MemoryTodoRepository) Count(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *MemoryTodoRepository) FindAll(ctx context.Context) ([]models.Todo, error) {
	return r.List(ctx, 0, -1)
}

func (r *MemoryTodoRepository) List(ctx context.Context, offset, limit int) ([]models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	all := make([]models.Todo, 0, len(r.rows))
	for _, t := range r.rows {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return window(all, offset, limit), nil
}

func (r *MemoryTodoRepository) FindByID(ctx context.Context, id int64) (*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *MemoryTodoRepository) Create(ctx context.Context, in models.TodoInput) (models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return models.Todo{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now().UTC().Truncate(time.Second)
	t := models.Todo{
		ID:          r.nextID,
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.rows[t.ID] = t
	return t, nil
}

func (r *MemoryTodoRepository) UpdateByID(ctx context.Context, id int64, in models.TodoInput) (*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	t.Title, t.Description, t.Completed, t.CreatedBy = in.Title, in.Description, in.Completed, in.CreatedBy
	t.UpdatedAt = time.Now().UTC().Truncate(time.Second)
	r.rows[id] = t
	return &t, nil
}

func (r *MemoryTodoRepository) DeleteByID(ctx context.Context, id int64) (*models.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	delete(r.rows, id)
	return &t, nil
}

func window[T any](all []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit >= 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]T(nil), all[offset:end]...)
}
