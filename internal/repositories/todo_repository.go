package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todoapi/internal/domain/models"
)

const todoColumns = `id, title, description, completed, created_by, created_at, updated_at`

type TodoRepository struct {
	DB *sql.DB
}

func scanTodo(row interface{ Scan(...any) error }) (models.Todo, error) {
	var t models.Todo
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r TodoRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count todos: %w", err)
	}
	return n, nil
}

func (r TodoRepository) FindAll(ctx context.Context) ([]models.Todo, error) {
	return r.query(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY id`)
}

func (r TodoRepository) List(ctx context.Context, offset, limit int) ([]models.Todo, error) {
	return r.query(ctx, `SELECT `+todoColumns+` FROM todos ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
}

func (r TodoRepository) query(ctx context.Context, q string, args ...any) ([]models.Todo, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	list := []models.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate todos: %w", err)
	}
	return list, nil
}

func (r TodoRepository) FindByID(ctx context.Context, id int64) (*models.Todo, error) {
	t, err := scanTodo(r.DB.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return &t, nil
}

func (r TodoRepository) Create(ctx context.Context, in models.TodoInput) (models.Todo, error) {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO todos (title, description, completed, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, in.Title, in.Description, in.Completed, in.CreatedBy, now, now)
	if err != nil {
		return models.Todo{}, wrapWriteErr("Todo", "insert todo", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Todo{}, fmt.Errorf("insert todo: last id: %w", err)
	}
	return models.Todo{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		CreatedBy:   in.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (r TodoRepository) UpdateByID(ctx context.Context, id int64, in models.TodoInput) (*models.Todo, error) {
	now := time.Now().UTC().Truncate(time.Second)
	_, err := r.DB.ExecContext(ctx, `
		UPDATE todos
		SET title = ?, description = ?, completed = ?, created_by = ?, updated_at = ?
		WHERE id = ?
	`, in.Title, in.Description, in.Completed, in.CreatedBy, now, id)
	if err != nil {
		return nil, wrapWriteErr("Todo", "update todo", err)
	}
	return r.FindByID(ctx, id)
}

func (r TodoRepository) DeleteByID(ctx context.Context, id int64) (*models.Todo, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("delete todo: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	t, err := scanTodo(tx.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ? FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete todo: select: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete todo: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("delete todo: commit: %w", err)
	}
	return &t, nil
}
