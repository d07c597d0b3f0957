package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	intdb "todoapi/internal/db"
	"todoapi/internal/domain"
	"todoapi/internal/domain/models"
)

const userColumns = `id, name, email, mobile, password_hash, role, created_at, updated_at`

type UserRepository struct {
	DB *sql.DB
}

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Mobile, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

func (r UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (r UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
}

func (r UserRepository) List(ctx context.Context, offset, limit int) ([]models.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id LIMIT ? OFFSET ?`, limit, offset)
}

func (r UserRepository) query(ctx context.Context, q string, args ...any) ([]models.User, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	list := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return list, nil
}

// FindByID returns nil, nil when no user has id.
func (r UserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, strings.TrimSpace(email))
}

func (r UserRepository) findOne(ctx context.Context, q string, args ...any) (*models.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx, q, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r UserRepository) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.DB.ExecContext(ctx, `
		INSERT INTO users (name, email, mobile, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, u.Name, u.Email, u.Mobile, u.PasswordHash, u.Role, now, now)
	if err != nil {
		return models.User{}, wrapWriteErr("User", "insert user", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("insert user: last id: %w", err)
	}
	u.ID = id
	u.CreatedAt, u.UpdatedAt = now, now
	return u, nil
}

// UpdateByID replaces name, email and mobile; the role only when non-empty.
// It returns nil, nil when no user has id.
func (r UserRepository) UpdateByID(ctx context.Context, id int64, in models.UserInput) (*models.User, error) {
	now := time.Now().UTC().Truncate(time.Second)
	_, err := r.DB.ExecContext(ctx, `
		UPDATE users
		SET name = ?, email = ?, mobile = ?, role = COALESCE(NULLIF(?, ''), role), updated_at = ?
		WHERE id = ?
	`, in.Name, in.Email, in.Mobile, in.Role, now, id)
	if err != nil {
		return nil, wrapWriteErr("User", "update user", err)
	}
	return r.FindByID(ctx, id)
}

// DeleteByID returns the removed user, or nil, nil when no user has id.
func (r UserRepository) DeleteByID(ctx context.Context, id int64) (*models.User, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("delete user: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	u, err := scanUser(tx.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ? FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete user: select: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("delete user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("delete user: commit: %w", err)
	}
	return &u, nil
}

// wrapWriteErr turns a duplicate-key failure into domain.ConflictError.
func wrapWriteErr(resource, op string, err error) error {
	if field, ok := intdb.DuplicateKey(err); ok {
		return domain.ConflictError{Resource: resource, Field: field, Err: err}
	}
	return fmt.Errorf("%s: %w", op, err)
}
