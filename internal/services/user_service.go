package services

import (
	"context"
	"strconv"
	"time"

	"todoapi/internal/domain"
	"todoapi/internal/domain/models"
	"todoapi/internal/pagination"
	"todoapi/internal/utils"
	"todoapi/internal/validation"
)

type UserService struct {
	Users   UserStore
	Timeout time.Duration
}

func (s UserService) List(ctx context.Context, basePath string, req pagination.Request) (pagination.Result[models.User], error) {
	qctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	return pagination.Paginate[models.User](qctx, s.Users, basePath, req)
}

func (s UserService) Get(ctx context.Context, id int64) (models.User, error) {
	qctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	u, err := s.Users.FindByID(qctx, id)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, domain.NotFoundError{Resource: "User", Op: "read"}
	}
	return *u, nil
}

// Create is the admin path; it takes the same payload as registration.
func (s UserService) Create(ctx context.Context, payload map[string]any) (models.User, error) {
	values, err := validation.Validate(ctx, validation.RegisterSchema, payload)
	if err != nil {
		return models.User{}, err
	}
	var in models.UserInput
	if err := validation.Decode(values, &in); err != nil {
		return models.User{}, err
	}
	u, err := createUser(ctx, s.Users, s.Timeout, in)
	if err != nil {
		return models.User{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "user", "create", "user_id="+strconv.FormatInt(u.ID, 10))
	return u, nil
}

func (s UserService) Update(ctx context.Context, id int64, payload map[string]any) (models.User, error) {
	values, err := validation.Validate(ctx, validation.UserSchema, payload)
	if err != nil {
		return models.User{}, err
	}
	var in models.UserInput
	if err := validation.Decode(values, &in); err != nil {
		return models.User{}, err
	}

	qctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	u, err := s.Users.UpdateByID(qctx, id, in)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, domain.NotFoundError{Resource: "User", Op: "update"}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "user", "update", "user_id="+strconv.FormatInt(id, 10))
	return *u, nil
}

func (s UserService) Delete(ctx context.Context, id int64) error {
	qctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	u, err := s.Users.DeleteByID(qctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.NotFoundError{Resource: "User", Op: "delete"}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "user", "delete", "user_id="+strconv.FormatInt(id, 10))
	return nil
}
