package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"todoapi/internal/auth"
	"todoapi/internal/domain"
	"todoapi/internal/domain/models"
	"todoapi/internal/utils"
	"todoapi/internal/validation"
)

type AuthService struct {
	Users   UserStore
	Tokens  *auth.TokenService
	Timeout time.Duration
}

// Register validates the payload, rejects a taken email and stores the user
// with a bcrypt hash. The unique index still guards concurrent registrations.
func (s AuthService) Register(ctx context.Context, payload map[string]any) (models.User, error) {
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
	utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "register", "user_id="+strconv.FormatInt(u.ID, 10))
	return u, nil
}

// Login checks the credentials and issues a token for the user.
func (s AuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	qctx, cancel := withTimeout(ctx, s.Timeout)
	u, err := s.Users.FindByEmail(qctx, strings.TrimSpace(email))
	cancel()
	if err != nil {
		return "", models.User{}, err
	}
	if u == nil {
		return "", models.User{}, domain.NotFoundError{Resource: "User"}
	}

	ok, err := auth.CheckPassword(u.PasswordHash, password)
	if err != nil {
		return "", models.User{}, fmt.Errorf("check password: %w", err)
	}
	if !ok {
		utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "login", "invalid password user_id="+strconv.FormatInt(u.ID, 10))
		return "", models.User{}, domain.UnauthenticatedError{Msg: "Invalid password"}
	}

	token, err := s.Tokens.Issue(auth.Claims{SubjectID: strconv.FormatInt(u.ID, 10), Role: u.Role})
	if err != nil {
		return "", models.User{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "auth", "login", "user_id="+strconv.FormatInt(u.ID, 10))
	return token, *u, nil
}

func createUser(ctx context.Context, users UserStore, timeout time.Duration, in models.UserInput) (models.User, error) {
	if in.Role == "" {
		in.Role = domain.RoleUser
	}

	qctx, cancel := withTimeout(ctx, timeout)
	defer cancel()

	existing, err := users.FindByEmail(qctx, in.Email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, domain.ConflictError{Resource: "User", Field: "email"}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	return users.Create(qctx, models.User{
		Name:         in.Name,
		Email:        in.Email,
		Mobile:       in.Mobile,
		PasswordHash: hash,
		Role:         in.Role,
	})
}
