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

type TodoService struct {
	Todos   TodoStore
	Timeout time.Duration
}

func (s TodoService) List(ctx context.Context, basePath string, req pagination.Request) (pagination.Result[models.Todo], error) {
	qctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	return pagination.Paginate[models.Todo](qctx, s.Todos, basePath, req)
}

func (s TodoService) Get(ctx context.Context, id int64) (models.Todo, error) {
	qctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	t, err := s.Todos.FindByID(qctx, id)
	if err != nil {
		return models.Todo{}, err
	}
	if t == nil {
		return models.Todo{}, domain.NotFoundError{Resource: "Todo", Op: "read"}
	}
	return *t, nil
}

// Create stores a todo. A payload without createdBy is attributed to the caller.
func (s TodoService) Create(ctx context.Context, p domain.Principal, payload map[string]any) (models.Todo, error) {
	in, err := s.input(ctx, p, payload)
	if err != nil {
		return models.Todo{}, err
	}
	qctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	t, err := s.Todos.Create(qctx, in)
	if err != nil {
		return models.Todo{}, err
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "todo", "create", "todo_id="+strconv.FormatInt(t.ID, 10))
	return t, nil
}

func (s TodoService) Update(ctx context.Context, p domain.Principal, id int64, payload map[string]any) (models.Todo, error) {
	in, err := s.input(ctx, p, payload)
	if err != nil {
		return models.Todo{}, err
	}
	qctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	t, err := s.Todos.UpdateByID(qctx, id, in)
	if err != nil {
		return models.Todo{}, err
	}
	if t == nil {
		return models.Todo{}, domain.NotFoundError{Resource: "Todo", Op: "update"}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "todo", "update", "todo_id="+strconv.FormatInt(id, 10))
	return *t, nil
}

func (s TodoService) Delete(ctx context.Context, id int64) error {
	qctx, cancel := withTimeout(ctx, s.Timeout)
	defer cancel()
	t, err := s.Todos.DeleteByID(qctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return domain.NotFoundError{Resource: "Todo", Op: "delete"}
	}
	utils.LogEvent(utils.RequestIDFrom(ctx), "todo", "delete", "todo_id="+strconv.FormatInt(id, 10))
	return nil
}

func (s TodoService) input(ctx context.Context, p domain.Principal, payload map[string]any) (models.TodoInput, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	if _, ok := payload["createdBy"]; !ok && p.SubjectID != "" {
		payload["createdBy"] = p.SubjectID
	}
	values, err := validation.Validate(ctx, validation.TodoSchema, payload)
	if err != nil {
		return models.TodoInput{}, err
	}
	var in models.TodoInput
	if err := validation.Decode(values, &in); err != nil {
		return models.TodoInput{}, err
	}
	return in, nil
}
