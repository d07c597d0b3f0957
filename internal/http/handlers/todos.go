package handlers

import (
	"net/http"

	"todoapi/internal/http/respond"

	"github.com/gin-gonic/gin"
)

// GET /todos?page=1&limit=10
func (h Handler) GetTodos(c *gin.Context) {
	req, ok := h.pageRequest(c)
	if !ok {
		return
	}
	res, err := h.Todos.List(c.Request.Context(), "/todos", req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Send(c, http.StatusOK, res, "Todos list")
}

// GET /todos/:id
func (h Handler) GetTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.Todos.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Send(c, http.StatusOK, t, "Todo retrieved successfully")
}

// POST /todos
func (h Handler) CreateTodo(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	t, err := h.Todos.Create(c.Request.Context(), p, payload)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Send(c, http.StatusCreated, t, "Todo created successfully")
}

// PUT /todos/:id
func (h Handler) UpdateTodo(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	t, err := h.Todos.Update(c.Request.Context(), p, id, payload)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Send(c, http.StatusOK, t, "Todo updated successfully")
}

// DELETE /todos/:id
func (h Handler) DeleteTodo(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Todos.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Send(c, http.StatusNoContent, nil, "Todo deleted successfully")
}
