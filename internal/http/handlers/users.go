package handlers

import (
	"net/http"

	"todoapi/internal/http/respond"

	"github.com/gin-gonic/gin"
)

// GET /users?page=1&limit=10
func (h Handler) GetUsers(c *gin.Context) {
	req, ok := h.pageRequest(c)
	if !ok {
		return
	}
	res, err := h.Users.List(c.Request.Context(), "/users", req)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Send(c, http.StatusOK, res, "Users list")
}

// GET /users/:id
func (h Handler) GetUserByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	u, err := h.Users.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Send(c, http.StatusOK, u, "User retrieved successfully")
}

// POST /users
func (h Handler) CreateUser(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	u, err := h.Users.Create(c.Request.Context(), payload)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Send(c, http.StatusCreated, u, "User created successfully")
}

// PUT /users/:id
func (h Handler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	u, err := h.Users.Update(c.Request.Context(), id, payload)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Send(c, http.StatusOK, u, "User updated successfully")
}

// DELETE /users/:id
func (h Handler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Users.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Send(c, http.StatusNoContent, nil, "User deleted successfully")
}
