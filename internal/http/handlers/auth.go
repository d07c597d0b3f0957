package handlers

import (
	"net/http"

	"todoapi/internal/http/respond"
	"todoapi/internal/validation"

	"github.com/gin-gonic/gin"
)

// POST /auth/register
func (h Handler) Register(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	if _, err := h.Auth.Register(c.Request.Context(), payload); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Send(c, http.StatusCreated, nil, "User registered successfully")
}

// POST /auth/login
func (h Handler) Login(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	values, err := validation.Validate(c.Request.Context(), validation.LoginSchema, payload)
	if err != nil {
		respond.Error(c, err)
		return
	}
	email, _ := values["email"].(string)
	password, _ := values["password"].(string)

	token, _, err := h.Auth.Login(c.Request.Context(), email, password)
	if err != nil {
		respond.Error(c, err)
		return
	}
	respond.Send(c, http.StatusOK, gin.H{"token": token}, "Login successful")
}
