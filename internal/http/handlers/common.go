package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strconv"

	"todoapi/internal/domain"
	"todoapi/internal/http/middleware"
	"todoapi/internal/http/respond"
	"todoapi/internal/pagination"
	"todoapi/internal/services"

	"github.com/gin-gonic/gin"
)

// Handler groups the HTTP endpoints. It is built once in NewRouter.
type Handler struct {
	Auth    services.AuthService
	Users   services.UserService
	Todos   services.TodoService
	Reports services.ReportService
	Paging  pagination.Options
}

// bindPayload decodes the body into a generic object. An empty body counts
// as an empty object so validation can report every missing field.
func bindPayload(c *gin.Context) (map[string]any, bool) {
	payload := map[string]any{}
	if c.Request.Body == nil {
		return payload, true
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respond.Error(c, err)
		return nil, false
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return payload, true
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		respond.Error(c, domain.NewValidationError("body", "Request body must be a JSON object"))
		return nil, false
	}
	return payload, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, domain.NewValidationError("id", "id must be a positive integer"))
		return 0, false
	}
	return id, true
}

func (h Handler) pageRequest(c *gin.Context) (pagination.Request, bool) {
	req, err := pagination.ParseRequest(c.Query("page"), c.Query("limit"), h.Paging)
	if err != nil {
		respond.Error(c, err)
		return pagination.Request{}, false
	}
	return req, true
}

// principal is only called behind middleware.Authenticate.
func principal(c *gin.Context) (domain.Principal, bool) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		respond.Error(c, errors.New("handler mounted without authentication"))
	}
	return p, ok
}
