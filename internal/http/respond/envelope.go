// Package respond is the single exit point for HTTP responses.
package respond

import (
	"net/http"

	"todoapi/internal/utils"

	"github.com/gin-gonic/gin"
)

// Envelope is the one response shape of the API. Data is null on failures;
// Errors is only set for validation failures.
type Envelope struct {
	Status    int               `json:"status"`
	Data      any               `json:"data"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// Send writes status and the envelope. 204 responses carry no body.
func Send(c *gin.Context, status int, data any, message string) {
	write(c, Envelope{Status: status, Data: data, Message: message})
}

func write(c *gin.Context, env Envelope) {
	if env.Status == http.StatusNoContent {
		c.Status(http.StatusNoContent)
		c.Writer.WriteHeaderNow()
		return
	}
	if env.Status >= http.StatusBadRequest {
		env.Data = nil
	}
	env.RequestID = utils.RequestIDFrom(c.Request.Context())
	c.JSON(env.Status, env)
}

// Abort sends the envelope for err and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// File sends a binary attachment shown inline by the client.
func File(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
