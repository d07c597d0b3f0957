package respond

import (
	"errors"
	"net/http"

	"todoapi/internal/domain"
	"todoapi/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	MsgValidationFailed = "Validation failed"
	// MsgInternal replaces the message of unclassified failures; the detail only goes to the log.
	MsgInternal         = "Internal server error"
)

// Translate maps a failure to its status code and envelope.
func Translate(err error) (int, Envelope) {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		var verr *domain.ValidationError
		errors.As(err, &verr)
		return http.StatusBadRequest, Envelope{
			Status:  http.StatusBadRequest,
			Message: MsgValidationFailed,
			Errors:  verr.Map(),
		}
	case domain.KindConflict:
		var cerr domain.ConflictError
		errors.As(err, &cerr)
		return http.StatusBadRequest, Envelope{Status: http.StatusBadRequest, Message: cerr.Error()}
	case domain.KindNotFound:
		var nerr domain.NotFoundError
		errors.As(err, &nerr)
		return http.StatusNotFound, Envelope{Status: http.StatusNotFound, Message: nerr.Error()}
	case domain.KindUnauthenticated:
		var uerr domain.UnauthenticatedError
		errors.As(err, &uerr)
		return http.StatusUnauthorized, Envelope{Status: http.StatusUnauthorized, Message: uerr.Error()}
	case domain.KindForbidden:
		var ferr domain.ForbiddenError
		errors.As(err, &ferr)
		return http.StatusForbidden, Envelope{Status: http.StatusForbidden, Message: ferr.Error()}
	default:
		return http.StatusInternalServerError, Envelope{Status: http.StatusInternalServerError, Message: MsgInternal}
	}
}

// Error translates err and sends it. Unclassified failures are logged in full
// and answered with a generic message.
func Error(c *gin.Context, err error) {
	status, env := Translate(err)
	if status == http.StatusInternalServerError {
		utils.LogEvent(utils.RequestIDFrom(c.Request.Context()), "http", "error",
			c.Request.Method+" "+c.Request.URL.Path+" err="+err.Error())
	}
	write(c, env)
}
