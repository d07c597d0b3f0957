package middleware

import (
	"errors"
	"strings"

	"todoapi/internal/auth"
	"todoapi/internal/domain"
	"todoapi/internal/http/respond"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Verifier is the part of the token service the gate needs.
type Verifier interface {
	Verify(token string) (auth.Claims, error)
}

// Check runs after authentication with the decoded Principal.
type Check func(p domain.Principal) error

// Authenticate reads the token verbatim from header, verifies it and stores
// the Principal on the context. The checks then run in order; the first
// failure aborts the request.
func Authenticate(tokens Verifier, header string, checks ...Check) gin.HandlerFunc {
	if header == "" {
		header = "Authorization"
	}
	return func(c *gin.Context) {
		token := c.GetHeader(header)
		if strings.TrimSpace(token) == "" {
			respond.Abort(c, domain.ErrTokenMissing)
			return
		}

		claims, err := tokens.Verify(token)
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			respond.Abort(c, domain.UnauthenticatedError{Msg: domain.MsgTokenExpired, Err: err})
			return
		case err != nil:
			respond.Abort(c, domain.ForbiddenError{Msg: domain.MsgTokenInvalid, Err: err})
			return
		}

		p := domain.Principal{
			SubjectID: claims.SubjectID,
			Role:      claims.Role,
			IssuedAt:  claims.IssuedAt,
			ExpiresAt: claims.ExpiresAt,
		}
		// Visible to the access log even when a check rejects the request.
		c.Set(principalKey, p)
		for _, check := range checks {
			if err := check(p); err != nil {
				respond.Abort(c, err)
				return
			}
		}
		c.Next()
	}
}

// RequireRole passes only principals whose role equals role.
func RequireRole(role string) Check {
	return func(p domain.Principal) error {
		if p.Role != role {
			return domain.ErrRoleMismatch
		}
		return nil
	}
}

// PrincipalFrom returns the Principal stored by Authenticate.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}
