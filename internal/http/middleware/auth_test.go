package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"todoapi/internal/auth"
	"todoapi/internal/domain"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubVerifier struct {
	claims auth.Claims
	err    error
	got    string
}

func (s *stubVerifier) Verify(token string) (auth.Claims, error) {
	s.got = token
	return s.claims, s.err
}

func serve(t *testing.T, v Verifier, header string, checks ...Check) (*httptest.ResponseRecorder, *bool) {
	t.Helper()
	reached := false
	r := gin.New()
	r.GET("/x", Authenticate(v, "Authorization", checks...), func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok || p.SubjectID == "" {
			t.Fatalf("principal not attached")
		}
		reached = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w, &reached
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body.Message
}

func TestAuthenticateMissingToken(t *testing.T) {
	w, reached := serve(t, &stubVerifier{}, "")
	if w.Code != http.StatusUnauthorized || *reached {
		t.Fatalf("status = %d reached=%v", w.Code, *reached)
	}
	if m := message(t, w); m != domain.MsgTokenMissing {
		t.Fatalf("message = %q", m)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	w, reached := serve(t, &stubVerifier{err: auth.ErrTokenExpired}, "tok")
	if w.Code != http.StatusUnauthorized || *reached {
		t.Fatalf("status = %d", w.Code)
	}
	if m := message(t, w); m != domain.MsgTokenExpired {
		t.Fatalf("message = %q", m)
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	w, reached := serve(t, &stubVerifier{err: auth.ErrInvalidToken}, "tok")
	if w.Code != http.StatusForbidden || *reached {
		t.Fatalf("status = %d", w.Code)
	}
	if m := message(t, w); m != domain.MsgTokenInvalid {
		t.Fatalf("message = %q", m)
	}
}

func TestAuthenticatePassesTokenVerbatim(t *testing.T) {
	v := &stubVerifier{claims: auth.Claims{SubjectID: "1", Role: "user"}}
	w, reached := serve(t, v, "Bearer abc.def")
	if w.Code != http.StatusOK || !*reached {
		t.Fatalf("status = %d", w.Code)
	}
	if v.got != "Bearer abc.def" {
		t.Fatalf("token altered: %q", v.got)
	}
}

func TestRequireRole(t *testing.T) {
	admin := RequireRole(domain.RoleAdmin)
	if err := admin(domain.Principal{SubjectID: "1", Role: "user"}); domain.KindOf(err) != domain.KindForbidden {
		t.Fatalf("user role passed admin check: %v", err)
	}
	if err := admin(domain.Principal{SubjectID: "1", Role: "admin"}); err != nil {
		t.Fatalf("admin rejected: %v", err)
	}

	v := &stubVerifier{claims: auth.Claims{SubjectID: "1", Role: "user", ExpiresAt: time.Now().Add(time.Hour)}}
	w, reached := serve(t, v, "tok", admin)
	if w.Code != http.StatusForbidden || *reached {
		t.Fatalf("status = %d reached=%v", w.Code, *reached)
	}
	if m := message(t, w); m != domain.MsgRoleMismatch {
		t.Fatalf("message = %q", m)
	}

	v.claims.Role = "admin"
	w, reached = serve(t, v, "tok", admin)
	if w.Code != http.StatusOK || !*reached {
		t.Fatalf("admin status = %d", w.Code)
	}
}

func TestRoleMismatchKeepsPrincipal(t *testing.T) {
	v := &stubVerifier{claims: auth.Claims{SubjectID: "42", Role: "user", ExpiresAt: time.Now().Add(time.Hour)}}

	var seen domain.Principal
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Next()
		seen, _ = PrincipalFrom(c)
	})
	r.GET("/admin", Authenticate(v, "Authorization", RequireRole(domain.RoleAdmin)), func(c *gin.Context) {
		t.Fatal("handler reached for a user-role token")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "tok")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d", w.Code)
	}
	if seen.SubjectID != "42" {
		t.Fatalf("principal after rejection = %+v", seen)
	}
}

func TestRequestIDEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc-123" || w.Header().Get("X-Request-ID") != "abc-123" {
		t.Fatalf("request id not echoed: body=%q header=%q", w.Body.String(), w.Header().Get("X-Request-ID"))
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	if len(w.Body.String()) != 36 {
		t.Fatalf("expected generated uuid, got %q", w.Body.String())
	}
}
