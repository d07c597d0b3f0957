package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newTestService(t *testing.T, now time.Time) *TokenService {
	t.Helper()
	svc, err := NewTokenService([]byte("test-secret"), time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	svc.now = func() time.Time { return now }
	return svc
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := newTestService(t, now)

	token, err := svc.Issue(Claims{SubjectID: "42", Role: "admin"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.SubjectID != "42" || claims.Role != "admin" {
		t.Fatalf("claims changed: %+v", claims)
	}
	if !claims.IssuedAt.Equal(now) {
		t.Fatalf("issued at = %v, want %v", claims.IssuedAt, now)
	}
	if !claims.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expires at = %v, want %v", claims.ExpiresAt, now.Add(time.Hour))
	}
}

func TestVerifyExpired(t *testing.T) {
	issued := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	svc := newTestService(t, issued)
	token, err := svc.Issue(Claims{SubjectID: "1", Role: "user"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	for _, at := range []time.Time{issued.Add(time.Hour), issued.Add(48 * time.Hour)} {
		svc.now = func() time.Time { return at }
		if _, err := svc.Verify(token); !errors.Is(err, ErrTokenExpired) {
			t.Fatalf("at %v: expected ErrTokenExpired, got %v", at, err)
		}
	}
}

func TestVerifyExpiredWithForeignSignature(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	other, err := NewTokenService([]byte("other-secret"), time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	other.now = func() time.Time { return now.Add(-time.Hour) }
	token, err := other.Issue(Claims{SubjectID: "1", Role: "user"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	svc := newTestService(t, now)
	if _, err := svc.Verify(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyInvalid(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 0, 0, 0, time.UTC)
	svc := newTestService(t, now)
	token, err := svc.Issue(Claims{SubjectID: "1", Role: "user"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other, _ := NewTokenService([]byte("other-secret"), time.Hour)
	other.now = svc.now
	foreign, _ := other.Issue(Claims{SubjectID: "1", Role: "admin"})

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "1", "role": "admin", "exp": now.Add(time.Hour).Unix(),
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "role": "admin"})
	noExpToken, _ := noExp.SignedString([]byte("test-secret"))

	cases := map[string]string{
		"garbage":        "not-a-token",
		"empty":          "",
		"tampered":       token[:len(token)-2] + flip(token[len(token)-2:]),
		"foreign secret": foreign,
		"alg none":       unsigned,
		"missing exp":    noExpToken,
		"bearer prefix":  "Bearer " + token,
	}
	for name, tok := range cases {
		if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestNewTokenServiceRejectsBadConfig(t *testing.T) {
	if _, err := NewTokenService(nil, time.Hour); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewTokenService([]byte("s"), 0); err == nil {
		t.Fatalf("expected error for zero ttl")
	}
}

func TestIssueRequiresSubject(t *testing.T) {
	svc := newTestService(t, time.Now())
	if _, err := svc.Issue(Claims{Role: "user"}); err == nil {
		t.Fatalf("expected error without subject")
	}
}

func flip(s string) string {
	if strings.HasPrefix(s, "A") {
		return "B" + s[1:]
	}
	return "A" + s[1:]
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	ok, err := CheckPassword(hash, "s3cret-pass")
	if err != nil || !ok {
		t.Fatalf("expected match, got ok=%v err=%v", ok, err)
	}
	ok, err = CheckPassword(hash, "wrong")
	if err != nil || ok {
		t.Fatalf("expected mismatch without error, got ok=%v err=%v", ok, err)
	}
	if _, err := CheckPassword("not-a-hash", "x"); err == nil {
		t.Fatalf("expected error for malformed hash")
	}
}
