package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrTokenExpired = errors.New("auth: token expired")
)

// Claims is what a token carries about its subject.
type Claims struct {
	SubjectID string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies HS256 tokens. It holds no mutable state.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret []byte, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: empty signing secret")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token ttl must be positive")
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &TokenService{secret: key, ttl: ttl, now: time.Now}, nil
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs the subject and role. IssuedAt and ExpiresAt in the input are ignored.
func (s *TokenService) Issue(c Claims) (string, error) {
	if c.SubjectID == "" {
		return "", errors.New("auth: subject is required")
	}
	now := s.now().Truncate(time.Second)
	claims := tokenClaims{
		Role: c.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify returns ErrTokenExpired whenever the embedded expiry has passed,
// and ErrInvalidToken for anything else that does not verify.
func (s *TokenService) Verify(token string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	var tc tokenClaims
	parsed, err := parser.ParseWithClaims(token, &tc, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) || s.expiredUnverified(token) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || tc.Subject == "" {
		return Claims{}, ErrInvalidToken
	}

	out := Claims{
		SubjectID: tc.Subject,
		Role:      tc.Role,
		ExpiresAt: tc.ExpiresAt.Time,
	}
	if tc.IssuedAt != nil {
		out.IssuedAt = tc.IssuedAt.Time
	}
	return out, nil
}

func (s *TokenService) expiredUnverified(token string) bool {
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return false
	}
	return tc.ExpiresAt != nil && !s.now().Before(tc.ExpiresAt.Time)
}
