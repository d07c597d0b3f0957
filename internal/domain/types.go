package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Principal is the authenticated identity attached to a request.
type Principal struct {
	SubjectID string    `json:"subjectId"`
	Role      string    `json:"role"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
