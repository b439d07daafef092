package domain

import "time"

// Session is a refresh-token session. The opaque refresh token itself is
// never stored; only its SHA-256 hash is.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	RefreshTokenHash string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	ExpiresAt        time.Time `json:"expires_at"`
	RevokedAt        time.Time `json:"revoked_at,omitzero"`
}

// IsValid reports whether the session can still be used to mint access
// tokens at time now.
func (s *Session) IsValid(now time.Time) bool {
	return s.RevokedAt.IsZero() && now.Before(s.ExpiresAt)
}
