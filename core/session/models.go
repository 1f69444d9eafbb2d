package session

import (
	"time"

	"github.com/darasahub/njia/core"
)

// TokenRecord is the persisted authentication credential plus its expiry
// and storage-tier policy. Exactly one valid record exists across both
// tiers at any time.
type TokenRecord struct {
	Token      string    `json:"token" validate:"required"`
	UserID     string    `json:"user_id" validate:"required"`
	ExpiresAt  time.Time `json:"expires_at"`
	RememberMe bool      `json:"remember_me"`
}

// Expired reports whether the record is past its expiry at `now`.
func (r TokenRecord) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// structurallyValid rejects records missing their token or user; such
// records are purged on read, never repaired.
func (r TokenRecord) structurallyValid() bool {
	return core.Validate.Struct(r) == nil
}

// Snapshot is the user-session record stored alongside the token, mainly
// for error-reporter person context.
type Snapshot struct {
	UserID     string    `json:"user_id"`
	SessionID  string    `json:"session_id"`
	RememberMe bool      `json:"remember_me"`
	CreatedAt  time.Time `json:"created_at"` // UTC
}

// Credentials is the login payload sent to the backend collaborator.
type Credentials struct {
	Username   string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"remember_me"`
}
