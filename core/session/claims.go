package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var errNotJWT = errors.New("token is not a structured token")

// Claims are the authorization claims the backend embeds in its JWTs.
type Claims struct {
	jwt.RegisteredClaims
	IsStudent bool     `json:"is_student"`
	IsTeacher bool     `json:"is_teacher"`
	IsAdmin   bool     `json:"is_admin"`
	Roles     []string `json:"roles"`
}

// DecodeClaims decodes a structured token's claims WITHOUT verifying its
// signature: verification is the backend's job, the client only inspects
// self-describing data such as expiry and roles. Opaque tokens return
// an error and are treated as claimless.
func DecodeClaims(token string) (*Claims, error) {
	claims := new(Claims)
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, errNotJWT
	}
	return claims, nil
}

// DecodeExpiry extracts the expiry claim from a structured token. The
// second return is false for opaque tokens and tokens without an exp claim.
func DecodeExpiry(token string) (time.Time, bool) {
	claims, err := DecodeClaims(token)
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
