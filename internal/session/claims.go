package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoUsername means the token decoded but carries no username claim.
var ErrNoUsername = errors.New("access token has no username claim")

// User is the identity derived from the access token.
type User struct {
	Username string
	Email    string

	// ExpiresAt is zero when the token has no exp claim.
	ExpiresAt time.Time
}

type accessClaims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// DecodeClaims reads the display identity out of an access token.
//
// The signature is not verified. The result is for display only.
func DecodeClaims(token string) (User, error) {
	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return User{}, fmt.Errorf("decode access token: %w", err)
	}
	if claims.Username == "" {
		return User{}, ErrNoUsername
	}

	user := User{Username: claims.Username, Email: claims.Email}
	if claims.ExpiresAt != nil {
		user.ExpiresAt = claims.ExpiresAt.Time
	}
	return user, nil
}
