package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the payload of the short-lived access token. It is signed
// asymmetrically so any holder of the public key can verify it.
type AccessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// RefreshClaims is the payload of the long-lived refresh token. ID (jti) is
// the backing refresh-session row id rendered as a decimal string.
type RefreshClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

type Signer interface {
	GenerateAccessToken(userID uint64, role string) (token string, expiresAt time.Time, err error)

	GenerateRefreshToken(userID uint64, role string, sessionID uint64) (token string, expiresAt time.Time, err error)

	ValidateRefreshToken(raw string) (RefreshClaims, error)
}
