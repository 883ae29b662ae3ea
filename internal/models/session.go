package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the payload of a signed session token: account identity
// plus the registered issued-at/expiry claims.
type SessionClaims struct {
	AccountID string `json:"id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}
