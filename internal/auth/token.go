package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/planovahq/planova-api/internal/models"
)

// TokenManager issues and verifies stateless session tokens. The signing
// secret and lifetime are construction-time inputs; verification needs no
// I/O and never touches the account store.
type TokenManager struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// DefaultSessionExpiry is how long an issued session token stays valid.
const DefaultSessionExpiry = 7 * 24 * time.Hour

// NewTokenManager creates a TokenManager signing with secret. A zero expiry
// falls back to DefaultSessionExpiry.
func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	if expiry <= 0 {
		expiry = DefaultSessionExpiry
	}
	return &TokenManager{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

// SetClock overrides the time source. Tests use it to issue tokens at fixed
// instants and verify expiry behavior deterministically.
func (tm *TokenManager) SetClock(now func() time.Time) {
	tm.now = now
}

// Issue signs a session token carrying the account id and email.
func (tm *TokenManager) Issue(accountID, email string) (string, error) {
	now := tm.now()

	claims := &models.SessionClaims{
		AccountID: accountID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Verify parses a session token and returns its claims. Malformed,
// mis-signed, and expired tokens all come back as ErrUnauthorized.
func (tm *TokenManager) Verify(tokenString string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))

	if err != nil {
		return nil, models.ErrUnauthorized
	}

	if !token.Valid || claims.AccountID == "" {
		return nil, models.ErrUnauthorized
	}

	return claims, nil
}
