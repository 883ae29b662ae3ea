package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/planovahq/planova-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-for-session-tokens-32b"

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := NewTokenManager(testSecret, DefaultSessionExpiry)

	token, err := tm.Issue("acct_123", "ann@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "acct_123", claims.AccountID)
	assert.Equal(t, "ann@x.com", claims.Email)
}

func TestTokenManager_SevenDayExpiry(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tm := NewTokenManager(testSecret, DefaultSessionExpiry)
	tm.SetClock(func() time.Time { return issued })

	token, err := tm.Issue("acct_123", "ann@x.com")
	require.NoError(t, err)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, issued.Add(7*24*time.Hour), claims.ExpiresAt.Time)
}

func TestTokenManager_Verify_Expired(t *testing.T) {
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issued

	tm := NewTokenManager(testSecret, DefaultSessionExpiry)
	tm.SetClock(func() time.Time { return now })

	token, err := tm.Issue("acct_123", "ann@x.com")
	require.NoError(t, err)

	// Still valid just inside the window
	now = issued.Add(7*24*time.Hour - time.Minute)
	_, err = tm.Verify(token)
	assert.NoError(t, err)

	// Rejected once the expiry passes
	now = issued.Add(7*24*time.Hour + time.Minute)
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestTokenManager_Verify_WrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret, DefaultSessionExpiry)
	other := NewTokenManager("a-completely-different-secret-val", DefaultSessionExpiry)

	token, err := other.Issue("acct_123", "ann@x.com")
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestTokenManager_Verify_Malformed(t *testing.T) {
	tm := NewTokenManager(testSecret, DefaultSessionExpiry)

	for _, tok := range []string{"", "garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9"} {
		_, err := tm.Verify(tok)
		assert.ErrorIs(t, err, models.ErrUnauthorized, "token %q", tok)
	}
}

func TestTokenManager_Verify_RejectsUnsignedAlg(t *testing.T) {
	tm := NewTokenManager(testSecret, DefaultSessionExpiry)

	// alg=none token carrying otherwise valid claims
	claims := &models.SessionClaims{
		AccountID: "acct_123",
		Email:     "ann@x.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tok, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Verify(tok)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}
