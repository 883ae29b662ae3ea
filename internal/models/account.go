package models

import (
	"time"
)

type Account struct {
	ID               string
	Email            string // stored lowercase, unique
	PasswordHash     string
	FirstName        string
	LastName         string
	TwoFactorSecret  string // base32 TOTP secret, empty until enrollment begins
	TwoFactorEnabled bool   // true only after a code verified against TwoFactorSecret
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TwoFactorPending reports whether enrollment was started but never confirmed.
func (a *Account) TwoFactorPending() bool {
	return a.TwoFactorSecret != "" && !a.TwoFactorEnabled
}
