package auth

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"
)

// Skew counts how many 30-second steps either side of now a code is accepted
// in. Login tolerates one step of clock drift; enrollment confirmation
// demands the current step so the user proves the authenticator is set up
// against a live clock.
const (
	LoginSkew   = 1
	ConfirmSkew = 0

	totpPeriod = 30
)

// Enrollment holds everything the client needs to register an authenticator:
// the shared secret, the otpauth:// provisioning URI, and that URI rendered
// as a scannable PNG data URL.
type Enrollment struct {
	Secret string
	URI    string
	QRCode string
}

// TOTPManager generates enrollment secrets and validates codes. The issuer
// shows up in authenticator apps next to the account email.
type TOTPManager struct {
	issuer string
	now    func() time.Time
}

func NewTOTPManager(issuer string) *TOTPManager {
	return &TOTPManager{
		issuer: issuer,
		now:    time.Now,
	}
}

// SetClock overrides the time source used for code validation.
func (tm *TOTPManager) SetClock(now func() time.Time) {
	tm.now = now
}

// GenerateEnrollment creates a fresh random base32 secret bound to the
// account email, plus the provisioning URI and QR code for it.
func (tm *TOTPManager) GenerateEnrollment(email string) (*Enrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      tm.issuer,
		AccountName: email,
		Period:      totpPeriod,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate TOTP secret: %w", err)
	}

	qr, err := qrcode.New(key.URL(), qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(200)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	return &Enrollment{
		Secret: key.Secret(),
		URI:    key.URL(),
		QRCode: "data:image/png;base64," + base64.StdEncoding.EncodeToString(png),
	}, nil
}

// Validate checks a 6-digit code against a base32 secret. skew is explicit
// at every call site; see LoginSkew and ConfirmSkew.
func (tm *TOTPManager) Validate(secret, code string, skew uint) bool {
	valid, err := totp.ValidateCustom(code, secret, tm.now(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return false
	}
	return valid
}
