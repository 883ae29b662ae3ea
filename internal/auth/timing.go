package auth

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// TimingDelay pads failed authentication attempts with a small randomized
// sleep so "unknown email" and "wrong password" are indistinguishable by
// response time. The error message is already shared between the two cases;
// this covers the timing side.
type TimingDelay struct {
	base   time.Duration
	jitter time.Duration
}

// NewTimingDelay creates a TimingDelay with the given base delay and random
// jitter range. Zero values disable the corresponding component.
func NewTimingDelay(base, jitter time.Duration) *TimingDelay {
	return &TimingDelay{base: base, jitter: jitter}
}

// Wait sleeps on failed attempts. Successful logins return immediately.
func (td *TimingDelay) Wait(success bool) {
	if success {
		return
	}

	delay := td.base
	if td.jitter > 0 {
		delay += cryptoRandDuration(td.jitter)
	}
	time.Sleep(delay)
}

// cryptoRandDuration returns a random duration in [0, max). crypto/rand
// keeps the jitter unpredictable to an observer timing responses.
func cryptoRandDuration(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}

	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}

	return time.Duration(binary.BigEndian.Uint64(buf[:]) % uint64(max))
}
