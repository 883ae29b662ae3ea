package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// GeneralRateLimit covers every API endpoint (100 requests per 15 minutes)
func GeneralRateLimit() RateLimitConfig {
	return RateLimitConfig{Requests: 100, Window: 15 * time.Minute}
}

// AuthRateLimit slows down credential guessing (5 attempts per 15 minutes)
func AuthRateLimit() RateLimitConfig {
	return RateLimitConfig{Requests: 5, Window: 15 * time.Minute}
}

// ChatbotRateLimit caps assistant usage (10 questions per minute)
func ChatbotRateLimit() RateLimitConfig {
	return RateLimitConfig{Requests: 10, Window: 1 * time.Minute}
}

// RateLimitByIP creates a middleware that rate limits requests by client IP
func RateLimitByIP(config RateLimitConfig) func(next http.Handler) http.Handler {
	return httprate.Limit(
		config.Requests,
		config.Window,
		httprate.WithKeyByRealIP(),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"Too many requests, please try again later"}`))
		}),
	)
}
