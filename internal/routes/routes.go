package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/planovahq/planova-api/internal/auth"
	"github.com/planovahq/planova-api/internal/handlers"
	"github.com/planovahq/planova-api/internal/middleware"
)

// Handlers bundles every HTTP handler the API mounts.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Catalog *handlers.CatalogHandler
	Contact *handlers.ContactHandler
	Package *handlers.PackageHandler
	Cart    *handlers.CartHandler
	Events  *handlers.EventsHandler
	Chatbot *handlers.ChatbotHandler
	Health  http.HandlerFunc
}

// RouteLimits carries the per-tier rate limits applied within the route table.
type RouteLimits struct {
	Auth    middleware.RateLimitConfig
	Chatbot middleware.RateLimitConfig
}

// DefaultRouteLimits returns the production limit tiers.
func DefaultRouteLimits() RouteLimits {
	return RouteLimits{
		Auth:    middleware.AuthRateLimit(),
		Chatbot: middleware.ChatbotRateLimit(),
	}
}

// RegisterRoutes registers all application routes under /api.
func RegisterRoutes(router chi.Router, h Handlers, tokenManager *auth.TokenManager, limits RouteLimits) {
	authLimit := middleware.RateLimitByIP(limits.Auth)
	chatbotLimit := middleware.RateLimitByIP(limits.Chatbot)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.With(authLimit).Post("/auth/register", h.Auth.Register)
		r.With(authLimit).Post("/auth/login", h.Auth.Login)

		// Two-factor endpoints require a live session
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSession(tokenManager))
			r.Post("/auth/enable-2fa", h.Auth.EnableTwoFactor)
			r.Post("/auth/verify-2fa", h.Auth.VerifyTwoFactor)
		})

		r.Get("/services", h.Catalog.ListServices)
		r.Post("/services", h.Catalog.AddService)
		r.Get("/events", h.Events.ListEvents)

		r.Post("/contact", h.Contact.Submit)
		r.Post("/custom-package", h.Package.Submit)
		r.Get("/custom-package", h.Package.List)

		r.Post("/cart", h.Cart.Add)
		r.Get("/cart", h.Cart.List)
		r.Delete("/cart", h.Cart.Clear)

		r.With(chatbotLimit).Post("/chatbot", h.Chatbot.Ask)
	})
}
