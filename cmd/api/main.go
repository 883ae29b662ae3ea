package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/planovahq/planova-api/internal/auth"
	"github.com/planovahq/planova-api/internal/background"
	"github.com/planovahq/planova-api/internal/config"
	"github.com/planovahq/planova-api/internal/database"
	"github.com/planovahq/planova-api/internal/handlers"
	middlewareCustom "github.com/planovahq/planova-api/internal/middleware"
	"github.com/planovahq/planova-api/internal/models"
	"github.com/planovahq/planova-api/internal/repositories"
	"github.com/planovahq/planova-api/internal/routes"
	"github.com/planovahq/planova-api/internal/services"
	pkglogger "github.com/planovahq/planova-api/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	// Initialize database
	db, err := database.NewConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db.Pool); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}

	// Initialize repositories
	accountRepo := repositories.NewAccountRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	packageRepo := repositories.NewCustomPackageRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	cartRepo := repositories.NewCartRepository(db)

	// Cart cleanup task
	cleanupManager := background.NewCleanupManager(cartRepo, logger, cfg.Auth.CleanupInterval, cfg.Auth.CartTTL)

	// Auth building blocks
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionExpiry)
	totpManager := auth.NewTOTPManager(cfg.Auth.TOTPIssuer)
	timingDelay := auth.NewTimingDelay(cfg.Auth.TimingDelay, cfg.Auth.TimingJitter)
	auditLogger := pkglogger.NewAuditLogger(logger)

	// Email notifications: SES when enabled, log-only otherwise
	var notifier services.EmailNotifier
	if cfg.Email.Enabled {
		sesNotifier, err := services.NewAWSSESEmailNotifier(cfg.Email.AWSRegion, cfg.Email.FromAddress, cfg.Email.ToAddress, logger)
		if err != nil {
			logger.Error("failed to initialize email notifier", slog.Any("error", err))
			os.Exit(1)
		}
		notifier = sesNotifier
	} else {
		notifier = services.NewNoopEmailNotifier(logger)
	}

	// Chatbot: OpenAI when a key is configured, keyword answers otherwise
	var bot services.Chatbot
	if cfg.Chatbot.OpenAIAPIKey != "" {
		bot = services.NewOpenAIChatbot(cfg.Chatbot.OpenAIAPIKey, cfg.Chatbot.Model, logger)
	} else {
		logger.Info("no OpenAI API key configured, using keyword chatbot")
		bot = services.NewKeywordChatbot()
	}

	// Initialize services
	authService := services.NewAuthService(accountRepo, tokenManager, totpManager, timingDelay, logger, auditLogger)
	catalogService := services.NewCatalogService(serviceRepo, logger)
	packageService := services.NewPackageService(packageRepo, notifier, logger)
	contactService := services.NewContactService(contactRepo, notifier, logger)
	cartService := services.NewCartService(cartRepo, logger)
	chatbotService := services.NewChatbotService(bot, logger)

	// Seed the service catalog on first boot
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ensureCatalogSeeded(seedCtx, catalogService, logger); err != nil {
		logger.Error("failed to seed service catalog", slog.Any("error", err))
	}
	seedCancel()

	// Initialize handlers
	h := routes.Handlers{
		Auth:    handlers.NewAuthHandler(authService),
		Catalog: handlers.NewCatalogHandler(catalogService),
		Contact: handlers.NewContactHandler(contactService),
		Package: handlers.NewPackageHandler(packageService),
		Cart:    handlers.NewCartHandler(cartService),
		Events:  handlers.NewEventsHandler(),
		Chatbot: handlers.NewChatbotHandler(chatbotService),
		Health:  healthHandler(db),
	}

	// Setup router
	corsConfig := middlewareCustom.DefaultCORSConfig(cfg.Server.Env, cfg.Server.AllowedOrigins)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middlewareCustom.ValidateContentType)
	router.Use(middlewareCustom.RateLimitByIP(middlewareCustom.GeneralRateLimit()))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	routes.RegisterRoutes(router, h, tokenManager, routes.DefaultRouteLimits())

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start cleanup task
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()

	go cleanupManager.Start(cleanupCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	cleanupCancel()
	cleanupManager.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}

func healthHandler(db *database.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.HealthCheck(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unhealthy","database":"down"}`))
			return
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","database":"up"}`))
	}
}

// defaultCatalog is inserted on a fresh database so the storefront has
// something to show before the team curates its own list.
var defaultCatalog = []struct {
	name        string
	description string
	price       float64
	featured    bool
	category    string
}{
	{"Wedding Planning", "Full wedding planning from venue to vows, with a dedicated coordinator.", 2999, true, "wedding"},
	{"Birthday Celebrations", "Themed birthday parties with decor, entertainment and catering.", 799, true, "birthday"},
	{"Corporate Events", "Conferences, galas and launches with stage, AV and branding.", 1999, true, "corporate"},
	{"Catering Services", "Curated menus with vegetarian and vegan options for any headcount.", 45, false, "catering"},
	{"Photography & Video", "Professional photo and video coverage with edited highlights.", 899, false, "media"},
	{"Decoration Package", "Custom decoration with flowers, lighting, backdrops and draping.", 1199, false, "decor"},
}

// ensureCatalogSeeded inserts the default services when the catalog is empty
func ensureCatalogSeeded(ctx context.Context, catalog *services.CatalogService, logger *slog.Logger) error {
	existing, err := catalog.ListServices(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, svc := range defaultCatalog {
		if _, err := catalog.AddService(ctx, svc.name, svc.description, svc.price, svc.featured, svc.category); err != nil {
			if models.IsValidationError(err) {
				logger.Warn("skipping invalid seed service", slog.String("name", svc.name))
				continue
			}
			return err
		}
	}

	logger.Info("service catalog seeded", slog.Int("count", len(defaultCatalog)))
	return nil
}
