package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/pacsboard/pacsboard/internal/config"
	"github.com/pacsboard/pacsboard/internal/database"
	"github.com/pacsboard/pacsboard/internal/handlers"
	"github.com/pacsboard/pacsboard/internal/middleware"
	"github.com/pacsboard/pacsboard/internal/repository"
	"github.com/pacsboard/pacsboard/internal/services"
	"github.com/pacsboard/pacsboard/internal/session"
	"github.com/pacsboard/pacsboard/internal/settings"
	"github.com/pacsboard/pacsboard/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting PACS admin console")

	// The editable connection settings override the environment defaults.
	settingsStore := settings.NewStore(
		cfg.Settings.FilePath,
		[]byte(cfg.Crypto.EncryptionKey),
		settings.DBSettings{
			DBHost: cfg.Database.Host,
			DBPort: strconv.Itoa(cfg.Database.Port),
			DBName: cfg.Database.DBName,
			DBUser: cfg.Database.User,
			DBPass: cfg.Database.Password,
		},
	)

	// A decryption failure here is a fatal configuration error: the
	// process must not serve data it cannot reach correctly.
	resolved, err := settingsStore.Resolve()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to resolve database settings")
	}
	dbPort, err := strconv.Atoi(resolved.DBPort)
	if err != nil {
		log.Fatal().Err(err).Str("port", resolved.DBPort).Msg("Invalid database port in settings")
	}

	// Connect to database
	if err := database.Init(database.Config{
		Host:     resolved.DBHost,
		Port:     dbPort,
		User:     resolved.DBUser,
		Password: resolved.DBPass,
		DBName:   resolved.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	db, err := database.Get()
	if err != nil {
		log.Fatal().Err(err).Msg("Database unavailable")
	}

	// Initialize session store
	var sessionStore session.Store
	if cfg.Redis.Enabled {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		sessionStore, err = session.NewRedisStore(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis session store initialized")
	} else {
		sessionStore = session.NewMemoryStore()
		log.Info().Msg("In-memory session store initialized")
	}

	sessionManager := session.NewManager(
		sessionStore,
		[]byte(cfg.Session.Secret),
		cfg.Session.CookieName,
		cfg.Session.TTL,
		cfg.Session.Secure,
	)

	// Initialize repositories
	worklistRepo := repository.NewWorklistRepository(db)
	utilizationRepo := repository.NewUtilizationRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	worklistService := services.NewWorklistService(worklistRepo)
	utilizationService := services.NewUtilizationService(utilizationRepo)
	dashboardService := services.NewDashboardService(dashboardRepo)
	userService := services.NewUserService(userRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(userService, sessionManager)
	worklistHandler := handlers.NewWorklistHandler(worklistService)
	utilizationHandler := handlers.NewUtilizationHandler(utilizationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	usersHandler := handlers.NewUsersHandler(userService)
	settingsHandler := handlers.NewSettingsHandler(settingsStore, cfg.Database.SSLMode)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Compress(5))

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics)
	}

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type", "Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no authentication required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		// Session endpoints
		r.Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/user", authHandler.Me)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(sessionManager))

			r.Get("/worklist", worklistHandler.List)
			r.Get("/workliststatuses", worklistHandler.Statuses)
			r.Get("/pacsutilization", utilizationHandler.List)
			r.Get("/modalities", utilizationHandler.Modalities)
			r.Get("/sourceaes", utilizationHandler.SourceAEs)
			r.Get("/pacsmodalities", dashboardHandler.LiveModalities)
			r.Get("/dashboard", dashboardHandler.Overview)
			r.Post("/reset-password", authHandler.ResetPassword)
			r.Post("/test-db-connection", settingsHandler.TestConnection)

			// Admin-only endpoints
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Get("/users", usersHandler.List)
				r.Post("/users", usersHandler.Create)
				r.Put("/users/{id}", usersHandler.Update)
				r.Delete("/users/{id}", usersHandler.Delete)

				r.Get("/db-settings", settingsHandler.Get)
				r.Post("/db-settings", settingsHandler.Save)
			})
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
