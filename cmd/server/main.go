// Package main initializes and starts the resource directory server,
// setting up configuration, logging, the database connection,
// repositories, services, handlers, and routing.
package main

import (
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/teamsalmon/transponder/internal/config"
	"github.com/teamsalmon/transponder/internal/db"
	"github.com/teamsalmon/transponder/internal/logger"
	"github.com/teamsalmon/transponder/internal/repository"
	"github.com/teamsalmon/transponder/internal/server/handler/http"
	"github.com/teamsalmon/transponder/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// orDefault returns s, or fallback if s is empty (stand-in for cmp.Or,
// which requires Go 1.22+).
func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", orDefault(version, "N/A"))
	fmt.Printf("Build date: %s\n", orDefault(buildDate, "N/A"))

	// Initialize structured logging.
	zapLogger, err := logger.New(options.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	// Initialize PostgreSQL connection and schema.
	postgresDB, err := db.InitPostgres(options.DatabaseDSN)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Sweep expired login sessions in the background.
	db.StartSessionCleaner(context.Background(), postgresDB,
		time.Hour, // interval
		zapLogger,
	)

	// Initialize repositories.
	authRepo := repository.NewPostgresAuthRepository(postgresDB)
	sessionRepo := repository.NewPostgresSessionRepository(postgresDB)
	resourceRepo := repository.NewPostgresResourceRepository(postgresDB)
	memoRepo := repository.NewPostgresMemoRepository(postgresDB)

	// Initialize business-logic services.
	authService := service.NewAuthService(authRepo, sessionRepo, options.VolunteerSecret, options.SessionTTL)
	resourceService := service.NewResourceService(resourceRepo)
	memoService := service.NewMemoService(memoRepo)

	// Create HTTP handlers.
	authHandler := &http.AuthHandler{AuthService: authService}
	resourceHandler := &http.ResourceHandler{ResourceService: resourceService}
	memoHandler := &http.MemoHandler{MemoService: memoService}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, resourceHandler, memoHandler, authService, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
