package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qrgen/qr-api/internal/api/controller"
	"qrgen/qr-api/internal/api/service"
	"qrgen/qr-api/internal/config"
	"qrgen/qr-api/internal/credentials"
	"qrgen/qr-api/internal/logger"
	"qrgen/qr-api/internal/server"
	"qrgen/qr-api/internal/telemetry"
)

func main() {
	ctx := context.Background()

	// Load configuration. Missing or malformed required values abort startup.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(cfg.OtelEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize telemetry: %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	logger.Init(cfg.LogLevel)

	// Build the credential store
	store, err := buildCredentialStore(cfg)
	if err != nil {
		log.Fatalf("failed to build credential store: %v", err)
	}

	// Create services
	authService := service.NewAuthService(store, []byte(cfg.SecretKey), cfg.TokenTTL)
	qrService := service.NewQRService(cfg.RenderWorkers)

	// Create controllers
	authController := controller.NewAuthController(authService)
	qrController := controller.NewQRController(qrService, cfg.MaxDataLength)
	healthController := controller.NewHealthController()

	// Create the Gin-based server
	srv := server.NewServer(authService, authController, qrController, healthController)

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	httpServer := &http.Server{
		Addr:    cfg.Addr(),
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("http server started on %s", cfg.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}

// buildCredentialStore parses AUTH_USERS when present, otherwise falls back
// to the single AUTH_USERNAME/AUTH_PASSWORD pair.
func buildCredentialStore(cfg *config.Config) (*credentials.Store, error) {
	if cfg.AuthUsers != "" {
		return credentials.NewStoreFromJSON(cfg.AuthUsers)
	}
	return credentials.NewStore(map[string]string{cfg.AuthUsername: cfg.AuthPassword})
}
