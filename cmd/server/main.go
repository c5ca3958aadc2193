package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	_ "plagrelay/docs"
	"plagrelay/internal/config"
	"plagrelay/internal/domain"
	"plagrelay/internal/handler"
	"plagrelay/internal/logging"
	"plagrelay/internal/metrics"
	"plagrelay/internal/port"
	"plagrelay/internal/router"
	"plagrelay/internal/service"
	"plagrelay/internal/upstream/organization"
	"plagrelay/internal/upstream/singleuser"
)

// @title Plagiarism Relay API
// @version 1.0
// @description Relay for plagiarism and AI-generated content checks.
// @BasePath /api
func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.Setup(&cfg.Log)
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := cfg.Upstream.CheckCredentials(); err != nil {
		log.Warn().Msg("upstream API token is not configured; check endpoints will answer with a configuration error")
	}

	m := metrics.New()

	// Initialize upstream adapters
	baseClient := &http.Client{Timeout: cfg.Upstream.Timeout()}
	adapters := []port.BackendAdapter{
		singleuser.NewAdapter(&cfg.Upstream, m.InstrumentClient(domain.BackendSingleUser, baseClient)),
		organization.NewAdapter(&cfg.Upstream, m.InstrumentClient(domain.BackendOrganization, baseClient)),
	}

	// Initialize services
	checkSvc := service.NewCheckService(cfg, adapters, m)

	// Initialize handlers
	checkH := handler.NewCheckHandler(checkSvc, cfg.Upload.MaxBytes())
	healthH := handler.NewHealthHandler(&cfg.Upstream)

	// Setup router
	r := router.Setup(cfg, m, checkH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", cfg.Server.Port).
			Str("environment", cfg.Server.Environment).
			Bool("organization_api", cfg.Upstream.HasOrganizationCredentials()).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
