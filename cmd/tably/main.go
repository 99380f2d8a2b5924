package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	v1 "github.com/tably/tably/internal/api/v1"
	"github.com/tably/tably/internal/auth"
	"github.com/tably/tably/internal/config"
	"github.com/tably/tably/internal/dnsprovider"
	"github.com/tably/tably/internal/mailer"
	"github.com/tably/tably/internal/server"
	"github.com/tably/tably/internal/storage"
	"github.com/tably/tably/internal/store/postgres"
	redisstore "github.com/tably/tably/internal/store/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("TABLY_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("TABLY_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	// Connect to PostgreSQL and apply migrations.
	store, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Migrate(ctx); err != nil {
		return err
	}

	// Connect to Redis for realtime pub/sub.
	pubsub, err := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return err
	}
	defer pubsub.Close()

	// Create auth service.
	authSvc := auth.NewService(store.Users(), cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)

	deps, err := buildDeps(ctx, cfg)
	if err != nil {
		return err
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, store, pubsub, authSvc, deps)

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("stopped")
	return nil
}

// buildDeps wires the optional infrastructure. Anything left unconfigured
// degrades gracefully: image uploads 501, DNS records are skipped and emails
// are logged instead of sent.
func buildDeps(ctx context.Context, cfg *config.Config) (server.Deps, error) {
	var deps server.Deps

	if cfg.Storage.Bucket != "" {
		objectStorage, err := storage.New(ctx, storage.Config{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Endpoint:  cfg.Storage.Endpoint,
			BaseURL:   cfg.Storage.BaseURL,
		})
		if err != nil {
			return deps, err
		}
		deps.ObjectStorage = objectStorage
		log.Info().Str("bucket", cfg.Storage.Bucket).Msg("object storage enabled")
	} else {
		log.Warn().Msg("object storage not configured, image uploads disabled")
	}

	if cfg.DNS.APIToken != "" && cfg.DNS.ZoneID != "" && cfg.DNS.BaseDomain != "" {
		target := cfg.DNS.Target
		if target == "" {
			target = cfg.DNS.BaseDomain
		}
		deps.DNS = dnsprovider.NewCloudflare(cfg.DNS.APIToken, cfg.DNS.ZoneID, cfg.DNS.BaseDomain, target)
		log.Info().Str("base_domain", cfg.DNS.BaseDomain).Msg("subdomain provisioning enabled")
	} else {
		log.Warn().Msg("DNS provider not configured, subdomain records will not be created")
	}

	var mail v1.Mailer
	if cfg.Email.PostmarkServerToken != "" {
		pm, err := mailer.NewPostmark(cfg.Email.PostmarkServerToken, cfg.Email.PostmarkAccountToken, cfg.Email.From)
		if err != nil {
			return deps, err
		}
		mail = pm
		log.Info().Str("from", cfg.Email.From).Msg("transactional email enabled")
	} else {
		mail = &mailer.LogOnly{}
		log.Warn().Msg("email not configured, running with log-only mailer")
	}
	deps.Mailer = mail

	return deps, nil
}
