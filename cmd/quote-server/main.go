// Command quote-server runs the assembly quote engine as an HTTP service.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quote-engine/internal/catalog"
	"quote-engine/internal/common/aws"
	"quote-engine/internal/common/config"
	"quote-engine/internal/common/database"
	"quote-engine/internal/common/logger"
	"quote-engine/internal/common/observability"
	"quote-engine/internal/engine/extract"
	"quote-engine/internal/engine/lexical"
	"quote-engine/internal/engine/pricing"
	"quote-engine/internal/engine/quote"
	"quote-engine/internal/engine/resolve"
	"quote-engine/internal/engine/travel"
	"quote-engine/internal/engine/vision"
	"quote-engine/internal/notify"
	"quote-engine/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	appLogger := logger.NewZapAdapter(zapLogger)

	appLogger.Info("starting quote engine", map[string]interface{}{
		"environment":    cfg.App.Environment,
		"genai_enabled":  cfg.GenAI.APIKey != "",
		"maps_enabled":   cfg.Maps.APIKey != "",
		"vision_enabled": cfg.Vision.APIKey != "",
	})

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	cat, err := loadCatalog(cfg)
	if err != nil {
		appLogger.WithError(err).Error("failed to load catalog", nil)
		os.Exit(1)
	}

	// Redis is optional: without it distance lookups just skip the cache.
	var cache *database.RedisClient
	if cfg.Redis.Address != "" {
		cache, err = database.NewRedis(cfg.Redis)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err = cache.Ping(ctx)
			cancel()
		}
		if err != nil {
			appLogger.WithError(err).Warn("redis unavailable, distance cache disabled", nil)
			cache = nil
		} else {
			defer cache.Close()
		}
	}

	matcher := lexical.NewMatcher(cat)

	var extractor resolve.Extractor
	genaiCfg := extract.FromAppConfig(cfg)
	if genaiCfg.Enabled() {
		ex, err := extract.New(genaiCfg, cat, appLogger)
		if err != nil {
			appLogger.WithError(err).Error("failed to build extractor", nil)
			os.Exit(1)
		}
		extractor = ex
	} else {
		appLogger.Warn("interpretive extraction disabled, lexical matcher only", nil)
	}

	resolver := resolve.New(extractor, matcher, cat, appLogger)
	estimator := travel.New(travel.FromAppConfig(cfg), cache, appLogger)

	var labeler quote.ImageLabeler
	visionCfg := vision.FromAppConfig(cfg)
	if visionCfg.Enabled() {
		labeler = vision.New(visionCfg, appLogger)
	}

	var notifier quote.Notifier
	if cfg.Notifications.Email.Enabled {
		sesClient, err := aws.NewSESClient(context.Background(), cfg.Notifications.AWS.Region)
		if err != nil {
			appLogger.WithError(err).Warn("ses unavailable, quote emails disabled", nil)
		} else {
			notifier = notify.NewEmailNotifier(sesClient, cfg.Notifications.Email.FromEmail, appLogger)
		}
	}

	svc := quote.New(resolver, pricing.New(cat), estimator, labeler, notifier, obs, appLogger)
	srv := server.New(cfg.Server, svc, appLogger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		appLogger.Info("shutting down", map[string]interface{}{"signal": sig.String()})
	case err := <-errCh:
		if err != nil {
			appLogger.WithError(err).Error("server failed", nil)
			os.Exit(1)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.WithError(err).Error("shutdown failed", nil)
	}
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.Catalog.Path)
}
