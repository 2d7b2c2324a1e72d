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

	"go.uber.org/zap"

	"github.com/questmap/questmap-backend/config"
	httpapi "github.com/questmap/questmap-backend/internal/api/http"
	"github.com/questmap/questmap-backend/internal/bootstrap"
	"github.com/questmap/questmap-backend/internal/observability"
	"github.com/questmap/questmap-backend/internal/questgraph/locale"
	"github.com/questmap/questmap-backend/internal/questgraph/repository"
	"github.com/questmap/questmap-backend/internal/questgraph/service"
)

const serviceName = "questmap-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := bootstrap.NewLogger(cfg.App.Environment, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)
	metrics := observability.NewCollector("questmap")

	var catalog *locale.Catalog
	if cfg.Data.LocaleDir != "" {
		c, err := locale.LoadDir(cfg.Data.LocaleDir, cfg.Data.DefaultLang)
		if err != nil {
			return err
		}
		catalog = c
		logger.Info("locales loaded", zap.Strings("languages", c.Languages()))
	}

	opts := service.Options{
		DataPath: cfg.Data.Path,
		Catalog:  catalog,
		Metrics:  metrics,
		Logger:   logger,
	}

	var pinger httpapi.Pinger
	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Cache.RedisAddr,
		Password: cfg.Cache.RedisPassword,
		DB:       cfg.Cache.RedisDB,
	})
	switch {
	case err != nil:
		logger.Warn("view cache disabled", zap.Error(err))
	case rdb != nil:
		defer rdb.Close()
		viewCache := repository.NewViewCache(rdb, cfg.Cache.TTL)
		opts.Cache = viewCache
		pinger = viewCache
	}

	svc, err := service.New(opts)
	if err != nil {
		return err
	}

	reloader, err := bootstrap.StartReloader(cfg.Data.ReloadSchedule, svc, logger)
	if err != nil {
		return err
	}
	if reloader != nil {
		defer reloader.Stop()
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		DefaultLang:    cfg.Data.DefaultLang,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		Graph:          svc,
		Cache:          pinger,
		Metrics:        metrics,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
