package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Nyukimin/otenkibot/internal/adapter/config"
	"github.com/Nyukimin/otenkibot/internal/adapter/line"
	"github.com/Nyukimin/otenkibot/internal/application/bot"
	"github.com/Nyukimin/otenkibot/internal/application/resolver"
	"github.com/Nyukimin/otenkibot/internal/infrastructure/geocoding"
	"github.com/Nyukimin/otenkibot/internal/infrastructure/jma"
	"github.com/Nyukimin/otenkibot/internal/infrastructure/persistence/sqlite"
	"github.com/Nyukimin/otenkibot/internal/logging"
	"github.com/Nyukimin/otenkibot/internal/observability"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	// 依存関係構築
	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	geocoder := geocoding.NewClient(cfg.OpenWeatherAPIKey, cfg.HTTPTimeout, logger)
	jmaClient := jma.NewClient(cfg.HTTPTimeout, logger)
	datasets := jma.NewCachedProvider(jmaClient)

	areaResolver := resolver.New(geocoder, datasets, logger)
	orchestrator := bot.New(store, areaResolver, jmaClient, clockwork.NewRealClock(), logger, metrics)

	sender, err := line.NewSender(cfg.ChannelToken)
	if err != nil {
		return err
	}

	health := observability.NewHealthChecker()
	health.Add("database", observability.PingCheck(store.Ping))
	health.Add("area_dataset", func(ctx context.Context) (bool, string) {
		// 初回のみ気象庁へ取りに行き、以降はキャッシュ応答になる。
		if _, err := datasets.Dataset(ctx); err != nil {
			return false, err.Error()
		}
		return true, "ok"
	})

	handler := line.NewHandler(orchestrator, sender, cfg.ChannelSecret,
		health.Handler(), logger, metrics)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/", handler)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", cfg.ListenAddr)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}
