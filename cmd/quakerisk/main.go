// Command quakerisk fetches the past week of USGS earthquake events, rolls
// them up per state and prints an earthquake risk label for each client
// building. It runs once and exits; a non-zero status means the USGS fetch
// (or the optional Kafka publish) failed.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	kafkaadapter "github.com/couchcryptid/quake-risk-report/internal/adapter/kafka"
	"github.com/couchcryptid/quake-risk-report/internal/adapter/mapbox"
	"github.com/couchcryptid/quake-risk-report/internal/adapter/usgs"
	"github.com/couchcryptid/quake-risk-report/internal/config"
	"github.com/couchcryptid/quake-risk-report/internal/domain"
	"github.com/couchcryptid/quake-risk-report/internal/observability"
	"github.com/couchcryptid/quake-risk-report/internal/pipeline"
	"github.com/couchcryptid/quake-risk-report/internal/report"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()
	defer writeMetrics(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := usgs.NewClient(cfg, clock, metrics, logger)

	var resolver domain.StateResolver
	if cfg.MapboxEnabled {
		resolver = mapbox.NewCachedResolver(
			mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger),
			cfg.MapboxCacheSize, metrics,
		)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox state resolution enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Debug("mapbox state resolution disabled")
	}

	var publisher pipeline.Publisher
	if cfg.PublishEnabled() {
		writer := kafkaadapter.NewWriter(cfg, clock, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		publisher = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(client, resolver, publisher, cfg, domain.DefaultClientLocations(), logger, metrics)
	out := report.New(os.Stdout, cfg.PreviewRows, cfg.ExcludedStates)

	window := client.Window(cfg.DaysBack)
	if err := out.Fetching(window.Start, window.End); err != nil {
		logger.Error("write report", "error", err)
		return 1
	}

	res, err := p.Run(ctx, window)
	if err != nil {
		logger.Error("earthquake fetch failed", "error", err)
		return 1
	}

	if err := out.Render(res); err != nil {
		logger.Error("write report", "error", err)
		return 1
	}

	publishCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := p.Publish(publishCtx, res); err != nil {
		logger.Error("publish assessments failed", "error", err)
		return 1
	}

	return 0
}

// writeMetrics dumps the default registry for the node_exporter textfile
// collector when METRICS_TEXTFILE is set.
func writeMetrics(cfg *config.Config, logger *slog.Logger) {
	if cfg.MetricsTextfile == "" {
		return
	}
	if err := prometheus.WriteToTextfile(cfg.MetricsTextfile, prometheus.DefaultGatherer); err != nil {
		logger.Error("write metrics textfile", "error", err, "path", cfg.MetricsTextfile)
	}
}
