package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/airparadis/sentiment-api/config"
	"github.com/airparadis/sentiment-api/internal/api"
	"github.com/airparadis/sentiment-api/internal/clients"
	"github.com/airparadis/sentiment-api/internal/clients/kafka_client"
	"github.com/airparadis/sentiment-api/internal/db"
	"github.com/airparadis/sentiment-api/internal/logging"
	"github.com/airparadis/sentiment-api/internal/normalizer"
	"github.com/airparadis/sentiment-api/internal/reports"
	"github.com/airparadis/sentiment-api/internal/service"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	norm, err := normalizer.New()
	if err != nil {
		slog.Error("[Main] Failed to build text normalizer",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	predictor := service.NewPredictor(service.PredictorConfig{
		ModelPath:       cfg.ModelPath,
		VocabPath:       cfg.VocabPath,
		ORTLibraryPath:  cfg.ORTLibraryPath,
		ModelInputName:  cfg.ModelInputName,
		ModelOutputName: cfg.ModelOutputName,
	}, norm)

	// Artifacts load exactly once, before the listener opens. A failed
	// load is fatal; restart is the only recovery path.
	if err := predictor.Initialize(ctx); err != nil {
		slog.Error("[Main] Failed to load model artifacts",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer predictor.Close()

	handler := api.NewHandler(predictor, buildReportService(ctx, cfg))
	defer clients.CloseValkey()
	defer kafka_client.CloseProducer()

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.Routes(),
	}

	go func() {
		slog.Info("[Main] Sentiment API listening",
			slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed",
				slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("[Main] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("[Main] Graceful shutdown failed",
			slog.String("error", err.Error()))
	}
}

// buildReportService wires the report collaborator from whatever
// infrastructure is configured. Every piece is optional: with nothing
// configured, reports are counted in memory and nobody is notified.
func buildReportService(ctx context.Context, cfg config.Config) *reports.Service {
	var store reports.Store = reports.NewMemoryStore()
	if cfg.ValkeyAddr != "" {
		vc, err := clients.InitValkey(clients.ValkeyConfig{
			Addr:     cfg.ValkeyAddr,
			Password: cfg.ValkeyPassword,
			UseTLS:   cfg.ValkeyTLS,
		})
		if err != nil {
			slog.Warn("[Main] Valkey unavailable, counting reports in memory",
				slog.String("error", err.Error()))
		} else {
			store = reports.NewValkeyStore(vc)
		}
	}

	var notifier reports.Notifier
	if cfg.KafkaBroker != "" {
		if err := kafka_client.InitProducer(cfg.KafkaBroker); err != nil {
			slog.Warn("[Main] Kafka unavailable, report notifications disabled",
				slog.String("error", err.Error()))
		} else {
			notifier = reports.NewKafkaNotifier(cfg.KafkaTopic)
		}
	}

	var archiver reports.Archiver
	if cfg.ReportsTable != "" {
		client, err := clients.GetDynamoDBClient()
		if err != nil {
			slog.Warn("[Main] DynamoDB unavailable, report archiving disabled",
				slog.String("error", err.Error()))
		} else {
			archive := db.NewReportArchive(client, cfg.ReportsTable)
			if err := archive.EnsureTable(ctx); err != nil {
				slog.Warn("[Main] Reports table unavailable, archiving disabled",
					slog.String("error", err.Error()))
			} else {
				archiver = archive
			}
		}
	}

	return reports.NewService(store, notifier, archiver, cfg.NotifyThreshold)
}
