package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/emberlab/firefetch/internal/catalog"
	"github.com/emberlab/firefetch/internal/config"
	"github.com/emberlab/firefetch/internal/exitcode"
	"github.com/emberlab/firefetch/internal/fetch"
	"github.com/emberlab/firefetch/internal/loader"
	"github.com/emberlab/firefetch/internal/model"
	"github.com/emberlab/firefetch/internal/observability"
	"github.com/emberlab/firefetch/internal/storage"
)

func main() {
	// Parse CLI flags; everything else comes from the environment.
	inputFlag := flag.String("input", "", "Input CSV of fire detections (overrides INPUT_CSV)")
	outputFlag := flag.String("output", "", "Output directory for thumbnails (overrides OUTPUT_DIR)")
	runIDFlag := flag.String("run-id", "", "Run identifier (UUIDv7 from orchestration; generated when absent)")
	flag.Parse()

	// Ensure environment variables are loaded
	if err := godotenv.Load(); err != nil {
		slog.Warn("failed to load env vars", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		fmt.Fprintf(os.Stderr, "Usage: %v\n", err)
		os.Exit(exitcode.ConfigError)
	}
	if *inputFlag != "" {
		cfg.InputCSV = *inputFlag
	}
	if *outputFlag != "" {
		cfg.OutputDir = *outputFlag
	}

	logger := observability.NewLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	runID := model.RunID(*runIDFlag)
	if runID == "" {
		runID = model.NewRunID()
	} else if err := runID.Validate(); err != nil {
		slog.Error("invalid run-id", "error", err)
		fmt.Fprintf(os.Stderr, "Usage: run-id must be a UUIDv7\n")
		os.Exit(exitcode.ConfigError)
	}

	// Create a cancellable context (for graceful shutdown)
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metrics := observability.NewMetrics()
	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, metrics, logger)
	}

	client := catalog.NewClient(catalog.Config{
		BaseURL:       cfg.CatalogBaseURL,
		APIKey:        cfg.CatalogAPIKey,
		Project:       cfg.CatalogProject,
		Timeout:       cfg.HTTPTimeout,
		CloudCoverMax: cfg.CloudCoverMax,
		ThumbSize:     cfg.ThumbSize,
		VisMin:        cfg.VisMin,
		VisMax:        cfg.VisMax,
		RetryAttempts: cfg.RetryAttempts,
	})

	if err := client.Authenticate(ctx); err != nil {
		logger.Error("catalog authentication failed", "error", err)
		os.Exit(exitcode.AuthError)
	}

	events, err := loader.Load(cfg.InputCSV)
	if err != nil {
		logger.Error("failed to load fire events", "path", cfg.InputCSV, "error", err)
		os.Exit(exitcode.DataError)
	}
	if len(events) == 0 {
		logger.Warn("no usable fire events in input", "path", cfg.InputCSV)
		os.Exit(exitcode.Success)
	}
	logger.Info("loaded fire events", "count", len(events), "path", cfg.InputCSV)

	var mirror storage.ObjectStorage
	if cfg.MirrorEnabled() {
		minioClient, err := storage.NewMinIOClient(ctx, storage.MinIOConfig{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			Bucket:    cfg.MinIOBucket,
			UseSSL:    cfg.MinIOUseSSL,
		})
		if err != nil {
			logger.Error("failed to initialize minio client", "error", err)
			os.Exit(exitcode.StorageError)
		}
		mirror = minioClient
		logger.Info("object-storage mirror enabled", "bucket", cfg.MinIOBucket)
	}

	store, err := storage.NewStore(cfg.OutputDir, mirror, runID)
	if err != nil {
		logger.Error("failed to prepare output directory", "dir", cfg.OutputDir, "error", err)
		os.Exit(exitcode.StorageError)
	}

	dispatcher := fetch.NewDispatcher(client, store, logger, metrics, fetch.Options{
		Workers:          cfg.Workers,
		BufferDeg:        cfg.BufferDeg,
		FilenameWithDate: cfg.FilenameWithDate,
	})

	start := time.Now()
	results := dispatcher.Run(ctx, events)
	ok, skipped, failed := summarize(results)

	logger.Info("run complete",
		"run_id", runID,
		"ok", ok,
		"skipped", skipped,
		"failed", failed,
		"duration", time.Since(start).String(),
		"output_dir", cfg.OutputDir)

	os.Exit(exitcode.Success)
}

// summarize tallies terminal statuses across a run's results.
func summarize(results []model.DownloadResult) (ok, skipped, failed int) {
	for _, res := range results {
		switch res.Status {
		case model.StatusOK:
			ok++
		case model.StatusSkipped:
			skipped++
		case model.StatusFailed:
			failed++
		}
	}
	return ok, skipped, failed
}

func serveMetrics(addr string, metrics *observability.Metrics, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	logger.Info("metrics listener started", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics listener stopped", "error", err)
	}
}
