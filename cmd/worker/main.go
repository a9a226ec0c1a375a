package main

// Consume application events from SQS:
//   EVENTS_SQS_QUEUE_URL=... go run ./cmd/worker

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"jobassist-backend/internal/shared/config"
	"jobassist-backend/internal/shared/telemetry"
)

func main() {
	cfg := config.Load()
	if err := run(cfg); err != nil {
		telemetry.Error("worker.exit", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	queueURL := strings.TrimSpace(cfg.EventsSQSQueueURL)
	if queueURL == "" {
		return errors.New("EVENTS_SQS_QUEUE_URL is required")
	}
	region := cfg.AWSRegion
	if region == "" {
		region = "us-east-1"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return err
	}

	c := &consumer{
		client:      sqs.NewFromConfig(awsCfg),
		queueURL:    queueURL,
		handle:      auditEvent,
		visibility:  int32(envInt("WORKER_VISIBILITY_TIMEOUT_SECONDS", 60)),
		concurrency: envInt("WORKER_CONCURRENCY", 4),
	}
	grace := time.Duration(envInt("WORKER_SHUTDOWN_TIMEOUT_SECONDS", 30)) * time.Second

	telemetry.Info("worker.started", map[string]any{
		"queue":       queueURL,
		"concurrency": c.concurrency,
		"visibility":  c.visibility,
	})
	c.poll(ctx)

	if !c.drain(grace) {
		telemetry.Warn("worker.shutdown_timeout", map[string]any{"grace": grace.String()})
	}
	return nil
}

// envInt reads a positive integer override; anything else keeps def.
func envInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

var _ sqsAPI = (*sqs.Client)(nil)
