package main

// Apply or inspect the schema:
//   go run ./cmd/migrate [up|down|status|version]

import (
	"context"
	"os"
	"os/signal"
	"time"

	"jobassist-backend/internal/shared/config"
	"jobassist-backend/internal/shared/storage/db"
	"jobassist-backend/internal/shared/telemetry"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	started := time.Now()
	if err := migrate(ctx, config.Load(), command); err != nil {
		telemetry.Error("migrate.failed", map[string]any{"command": command, "error": err.Error()})
		os.Exit(1)
	}
	telemetry.Info("migrate.done", map[string]any{"command": command, "took": time.Since(started).String()})
}

func migrate(ctx context.Context, cfg config.Config, command string) error {
	conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultMigrateOptions()))
	if err != nil {
		return err
	}
	defer conn.Close()
	return db.Migrate(ctx, conn, command)
}
