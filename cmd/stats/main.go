package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"relay/cmd"
	"relay/internal/core/application/usecases/queries"

	"github.com/labstack/gommon/log"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	db, err := cmd.OpenDatabase(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db, slog.New(slog.NewTextHandler(io.Discard, nil)))
	defer func() { _ = app.Close() }()

	stats, err := app.CreateGetStatsQueryHandler().Handle(context.Background(), queries.NewGetStatsQuery())
	if err != nil {
		log.Fatalf("Error collecting stats: %v", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err = enc.Encode(stats); err != nil {
		log.Fatalf("Error writing stats: %v", err)
	}
}
