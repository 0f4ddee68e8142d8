package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"

	"relay/cmd"
	"relay/internal/adapters/in/csvseed"

	"github.com/labstack/gommon/log"
)

func main() {
	usersPath := flag.String("users", "", "users CSV file")
	locationsPath := flag.String("locations", "", "locations CSV file")
	staysPath := flag.String("stays", "", "stays CSV file")
	flag.Parse()

	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	db, err := cmd.OpenDatabase(configs)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	app := cmd.NewCompositionRoot(configs, db, logger)
	defer func() { _ = app.Close() }()

	var files []*os.File
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()
	open := func(path string) io.Reader {
		if path == "" {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("Error opening %s: %v", path, err)
		}
		files = append(files, f)
		return f
	}

	src := csvseed.Sources{
		Users:     open(*usersPath),
		Locations: open(*locationsPath),
		Stays:     open(*staysPath),
	}
	summary, err := app.CreateSeedImporter().Import(context.Background(), src)
	if err != nil {
		log.Fatalf("Error importing seed data: %v", err)
	}
	logger.Info("seed data imported", "users", summary.Users, "locations", summary.Locations, "stays", summary.Stays)
}
