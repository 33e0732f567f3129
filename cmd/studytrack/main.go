package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"studytrack/internal/auth"
	"studytrack/internal/config"
	"studytrack/internal/storage"
	"studytrack/internal/web"
)

func main() {
	// 1. Define and parse command-line flags
	flags := pflag.NewFlagSet("studytrack", pflag.ExitOnError)
	flags.String("config", "", "Path to a YAML config file")
	flags.String("addr", ":8080", "Address to listen on")
	flags.String("db", "studytrack.db", "Path to the SQLite database file")
	flags.Parse(os.Args[1:])

	// 2. Load the layered configuration (file < env < flags)
	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 3. Open the database
	db, err := storage.Open(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	slog.Info("Database opened", "path", cfg.DB)

	// 4. Wire the account provider and the server
	if cfg.JWTSecret == "" {
		slog.Warn("No jwt_secret configured; sessions will not survive a restart")
	}
	authSvc := auth.NewService(db, cfg.JWTSecret)
	server := web.NewServer(db, authSvc, cfg.Journal.ReposDir)

	slog.Info("Listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, server); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
