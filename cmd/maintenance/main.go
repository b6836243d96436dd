package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"boardrent-backend/internal/config"
	"boardrent-backend/internal/jobs"
	"boardrent-backend/internal/logger"
	"boardrent-backend/internal/scheduler"
	"boardrent-backend/internal/storage"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('prune-empty-scopes', 'report-storage-stats', 'all')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting storage maintenance runner...", "storage", cfg.Storage.Type)

	gateway, err := openGateway(cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer gateway.Close()

	jobRunner := jobs.NewJobRunner(gateway)

	if *runOnce != "" {
		switch *runOnce {
		case "prune-empty-scopes":
			jobRunner.PruneEmptyScopes()
		case "report-storage-stats":
			jobRunner.ReportStorageStats()
		case "all":
			jobRunner.RunAll()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		return
	}

	sched := scheduler.NewScheduler(jobRunner, cfg.Scheduler)
	sched.Start()
	defer sched.Stop()

	// Block until interrupted
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("Shutdown signal received")
}

// openGateway builds the persistence gateway selected by configuration
func openGateway(cfg *config.Config) (storage.Gateway, error) {
	switch cfg.Storage.Type {
	case "memory":
		return storage.NewMemoryGateway(), nil
	case "sqlite":
		return storage.NewSQLiteGateway(cfg.Storage.Path)
	case "postgres":
		db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, err
		}
		g := storage.NewPostgresGateway(db)
		if err := g.EnsureSchema(context.Background()); err != nil {
			db.Close()
			return nil, err
		}
		return g, nil
	default:
		return storage.NewFileGateway(cfg.Storage.Dir)
	}
}
