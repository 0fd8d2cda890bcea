package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camuig/clac/internal/ai"
	"github.com/camuig/clac/internal/config"
	"github.com/camuig/clac/internal/logger"
	"github.com/camuig/clac/internal/scheduler"
	"github.com/camuig/clac/internal/stocks"
	"github.com/camuig/clac/internal/storage"
	"github.com/camuig/clac/internal/telegram"
	"github.com/camuig/clac/internal/upbit"
	"github.com/camuig/clac/internal/web"
	"github.com/camuig/clac/internal/yahoo"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	dbPath := flag.String("db", "", "path to SQLite database (overrides history.db_path)")
	flag.Parse()

	// A missing config.yaml is fine unless -config was given explicitly.
	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})

	// Load config
	cfg, err := config.Load(*configPath, !explicit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.History.DBPath = *dbPath
	}

	// Init logger
	log := logger.New(cfg.Logging.Level)
	log.Info("starting clac", "port", cfg.Web.Port)

	// Init database
	db, err := storage.NewDatabase(cfg.History.DBPath)
	if err != nil {
		log.Error("database init failed", "error", err)
		os.Exit(1)
	}
	defer storage.Close(db)
	repo := storage.NewRepository(db, cfg.History.MaxItems)

	catalog, err := stocks.Load(cfg.Stocks.CatalogPath)
	if err != nil {
		log.Error("stock catalog load failed", "error", err)
		os.Exit(1)
	}
	log.Info("stock catalog loaded", "stocks", catalog.Len())

	// Context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init services
	upbitClient := upbit.NewClient(cfg, log)
	yahooClient := yahoo.NewClient(cfg, log)
	notifier := telegram.NewNotifier(cfg, log)
	advisor := ai.NewAdvisor(cfg, log)
	sched := scheduler.NewScheduler(upbitClient, cfg, log)
	webServer := web.NewServer(repo, upbitClient, yahooClient, catalog, notifier, advisor, cfg, log)

	// Start scheduler in goroutine
	go sched.Run(ctx)

	// Start web server in goroutine
	go func() {
		if err := webServer.Start(); err != nil {
			log.Error("web server error", "error", err)
			cancel()
		}
	}()

	notifier.NotifyStatus("🧮 clac 계산기 서버 시작")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Info("shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
	}

	// Graceful shutdown
	cancel() // stop scheduler

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := webServer.Shutdown(shutdownCtx); err != nil {
		log.Error("web server shutdown error", "error", err)
	}

	notifier.NotifyStatus("🛑 clac 계산기 서버 종료")
	log.Info("clac stopped")
}
