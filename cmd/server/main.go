package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	httpadapter "seopilot/internal/adapters/http"
	pg "seopilot/internal/adapters/postgres"
	rediscache "seopilot/internal/adapters/redis"
	"seopilot/internal/config"
	"seopilot/internal/eventbus"
	"seopilot/internal/ports"
	connsvc "seopilot/internal/services/connections"
	reqsvc "seopilot/internal/services/requests"
	scansvc "seopilot/internal/services/scanner"
	scanworker "seopilot/internal/workers/scanrunner"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("warning: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required for Postgres adapters")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := pg.Connect(ctx, cfg.DatabaseURL, cfg.IssueSampleSize)
	if err != nil {
		log.Fatalf("db connect error: %v", err)
	}
	defer db.Close()

	// Optional infrastructure: the service runs without either.
	var cache ports.SnapshotCache
	if cfg.RedisAddr != "" {
		c, err := rediscache.NewCache(cfg.RedisAddr, 5*time.Minute)
		if err != nil {
			log.Printf("redis unavailable, running without health cache: %v", err)
		} else {
			cache = c
			defer c.Close()
		}
	}
	var events ports.EventPublisher
	if cfg.NatsURL != "" {
		p, err := eventbus.NewPublisher(cfg.NatsURL)
		if err != nil {
			log.Printf("nats unavailable, running without scan events: %v", err)
		} else {
			events = p
			defer p.Close()
		}
	}

	connections := connsvc.New(db, cache)
	scanner := scansvc.New(db, db)
	requests := reqsvc.New(db)

	runner := scanworker.Runner{
		Jobs:      db,
		Processor: scanworker.RefreshProcessor{Jobs: db, Conns: db},
		Events:    events,
		Cache:     cache,
	}

	srv := httpadapter.New(connections, scanner, requests, runner)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	// Optional background job workers
	if cfg.ScanWorkers > 0 {
		go runner.Run(ctx, cfg.ScanWorkers, 500*time.Millisecond)
		log.Printf("scan workers started: %d", cfg.ScanWorkers)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- http.ListenAndServe(cfg.ListenAddr, r) }()
	log.Printf("listening on %s", cfg.ListenAddr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("shutting down on %s", sig)
		cancel()
		time.Sleep(300 * time.Millisecond)
	case err := <-errCh:
		log.Fatal(fmt.Errorf("server error: %w", err))
	}
}
