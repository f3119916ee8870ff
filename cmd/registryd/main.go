// Package main provides the registry server that runs all components together:
// - Registry core: collection, mint capability, and token state transitions
// - Event sinks: event log (ClickHouse or memory) plus WebSocket feed
// - HTTP API for transactions and reads, /metrics, /healthz
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"tzar-nft-registry/internal/domain"
	"tzar-nft-registry/internal/events"
	"tzar-nft-registry/internal/feed"
	"tzar-nft-registry/internal/observability"
	"tzar-nft-registry/internal/registry"
	"tzar-nft-registry/internal/storage"
	chstore "tzar-nft-registry/internal/storage/clickhouse"
	"tzar-nft-registry/internal/storage/memory"
	"tzar-nft-registry/internal/storage/migrations"
	pgstore "tzar-nft-registry/internal/storage/postgres"
)

// allStores holds all storage implementations.
type allStores struct {
	collectionStore storage.CollectionStore
	mintCapStore    storage.MintCapStore
	tokenStore      storage.TokenStore
	eventStore      storage.EventStore
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string (optional event log)")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL")
	listenAddr := flag.String("listen-addr", ":8080", "HTTP API listen address")
	metricsAddr := flag.String("metrics-addr", ":9090", "Prometheus metrics HTTP address")
	genesis := flag.String("genesis", os.Getenv("GENESIS_ADDRESS"), "Genesis address that owns the default collection")
	bootstrap := flag.Bool("bootstrap", true, "Create the default collection on startup")

	flag.Parse()

	logger := log.New(os.Stdout, "[registryd] ", log.LstdFlags|log.Lshortfile)

	if !*useMemory && *postgresDSN == "" {
		logger.Fatal("--postgres-dsn is required (use --use-memory for in-memory storage)")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	metrics := observability.NewMetrics("")

	hub := feed.NewHub(metrics, log.New(os.Stdout, "[feed] ", log.LstdFlags))
	defer hub.Close()

	sink := events.NewFanout(events.NewStoreSink(stores.eventStore), hub)

	reg := registry.New(registry.Options{
		CollectionStore: stores.collectionStore,
		MintCapStore:    stores.mintCapStore,
		TokenStore:      stores.tokenStore,
		EventSink:       sink,
		Metrics:         metrics,
		Logger:          logger,
	})

	if *bootstrap {
		genesisAddr, err := resolveGenesis(*genesis)
		if err != nil {
			logger.Fatalf("Invalid genesis address: %v", err)
		}
		coll, err := reg.Bootstrap(ctx, genesisAddr)
		if err != nil {
			logger.Fatalf("Bootstrap failed: %v", err)
		}
		logger.Printf("Default collection ready: %s (creator %s)", coll.CollectionID, coll.Creator)
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	api := newAPIServer(reg, hub, logger)

	apiSrv := &http.Server{
		Addr:              *listenAddr,
		Handler:           api.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Printf("API listening on %s", *listenAddr)
		if err := apiSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("API server error: %v", err)
		}
	}()

	go startMetricsServer(*metricsAddr, logger)

	sig := <-sigCh
	logger.Printf("Received signal %v, shutting down...", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("API shutdown error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// resolveGenesis parses the configured genesis address, generating a fresh
// one when none is given.
func resolveGenesis(s string) (domain.Address, error) {
	if s == "" {
		addr, _, err := domain.GenerateAddress()
		if err != nil {
			return "", fmt.Errorf("generate genesis address: %w", err)
		}
		return addr, nil
	}
	return domain.ParseAddress(s)
}

// createStores creates all required stores. The ClickHouse event log is
// optional; without it events are kept in memory.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		collections := memory.NewCollectionStore()
		stores := &allStores{
			collectionStore: collections,
			mintCapStore:    memory.NewMintCapStore(),
			tokenStore:      memory.NewTokenStore(collections),
			eventStore:      memory.NewEventStore(),
		}
		return stores, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("postgres migrations: %w", err)
	}

	stores := &allStores{
		collectionStore: pgstore.NewCollectionStore(pool),
		mintCapStore:    pgstore.NewMintCapStore(pool),
		tokenStore:      pgstore.NewTokenStore(pool),
		eventStore:      memory.NewEventStore(),
	}

	var chConn *chstore.Conn
	if clickhouseDSN != "" {
		chConn, err = migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("clickhouse migrations: %w", err)
		}
		stores.eventStore = chstore.NewEventStore(chConn)
	}

	cleanup := func() {
		if chConn != nil {
			chConn.Close()
		}
		pool.Close()
	}

	return stores, cleanup, nil
}

// startMetricsServer serves Prometheus metrics and the health check.
func startMetricsServer(addr string, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", observability.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	logger.Printf("Metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && err != http.ErrServerClosed {
		logger.Printf("Metrics server error: %v", err)
	}
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
