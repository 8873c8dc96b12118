package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/agenthands/versorium/internal/config"
	"github.com/agenthands/versorium/internal/core"
	"github.com/agenthands/versorium/internal/core/extraction"
	"github.com/agenthands/versorium/internal/driver"
	"github.com/agenthands/versorium/internal/llm"
	"github.com/agenthands/versorium/internal/logger"
	"github.com/agenthands/versorium/internal/server"
	"github.com/agenthands/versorium/internal/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	lg, err := logger.New(cfg.Log.Mode)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer lg.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	extractor, err := buildExtractor(ctx, cfg)
	if err != nil {
		lg.Fatal("failed to build extractor", "error", err)
	}

	st, err := openStore(ctx, cfg, lg)
	if err != nil {
		lg.Fatal("failed to open store", "backend", cfg.Store.Backend, "error", err)
	}

	engine := core.NewEngine(cfg, extractor, st, lg)
	if st != nil && cfg.Store.LoadOnStart {
		if err := engine.LoadSnapshot(ctx); err != nil {
			lg.Fatal("failed to restore graph", "error", err)
		}
		lg.Info("graph restored", "forms", len(engine.Graph.Forms()))
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.NewServer(engine, lg).SetupRouter(),
	}

	if err := serve(ctx, srv, engine, cfg.Store.SaveOnShutdown, lg); err != nil {
		lg.Error("server failed", "error", err)
		lg.Sync()
		os.Exit(1)
	}
}

// serve runs srv until ctx is cancelled or the listener fails, then shuts
// down in order: stop HTTP, save the graph if requested, close the store.
func serve(ctx context.Context, srv *http.Server, engine *core.Engine, saveOnShutdown bool, lg *logger.Logger) error {
	serveErr := make(chan error, 1)
	go func() {
		lg.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		lg.Info("shutting down")
	case runErr = <-serveErr:
		lg.Error("listener failed, shutting down", "error", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error("server shutdown failed", "error", err)
	}
	if engine.Store != nil && saveOnShutdown {
		if err := engine.SaveSnapshot(shutdownCtx); err != nil {
			lg.Error("failed to save graph", "error", err)
		}
	}
	if err := engine.Close(shutdownCtx); err != nil {
		lg.Error("failed to close store", "error", err)
	}
	return runErr
}

func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildExtractor(ctx context.Context, cfg *config.Config) (*extraction.FormExtractor, error) {
	abstraction := strings.ToLower(cfg.Extraction.Abstraction)
	if abstraction != "embedding" && !cfg.Extraction.Symbolic {
		return extraction.NewFormExtractor(&extraction.PlaceholderAbstraction{}, nil), nil
	}

	client, embedder, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	var algo extraction.AbstractionAlgorithm = &extraction.PlaceholderAbstraction{}
	if abstraction == "embedding" {
		if embedder == nil {
			return nil, fmt.Errorf("provider %q has no embedding support", cfg.LLM.Provider)
		}
		algo = extraction.NewEmbeddingAbstraction(embedder)
	}

	var symbolic extraction.SymbolicExtractor
	if cfg.Extraction.Symbolic {
		symbolic = extraction.NewLLMSymbolicExtractor(client, cfg.Extraction.Prompt)
	}
	return extraction.NewFormExtractor(algo, symbolic), nil
}

// openStore returns nil when persistence is disabled.
func openStore(ctx context.Context, cfg *config.Config, lg *logger.Logger) (store.Store, error) {
	switch strings.ToLower(cfg.Store.Backend) {
	case "", "none":
		return nil, nil
	case "memgraph":
		d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password, lg)
		if err != nil {
			return nil, err
		}
		if err := d.BuildIndices(ctx); err != nil {
			_ = d.Close(ctx)
			return nil, err
		}
		return store.NewGraphStore(d, lg), nil
	case "badger":
		bs, err := store.OpenBadgerStore(store.BadgerConfig{
			Path:     cfg.Badger.Path,
			InMemory: cfg.Badger.InMemory,
		}, lg)
		if err != nil {
			return nil, err
		}
		return bs, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
