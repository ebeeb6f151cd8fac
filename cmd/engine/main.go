package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"immojobs-engine/internal/classify"
	"immojobs-engine/internal/collect"
	"immojobs-engine/internal/config"
	"immojobs-engine/internal/domain"
	"immojobs-engine/internal/events"
	"immojobs-engine/internal/httpapi"
	"immojobs-engine/internal/scrape"
	"immojobs-engine/internal/scrape/types"
	"immojobs-engine/internal/store"
)

const defaultPort = 38471

func main() {
	// Optional .env for OPENAI_API_KEY during development.
	_ = godotenv.Load()

	// Engine data dir: use env if provided (the shell can pass one), else local folder.
	dataDir := os.Getenv("IMMOJOBS_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir. A second instance would race the
	// failsafe and output files.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("instance lock: %v", err)
	}
	if !locked {
		log.Fatalf("another engine already runs in %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		if cfg.App.DataDir == "" {
			cfg.App.DataDir = dataDir
		}
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	voc := cfg.Vocab()
	col := collect.New(classify.New(voc), voc.StopWords)

	// Reload the last saved collection so the UI has data before the
	// first run.
	outPath := filepath.Join(dataDir, cfg.Output.Filename)
	if saved, err := store.LoadJSON[domain.Job](outPath); err != nil {
		log.Printf("[engine] load %s: %v", outPath, err)
	} else if len(saved) > 0 {
		col.Seed(saved)
		log.Printf("[engine] loaded %d jobs from %s", len(saved), filepath.Base(outPath))
	}

	hub := events.NewHub()

	var scrapeStatus atomic.Value
	scrapeStatus.Store(types.Status{})

	mux := httpapi.NewMux(httpapi.Deps{
		Col:          col,
		Hub:          hub,
		CfgVal:       &cfgVal,
		ScrapeStatus: &scrapeStatus,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		RunScrape: func(ctx context.Context, cfg config.Config, onNewJob func(domain.Job)) (scrape.Result, error) {
			return scrape.NewRunner(cfg, col, onNewJob).Run(ctx)
		},
	})

	port := cfg.App.Port
	if port == 0 {
		port = defaultPort
	}
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler:           httpapi.Chain(mux, httpapi.Cors, httpapi.RequestID, httpapi.Recover, httpapi.AccessLog),
		ReadHeaderTimeout: 5 * time.Second,
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	log.Printf("engine listening on http://%s (data=%s)", addr, dataDir)
	log.Printf("shutdown token: %s", token)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var g errgroup.Group
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
	log.Print("engine stopped")
}
