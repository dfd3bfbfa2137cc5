package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/tomeworks/verba/internal/api"
	"github.com/tomeworks/verba/internal/logging"
	"github.com/tomeworks/verba/pkg/verba"
	"github.com/tomeworks/verba/pkg/verba/config"
	"github.com/tomeworks/verba/pkg/verba/fetch"
	"github.com/tomeworks/verba/pkg/verba/store/sqlite"
)

func main() {
	godotenv.Load()

	var (
		configPath = flag.String("config", "", "Config file (YAML, optional)")
		dbPath     = flag.String("db", "", "Database path (overrides config)")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %s\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.Store.Path = *dbPath
	}

	log := logging.New(os.Getenv("VERBA_LOG_LEVEL"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := sqlite.Open(ctx, cfg.Store.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open store: %s\n", err)
		os.Exit(1)
	}

	svc, err := verba.New(verba.Options{
		Store: st,
		Fetcher: &fetch.HTTPFetcher{
			UserAgent:  cfg.Fetch.UserAgent,
			MaxBody:    cfg.Fetch.MaxBodyBytes,
			HTTPClient: &http.Client{Timeout: cfg.Fetch.Timeout()},
		},
		TopN: cfg.Rank.TopWords,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build service: %s\n", err)
		os.Exit(1)
	}
	defer svc.Close()

	server, err := api.New(cfg.Server, log, svc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build server: %s\n", err)
		os.Exit(1)
	}

	if err := server.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
