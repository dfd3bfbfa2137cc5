package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/tomeworks/verba/internal/tui"
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
		log.Fatalf("failed to load config: %v", err)
	}
	if *dbPath != "" {
		cfg.Store.Path = *dbPath
	}

	st, err := sqlite.Open(context.Background(), cfg.Store.Path)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
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
		log.Fatalf("failed to build service: %v", err)
	}
	defer svc.Close()

	if _, err := tea.NewProgram(tui.New(svc), tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
