package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/tomeworks/verba/pkg/verba"
	"github.com/tomeworks/verba/pkg/verba/config"
	"github.com/tomeworks/verba/pkg/verba/fetch"
	"github.com/tomeworks/verba/pkg/verba/store/sqlite"
)

func main() {
	godotenv.Load()

	var (
		configPath  = flag.String("config", "", "Config file (YAML, optional)")
		dbPath      = flag.String("db", "", "Database path (overrides config)")
		locatorFile = flag.String("f", "", "File with one locator per line (optional)")
	)
	flag.Parse()

	locators, err := collectLocators(flag.Args(), *locatorFile)
	if err != nil {
		log.Fatal(err)
	}
	if len(locators) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: verba-ingest [-config config.yaml] [-db verba.db] [-f locators.txt] [locator ...]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config:", err)
	}
	if *dbPath != "" {
		cfg.Store.Path = *dbPath
	}

	ctx := context.Background()

	st, err := sqlite.Open(ctx, cfg.Store.Path)
	if err != nil {
		log.Fatal("failed to open store:", err)
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
		log.Fatal("failed to build service:", err)
	}
	defer svc.Close()

	ingested, failed := runBatch(ctx, svc, locators)
	log.Printf("done: %d ingested, %d failed", ingested, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// collectLocators merges the locator file (one per line, blank lines and #
// comments skipped) with the positional arguments.
func collectLocators(args []string, filePath string) ([]string, error) {
	var locators []string

	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("read locator file: %w", err)
		}
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			locators = append(locators, line)
		}
	}

	for _, arg := range args {
		if arg = strings.TrimSpace(arg); arg != "" {
			locators = append(locators, arg)
		}
	}

	return locators, nil
}

// runBatch ingests the locators one at a time, continuing past failures.
func runBatch(ctx context.Context, svc *verba.Verba, locators []string) (ingested, failed int) {
	for _, locator := range locators {
		r, err := svc.Ingest(ctx, locator)
		if err != nil {
			log.Printf("failed %s: %v", locator, err)
			failed++
			continue
		}
		top := "none"
		if len(r.Ranking) > 0 {
			top = fmt.Sprintf("%s x%d", r.Ranking[0].Word, r.Ranking[0].Count)
		}
		log.Printf("ingested %q from %s (%d ranked words, top %s)", r.Title, locator, len(r.Ranking), top)
		ingested++
	}
	return ingested, failed
}
