package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomeworks/verba/pkg/verba"
	"github.com/tomeworks/verba/pkg/verba/fetch"
	"github.com/tomeworks/verba/pkg/verba/store/memstore"
)

func TestCollectLocatorsMergesFileAndArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locators.txt")
	content := "https://example.com/a.txt\n" +
		"\n" +
		"# a comment line\n" +
		"  https://example.com/b.txt  \n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	locators, err := collectLocators([]string{"https://example.com/c.txt"}, path)
	if err != nil {
		t.Fatalf("collectLocators failed: %v", err)
	}

	want := []string{
		"https://example.com/a.txt",
		"https://example.com/b.txt",
		"https://example.com/c.txt",
	}
	if len(locators) != len(want) {
		t.Fatalf("got %d locators %v, want %d", len(locators), locators, len(want))
	}
	for i := range want {
		if locators[i] != want[i] {
			t.Errorf("locators[%d] = %q, want %q", i, locators[i], want[i])
		}
	}
}

func TestCollectLocatorsWithoutFile(t *testing.T) {
	locators, err := collectLocators([]string{"https://example.com/only.txt"}, "")
	if err != nil {
		t.Fatalf("collectLocators failed: %v", err)
	}
	if len(locators) != 1 || locators[0] != "https://example.com/only.txt" {
		t.Errorf("locators = %v", locators)
	}
}

func TestCollectLocatorsMissingFile(t *testing.T) {
	if _, err := collectLocators(nil, filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("collectLocators should fail for a missing file")
	}
}

func TestRunBatchContinuesPastFailures(t *testing.T) {
	pages := map[string]string{
		"https://example.com/good.txt":  "Title: Good Doc\nword word word",
		"https://example.com/other.txt": "Title: Other Doc\nalpha beta alpha",
	}
	fetcher := fetch.Func(func(_ context.Context, locator string) ([]byte, error) {
		body, ok := pages[locator]
		if !ok {
			return nil, fmt.Errorf("no route to host")
		}
		return []byte(body), nil
	})

	svc, err := verba.New(verba.Options{Store: memstore.New(), Fetcher: fetcher})
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()

	ingested, failed := runBatch(context.Background(), svc, []string{
		"https://example.com/good.txt",
		"https://example.com/missing.txt",
		"https://example.com/other.txt",
	})

	if ingested != 2 {
		t.Errorf("ingested = %d, want 2", ingested)
	}
	if failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}

	ranking, err := svc.Lookup(context.Background(), "Other Doc")
	if err != nil {
		t.Fatalf("doc after the failure was not stored: %v", err)
	}
	if len(ranking) == 0 || ranking[0].Word != "alpha" {
		t.Errorf("ranking = %v, want alpha on top", ranking)
	}
}
