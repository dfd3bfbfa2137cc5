package report

import (
	"sync"
	"testing"
	"time"

	"github.com/tomeworks/verba/pkg/verba/store"
)

func TestBuildCarriesDocumentFields(t *testing.T) {
	b := NewBuilder()
	doc := store.Doc{
		ID:             7,
		Title:          "Moby Dick",
		Locator:        "https://example.com/moby",
		LastIngestedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	ranking := []store.WordCount{{Word: "whale", Count: 12}}

	r := b.Build(doc, ranking, 345)

	if r.ID == "" {
		t.Error("Report should carry a ULID")
	}
	if r.DocID != 7 || r.Title != "Moby Dick" || r.Locator != "https://example.com/moby" {
		t.Errorf("Document fields not carried: %+v", r)
	}
	if r.TokenCount != 345 {
		t.Errorf("TokenCount: got %d, want 345", r.TokenCount)
	}
	if !r.IngestedAt.Equal(doc.LastIngestedAt) {
		t.Errorf("IngestedAt: got %v, want %v", r.IngestedAt, doc.LastIngestedAt)
	}
	if len(r.Ranking) != 1 || r.Ranking[0].Word != "whale" {
		t.Errorf("Ranking not carried: %v", r.Ranking)
	}
}

func TestBuildCopiesRanking(t *testing.T) {
	b := NewBuilder()
	ranking := []store.WordCount{{Word: "whale", Count: 12}}

	r := b.Build(store.Doc{ID: 1}, ranking, 1)
	ranking[0] = store.WordCount{Word: "mutated", Count: 0}

	if r.Ranking[0].Word != "whale" {
		t.Errorf("Report ranking should be an owned copy, got %v", r.Ranking)
	}
}

func TestBuildIDsUniqueAndOrdered(t *testing.T) {
	b := NewBuilder()
	doc := store.Doc{ID: 1, Title: "Doc"}

	var prev string
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		r := b.Build(doc, nil, 0)
		if seen[r.ID] {
			t.Fatalf("Duplicate ULID generated: %s", r.ID)
		}
		seen[r.ID] = true
		if prev != "" && r.ID <= prev {
			t.Fatalf("IDs should increase within a builder: %s then %s", prev, r.ID)
		}
		prev = r.ID
	}
}

func TestBuildConcurrent(t *testing.T) {
	b := NewBuilder()
	doc := store.Doc{ID: 1}

	const workers = 8
	const perWorker = 100

	var mu sync.Mutex
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				r := b.Build(doc, nil, 0)
				mu.Lock()
				if seen[r.ID] {
					t.Errorf("Duplicate ULID under concurrency: %s", r.ID)
				}
				seen[r.ID] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Errorf("Expected %d distinct IDs, got %d", workers*perWorker, len(seen))
	}
}
