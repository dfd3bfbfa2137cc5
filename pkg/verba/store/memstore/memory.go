package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tomeworks/verba/pkg/verba/internalerr"
	"github.com/tomeworks/verba/pkg/verba/store"
)

type naturalKey struct {
	title   string
	locator string
}

// Store is an in-memory implementation of store.Store for tests and
// ephemeral runs. It honors the same contract as the SQLite store,
// including the most-recently-ingested policy for duplicate titles.
type Store struct {
	mu       sync.RWMutex
	nextID   int64
	docs     map[int64]store.Doc
	keyIndex map[naturalKey]int64
	rankings map[int64][]store.WordCount
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		nextID:   1,
		docs:     make(map[int64]store.Doc),
		keyIndex: make(map[naturalKey]int64),
		rankings: make(map[int64][]store.WordCount),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// GetOrCreateDoc returns the document for (title, locator), creating it on
// first sight.
func (s *Store) GetOrCreateDoc(ctx context.Context, title, locator string) (store.Doc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := naturalKey{title: title, locator: locator}
	if id, ok := s.keyIndex[key]; ok {
		return s.docs[id], nil
	}

	doc := store.Doc{
		ID:             s.nextID,
		Title:          title,
		Locator:        locator,
		LastIngestedAt: time.Now(),
	}
	s.nextID++
	s.docs[doc.ID] = doc
	s.keyIndex[key] = doc.ID
	return doc, nil
}

// ReplaceRanking swaps the document's stored ranking for the given one and
// stamps the document as freshly ingested.
func (s *Store) ReplaceRanking(ctx context.Context, docID int64, ranking []store.WordCount) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[docID]
	if !ok {
		return fmt.Errorf("%w: document %d", internalerr.ErrNotFound, docID)
	}

	doc.LastIngestedAt = time.Now()
	s.docs[docID] = doc

	// Same row filter as the SQLite store: blank words and non-positive
	// counts never reach storage.
	rows := make([]store.WordCount, 0, len(ranking))
	for _, wc := range ranking {
		if wc.Word == "" || wc.Count < 1 {
			continue
		}
		rows = append(rows, wc)
	}
	s.rankings[docID] = rows
	return nil
}

// RankingByTitle resolves the title to its most recently ingested document
// and returns that document's ranking in stored order.
func (s *Store) RankingByTitle(ctx context.Context, title string) ([]store.WordCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		best  store.Doc
		found bool
	)
	for _, doc := range s.docs {
		if doc.Title != title {
			continue
		}
		if !found || moreRecent(doc, best) {
			best = doc
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("%w: title %q", internalerr.ErrNotFound, title)
	}

	return copyRanking(s.rankings[best.ID]), nil
}

// RecentDocs lists documents, most recently ingested first.
func (s *Store) RecentDocs(ctx context.Context, limit int) ([]store.Doc, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]store.Doc, 0, len(s.docs))
	for _, doc := range s.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool {
		return moreRecent(docs[i], docs[j])
	})
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// moreRecent orders documents by ingest time, newest first, with the higher
// id winning a timestamp tie so lookups stay deterministic.
func moreRecent(a, b store.Doc) bool {
	if a.LastIngestedAt.Equal(b.LastIngestedAt) {
		return a.ID > b.ID
	}
	return a.LastIngestedAt.After(b.LastIngestedAt)
}

func copyRanking(in []store.WordCount) []store.WordCount {
	if in == nil {
		return nil
	}
	out := make([]store.WordCount, len(in))
	copy(out, in)
	return out
}
