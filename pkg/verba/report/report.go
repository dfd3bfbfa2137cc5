// Package report builds ingest receipts: one Report per successful
// ingestion, identified by a ULID so receipts sort by creation time.
package report

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tomeworks/verba/pkg/verba/store"
)

// Report describes one completed ingestion.
type Report struct {
	ID         string
	DocID      int64
	Title      string
	Locator    string
	Ranking    []store.WordCount
	TokenCount int
	IngestedAt time.Time
}

// Builder mints reports with monotonically increasing ULIDs.
type Builder struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewBuilder creates a report builder.
func NewBuilder() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Build assembles a report for the given document and ranking. The ranking
// slice is copied, so later mutation by the caller cannot change the
// receipt. The monotonic entropy source is not safe for concurrent use, so
// ID minting happens under the builder's lock.
func (b *Builder) Build(doc store.Doc, ranking []store.WordCount, tokenCount int) Report {
	b.mu.Lock()
	id := ulid.MustNew(ulid.Now(), b.entropy).String()
	b.mu.Unlock()

	owned := make([]store.WordCount, len(ranking))
	copy(owned, ranking)

	return Report{
		ID:         id,
		DocID:      doc.ID,
		Title:      doc.Title,
		Locator:    doc.Locator,
		Ranking:    owned,
		TokenCount: tokenCount,
		IngestedAt: doc.LastIngestedAt,
	}
}
