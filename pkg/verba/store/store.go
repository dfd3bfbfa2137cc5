package store

import (
	"context"
	"time"
)

// Store persists documents and their word-frequency rankings.
type Store interface {
	Close() error

	// GetOrCreateDoc returns the document identified by (title, locator),
	// creating it if it does not exist yet. Repeated calls never produce a
	// second row and never change a stored title or locator.
	GetOrCreateDoc(ctx context.Context, title, locator string) (Doc, error)

	// ReplaceRanking atomically swaps the document's stored ranking for the
	// given one; a partially replaced ranking is never observable. Returns
	// internalerr.ErrNotFound when no document has the given id.
	ReplaceRanking(ctx context.Context, docID int64, ranking []WordCount) error

	// RankingByTitle returns the stored ranking for the document with the
	// given title, in rank order. When several documents share a title the
	// most recently ingested one wins. Returns internalerr.ErrNotFound when
	// no document matches; a matching document with no ranking rows yields
	// an empty result and a nil error.
	RankingByTitle(ctx context.Context, title string) ([]WordCount, error)

	// RecentDocs lists documents, most recently ingested first.
	RecentDocs(ctx context.Context, limit int) ([]Doc, error)
}

// Doc represents a stored document. Title and Locator together form the
// document's natural key and never change once the row exists.
type Doc struct {
	ID             int64
	Title          string
	Locator        string
	LastIngestedAt time.Time
}

// WordCount is one row of a document's ranking.
type WordCount struct {
	Word  string
	Count int
}
