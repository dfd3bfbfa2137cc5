// Package verba ingests documents and ranks their most frequent words.
//
// The facade wires the transport collaborator, the markup extractor, the
// frequency ranker, and the document store into one ingestion pipeline:
//
//	locator -> fetch -> extract title+tokens -> rank top N -> persist
//
// and exposes the matching read path, title -> stored ranking.
package verba

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tomeworks/verba/pkg/verba/fetch"
	"github.com/tomeworks/verba/pkg/verba/ingest"
	"github.com/tomeworks/verba/pkg/verba/internalerr"
	"github.com/tomeworks/verba/pkg/verba/rank"
	"github.com/tomeworks/verba/pkg/verba/report"
	"github.com/tomeworks/verba/pkg/verba/store"
)

// DefaultTopN is the ranking size kept per document.
const DefaultTopN = 10

// Options configures a Verba instance. Store is required; everything else
// has a working default.
type Options struct {
	Store   store.Store
	Fetcher fetch.Fetcher
	Titler  ingest.TitleStrategy
	TopN    int
}

// Verba is the ingestion-and-lookup facade.
type Verba struct {
	store     store.Store
	fetcher   fetch.Fetcher
	extractor *ingest.Pipeline
	reports   *report.Builder
	topN      int
}

// New creates a Verba instance from the given options.
func New(opts Options) (*Verba, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("%w: store is required", internalerr.ErrInvalidInput)
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = fetch.NewHTTP(fetch.DefaultTimeout)
	}
	topN := opts.TopN
	if topN <= 0 {
		topN = DefaultTopN
	}

	return &Verba{
		store:     opts.Store,
		fetcher:   fetcher,
		extractor: ingest.NewPipeline(opts.Titler),
		reports:   report.NewBuilder(),
		topN:      topN,
	}, nil
}

// Close releases the underlying store.
func (v *Verba) Close() error {
	return v.store.Close()
}

// Ingest fetches the document behind the locator, ranks its words, and
// persists the ranking, replacing whatever ranking the document had before.
// Nothing is written unless fetch, decode, and ranking all succeed. Failures
// carry one of the internalerr sentinels: ErrInvalidInput for a blank
// locator, ErrFetch for transport trouble, ErrDecode for content that is not
// text, ErrStorage when persistence fails.
func (v *Verba) Ingest(ctx context.Context, locator string) (report.Report, error) {
	if strings.TrimSpace(locator) == "" {
		return report.Report{}, fmt.Errorf("%w: locator must not be blank", internalerr.ErrInvalidInput)
	}

	raw, err := v.fetcher.Fetch(ctx, locator)
	if err != nil {
		return report.Report{}, fmt.Errorf("%w: %s: %w", internalerr.ErrFetch, locator, err)
	}

	text, err := decodeText(raw)
	if err != nil {
		return report.Report{}, fmt.Errorf("%w: %s: %w", internalerr.ErrDecode, locator, err)
	}

	ex := v.extractor.Process(text)
	title := ex.Title
	if !ex.TitleFound {
		title = ingest.UnknownTitle
	}

	ranking := toWordCounts(rank.Top(ex.Tokens, v.topN))

	doc, err := v.store.GetOrCreateDoc(ctx, title, locator)
	if err != nil {
		return report.Report{}, err
	}
	if err := v.store.ReplaceRanking(ctx, doc.ID, ranking); err != nil {
		return report.Report{}, err
	}
	// ReplaceRanking stamped the stored row; mirror that in the receipt.
	doc.LastIngestedAt = time.Now()

	return v.reports.Build(doc, ranking, len(ex.Tokens)), nil
}

// Lookup returns the stored ranking for the document with the given title.
// An unknown title yields internalerr.ErrNotFound; a known title whose
// document has no ranking rows yields an empty slice and a nil error.
func (v *Verba) Lookup(ctx context.Context, title string) ([]store.WordCount, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title must not be blank", internalerr.ErrInvalidInput)
	}
	return v.store.RankingByTitle(ctx, title)
}

// Documents lists ingested documents, most recent first.
func (v *Verba) Documents(ctx context.Context, limit int) ([]store.Doc, error) {
	return v.store.RecentDocs(ctx, limit)
}

// decodeText interprets the fetched bytes as UTF-8 text.
func decodeText(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("content is not valid UTF-8")
	}
	return string(raw), nil
}

func toWordCounts(entries []rank.Entry) []store.WordCount {
	if len(entries) == 0 {
		return nil
	}
	out := make([]store.WordCount, len(entries))
	for i, e := range entries {
		out[i] = store.WordCount{Word: e.Word, Count: e.Count}
	}
	return out
}
