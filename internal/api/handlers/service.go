package handlers

import (
	"context"
	"time"

	"github.com/tomeworks/verba/pkg/verba/report"
	"github.com/tomeworks/verba/pkg/verba/store"
)

// Service is the handlers' view of the verba facade.
type Service interface {
	Ingest(ctx context.Context, locator string) (report.Report, error)
	Lookup(ctx context.Context, title string) ([]store.WordCount, error)
	Documents(ctx context.Context, limit int) ([]store.Doc, error)
}

// RankingRow is one word of a ranking as rendered to clients.
type RankingRow struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// DocumentView is a stored document as rendered to clients.
type DocumentView struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Locator        string    `json:"locator"`
	LastIngestedAt time.Time `json:"last_ingested_at"`
}

// toRankingRows always yields a non-nil slice so an empty ranking encodes
// as [] rather than null.
func toRankingRows(ranking []store.WordCount) []RankingRow {
	rows := make([]RankingRow, 0, len(ranking))
	for _, wc := range ranking {
		rows = append(rows, RankingRow{Word: wc.Word, Count: wc.Count})
	}
	return rows
}

func toDocumentViews(docs []store.Doc) []DocumentView {
	views := make([]DocumentView, 0, len(docs))
	for _, d := range docs {
		views = append(views, DocumentView{
			ID:             d.ID,
			Title:          d.Title,
			Locator:        d.Locator,
			LastIngestedAt: d.LastIngestedAt,
		})
	}
	return views
}
