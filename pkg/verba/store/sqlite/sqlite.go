package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tomeworks/verba/pkg/verba/internalerr"
	"github.com/tomeworks/verba/pkg/verba/store"
)

// sqliteStore implements store.Store on a SQLite database file.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled, creating the file and
// the schema when they do not exist. Opening an already initialized file
// leaves its contents untouched.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, storageErr("open database", err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, storageErr("set journal mode", err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, storageErr("enable foreign keys", err)
	}

	// Wait for a busy writer instead of failing outright
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, storageErr("set busy timeout", err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, storageErr("init schema", err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS documents (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	locator TEXT NOT NULL,
	last_ingested_at INTEGER NOT NULL,
	UNIQUE(title, locator)
);

CREATE INDEX IF NOT EXISTS idx_documents_title ON documents(title);

CREATE TABLE IF NOT EXISTS word_frequencies (
	document_id INTEGER NOT NULL,
	word TEXT NOT NULL,
	count INTEGER NOT NULL,
	position INTEGER NOT NULL,
	UNIQUE(document_id, word),
	FOREIGN KEY(document_id) REFERENCES documents(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// GetOrCreateDoc returns the document for (title, locator), inserting it on
// first sight. Lookup and insert are a single statement, so two racing
// calls still end up with exactly one row.
func (s *sqliteStore) GetOrCreateDoc(ctx context.Context, title, locator string) (store.Doc, error) {
	// The no-op DO UPDATE keeps RETURNING usable on conflict; the stored
	// values never change.
	const stmt = `
INSERT INTO documents (title, locator, last_ingested_at)
VALUES (?, ?, ?)
ON CONFLICT(title, locator) DO UPDATE SET title=excluded.title
RETURNING id, last_ingested_at;
`

	var (
		doc      store.Doc
		ingested int64
	)
	err := s.db.QueryRowContext(ctx, stmt, title, locator, time.Now().UnixNano()).Scan(&doc.ID, &ingested)
	if err != nil {
		return store.Doc{}, storageErr("get or create document", err)
	}

	doc.Title = title
	doc.Locator = locator
	doc.LastIngestedAt = time.Unix(0, ingested)
	return doc, nil
}

// ReplaceRanking swaps the document's stored ranking inside one transaction
// and stamps the document as freshly ingested.
func (s *sqliteStore) ReplaceRanking(ctx context.Context, docID int64, ranking []store.WordCount) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin replace", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE documents SET last_ingested_at=? WHERE id=?`,
		time.Now().UnixNano(), docID)
	if err != nil {
		return storageErr("stamp document", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return storageErr("stamp document", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: document %d", internalerr.ErrNotFound, docID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM word_frequencies WHERE document_id=?`, docID); err != nil {
		return storageErr("clear ranking", err)
	}

	if len(ranking) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO word_frequencies (document_id, word, count, position) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return storageErr("prepare ranking insert", err)
		}
		defer stmt.Close()
		for i, wc := range ranking {
			if wc.Word == "" || wc.Count < 1 {
				continue
			}
			if _, err := stmt.ExecContext(ctx, docID, wc.Word, wc.Count, i); err != nil {
				return storageErr("insert ranking row", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit replace", err)
	}
	return nil
}

// RankingByTitle resolves the title to its most recently ingested document
// and returns that document's ranking in stored order.
func (s *sqliteStore) RankingByTitle(ctx context.Context, title string) ([]store.WordCount, error) {
	var docID int64
	err := s.db.QueryRowContext(ctx, `
SELECT id FROM documents
WHERE title = ?
ORDER BY last_ingested_at DESC, id DESC
LIMIT 1;
`, title).Scan(&docID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: title %q", internalerr.ErrNotFound, title)
	}
	if err != nil {
		return nil, storageErr("resolve title", err)
	}

	return s.loadRanking(ctx, docID)
}

// RecentDocs lists documents, most recently ingested first.
func (s *sqliteStore) RecentDocs(ctx context.Context, limit int) ([]store.Doc, error) {
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT id, title, locator, last_ingested_at FROM documents
ORDER BY last_ingested_at DESC, id DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, storageErr("list documents", err)
	}
	defer rows.Close()

	var docs []store.Doc
	for rows.Next() {
		var (
			doc      store.Doc
			ingested int64
		)
		if err := rows.Scan(&doc.ID, &doc.Title, &doc.Locator, &ingested); err != nil {
			return nil, storageErr("scan document row", err)
		}
		doc.LastIngestedAt = time.Unix(0, ingested)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("read document rows", err)
	}
	return docs, nil
}

func (s *sqliteStore) loadRanking(ctx context.Context, docID int64) ([]store.WordCount, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT word, count FROM word_frequencies
WHERE document_id = ?
ORDER BY position;
`, docID)
	if err != nil {
		return nil, storageErr("load ranking", err)
	}
	defer rows.Close()

	var ranking []store.WordCount
	for rows.Next() {
		var wc store.WordCount
		if err := rows.Scan(&wc.Word, &wc.Count); err != nil {
			return nil, storageErr("scan ranking row", err)
		}
		ranking = append(ranking, wc)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("read ranking rows", err)
	}
	return ranking, nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", internalerr.ErrStorage, op, err)
}
