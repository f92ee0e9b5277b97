package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-portfolio/pkg/portfolio"
)

// Schema creates the tables read by Source.
const Schema = `
CREATE TABLE IF NOT EXISTS portfolio_entry (
	id           UUID PRIMARY KEY,
	content_type TEXT NOT NULL,
	title        TEXT NOT NULL DEFAULT '',
	sort_order   INTEGER NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS portfolio_entry_asset (
	entry_id  UUID NOT NULL REFERENCES portfolio_entry(id) ON DELETE CASCADE,
	field     TEXT NOT NULL,
	position  INTEGER NOT NULL DEFAULT 0,
	many      BOOLEAN NOT NULL DEFAULT false,
	asset_id  TEXT NOT NULL DEFAULT '',
	title     TEXT NOT NULL DEFAULT '',
	file_url  TEXT NOT NULL,
	mime_type TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (entry_id, field, position)
);

CREATE INDEX IF NOT EXISTS portfolio_entry_content_type_idx
	ON portfolio_entry (content_type, sort_order);
`

const entriesQuery = `
	SELECT e.id, e.title, e.created_at,
		COALESCE(a.field, ''), COALESCE(a.many, false), COALESCE(a.asset_id, ''),
		COALESCE(a.title, ''), COALESCE(a.file_url, ''), COALESCE(a.mime_type, '')
	FROM portfolio_entry e
	LEFT JOIN portfolio_entry_asset a ON a.entry_id = e.id
	WHERE e.content_type = $1
	ORDER BY e.sort_order, e.created_at, e.id, a.field, a.position`

// DBTX is an interface that allows us to use either a database connection or a transaction
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Source implements portfolio.Source over a Postgres entry store
type Source struct {
	db DBTX
}

// New creates a new Postgres source
func New(db DBTX) *Source {
	return &Source{db: db}
}

// NewWithPool creates a new Postgres source with connection pool
func NewWithPool(pool *pgxpool.Pool) *Source {
	return &Source{db: pool}
}

// Configured reports whether a database handle was supplied
func (s *Source) Configured() bool {
	return s.db != nil
}

// EnsureSchema creates the entry tables if they do not exist
func (s *Source) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return handlePostgresError("ensure schema", err)
	}
	return nil
}

// GetEntries returns every entry of the queried content type. Asset rows
// with many=true are gathered into []portfolio.Asset in position order;
// others become a single portfolio.Asset.
func (s *Source) GetEntries(ctx context.Context, query portfolio.EntryQuery) ([]portfolio.Entry, error) {
	rows, err := s.db.Query(ctx, entriesQuery, query.ContentType)
	if err != nil {
		return nil, handlePostgresError("get entries", err)
	}
	defer rows.Close()

	var entries []portfolio.Entry
	index := make(map[uuid.UUID]int)

	for rows.Next() {
		var (
			id        uuid.UUID
			title     string
			createdAt time.Time
			field     string
			many      bool
			asset     portfolio.Asset
		)
		if err := rows.Scan(&id, &title, &createdAt, &field, &many,
			&asset.ID, &asset.Title, &asset.FileURL, &asset.ContentType); err != nil {
			return nil, handlePostgresError("scan entry", err)
		}

		i, ok := index[id]
		if !ok {
			e := portfolio.Entry{
				ID:          id.String(),
				ContentType: query.ContentType,
				Fields:      map[string]any{},
			}
			if query.Selects("title") {
				e.Fields["title"] = title
			}
			entries = append(entries, e)
			i = len(entries) - 1
			index[id] = i
		}

		if field == "" || !query.Selects(field) {
			continue
		}
		fields := entries[i].Fields
		if !many {
			fields[field] = asset
			continue
		}
		list, _ := fields[field].([]portfolio.Asset)
		fields[field] = append(list, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, handlePostgresError("read entries", err)
	}

	return entries, nil
}

func handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01": // undefined_table
			return fmt.Errorf("%s: table does not exist - run EnsureSchema: %w", operation, err)
		case "28P01", "28000": // invalid_password, invalid_authorization_specification
			return fmt.Errorf("%s: authentication failed: %w", operation, err)
		default:
			return fmt.Errorf("database error in %s: %s (code: %s): %w", operation, pgErr.Message, pgErr.Code, err)
		}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: record not found: %w", operation, err)
	}
	return fmt.Errorf("database error in %s: %w", operation, err)
}
