package seaservice

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/seabook/internal/dbx"
	"github.com/dmitrijs2005/seabook/internal/logging"
	"github.com/dmitrijs2005/seabook/internal/migrations"
	"github.com/pressly/goose/v3"
)

const (
	tableName        = "sea_service_records"
	singleDraftIndex = "sea_service_single_draft"
)

type column struct {
	name string
	ddl  string
}

// currentColumns is the full current shape. Only appended to; every entry
// must be addable to an existing table, so NOT NULL columns carry a default.
var currentColumns = []column{
	{"id", "TEXT"},
	{"ship_name", "TEXT"},
	{"imo_number", "TEXT"},
	{"payload_json", "TEXT NOT NULL DEFAULT '{}'"},
	{"status", "TEXT NOT NULL DEFAULT 'DRAFT'"},
	{"last_updated_at", "INTEGER NOT NULL DEFAULT 0"},
	{"remote_id", "TEXT"},
	{"sync_state", "TEXT NOT NULL DEFAULT 'LOCAL_ONLY'"},
	{"created_at", "INTEGER NOT NULL DEFAULT 0"},
	{"updated_at", "INTEGER NOT NULL DEFAULT 0"},
}

// Open opens (or creates) the SQLite store at dsn and brings its schema up to
// date. The returned handle is owned by the caller.
func Open(ctx context.Context, dsn string, logger logging.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer; also keeps a :memory: database on a single connection.
	db.SetMaxOpenConns(1)

	if err := Migrate(ctx, db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies the embedded migrations, reconciles missing columns and
// installs the single-draft index. It is safe to run on every start.
func Migrate(ctx context.Context, db *sql.DB, logger logging.Logger) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(gooseLogger{ctx: ctx, l: logger})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := reconcileColumns(ctx, tx, logger); err != nil {
			return err
		}
		return ensureIndexes(ctx, tx, logger)
	})
}

func reconcileColumns(ctx context.Context, tx dbx.DBTX, logger logging.Logger) error {
	existing, err := dbx.Columns(ctx, tx, tableName)
	if err != nil {
		return err
	}
	for _, c := range currentColumns {
		if _, ok := existing[c.name]; ok {
			continue
		}
		q := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", tableName, c.name, c.ddl)
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("failed to add column %s: %w", c.name, err)
		}
		logger.Info(ctx, "added missing column", "table", tableName, "column", c.name)
	}
	return nil
}

func ensureIndexes(ctx context.Context, tx dbx.DBTX, logger logging.Logger) error {
	if _, err := tx.ExecContext(ctx,
		`CREATE INDEX IF NOT EXISTS sea_service_status_updated ON sea_service_records (status, updated_at)`); err != nil {
		return fmt.Errorf("failed to create status index: %w", err)
	}

	var drafts int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sea_service_records WHERE status = 'DRAFT'`).Scan(&drafts); err != nil {
		return fmt.Errorf("failed to count drafts: %w", err)
	}
	if drafts > 1 {
		// Deleting a draft to satisfy the index would lose user data.
		logger.Error(ctx, "multiple drafts stored, single-draft index not installed", "drafts", drafts)
		return nil
	}

	q := fmt.Sprintf(`CREATE UNIQUE INDEX IF NOT EXISTS %s ON %s (status) WHERE status = 'DRAFT'`,
		singleDraftIndex, tableName)
	if _, err := tx.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("failed to create single-draft index: %w", err)
	}
	return nil
}

type gooseLogger struct {
	ctx context.Context
	l   logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Debug(g.ctx, fmt.Sprintf(format, v...), "component", "goose")
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(g.ctx, fmt.Sprintf(format, v...), "component", "goose")
}
