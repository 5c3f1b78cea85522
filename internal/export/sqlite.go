// Package export writes per-modulus sweep results into a SQLite database so
// they can be queried after the run.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	apperrors "github.com/agbru/fibperiod/internal/errors"
	"github.com/agbru/fibperiod/internal/orchestration"
)

const schema = `
	CREATE TABLE IF NOT EXISTS pisano_results (
		modulus INTEGER PRIMARY KEY,
		period INTEGER NOT NULL,
		covers_all INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sweeps (
		sweep_id INTEGER PRIMARY KEY,
		range_start INTEGER NOT NULL,
		range_end INTEGER NOT NULL,
		covers INTEGER NOT NULL,
		misses INTEGER NOT NULL,
		fraction REAL NOT NULL,
		from_cache INTEGER NOT NULL,
		duration_secs REAL,
		created_at TEXT NOT NULL
	);
`

const upsertResult = `
	INSERT INTO pisano_results (modulus, period, covers_all) VALUES (?, ?, ?)
	ON CONFLICT(modulus) DO UPDATE SET period = excluded.period, covers_all = excluded.covers_all`

const insertSweep = `
	INSERT INTO sweeps (range_start, range_end, covers, misses, fraction, from_cache, duration_secs, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

// SQLiteExporter writes sweep outcomes to the database at Path.
type SQLiteExporter struct {
	Path string
	now  func() time.Time
}

// NewSQLiteExporter returns an exporter for the database file at path.
func NewSQLiteExporter(path string) *SQLiteExporter {
	return &SQLiteExporter{Path: path, now: time.Now}
}

// Export upserts every analyzed modulus and records one sweeps row, all in a
// single transaction. It returns the number of result rows written.
func (e *SQLiteExporter) Export(ctx context.Context, outcome orchestration.SweepOutcome) (int, error) {
	db, err := sql.Open("sqlite", e.Path)
	if err != nil {
		return 0, apperrors.NewIOError("open results database", e.Path, err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return 0, apperrors.NewIOError("create results schema", e.Path, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.NewIOError("begin export", e.Path, err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, upsertResult)
	if err != nil {
		return 0, apperrors.NewIOError("prepare export", e.Path, err)
	}
	defer stmt.Close()

	rows := 0
	for _, r := range outcome.Arrays.Results() {
		if _, err := stmt.ExecContext(ctx, int64(r.Modulus), int64(r.Period), boolToInt(r.CoversAll)); err != nil {
			return 0, apperrors.NewIOError(fmt.Sprintf("insert modulus %d", r.Modulus), e.Path, err)
		}
		rows++
	}

	s := outcome.Summary
	if _, err := tx.ExecContext(ctx, insertSweep,
		int64(outcome.Range.Start),
		int64(outcome.Range.End),
		s.Covers,
		s.Misses,
		s.Fraction,
		boolToInt(outcome.FromCache),
		outcome.Duration.Seconds(),
		e.now().UTC().Format(time.RFC3339),
	); err != nil {
		return 0, apperrors.NewIOError("insert sweep", e.Path, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, apperrors.NewIOError("commit export", e.Path, err)
	}
	return rows, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
