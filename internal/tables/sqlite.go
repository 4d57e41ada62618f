package tables

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpgo/irs-calculator/internal/domain"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite" // driver: sqlite
)

// Amounts are stored as TEXT so that thresholds and rates survive exactly.
const schemaSQLite = `
CREATE TABLE IF NOT EXISTS brackets (
	table_name    TEXT    NOT NULL,
	position      INTEGER NOT NULL,
	min_threshold TEXT    NOT NULL,
	max_threshold TEXT    NOT NULL,
	marginal_rate TEXT    NOT NULL,
	average_rate  TEXT    NOT NULL,
	PRIMARY KEY (table_name, position)
);`

// SQLiteStore keeps named bracket tables in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (or creates) the database at dsn and ensures the schema exists.
func OpenSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite database: %v", domain.ErrConfiguration, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", domain.ErrConfiguration, err)
	}
	if _, err := db.ExecContext(ctx, schemaSQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ensure schema: %v", domain.ErrConfiguration, err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save replaces the rows stored under name with the rows of table.
func (s *SQLiteStore) Save(ctx context.Context, name string, table *domain.BracketTable) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM brackets WHERE table_name = ?`, name); err != nil {
		return fmt.Errorf("clear table %s: %w", name, err)
	}
	for i, r := range table.Rows() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO brackets (table_name, position, min_threshold, max_threshold, marginal_rate, average_rate) VALUES (?, ?, ?, ?, ?, ?)`,
			name, i, r.MinThreshold.String(), r.MaxThreshold.String(), r.MarginalRate.String(), r.RateAtThreshold.String())
		if err != nil {
			return fmt.Errorf("insert row %d of %s: %w", i, name, err)
		}
	}
	return tx.Commit()
}

// Load reads the table stored under name, ordered by position.
func (s *SQLiteStore) Load(ctx context.Context, name string) (*domain.BracketTable, error) {
	rs, err := s.db.QueryContext(ctx,
		`SELECT min_threshold, max_threshold, marginal_rate, average_rate FROM brackets WHERE table_name = ? ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("%w: query table %s: %v", domain.ErrConfiguration, name, err)
	}
	defer rs.Close()

	var rows []domain.BracketRow
	for rs.Next() {
		var cells [4]string
		if err := rs.Scan(&cells[0], &cells[1], &cells[2], &cells[3]); err != nil {
			return nil, fmt.Errorf("%w: scan table %s: %v", domain.ErrConfiguration, name, err)
		}
		var vals [4]decimal.Decimal
		for i, c := range cells {
			v, err := decimal.NewFromString(c)
			if err != nil {
				return nil, fmt.Errorf("%w: table %s row %d: %v", domain.ErrConfiguration, name, len(rows), err)
			}
			vals[i] = v
		}
		rows = append(rows, domain.BracketRow{MinThreshold: vals[0], MaxThreshold: vals[1], MarginalRate: vals[2], RateAtThreshold: vals[3]})
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("%w: read table %s: %v", domain.ErrConfiguration, name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: bracket table %q not found", domain.ErrConfiguration, name)
	}
	return domain.NewBracketTable(name, rows)
}

// Names lists the stored table names.
func (s *SQLiteStore) Names(ctx context.Context) ([]string, error) {
	rs, err := s.db.QueryContext(ctx, `SELECT DISTINCT table_name FROM brackets ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rs.Close()
	var names []string
	for rs.Next() {
		var n string
		if err := rs.Scan(&n); err != nil {
			return nil, fmt.Errorf("list tables: %w", err)
		}
		names = append(names, n)
	}
	return names, rs.Err()
}
