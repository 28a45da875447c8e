package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/feLLpe04/Project3/internal/logging"
	"github.com/feLLpe04/Project3/internal/mortality"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Client wraps the SQLite database holding imported mortality rows.
type Client struct {
	DB     *sql.DB
	path   string
	logger *slog.Logger
}

// Filter narrows QueryMortality. Empty fields do not filter.
type Filter struct {
	Year       string
	CauseGroup string
	Limit      int
}

// Open opens (creating if needed) the database at path and ensures the schema.
func Open(path string, logger *slog.Logger) (*Client, error) {
	if path == "" {
		path = ":memory:"
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// An in-memory database exists per connection.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	client := &Client{DB: db, path: path, logger: logger}
	if err := client.createSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return client, nil
}

func (c *Client) Close() error {
	return c.DB.Close()
}

func (c *Client) createSchema(ctx context.Context) (err error) {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "create_schema")

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS mortality_data (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			year TEXT NOT NULL,
			cause_name TEXT NOT NULL,
			sex TEXT NOT NULL,
			total_deaths REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_mortality_year ON mortality_data(year)`,
		`CREATE INDEX IF NOT EXISTS idx_mortality_cause ON mortality_data(cause_name)`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error creating schema: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// ImportRecords replaces the table contents with records in one transaction.
func (c *Client) ImportRecords(ctx context.Context, records []mortality.Record) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer logging.SafeRollbackWithLogging(tx, c.logger, "import_records")

	if _, err := tx.ExecContext(ctx, `DELETE FROM mortality_data`); err != nil {
		return fmt.Errorf("error clearing mortality_data: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO mortality_data (year, cause_name, sex, total_deaths) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing insert: %w", err)
	}
	defer logging.SafeCloseWithLogging(stmt, c.logger, "import_records_stmt")

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, string(r.Year), r.CauseName, r.Sex, r.TotalDeaths); err != nil {
			return fmt.Errorf("error inserting record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	logging.LogOperation(c.logger, "mortality_data_imported",
		slog.String("db", c.path),
		slog.Int("records", len(records)),
		slog.String("component", "store"))
	return nil
}

// QueryMortality returns stored rows matching the filter, in import order.
// CauseGroup matches cause names by prefix.
func (c *Client) QueryMortality(ctx context.Context, f Filter) (records []mortality.Record, err error) {
	var (
		where []string
		args  []any
	)
	if f.Year != "" {
		where = append(where, "year = ?")
		args = append(args, mortality.NormalizeYear(f.Year))
	}
	if f.CauseGroup != "" {
		where = append(where, `cause_name LIKE ? ESCAPE '\'`)
		args = append(args, escapeLike(f.CauseGroup)+"%")
	}

	query := `SELECT year, cause_name, sex, total_deaths FROM mortality_data`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := c.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying mortality_data: %w", err)
	}
	defer logging.HandleDeferredError(&err, rows.Close, c.logger, "query_mortality_rows")

	records = make([]mortality.Record, 0)
	for rows.Next() {
		var (
			r    mortality.Record
			year string
		)
		if err := rows.Scan(&year, &r.CauseName, &r.Sex, &r.TotalDeaths); err != nil {
			return nil, fmt.Errorf("error scanning mortality row: %w", err)
		}
		r.Year = mortality.Year(year)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mortality rows: %w", err)
	}
	return records, nil
}

// Count returns the number of stored rows.
func (c *Client) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM mortality_data`).Scan(&n); err != nil {
		return 0, fmt.Errorf("error counting mortality rows: %w", err)
	}
	return n, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
