package sim

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// FakeWarehouse simulates a SQL warehouse with a real in-memory sqlite
// database, so query latency is measured rather than modeled.
type FakeWarehouse struct {
	Database string
	db       *sql.DB
}

// QueryMetrics extends the standard metrics with row counts.
type QueryMetrics struct {
	Metrics
	RowsReturned int `json:"rows_returned"`
}

// NewFakeWarehouse returns an unconnected warehouse. Use ":memory:" (the
// default when empty) to keep everything in process.
func NewFakeWarehouse(database string) *FakeWarehouse {
	if database == "" {
		database = ":memory:"
	}
	return &FakeWarehouse{Database: database}
}

// Connect opens the sqlite backend.
func (w *FakeWarehouse) Connect() error {
	db, err := sql.Open("sqlite3", w.Database)
	if err != nil {
		return fmt.Errorf("warehouse connect: %w", err)
	}
	w.db = db
	return nil
}

// Close tears down the backend.
func (w *FakeWarehouse) Close() error {
	if w.db == nil {
		return nil
	}
	err := w.db.Close()
	w.db = nil
	return err
}

// Execute runs a query against the warehouse and reports measured
// latency, a per-row cost, and derived throughput.
func (w *FakeWarehouse) Execute(query string, args ...interface{}) (QueryMetrics, error) {
	if w.db == nil {
		return QueryMetrics{}, fmt.Errorf("warehouse %s is not connected", w.Database)
	}

	start := time.Now()
	rows, err := w.db.Query(query, args...)
	if err != nil {
		return QueryMetrics{}, fmt.Errorf("warehouse query failed: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}
	if err := rows.Err(); err != nil {
		return QueryMetrics{}, fmt.Errorf("warehouse row scan failed: %w", err)
	}

	latencyMS := float64(time.Since(start).Microseconds()) / 1000.0
	if latencyMS < 0.001 {
		latencyMS = 0.001
	}

	var warnings []string
	if count > 10000 {
		warnings = append(warnings, fmt.Sprintf("large result set (%d rows) - consider pagination", count))
	}

	return QueryMetrics{
		Metrics: Metrics{
			LatencyMS:  latencyMS,
			CostUnits:  0.001 + float64(count)*0.0001,
			Throughput: float64(count) / latencyMS * 1000,
			Warnings:   warnings,
		},
		RowsReturned: count,
	}, nil
}

// Exec runs a statement that returns no rows (DDL, inserts).
func (w *FakeWarehouse) Exec(stmt string, args ...interface{}) error {
	if w.db == nil {
		return fmt.Errorf("warehouse %s is not connected", w.Database)
	}
	if _, err := w.db.Exec(stmt, args...); err != nil {
		return fmt.Errorf("warehouse exec failed: %w", err)
	}
	return nil
}
