// Package warehouse reads the inventory health table from the data warehouse.
package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/01moynul/healthsync-golang/internal/models"
)

// DefaultTable is the fully qualified inventory health table.
const DefaultTable = "HEALTH_INVENTORY_DB.PUBLIC.INVENTORY_HEALTH_METRICS"

// DefaultFetchTimeout bounds a single warehouse round-trip.
const DefaultFetchTimeout = 30 * time.Second

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*){0,2}$`)

// ConnectionFailure is the only error the adapter returns. It covers
// connectivity, authentication, query and decoding problems alike.
type ConnectionFailure struct {
	Message string
}

func (e *ConnectionFailure) Error() string {
	return "connection error: " + e.Message
}

func failure(format string, args ...any) *ConnectionFailure {
	return &ConnectionFailure{Message: fmt.Sprintf(format, args...)}
}

// Adapter executes the fixed inventory query.
type Adapter struct {
	db      *sql.DB
	table   string
	query   string
	timeout time.Duration
}

// NewAdapter builds an adapter for the given table. The table name is spliced
// into the query text, so only plain (optionally dotted) identifiers are accepted.
func NewAdapter(db *sql.DB, table string, timeout time.Duration) (*Adapter, error) {
	if table == "" {
		table = DefaultTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("warehouse: invalid table name %q", table)
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}

	return &Adapter{
		db:      db,
		table:   table,
		query:   buildQuery(table),
		timeout: timeout,
	}, nil
}

func buildQuery(table string) string {
	return "SELECT " + strings.Join(models.InventoryColumns, ", ") + " FROM " + table
}

// Query returns the SQL text the adapter runs.
func (a *Adapter) Query() string {
	return a.query
}

// Fetch runs the query and returns every row. Any failure comes back as a
// *ConnectionFailure; the caller should treat it as "no data".
func (a *Adapter) Fetch(ctx context.Context) (models.InventoryTable, error) {
	if a.db == nil {
		return nil, failure("no database connection configured")
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	rows, err := a.db.QueryContext(ctx, a.query)
	if err != nil {
		slog.Warn("warehouse query failed", "table", a.table, "error", err)
		return nil, failure("query %s: %v", a.table, err)
	}
	defer rows.Close()

	table := models.InventoryTable{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			slog.Warn("warehouse row decode failed", "table", a.table, "row", len(table)+1, "error", err)
			return nil, failure("decode row %d: %v", len(table)+1, err)
		}
		table = append(table, rec)
	}
	if err := rows.Err(); err != nil {
		slog.Warn("warehouse result iteration failed", "table", a.table, "error", err)
		return nil, failure("read %s: %v", a.table, err)
	}

	slog.Info("warehouse fetch complete",
		"table", a.table,
		"rows", len(table),
		"duration_ms", time.Since(start).Milliseconds())
	return table, nil
}

// scanRecord reads one row. NULL strings become "" and NULL numbers 0.
func scanRecord(rows *sql.Rows) (models.InventoryRecord, error) {
	var (
		loc, item, status sql.NullString
		stock, reorder    sql.NullInt64
		usage, days       sql.NullFloat64
	)

	// Same order as models.InventoryColumns.
	if err := rows.Scan(&loc, &item, &status, &stock, &usage, &days, &reorder); err != nil {
		return models.InventoryRecord{}, err
	}

	return models.InventoryRecord{
		LocationID:          loc.String,
		ItemName:            item.String,
		Status:              status.String,
		CurrentStock:        stock.Int64,
		AvgDailyUsage:       usage.Float64,
		DaysRemaining:       days.Float64,
		SuggestedReorderQty: reorder.Int64,
	}, nil
}
