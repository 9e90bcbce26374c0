// Package export writes the filtered inventory table as CSV and reads it back.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/01moynul/healthsync-golang/internal/models"
)

// FileName is the download name offered for the procurement export.
const FileName = "procurement_list.csv"

// ContentType is the MIME type of the export.
const ContentType = "text/csv; charset=utf-8"

// WriteCSV writes a header row with the warehouse column names followed by
// one row per record. Floats use the shortest representation that parses
// back to the same value.
func WriteCSV(w io.Writer, table models.InventoryTable) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(models.InventoryColumns); err != nil {
		return fmt.Errorf("export: write header: %w", err)
	}
	for i, r := range table {
		if err := cw.Write(toRow(r)); err != nil {
			return fmt.Errorf("export: write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}

func toRow(r models.InventoryRecord) []string {
	return []string{
		r.LocationID,
		r.ItemName,
		r.Status,
		strconv.FormatInt(r.CurrentStock, 10),
		strconv.FormatFloat(r.AvgDailyUsage, 'f', -1, 64),
		strconv.FormatFloat(r.DaysRemaining, 'f', -1, 64),
		strconv.FormatInt(r.SuggestedReorderQty, 10),
	}
}

// ParseCSV reads a table written by WriteCSV. The header must match the
// warehouse columns exactly.
func ParseCSV(r io.Reader) (models.InventoryTable, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(models.InventoryColumns)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("export: read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("export: CSV must have a header row")
	}
	if !validateHeader(records[0], models.InventoryColumns) {
		return nil, fmt.Errorf("export: CSV header mismatch. Expected: %v, Got: %v", models.InventoryColumns, records[0])
	}

	table := make(models.InventoryTable, 0, len(records)-1)
	for i, row := range records[1:] {
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("export: CSV row %d: %w", i+2, err)
		}
		table = append(table, rec)
	}
	return table, nil
}

func parseRow(row []string) (models.InventoryRecord, error) {
	stock, err := strconv.ParseInt(row[3], 10, 64)
	if err != nil {
		return models.InventoryRecord{}, fmt.Errorf("invalid %s: %w", models.ColCurrentStock, err)
	}
	usage, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return models.InventoryRecord{}, fmt.Errorf("invalid %s: %w", models.ColAvgDailyUsage, err)
	}
	days, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return models.InventoryRecord{}, fmt.Errorf("invalid %s: %w", models.ColDaysRemaining, err)
	}
	reorder, err := strconv.ParseInt(row[6], 10, 64)
	if err != nil {
		return models.InventoryRecord{}, fmt.Errorf("invalid %s: %w", models.ColSuggestedReorderQty, err)
	}

	return models.InventoryRecord{
		LocationID:          row[0],
		ItemName:            row[1],
		Status:              row[2],
		CurrentStock:        stock,
		AvgDailyUsage:       usage,
		DaysRemaining:       days,
		SuggestedReorderQty: reorder,
	}, nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}
	for i, col := range expected {
		if actual[i] != col {
			return false
		}
	}
	return true
}
