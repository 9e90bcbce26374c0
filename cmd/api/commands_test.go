package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/healthsync-golang/internal/export"
	"github.com/01moynul/healthsync-golang/internal/models"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "export", "summary"}, names)
	assert.NotNil(t, root.PersistentFlags().Lookup("env-file"))
}

func TestSummary_RequiresDSN(t *testing.T) {
	t.Setenv("WAREHOUSE_DSN", "")

	root := newRootCmd()
	root.SetArgs([]string{"summary", "--env-file", t.TempDir() + "/none.env"})

	err := root.Execute()
	assert.ErrorContains(t, err, "WAREHOUSE_DSN")
}

func TestWriteExportFile(t *testing.T) {
	table := models.InventoryTable{{
		LocationID: "NY", ItemName: "Widget", Status: models.StatusCritical,
		CurrentStock: 5, AvgDailyUsage: 2, DaysRemaining: 2.5, SuggestedReorderQty: 50,
	}}
	path := filepath.Join(t.TempDir(), export.FileName)

	require.NoError(t, writeExportFile(path, table))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	got, err := export.ParseCSV(f)
	require.NoError(t, err)
	assert.Equal(t, table, got)
}

func TestWriteExportFile_ReportsFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", export.FileName)

	err := writeExportFile(path, nil)
	assert.ErrorContains(t, err, "create")
}
