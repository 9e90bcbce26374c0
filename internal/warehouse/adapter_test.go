package warehouse

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/healthsync-golang/internal/models"
)

const expectedQuery = "SELECT LOCATION_ID, ITEM_NAME, STATUS, CURRENT_STOCK, AVG_DAILY_USAGE, DAYS_REMAINING, SUGGESTED_REORDER_QTY FROM HEALTH_INVENTORY_DB.PUBLIC.INVENTORY_HEALTH_METRICS"

func newMockAdapter(t *testing.T, timeout time.Duration) (*Adapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	a, err := NewAdapter(db, "", timeout)
	require.NoError(t, err)
	return a, mock
}

func TestNewAdapter_TableName(t *testing.T) {
	tests := []struct {
		table   string
		wantErr bool
	}{
		{"", false},
		{"INVENTORY_HEALTH_METRICS", false},
		{"PUBLIC.INVENTORY_HEALTH_METRICS", false},
		{"DB.PUBLIC.T1", false},
		{"A.B.C.D", true},
		{"metrics; DROP TABLE x", true},
		{"1table", true},
	}

	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			_, err := NewAdapter(nil, tt.table, 0)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAdapter_Query(t *testing.T) {
	a, _ := newMockAdapter(t, time.Second)
	assert.Equal(t, expectedQuery, a.Query())
}

func TestAdapter_Fetch(t *testing.T) {
	a, mock := newMockAdapter(t, time.Second)

	rows := sqlmock.NewRows(models.InventoryColumns).
		AddRow("NY", "Widget", models.StatusCritical, int64(5), 2.0, 2.5, int64(50)).
		AddRow("NY", "Gadget", models.StatusGood, int64(900), 10.0, 90.0, int64(0)).
		AddRow("LA", nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery(expectedQuery).WillReturnRows(rows)

	table, err := a.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 3)

	assert.Equal(t, models.InventoryRecord{
		LocationID:          "NY",
		ItemName:            "Widget",
		Status:              models.StatusCritical,
		CurrentStock:        5,
		AvgDailyUsage:       2,
		DaysRemaining:       2.5,
		SuggestedReorderQty: 50,
	}, table[0])
	assert.Equal(t, "Gadget", table[1].ItemName)
	assert.Equal(t, models.InventoryRecord{LocationID: "LA"}, table[2])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdapter_FetchEmpty(t *testing.T) {
	a, mock := newMockAdapter(t, time.Second)
	mock.ExpectQuery(expectedQuery).WillReturnRows(sqlmock.NewRows(models.InventoryColumns))

	table, err := a.Fetch(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, table)
	assert.Empty(t, table)
}

func TestAdapter_FetchFailures(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(mock sqlmock.Sqlmock)
		substr string
	}{
		{
			name: "query error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(expectedQuery).WillReturnError(errors.New("authentication failed"))
			},
			substr: "authentication failed",
		},
		{
			name: "scan error",
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(models.InventoryColumns).
					AddRow("NY", "Widget", models.StatusGood, "lots", 1.0, 1.0, int64(0))
				mock.ExpectQuery(expectedQuery).WillReturnRows(rows)
			},
			substr: "decode row 1",
		},
		{
			name: "row error",
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(models.InventoryColumns).
					AddRow("NY", "Widget", models.StatusGood, int64(1), 1.0, 1.0, int64(0)).
					RowError(0, errors.New("network reset"))
				mock.ExpectQuery(expectedQuery).WillReturnRows(rows)
			},
			substr: "network reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, mock := newMockAdapter(t, time.Second)
			tt.setup(mock)

			table, err := a.Fetch(context.Background())
			assert.Nil(t, table)

			var cf *ConnectionFailure
			require.ErrorAs(t, err, &cf)
			assert.Contains(t, cf.Message, tt.substr)
		})
	}
}

func TestAdapter_FetchTimeout(t *testing.T) {
	a, mock := newMockAdapter(t, 20*time.Millisecond)
	mock.ExpectQuery(expectedQuery).
		WillDelayFor(time.Second).
		WillReturnRows(sqlmock.NewRows(models.InventoryColumns))

	_, err := a.Fetch(context.Background())

	var cf *ConnectionFailure
	require.ErrorAs(t, err, &cf)
}

func TestAdapter_FetchWithoutDB(t *testing.T) {
	a, err := NewAdapter(nil, "", 0)
	require.NoError(t, err)

	_, err = a.Fetch(context.Background())
	var cf *ConnectionFailure
	require.ErrorAs(t, err, &cf)
	assert.Equal(t, "connection error: no database connection configured", err.Error())
}
