package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/healthsync-golang/internal/cache"
	"github.com/01moynul/healthsync-golang/internal/export"
	"github.com/01moynul/healthsync-golang/internal/models"
	"github.com/01moynul/healthsync-golang/internal/pipeline"
	"github.com/01moynul/healthsync-golang/internal/warehouse"
)

//
// --- Inputs ---
//

// DashboardQuery is the filter part of the query string.
// ?location=NY&location=LA&status=GOOD. A parameter that is absent selects
// every value; a parameter given only as empty (?location=) selects none.
type DashboardQuery struct {
	Locations []string `form:"location" binding:"omitempty,max=500,dive,max=256"`
	Statuses  []string `form:"status" binding:"omitempty,max=50,dive,max=256"`
}

//
// --- Outputs ---
//

// SelectionView echoes the effective selection back to the client.
type SelectionView struct {
	Locations []string `json:"locations"`
	Statuses  []string `json:"statuses"`
}

// DashboardResponse is everything the dashboard page renders.
type DashboardResponse struct {
	Filters    pipeline.FilterOptions `json:"filters"`
	Selection  SelectionView          `json:"selection"`
	Metrics    pipeline.Metrics       `json:"metrics"`
	Heatmap    []pipeline.HeatmapCell `json:"heatmap"`
	EmptyState bool                   `json:"emptyState"`
	Cache      cache.Snapshot         `json:"cache"`
}

// GetDashboard returns metrics, chart series and the action list for the
// current selection.
// GET /v1/dashboard
func (h *Handlers) GetDashboard(c *gin.Context) {
	// 1. Load the unfiltered table (cache or warehouse)
	table, ok := h.loadTable(c)
	if !ok {
		return
	}

	// 2. Resolve the selection against the unfiltered table
	opts := pipeline.Options(table)
	sel, view, ok := bindSelection(c, opts)
	if !ok {
		return
	}

	// 3. Filter and aggregate
	filtered := pipeline.Filter(table, sel)

	c.JSON(http.StatusOK, DashboardResponse{
		Filters:    opts,
		Selection:  view,
		Metrics:    pipeline.ComputeMetrics(filtered),
		Heatmap:    pipeline.Heatmap(filtered),
		EmptyState: len(filtered) == 0,
		Cache:      h.Cache.Snapshot(),
	})
}

// GetFilterOptions returns the selectable locations and statuses.
// GET /v1/dashboard/filters
func (h *Handlers) GetFilterOptions(c *gin.Context) {
	table, ok := h.loadTable(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, pipeline.Options(table))
}

// ExportCSV streams the filtered table as procurement_list.csv.
// GET /v1/dashboard/export
func (h *Handlers) ExportCSV(c *gin.Context) {
	table, ok := h.loadTable(c)
	if !ok {
		return
	}
	sel, _, ok := bindSelection(c, pipeline.Options(table))
	if !ok {
		return
	}

	// Render into a buffer first so a write error can still become a 500.
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, pipeline.Filter(table, sel)); err != nil {
		slog.Error("csv export failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build CSV export"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// RefreshData drops the cached table and fetches a new one.
// POST /v1/dashboard/refresh
func (h *Handlers) RefreshData(c *gin.Context) {
	h.Cache.Invalidate()

	if _, ok := h.loadTable(c); !ok {
		return
	}
	c.JSON(http.StatusOK, h.Cache.Snapshot())
}

// GetCacheStatus reports the cache entry without fetching.
// GET /v1/dashboard/cache
func (h *Handlers) GetCacheStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.Cache.Snapshot())
}

//
// --- Helpers ---
//

// loadTable fetches the table and writes the error response itself when it
// cannot. A failed fetch halts the request: nothing is filtered or computed.
func (h *Handlers) loadTable(c *gin.Context) (models.InventoryTable, bool) {
	table, err := h.Cache.Get(c.Request.Context())
	if err == nil {
		return table, true
	}

	var cf *warehouse.ConnectionFailure
	if errors.As(err, &cf) {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":  "No data found or connection failed. Please check your warehouse credentials.",
			"detail": cf.Message,
		})
		return nil, false
	}

	slog.Error("inventory load failed", "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load inventory data"})
	return nil, false
}

// bindSelection validates the query string and resolves it to a selection
// that is a subset of the offered values.
func bindSelection(c *gin.Context, opts pipeline.FilterOptions) (models.FilterSelection, SelectionView, bool) {
	var q DashboardQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.FilterSelection{}, SelectionView{}, false
	}

	view := SelectionView{
		Locations: resolve(c, "location", q.Locations, opts.Locations),
		Statuses:  resolve(c, "status", q.Statuses, opts.Statuses),
	}
	return models.NewFilterSelection(view.Locations, view.Statuses), view, true
}

func resolve(c *gin.Context, key string, requested, offered []string) []string {
	if _, present := c.GetQueryArray(key); !present {
		return offered
	}
	values := make([]string, 0, len(requested))
	for _, v := range requested {
		if v != "" {
			values = append(values, v)
		}
	}
	return pipeline.Restrict(values, offered)
}
