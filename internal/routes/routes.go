package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/01moynul/healthsync-golang/internal/handlers"
	"github.com/01moynul/healthsync-golang/internal/middleware"
	"github.com/01moynul/healthsync-golang/internal/observability"
)

// Options carries router settings that do not belong to the handlers.
type Options struct {
	AllowOrigin string
	Metrics     *observability.Metrics
	Gatherer    prometheus.Gatherer // Served on /metrics when not nil
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	router := gin.New()

	// --- Global middleware ---
	// CORS goes first so preflight requests never reach the handlers.
	router.Use(middleware.CORS(opts.AllowOrigin))
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(opts.Metrics))
	router.Use(gin.Recovery())

	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/v1")
	{
		// --- Ping Route ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Dashboard Routes ---
		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("", h.GetDashboard)
			dashboard.GET("/filters", h.GetFilterOptions)
			dashboard.GET("/export", h.ExportCSV)
			dashboard.GET("/cache", h.GetCacheStatus)
			dashboard.POST("/refresh", h.RefreshData)
		}
	}

	return router
}
