package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/01moynul/healthsync-golang/internal/cache"
	"github.com/01moynul/healthsync-golang/internal/config"
	"github.com/01moynul/healthsync-golang/internal/database"
	"github.com/01moynul/healthsync-golang/internal/export"
	"github.com/01moynul/healthsync-golang/internal/handlers"
	"github.com/01moynul/healthsync-golang/internal/models"
	"github.com/01moynul/healthsync-golang/internal/observability"
	"github.com/01moynul/healthsync-golang/internal/pipeline"
	"github.com/01moynul/healthsync-golang/internal/routes"
	"github.com/01moynul/healthsync-golang/internal/warehouse"
)

// app is the wired pipeline shared by every subcommand.
type app struct {
	cfg      config.Config
	cache    *cache.ResultCache
	metrics  *observability.Metrics
	registry *prometheus.Registry
	close    func() error
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "healthsync",
		Short:         "Inventory health dashboard API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file to load before reading the environment")

	root.AddCommand(
		newServeCmd(&envFile),
		newExportCmd(&envFile),
		newSummaryCmd(&envFile),
	)
	return root
}

func newServeCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*envFile)
			if err != nil {
				return err
			}
			defer a.close()
			return a.serve(cmd.Context())
		},
	}
}

func newExportCmd(envFile *string) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Fetch the inventory table once and write it as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*envFile)
			if err != nil {
				return err
			}
			defer a.close()

			table, err := a.cache.Get(cmd.Context())
			if err != nil {
				return err
			}

			if out == "-" {
				return export.WriteCSV(cmd.OutOrStdout(), table)
			}
			if err := writeExportFile(out, table); err != nil {
				return err
			}
			slog.Info("export written", "path", out, "rows", len(table))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", export.FileName, `Output file, "-" for stdout`)
	return cmd
}

func newSummaryCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard metrics for the whole table as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(*envFile)
			if err != nil {
				return err
			}
			defer a.close()

			table, err := a.cache.Get(cmd.Context())
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(pipeline.ComputeMetrics(table))
		},
	}
}

// writeExportFile writes table as CSV to path. A Close error is returned
// when the write itself succeeded.
func writeExportFile(path string, table models.InventoryTable) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	return export.WriteCSV(f, table)
}

// setup loads configuration and wires adapter, cache and metrics.
func setup(envFile string) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(observability.NewLogger(os.Stdout, cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := database.OpenDBWithDSN(cfg.WarehouseDriver, cfg.WarehouseDSN)
	if err != nil {
		return nil, err
	}
	if err := database.Verify(context.Background(), db, cfg.FetchTimeout); err != nil {
		// Not fatal: every dashboard request reports the failure until the
		// warehouse becomes reachable.
		slog.Warn("warehouse not reachable at startup", "error", err)
	}

	adapter, err := warehouse.NewAdapter(db, cfg.WarehouseTable, cfg.FetchTimeout)
	if err != nil {
		db.Close()
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(registry)

	return &app{
		cfg:      cfg,
		cache:    cache.New(adapter, cache.WithTTL(cfg.CacheTTL), cache.WithMetrics(metrics)),
		metrics:  metrics,
		registry: registry,
		close:    db.Close,
	}, nil
}

func (a *app) serve(ctx context.Context) error {
	router := routes.SetupRouter(&handlers.Handlers{Cache: a.cache}, routes.Options{
		AllowOrigin: a.cfg.CORSAllowOrigin,
		Metrics:     a.metrics,
		Gatherer:    a.registry,
	})

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting HealthSync API server",
			"addr", srv.Addr,
			"table", a.cfg.WarehouseTable,
			"cache_ttl", a.cfg.CacheTTL.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
		slog.Info("shutting down HealthSync API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
