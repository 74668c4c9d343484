package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/moolen/fmea/internal/config"
	"github.com/moolen/fmea/internal/format"
	"github.com/moolen/fmea/internal/importexport"
	"github.com/moolen/fmea/internal/lifecycle"
	"github.com/moolen/fmea/internal/logging"
	"github.com/moolen/fmea/internal/metrics"
	"github.com/moolen/fmea/internal/models"
	"github.com/moolen/fmea/internal/tracing"
	"github.com/moolen/fmea/internal/worksheet"
)

var watchMetricsAddr string

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Recompute a worksheet every time it changes",
	Long: `Watches a worksheet file and prints a summary line after every save.
Documents that fail to load are reported and the previous result is kept.
While running, Prometheus metrics are served on --metrics-addr and spans are
exported when tracing is configured.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "127.0.0.1:9464", "Address of the /metrics endpoint (empty disables it)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger("watch")
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := lifecycle.NewManager()

	tp, err := tracing.NewProvider(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		Endpoint:    cfg.Tracing.Endpoint,
		TLSCAPath:   cfg.Tracing.TLSCAPath,
		TLSInsecure: cfg.Tracing.TLSInsecure,
		Version:     Version,
	})
	if err != nil {
		return err
	}
	if err := manager.Register(tp); err != nil {
		return err
	}

	var m *metrics.Metrics
	var deps []lifecycle.Component
	deps = append(deps, tp)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		m = metrics.NewMetrics(reg)
		if watchMetricsAddr != "" {
			srv := metrics.NewServer(watchMetricsAddr, reg)
			if err := manager.Register(srv); err != nil {
				return err
			}
			deps = append(deps, srv)
		}
	}

	engine, err := newEngine(m)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	out := cmd.OutOrStdout()
	watcher, err := config.NewFileWatcher(config.WatcherConfig{
		FilePath:       args[0],
		DebounceMillis: cfg.Watch.DebounceMillis,
	}, func(path string) error {
		ctx, span := tp.Tracer("watch").Start(ctx, "watch.Reload")
		defer span.End()

		ws, err := importexport.Load(path)
		if err != nil {
			return err
		}
		a := engine.Recompute(ctx, ws)

		mu.Lock()
		defer mu.Unlock()
		_, err = fmt.Fprintln(out, summaryLine(path, a))
		return err
	})
	if err != nil {
		return err
	}
	if err := manager.Register(watcher, deps...); err != nil {
		return err
	}

	if err := manager.Start(ctx); err != nil {
		return err
	}
	logger.Info("watching %s, press Ctrl-C to stop", args[0])

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return manager.Stop(shutdownCtx)
}

func summaryLine(path string, a *worksheet.Analysis) string {
	risk := a.Counts[models.StageRisk]
	return fmt.Sprintf("%s  %s  pairings=%d H=%d M=%d L=%d unassessed=%d unresolved=%d confirmed=[%s]",
		time.Now().Format(time.TimeOnly), path, len(a.Assessments),
		risk.High, risk.Medium, risk.Low, risk.Unassessed,
		a.Report.Totals.Unresolved, format.ConfirmedStages(a.Worksheet.Confirmed))
}
