package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/biscuit-labs/pagingsim/internal/config"
	"github.com/biscuit-labs/pagingsim/internal/instr"
	"github.com/biscuit-labs/pagingsim/internal/sim"
	"github.com/biscuit-labs/pagingsim/internal/telemetry"
)

// newServeCmd runs a workload under an external tick -- a plain
// time.Ticker driving each Step -- while exporting both engines'
// statistics surfaces as Prometheus gauges.
func newServeCmd() *cobra.Command {
	var (
		addr string
		tick time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve <workload-file>",
		Short: "Step a workload on a timer while exporting live stats over HTTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			algo, err := cfg.Validate()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrapf(err, "opening %q", args[0])
			}
			list, err := instr.Parse(f)
			f.Close()
			if err != nil {
				return err
			}

			co := sim.New(list, cfg.Frames, algo, cfg.OptSeed, cfg.UserSeed)
			defer co.Free()

			registry := prometheus.NewRegistry()
			rec := telemetry.NewRecorder(registry)
			rec.Observe(co.OPT)
			rec.Observe(co.User)

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
			server := &http.Server{Addr: addr, Handler: mux}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			go func() {
				logrus.WithField("addr", addr).Info("serving /metrics")
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logrus.WithError(err).Error("metrics server stopped")
				}
			}()

			ticker := time.NewTicker(tick)
			defer ticker.Stop()
			for co.Running {
				select {
				case <-ctx.Done():
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					return server.Shutdown(shutdownCtx)
				case <-ticker.C:
					co.Step()
					rec.Observe(co.OPT)
					rec.Observe(co.User)
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":9090", "HTTP listen address for /metrics")
	cmd.Flags().DurationVar(&tick, "tick", 50*time.Millisecond, "simulated tick interval")
	return cmd
}
