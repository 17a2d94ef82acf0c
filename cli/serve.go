package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ka2n/yure/api"
	"github.com/ka2n/yure/display"
	"github.com/ka2n/yure/log"
	"github.com/ka2n/yure/metrics"
	"github.com/ka2n/yure/server"
	"github.com/morikuni/failure/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var (
	addrFlag string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the report over HTTP",
		Long: `Start an HTTP server exposing the report at /report, a health check at
/healthz and Prometheus metrics at /metrics. Every /report request fetches
the data again.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
)

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addrFlag != "" {
		cfg.Addr = addrFlag
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	gen.Observer = metrics.New(reg)

	srv := server.New(gen, server.Options{
		Addr:     cfg.Addr,
		Stylizer: display.Stylizer{WordWrap: cfg.WordWrap},
		Gatherer: reg,
		Logger:   log.Logger.With("component", "http", "agent", api.UserAgent()),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return failure.New(ServeFailed,
				failure.Message("HTTP server failed"),
				failure.Context{"addr": cfg.Addr, "cause": err.Error()},
			)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("http server shutdown error", "error", err)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	log.Info("shutdown complete")
	return nil
}
