package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"xdao.co/spendclass/archive"
	"xdao.co/spendclass/classify"
	"xdao.co/spendclass/service"
)

func newServeCmd(a *app) *cobra.Command {
	var flags struct {
		listen        string
		metricsListen string
		noArchive     bool
	}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve classification and the archive over gRPC",
		Long: `Serve starts the SpendClass gRPC service and, unless metrics_listen is empty,
an HTTP listener exposing Prometheus metrics at /metrics. SIGINT or SIGTERM
stops both.`,
		Args: exactArgs(0, "spendclass serve"),
		RunE: func(cmd *cobra.Command, args []string) error {
			listen := a.cfg.Server.Listen
			if flags.listen != "" {
				listen = flags.listen
			}
			metricsListen := a.cfg.Server.MetricsListen
			if cmd.Flags().Changed("metrics-listen") {
				metricsListen = flags.metricsListen
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, listen, metricsListen, !flags.noArchive)
		},
	}
	cmd.Flags().StringVar(&flags.listen, "listen", "", "gRPC listen address (overrides config)")
	cmd.Flags().StringVar(&flags.metricsListen, "metrics-listen", "", "metrics listen address; empty disables (overrides config)")
	cmd.Flags().BoolVar(&flags.noArchive, "no-archive", false, "serve classification only")
	return cmd
}

func (a *app) serve(ctx context.Context, listen, metricsListen string, withArchive bool) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m, err := classify.NewMetrics(reg)
	if err != nil {
		return err
	}
	c := classify.New(a.classifier.Registry(), classify.WithMetrics(m))

	srv := &service.Server{Classifier: c, Logger: a.log, Parse: a.parseOptions()}
	if withArchive {
		if a.cfg.Archive.Remote != "" {
			return errors.New("serve: archive.remote would proxy to another server; use local archive dirs")
		}
		cas, closeFn, err := a.openStore()
		if err != nil {
			return err
		}
		defer closeFn()
		srv.Store = archive.New(cas, c)
	}

	lis, err := net.Listen("tcp", listen)
	if err != nil {
		return err
	}
	gs := service.NewGRPCServer(srv)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info("grpc listening", zap.String("addr", lis.Addr().String()), zap.Bool("archive", withArchive))
		return gs.Serve(lis)
	})
	g.Go(func() error {
		<-gCtx.Done()
		gs.GracefulStop()
		return nil
	})

	if metricsListen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		hs := &http.Server{Addr: metricsListen, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			a.log.Info("metrics listening", zap.String("addr", metricsListen))
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return hs.Shutdown(shutdownCtx)
		})
	}

	err = g.Wait()
	a.log.Info("server stopped")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
