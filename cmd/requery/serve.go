package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/aretw0/requery/internal/cli"
	httpAdapter "github.com/aretw0/requery/pkg/adapters/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Starts the refinement engine in server mode, exposing a JSON API over HTTP.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}
		if listen, _ := cmd.Flags().GetString("listen"); listen != "" {
			cfg.Listen = listen
		}
		logger, err := newLogger(cfg)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		var reg *prometheus.Registry
		if cfg.MetricsListen != "" {
			reg = prometheus.NewRegistry()
		}

		built, err := cli.Build(cfg, logger, registererOrNil(reg))
		if err != nil {
			fmt.Printf("Error initializing engine: %v\n", err)
			os.Exit(1)
		}

		opts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}
		if built.Store != nil {
			opts = append(opts, httpAdapter.WithTranscriptStore(built.Store))
		}
		handler := httpAdapter.NewHandler(built.Engine, opts...)

		srv := &http.Server{
			Addr:    cfg.Listen,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("starting server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		if reg != nil {
			metricsSrv := &http.Server{
				Addr:    cfg.MetricsListen,
				Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			}
			go func() {
				logger.Info("starting metrics endpoint", "addr", metricsSrv.Addr)
				if merr := metricsSrv.ListenAndServe(); merr != nil && merr != http.ErrServerClosed {
					logger.Error("metrics endpoint failed", "err", merr)
				}
			}()
			defer metricsSrv.Close()
		}

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", sig.String())

			// Give outstanding invocations a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("server stopped gracefully")
		}
	},
}

func registererOrNil(reg *prometheus.Registry) prometheus.Registerer {
	if reg == nil {
		return nil
	}
	return reg
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "Listen address; overrides the config file")
}
