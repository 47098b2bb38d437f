package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/image-science/internal/server"
)

// serveCommand runs the MCP server on stdin/stdout
func serveCommand() *cobra.Command {
	var metricsAddr string

	cmd := cobra.Command{
		Use:   "serve",
		Short: "Serve image tools over MCP (JSON-RPC on stdin/stdout)",
		Run: func(cmd *cobra.Command, args []string) {
			logger := getLogger()
			defer logger.Sync()

			ctx := cmd.Context()

			if len(metricsAddr) > 0 {
				mux := http.NewServeMux()
				mux.Handle("/metrics", server.MetricsHandler())
				hs := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
				go func() {
					if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						logger.Error("metrics listener stopped", zap.Error(err))
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := hs.Shutdown(shutdownCtx); err != nil {
						logger.Warn("abnormal metrics shutdown", zap.Error(err))
					}
				}()
			}

			srv := server.New(server.Config{
				Version: Version,
				Options: imageOptions(logger),
				Rotator: rotator(logger),
				Logger:  logger,
			})
			logger.Info("image-science MCP server started",
				zap.String("version", Version+"."+Revision),
				zap.String("buildTime", BuildTime),
			)
			if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("server error", zap.Error(err))
				return
			}
			logger.Info("shutting down the server")
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")

	return &cmd
}
