package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/api"
	"github.com/RoyceAzure/lab/bookstore/internal/api/handler"
	"github.com/RoyceAzure/lab/bookstore/internal/api/router"
	"github.com/RoyceAzure/lab/bookstore/internal/appcontext"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "start the http server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	cf, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := appcontext.NewApplicationContext(cf)
	if err != nil {
		return err
	}
	logger := app.Logger

	// 初始化 handler
	server := api.NewServer(
		handler.NewAuthHandler(app.MemberService, app.SessionService, cf.IsProduction()),
		handler.NewBookHandler(app.CatalogService),
		handler.NewCartHandler(app.CartService, app.OrderService),
		handler.NewOrderHandler(app.OrderService),
		handler.NewHealthHandler(map[string]handler.Pinger{
			"postgres": app.DbDao,
			"redis":    app.RedisCache,
		}, 2*time.Second),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cf.ServerPort),
		Handler:           router.SetupRouter(server, app.SessionService, app.LoginLimiter, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 設置訊號監聽
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			_ = app.Shutdown(context.Background())
			return err
		}
	case <-ctx.Done():
		logger.Info().Msg("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown error")
	}
	if err := app.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Application shutdown error")
		return err
	}
	logger.Info().Msg("closed completed")
	return nil
}
