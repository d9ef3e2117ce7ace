package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/yakoovad/crewmate-creator/internal/api"
	"github.com/yakoovad/crewmate-creator/internal/service"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Info("starting application", zap.String("version", cfg.Version), zap.String("driver", cfg.StoreDriver))

		s, err := openStore(ctx, cfg, cfg.MigrateOnStart)
		if err != nil {
			return err
		}
		defer s.close()

		crewmates := service.NewCrewmateService().WithCrewmateRepo(s.crewmates)

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true

		api.NewHandler(log).
			WithCrewmateService(crewmates).
			WithHealthChecker(api.MustNewHealthChecker(cfg.Version, api.StoreCheck(s.ping))).
			RegisterRoutes(e)

		serverErr := make(chan error, 1)
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Port)
			log.Info("server starting", zap.String("addr", addr))
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
		}()

		select {
		case <-ctx.Done():
			log.Info("shutting down server")
		case err := <-serverErr:
			return errors.Wrap(err, "server error")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "server forced to shutdown")
		}

		log.Info("server stopped gracefully")
		return nil
	},
}
