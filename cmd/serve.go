package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/promptcoach/internal/rage"
	"github.com/abhisek/promptcoach/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the coach and rage chat as a JSON HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, err := buildServices(ctx, cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		cfg := svc.cfg
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
		slog.SetDefault(logger)
		logger.Info("starting promptcoach server",
			"version", version,
			"db_driver", svc.store.Driver(),
			"ai_enabled", svc.provider != nil)

		srv := server.New(server.Options{
			Addr:            cfg.Addr,
			AllowedOrigins:  cfg.AllowedOrigins,
			SessionTTL:      cfg.SessionTTL,
			LeaderboardSize: cfg.LeaderboardSize,
			Logger:          logger,
		}, server.Deps{
			Coach:      svc.coach,
			Demo:       svc.demo,
			Catalog:    svc.catalog,
			Results:    svc.store.ResultRepo(),
			NewManager: rage.NewManager,
		})
		if err := srv.Run(ctx); err != nil {
			logger.Error("server stopped", "error", err)
			return err
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides PROMPTCOACH_ADDR, default :8080)")
}
