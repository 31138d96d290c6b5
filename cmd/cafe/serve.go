package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/cafedash/internal/client"
	"github.com/alfredjeanlab/cafedash/internal/dashboard"
	"github.com/alfredjeanlab/cafedash/internal/events"
	"github.com/alfredjeanlab/cafedash/internal/session"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "Serve pages as JSON for the browser dashboard",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if !cmd.Flags().Changed("addr") {
			addr = cfg.HTTPAddr
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)

		srv := dashboard.NewServer(func(s *session.Session) client.CafeClient {
			return cafeClient.WithSession(s)
		}, dashboard.Options{
			PageSize:    cfg.PageSize,
			MaxPages:    cfg.MaxPages,
			CORSOrigins: cfg.CORSOrigins,
			Logger:      logger,
		})

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cfg.NATSURL != "" {
			sub, err := events.NewNATSSubscriber(cfg.NATSURL)
			if err != nil {
				return fmt.Errorf("event relay: %w", err)
			}
			defer sub.Close()
			go func() {
				if err := srv.Relay(ctx, sub); err != nil {
					logger.Error("event relay stopped", "error", err)
				}
			}()
			logger.Info("relaying change events", "nats", cfg.NATSURL)
		}

		logger.Info("proxying cafe API", "url", cafeClient.BaseURL())
		return srv.ListenAndServe(ctx, addr)
	},
}

var healthCmd = &cobra.Command{
	Use:     "health",
	Short:   "Check the cafe API is reachable",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, err := cafeClient.Health(cmd.Context())
		if err != nil {
			return fmt.Errorf("checking health: %w", err)
		}
		if jsonOutput {
			if err := printJSON(map[string]string{"status": status, "url": cafeClient.BaseURL()}); err != nil {
				return err
			}
		} else {
			fmt.Printf("Health: %s (%s)\n", status, cafeClient.BaseURL())
		}
		if status != "ok" {
			return fmt.Errorf("unhealthy: %s", status)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", ":3080", "listen address (default CAFE_HTTP_ADDR)")
}
