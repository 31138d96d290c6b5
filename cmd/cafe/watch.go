package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/cafedash/internal/events"
	"github.com/alfredjeanlab/cafedash/internal/pages"
	"github.com/alfredjeanlab/cafedash/internal/tableview"
	"github.com/alfredjeanlab/cafedash/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:     "watch <page>",
	Short:   "Keep a page on screen, refreshing on changes",
	GroupID: "pages",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		interval, _ := cmd.Flags().GetDuration("interval")
		if interval <= 0 {
			return fmt.Errorf("--interval must be positive, got %s", interval)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		tbl, err := openPage(ctx, cmd, args[0])
		if err != nil {
			return err
		}

		render := func(res tableview.PageResult) {
			if jsonOutput {
				_ = printJSON(res)
				return
			}
			if ui.ShouldUseColor() {
				fmt.Print("\x1b[H\x1b[2J")
			}
			fmt.Println(ui.RenderMuted(fmt.Sprintf("%s · %s", tbl.Page.Title, time.Now().Format("15:04:05"))))
			printPageTable(os.Stdout, tbl.Page, res)
		}
		render(tbl.Result())
		cancel := tbl.View.Subscribe(render)
		defer cancel()

		refresh := func(ctx context.Context) error {
			if err := tbl.Refresh(ctx); err != nil {
				// Keep showing the last good data; the next change retries.
				slog.Warn("refresh failed", "page", tbl.Page.Name, "error", describeError(err))
			}
			return nil
		}

		if cfg.NATSURL != "" {
			return watchNATS(ctx, tbl, refresh)
		}
		return events.Poll(ctx, interval, refresh)
	},
}

func watchNATS(ctx context.Context, tbl *pages.Table, refresh events.RefreshFunc) error {
	reconnected := make(chan struct{}, 1)
	sub, err := events.NewNATSSubscriber(cfg.NATSURL,
		nats.ReconnectHandler(func(*nats.Conn) {
			select {
			case reconnected <- struct{}{}:
			default:
			}
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				slog.Warn("event bus disconnected", "error", err)
			}
		}),
	)
	if err != nil {
		return err
	}
	defer sub.Close()

	return events.Watch(ctx, sub, events.ResourceTopic(tbl.Page.Resource), events.DefaultDebounce, reconnected, refresh)
}

func init() {
	addQueryFlags(watchCmd)
	watchCmd.Flags().Duration("interval", 10*time.Second, "poll interval when no event bus is configured")
}
