package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/cafedash/internal/export"
	"github.com/alfredjeanlab/cafedash/internal/idgen"
)

var exportCmd = &cobra.Command{
	Use:     "export <page>...",
	Short:   "Export filtered pages as JSONL to files, git, S3 or Postgres",
	GroupID: "pages",
	Long: `Export the filtered, sorted records of one or more pages as JSONL.

With no destination flags the export is written to stdout. With
--interval (or CAFE_EXPORT_INTERVAL) the export repeats until interrupted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		for _, name := range args {
			if _, err := lookupPage(name); err != nil {
				return err
			}
		}

		source := func(ctx context.Context) ([]*export.Snapshot, error) {
			snaps := make([]*export.Snapshot, 0, len(args))
			for _, name := range args {
				tbl, err := openPage(ctx, cmd, name)
				if err != nil {
					return nil, err
				}
				id, err := idgen.SnapshotID()
				if err != nil {
					return nil, err
				}
				snaps = append(snaps, tbl.Snapshot(id, time.Now().UTC()))
			}
			return snaps, nil
		}

		dests, closeDests, err := exportDestinations(ctx, cmd)
		if err != nil {
			return err
		}
		defer closeDests()

		if len(dests) == 0 {
			snaps, err := source(ctx)
			if err != nil {
				return err
			}
			for _, s := range snaps {
				if err := export.ExportJSONL(os.Stdout, s); err != nil {
					return err
				}
			}
			return nil
		}

		interval, _ := cmd.Flags().GetDuration("interval")
		if !cmd.Flags().Changed("interval") {
			interval = cfg.ExportInterval
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		sched := export.NewScheduler(source, dests, interval, logger)

		if interval <= 0 {
			return sched.RunOnce(ctx)
		}

		sched.Start()
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		sched.Stop()
		return nil
	},
}

// exportDestinations builds the destinations selected by flags. The
// returned func releases any that hold connections.
func exportDestinations(ctx context.Context, cmd *cobra.Command) ([]export.Destination, func(), error) {
	var dests []export.Destination
	closers := []func(){}
	closeAll := func() {
		for _, c := range closers {
			c()
		}
	}

	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		dests = append(dests, export.NewFileDestination(dir))
	}
	if repo, _ := cmd.Flags().GetString("git-repo"); repo != "" {
		sub, _ := cmd.Flags().GetString("git-dir")
		branch, _ := cmd.Flags().GetString("git-branch")
		dests = append(dests, export.NewGitDestination(repo, sub, branch))
	}
	if useS3, _ := cmd.Flags().GetBool("s3"); useS3 {
		if cfg.ExportS3Bucket == "" {
			return nil, closeAll, fmt.Errorf("--s3 needs CAFE_EXPORT_S3_BUCKET")
		}
		d, err := export.NewS3Destination(ctx, cfg.ExportS3Bucket, cfg.ExportS3Prefix, cfg.ExportS3Region, cfg.ExportS3Endpoint)
		if err != nil {
			return nil, closeAll, err
		}
		dests = append(dests, d)
	}
	if usePG, _ := cmd.Flags().GetBool("postgres"); usePG {
		d, err := openSnapshotStore()
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, func() { d.Close() })
		dests = append(dests, d)
	}
	return dests, closeAll, nil
}

func openSnapshotStore() (*export.PostgresDestination, error) {
	if cfg.ExportDatabaseURL == "" {
		return nil, fmt.Errorf("snapshot history needs CAFE_EXPORT_DATABASE_URL")
	}
	return export.NewPostgresDestination(cfg.ExportDatabaseURL)
}

var exportHistoryCmd = &cobra.Command{
	Use:   "history <page>",
	Short: "List snapshots stored in Postgres",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		store, err := openSnapshotStore()
		if err != nil {
			return err
		}
		defer store.Close()

		rows, err := store.History(context.Background(), args[0], limit)
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(rows)
		}
		if len(rows) == 0 {
			fmt.Printf("no snapshots for %q\n", args[0])
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTAKEN\tITEMS\tQUERY")
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", r.ID, r.TakenAt.Local().Format("2006-01-02 15:04:05"), r.ItemCount, r.Query)
		}
		return w.Flush()
	},
}

var exportShowCmd = &cobra.Command{
	Use:   "show <snapshot-id>",
	Short: "Print a stored snapshot as JSONL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openSnapshotStore()
		if err != nil {
			return err
		}
		defer store.Close()

		snap, err := store.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		if snap == nil {
			return fmt.Errorf("snapshot %q not found", args[0])
		}
		_, err = fmt.Fprint(os.Stdout, snap.Payload)
		return err
	},
}

var exportPruneCmd = &cobra.Command{
	Use:   "prune <page>",
	Short: "Delete all but the newest stored snapshots of a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		keep, _ := cmd.Flags().GetInt("keep")
		store, err := openSnapshotStore()
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.Prune(context.Background(), args[0], keep)
		if err != nil {
			return err
		}
		fmt.Printf("pruned %d snapshot(s) of %q\n", n, args[0])
		return nil
	},
}

func init() {
	addQueryFlags(exportCmd)
	exportCmd.Flags().String("dir", "", "write <page>.jsonl files into this directory")
	exportCmd.Flags().String("git-repo", "", "commit exports into this git working tree")
	exportCmd.Flags().String("git-dir", "exports", "directory inside the git repo")
	exportCmd.Flags().String("git-branch", "main", "branch to commit and push to")
	exportCmd.Flags().Bool("s3", false, "upload to CAFE_EXPORT_S3_BUCKET")
	exportCmd.Flags().Bool("postgres", false, "store in the view_snapshots table at CAFE_EXPORT_DATABASE_URL")
	exportCmd.Flags().Duration("interval", 0, "repeat every interval until interrupted (default CAFE_EXPORT_INTERVAL)")

	exportHistoryCmd.Flags().Int("limit", 20, "maximum snapshots to list")
	exportPruneCmd.Flags().Int("keep", 10, "snapshots to keep")

	exportCmd.AddCommand(exportHistoryCmd, exportShowCmd, exportPruneCmd)
}
