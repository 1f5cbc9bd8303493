package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lgarreta/ecuapassdocs/internal/async"
	"github.com/lgarreta/ecuapassdocs/internal/export"
	"github.com/lgarreta/ecuapassdocs/internal/ingest"
)

var (
	batchWorkers int
	batchXLSX    string
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Process every cached analysis result under a directory",
	Long: `Process every <name>-azure-CACHE.json found under dir, concurrently.
One failing document does not stop the others; the command fails when any did.

Examples:
  ecuapass batch ./cartaportes
  ecuapass batch ./cartaportes --workers 8 --xlsx cartaportes.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			return err
		}
		defer a.Close()
		logger := a.Logger

		paths, uncached, stats, err := ingest.ListDocuments(args[0], true)
		if err != nil {
			return err
		}
		for _, p := range uncached {
			logger.Warn("batch.uncached", "path", p)
		}
		logger.Info("batch.discovered", "scanned", stats.Scanned, "cached", stats.Matched, "uncached", stats.Uncached)

		workers := a.Config.Batch.Workers
		if batchWorkers > 0 {
			workers = batchWorkers
		}
		outcomes := async.RunBatch(ctx, a.Processor, paths, logger,
			async.WithWorkers(workers),
			async.WithProcessTimeout(a.Config.Batch.DocTimeout),
		)

		var rows []export.Row
		failures := 0
		for _, o := range outcomes {
			if o.Err != nil {
				failures++
				fmt.Fprintf(cmd.ErrOrStderr(), "FAILED %s: %v\n", o.Path, o.Err)
				continue
			}
			rows = append(rows, export.Row{Path: o.Path, Record: o.Result.Record})
		}

		if batchXLSX != "" {
			b, err := export.RecordsXLSX(rows)
			if err != nil {
				return err
			}
			if err := os.WriteFile(batchXLSX, b, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", batchXLSX, err)
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Batch processing complete!\n")
		fmt.Fprintf(out, "- Documents: %d\n", len(paths))
		fmt.Fprintf(out, "- Processed: %d\n", len(rows))
		fmt.Fprintf(out, "- Failures: %d\n", failures)
		if batchXLSX != "" {
			fmt.Fprintf(out, "- Output: %s\n", batchXLSX)
		}
		if failures > 0 {
			return fmt.Errorf("%d of %d documents failed", failures, len(paths))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "concurrent documents (default ECUAPASS_WORKERS)")
	batchCmd.Flags().StringVar(&batchXLSX, "xlsx", "", "also write the batch records to this XLSX file")
}
