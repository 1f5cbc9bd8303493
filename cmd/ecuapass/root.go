package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lgarreta/ecuapassdocs/internal/app"
	"github.com/lgarreta/ecuapassdocs/internal/common"
)

var (
	verbose  bool
	noStore  bool
	noFiles  bool
	sequence string
)

var rootCmd = &cobra.Command{
	Use:   "ecuapass",
	Short: "Build Ecuapass cartaporte records from cached document analysis results",
	Long: `ecuapass reads the cached analysis result of a scanned cartaporte
(<name>-azure-CACHE.json), restores the line breaks of its fields, and maps
them onto the Ecuapass form record.

For each document it writes <name>-DOCUMENT.json and <name>-RESULTS.json next
to the input and stores the record in the database (DB_URL, or the SQLite file
SQLITE_PATH). Settings are read from the environment and an optional .env file.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log extraction misses (debug level)")
	rootCmd.PersistentFlags().BoolVar(&noStore, "no-store", false, "do not store records in the database")
	rootCmd.PersistentFlags().BoolVar(&noFiles, "no-files", false, "do not write -DOCUMENT.json and -RESULTS.json")
	rootCmd.PersistentFlags().StringVar(&sequence, "sequence", "", "value of 66_Secuencia (default 1)")

	rootCmd.AddCommand(docCmd, batchCmd, exportCmd)
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func openApp(ctx context.Context) (*app.App, error) {
	logger := newLogger()
	cfg, err := common.LoadConfig()
	if err != nil {
		return nil, err
	}
	return app.Open(ctx, cfg, app.Options{
		NoStore:  noStore,
		NoFiles:  noFiles,
		Sequence: sequence,
	}, logger)
}
