package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lgarreta/ecuapassdocs/internal/export"
)

var (
	exportOut   string
	exportLimit int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the stored records to an XLSX workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if noStore {
			return fmt.Errorf("export reads the database; drop --no-store")
		}
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		b, err := export.NewService(a.Documents, a.Logger).ExportDocumentsXLSX(cmd.Context(), exportLimit)
		if err != nil {
			return err
		}
		if err := os.WriteFile(exportOut, b, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", exportOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "- Output: %s\n", exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "ecuapass.xlsx", "output XLSX file")
	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "newest documents to export (0 = all)")
}
