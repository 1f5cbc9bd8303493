package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var docPrint bool

var docCmd = &cobra.Command{
	Use:   "doc <name>-azure-CACHE.json",
	Short: "Process one cached analysis result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Processor.ProcessFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if docPrint {
			b, err := json.MarshalIndent(res.Record, "", "    ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d/%d keys filled\n", res.Path, res.Record.Filled(), res.Record.Len())
		if res.ResultsPath != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "- Record: %s\n", res.ResultsPath)
		}
		return nil
	},
}

func init() {
	docCmd.Flags().BoolVarP(&docPrint, "print", "p", false, "print the record as JSON")
}
