package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slchatlog/slchatlog-go/pkg/slchatlog"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List event type names",
	Long: `List the event type names accepted by --types and --exclude-types.

Types of the extended notice set are only produced with --extended.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, name := range slchatlog.EventTypeNames() {
			if _, err := fmt.Fprintln(out, name); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
