package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the tidewatch version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tidewatch %s\n", Version)
	},
}
