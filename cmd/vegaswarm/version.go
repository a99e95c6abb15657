package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pastarafian/VegaMCP-sub003/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vegaswarm version %s (commit %s)\n", version.Get(), version.Commit())
	},
}
