package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	License = "Apache-2.0"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the extui version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("extui v%s (%s)\n", Version, License)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
