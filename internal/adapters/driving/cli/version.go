package cli

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the reportex version",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("reportex %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
