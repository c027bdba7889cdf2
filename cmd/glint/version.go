package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/glint"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of glint",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "glint version %s\n", strings.TrimSpace(glint.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
