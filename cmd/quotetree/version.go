package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mitsumolabs/quotetree"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of quotetree",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("quotetree version %s\n", strings.TrimSpace(quotetree.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
