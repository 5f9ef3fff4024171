package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "quotetree",
	Short: "QuoteTree is a conversational cost estimation engine",
	Long:  `QuoteTree walks users through a YAML-defined question tree and produces a three-tier cost estimate.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing tree.yaml, prices.yaml and rules.yaml")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
