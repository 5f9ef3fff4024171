package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mitsumolabs/quotetree/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the question tree and price book for consistency",
	Long:  `Loads the configuration and reports dead step references, unknown selection targets and missing factor tables.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Configuration is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	dir, _ := cmd.Flags().GetString("dir")
	if !cmd.Flags().Changed("dir") && len(args) > 0 {
		dir = args[0]
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	return cfg.Validate()
}
