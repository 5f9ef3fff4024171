package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mitsumolabs/quotetree/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive estimation session",
	Long:  `Starts the engine in interactive mode on the terminal, walking through the question tree to an estimate.`,
	Run: func(cmd *cobra.Command, args []string) {
		dir, _ := cmd.Flags().GetString("dir")
		if !cmd.Flags().Changed("dir") && len(args) > 0 {
			dir = args[0]
		}
		debug, _ := cmd.Flags().GetBool("debug")
		plain, _ := cmd.Flags().GetBool("plain")
		strict, _ := cmd.Flags().GetBool("strict")
		model, _ := cmd.Flags().GetString("model")

		opts := cli.RunOptions{
			ConfigDir: dir,
			Debug:     debug,
			Plain:     plain,
			Strict:    strict,
			Model:     model,
		}
		if err := cli.Execute(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("plain", false, "Disable the TUI and use line-based prompts")
	runCmd.Flags().Bool("strict", false, "Treat configuration defects as hard errors")
	runCmd.Flags().String("model", "", "Chat model used for free-text classification")

	// Make 'run' the default if no command is provided
	rootCmd.Run = runCmd.Run
}
