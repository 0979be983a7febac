package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rtctrl/rtctrl/env"
)

var (
	inputFile   string
	outputDir   string
	regionBound int

	logger      *zap.Logger
	environment *env.Environment
)

var rootCmd = &cobra.Command{
	Use:   "rtctrl",
	Short: "rtctrl synthesizes and visualizes real-time controllers",
	Long:  `rtctrl builds an alternating timed automaton from a metric temporal logic formula, searches the two-player game over a plant timed automaton, and extracts a supervising controller.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := env.NewLogger()
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
		environment = env.Load(logger)

		if !cmd.Flags().Changed("output") {
			outputDir = environment.OutputDir
		}
		if !cmd.Flags().Changed("region-bound") {
			regionBound = environment.RegionBound
		}
		if !cmd.Flags().Changed("workers") {
			workers = environment.Workers
		}
		if !cmd.Flags().Changed("incremental-label") {
			incrementalLabel = environment.IncrementalLog
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "input timed-automaton Graphviz dot file")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", ".", "output directory")
	rootCmd.PersistentFlags().IntVarP(&regionBound, "region-bound", "K", 4, "region construction bound")
}
