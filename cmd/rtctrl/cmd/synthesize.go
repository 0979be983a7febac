package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rtctrl/rtctrl/controller"
	"github.com/rtctrl/rtctrl/graphviz"
	"github.com/rtctrl/rtctrl/search"
	"github.com/rtctrl/rtctrl/translate"
)

var (
	formulaFile        string
	controllerActions  string
	environmentActions string
	workers            int
	incrementalLabel   bool
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize",
	Short: "Synthesize a supervising controller for a plant against an MTL specification",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer func() { _ = logger.Sync() }()

		plant, err := loadPlant(inputFile)
		if err != nil {
			return fmt.Errorf("loading plant: %w", err)
		}
		phi, err := loadFormula(formulaFile)
		if err != nil {
			return fmt.Errorf("loading formula: %w", err)
		}
		phi = phi.ToPositiveNormalForm()

		ata, err := translate.Translate(phi, plant.Alphabet...)
		if err != nil {
			return fmt.Errorf("translating formula: %w", err)
		}

		K := regionBound
		if mc := phi.MaxConstant(); mc > K {
			K = mc
		}

		root, _, err := search.Build(context.Background(), search.Config{
			TA:                 plant,
			ATA:                ata,
			ControllerActions:  splitActions(controllerActions),
			EnvironmentActions: splitActions(environmentActions),
			K:                  K,
			IncrementalLabel:   incrementalLabel,
			Workers:            workers,
		})
		if err != nil {
			return fmt.Errorf("building search tree: %w", err)
		}
		logger.Info("search complete",
			zap.String("label", root.GetLabel().String()),
			zap.Int("tree_size", search.Size(root)))

		if root.GetLabel() != search.Top {
			return fmt.Errorf("specification is not realizable against this plant: root label %s", root.GetLabel())
		}

		ctrl, err := controller.Extract(root, plant, K)
		if err != nil {
			return fmt.Errorf("extracting controller: %w", err)
		}

		if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
			return err
		}
		out, err := os.Create(filepath.Join(outputDir, ctrl.Name+".dot"))
		if err != nil {
			return err
		}
		defer func() { _ = out.Close() }()

		w := graphviz.NewTAWriter(&graphviz.Config{Font: graphviz.Helvetica, RankDir: graphviz.LeftToRight})
		if err := w.Flush(out, ctrl, gographvizFormat()); err != nil {
			return err
		}
		fmt.Printf("controller written to %s\n", out.Name())
		return nil
	},
}

func splitActions(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func init() {
	rootCmd.AddCommand(synthesizeCmd)
	synthesizeCmd.Flags().StringVarP(&formulaFile, "formula", "f", "", "MTL formula JSON file")
	synthesizeCmd.Flags().StringVar(&controllerActions, "controller-actions", "", "comma-separated controller action symbols")
	synthesizeCmd.Flags().StringVar(&environmentActions, "environment-actions", "", "comma-separated environment action symbols")
	synthesizeCmd.Flags().IntVar(&workers, "workers", 0, "worker-pool size, 0 runs the expansion synchronously")
	synthesizeCmd.Flags().BoolVar(&incrementalLabel, "incremental-label", true, "label nodes incrementally as children resolve")
}
