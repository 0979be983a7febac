package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	gographviz "github.com/goccy/go-graphviz"
	"github.com/spf13/cobra"

	"github.com/rtctrl/rtctrl"
	"github.com/rtctrl/rtctrl/graphviz"
)

var format string

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Render a timed automaton to a Graphviz figure",
	RunE: func(cmd *cobra.Command, args []string) error {
		plant, err := loadPlant(inputFile)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
			return err
		}
		outPath := filepath.Join(outputDir, plant.Name+"."+format)
		out, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer func() { _ = out.Close() }()

		w := graphviz.NewTAWriter(&graphviz.Config{Font: graphviz.Helvetica, RankDir: graphviz.LeftToRight})
		if err := w.Flush(out, plant, gographvizFormat()); err != nil {
			return err
		}
		fmt.Printf("figure written to %s\n", outPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vizCmd)
	vizCmd.Flags().StringVarP(&format, "format", "F", "svg", "output format")
}

func gographvizFormat() gographviz.Format {
	return gographviz.Format(format)
}

func loadPlant(path string) (*rtctrl.TA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	name := filepath.Base(path)
	if ext := filepath.Ext(name); ext != "" {
		name = name[:len(name)-len(ext)]
	}
	r := graphviz.NewTAReader()
	return r.Load(f, name)
}
