package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ftsim/capsim/pkg/sweep"
	"github.com/spf13/cobra"
)

var (
	csvDir  string
	outPath string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run a full displacement sweep and record per-row capacitance",
	Long: `Replay the measured marker displacement series for all three groups. Each
row is converted into rigid group transforms, the geometry is refreshed and
the capacitance of every electrode is recorded to the results file.`,
	Run: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVar(&csvDir, "csv", "csv_data", "directory containing the per-marker displacement CSV files")
	sweepCmd.Flags().StringVar(&outPath, "out", "", "results file path (default <csv>/capacitance_results.csv)")
}

func runSweep(cmd *cobra.Command, args []string) {
	logger := newLogger()

	_, hierarchy, engine, err := setupEngine(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	driver := sweep.NewDriver(hierarchy, engine, logger)
	if err := driver.Load(csvDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if outPath == "" {
		outPath = filepath.Join(csvDir, "capacitance_results.csv")
	}

	if err := driver.Run(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sweep complete: %d rows written to %s\n\n", driver.Rows(), outPath)
	sweep.PrintCentroidStats(os.Stdout, driver.Stats())
}
