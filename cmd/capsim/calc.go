package main

import (
	"fmt"
	"os"

	"github.com/ftsim/capsim/pkg/capacitance"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate capacitance for the assembly at rest",
	Long: `Load the assembly meshes, place every body at its rest position and
calculate the capacitance of each positive electrode against its paired
counter-electrode.`,
	Run: runCalc,
}

func init() {
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) {
	logger := newLogger()

	_, _, engine, err := setupEngine(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	engine.RefreshGeometry()
	results := engine.Calculate()
	capacitance.PrintResults(os.Stdout, results)
}
