package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ftsim/capsim/pkg/assembly"
	"github.com/ftsim/capsim/pkg/capacitance"
	"github.com/ftsim/capsim/pkg/obj"
	"github.com/ftsim/capsim/version"
	"github.com/spf13/cobra"
)

var (
	modelsDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "capsim",
	Short: "Capacitance simulator for a deformable electrode assembly",
	Long: `capsim estimates the capacitance between six positive electrodes and their
shared counter-electrodes as the assembly deforms. Displacement sweeps replay
measured marker offsets; each row is converted into rigid group transforms
and probed with a per-triangle parallel-plate approximation.`,
	Version: version.GetFullVersion(),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&modelsDir, "models", "models", "directory containing the assembly OBJ meshes")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// newLogger builds the logger shared by all subcommands
func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// setupEngine loads the assembly meshes and wires up the transform hierarchy
// and capacitance engine used by every calculating subcommand.
func setupEngine(logger *slog.Logger) (map[string]*obj.Model, *assembly.Hierarchy, *capacitance.Engine, error) {
	models, err := assembly.LoadModels(modelsDir, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading assembly models: %w", err)
	}

	hierarchy := assembly.NewHierarchy()
	engine := capacitance.NewEngine(models, hierarchy, logger)
	return models, hierarchy, engine, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
