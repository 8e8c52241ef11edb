package main

import (
	"fmt"
	"os"

	"github.com/ftsim/capsim/pkg/assembly"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Display information about the loaded assembly",
	Long:  "Show per-body mesh statistics, bounding boxes, group assignments and electrode pairings.",
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	logger := newLogger()

	models, err := assembly.LoadModels(modelsDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Assembly Information")
	fmt.Println("====================")
	fmt.Printf("Models directory: %s\n\n", modelsDir)

	for _, body := range assembly.AllBodies() {
		fmt.Printf("%s\n", body.Name)
		fmt.Printf("  Group: %s (parent %s)\n", body.Group, body.Group.Parent())
		fmt.Printf("  Rest position: (%.3f, %.3f, %.3f)\n", body.WorldPos.X, body.WorldPos.Y, body.WorldPos.Z)
		if body.PairedNegative != "" {
			fmt.Printf("  Paired with: %s\n", body.PairedNegative)
		}

		model, ok := models[body.Name]
		if !ok {
			fmt.Println("  Mesh: not loaded")
			fmt.Println()
			continue
		}

		box := model.BoundingBox()
		size := box.Size()
		fmt.Printf("  Triangles: %d, Vertices: %d\n", model.TriangleCount(), model.VertexCount())
		fmt.Printf("  Surface Area: %.6f mm²\n", model.SurfaceArea())
		fmt.Printf("  Size: %.3f x %.3f x %.3f mm\n", size.X, size.Y, size.Z)
		fmt.Println()
	}
}
