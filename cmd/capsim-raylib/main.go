package main

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ftsim/capsim/pkg/assembly"
	"github.com/ftsim/capsim/pkg/capacitance"
	"github.com/ftsim/capsim/pkg/geometry"
	"github.com/ftsim/capsim/pkg/obj"
	"github.com/ftsim/capsim/pkg/sweep"
	"github.com/ftsim/capsim/pkg/watcher"
)

type App struct {
	models    map[string]*obj.Model
	hierarchy *assembly.Hierarchy
	engine    *capacitance.Engine
	driver    *sweep.Driver
	logger    *slog.Logger

	csvDir string

	camera         rl.Camera3D
	cameraDistance float32
	cameraAngleX   float32
	cameraAngleY   float32
	cameraTarget   rl.Vector3

	wireframeMode bool
	stepMode      bool
	statusLine    string

	// Set by the data watcher goroutine, consumed on the render loop
	reloadPending atomic.Bool
}

func main() {
	modelsDir := "models"
	csvDir := "csv_data"
	if len(os.Args) > 1 {
		modelsDir = os.Args[1]
	}
	if len(os.Args) > 2 {
		csvDir = os.Args[2]
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	models, err := assembly.LoadModels(modelsDir, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading models: %v\n", err)
		os.Exit(1)
	}

	hierarchy := assembly.NewHierarchy()
	engine := capacitance.NewEngine(models, hierarchy, logger)

	app := &App{
		models:    models,
		hierarchy: hierarchy,
		engine:    engine,
		driver:    sweep.NewDriver(hierarchy, engine, logger),
		logger:    logger,
		csvDir:    csvDir,
		statusLine: "C: calculate  S: step mode  N/P: step  B: bulk sweep  Space: wireframe",
	}

	screenWidth := int32(1400)
	screenHeight := int32(900)
	rl.InitWindow(screenWidth, screenHeight, "capsim - Electrode Assembly Viewer")
	rl.SetTargetFPS(60)

	// Frame the whole layout circle
	app.cameraDistance = float32(assembly.LayoutRadius * 4.0)
	app.cameraAngleX = 0.5
	app.cameraAngleY = 0.3
	app.cameraTarget = rl.Vector3{}

	app.camera = rl.Camera3D{
		Position:   rl.Vector3{X: 0, Y: 0, Z: app.cameraDistance},
		Target:     app.cameraTarget,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45.0,
		Projection: rl.CameraPerspective,
	}

	// Reload the sweep data when the CSV files are rewritten on disk
	dataWatcher, err := watcher.NewDataWatcher(csvDir, 500*time.Millisecond, func() {
		app.reloadPending.Store(true)
	}, logger)
	if err != nil {
		logger.Warn("live data reload disabled", "err", err)
	} else {
		dataWatcher.Start()
		defer dataWatcher.Close()
	}

	for !rl.WindowShouldClose() {
		app.reloadDataIfPending()
		app.handleInput()
		app.updateCamera()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))

		rl.BeginMode3D(app.camera)
		app.drawAssembly()
		rl.EndMode3D()

		app.drawUI()
		rl.EndDrawing()
	}

	rl.CloseWindow()
}

// bodyColor picks a draw color per group
func bodyColor(body assembly.Body) rl.Color {
	if body.Marker {
		return rl.Yellow
	}
	switch body.Group {
	case assembly.GroupA:
		return rl.NewColor(230, 80, 80, 255)
	case assembly.GroupB:
		return rl.NewColor(80, 200, 120, 255)
	case assembly.GroupC:
		return rl.NewColor(90, 130, 240, 255)
	case assembly.NegativeGroup:
		return rl.NewColor(160, 160, 170, 255)
	}
	return rl.White
}

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// drawAssembly draws every loaded body under its current combined transform.
// Meshes are drawn immediate-mode because the transforms change per step.
func (app *App) drawAssembly() {
	for _, body := range assembly.AllBodies() {
		model, ok := app.models[body.Name]
		if !ok {
			continue
		}

		transform := app.hierarchy.CombinedTransform(body.Name)
		color := bodyColor(body)
		wireColor := rl.NewColor(color.R, color.G, color.B, 120)

		for i := 0; i < model.TriangleCount(); i++ {
			tri := model.Triangle(i).Transform(transform)
			v1, v2, v3 := toRaylib(tri.V1), toRaylib(tri.V2), toRaylib(tri.V3)

			if app.wireframeMode {
				rl.DrawLine3D(v1, v2, wireColor)
				rl.DrawLine3D(v2, v3, wireColor)
				rl.DrawLine3D(v3, v1, wireColor)
			} else {
				rl.DrawTriangle3D(v1, v2, v3, color)
			}
		}
	}

	// Group centers for orientation
	for _, g := range assembly.MovableGroups() {
		rl.DrawSphere(toRaylib(assembly.GroupCenter(g)), 0.5, rl.Orange)
	}
}

func (app *App) drawUI() {
	rl.DrawText(app.statusLine, 10, 10, 18, rl.RayWhite)

	mode := "filled"
	if app.wireframeMode {
		mode = "wireframe"
	}
	rl.DrawText(fmt.Sprintf("Draw mode: %s", mode), 10, 34, 16, rl.LightGray)

	if app.stepMode {
		rl.DrawText(fmt.Sprintf("Step mode: row %d / %d", app.driver.Current()+1, app.driver.Rows()),
			10, 54, 16, rl.Yellow)
	}
}

func (app *App) handleInput() {
	// Orbit with mouse drag
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		app.cameraAngleY += delta.X * 0.01
		app.cameraAngleX -= delta.Y * 0.01

		if app.cameraAngleX > 1.5 {
			app.cameraAngleX = 1.5
		}
		if app.cameraAngleX < -1.5 {
			app.cameraAngleX = -1.5
		}
	}

	// Zoom with mouse wheel
	wheel := rl.GetMouseWheelMove()
	if wheel != 0 {
		app.cameraDistance *= (1.0 - wheel*0.03)
		if app.cameraDistance < 1.0 {
			app.cameraDistance = 1.0
		}
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		app.wireframeMode = !app.wireframeMode
		fmt.Printf("Wireframe mode: %v\n", app.wireframeMode)
	}

	if rl.IsKeyPressed(rl.KeyC) {
		fmt.Println("\nCalculating capacitance...")
		app.engine.RefreshGeometry()
		capacitance.PrintResults(os.Stdout, app.engine.Calculate())
	}

	if rl.IsKeyPressed(rl.KeyS) {
		fmt.Println("\nInitializing step mode...")
		if err := app.driver.Load(app.csvDir); err != nil {
			fmt.Fprintf(os.Stderr, "Step mode unavailable: %v\n", err)
		} else {
			app.stepMode = true
			if err := app.driver.StepTo(0); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}

	if rl.IsKeyPressed(rl.KeyN) {
		app.stepBy(1)
	}
	if rl.IsKeyPressed(rl.KeyP) {
		app.stepBy(-1)
	}

	if rl.IsKeyPressed(rl.KeyB) {
		fmt.Println("\nStarting bulk capacitance processing...")
		if err := app.driver.Load(app.csvDir); err != nil {
			fmt.Fprintf(os.Stderr, "Bulk processing unavailable: %v\n", err)
			return
		}
		outPath := app.csvDir + "/capacitance_results.csv"
		if err := app.driver.Run(outPath); err != nil {
			fmt.Fprintf(os.Stderr, "Bulk processing failed: %v\n", err)
			return
		}
		fmt.Printf("Results written to %s\n", outPath)
		sweep.PrintCentroidStats(os.Stdout, app.driver.Stats())
	}
}

// reloadDataIfPending re-reads the displacement series after the watcher
// saw the CSV files change. Only meaningful once step mode is active.
func (app *App) reloadDataIfPending() {
	if !app.reloadPending.Swap(false) || !app.stepMode {
		return
	}

	fmt.Println("Displacement data changed, reloading...")
	if err := app.driver.Load(app.csvDir); err != nil {
		fmt.Fprintf(os.Stderr, "Reload failed: %v\n", err)
		app.stepMode = false
		return
	}

	row := app.driver.Current()
	if row < 0 || row >= app.driver.Rows() {
		row = 0
	}
	if err := app.driver.StepTo(row); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

// stepBy moves the step-mode row by delta, staying in bounds
func (app *App) stepBy(delta int) {
	if !app.stepMode {
		fmt.Println("Step mode not active. Press 'S' to initialize.")
		return
	}

	next := app.driver.Current() + delta
	if err := app.driver.StepTo(next); err != nil {
		fmt.Printf("Already at row %d\n", app.driver.Current()+1)
		return
	}
	fmt.Printf("Row %d / %d\n", next+1, app.driver.Rows())
}

// updateCamera positions the orbit camera from its spherical coordinates
func (app *App) updateCamera() {
	x := app.cameraDistance * float32(math.Cos(float64(app.cameraAngleX))) * float32(math.Sin(float64(app.cameraAngleY)))
	y := app.cameraDistance * float32(math.Sin(float64(app.cameraAngleX)))
	z := app.cameraDistance * float32(math.Cos(float64(app.cameraAngleX))) * float32(math.Cos(float64(app.cameraAngleY)))

	app.camera.Position = rl.Vector3{
		X: app.cameraTarget.X + x,
		Y: app.cameraTarget.Y + y,
		Z: app.cameraTarget.Z + z,
	}
	app.camera.Target = app.cameraTarget
}
