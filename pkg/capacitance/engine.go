// Package capacitance estimates the capacitance between each positive
// electrode and its paired counter-electrode with a per-triangle
// parallel-plate approximation: every surface triangle probes the gap to the
// counter-surface with rays along its normal.
package capacitance

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ftsim/capsim/pkg/assembly"
	"github.com/ftsim/capsim/pkg/geometry"
	"github.com/ftsim/capsim/pkg/obj"
)

// Physical constants and probe parameters. Geometry is in millimeters;
// capacitance contributions convert to SI at the probe site.
const (
	Epsilon0 = 8.854e-12 // F/m, vacuum permittivity
	// GlycerinRelativePermittivity is the relative permittivity of the
	// glycerin filling the electrode gaps.
	GlycerinRelativePermittivity = 42.28
	// MaxProbeDistance bounds the gap probe rays, in mm. Surfaces further
	// away contribute nothing.
	MaxProbeDistance = 2.0

	mm2ToM2 = 1e-6
	mmToM   = 1e-3

	faradsToPicofarads = 1e12
)

// Result is one positive body's capacitance sample
type Result struct {
	Body          string
	Capacitance   float64 // Farads
	TriangleCount int
	HitCount      int
}

// Picofarads returns the capacitance in pF
func (r Result) Picofarads() float64 {
	return r.Capacitance * faradsToPicofarads
}

// Engine extracts transformed electrode geometry and runs the ray-probe
// capacitance estimate. It is not safe for concurrent use; the sweep driver
// serializes refreshes and calculations per step.
type Engine struct {
	models    map[string]*obj.Model
	hierarchy *assembly.Hierarchy
	logger    *slog.Logger

	// Rebuilt wholesale by RefreshGeometry
	triangles map[string][]geometry.Triangle
	scenes    map[string]*Scene
}

// NewEngine creates an engine over the loaded assembly models. Call
// RefreshGeometry before the first Calculate.
func NewEngine(models map[string]*obj.Model, hierarchy *assembly.Hierarchy, logger *slog.Logger) *Engine {
	return &Engine{
		models:    models,
		hierarchy: hierarchy,
		logger:    logger,
		triangles: make(map[string][]geometry.Triangle),
		scenes:    make(map[string]*Scene),
	}
}

// extractTriangles transforms every triangle of a model by m
func extractTriangles(model *obj.Model, m geometry.Mat4) []geometry.Triangle {
	triangles := make([]geometry.Triangle, 0, model.TriangleCount())
	for i := 0; i < model.TriangleCount(); i++ {
		triangles = append(triangles, model.Triangle(i).Transform(m))
	}
	return triangles
}

// RefreshGeometry re-extracts all positive-body triangles and rebuilds the
// counter-electrode ray scenes under the current transform hierarchy state.
// Must be called after every transform change and before Calculate.
func (e *Engine) RefreshGeometry() {
	e.triangles = make(map[string][]geometry.Triangle)
	e.scenes = make(map[string]*Scene)

	for _, name := range assembly.PositiveBodies() {
		model, ok := e.models[name]
		if !ok {
			e.logger.Warn("no mesh loaded for positive body", "body", name)
			continue
		}
		e.triangles[name] = extractTriangles(model, e.hierarchy.CombinedTransform(name))
	}

	// One scene per counter-electrode, shared by the two positives paired
	// with it.
	negativeScenes := make(map[string]*Scene)
	for _, name := range assembly.PositiveBodies() {
		negative, ok := assembly.PairedNegative(name)
		if !ok {
			e.logger.Warn("positive body has no negative pairing", "body", name)
			continue
		}

		scene, built := negativeScenes[negative]
		if !built {
			model, ok := e.models[negative]
			if !ok {
				e.logger.Warn("no mesh loaded for negative body", "body", negative)
				continue
			}

			tris := extractTriangles(model, e.hierarchy.CombinedTransform(negative))
			var err error
			scene, err = NewScene(tris)
			if err != nil {
				e.logger.Warn("failed to index negative body", "body", negative, "err", err)
				continue
			}
			negativeScenes[negative] = scene
		}

		e.scenes[name] = scene
	}
}

// Calculate evaluates the capacitance of every positive body against its
// paired counter-electrode, in fixed body order. Bodies with missing
// geometry yield zero-valued results; the calculation never aborts as a
// whole.
func (e *Engine) Calculate() []Result {
	results := make([]Result, 0, len(assembly.PositiveBodies()))
	for _, name := range assembly.PositiveBodies() {
		results = append(results, e.calculateBody(name))
	}
	return results
}

func (e *Engine) calculateBody(name string) Result {
	result := Result{Body: name}

	triangles, ok := e.triangles[name]
	if !ok || len(triangles) == 0 {
		e.logger.Warn("no triangles for body, returning zero result", "body", name)
		return result
	}

	scene, ok := e.scenes[name]
	if !ok {
		e.logger.Warn("no ray scene for body, returning zero result", "body", name)
		result.TriangleCount = len(triangles)
		return result
	}

	result.TriangleCount = len(triangles)
	for _, tri := range triangles {
		if contribution := e.probeTriangle(tri, scene); contribution > 0 {
			result.Capacitance += contribution
			result.HitCount++
		}
	}

	return result
}

// probeTriangle casts rays from the triangle centroid along +normal and
// -normal and sums the parallel-plate contribution of each hit:
// C = eps0 * epsR * A / d. Both directions are accumulated when both hit;
// this models a thin gap probed from both faces.
func (e *Engine) probeTriangle(tri geometry.Triangle, scene *Scene) float64 {
	center := tri.Center()
	normal := tri.Normal()
	area := tri.Area() * mm2ToM2

	total := 0.0
	for _, dir := range []geometry.Vector3{normal, normal.Neg()} {
		distance, ok := scene.Raycast(center, dir, MaxProbeDistance)
		if !ok {
			continue
		}
		gap := distance * mmToM
		if gap > 0 {
			total += Epsilon0 * GlycerinRelativePermittivity * area / gap
		}
	}
	return total
}

// PrintResults writes the formatted result table used by the CLI
func PrintResults(w io.Writer, results []Result) {
	fmt.Fprintln(w, strings.Repeat("=", 64))
	fmt.Fprintln(w, "CAPACITANCE CALCULATION RESULTS")
	fmt.Fprintln(w, strings.Repeat("=", 64))

	total := 0.0
	for _, r := range results {
		fmt.Fprintf(w, "%-12s: %12.5f pF (Hits: %4d/%4d)", r.Body, r.Picofarads(), r.HitCount, r.TriangleCount)
		if r.TriangleCount > 0 {
			fmt.Fprintf(w, " [%.1f%%]", 100.0*float64(r.HitCount)/float64(r.TriangleCount))
		}
		fmt.Fprintln(w)
		total += r.Capacitance
	}

	fmt.Fprintln(w, strings.Repeat("-", 64))
	fmt.Fprintf(w, "%-12s: %12.5f pF\n", "TOTAL", total*faradsToPicofarads)
	fmt.Fprintln(w, strings.Repeat("=", 64))
}
