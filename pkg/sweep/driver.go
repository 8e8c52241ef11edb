package sweep

import (
	"fmt"
	"log/slog"

	"github.com/ftsim/capsim/pkg/assembly"
	"github.com/ftsim/capsim/pkg/capacitance"
	"github.com/ftsim/capsim/pkg/geometry"
)

// progressInterval controls how often a running sweep logs a row
const progressInterval = 50

// Driver replays a displacement sweep through the transform hierarchy and
// the capacitance engine. Rows are strictly sequential in Run; StepTo gives
// random access to a single row's transforms.
type Driver struct {
	hierarchy *assembly.Hierarchy
	engine    *capacitance.Engine
	logger    *slog.Logger

	series  map[assembly.SubGroup]GroupSeries
	maxRows int
	current int
	stats   map[assembly.SubGroup]*CentroidStats
	loaded  bool
}

// NewDriver creates an unloaded driver; call Load before Run or StepTo
func NewDriver(hierarchy *assembly.Hierarchy, engine *capacitance.Engine, logger *slog.Logger) *Driver {
	return &Driver{
		hierarchy: hierarchy,
		engine:    engine,
		logger:    logger,
		series:    make(map[assembly.SubGroup]GroupSeries),
		stats:     make(map[assembly.SubGroup]*CentroidStats),
		current:   -1,
	}
}

// Load reads the three per-marker files of every movable group from dir.
// The sweep length is the maximum usable row count across groups; a group
// with fewer rows stops contributing transforms past its own length.
func (d *Driver) Load(dir string) error {
	d.maxRows = 0
	for _, g := range assembly.MovableGroups() {
		series, err := LoadGroupSeries(dir, g, d.logger)
		if err != nil {
			return fmt.Errorf("loading displacement data for %s: %w", g, err)
		}
		d.series[g] = series
		if rows := series.Rows(); rows > d.maxRows {
			d.maxRows = rows
		}
	}

	if d.maxRows == 0 {
		return fmt.Errorf("no usable displacement rows in %s", dir)
	}

	d.loaded = true
	d.logger.Info("displacement sweep loaded", "dir", dir, "rows", d.maxRows)
	return nil
}

// Rows returns the total sweep length
func (d *Driver) Rows() int {
	return d.maxRows
}

// Current returns the last applied row index, or -1 before any step
func (d *Driver) Current() int {
	return d.current
}

// RowOffsets returns the marker displacements a group contributes at a row,
// in millimeters. ok is false when the group's series has no data for that
// row and the group rests at its nominal placement.
func (d *Driver) RowOffsets(g assembly.SubGroup, row int) (a, b, c geometry.Vector3, ok bool) {
	series, exists := d.series[g]
	if !exists || row < 0 || row >= series.Rows() {
		return geometry.Vector3{}, geometry.Vector3{}, geometry.Vector3{}, false
	}
	a, b, c = series.Offsets(row)
	return a, b, c, true
}

// Stats returns the centroid statistics accumulated so far, in group order
func (d *Driver) Stats() []CentroidStats {
	out := make([]CentroidStats, 0, len(d.stats))
	for _, g := range assembly.MovableGroups() {
		if s, ok := d.stats[g]; ok {
			out = append(out, *s)
		}
	}
	return out
}

// resetStats re-seeds the centroid statistics from the rest markers
func (d *Driver) resetStats() {
	d.stats = make(map[assembly.SubGroup]*CentroidStats)
	for _, g := range assembly.MovableGroups() {
		s := newCentroidStats(g)
		d.stats[g] = &s
	}
}

// applyRow clears all group transforms and applies row's rigid transforms
// for every group that still has data at that index. Centroid statistics
// belong to a sweep run, so only Run folds rows into them; step mode applies
// transforms without touching a finished run's numbers.
func (d *Driver) applyRow(row int, recordStats bool) {
	d.hierarchy.ResetGroups()

	for _, g := range assembly.MovableGroups() {
		series := d.series[g]
		if row >= series.Rows() {
			continue
		}

		restA, restB, restC := assembly.RestMarkers(g)
		offA, offB, offC := series.Offsets(row)
		defA := restA.Add(offA)
		defB := restB.Add(offB)
		defC := restC.Add(offC)

		ref := assembly.ReferenceCorner(g)
		restFrame := geometry.BuildFrame(restA, restB, restC, ref)
		deformedFrame := geometry.BuildFrame(defA, defB, defC, ref)
		if deformedFrame.Degenerate {
			d.logger.Warn("deformed marker triple is degenerate, using centroid origin",
				"group", g.String(), "row", row+1)
		}

		d.hierarchy.ApplyTransform(g, geometry.RigidTransform(restFrame, deformedFrame))

		if recordStats {
			if s, ok := d.stats[g]; ok {
				s.update(defA, defB, defC)
			}
		}
	}

	d.current = row
}

// Run executes the full sweep and writes the result table to outPath
func (d *Driver) Run(outPath string) error {
	if !d.loaded {
		return fmt.Errorf("sweep data not loaded")
	}

	d.resetStats()
	rows := make([]ResultRow, 0, d.maxRows)

	for row := 0; row < d.maxRows; row++ {
		d.applyRow(row, true)
		d.engine.RefreshGeometry()
		results := d.engine.Calculate()
		rows = append(rows, resultRowFrom(results))

		if row == 0 || row == d.maxRows-1 || (row+1)%progressInterval == 0 {
			d.logger.Info("sweep progress",
				"row", row+1, "rows", d.maxRows,
				"total_pF", fmt.Sprintf("%.5f", rows[row].Total))
		}
	}

	if err := WriteResults(outPath, rows); err != nil {
		return fmt.Errorf("writing sweep results: %w", err)
	}

	d.logger.Info("sweep complete", "rows", d.maxRows, "out", outPath)
	return nil
}

// StepTo applies a single row's transforms without computing capacitance.
// Out-of-range rows are rejected, not clamped.
func (d *Driver) StepTo(row int) error {
	if !d.loaded {
		return fmt.Errorf("sweep data not loaded")
	}
	if row < 0 || row >= d.maxRows {
		return fmt.Errorf("row %d out of range [0, %d)", row, d.maxRows)
	}

	d.applyRow(row, false)
	return nil
}
