// Package sweep replays measured marker displacements through the transform
// hierarchy and records the capacitance of every electrode at each row. It
// covers CSV ingest, the batch sweep loop, random-access step mode, centroid
// statistics and the results file.
package sweep

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ftsim/capsim/pkg/assembly"
	"github.com/ftsim/capsim/pkg/geometry"
)

// metersToMillimeters converts the source displacement unit on ingest
const metersToMillimeters = 1000.0

// GroupSeries holds one sub-assembly's displacement time series, one slice
// per marker, in millimeters.
type GroupSeries struct {
	Group assembly.SubGroup
	A     []geometry.Vector3
	B     []geometry.Vector3
	C     []geometry.Vector3
}

// Rows returns the usable row count of the series: the minimum over the
// three marker files, since a row needs all three offsets.
func (s GroupSeries) Rows() int {
	rows := len(s.A)
	if len(s.B) < rows {
		rows = len(s.B)
	}
	if len(s.C) < rows {
		rows = len(s.C)
	}
	return rows
}

// Offsets returns the marker displacements for one row
func (s GroupSeries) Offsets(row int) (a, b, c geometry.Vector3) {
	return s.A[row], s.B[row], s.C[row]
}

// LoadGroupSeries reads the three per-marker displacement files of one
// sub-assembly from dir: <group>_A.csv, <group>_B.csv, <group>_C.csv.
func LoadGroupSeries(dir string, g assembly.SubGroup, logger *slog.Logger) (GroupSeries, error) {
	series := GroupSeries{Group: g}

	for i, target := range []*[]geometry.Vector3{&series.A, &series.B, &series.C} {
		filename := filepath.Join(dir, fmt.Sprintf("%s_%c.csv", g, 'A'+i))
		offsets, err := loadOffsets(filename, logger)
		if err != nil {
			return GroupSeries{}, fmt.Errorf("loading %s: %w", filename, err)
		}
		*target = offsets
	}

	logger.Info("loaded displacement series",
		"group", g.String(),
		"rowsA", len(series.A), "rowsB", len(series.B), "rowsC", len(series.C),
		"usable", series.Rows())
	return series, nil
}

// loadOffsets reads one marker displacement file: three columns X,Y,Z in
// meters, one header line, converted to millimeters. Malformed rows —
// whether CSV syntax errors or bad coordinate values — are skipped with a
// warning rather than failing the load.
func loadOffsets(filename string, logger *slog.Logger) ([]geometry.Vector3, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var offsets []geometry.Vector3
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping malformed displacement row",
				"file", filepath.Base(filename), "row", row, "err", err)
			continue
		}
		if row == 1 {
			continue // header
		}

		v, err := parseOffsetRow(record)
		if err != nil {
			logger.Warn("skipping malformed displacement row",
				"file", filepath.Base(filename), "row", row, "err", err)
			continue
		}
		offsets = append(offsets, v.Mul(metersToMillimeters))
	}
	return offsets, nil
}

func parseOffsetRow(record []string) (geometry.Vector3, error) {
	if len(record) < 3 {
		return geometry.Vector3{}, fmt.Errorf("expected 3 columns, got %d", len(record))
	}

	var coords [3]float64
	for i := 0; i < 3; i++ {
		value, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return geometry.Vector3{}, fmt.Errorf("invalid coordinate %q: %w", record[i], err)
		}
		coords[i] = value
	}
	return geometry.NewVector3(coords[0], coords[1], coords[2]), nil
}
