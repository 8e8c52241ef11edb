package sweep

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ftsim/capsim/pkg/assembly"
	"github.com/ftsim/capsim/pkg/capacitance"
)

// ResultRow is one sweep step's capacitance sample in picofarads, in
// PositiveBodies order.
type ResultRow struct {
	Values []float64
	Total  float64
}

func resultRowFrom(results []capacitance.Result) ResultRow {
	row := ResultRow{Values: make([]float64, 0, len(results))}
	for _, r := range results {
		pf := r.Picofarads()
		row.Values = append(row.Values, pf)
		row.Total += pf
	}
	return row
}

// resultsHeader builds Row,A1_model_pF,...,C2_model_pF,Total_pF
func resultsHeader() []string {
	header := []string{"Row"}
	for _, name := range assembly.PositiveBodies() {
		header = append(header, name+"_pF")
	}
	return append(header, "Total_pF")
}

// WriteResults writes the sweep result table: one line per row, 1-based row
// numbers, fixed 5-decimal picofarad values.
func WriteResults(filename string, rows []ResultRow) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(resultsHeader()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range rows {
		record := make([]string, 0, len(row.Values)+2)
		record = append(record, strconv.Itoa(i+1))
		for _, v := range row.Values {
			record = append(record, strconv.FormatFloat(v, 'f', 5, 64))
		}
		record = append(record, strconv.FormatFloat(row.Total, 'f', 5, 64))
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadResults reads a result table written by WriteResults
func ReadResults(filename string) ([]ResultRow, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open results file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read results file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("results file is empty")
	}

	rows := make([]ResultRow, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) < 3 {
			return nil, fmt.Errorf("row %d: expected at least 3 columns, got %d", i+1, len(record))
		}

		row := ResultRow{Values: make([]float64, 0, len(record)-2)}
		for _, field := range record[1 : len(record)-1] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid value %q: %w", i+1, field, err)
			}
			row.Values = append(row.Values, v)
		}

		total, err := strconv.ParseFloat(record[len(record)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid total %q: %w", i+1, record[len(record)-1], err)
		}
		row.Total = total
		rows = append(rows, row)
	}
	return rows, nil
}
