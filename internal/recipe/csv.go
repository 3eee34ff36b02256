package recipe

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// DecodeCSV reads a recipe table. The header row names the columns; an empty
// cell is a null property and a row of only empty cells is a null step.
func DecodeCSV(r io.Reader, schema Schema) (Recipe, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return Recipe{}, nil
	}
	if err != nil {
		return Recipe{}, fmt.Errorf("read csv header: %w", err)
	}
	cols := make([]ColumnID, len(header))
	for i, h := range header {
		cols[i] = ColumnID(strings.TrimSpace(h))
	}

	var steps []*Step
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Recipe{}, fmt.Errorf("read csv row %d: %w", row, err)
		}

		cells := make([]cell, 0, len(record))
		blank := true
		for i, v := range record {
			raw := strings.TrimSpace(v)
			if raw != "" {
				blank = false
			}
			cells = append(cells, cell{col: cols[i], raw: raw, null: raw == ""})
		}
		if blank {
			steps = append(steps, nil)
			continue
		}

		step, err := buildStep(schema, cells)
		if err != nil {
			return Recipe{}, fmt.Errorf("step %d: %w", row, err)
		}
		steps = append(steps, step)
	}
	return Recipe{steps: steps}, nil
}

// EncodeCSV writes a recipe table with the union of all step columns.
// Absent and null properties both encode as empty cells. A deploy column is
// added when some step overrides its action's schema default.
func EncodeCSV(w io.Writer, r Recipe, schema Schema) error {
	seen := make(map[ColumnID]bool)
	var cols []ColumnID
	overridden := false
	for _, s := range r.steps {
		if s == nil {
			continue
		}
		for _, col := range s.Columns() {
			if !seen[col] {
				seen[col] = true
				cols = append(cols, col)
			}
		}
		if s.deploy != defaultDeploy(schema, s) {
			overridden = true
		}
	}
	sortColumns(cols)

	header := make([]string, 0, len(cols)+1)
	for _, col := range cols {
		header = append(header, string(col))
	}
	if overridden {
		header = append(header, DeployKey)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, s := range r.steps {
		record := make([]string, len(header))
		if s != nil {
			for i, col := range cols {
				if p := s.properties[col]; p != nil {
					record[i] = p.raw
				}
			}
			if overridden && s.deploy != defaultDeploy(schema, s) {
				record[len(record)-1] = s.deploy.String()
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
