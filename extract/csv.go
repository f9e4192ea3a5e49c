// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/qagen/core"
)

// DefaultCSVColumns are the columns the knowledge-base CSVs carry.
var DefaultCSVColumns = []string{"summary", "text"}

// CSV reads a CSV file and returns one Record per data row, in row order.
// Each record's text is the space-joined concatenation of the required
// columns. A missing required column fails with *core.SchemaError before
// any row is processed. Rows whose required columns are all empty are
// skipped with a warning.
func CSV(path string, columns []string) ([]core.Record, error) {
	if len(columns) == 0 {
		columns = DefaultCSVColumns
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	return readCSV(f, path, columns)
}

func readCSV(r io.Reader, source string, columns []string) ([]core.Record, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &core.SchemaError{Source: source, Missing: columns}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	// Resolve required column positions from the header
	indices := make([]int, 0, len(columns))
	var missing []string
	for _, col := range columns {
		idx := -1
		for i, name := range header {
			if strings.TrimSpace(name) == col {
				idx = i
				break
			}
		}
		if idx < 0 {
			missing = append(missing, col)
			continue
		}
		indices = append(indices, idx)
	}
	if len(missing) > 0 {
		return nil, &core.SchemaError{Source: source, Missing: missing}
	}

	var records []core.Record
	row := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", row+1, err)
		}

		parts := make([]string, 0, len(indices))
		for _, idx := range indices {
			if idx < len(fields) {
				parts = append(parts, strings.TrimSpace(fields[idx]))
			}
		}
		text := strings.TrimSpace(strings.Join(parts, " "))
		record := core.NewRecord(row, core.SourceCSV, text)
		if err := core.ValidateRecord(&record); err != nil {
			slog.Warn("skipping CSV row", "source", source, "row", row+1, "err", err)
			row++
			continue
		}

		records = append(records, record)
		row++
	}

	slog.Debug("extracted CSV records", "source", source, "records", len(records))
	return records, nil
}
