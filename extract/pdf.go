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
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/poiesic/qagen/core"
)

// PDF reads a PDF file and returns one Record per page, in page order.
// Pages whose extracted text is empty after trimming whitespace are
// dropped. Any read failure surfaces immediately; there is nothing to
// retry in local file I/O.
func PDF(path string) ([]core.Record, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}

	var records []core.Record
	for page := 1; page <= ctx.PageCount; page++ {
		r, err := pdfcpu.ExtractPageContent(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("failed to extract page %d: %w", page, err)
		}
		if r == nil {
			continue
		}

		stream, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("failed to read page %d content: %w", page, err)
		}

		text := decodeContentText(stream)
		record := core.NewRecord(page-1, core.SourcePDF, strings.TrimSpace(text))
		if err := core.ValidateRecord(&record); err != nil {
			continue
		}

		records = append(records, record)
	}

	slog.Debug("extracted PDF records", "source", path, "pages", ctx.PageCount, "records", len(records))
	return records, nil
}
