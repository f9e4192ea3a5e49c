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


package core

import (
	"fmt"
	"strings"
)

// ValidateRecord validates a Record according to domain rules.
//
// Validation rules:
//   - Text must not be empty after trimming whitespace
//   - Source must be a known source kind
//
// NOT validated:
//   - Id (0 is a legal hash value)
//   - Index (any non-negative ordering is acceptable)
func ValidateRecord(record *Record) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrEmptyRecord)
	}

	if strings.TrimSpace(record.Text) == "" {
		return ErrEmptyRecord
	}

	if record.Source != SourceCSV && record.Source != SourcePDF {
		return fmt.Errorf("invalid record source %q", record.Source)
	}

	return nil
}
