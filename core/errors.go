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
	"errors"
	"fmt"
	"strings"
)

// Domain errors
var (
	// ErrMissingCredentials indicates required provider credentials are absent
	// from the environment. Fatal before any processing starts.
	ErrMissingCredentials = errors.New("missing provider credentials")

	// ErrRateLimited indicates the remote provider rejected a call due to
	// rate limiting. This is the designated transient failure: callers may
	// retry it with backoff.
	ErrRateLimited = errors.New("provider rate limited")

	// ErrNoData indicates a run produced zero generated pairs, so there is
	// nothing to write.
	ErrNoData = errors.New("no data was generated")

	// ErrEmptyRecord indicates a Record with empty text.
	ErrEmptyRecord = errors.New("record text cannot be empty")
)

// SchemaError indicates required input columns are absent from a source.
// Fatal before any processing starts.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns: %s", e.Source, strings.Join(e.Missing, ", "))
}

// RetriesExhaustedError is returned when a retried operation failed on
// every attempt. It wraps the error from the last attempt.
type RetriesExhaustedError struct {
	Attempts int
	Last     error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("exceeded maximum retries (%d attempts): %v", e.Attempts, e.Last)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Last
}
