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


package testset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/poiesic/qagen/core"
)

// Testset is the accumulated output of a generation run: question/answer
// pairs in chunk-completion order.
type Testset struct {
	pairs []core.QAPair
}

// NewTestset creates a testset holding the given pairs.
func NewTestset(pairs []core.QAPair) *Testset {
	return &Testset{pairs: pairs}
}

// Concat builds a testset from per-chunk results, preserving chunk order
// and within-chunk order.
func Concat(results ...[]core.QAPair) *Testset {
	t := &Testset{}
	for _, pairs := range results {
		t.Append(pairs...)
	}
	return t
}

// Append adds pairs to the end of the testset.
func (t *Testset) Append(pairs ...core.QAPair) {
	t.pairs = append(t.pairs, pairs...)
}

// Len returns the number of pairs.
func (t *Testset) Len() int {
	return len(t.pairs)
}

// Pairs returns the pairs in accumulation order.
func (t *Testset) Pairs() []core.QAPair {
	return t.pairs
}

// SaveJSON writes the testset to path as a pretty-printed JSON array with
// two-space indentation. An empty testset creates no file and returns
// core.ErrNoData.
func (t *Testset) SaveJSON(path string) error {
	if t.Len() == 0 {
		return core.ErrNoData
	}

	data, err := json.MarshalIndent(t.pairs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding testset: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// SaveJSONL writes the testset to path with one JSON object per line.
// An empty testset creates no file and returns core.ErrNoData.
func (t *Testset) SaveJSONL(path string) error {
	if t.Len() == 0 {
		return core.ErrNoData
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for i := range t.pairs {
		if err := enc.Encode(&t.pairs[i]); err != nil {
			f.Close()
			return fmt.Errorf("encoding pair %d: %w", i, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// LoadJSONL reads a testset previously written with SaveJSONL. Blank
// lines are ignored; pair order follows line order.
func LoadJSONL(path string) (*Testset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t := &Testset{}
	scanner := bufio.NewScanner(f)
	// Generated answers with long reference contexts can exceed the
	// default 64K token limit
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var pair core.QAPair
		if err := json.Unmarshal(raw, &pair); err != nil {
			return nil, fmt.Errorf("parsing %s line %d: %w", path, line, err)
		}
		t.Append(pair)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return t, nil
}
