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
	"encoding/binary"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated by content-based hashing, so identical content
// produces identical IDs across runs.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Source identifies the kind of input a Record was extracted from.
type Source string

const (
	// SourceCSV marks records extracted from CSV rows.
	SourceCSV Source = "csv"
	// SourcePDF marks records extracted from PDF pages.
	SourcePDF Source = "pdf"
)

// Record is one unit of source content: a CSV row's concatenated columns
// or a PDF page's text. Records are immutable once extracted.
type Record struct {
	Id     ID
	Index  int // Row or page number within the source, 0-based
	Source Source
	Text   string
}

// NewRecord builds a Record with a content-derived ID.
func NewRecord(index int, source Source, text string) Record {
	return Record{
		Id:     IDFromContent(text),
		Index:  index,
		Source: source,
		Text:   text,
	}
}

// QAMetadata carries provenance for a generated question/answer pair.
type QAMetadata struct {
	QuestionType   string `json:"question_type"`
	SeedDocumentID string `json:"seed_document_id,omitempty"`
	Batch          int    `json:"batch"`
}

// QAPair is one generated question/answer/context item.
// Pairs are produced by a Generator and never mutated after being
// appended to a testset.
type QAPair struct {
	Id                  string     `json:"id"`
	Question            string     `json:"question"`
	ReferenceAnswer     string     `json:"reference_answer"`
	ReferenceContext    string     `json:"reference_context"`
	ConversationHistory []string   `json:"conversation_history,omitempty"`
	Metadata            QAMetadata `json:"metadata"`
}
