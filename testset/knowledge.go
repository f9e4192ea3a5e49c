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
	"context"
	"log/slog"
	"sort"

	"github.com/poiesic/qagen/ai"
	"github.com/poiesic/qagen/core"
)

// KnowledgeBase is a read-only view over one chunk's records, handed to
// the generator as the source material for one remote call.
//
// When an embedder is available, Documents orders the texts by proximity
// to the chunk's embedding centroid so the most representative content
// leads the prompt. Embedding quality is advisory, not correctness: any
// embedding failure degrades to plain record order.
type KnowledgeBase struct {
	records  []core.Record
	embedder ai.Embedder
	logger   *slog.Logger
}

// NewKnowledgeBase creates a knowledge-base view over records.
// embedder may be nil, in which case document order equals record order.
func NewKnowledgeBase(records []core.Record, embedder ai.Embedder) *KnowledgeBase {
	return &KnowledgeBase{
		records:  records,
		embedder: embedder,
		logger:   slog.Default().With("component", "knowledge-base"),
	}
}

// Len returns the number of records in the view.
func (kb *KnowledgeBase) Len() int {
	return len(kb.records)
}

// Records returns the underlying records in chunk order.
func (kb *KnowledgeBase) Records() []core.Record {
	return kb.records
}

// Documents returns the record texts for the generation prompt, most
// representative first when embeddings are available.
func (kb *KnowledgeBase) Documents(ctx context.Context) []string {
	texts := make([]string, len(kb.records))
	for i, r := range kb.records {
		texts[i] = r.Text
	}

	if kb.embedder == nil || len(texts) < 2 {
		return texts
	}

	vectors, err := kb.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		kb.logger.Warn("embedding failed, using record order", "err", err)
		return texts
	}
	if len(vectors) != len(texts) {
		kb.logger.Warn("embedding count mismatch, using record order",
			"expected", len(texts), "got", len(vectors))
		return texts
	}

	for i := range vectors {
		vectors[i] = normalizeVector(vectors[i])
	}
	center := normalizeVector(centroid(vectors))

	scores := make([]float32, len(texts))
	for i, v := range vectors {
		scores[i] = dot(v, center)
	}

	order := make([]int, len(texts))
	for i := range order {
		order[i] = i
	}
	// Stable so equal scores keep record order
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	ordered := make([]string, len(texts))
	for i, idx := range order {
		ordered[i] = texts[idx]
	}
	return ordered
}
