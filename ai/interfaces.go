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


package ai

import (
	"context"

	"github.com/poiesic/qagen/core"
)

// GenerateRequest describes one testset-generation call for one chunk of
// source documents. The request is built by the orchestrator and treated
// as read-only by implementations.
type GenerateRequest struct {
	// Documents are the knowledge-base texts the questions must be
	// answerable from, in chunk order.
	Documents []string

	// NumQuestions is how many question/answer pairs to generate.
	NumQuestions int

	// Language is the ISO 639-1 code the questions are written in.
	Language string

	// AgentDescription conditions question generation: a short
	// natural-language description of the assistant under evaluation.
	AgentDescription string

	// QuestionType selects the generation strategy. Must be one of
	// QuestionTypes.
	QuestionType string
}

// Generator produces synthetic question/answer pairs from a set of source
// documents. Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate invokes the remote question generator once for the given
	// request and returns the generated pairs in generation order.
	// Transient provider failures (rate limiting) are reported as errors
	// matching core.ErrRateLimited; the caller decides whether to retry.
	Generate(ctx context.Context, req GenerateRequest) ([]core.QAPair, error)
}

// Embedder generates vector embeddings from text.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in
	// a batch. The returned slice contains embeddings in input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// AIProvider aggregates AI services for convenient initialization and
// lifecycle management. A provider creates and manages Generator and
// Embedder instances, ensuring they share configuration.
type AIProvider interface {
	// Generator returns the testset generation service.
	Generator() Generator

	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Close releases resources held by the provider and its services.
	Close() error
}
