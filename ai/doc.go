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


// Package ai provides abstractions for the AI services used in qagen.
//
// This package defines interfaces for the two remote operations the
// generation pipeline depends on: testset generation and text embedding.
// The batch orchestrator depends on these abstractions rather than on a
// concrete provider, which keeps the retry and chunking logic testable
// without network access.
//
// # Design Principles
//
// The package is designed around three key interfaces:
//
//   - Generator: produces question/answer pairs from source documents
//   - Embedder: generates vector embeddings from text
//   - AIProvider: aggregates AI services for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/azure: production implementation using Azure OpenAI deployments
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Production constructors (azure.NewProvider, azure.NewGenerator,
// azure.NewEmbedder) return interface types to enforce abstraction. Mock
// constructors return concrete types so tests can inject behavior via the
// public function fields and assert on call counts.
//
// # Error Classification
//
// Provider rate limiting is the designated transient failure: azure
// implementations wrap it so errors.Is(err, core.ErrRateLimited) holds,
// and the orchestrator's retry policy keys off exactly that predicate.
// All other provider errors are permanent from the caller's point of view.
package ai
