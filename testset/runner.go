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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/poiesic/qagen/ai"
	"github.com/poiesic/qagen/core"
)

const (
	// DefaultBatchSize is the default number of records per chunk.
	DefaultBatchSize = 10

	// DefaultSleepBetween is the default inter-batch delay. It exists to
	// stay under provider rate limits, not for correctness.
	DefaultSleepBetween = 10 * time.Second
)

// Config holds configuration for a generation run.
type Config struct {
	// BatchSize is the number of records in each chunk
	BatchSize int

	// QuestionsPerBatch is how many pairs to request per chunk
	QuestionsPerBatch int

	// Language is the ISO 639-1 code for generated questions
	Language string

	// QuestionType selects the generation strategy (ai.QuestionTypes)
	QuestionType string

	// SleepBetween is the fixed delay after every chunk, success or failure
	SleepBetween time.Duration

	// Retry is the policy wrapped around each chunk's remote call
	Retry RetryPolicy
}

// DefaultConfig returns a Config with the defaults the generation scripts
// have historically used.
func DefaultConfig() *Config {
	return &Config{
		BatchSize:         DefaultBatchSize,
		QuestionsPerBatch: 10,
		Language:          "en",
		QuestionType:      ai.QuestionTypeConversational,
		SleepBetween:      DefaultSleepBetween,
		Retry:             DefaultRetryPolicy(),
	}
}

// Runner orchestrates the chunked generation of a testset from extracted
// records. The accumulator is owned exclusively by the runner; execution
// is strictly sequential.
type Runner struct {
	generator ai.Generator
	embedder  ai.Embedder
	config    *Config
	progress  io.Writer
	logger    *slog.Logger
}

// NewRunner creates a new runner.
// embedder may be nil to skip representative-document ordering.
// progress: where to write status output (typically os.Stderr)
func NewRunner(generator ai.Generator, embedder ai.Embedder, config *Config, progress io.Writer) *Runner {
	if config == nil {
		config = DefaultConfig()
	}

	return &Runner{
		generator: generator,
		embedder:  embedder,
		config:    config,
		progress:  progress,
		logger:    slog.Default().With("component", "runner"),
	}
}

// chunkRecords partitions records into consecutive chunks of at most size
// elements; the final chunk may be smaller. Concatenating the chunks in
// order reproduces records exactly.
func chunkRecords(records []core.Record, size int) [][]core.Record {
	if size <= 0 {
		size = DefaultBatchSize
	}

	var chunks [][]core.Record
	for i := 0; i < len(records); i += size {
		end := i + size
		if end > len(records) {
			end = len(records)
		}
		chunks = append(chunks, records[i:end])
	}
	return chunks
}

// Run executes the generation over all records and returns the accumulated
// testset, which may be empty. A chunk whose remote call fails after
// retries is logged and skipped; the run continues with the next chunk.
// Context cancellation aborts the run and returns what was accumulated so
// far alongside the context error.
func (r *Runner) Run(ctx context.Context, records []core.Record, agentDescription string) (*Testset, error) {
	result := &Testset{}

	chunks := chunkRecords(records, r.config.BatchSize)
	if len(chunks) == 0 {
		fmt.Fprintf(r.progress, "No records to process (0 records)\n")
		return result, nil
	}

	fmt.Fprintf(r.progress, "Starting generation over %d records (%d batches, batch size: %d)\n",
		len(records), len(chunks), r.config.BatchSize)

	startTime := time.Now()
	succeeded := 0

	for i, chunk := range chunks {
		batch := i + 1
		fmt.Fprintf(r.progress, "Processing batch %d/%d\n", batch, len(chunks))

		kb := NewKnowledgeBase(chunk, r.embedder)
		req := ai.GenerateRequest{
			Documents:        kb.Documents(ctx),
			NumQuestions:     r.config.QuestionsPerBatch,
			Language:         r.config.Language,
			AgentDescription: agentDescription,
			QuestionType:     r.config.QuestionType,
		}

		var pairs []core.QAPair
		err := r.config.Retry.Do(ctx, func() error {
			generated, err := r.generator.Generate(ctx, req)
			if err != nil {
				return err
			}
			pairs = generated
			return nil
		})

		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			return result, err
		case err != nil:
			// Per-chunk failure: the rest of the run still proceeds
			fmt.Fprintf(r.progress, "Failed batch %d: %v\n", batch, err)
			r.logger.Warn("batch failed", "batch", batch, "err", err)
		default:
			for j := range pairs {
				pairs[j].Metadata.Batch = batch
			}
			result.Append(pairs...)
			succeeded++
			r.logger.Debug("batch succeeded", "batch", batch, "pairs", len(pairs))
		}

		if err := r.sleepBetween(ctx); err != nil {
			return result, err
		}
	}

	elapsed := time.Since(startTime).Round(time.Second)
	fmt.Fprintf(r.progress, "Generated %d question/answer pairs from %d/%d batches in %v\n",
		result.Len(), succeeded, len(chunks), elapsed)

	return result, nil
}

// sleepBetween waits the configured inter-batch delay, honoring ctx.
func (r *Runner) sleepBetween(ctx context.Context) error {
	if r.config.SleepBetween <= 0 {
		return nil
	}

	timer := time.NewTimer(r.config.SleepBetween)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
