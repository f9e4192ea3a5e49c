package testset

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/qagen/ai"
	"github.com/poiesic/qagen/ai/mock"
	"github.com/poiesic/qagen/core"
)

func testRunnerConfig() *Config {
	config := DefaultConfig()
	config.BatchSize = 2
	config.QuestionsPerBatch = 1
	config.SleepBetween = 0
	config.Retry = RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}
	return config
}

func TestChunkRecords(t *testing.T) {
	tests := []struct {
		name    string
		count   int
		size    int
		chunks  int
		lastLen int
	}{
		{"empty", 0, 10, 0, 0},
		{"exact multiple", 20, 10, 2, 10},
		{"remainder", 25, 10, 3, 5},
		{"single partial", 3, 10, 1, 3},
		{"size one", 4, 1, 4, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]core.Record, tt.count)
			for i := range records {
				records[i] = core.NewRecord(i, core.SourceCSV, fmt.Sprintf("text %d", i))
			}

			chunks := chunkRecords(records, tt.size)
			require.Len(t, chunks, tt.chunks)
			if tt.chunks > 0 {
				assert.Len(t, chunks[len(chunks)-1], tt.lastLen)
			}

			// Concatenating the chunks reproduces the input exactly
			var flat []core.Record
			for _, chunk := range chunks {
				flat = append(flat, chunk...)
			}
			if tt.count == 0 {
				assert.Empty(t, flat)
			} else {
				assert.Equal(t, records, flat)
			}
		})
	}
}

func TestChunkRecords_InvalidSize(t *testing.T) {
	records := make([]core.Record, DefaultBatchSize+1)
	chunks := chunkRecords(records, 0)
	assert.Len(t, chunks, 2, "non-positive size falls back to the default")
}

func TestRunner_AllBatchesSucceed(t *testing.T) {
	generator := mock.NewMockGenerator()
	runner := NewRunner(generator, nil, testRunnerConfig(), &bytes.Buffer{})

	records := recordsFromTexts("a", "b", "c", "d", "e")
	result, err := runner.Run(context.Background(), records, "test agent")
	require.NoError(t, err)

	// 5 records, batch size 2: three chunks of one question each
	assert.Equal(t, 3, generator.CallCount())
	require.Equal(t, 3, result.Len())
	for i, pair := range result.Pairs() {
		assert.Equal(t, i+1, pair.Metadata.Batch, "pairs carry their originating batch number")
	}
}

func TestRunner_RequestCarriesConfig(t *testing.T) {
	generator := mock.NewMockGenerator()
	config := testRunnerConfig()
	config.Language = "de"
	config.QuestionType = ai.QuestionTypeSimple
	runner := NewRunner(generator, nil, config, &bytes.Buffer{})

	_, err := runner.Run(context.Background(), recordsFromTexts("a", "b", "c"), "describe me")
	require.NoError(t, err)

	requests := generator.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, []string{"a", "b"}, requests[0].Documents)
	assert.Equal(t, []string{"c"}, requests[1].Documents)
	for _, req := range requests {
		assert.Equal(t, "de", req.Language)
		assert.Equal(t, ai.QuestionTypeSimple, req.QuestionType)
		assert.Equal(t, "describe me", req.AgentDescription)
		assert.Equal(t, 1, req.NumQuestions)
	}
}

func TestRunner_FailedBatchSkipped(t *testing.T) {
	calls := 0
	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(_ context.Context, req ai.GenerateRequest) ([]core.QAPair, error) {
		calls++
		// The middle chunk holds "c" and "d"; fail it permanently
		if req.Documents[0] == "c" {
			return nil, fmt.Errorf("%w: 429", core.ErrRateLimited)
		}
		return []core.QAPair{{Question: "q about " + req.Documents[0]}}, nil
	}

	progress := &bytes.Buffer{}
	runner := NewRunner(generator, nil, testRunnerConfig(), progress)

	result, err := runner.Run(context.Background(), recordsFromTexts("a", "b", "c", "d", "e"), "agent")
	require.NoError(t, err, "a failed batch does not fail the run")

	require.Equal(t, 2, result.Len())
	assert.Equal(t, "q about a", result.Pairs()[0].Question)
	assert.Equal(t, "q about e", result.Pairs()[1].Question)
	assert.Equal(t, 1, result.Pairs()[0].Metadata.Batch)
	assert.Equal(t, 3, result.Pairs()[1].Metadata.Batch, "batch numbering reflects the original chunk")

	// Two successful calls plus MaxAttempts for the failing chunk
	assert.Equal(t, 4, calls)
	assert.Contains(t, progress.String(), "Failed batch 2:")
	assert.Contains(t, progress.String(), "Processing batch 3/3")
}

func TestRunner_EmptyRecords(t *testing.T) {
	generator := mock.NewMockGenerator()
	progress := &bytes.Buffer{}
	runner := NewRunner(generator, nil, testRunnerConfig(), progress)

	result, err := runner.Run(context.Background(), nil, "agent")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Len())
	assert.Equal(t, 0, generator.CallCount())
	assert.Contains(t, progress.String(), "No records to process")
}

func TestRunner_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	generator := mock.NewMockGenerator()
	generator.GenerateFunc = func(context.Context, ai.GenerateRequest) ([]core.QAPair, error) {
		cancel()
		return []core.QAPair{{Question: "q"}}, nil
	}

	config := testRunnerConfig()
	config.SleepBetween = time.Minute
	runner := NewRunner(generator, nil, config, &bytes.Buffer{})

	start := time.Now()
	result, err := runner.Run(ctx, recordsFromTexts("a", "b", "c"), "agent")
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second, "cancellation must interrupt the inter-batch sleep")
	assert.Equal(t, 1, result.Len(), "work done before cancellation is kept")
}

func TestRunner_NilConfigUsesDefaults(t *testing.T) {
	runner := NewRunner(mock.NewMockGenerator(), nil, nil, &bytes.Buffer{})
	assert.Equal(t, DefaultBatchSize, runner.config.BatchSize)
	assert.Equal(t, DefaultSleepBetween, runner.config.SleepBetween)
}
