package testset

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/qagen/ai/mock"
	"github.com/poiesic/qagen/core"
)

func TestKnowledgeBase_NilEmbedder(t *testing.T) {
	records := recordsFromTexts("first", "second", "third")
	kb := NewKnowledgeBase(records, nil)

	assert.Equal(t, 3, kb.Len())
	assert.Equal(t, []string{"first", "second", "third"}, kb.Documents(context.Background()))
}

func TestKnowledgeBase_SingleRecordSkipsEmbedding(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	kb := NewKnowledgeBase(recordsFromTexts("only"), embedder)

	assert.Equal(t, []string{"only"}, kb.Documents(context.Background()))
	assert.Equal(t, 0, embedder.CallCount(), "a single document needs no ordering")
}

func TestKnowledgeBase_OrdersByCentroid(t *testing.T) {
	// Two near-identical vectors and one outlier: the outlier scores lowest
	// against the centroid and must come last.
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(_ context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			switch text {
			case "outlier":
				vectors[i] = []float32{0, 1, 0}
			default:
				vectors[i] = []float32{1, 0, 0}
			}
		}
		return vectors, nil
	}

	kb := NewKnowledgeBase(recordsFromTexts("outlier", "common one", "common two"), embedder)
	docs := kb.Documents(context.Background())

	require.Len(t, docs, 3)
	assert.Equal(t, "outlier", docs[2], "least representative document comes last")
	// Equal scores keep record order
	assert.Equal(t, []string{"common one", "common two"}, docs[:2])
}

func TestKnowledgeBase_EmbeddingFailureKeepsOrder(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		return nil, errors.New("service unavailable")
	}

	kb := NewKnowledgeBase(recordsFromTexts("a", "b", "c"), embedder)
	assert.Equal(t, []string{"a", "b", "c"}, kb.Documents(context.Background()))
}

func TestKnowledgeBase_CountMismatchKeepsOrder(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
		return [][]float32{{1, 0}}, nil
	}

	kb := NewKnowledgeBase(recordsFromTexts("a", "b"), embedder)
	assert.Equal(t, []string{"a", "b"}, kb.Documents(context.Background()))
}

func TestKnowledgeBase_Records(t *testing.T) {
	records := recordsFromTexts("x", "y")
	kb := NewKnowledgeBase(records, nil)
	assert.Equal(t, records, kb.Records())
	assert.Equal(t, core.SourceCSV, kb.Records()[0].Source)
}
