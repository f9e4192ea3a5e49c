package mock

import (
	"context"
	"fmt"

	"github.com/poiesic/qagen/ai"
	"github.com/poiesic/qagen/core"
)

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, uses default deterministic behavior.
	GenerateFunc func(ctx context.Context, req ai.GenerateRequest) ([]core.QAPair, error)

	callCount int
	requests  []ai.GenerateRequest
}

// NewMockGenerator creates a mock generator with default deterministic behavior.
// Note: Returns concrete type to allow test assertions via CallCount() and Requests().
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate returns req.NumQuestions synthetic pairs derived from the request
// documents, or delegates to GenerateFunc when set.
func (m *MockGenerator) Generate(ctx context.Context, req ai.GenerateRequest) ([]core.QAPair, error) {
	m.callCount++
	m.requests = append(m.requests, req)

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}

	pairs := make([]core.QAPair, 0, req.NumQuestions)
	for i := 0; i < req.NumQuestions; i++ {
		doc := ""
		if len(req.Documents) > 0 {
			doc = req.Documents[i%len(req.Documents)]
		}
		question := fmt.Sprintf("What does document %d say?", i%max(len(req.Documents), 1)+1)
		pairs = append(pairs, core.QAPair{
			Id:               fmt.Sprintf("%016x", uint64(core.IDFromContent(question+doc))),
			Question:         question,
			ReferenceAnswer:  fmt.Sprintf("Answer %d", i+1),
			ReferenceContext: doc,
			Metadata: core.QAMetadata{
				QuestionType: req.QuestionType,
			},
		})
	}
	return pairs, nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Requests returns the requests Generate was called with, in order.
func (m *MockGenerator) Requests() []ai.GenerateRequest {
	return m.requests
}

// Reset clears recorded calls and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.requests = nil
	m.GenerateFunc = nil
}
