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


package azure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/qagen/ai"
	"github.com/poiesic/qagen/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using an Azure OpenAI chat deployment.
type Generator struct {
	client llms.Model
	logger *slog.Logger
}

// generatedQuestion is an internal type used for JSON unmarshaling.
// It matches the structure requested from the LLM.
type generatedQuestion struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Document int      `json:"document"`
	History  []string `json:"history"`
}

// generation is the wrapper structure for the LLM's JSON response.
type generation struct {
	Questions []generatedQuestion `json:"questions"`
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithAPIType(openai.APITypeAzure),
		openai.WithBaseURL(config.APIBase),
		openai.WithToken(config.APIKey),
		openai.WithAPIVersion(config.APIVersion),
		openai.WithModel(config.LLMModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client: client,
		logger: slog.Default().With("component", "azure-generator"),
	}, nil
}

// NewGenerator creates a new testset generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// Generate invokes the chat deployment once for the request and parses the
// generated pairs. Provider rate limiting is reported as an error matching
// core.ErrRateLimited so the caller's retry policy can recognize it.
func (g *Generator) Generate(ctx context.Context, req ai.GenerateRequest) ([]core.QAPair, error) {
	if len(req.Documents) == 0 {
		return nil, errors.New("generate: no documents in request")
	}
	if req.NumQuestions <= 0 {
		return nil, fmt.Errorf("generate: invalid question count %d", req.NumQuestions)
	}
	if !ai.ValidQuestionType(req.QuestionType) {
		return nil, fmt.Errorf("generate: unknown question type %q", req.QuestionType)
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildSystemPrompt(req)),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildDocumentPrompt(req.Documents)),
			},
		},
	}

	// Try up to 3 times in case of malformed JSON
	var result generation
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		response, err := g.client.GenerateContent(ctx, content, llms.WithTemperature(0.2), llms.WithJSONMode())
		if err != nil {
			g.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, classifyProviderError(err)
		}

		if len(response.Choices) < 1 {
			g.logger.Debug("no choices returned from model")
			return []core.QAPair{}, nil
		}

		choice := response.Choices[0]

		// Strip markdown code fences if present
		responseText := strings.TrimSpace(choice.Content)
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)

		// Try to repair common JSON issues
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			g.logger.Warn("error parsing generator response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		// Success
		lastErr = nil
		break
	}

	if lastErr != nil {
		g.logger.Error("failed to parse generator response after retries", "err", lastErr)
		return nil, lastErr
	}

	pairs := make([]core.QAPair, 0, len(result.Questions))
	for _, q := range result.Questions {
		if strings.TrimSpace(q.Question) == "" {
			continue
		}

		pair := core.QAPair{
			Id:              fmt.Sprintf("%016x", uint64(core.IDFromContent(q.Question))),
			Question:        q.Question,
			ReferenceAnswer: q.Answer,
			Metadata: core.QAMetadata{
				QuestionType: req.QuestionType,
			},
		}

		// Document numbers are 1-based in the prompt. Out-of-range
		// references keep the pair but leave the context empty.
		if q.Document >= 1 && q.Document <= len(req.Documents) {
			doc := req.Documents[q.Document-1]
			pair.ReferenceContext = doc
			pair.Metadata.SeedDocumentID = fmt.Sprintf("%016x", uint64(core.IDFromContent(doc)))
		}

		if req.QuestionType == ai.QuestionTypeConversational {
			pair.ConversationHistory = q.History
		}

		pairs = append(pairs, pair)
	}

	g.logger.Debug("generated pairs",
		"requested", req.NumQuestions,
		"returned", len(pairs))

	return pairs, nil
}
