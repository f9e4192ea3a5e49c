package azure

import (
	"fmt"
	"strings"

	"github.com/poiesic/qagen/ai"
)

const generationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "questions": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "question": {
            "type": "string"
          },
          "answer": {
            "type": "string"
          },
          "document": {
            "type": "integer",
            "minimum": 1
          },
          "history": {
            "type": "array",
            "items": {
              "type": "string"
            }
          }
        },
        "required": ["question", "answer", "document"],
        "additionalProperties": false
      }
    }
  },
  "required": ["questions"],
  "additionalProperties": false
}`

const generationPromptTemplate = `You generate evaluation questions for a retrieval-augmented assistant.

Assistant under evaluation: %s

Generate exactly %d question/answer pairs in language "%s" from the numbered documents the user provides.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Every question must be answerable from exactly one of the provided documents; set "document" to that
  document's number (1-based).
- The "answer" must be grounded in the referenced document. Do not use outside knowledge.
- Questions must be distinct from each other.
%s- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.`

// questionTypeRules returns the extra prompt rules for a generation strategy.
func questionTypeRules(questionType string) string {
	switch questionType {
	case ai.QuestionTypeConversational:
		return "- Phrase each question as the final turn of a short conversation and put the one or two\n" +
			"  preceding user turns in \"history\", oldest first.\n"
	case ai.QuestionTypeSituational:
		return "- Open each question with a brief, plausible user situation that motivates it. Leave \"history\" empty.\n"
	default:
		return "- Keep questions self-contained and single-turn. Leave \"history\" empty.\n"
	}
}

// buildSystemPrompt renders the generation instructions for one request.
func buildSystemPrompt(req ai.GenerateRequest) string {
	return fmt.Sprintf(generationPromptTemplate,
		req.AgentDescription,
		req.NumQuestions,
		req.Language,
		generationResponseSchema,
		questionTypeRules(req.QuestionType),
	)
}

// buildDocumentPrompt renders the numbered knowledge-base documents.
func buildDocumentPrompt(documents []string) string {
	var b strings.Builder
	for i, doc := range documents {
		fmt.Fprintf(&b, "Document %d:\n%s\n\n", i+1, strings.TrimSpace(doc))
	}
	return strings.TrimSuffix(b.String(), "\n")
}
