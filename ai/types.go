package ai

// Question generation strategies. The strategy shapes the prompt: simple
// questions are single-turn lookups, conversational questions come with a
// short lead-in history, situational questions embed the user's context.
const (
	QuestionTypeSimple         = "simple"
	QuestionTypeConversational = "conversational"
	QuestionTypeSituational    = "situational"
)

// QuestionTypes lists the valid generation strategies.
var QuestionTypes = []string{
	QuestionTypeSimple,
	QuestionTypeConversational,
	QuestionTypeSituational,
}

// ValidQuestionType reports whether t is a known generation strategy.
func ValidQuestionType(t string) bool {
	for _, qt := range QuestionTypes {
		if qt == t {
			return true
		}
	}
	return false
}
