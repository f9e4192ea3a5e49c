package testset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/qagen/core"
)

func recordsFromTexts(texts ...string) []core.Record {
	records := make([]core.Record, len(texts))
	for i, text := range texts {
		records[i] = core.NewRecord(i, core.SourceCSV, text)
	}
	return records
}

func TestBuildAgentDescription_FiltersShortRecords(t *testing.T) {
	records := recordsFromTexts(
		"short",
		strings.Repeat("a", 150),
		strings.Repeat("b", 150),
	)

	description := BuildAgentDescription(records)
	assert.NotContains(t, description, "short", "records at or under the length threshold are excluded")
	assert.Contains(t, description, "aaa")
	assert.Contains(t, description, "bbb")
}

func TestBuildAgentDescription_Fallback(t *testing.T) {
	expected := descriptionPrefix + fallbackTopics + descriptionSuffix

	assert.Equal(t, expected, BuildAgentDescription(nil))
	assert.Equal(t, expected, BuildAgentDescription(recordsFromTexts("too short", "  ", "also short")))
}

func TestBuildAgentDescription_Template(t *testing.T) {
	description := BuildAgentDescription(recordsFromTexts(strings.Repeat("x", 200)))

	assert.True(t, strings.HasPrefix(description,
		"This AI assistant is designed to answer questions based on the content of a specific document."))
	assert.True(t, strings.HasSuffix(description,
		"The assistant provides concise and context-aware responses to enhance user understanding."))
	assert.Contains(t, description, "primarily discusses topics such as:")
}

func TestBuildAgentDescription_PreviewLength(t *testing.T) {
	// Five long records with no periods: the preview is the raw prefix
	records := recordsFromTexts(
		strings.Repeat("a", 600),
		strings.Repeat("b", 600),
		strings.Repeat("c", 600),
		strings.Repeat("d", 600),
		strings.Repeat("e", 600),
		strings.Repeat("zzzz ", 120), // sixth record must be ignored
	)

	description := BuildAgentDescription(records)
	preview := strings.TrimSuffix(strings.TrimPrefix(description, descriptionPrefix), descriptionSuffix)
	assert.LessOrEqual(t, len([]rune(preview)), previewLen)
	assert.NotContains(t, description, "zzzz", "at most five records contribute")
}

func TestBuildAgentDescription_CutsAtLastPeriod(t *testing.T) {
	first := "This sentence ends cleanly. " + strings.Repeat("x", 100)
	records := recordsFromTexts(first + strings.Repeat("y", 400))

	description := BuildAgentDescription(records)
	preview := strings.TrimSuffix(strings.TrimPrefix(description, descriptionPrefix), descriptionSuffix)
	require.True(t, strings.HasSuffix(preview, "."), "preview should end at a sentence boundary")
	assert.Equal(t, "This sentence ends cleanly.", preview)
}

func TestBuildAgentDescription_CollapsesNewlines(t *testing.T) {
	text := strings.Repeat("line one\nline two\n", 10)
	description := BuildAgentDescription(recordsFromTexts(text))
	assert.NotContains(t, description, "\n")
}

func TestMeaningfulSnippets_Truncates(t *testing.T) {
	snippets := meaningfulSnippets(recordsFromTexts(strings.Repeat("z", 800)))
	require.Len(t, snippets, 1)
	assert.Len(t, []rune(snippets[0]), maxSnippetLen)
}
