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
	"strings"

	"github.com/poiesic/qagen/core"
)

// Agent description construction parameters. A record has to carry more
// than minSnippetLen characters of trimmed text to count as meaningful;
// at most maxSnippets such records contribute, each cut to maxSnippetLen
// characters, and the joined result is previewed at previewLen characters.
const (
	minSnippetLen = 100
	maxSnippetLen = 500
	maxSnippets   = 5
	previewLen    = 300
)

// fallbackTopics stands in for the content preview when no record is
// meaningful enough to describe the source.
const fallbackTopics = "General topics related to the document."

const (
	descriptionPrefix = "This AI assistant is designed to answer questions based on the content of a specific document. " +
		"The document primarily discusses topics such as: "
	descriptionSuffix = " The assistant provides concise and context-aware responses to enhance user understanding."
)

// meaningfulSnippets scans records in order and collects up to maxSnippets
// texts longer than minSnippetLen characters after trimming, each truncated
// to maxSnippetLen characters.
func meaningfulSnippets(records []core.Record) []string {
	var snippets []string
	for _, r := range records {
		cleaned := strings.TrimSpace(r.Text)
		if len([]rune(cleaned)) > minSnippetLen {
			snippets = append(snippets, truncateRunes(cleaned, maxSnippetLen))
		}
		if len(snippets) >= maxSnippets {
			break
		}
	}
	return snippets
}

// BuildAgentDescription derives the natural-language description used to
// condition question generation. It is computed once per run, from the
// first few meaningful records, and is read-only thereafter.
//
// The preview of the joined snippets is cut at the last period inside
// the first previewLen characters when one exists, avoiding a
// mid-sentence cut; otherwise the raw prefix is used.
func BuildAgentDescription(records []core.Record) string {
	snippets := meaningfulSnippets(records)
	if len(snippets) == 0 {
		snippets = []string{fallbackTopics}
	}

	for i, s := range snippets {
		snippets[i] = strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
	}
	joined := strings.Join(snippets, " ")

	preview := truncateRunes(joined, previewLen)
	if idx := strings.LastIndex(preview, "."); idx >= 0 {
		preview = preview[:idx+1]
	}

	return descriptionPrefix + preview + descriptionSuffix
}

// truncateRunes cuts s to at most n runes without splitting a character.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
