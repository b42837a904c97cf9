package app

import (
	"fmt"
	"strings"

	"echoai/internal/store"
)

// documentCharLimit caps how much document text is embedded into the prompt.
// Character-based, no summarization.
const documentCharLimit = 15000

const withDocumentTemplate = `You are Echo AI. Answer the user's question.

Available document content:
%s

User question: %s

Answer naturally.`

const noDocumentTemplate = `You are Echo AI, an intelligent assistant.

User question: %s

Answer naturally.`

// BuildPrompt renders the generation prompt. With a non-blank document the
// first documentCharLimit characters are embedded verbatim; otherwise the
// question goes into a generic assistant template.
func BuildPrompt(question string, doc *store.Record) string {
	if doc != nil && strings.TrimSpace(doc.Content) != "" {
		return fmt.Sprintf(withDocumentTemplate, truncate(doc.Content, documentCharLimit), question)
	}
	return fmt.Sprintf(noDocumentTemplate, question)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
