package pipeline

import "fmt"

// snippetRunes bounds the example text embedded in incident summaries.
const snippetRunes = 120

// Summarize produces the incident rollup string from the latest redacted
// sample and the running event count.
func Summarize(sampleRedacted string, count int64) string {
	snippet := sampleRedacted
	if r := []rune(sampleRedacted); len(r) > snippetRunes {
		snippet = string(r[:snippetRunes]) + "…"
	}
	return fmt.Sprintf("Repeated event clustered (%d hits). Example: %s", count, snippet)
}
