package service

import (
	"fmt"
	"strings"

	"github.com/vikas-saini-7/codebase-qna/internal/domain"
)

const promptHeader = `You are analyzing a codebase.

Answer ONLY using the provided code snippets.

Return STRICT JSON in this format:

{ "answer": "Clear explanation", "references": [ { "file": "path/to/file", "start_line": number, "end_line": number, "reason": "Why this snippet supports the answer" } ] }

If the answer cannot be found: { "answer": "Not found in provided snippets", "references": [] }

## SNIPPETS:`

const strictDirective = "\n\nCRITICAL: Respond ONLY with valid JSON. Do NOT add any text, explanation, or markdown. Output ONLY the JSON object."

// BuildPrompt renders the instruction template for one question. Chunks are
// listed in the order given, which is the retriever's similarity-descending
// order.
func BuildPrompt(question string, chunks []domain.RetrievedChunk) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	for _, chunk := range chunks {
		fmt.Fprintf(&b, "\n\nFile: %s (%d-%d)\n%s\n---", chunk.FilePath, chunk.StartLine, chunk.EndLine, chunk.Content)
	}
	fmt.Fprintf(&b, "\n\nQUESTION: %s", question)
	b.WriteString("\n\nIMPORTANT: Respond ONLY with valid JSON in the format specified above. Do not add any explanation or text outside the JSON.")
	return b.String()
}

// BuildStrictPrompt is the retry variant used when the model's first response
// could not be parsed.
func BuildStrictPrompt(question string, chunks []domain.RetrievedChunk) string {
	return BuildPrompt(question, chunks) + strictDirective
}
