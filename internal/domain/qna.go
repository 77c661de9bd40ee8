package domain

import "time"

// Reference is a model-asserted citation of a file and line range that
// supports part of an answer. It is structurally validated but not checked
// against the retrieved chunk set.
type Reference struct {
	File      string `json:"file"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Reason    string `json:"reason"`
}

// Answer is the structured result of one resolved question.
type Answer struct {
	Text       string      `json:"answer"`
	References []Reference `json:"references"`
}

// Snippet is the stored copy of a chunk as it was shown to the model, so
// later lookups by reference are satisfiable from the record alone.
type Snippet struct {
	File      string `json:"file"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	Code      string `json:"code"`
	Highlight [2]int `json:"highlight"`
}

// QnARecord is one persisted question/answer pair. A repository keeps only
// its 10 most recent records.
type QnARecord struct {
	ID           string      `json:"id"`
	RepositoryID string      `json:"repository_id"`
	Question     string      `json:"question"`
	Answer       string      `json:"answer"`
	References   []Reference `json:"references"`
	Snippets     []Snippet   `json:"snippets"`
	CreatedAt    time.Time   `json:"created_at"`
}
