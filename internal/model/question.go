package model

import "encoding/json"

// Difficulty classifies a coding question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// TestCase is a single hidden test for a coding question. Input maps
// parameter names to JSON-representable values; Expected is the value
// the candidate function must return.
type TestCase struct {
	Input    map[string]any `json:"input"`
	Expected any            `json:"output"`
}

// Question is a coding question from the static catalog. Immutable
// after catalog load.
type Question struct {
	ID                int        `json:"id"`
	Title             string     `json:"title"`
	Difficulty        Difficulty `json:"difficulty"`
	Description       string     `json:"description"`
	FunctionSignature string     `json:"function_signature"`
	Topic             string     `json:"topic,omitempty"`
	TestCases         []TestCase `json:"test_cases"`
}

// QuestionForApplicant is a question stripped of its hidden test
// cases, safe to send to the candidate UI.
type QuestionForApplicant struct {
	ID                int        `json:"id"`
	Question          string     `json:"question"`
	Title             string     `json:"title"`
	Difficulty        Difficulty `json:"difficulty"`
	FunctionSignature string     `json:"function_signature"`
	Topic             string     `json:"topic,omitempty"`
}

// ForApplicant strips the hidden test cases from a question. The UI
// expects the description under "question", falling back to the title.
func (q Question) ForApplicant() QuestionForApplicant {
	text := q.Description
	if text == "" {
		text = q.Title
	}
	return QuestionForApplicant{
		ID:                q.ID,
		Question:          text,
		Title:             q.Title,
		Difficulty:        q.Difficulty,
		FunctionSignature: q.FunctionSignature,
		Topic:             q.Topic,
	}
}

// HRQuestion is a free-text behavioral question.
type HRQuestion struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Category string `json:"category,omitempty"`
	Type     string `json:"type,omitempty"`
}

// ReferenceSolution holds the catalog of known solution fragments for
// one question, used by the plagiarism detector.
type ReferenceSolution struct {
	QuestionID int      `json:"question_id"`
	Fragments  []string `json:"fragments"`
}

// RawTestCases re-encodes a question's test cases; used when an audit
// trail needs the exact catalog payload.
func (q Question) RawTestCases() json.RawMessage {
	raw, err := json.Marshal(q.TestCases)
	if err != nil {
		return nil
	}
	return raw
}
