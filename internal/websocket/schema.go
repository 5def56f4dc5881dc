package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError    Event = "error"
	EventProgress Event = "progress"
	EventGraded   Event = "graded"
	EventPong     Event = "pong"
)

// ProgressEvent is published once per executed test case while a
// coding submission is being graded.
type ProgressEvent struct {
	Event      Event `json:"event"`
	Done       int   `json:"done"`
	Total      int   `json:"total"`
	QuestionID int   `json:"question_id"`
	Passed     bool  `json:"passed"`
}

// GradedEvent closes out a grading run.
type GradedEvent struct {
	Event      Event `json:"event"`
	Score      int   `json:"score"`
	FraudScore int   `json:"fraud_score"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
