package model

import "time"

// CheckKind tags the heuristic that produced a fraud check.
type CheckKind string

const (
	CheckPlagiarism         CheckKind = "plagiarism"
	CheckTiming             CheckKind = "timing"
	CheckResumeAuthenticity CheckKind = "resume_authenticity"
)

// RiskLevel classifies an aggregate fraud score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// FraudCheck is one independent heuristic verdict.
type FraudCheck struct {
	Kind       CheckKind `json:"kind"`
	Suspicious bool      `json:"is_suspicious"`
	Detail     string    `json:"detail"`
	// Similarity is set for plagiarism checks (0-100).
	Similarity float64 `json:"similarity_score,omitempty"`
}

// FraudReport aggregates all fraud checks for one assessment.
type FraudReport struct {
	FraudScore int          `json:"fraud_score"`
	RiskLevel  RiskLevel    `json:"risk_level"`
	Checks     []FraudCheck `json:"checks"`
	Summary    string       `json:"summary"`
}

// ResumeClaims are the externally extracted resume signals consumed
// by the authenticity checker.
type ResumeClaims struct {
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience"`
	Projects        int      `json:"projects"`
}

// TimingInfo is the optional session timing metadata consumed by the
// timing anomaly detector.
type TimingInfo struct {
	StartedAt   *time.Time `json:"started_at"`
	SubmittedAt *time.Time `json:"submitted_at"`
	Difficulty  Difficulty `json:"difficulty"`
	Questions   int        `json:"num_questions"`
}
