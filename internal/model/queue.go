package model

import "github.com/google/uuid"

// ScorePersistPayload is the queue message consumed by the score
// worker. All persistence of assessment outcomes flows through the
// queue so request handlers never block on Postgres.
type ScorePersistPayload struct {
	ApplicantID uuid.UUID         `json:"applicant_id"`
	CodingScore *int              `json:"coding_score,omitempty"`
	HRScore     *int              `json:"hr_score,omitempty"`
	FraudScore  *int              `json:"fraud_score,omitempty"`
	FinalScore  *int              `json:"final_score,omitempty"`
	AIScore     int               `json:"ai_score"`
	AIVerdict   string            `json:"ai_verdict"`
	Status      ApplicantStatus   `json:"status"`
	Stage       PipelineStage     `json:"stage"`
	TestResults []ExecutionResult `json:"test_results,omitempty"`
	Decision    *DecisionRecord   `json:"decision,omitempty"`
}

// FraudPersistPayload is the queue message consumed by the fraud
// worker.
type FraudPersistPayload struct {
	ApplicantID uuid.UUID   `json:"applicant_id"`
	Report      FraudReport `json:"report"`
}
