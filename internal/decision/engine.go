// Package decision turns resume, coding and fraud scores into a staged
// hiring decision: a weighted final score, the next pipeline stage and
// a structured recommendation. The engine is a pure state machine; all
// weights and thresholds are injected configuration.
package decision

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hiresift/hiresift-backend/internal/model"
)

const (
	// FraudRejectAbove forces a rejection regardless of any other
	// score.
	FraudRejectAbove = 70

	strongHireAt      = 75
	cautionAt         = 60
	weakAt            = 40
	resumeRejectBelow = 40
	codingRejectBelow = 30
)

// Weights configures the final-score blend. Screening weights apply
// while no coding score exists yet.
type Weights struct {
	Resume float64
	Coding float64
	Fraud  float64

	ScreeningResume float64
	ScreeningFraud  float64
}

// DefaultWeights returns the standard blend: resume 30%, coding 50%,
// inverted fraud 20%; pre-coding, resume 70% and inverted fraud 30%.
func DefaultWeights() Weights {
	return Weights{
		Resume:          0.3,
		Coding:          0.5,
		Fraud:           0.2,
		ScreeningResume: 0.7,
		ScreeningFraud:  0.3,
	}
}

// Engine evaluates candidates. Safe for concurrent use.
type Engine struct {
	weights Weights
	log     zerolog.Logger
}

// NewEngine creates an Engine; zero-valued weights are replaced with
// DefaultWeights.
func NewEngine(weights Weights, log zerolog.Logger) *Engine {
	if weights.Resume == 0 && weights.Coding == 0 && weights.Fraud == 0 {
		weights = DefaultWeights()
	}
	return &Engine{
		weights: weights,
		log:     log.With().Str("component", "decision_engine").Logger(),
	}
}

// FinalScore computes the weighted blend of all signals, clamped to
// [0,100]. Fraud participates inverted: a clean record scores high.
func (e *Engine) FinalScore(resumeScore int, codingScore *int, fraudScore int) int {
	trust := float64(100 - fraudScore)

	var final float64
	if codingScore == nil {
		final = float64(resumeScore)*e.weights.ScreeningResume + trust*e.weights.ScreeningFraud
	} else {
		final = float64(resumeScore)*e.weights.Resume +
			float64(*codingScore)*e.weights.Coding +
			trust*e.weights.Fraud
	}

	return clamp(int(final))
}

// NextStage resolves the stage transition. A fraud score above
// FraudRejectAbove short-circuits every other rule.
func (e *Engine) NextStage(current model.PipelineStage, resumeScore int, codingScore *int, finalScore, fraudScore int) model.PipelineStage {
	if fraudScore > FraudRejectAbove {
		return model.StageRejectedFraud
	}

	switch current {
	case model.StageResumeScreening:
		if resumeScore < resumeRejectBelow {
			return model.StageRejectedResume
		}
		return model.StageCodingAssessment

	case model.StageCodingAssessment:
		switch {
		case codingScore == nil:
			return model.StageCodingAssessment // still in progress
		case *codingScore < codingRejectBelow:
			return model.StageRejectedCoding
		case finalScore >= strongHireAt:
			return model.StageTechnicalInterview
		case finalScore >= cautionAt:
			return model.StageManualReview
		default:
			return model.StageRejectedOverall
		}

	case model.StageTechnicalInterview:
		return model.StageBehavioralInterview

	case model.StageBehavioralInterview:
		return model.StageFinalDecision

	default:
		return model.StageUnknown
	}
}

// Decide runs the full evaluation: final score, stage transition and
// recommendation. jobCfg is optional; when present the record includes
// a job-requirements match against the candidate's claimed skills.
func (e *Engine) Decide(current model.PipelineStage, resumeScore int, codingScore *int, fraudScore int, jobCfg *model.JobConfig, candidateSkills []string) model.DecisionRecord {
	finalScore := e.FinalScore(resumeScore, codingScore, fraudScore)

	record := model.DecisionRecord{
		FinalScore:     finalScore,
		NextStage:      e.NextStage(current, resumeScore, codingScore, finalScore, fraudScore),
		Recommendation: e.Recommend(resumeScore, codingScore, fraudScore, finalScore),
	}
	if jobCfg != nil {
		match := MatchJob(finalScore, fraudScore, candidateSkills, *jobCfg)
		record.JobMatch = &match
	}

	e.log.Info().
		Int("final_score", finalScore).
		Str("next_stage", string(record.NextStage)).
		Str("decision", string(record.Recommendation.Decision)).
		Msg("decision evaluated")
	return record
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func scoreLine(label string, score int) string {
	return fmt.Sprintf("%s (score: %d/100)", label, score)
}
