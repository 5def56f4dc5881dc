package model

// PipelineStage is a named step of the hiring workflow. Rejections are
// absorbing stages prefixed with "REJECTED - ".
type PipelineStage string

const (
	StageResumeScreening     PipelineStage = "Resume Screening"
	StageCodingAssessment    PipelineStage = "Coding Assessment"
	StageTechnicalInterview  PipelineStage = "Technical Interview"
	StageBehavioralInterview PipelineStage = "Behavioral Interview"
	StageFinalDecision       PipelineStage = "Final Decision"
	StageManualReview        PipelineStage = "Manual Review"
	StageUnknown             PipelineStage = "Unknown Stage"

	StageRejectedFraud   PipelineStage = "REJECTED - Fraud Risk"
	StageRejectedResume  PipelineStage = "REJECTED - Low Resume Score"
	StageRejectedCoding  PipelineStage = "REJECTED - Failed Coding"
	StageRejectedOverall PipelineStage = "REJECTED - Low Overall Score"
)

// Rejected reports whether a stage is an absorbing rejection.
func (s PipelineStage) Rejected() bool {
	return len(s) >= 8 && s[:8] == "REJECTED"
}

// Decision is the hiring recommendation category.
type Decision string

const (
	DecisionStrongHire  Decision = "STRONG HIRE"
	DecisionWithCaution Decision = "PROCEED WITH CAUTION"
	DecisionWeak        Decision = "WEAK CANDIDATE"
	DecisionReject      Decision = "REJECT"
)

// Recommendation carries the qualitative reasoning behind a decision.
type Recommendation struct {
	Decision   Decision `json:"decision"`
	Verdict    string   `json:"verdict"`
	FinalScore int      `json:"final_score"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Reasons    []string `json:"reasons"`
	NextSteps  []string `json:"next_steps"`
	Summary    string   `json:"recommendation_summary"`
}

// DecisionRecord is the terminal artifact of the decision engine.
// Immutable once produced.
type DecisionRecord struct {
	FinalScore     int            `json:"final_score"`
	NextStage      PipelineStage  `json:"next_stage"`
	Recommendation Recommendation `json:"recommendation"`
	JobMatch       *JobMatch      `json:"job_match,omitempty"`
}

// JobConfig holds job-specific requirements for candidate matching.
type JobConfig struct {
	Role          string   `json:"role"`
	Level         string   `json:"level"`
	Skills        []string `json:"skills"`
	MinScore      int      `json:"min_score"`
	RiskTolerance int      `json:"risk_tolerance"`
}

// JobMatch is the result of matching a candidate against a JobConfig.
type JobMatch struct {
	MeetsRequirements    bool     `json:"meets_requirements"`
	SkillMatchPercentage float64  `json:"skill_match_percentage"`
	MatchedSkills        []string `json:"matched_skills"`
	MissingSkills        []string `json:"missing_skills"`
	ScoreVsMinimum       string   `json:"score_vs_minimum"`
	FraudVsTolerance     string   `json:"fraud_vs_tolerance"`
}
