package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AssessmentStage tracks which phase of the assessment an applicant
// is in.
type AssessmentStage string

const (
	StageCoding    AssessmentStage = "coding"
	StageHR        AssessmentStage = "hr"
	StageCompleted AssessmentStage = "completed"
)

// Submission is one candidate answer: source code for a question.
type Submission struct {
	QuestionID int    `json:"question_id"`
	SourceCode string `json:"answer"`
}

// ExecutionResult is the outcome of running a submission against a
// single test case.
type ExecutionResult struct {
	QuestionID int    `json:"question_id"`
	Title      string `json:"title,omitempty"`
	Passed     bool   `json:"passed"`
	Output     string `json:"output"`
	Error      string `json:"error,omitempty"`
	Expected   any    `json:"expected"`
}

// GradingReport aggregates execution results across all questions of
// one coding round. Score is floor(100*passed/total) over executed
// tests; zero tests yields score 0 and an empty PerTest.
type GradingReport struct {
	Score   int               `json:"score"`
	PerTest []ExecutionResult `json:"per_test"`
}

// GradingSummary is the display form of a grading report.
type GradingSummary struct {
	TotalTests  int    `json:"total_tests"`
	PassedTests int    `json:"passed_tests"`
	FailedTests int    `json:"failed_tests"`
	PassRate    string `json:"pass_rate"`
}

// Summary condenses a grading report for display.
func (r GradingReport) Summary() GradingSummary {
	passed := 0
	for _, t := range r.PerTest {
		if t.Passed {
			passed++
		}
	}
	total := len(r.PerTest)
	rate := "0%"
	if total > 0 {
		rate = strconv.Itoa(passed*100/total) + "%"
	}
	return GradingSummary{
		TotalTests:  total,
		PassedTests: passed,
		FailedTests: total - passed,
		PassRate:    rate,
	}
}

// AssessmentSession is the per-applicant state tracked across the
// coding and HR phases. Stored in Redis, keyed by applicant ID.
type AssessmentSession struct {
	ApplicantID  uuid.UUID         `json:"applicant_id"`
	CandidateID  uuid.UUID         `json:"candidate_id"`
	Questions    []Question        `json:"questions"`
	HRQuestions  []HRQuestion      `json:"hr_questions"`
	ResumeScore  int               `json:"resume_score"`
	ResumeClaims ResumeClaims      `json:"resume_claims"`
	CodingScore  *int              `json:"coding_score"`
	TestResults  []ExecutionResult `json:"coding_test_results"`
	HRScore      *int              `json:"hr_score"`
	HRAnswers    map[int]string    `json:"hr_answers,omitempty"`
	FraudScore   *int              `json:"fraud_score"`
	FinalScore   *int              `json:"final_score"`
	Stage        AssessmentStage   `json:"assessment_stage"`
	StartedAt    *time.Time        `json:"started_at,omitempty"`
	SubmittedAt  *time.Time        `json:"submitted_at,omitempty"`
}

// CodingAnswer is one submitted solution in the coding round payload.
type CodingAnswer struct {
	QuestionID int    `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// CodingSubmissionRequest is the payload for submitting the coding
// round.
type CodingSubmissionRequest struct {
	Answers []CodingAnswer `json:"answers" binding:"required,min=1,dive"`
}

// HRAnswer is one free-text answer in the HR round payload.
type HRAnswer struct {
	QuestionID int    `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
}

// HRSubmissionRequest is the payload for submitting the HR round.
type HRSubmissionRequest struct {
	Answers []HRAnswer `json:"answers" binding:"required,min=1,dive"`
}
