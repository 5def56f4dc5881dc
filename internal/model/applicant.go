package model

import (
	"time"

	"github.com/google/uuid"
)

// ApplicantStatus is the coarse processing state shown on the
// dashboard.
type ApplicantStatus string

const (
	ApplicantPending   ApplicantStatus = "pending"
	ApplicantCompleted ApplicantStatus = "completed"
	ApplicantApproved  ApplicantStatus = "approved"
	ApplicantRejected  ApplicantStatus = "rejected"
)

// Applicant is a candidate record persisted for the hiring pipeline.
type Applicant struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	ResumeScore    int             `json:"resume_score"`
	CodingScore    *int            `json:"coding_score"`
	HRScore        *int            `json:"hr_score"`
	FraudScore     *int            `json:"fraud_score"`
	FinalScore     *int            `json:"final_score"`
	AIScore        int             `json:"ai_score"`
	AIVerdict      string          `json:"ai_verdict"`
	Status         ApplicantStatus `json:"status"`
	Stage          PipelineStage   `json:"stage"`
	ResumeFilename string          `json:"resume_filename,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// SubmitApplicationRequest is the multipart intake payload. The resume
// file itself is optional; resume signals (score, claims) come from
// the external resume-analysis service.
type SubmitApplicationRequest struct {
	Name        string `form:"name" binding:"required,min=2,max=255"`
	Email       string `form:"email" binding:"required,email"`
	ResumeScore int    `form:"resume_score" binding:"min=0,max=100"`
	// Skills is a comma-separated list as reported by the resume
	// analyzer.
	Skills          string `form:"skills" binding:"omitempty,max=4096"`
	ExperienceYears int    `form:"experience" binding:"min=0"`
	Projects        int    `form:"projects" binding:"min=0"`
}

// AdminLoginRequest is the operator login payload.
type AdminLoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// DashboardStats summarizes the candidate pool.
type DashboardStats struct {
	Total    int     `json:"total"`
	Approved int     `json:"approved"`
	Rejected int     `json:"rejected"`
	Pending  int     `json:"pending"`
	AvgScore float64 `json:"avg_score"`
}

// AssessmentOverview is one row of the assessments listing.
type AssessmentOverview struct {
	ApplicantID    uuid.UUID `json:"applicant_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	ResumeScore    int       `json:"resume_score"`
	CodingScore    *int      `json:"coding_score"`
	AIScore        int       `json:"ai_score"`
	NumQuestions   int       `json:"num_questions"`
	Completed      bool      `json:"completed"`
}
