package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hiresift/hiresift-backend/internal/model"
	"github.com/hiresift/hiresift-backend/internal/repository"
)

// CandidateDetail aggregates everything the dashboard shows about one
// candidate.
type CandidateDetail struct {
	Applicant   *model.Applicant        `json:"applicant"`
	TestResults []model.ExecutionResult `json:"test_results"`
	FraudReport *model.FraudReport      `json:"fraud_report,omitempty"`
	Decision    *model.DecisionRecord   `json:"decision,omitempty"`
}

// DashboardService serves the operator dashboard.
type DashboardService struct {
	applicants  *repository.ApplicantRepository
	assessments *repository.AssessmentRepository
	log         zerolog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(applicants *repository.ApplicantRepository, assessments *repository.AssessmentRepository, log zerolog.Logger) *DashboardService {
	return &DashboardService{
		applicants:  applicants,
		assessments: assessments,
		log:         log.With().Str("component", "dashboard_service").Logger(),
	}
}

// GetStats returns the candidate pool summary.
func (s *DashboardService) GetStats(ctx context.Context) (*model.DashboardStats, error) {
	return s.applicants.GetDashboardStats(ctx)
}

// ListAssessments returns one overview row per applicant.
func (s *DashboardService) ListAssessments(ctx context.Context) ([]model.AssessmentOverview, error) {
	return s.assessments.ListOverviews(ctx)
}

// GetCandidateDetail returns the full assessment record for one
// candidate. Missing fraud report or decision means the assessment
// has not reached that point yet.
func (s *DashboardService) GetCandidateDetail(ctx context.Context, id uuid.UUID) (*CandidateDetail, error) {
	applicant, err := s.applicants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	results, err := s.assessments.GetTestResults(ctx, id)
	if err != nil {
		return nil, err
	}

	fraudReport, err := s.assessments.GetFraudReport(ctx, id)
	if err != nil {
		return nil, err
	}

	decisionRecord, err := s.assessments.GetLatestDecision(ctx, id)
	if err != nil {
		return nil, err
	}

	return &CandidateDetail{
		Applicant:   applicant,
		TestResults: results,
		FraudReport: fraudReport,
		Decision:    decisionRecord,
	}, nil
}

// UpdateCandidateStatus lets the operator override the automated
// outcome (approve or reject a candidate manually).
func (s *DashboardService) UpdateCandidateStatus(ctx context.Context, id uuid.UUID, status model.ApplicantStatus) error {
	stage := model.StageFinalDecision
	if status == model.ApplicantRejected {
		stage = model.StageRejectedOverall
	}

	if err := s.applicants.UpdateStatus(ctx, id, status, stage); err != nil {
		return err
	}

	s.log.Info().
		Str("applicant_id", id.String()).
		Str("status", string(status)).
		Msg("candidate status overridden")
	return nil
}
