package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hiresift/hiresift-backend/internal/catalog"
	"github.com/hiresift/hiresift-backend/internal/config"
	"github.com/hiresift/hiresift-backend/internal/model"
	"github.com/hiresift/hiresift-backend/internal/repository"
)

// ErrNoActiveSession is returned when no assessment session exists for
// an applicant, either because intake rejected them or the session expired.
var ErrNoActiveSession = errors.New("no active assessment session")

// Sessions live for two days; an applicant who never finishes simply
// ages out of Redis while the applicant row stays on the dashboard.
const sessionTTL = 48 * time.Hour

// ApplicantService handles candidate intake and assessment session
// lifecycle.
type ApplicantService struct {
	cfg        *config.Config
	applicants *repository.ApplicantRepository
	catalog    *catalog.Catalog
	rdb        *redis.Client
	log        zerolog.Logger
}

// NewApplicantService creates a new ApplicantService.
func NewApplicantService(cfg *config.Config, applicants *repository.ApplicantRepository, cat *catalog.Catalog, rdb *redis.Client, log zerolog.Logger) *ApplicantService {
	return &ApplicantService{
		cfg:        cfg,
		applicants: applicants,
		catalog:    cat,
		rdb:        rdb,
		log:        log.With().Str("component", "applicant_service").Logger(),
	}
}

// SubmitApplication registers a candidate and, unless the resume score
// screens them out, opens an assessment session with questions picked
// for their level.
func (s *ApplicantService) SubmitApplication(ctx context.Context, req *model.SubmitApplicationRequest, resumeFilename string) (*model.Applicant, error) {
	aiScore, aiVerdict := interimVerdict(req.ResumeScore, nil)
	applicant := &model.Applicant{
		ID:             uuid.New(),
		Name:           req.Name,
		Email:          strings.ToLower(req.Email),
		ResumeScore:    req.ResumeScore,
		AIScore:        aiScore,
		AIVerdict:      aiVerdict,
		Status:         model.ApplicantPending,
		Stage:          model.StageResumeScreening,
		ResumeFilename: resumeFilename,
	}

	claims := model.ResumeClaims{
		Skills:          parseSkills(req.Skills),
		ExperienceYears: req.ExperienceYears,
		Projects:        req.Projects,
	}

	// Resume screening is the one synchronous gate: anyone below the
	// floor never gets an assessment session.
	if req.ResumeScore < 40 {
		applicant.Status = model.ApplicantRejected
		applicant.Stage = model.StageRejectedResume
		if err := s.applicants.Create(ctx, applicant); err != nil {
			return nil, err
		}
		s.log.Info().
			Str("applicant_id", applicant.ID.String()).
			Int("resume_score", req.ResumeScore).
			Msg("applicant rejected at resume screening")
		return applicant, nil
	}

	applicant.Stage = model.StageCodingAssessment
	if err := s.applicants.Create(ctx, applicant); err != nil {
		return nil, err
	}

	now := time.Now()
	session := &model.AssessmentSession{
		ApplicantID:  applicant.ID,
		CandidateID:  applicant.ID,
		Questions:    s.catalog.SelectQuestions(req.ResumeScore, s.cfg.CodingQuestions),
		HRQuestions:  s.catalog.SelectHRQuestions(s.cfg.HRQuestions),
		ResumeScore:  req.ResumeScore,
		ResumeClaims: claims,
		Stage:        model.StageCoding,
		StartedAt:    &now,
	}

	if err := s.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.log.Info().
		Str("applicant_id", applicant.ID.String()).
		Int("resume_score", req.ResumeScore).
		Int("questions", len(session.Questions)).
		Msg("assessment session created")

	return applicant, nil
}

// GetApplicant retrieves a single applicant.
func (s *ApplicantService) GetApplicant(ctx context.Context, id uuid.UUID) (*model.Applicant, error) {
	return s.applicants.GetByID(ctx, id)
}

// ListApplicants retrieves applicants with pagination and optional
// status filter.
func (s *ApplicantService) ListApplicants(ctx context.Context, status *model.ApplicantStatus, page, perPage int) ([]model.Applicant, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	return s.applicants.ListPaginated(ctx, status, perPage, (page-1)*perPage)
}

// DeleteApplicant removes an applicant and their session.
func (s *ApplicantService) DeleteApplicant(ctx context.Context, id uuid.UUID) error {
	if err := s.applicants.Delete(ctx, id); err != nil {
		return err
	}
	return s.rdb.Del(ctx, config.CacheKey.AssessmentSessionKey(id.String())).Err()
}

// GetSession loads the assessment session for an applicant from Redis.
func (s *ApplicantService) GetSession(ctx context.Context, applicantID uuid.UUID) (*model.AssessmentSession, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.AssessmentSessionKey(applicantID.String())).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	session := &model.AssessmentSession{}
	if err := json.Unmarshal([]byte(raw), session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return session, nil
}

// SaveSession stores the assessment session, refreshing its TTL.
func (s *ApplicantService) SaveSession(ctx context.Context, session *model.AssessmentSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	key := config.CacheKey.AssessmentSessionKey(session.ApplicantID.String())
	return s.rdb.Set(ctx, key, raw, sessionTTL).Err()
}

func parseSkills(csv string) []string {
	var skills []string
	for _, s := range strings.Split(csv, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
