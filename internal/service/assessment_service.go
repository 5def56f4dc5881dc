package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hiresift/hiresift-backend/internal/catalog"
	"github.com/hiresift/hiresift-backend/internal/config"
	"github.com/hiresift/hiresift-backend/internal/decision"
	"github.com/hiresift/hiresift-backend/internal/fraud"
	"github.com/hiresift/hiresift-backend/internal/judge"
	"github.com/hiresift/hiresift-backend/internal/model"
	"github.com/hiresift/hiresift-backend/internal/websocket"
)

// Assessment flow errors.
var (
	ErrWrongStage       = errors.New("assessment is not in the expected stage")
	ErrAlreadySubmitted = errors.New("assessment already submitted")
)

// CodingResult is the response payload for a graded coding round.
type CodingResult struct {
	Score      int                     `json:"score"`
	Summary    model.GradingSummary    `json:"summary"`
	PerTest    []model.ExecutionResult `json:"test_results"`
	FraudScore int                     `json:"fraud_score"`
	RiskLevel  model.RiskLevel         `json:"risk_level"`
	NextStage  model.AssessmentStage   `json:"next_stage"`
}

// HRResult is the response payload for the final HR round, closing
// out the assessment.
type HRResult struct {
	HRScore      int                  `json:"hr_score"`
	OverallScore int                  `json:"overall_score"`
	Verdict      string               `json:"verdict"`
	Decision     model.DecisionRecord `json:"decision"`
}

// AssessmentService orchestrates the coding and HR rounds: grading,
// fraud analysis and the final hiring decision. Durable writes go
// through Redis queues; live progress goes out over PubSub.
type AssessmentService struct {
	cfg        *config.Config
	applicants *ApplicantService
	catalog    *catalog.Catalog
	grader     *judge.Grader
	fraud      *fraud.Pipeline
	engine     *decision.Engine
	rdb        *redis.Client
	log        zerolog.Logger
}

// NewAssessmentService creates a new AssessmentService.
func NewAssessmentService(
	cfg *config.Config,
	applicants *ApplicantService,
	cat *catalog.Catalog,
	grader *judge.Grader,
	fraudPipeline *fraud.Pipeline,
	engine *decision.Engine,
	rdb *redis.Client,
	log zerolog.Logger,
) *AssessmentService {
	return &AssessmentService{
		cfg:        cfg,
		applicants: applicants,
		catalog:    cat,
		grader:     grader,
		fraud:      fraudPipeline,
		engine:     engine,
		rdb:        rdb,
		log:        log.With().Str("component", "assessment_service").Logger(),
	}
}

// GetCodingQuestions returns the applicant's coding questions with
// expected outputs stripped.
func (s *AssessmentService) GetCodingQuestions(ctx context.Context, applicantID uuid.UUID) ([]model.QuestionForApplicant, error) {
	session, err := s.applicants.GetSession(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StageCoding {
		return nil, ErrAlreadySubmitted
	}

	questions := make([]model.QuestionForApplicant, 0, len(session.Questions))
	for _, q := range session.Questions {
		questions = append(questions, q.ForApplicant())
	}
	return questions, nil
}

// SubmitCoding grades the coding round, runs the fraud pipeline and
// advances the session to the HR round. Grading progress is published
// per test case on the applicant's progress channel.
func (s *AssessmentService) SubmitCoding(ctx context.Context, applicantID uuid.UUID, req *model.CodingSubmissionRequest) (*CodingResult, error) {
	session, err := s.applicants.GetSession(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StageCoding {
		return nil, ErrWrongStage
	}

	submissions := make([]model.Submission, 0, len(req.Answers))
	for _, a := range req.Answers {
		submissions = append(submissions, model.Submission{QuestionID: a.QuestionID, SourceCode: a.Answer})
	}

	channel := config.CacheKey.AssessmentProgressChannel(applicantID.String())
	report := s.grader.GradeWithProgress(ctx, session.Questions, submissions, func(p judge.Progress) {
		s.publish(ctx, channel, websocket.ProgressEvent{
			Event:      websocket.EventProgress,
			Done:       p.Done,
			Total:      p.Total,
			QuestionID: p.Result.QuestionID,
			Passed:     p.Result.Passed,
		})
	})

	now := time.Now()
	fraudReport := s.fraud.Run(submissions, session.ResumeClaims, model.TimingInfo{
		StartedAt:   session.StartedAt,
		SubmittedAt: &now,
		Difficulty:  catalog.DifficultyFor(session.ResumeScore),
		Questions:   len(session.Questions),
	})

	session.CodingScore = &report.Score
	session.TestResults = report.PerTest
	session.FraudScore = &fraudReport.FraudScore
	session.SubmittedAt = &now
	session.Stage = model.StageHR
	if err := s.applicants.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	aiScore, aiVerdict := interimVerdict(session.ResumeScore, session.CodingScore)
	s.enqueue(ctx, config.WorkerKey.PersistScoresQueue, model.ScorePersistPayload{
		ApplicantID: applicantID,
		CodingScore: session.CodingScore,
		FraudScore:  session.FraudScore,
		AIScore:     aiScore,
		AIVerdict:   aiVerdict,
		Status:      model.ApplicantPending,
		Stage:       model.StageCodingAssessment,
		TestResults: report.PerTest,
	})
	s.enqueue(ctx, config.WorkerKey.PersistFraudQueue, model.FraudPersistPayload{
		ApplicantID: applicantID,
		Report:      fraudReport,
	})

	s.publish(ctx, channel, websocket.GradedEvent{
		Event:      websocket.EventGraded,
		Score:      report.Score,
		FraudScore: fraudReport.FraudScore,
	})

	s.log.Info().
		Str("applicant_id", applicantID.String()).
		Int("score", report.Score).
		Int("fraud_score", fraudReport.FraudScore).
		Msg("coding round graded")

	return &CodingResult{
		Score:      report.Score,
		Summary:    report.Summary(),
		PerTest:    report.PerTest,
		FraudScore: fraudReport.FraudScore,
		RiskLevel:  fraudReport.RiskLevel,
		NextStage:  model.StageHR,
	}, nil
}

// GetHRQuestions returns the behavioral questions for the HR round.
func (s *AssessmentService) GetHRQuestions(ctx context.Context, applicantID uuid.UUID) ([]model.HRQuestion, error) {
	session, err := s.applicants.GetSession(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StageHR {
		return nil, ErrWrongStage
	}
	return session.HRQuestions, nil
}

// SubmitHR scores the behavioral round, produces the final decision
// and completes the assessment.
func (s *AssessmentService) SubmitHR(ctx context.Context, applicantID uuid.UUID, req *model.HRSubmissionRequest) (*HRResult, error) {
	session, err := s.applicants.GetSession(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	if session.Stage != model.StageHR {
		return nil, ErrWrongStage
	}

	hrScore := scoreHRAnswers(req.Answers)
	session.HRScore = &hrScore
	session.HRAnswers = make(map[int]string, len(req.Answers))
	for _, a := range req.Answers {
		session.HRAnswers[a.QuestionID] = a.Answer
	}

	fraudScore := 0
	if session.FraudScore != nil {
		fraudScore = *session.FraudScore
	}

	record := s.engine.Decide(
		model.StageCodingAssessment,
		session.ResumeScore,
		session.CodingScore,
		fraudScore,
		s.jobConfig(),
		session.ResumeClaims.Skills,
	)

	overall, verdict := summarizePhases(session.ResumeScore, session.CodingScore, session.HRScore)

	session.FinalScore = &record.FinalScore
	session.Stage = model.StageCompleted
	if err := s.applicants.SaveSession(ctx, session); err != nil {
		return nil, err
	}

	status := model.ApplicantCompleted
	if record.NextStage.Rejected() {
		status = model.ApplicantRejected
	}

	s.enqueue(ctx, config.WorkerKey.PersistScoresQueue, model.ScorePersistPayload{
		ApplicantID: applicantID,
		CodingScore: session.CodingScore,
		HRScore:     session.HRScore,
		FraudScore:  session.FraudScore,
		FinalScore:  session.FinalScore,
		AIScore:     overall,
		AIVerdict:   verdict,
		Status:      status,
		Stage:       record.NextStage,
		Decision:    &record,
	})

	s.log.Info().
		Str("applicant_id", applicantID.String()).
		Int("hr_score", hrScore).
		Int("final_score", record.FinalScore).
		Str("next_stage", string(record.NextStage)).
		Msg("assessment completed")

	return &HRResult{
		HRScore:      hrScore,
		OverallScore: overall,
		Verdict:      verdict,
		Decision:     record,
	}, nil
}

func (s *AssessmentService) jobConfig() *model.JobConfig {
	if s.cfg.JobRole == "" {
		return nil
	}
	return &model.JobConfig{
		Role:          s.cfg.JobRole,
		Level:         s.cfg.JobLevel,
		Skills:        s.cfg.JobSkills,
		MinScore:      s.cfg.JobMinScore,
		RiskTolerance: s.cfg.JobRiskTolerance,
	}
}

func (s *AssessmentService) enqueue(ctx context.Context, queue string, payload any) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.log.Error().Err(err).Str("queue", queue).Msg("marshal queue payload")
		return
	}
	if err := s.rdb.RPush(ctx, queue, raw).Err(); err != nil {
		s.log.Error().Err(err).Str("queue", queue).Msg("enqueue failed")
	}
}

func (s *AssessmentService) publish(ctx context.Context, channel string, event any) {
	raw, err := json.Marshal(event)
	if err != nil {
		return
	}
	// Progress is best-effort; nobody may be listening.
	_ = s.rdb.Publish(ctx, channel, raw).Err()
}

// scoreHRAnswers applies a depth heuristic per answer and averages.
// Longer answers signal more considered responses.
func scoreHRAnswers(answers []model.HRAnswer) int {
	if len(answers) == 0 {
		return 0
	}
	total := 0
	for _, a := range answers {
		total += wordScore(len(strings.Fields(a.Answer)))
	}
	return total / len(answers)
}

func wordScore(words int) int {
	switch {
	case words >= 50:
		return 100
	case words >= 30:
		return 85
	case words >= 15:
		return 70
	case words >= 5:
		return 50
	default:
		return 20
	}
}

// summarizePhases blends the phase scores (resume 30%, coding 40%,
// HR 30%) into the display score and verdict shown on the dashboard.
// Weights are normalized over the phases that actually ran, so a
// single completed phase passes through unchanged.
func summarizePhases(resumeScore int, codingScore, hrScore *int) (int, string) {
	scores := []float64{float64(resumeScore)}
	weights := []float64{0.30}
	if codingScore != nil {
		scores = append(scores, float64(*codingScore))
		weights = append(weights, 0.40)
	}
	if hrScore != nil {
		scores = append(scores, float64(*hrScore))
		weights = append(weights, 0.30)
	}

	total := 0.0
	for _, w := range weights {
		total += w
	}
	final := 0.0
	for i := range scores {
		final += scores[i] * (weights[i] / total)
	}
	overall := int(final)

	var verdict string
	switch {
	case overall >= 80:
		verdict = "Strong match - highly recommended"
	case overall >= 65:
		verdict = "Good match - recommended"
	case overall >= 50:
		verdict = "Moderate match - consider"
	case overall >= 40:
		verdict = "Below average - manual review"
	default:
		verdict = "Poor match - not recommended"
	}
	return overall, verdict
}

// interimVerdict is the dashboard score shown before the assessment
// completes: the resume score alone at intake, the resume/coding
// average after the coding round.
func interimVerdict(resumeScore int, codingScore *int) (int, string) {
	score := resumeScore
	if codingScore != nil {
		score = (resumeScore + *codingScore) / 2
	}

	var verdict string
	switch {
	case score >= 80:
		verdict = "Strong match - highly recommended"
	case score >= 60:
		verdict = "Promising profile"
	case score >= 40:
		verdict = "Borderline - manual review"
	default:
		verdict = "Below threshold"
	}
	return score, verdict
}
