package repository

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hiresift/hiresift-backend/internal/model"
)

// AssessmentRepository persists the durable artifacts of an
// assessment: per-test execution results, fraud reports and decision
// records. Hot session state lives in Redis, not here.
type AssessmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssessmentRepository creates a new AssessmentRepository.
func NewAssessmentRepository(pool *pgxpool.Pool) *AssessmentRepository {
	return &AssessmentRepository{pool: pool}
}

// SaveTestResults bulk-inserts the per-test outcomes of one coding round.
func (r *AssessmentRepository) SaveTestResults(ctx context.Context, applicantID uuid.UUID, results []model.ExecutionResult) error {
	if len(results) == 0 {
		return nil
	}

	rows := make([][]interface{}, 0, len(results))
	for _, res := range results {
		expected, err := json.Marshal(res.Expected)
		if err != nil {
			return err
		}
		rows = append(rows, []interface{}{
			applicantID, res.QuestionID, res.Title, res.Passed, res.Output, res.Error, expected,
		})
	}

	_, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"test_results"},
		[]string{"applicant_id", "question_id", "title", "passed", "output", "error", "expected"},
		pgx.CopyFromRows(rows),
	)
	return err
}

// GetTestResults retrieves the stored execution results for an applicant.
func (r *AssessmentRepository) GetTestResults(ctx context.Context, applicantID uuid.UUID) ([]model.ExecutionResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT question_id, title, passed, output, error, expected
		 FROM test_results WHERE applicant_id = $1 ORDER BY id`,
		applicantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.ExecutionResult
	for rows.Next() {
		var res model.ExecutionResult
		var expected []byte
		if err := rows.Scan(&res.QuestionID, &res.Title, &res.Passed, &res.Output, &res.Error, &expected); err != nil {
			return nil, err
		}
		if len(expected) > 0 {
			if err := json.Unmarshal(expected, &res.Expected); err != nil {
				return nil, err
			}
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// SaveFraudReport upserts the fraud report for an applicant. Reruns of
// the pipeline replace the previous report.
func (r *AssessmentRepository) SaveFraudReport(ctx context.Context, applicantID uuid.UUID, report *model.FraudReport) error {
	checks, err := json.Marshal(report.Checks)
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO fraud_reports (applicant_id, fraud_score, risk_level, checks, summary)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (applicant_id)
		 DO UPDATE SET fraud_score = $2, risk_level = $3, checks = $4, summary = $5, created_at = CURRENT_TIMESTAMP`,
		applicantID, report.FraudScore, report.RiskLevel, checks, report.Summary,
	)
	return err
}

// GetFraudReport retrieves the stored fraud report for an applicant,
// or nil if none exists.
func (r *AssessmentRepository) GetFraudReport(ctx context.Context, applicantID uuid.UUID) (*model.FraudReport, error) {
	report := &model.FraudReport{}
	var checks []byte
	err := r.pool.QueryRow(ctx,
		`SELECT fraud_score, risk_level, checks, summary FROM fraud_reports WHERE applicant_id = $1`,
		applicantID,
	).Scan(&report.FraudScore, &report.RiskLevel, &checks, &report.Summary)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(checks, &report.Checks); err != nil {
		return nil, err
	}
	return report, nil
}

// SaveDecision stores the terminal decision record. Decisions are
// append-only; the latest row wins.
func (r *AssessmentRepository) SaveDecision(ctx context.Context, applicantID uuid.UUID, record *model.DecisionRecord) error {
	recommendation, err := json.Marshal(record.Recommendation)
	if err != nil {
		return err
	}

	var jobMatch []byte
	if record.JobMatch != nil {
		if jobMatch, err = json.Marshal(record.JobMatch); err != nil {
			return err
		}
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO decisions (applicant_id, final_score, next_stage, decision, recommendation, job_match)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		applicantID, record.FinalScore, record.NextStage, record.Recommendation.Decision, recommendation, jobMatch,
	)
	return err
}

// GetLatestDecision retrieves the most recent decision record for an
// applicant, or nil if none exists.
func (r *AssessmentRepository) GetLatestDecision(ctx context.Context, applicantID uuid.UUID) (*model.DecisionRecord, error) {
	record := &model.DecisionRecord{}
	var recommendation, jobMatch []byte
	err := r.pool.QueryRow(ctx,
		`SELECT final_score, next_stage, recommendation, job_match
		 FROM decisions WHERE applicant_id = $1 ORDER BY id DESC LIMIT 1`,
		applicantID,
	).Scan(&record.FinalScore, &record.NextStage, &recommendation, &jobMatch)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(recommendation, &record.Recommendation); err != nil {
		return nil, err
	}
	if len(jobMatch) > 0 {
		record.JobMatch = &model.JobMatch{}
		if err := json.Unmarshal(jobMatch, record.JobMatch); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// ListOverviews returns one summary row per applicant who has started
// an assessment, newest first.
func (r *AssessmentRepository) ListOverviews(ctx context.Context) ([]model.AssessmentOverview, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT a.id, a.name, a.email, a.resume_score, a.coding_score, a.ai_score,
		        COUNT(DISTINCT t.question_id), a.status IN ('completed', 'approved', 'rejected')
		 FROM applicants a
		 LEFT JOIN test_results t ON t.applicant_id = a.id
		 GROUP BY a.id
		 ORDER BY a.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overviews []model.AssessmentOverview
	for rows.Next() {
		var o model.AssessmentOverview
		if err := rows.Scan(&o.ApplicantID, &o.CandidateName, &o.CandidateEmail, &o.ResumeScore,
			&o.CodingScore, &o.AIScore, &o.NumQuestions, &o.Completed); err != nil {
			return nil, err
		}
		overviews = append(overviews, o)
	}
	return overviews, rows.Err()
}
