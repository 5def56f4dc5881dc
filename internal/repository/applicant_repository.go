package repository

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hiresift/hiresift-backend/internal/model"
)

var (
	ErrDuplicateEmail    = errors.New("applicant with this email already exists")
	ErrApplicantNotFound = errors.New("applicant not found")
)

const applicantColumns = `id, name, email, resume_score, coding_score, hr_score, fraud_score,
	 final_score, ai_score, ai_verdict, status, stage, resume_filename, created_at, updated_at`

// ApplicantRepository handles applicant data access.
type ApplicantRepository struct {
	pool *pgxpool.Pool
}

// NewApplicantRepository creates a new ApplicantRepository.
func NewApplicantRepository(pool *pgxpool.Pool) *ApplicantRepository {
	return &ApplicantRepository{pool: pool}
}

func scanApplicant(row pgx.Row) (*model.Applicant, error) {
	a := &model.Applicant{}
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.ResumeScore, &a.CodingScore, &a.HRScore,
		&a.FraudScore, &a.FinalScore, &a.AIScore, &a.AIVerdict, &a.Status, &a.Stage,
		&a.ResumeFilename, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrApplicantNotFound
		}
		return nil, err
	}
	return a, nil
}

// Create inserts a new applicant.
func (r *ApplicantRepository) Create(ctx context.Context, a *model.Applicant) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO applicants (id, name, email, resume_score, ai_score, ai_verdict, status, stage, resume_filename)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING created_at, updated_at`,
		a.ID, a.Name, a.Email, a.ResumeScore, a.AIScore, a.AIVerdict, a.Status, a.Stage, a.ResumeFilename,
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// GetByID retrieves an applicant by ID.
func (r *ApplicantRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Applicant, error) {
	return scanApplicant(r.pool.QueryRow(ctx,
		`SELECT `+applicantColumns+` FROM applicants WHERE id = $1`, id))
}

// GetByEmail retrieves an applicant by their unique email.
func (r *ApplicantRepository) GetByEmail(ctx context.Context, email string) (*model.Applicant, error) {
	return scanApplicant(r.pool.QueryRow(ctx,
		`SELECT `+applicantColumns+` FROM applicants WHERE email = $1`, email))
}

// ListPaginated retrieves applicants with pagination and optional status filter.
func (r *ApplicantRepository) ListPaginated(ctx context.Context, status *model.ApplicantStatus, limit, offset int) ([]model.Applicant, int, error) {
	countQuery := `SELECT COUNT(*) FROM applicants`
	var countArgs []interface{}
	if status != nil {
		countQuery += ` WHERE status = $1`
		countArgs = append(countArgs, *status)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + applicantColumns + ` FROM applicants`
	var args []interface{}
	argIdx := 1

	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
		argIdx++
	}

	query += ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(argIdx) + ` OFFSET $` + strconv.Itoa(argIdx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var applicants []model.Applicant
	for rows.Next() {
		var a model.Applicant
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.ResumeScore, &a.CodingScore, &a.HRScore,
			&a.FraudScore, &a.FinalScore, &a.AIScore, &a.AIVerdict, &a.Status, &a.Stage,
			&a.ResumeFilename, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		applicants = append(applicants, a)
	}
	return applicants, total, rows.Err()
}

// UpdateScores persists the scoring outcome of an assessment phase.
// Nil score pointers are left untouched.
func (r *ApplicantRepository) UpdateScores(ctx context.Context, a *model.Applicant) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE applicants
		 SET coding_score = COALESCE($1, coding_score),
		     hr_score     = COALESCE($2, hr_score),
		     fraud_score  = COALESCE($3, fraud_score),
		     final_score  = COALESCE($4, final_score),
		     ai_score     = $5,
		     ai_verdict   = $6,
		     status       = $7,
		     stage        = $8,
		     updated_at   = CURRENT_TIMESTAMP
		 WHERE id = $9`,
		a.CodingScore, a.HRScore, a.FraudScore, a.FinalScore,
		a.AIScore, a.AIVerdict, a.Status, a.Stage, a.ID,
	)
	return err
}

// UpdateStatus sets the applicant's status and pipeline stage.
func (r *ApplicantRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ApplicantStatus, stage model.PipelineStage) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE applicants SET status = $1, stage = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3`,
		status, stage, id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrApplicantNotFound
	}
	return nil
}

// Delete removes an applicant and cascades to their assessment artifacts.
func (r *ApplicantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM applicants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrApplicantNotFound
	}
	return nil
}

// GetDashboardStats aggregates the candidate pool in a single query.
func (r *ApplicantRepository) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	s := &model.DashboardStats{}
	err := r.pool.QueryRow(ctx,
		`SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'approved'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COALESCE(AVG(final_score) FILTER (WHERE final_score IS NOT NULL), 0)
		 FROM applicants`,
	).Scan(&s.Total, &s.Approved, &s.Rejected, &s.Pending, &s.AvgScore)
	if err != nil {
		return nil, err
	}
	return s, nil
}
