package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hiresift/hiresift-backend/internal/config"
	"github.com/hiresift/hiresift-backend/internal/model"
	"github.com/hiresift/hiresift-backend/internal/repository"
)

const (
	ScoreBatchSize    = 50
	ScoreBatchTimeout = 2 * time.Second
	ScorePollTimeout  = 1 * time.Second // Must be >= 1s to satisfy Redis
)

// ScoreWorker drains the score persistence queue and writes assessment
// outcomes to Postgres, so grading requests never block on the
// database.
type ScoreWorker struct {
	pool        *pgxpool.Pool
	assessments *repository.AssessmentRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewScoreWorker creates a new ScoreWorker.
func NewScoreWorker(pool *pgxpool.Pool, assessments *repository.AssessmentRepository, rdb *redis.Client, log zerolog.Logger) *ScoreWorker {
	return &ScoreWorker{
		pool:        pool,
		assessments: assessments,
		rdb:         rdb,
		log:         log.With().Str("component", "score_worker").Logger(),
	}
}

// ----------------------------------------------------------------
// Worker loop with batching
// ----------------------------------------------------------------

func (w *ScoreWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ScoreWorker started")

	batch := make([]*model.ScorePersistPayload, 0, ScoreBatchSize)
	lastFlush := time.Now()

	for {
		// Should flush?
		if len(batch) > 0 &&
			(len(batch) >= ScoreBatchSize || time.Since(lastFlush) >= ScoreBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ScorePollTimeout, config.WorkerKey.PersistScoresQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p model.ScorePersistPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &p)
		}
	}
}

// ----------------------------------------------------------------
// Batch update wrapper
// ----------------------------------------------------------------

func (w *ScoreWorker) flushSafe(ctx context.Context, batch []*model.ScorePersistPayload) {
	if len(batch) == 0 {
		return
	}

	if err := w.bulkUpdateApplicants(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk applicant update failed, using fallback")

		for _, p := range batch {
			if err := w.updateApplicant(ctx, p); err != nil {
				w.log.Error().Err(err).
					Str("applicant_id", p.ApplicantID.String()).
					Msg("applicant update failed — requeueing")
				raw, _ := json.Marshal(p)
				w.rdb.RPush(ctx, config.WorkerKey.PersistScoresQueue, raw)
			}
		}
		return
	}

	// Per-test results and decision records ride along with the score
	// payload; they are insert-only and safe to retry.
	for _, p := range batch {
		w.persistArtifacts(ctx, p)
	}
}

// ----------------------------------------------------------------
// BULK PostgreSQL UPDATE using UNNEST + alias
// ----------------------------------------------------------------

func (w *ScoreWorker) bulkUpdateApplicants(ctx context.Context, batch []*model.ScorePersistPayload) error {
	n := len(batch)

	ids := make([]uuid.UUID, 0, n)
	codingScores := make([]*int, 0, n)
	hrScores := make([]*int, 0, n)
	fraudScores := make([]*int, 0, n)
	finalScores := make([]*int, 0, n)
	aiScores := make([]int, 0, n)
	aiVerdicts := make([]string, 0, n)
	statuses := make([]string, 0, n)
	stages := make([]string, 0, n)

	for _, p := range batch {
		ids = append(ids, p.ApplicantID)
		codingScores = append(codingScores, p.CodingScore)
		hrScores = append(hrScores, p.HRScore)
		fraudScores = append(fraudScores, p.FraudScore)
		finalScores = append(finalScores, p.FinalScore)
		aiScores = append(aiScores, p.AIScore)
		aiVerdicts = append(aiVerdicts, p.AIVerdict)
		statuses = append(statuses, string(p.Status))
		stages = append(stages, string(p.Stage))
	}

	query := `
		UPDATE applicants AS a
		SET coding_score = COALESCE(t.coding_score, a.coding_score),
		    hr_score     = COALESCE(t.hr_score, a.hr_score),
		    fraud_score  = COALESCE(t.fraud_score, a.fraud_score),
		    final_score  = COALESCE(t.final_score, a.final_score),
		    ai_score     = t.ai_score,
		    ai_verdict   = t.ai_verdict,
		    status       = t.status,
		    stage        = t.stage,
		    updated_at   = CURRENT_TIMESTAMP
		FROM (
			SELECT *
			FROM UNNEST(
				$1::uuid[],
				$2::int[],
				$3::int[],
				$4::int[],
				$5::int[],
				$6::int[],
				$7::text[],
				$8::text[],
				$9::text[]
			) AS u (id, coding_score, hr_score, fraud_score, final_score, ai_score, ai_verdict, status, stage)
		) AS t
		WHERE a.id = t.id
	`

	_, err := w.pool.Exec(ctx, query,
		ids, codingScores, hrScores, fraudScores, finalScores, aiScores, aiVerdicts, statuses, stages)
	return err
}

// ----------------------------------------------------------------
// FALLBACK single update
// ----------------------------------------------------------------

func (w *ScoreWorker) updateApplicant(ctx context.Context, p *model.ScorePersistPayload) error {
	_, err := w.pool.Exec(ctx,
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
		p.CodingScore, p.HRScore, p.FraudScore, p.FinalScore,
		p.AIScore, p.AIVerdict, p.Status, p.Stage, p.ApplicantID,
	)
	if err != nil {
		return err
	}

	w.persistArtifacts(ctx, p)
	return nil
}

func (w *ScoreWorker) persistArtifacts(ctx context.Context, p *model.ScorePersistPayload) {
	if len(p.TestResults) > 0 {
		if err := w.assessments.SaveTestResults(ctx, p.ApplicantID, p.TestResults); err != nil {
			w.log.Error().Err(err).
				Str("applicant_id", p.ApplicantID.String()).
				Msg("save test results failed")
		}
	}

	if p.Decision != nil {
		if err := w.assessments.SaveDecision(ctx, p.ApplicantID, p.Decision); err != nil {
			w.log.Error().Err(err).
				Str("applicant_id", p.ApplicantID.String()).
				Msg("save decision failed")
		}
	}
}
