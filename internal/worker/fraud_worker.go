package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/hiresift/hiresift-backend/internal/config"
	"github.com/hiresift/hiresift-backend/internal/model"
	"github.com/hiresift/hiresift-backend/internal/repository"
)

const (
	FraudBatchSize    = 50
	FraudBatchTimeout = 2 * time.Second
	FraudPollTimeout  = 1 * time.Second
)

// FraudWorker drains the fraud persistence queue and writes fraud
// reports to Postgres.
type FraudWorker struct {
	assessments *repository.AssessmentRepository
	rdb         *redis.Client
	log         zerolog.Logger
}

// NewFraudWorker creates a new FraudWorker.
func NewFraudWorker(assessments *repository.AssessmentRepository, rdb *redis.Client, log zerolog.Logger) *FraudWorker {
	return &FraudWorker{
		assessments: assessments,
		rdb:         rdb,
		log:         log.With().Str("component", "fraud_worker").Logger(),
	}
}

func (w *FraudWorker) Start(ctx context.Context) {
	w.log.Info().Msg("FraudWorker started")

	batch := make([]*model.FraudPersistPayload, 0, FraudBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= FraudBatchSize || time.Since(lastFlush) >= FraudBatchTimeout) {

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
			item, err := w.rdb.BLPop(ctx, FraudPollTimeout, config.WorkerKey.PersistFraudQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p model.FraudPersistPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, &p)
		}
	}
}

func (w *FraudWorker) flushSafe(ctx context.Context, batch []*model.FraudPersistPayload) {
	for _, p := range batch {
		if err := w.assessments.SaveFraudReport(ctx, p.ApplicantID, &p.Report); err != nil {
			w.log.Error().Err(err).
				Str("applicant_id", p.ApplicantID.String()).
				Msg("save fraud report failed — requeueing")
			raw, _ := json.Marshal(p)
			w.rdb.RPush(ctx, config.WorkerKey.PersistFraudQueue, raw)
		}
	}
}
