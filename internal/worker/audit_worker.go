package worker

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/absensi-backend/internal/config"
	"github.com/stemsi/absensi-backend/internal/model"
)

const (
	BatchSize    = 50
	BatchTimeout = 2 * time.Second
	PollTimeout  = 1 * time.Second // Must be >= 1s to satisfy Redis
	RetryBackoff = 2 * time.Second
)

// AuditStore persists attendance events.
type AuditStore interface {
	CopyEvents(ctx context.Context, events []model.AttendanceEvent) error
	InsertEvent(ctx context.Context, e model.AttendanceEvent) error
}

// AuditWorker drains the audit queue into the attendance_audit table in batches.
type AuditWorker struct {
	store AuditStore
	rdb   *redis.Client
	log   zerolog.Logger

	queue        string
	batchSize    int
	batchTimeout time.Duration
	pollTimeout  time.Duration
	retryBackoff time.Duration
}

// NewAuditWorker creates a new AuditWorker reading config.RedisKey.AuditQueue.
func NewAuditWorker(store AuditStore, rdb *redis.Client, log zerolog.Logger) *AuditWorker {
	return &AuditWorker{
		store:        store,
		rdb:          rdb,
		log:          log.With().Str("component", "audit_worker").Logger(),
		queue:        config.RedisKey.AuditQueue,
		batchSize:    BatchSize,
		batchTimeout: BatchTimeout,
		pollTimeout:  PollTimeout,
		retryBackoff: RetryBackoff,
	}
}

// Start runs the worker loop until ctx is cancelled, then flushes whatever
// is buffered. Call in a goroutine.
func (w *AuditWorker) Start(ctx context.Context) {
	w.log.Info().Msg("Worker started")

	buffer := make([]model.AttendanceEvent, 0, w.batchSize)
	lastFlush := time.Now()

	for {
		if len(buffer) > 0 && (len(buffer) >= w.batchSize || time.Since(lastFlush) >= w.batchTimeout) {
			w.flushSafe(ctx, buffer)
			buffer = buffer[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.shutdown(buffer)
			return
		default:
		}

		result, err := w.rdb.BLPop(ctx, w.pollTimeout, w.queue).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || ctx.Err() != nil {
				continue
			}
			w.log.Error().Err(err).Msg("Redis connection error, backing off")
			w.sleep(ctx, w.retryBackoff)
			continue
		}
		if len(result) < 2 {
			continue
		}

		var event model.AttendanceEvent
		if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
			// Malformed payloads can never succeed.
			w.log.Error().Err(err).Str("data", result[1]).Msg("Discarding malformed event")
			continue
		}
		buffer = append(buffer, event)
	}
}

// flushSafe tries one COPY, then row-by-row inserts, then requeues what is left.
func (w *AuditWorker) flushSafe(ctx context.Context, batch []model.AttendanceEvent) {
	err := w.store.CopyEvents(ctx, batch)
	if err == nil {
		w.log.Debug().Int("count", len(batch)).Msg("Audit batch persisted")
		return
	}
	w.log.Warn().Err(err).Int("count", len(batch)).Msg("Bulk copy failed, attempting row-by-row recovery")

	var failed []model.AttendanceEvent
	for _, e := range batch {
		if err := w.store.InsertEvent(ctx, e); err != nil {
			w.log.Error().Err(err).Str("event", string(e.Type)).Int("student_id", e.StudentID).Msg("Insert failed, requeueing")
			failed = append(failed, e)
		}
	}
	if len(failed) > 0 {
		w.requeue(ctx, failed)
	}
}

func (w *AuditWorker) requeue(ctx context.Context, events []model.AttendanceEvent) {
	// The caller's context may already be done during shutdown.
	pushCtx := context.WithoutCancel(ctx)

	pipe := w.rdb.Pipeline()
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			continue
		}
		pipe.RPush(pushCtx, w.queue, data)
	}
	if _, err := pipe.Exec(pushCtx); err != nil {
		w.log.Error().Err(err).Int("count", len(events)).Msg("CRITICAL: Failed to requeue audit events, events lost")
		return
	}
	w.log.Info().Int("count", len(events)).Msg("Requeued failed events")
	w.sleep(ctx, w.retryBackoff)
}

func (w *AuditWorker) shutdown(buffer []model.AttendanceEvent) {
	w.log.Info().Int("buffered", len(buffer)).Msg("Worker stopping, flushing remaining buffer")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if len(buffer) > 0 {
		w.flushSafe(ctx, buffer)
	}
	w.log.Info().Msg("Worker stopped")
}

func (w *AuditWorker) sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
