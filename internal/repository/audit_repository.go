package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/absensi-backend/internal/model"
)

var auditColumns = []string{"event", "student_id", "date", "status", "record_id", "count", "request_id", "occurred_at"}

// AuditRepository persists attendance events into attendance_audit.
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func auditRow(e model.AttendanceEvent) []interface{} {
	return []interface{}{
		string(e.Type), nullInt(e.StudentID), e.Date.Time(),
		nullString(string(e.Status)), nullInt(e.RecordID), seedCount(e), nullString(e.RequestID), e.OccurredAt,
	}
}

// CopyEvents bulk-inserts events with COPY.
func (r *AuditRepository) CopyEvents(ctx context.Context, events []model.AttendanceEvent) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"attendance_audit"},
		auditColumns,
		pgx.CopyFromSlice(len(events), func(i int) ([]interface{}, error) {
			return auditRow(events[i]), nil
		}),
	)
	return err
}

// InsertEvent inserts a single event; used when a bulk copy fails.
func (r *AuditRepository) InsertEvent(ctx context.Context, e model.AttendanceEvent) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO attendance_audit (event, student_id, date, status, record_id, count, request_id, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		auditRow(e)...,
	)
	return err
}

// seedCount keeps a zero count for seeding events, where it is meaningful.
func seedCount(e model.AttendanceEvent) *int {
	if e.Type == model.EventSeeded {
		n := e.Count
		return &n
	}
	return nullInt(e.Count)
}

func nullInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func nullString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
