package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/absensi-backend/internal/model"
)

// ClassDayRepository handles class-day data access and attendance seeding.
// The class_days table is unique on date.
type ClassDayRepository struct {
	pool *pgxpool.Pool
}

// NewClassDayRepository creates a new ClassDayRepository.
func NewClassDayRepository(pool *pgxpool.Pool) *ClassDayRepository {
	return &ClassDayRepository{pool: pool}
}

// GetByDate fetches the single class day scheduled on date, or pgx.ErrNoRows.
func (r *ClassDayRepository) GetByDate(ctx context.Context, date model.Date) (*model.ClassDay, error) {
	cd := &model.ClassDay{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, classes, date, num, created_at FROM class_days WHERE date = $1`, date,
	).Scan(&cd.ID, &cd.Classes, &cd.Date, &cd.Num, &cd.CreatedAt)
	if err != nil {
		return nil, err
	}
	return cd, nil
}

// CreateWithSeed inserts cd and one absent attendance row per seeded student in
// a single transaction. A nil limit seeds the whole roster, otherwise the first
// *limit students by ID are seeded. If fewer than *limit students exist nothing
// is committed and ErrRosterTooSmall is returned. Students already holding a
// row for the date keep it and are left out of the result. cd.Num is set to
// the number of rows seeded.
func (r *ClassDayRepository) CreateWithSeed(ctx context.Context, cd *model.ClassDay, limit *int) ([]model.AttendanceRecord, error) {
	var seeded []model.AttendanceRecord

	err := pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO class_days (classes, date, num) VALUES ($1, $2, 0)
			 RETURNING id, created_at`,
			cd.Classes, cd.Date,
		).Scan(&cd.ID, &cd.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert class day: %w", err)
		}

		if limit != nil {
			var roster int
			if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&roster); err != nil {
				return fmt.Errorf("count students: %w", err)
			}
			if roster < *limit {
				return fmt.Errorf("%w: want %d, have %d", ErrRosterTooSmall, *limit, roster)
			}
			if *limit == 0 {
				cd.Num = 0
				return nil
			}
		}

		rows, err := tx.Query(ctx,
			`INSERT INTO attendance (student_id, date, status)
			 SELECT id, $1::date, $2::text FROM students ORDER BY id LIMIT $3
			 ON CONFLICT (student_id, date) DO NOTHING
			 RETURNING `+attendanceColumns,
			cd.Date, model.AttendanceAbsent, limit,
		)
		if err != nil {
			return fmt.Errorf("seed attendance: %w", err)
		}
		seeded, err = collectAttendance(rows)
		rows.Close()
		if err != nil {
			return fmt.Errorf("seed attendance: %w", err)
		}

		cd.Num = len(seeded)
		if _, err := tx.Exec(ctx, `UPDATE class_days SET num = $2 WHERE id = $1`, cd.ID, cd.Num); err != nil {
			return fmt.Errorf("record seed count: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seeded, nil
}
