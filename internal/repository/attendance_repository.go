package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/absensi-backend/internal/model"
)

const attendanceColumns = `id, student_id, date, status, created_at, updated_at`

// AttendanceRepository handles attendance data access.
// The attendance table is unique on (student_id, date).
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

func scanAttendance(row pgx.Row, a *model.AttendanceRecord) error {
	return row.Scan(&a.ID, &a.StudentID, &a.Date, &a.Status, &a.CreatedAt, &a.UpdatedAt)
}

// FindByStudentAndDate returns the record for a student on a date, or pgx.ErrNoRows.
func (r *AttendanceRepository) FindByStudentAndDate(ctx context.Context, studentID int, date model.Date) (*model.AttendanceRecord, error) {
	a := &model.AttendanceRecord{}
	err := scanAttendance(r.pool.QueryRow(ctx,
		`SELECT `+attendanceColumns+` FROM attendance WHERE student_id = $1 AND date = $2`,
		studentID, date,
	), a)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Insert creates a record. Losing a race on (student_id, date) surfaces as a
// unique violation; an unknown student as ErrReferenceMissing.
func (r *AttendanceRepository) Insert(ctx context.Context, a *model.AttendanceRecord) error {
	err := scanAttendance(r.pool.QueryRow(ctx,
		`INSERT INTO attendance (student_id, date, status) VALUES ($1, $2, $3)
		 RETURNING `+attendanceColumns,
		a.StudentID, a.Date, a.Status,
	), a)
	if err != nil && isForeignKeyViolation(err) {
		return fmt.Errorf("%w: student %d", ErrReferenceMissing, a.StudentID)
	}
	return err
}

// PromoteToPresent flips a seeded absent row to present. It only matches rows
// still absent, so of two concurrent callers exactly one gets the row back and
// the other gets pgx.ErrNoRows.
func (r *AttendanceRepository) PromoteToPresent(ctx context.Context, studentID int, date model.Date) (*model.AttendanceRecord, error) {
	a := &model.AttendanceRecord{}
	err := scanAttendance(r.pool.QueryRow(ctx,
		`UPDATE attendance SET status = $3, updated_at = NOW()
		 WHERE student_id = $1 AND date = $2 AND status = $4
		 RETURNING `+attendanceColumns,
		studentID, date, model.AttendancePresent, model.AttendanceAbsent,
	), a)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List retrieves every attendance record ordered by date then student.
func (r *AttendanceRepository) List(ctx context.Context) ([]model.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance ORDER BY date, student_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]model.AttendanceRecord, error) {
	var records []model.AttendanceRecord
	for rows.Next() {
		var a model.AttendanceRecord
		if err := scanAttendance(rows, &a); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
