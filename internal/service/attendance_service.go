package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/absensi-backend/internal/model"
	"github.com/stemsi/absensi-backend/internal/repository"
	"github.com/stemsi/absensi-backend/internal/response"
)

// AttendanceService records presence and serves attendance history.
type AttendanceService struct {
	attendanceStore AttendanceStore
	events          EventPublisher
	loc             *time.Location
	now             func() time.Time
	log             zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService. loc decides which
// calendar day "today" is; a nil publisher disables events.
func NewAttendanceService(attendanceStore AttendanceStore, events EventPublisher, loc *time.Location, log zerolog.Logger) *AttendanceService {
	if events == nil {
		events = nopPublisher{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceService{
		attendanceStore: attendanceStore,
		events:          events,
		loc:             loc,
		now:             time.Now,
		log:             log.With().Str("component", "attendance_service").Logger(),
	}
}

// Today returns the current calendar date in the configured timezone.
func (s *AttendanceService) Today() model.Date {
	return model.DateOf(s.now(), s.loc)
}

// MarkPresent records studentID as present today, exactly once.
//
// The lookup only avoids noisy failures in the common case; the unique
// (student_id, date) constraint and the absent-only promotion decide races.
// Whichever way a caller loses, it gets ErrAlreadyMarked.
func (s *AttendanceService) MarkPresent(ctx context.Context, studentID int) (*model.AttendanceRecord, error) {
	if studentID <= 0 {
		return nil, ErrInvalidStudentID
	}
	today := s.Today()

	record, err := s.markPresent(ctx, studentID, today)
	switch {
	case err == nil:
		s.publish(ctx, model.AttendanceEvent{
			Type:      model.EventMarked,
			StudentID: studentID,
			Date:      today,
			Status:    record.Status,
			RecordID:  record.ID,
		})
	case errors.Is(err, ErrAlreadyMarked):
		s.publish(ctx, model.AttendanceEvent{
			Type:      model.EventConflict,
			StudentID: studentID,
			Date:      today,
			Status:    model.AttendancePresent,
		})
	}
	return record, err
}

func (s *AttendanceService) markPresent(ctx context.Context, studentID int, today model.Date) (*model.AttendanceRecord, error) {
	existing, err := s.attendanceStore.FindByStudentAndDate(ctx, studentID, today)
	switch repository.Classify(err) {
	case repository.Found:
		if existing.Status == model.AttendancePresent {
			return nil, ErrAlreadyMarked
		}
		return s.promote(ctx, studentID, today)
	case repository.NotFound:
		return s.insert(ctx, studentID, today)
	default:
		return nil, storageErr("find attendance", err)
	}
}

// promote turns the seeded absent row into present. No row left to promote
// means a concurrent caller got there first.
func (s *AttendanceService) promote(ctx context.Context, studentID int, today model.Date) (*model.AttendanceRecord, error) {
	record, err := s.attendanceStore.PromoteToPresent(ctx, studentID, today)
	switch repository.Classify(err) {
	case repository.Found:
		return record, nil
	case repository.NotFound:
		return nil, ErrAlreadyMarked
	default:
		return nil, storageErr("promote attendance", err)
	}
}

func (s *AttendanceService) insert(ctx context.Context, studentID int, today model.Date) (*model.AttendanceRecord, error) {
	record := &model.AttendanceRecord{
		StudentID: studentID,
		Date:      today,
		Status:    model.AttendancePresent,
	}
	err := s.attendanceStore.Insert(ctx, record)
	switch repository.Classify(err) {
	case repository.Found:
		return record, nil
	case repository.ConstraintViolation:
		// Someone else wrote the row between our lookup and insert: either a
		// racing mark (already present) or a class day seeding an absent row.
		s.log.Debug().Int("student_id", studentID).Str("date", today.String()).Msg("Insert lost race, resolving via promotion")
		return s.promote(ctx, studentID, today)
	case repository.NotFound:
		return nil, ErrStudentNotFound
	default:
		return nil, storageErr("insert attendance", err)
	}
}

// List returns every attendance record. The result is never nil.
func (s *AttendanceService) List(ctx context.Context) ([]model.AttendanceRecord, error) {
	records, err := s.attendanceStore.List(ctx)
	if err != nil {
		return nil, storageErr("list attendance", err)
	}
	if records == nil {
		records = []model.AttendanceRecord{}
	}
	return records, nil
}

func (s *AttendanceService) publish(ctx context.Context, e model.AttendanceEvent) {
	e.RequestID = response.RequestIDFromContext(ctx)
	e.OccurredAt = s.now().UTC()
	if err := s.events.Publish(ctx, e); err != nil {
		s.log.Warn().Err(err).Str("event", string(e.Type)).Int("student_id", e.StudentID).Msg("Failed to publish attendance event")
	}
}
