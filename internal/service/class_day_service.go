package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/absensi-backend/internal/model"
	"github.com/stemsi/absensi-backend/internal/repository"
	"github.com/stemsi/absensi-backend/internal/response"
)

// ClassDayService opens class days and seeds their attendance.
type ClassDayService struct {
	classDayStore ClassDayStore
	events        EventPublisher
	log           zerolog.Logger
}

// NewClassDayService creates a new ClassDayService. A nil publisher disables events.
func NewClassDayService(classDayStore ClassDayStore, events EventPublisher, log zerolog.Logger) *ClassDayService {
	if events == nil {
		events = nopPublisher{}
	}
	return &ClassDayService{
		classDayStore: classDayStore,
		events:        events,
		log:           log.With().Str("component", "class_day_service").Logger(),
	}
}

// CreateClassDay opens a class day on date and seeds one absent row for each
// of the first *num registered students, or for all of them when num is nil.
// The class day and its seed are committed together or not at all.
func (s *ClassDayService) CreateClassDay(ctx context.Context, classes, date string, num *int) (*model.ClassDayResponse, error) {
	classes = strings.TrimSpace(classes)
	date = strings.TrimSpace(date)
	if classes == "" || date == "" {
		return nil, ErrClassDayFields
	}
	day, err := model.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if num != nil && *num < 0 {
		return nil, ErrInvalidSeedCount
	}

	_, err = s.classDayStore.GetByDate(ctx, day)
	switch repository.Classify(err) {
	case repository.Found:
		return nil, ErrDateScheduled
	case repository.NotFound:
	default:
		return nil, storageErr("get class day", err)
	}

	cd := &model.ClassDay{Classes: classes, Date: day}
	seeded, err := s.classDayStore.CreateWithSeed(ctx, cd, num)
	if errors.Is(err, repository.ErrRosterTooSmall) {
		return nil, ErrSeedExceedsRoster
	}
	switch repository.Classify(err) {
	case repository.Found:
	case repository.ConstraintViolation:
		return nil, ErrDateScheduled
	default:
		return nil, storageErr("create class day", err)
	}

	if seeded == nil {
		seeded = []model.AttendanceRecord{}
	}

	event := model.AttendanceEvent{
		Type:       model.EventSeeded,
		Date:       day,
		Status:     model.AttendanceAbsent,
		Count:      len(seeded),
		RequestID:  response.RequestIDFromContext(ctx),
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("date", day.String()).Msg("Failed to publish seeding event")
	}

	s.log.Info().
		Str("date", day.String()).
		Str("classes", classes).
		Int("seeded", len(seeded)).
		Msg("Class day opened")

	return &model.ClassDayResponse{
		Class:      []model.ClassDay{*cd},
		Attendance: seeded,
	}, nil
}
