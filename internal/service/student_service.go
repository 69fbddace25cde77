package service

import (
	"context"
	"strings"

	"github.com/stemsi/absensi-backend/internal/model"
	"github.com/stemsi/absensi-backend/internal/repository"
)

// StudentService handles the student registry.
type StudentService struct {
	studentStore StudentStore
}

// NewStudentService creates a new StudentService.
func NewStudentService(studentStore StudentStore) *StudentService {
	return &StudentService{studentStore: studentStore}
}

// Create registers a student. The name is trimmed and required; an empty uid
// is stored as no uid.
func (s *StudentService) Create(ctx context.Context, name string, uid *string) (*model.Student, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if uid != nil {
		trimmed := strings.TrimSpace(*uid)
		if trimmed == "" {
			uid = nil
		} else {
			uid = &trimmed
		}
	}

	student := &model.Student{Name: name, UID: uid}
	err := s.studentStore.Create(ctx, student)
	switch repository.Classify(err) {
	case repository.Found:
		return student, nil
	case repository.ConstraintViolation:
		return nil, ErrDuplicateUID
	default:
		return nil, storageErr("create student", err)
	}
}

// List returns every registered student. The result is never nil.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	students, err := s.studentStore.List(ctx)
	if err != nil {
		return nil, storageErr("list students", err)
	}
	if students == nil {
		students = []model.Student{}
	}
	return students, nil
}

// GetByID retrieves a student by ID.
func (s *StudentService) GetByID(ctx context.Context, id int) (*model.Student, error) {
	if id <= 0 {
		return nil, ErrInvalidStudentID
	}
	student, err := s.studentStore.GetByID(ctx, id)
	switch repository.Classify(err) {
	case repository.Found:
		return student, nil
	case repository.NotFound:
		return nil, ErrStudentNotFound
	default:
		return nil, storageErr("get student", err)
	}
}
