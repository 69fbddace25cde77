package service

import (
	"context"

	"github.com/stemsi/absensi-backend/internal/model"
)

// The store interfaces are the storage capability each service is built on.
// The repository package implements them against PostgreSQL.

type StudentStore interface {
	Create(ctx context.Context, s *model.Student) error
	List(ctx context.Context) ([]model.Student, error)
	GetByID(ctx context.Context, id int) (*model.Student, error)
}

type AttendanceStore interface {
	FindByStudentAndDate(ctx context.Context, studentID int, date model.Date) (*model.AttendanceRecord, error)
	Insert(ctx context.Context, a *model.AttendanceRecord) error
	PromoteToPresent(ctx context.Context, studentID int, date model.Date) (*model.AttendanceRecord, error)
	List(ctx context.Context) ([]model.AttendanceRecord, error)
}

type ClassDayStore interface {
	GetByDate(ctx context.Context, date model.Date) (*model.ClassDay, error)
	CreateWithSeed(ctx context.Context, cd *model.ClassDay, limit *int) ([]model.AttendanceRecord, error)
}

type UserStore interface {
	ListByEmail(ctx context.Context, email string) ([]model.User, error)
}
