package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error a service returns matches exactly one of these via errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrStorage      = errors.New("storage failure")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrInvalidStudentID   = fmt.Errorf("%w: student id is required", ErrValidation)
	ErrNameRequired       = fmt.Errorf("%w: name is required", ErrValidation)
	ErrClassDayFields     = fmt.Errorf("%w: classes and date are required", ErrValidation)
	ErrInvalidDate        = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	ErrInvalidSeedCount   = fmt.Errorf("%w: num must not be negative", ErrValidation)
	ErrSeedExceedsRoster  = fmt.Errorf("%w: num exceeds registered students", ErrValidation)
	ErrCredentialsMissing = fmt.Errorf("%w: email and password are required", ErrValidation)

	ErrStudentNotFound = fmt.Errorf("%w: student", ErrNotFound)

	ErrAlreadyMarked = fmt.Errorf("%w: already marked", ErrConflict)
	ErrDateScheduled = fmt.Errorf("%w: date already scheduled", ErrConflict)
	ErrDuplicateUID  = fmt.Errorf("%w: uid already registered", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
)

// storageErr tags an unexpected collaborator failure while keeping its cause.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
