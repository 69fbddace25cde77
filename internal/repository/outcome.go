package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes the services rely on.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var (
	// ErrNotFound is returned by stores that have no pgx error to wrap.
	ErrNotFound = errors.New("record not found")
	// ErrConstraintViolation is returned by stores when a uniqueness rule rejects a write.
	ErrConstraintViolation = errors.New("uniqueness constraint violated")
	// ErrReferenceMissing is returned when a write references a row that does not exist.
	ErrReferenceMissing = errors.New("referenced record does not exist")
	// ErrRosterTooSmall means a class day asked to seed more students than are registered.
	ErrRosterTooSmall = errors.New("not enough registered students to seed")
)

// Outcome is the closed set of results a storage call can have.
type Outcome int

const (
	Found Outcome = iota
	NotFound
	ConstraintViolation
	OtherFailure
)

func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	case ConstraintViolation:
		return "constraint_violation"
	default:
		return "other_failure"
	}
}

// Classify maps a storage error onto an Outcome. A nil error is Found.
// A foreign-key violation means the referenced entity is absent, so it is NotFound.
func Classify(err error) Outcome {
	if err == nil {
		return Found
	}
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrReferenceMissing) {
		return NotFound
	}
	if errors.Is(err, ErrConstraintViolation) {
		return ConstraintViolation
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ConstraintViolation
		case pgForeignKeyViolation:
			return NotFound
		}
	}
	return OtherFailure
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
