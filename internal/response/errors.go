package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation         ErrCode = "VALIDATION_ERROR"
	ErrInvalidID          ErrCode = "INVALID_ID"
	ErrInvalidPayload     ErrCode = "INVALID_PAYLOAD"
	ErrMissingStudentID   ErrCode = "MISSING_STUDENT_ID"
	ErrMissingName        ErrCode = "MISSING_NAME"
	ErrMissingClassDay    ErrCode = "MISSING_CLASS_DAY_FIELDS"
	ErrInvalidDate        ErrCode = "INVALID_DATE"
	ErrInvalidSeedCount   ErrCode = "INVALID_SEED_COUNT"
	ErrSeedExceedsRoster  ErrCode = "SEED_EXCEEDS_ROSTER"
	ErrMissingCredentials ErrCode = "MISSING_CREDENTIALS"

	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrStudentNotFound ErrCode = "STUDENT_NOT_FOUND"
	ErrConflict        ErrCode = "CONFLICT"
	ErrAlreadyMarked   ErrCode = "ALREADY_MARKED"
	ErrDateScheduled   ErrCode = "DATE_ALREADY_SCHEDULED"
	ErrDuplicateUID    ErrCode = "DUPLICATE_UID"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns the client-facing message for a given error code.
// Messages are stable and never carry storage detail.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."
	case ErrMissingStudentID:
		return "Student ID is required."
	case ErrMissingName:
		return "Name is required."
	case ErrMissingClassDay:
		return "Classes and date are required."
	case ErrInvalidDate:
		return "Date must be formatted as YYYY-MM-DD."
	case ErrInvalidSeedCount:
		return "Student count must not be negative."
	case ErrSeedExceedsRoster:
		return "Student count exceeds the number of registered students."
	case ErrMissingCredentials:
		return "Email and password are required."

	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid email or password."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrStudentNotFound:
		return "Student not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrAlreadyMarked:
		return "Attendance already marked for today."
	case ErrDateScheduled:
		return "A class day is already scheduled for this date."
	case ErrDuplicateUID:
		return "A student with this uid already exists."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Internal server error."
	default:
		return "Unexpected error."
	}
}
