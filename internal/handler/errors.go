package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/absensi-backend/internal/response"
	"github.com/stemsi/absensi-backend/internal/service"
)

// serviceErrors maps service sentinels onto their status and error code.
// Order matters: specific sentinels come before the kinds they wrap.
var serviceErrors = []struct {
	err    error
	status int
	code   response.ErrCode
}{
	{service.ErrInvalidStudentID, http.StatusBadRequest, response.ErrMissingStudentID},
	{service.ErrNameRequired, http.StatusBadRequest, response.ErrMissingName},
	{service.ErrClassDayFields, http.StatusBadRequest, response.ErrMissingClassDay},
	{service.ErrInvalidDate, http.StatusBadRequest, response.ErrInvalidDate},
	{service.ErrInvalidSeedCount, http.StatusBadRequest, response.ErrInvalidSeedCount},
	{service.ErrSeedExceedsRoster, http.StatusBadRequest, response.ErrSeedExceedsRoster},
	{service.ErrCredentialsMissing, http.StatusBadRequest, response.ErrMissingCredentials},
	{service.ErrValidation, http.StatusBadRequest, response.ErrValidation},

	{service.ErrStudentNotFound, http.StatusNotFound, response.ErrStudentNotFound},
	{service.ErrNotFound, http.StatusNotFound, response.ErrNotFound},

	{service.ErrAlreadyMarked, http.StatusConflict, response.ErrAlreadyMarked},
	{service.ErrDateScheduled, http.StatusConflict, response.ErrDateScheduled},
	{service.ErrDuplicateUID, http.StatusConflict, response.ErrDuplicateUID},
	{service.ErrConflict, http.StatusConflict, response.ErrConflict},

	{service.ErrInvalidCredentials, http.StatusUnauthorized, response.ErrInvalidCredentials},
	{service.ErrUnauthorized, http.StatusUnauthorized, response.ErrInvalidCredentials},
}

// fail writes the response for a service error. Anything unrecognised is a
// 500 whose detail only goes to the log.
func fail(c *gin.Context, log zerolog.Logger, err error) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			response.Fail(c, m.status, m.code)
			return
		}
	}

	log.Error().
		Err(err).
		Str("request_id", response.RequestID(c)).
		Str("path", c.FullPath()).
		Msg("Request failed")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
