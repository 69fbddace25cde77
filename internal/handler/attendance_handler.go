package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/absensi-backend/internal/model"
	"github.com/stemsi/absensi-backend/internal/response"
)

// AttendanceRecorder is the attendance operations the handler needs.
type AttendanceRecorder interface {
	MarkPresent(ctx context.Context, studentID int) (*model.AttendanceRecord, error)
	List(ctx context.Context) ([]model.AttendanceRecord, error)
}

// AttendanceHandler serves attendance marking and history.
type AttendanceHandler struct {
	attendance AttendanceRecorder
	log        zerolog.Logger
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendance AttendanceRecorder, log zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{
		attendance: attendance,
		log:        log.With().Str("component", "attendance_handler").Logger(),
	}
}

// MarkPresent godoc
// POST /api/attendance?id={studentId}
// Marks the student present for today. A second mark on the same day is a 409.
func (h *AttendanceHandler) MarkPresent(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("id"))
	if raw == "" {
		response.Fail(c, http.StatusBadRequest, response.ErrMissingStudentID)
		return
	}
	studentID, err := strconv.Atoi(raw)
	if err != nil || studentID <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	record, err := h.attendance.MarkPresent(c.Request.Context(), studentID)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, record)
}

// ListAttendance godoc
// GET /api/attendance
func (h *AttendanceHandler) ListAttendance(c *gin.Context) {
	records, err := h.attendance.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, records)
}
