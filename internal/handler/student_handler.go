package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/absensi-backend/internal/model"
	"github.com/stemsi/absensi-backend/internal/response"
	"github.com/stemsi/absensi-backend/internal/validator"
)

// StudentRegistry is the student operations the handler needs.
type StudentRegistry interface {
	Create(ctx context.Context, name string, uid *string) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	GetByID(ctx context.Context, id int) (*model.Student, error)
}

// StudentHandler serves the student roster.
type StudentHandler struct {
	students StudentRegistry
	log      zerolog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(students StudentRegistry, log zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		students: students,
		log:      log.With().Str("component", "student_handler").Logger(),
	}
}

// CreateStudent godoc
// POST /api/students
// Registers a student and returns the created row.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req model.CreateStudentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		code := response.ErrValidation
		if validator.HasField(fields, "name") {
			code = response.ErrMissingName
		}
		response.FailWithFields(c, http.StatusBadRequest, code, fields)
		return
	}

	student, err := h.students.Create(c.Request.Context(), req.Name, req.UID)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, student)
}

// ListStudents godoc
// GET /api/students
func (h *StudentHandler) ListStudents(c *gin.Context) {
	students, err := h.students.List(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, students)
}

// GetStudent godoc
// GET /api/students/:id
func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	student, err := h.students.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, student)
}
