package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/absensi-backend/internal/model"
	"github.com/stemsi/absensi-backend/internal/response"
	"github.com/stemsi/absensi-backend/internal/validator"
)

// ClassDayOpener opens class days.
type ClassDayOpener interface {
	CreateClassDay(ctx context.Context, classes, date string, num *int) (*model.ClassDayResponse, error)
}

// ClassDayHandler serves class-day creation.
type ClassDayHandler struct {
	classDays ClassDayOpener
	log       zerolog.Logger
}

// NewClassDayHandler creates a new ClassDayHandler.
func NewClassDayHandler(classDays ClassDayOpener, log zerolog.Logger) *ClassDayHandler {
	return &ClassDayHandler{
		classDays: classDays,
		log:       log.With().Str("component", "class_day_handler").Logger(),
	}
}

// CreateClassDay godoc
// POST /api/classDay
// Opens a class day and seeds absent attendance for the first num students,
// or the whole roster when num is omitted.
func (h *ClassDayHandler) CreateClassDay(c *gin.Context) {
	var req model.CreateClassDayRequest
	if fields := validator.Bind(c, &req); fields != nil {
		code := response.ErrValidation
		switch {
		case validator.HasField(fields, "classes"):
			code = response.ErrMissingClassDay
		case validator.HasField(fields, "date"):
			code = response.ErrInvalidDate
			if req.Date == "" {
				code = response.ErrMissingClassDay
			}
		case validator.HasField(fields, "num"):
			code = response.ErrInvalidSeedCount
		}
		response.FailWithFields(c, http.StatusBadRequest, code, fields)
		return
	}

	res, err := h.classDays.CreateClassDay(c.Request.Context(), req.Classes, req.Date, req.Num)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	response.Success(c, http.StatusCreated, res)
}
