package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/absensi-backend/internal/config"
	"github.com/stemsi/absensi-backend/internal/handler"
	"github.com/stemsi/absensi-backend/internal/middleware"
	"github.com/stemsi/absensi-backend/internal/model"
	"github.com/stemsi/absensi-backend/internal/service"
	"github.com/stemsi/absensi-backend/internal/validator"
	"github.com/stretchr/testify/assert"
)

type emptyRoster struct{}

func (emptyRoster) Create(_ context.Context, name string, uid *string) (*model.Student, error) {
	return &model.Student{ID: 1, Name: name, UID: uid}, nil
}
func (emptyRoster) List(context.Context) ([]model.Student, error) { return []model.Student{}, nil }
func (emptyRoster) GetByID(context.Context, int) (*model.Student, error) {
	return nil, service.ErrStudentNotFound
}

type noAttendance struct{}

func (noAttendance) MarkPresent(context.Context, int) (*model.AttendanceRecord, error) {
	return nil, service.ErrAlreadyMarked
}
func (noAttendance) List(context.Context) ([]model.AttendanceRecord, error) {
	return []model.AttendanceRecord{}, nil
}

type noClassDays struct{}

func (noClassDays) CreateClassDay(context.Context, string, string, *int) (*model.ClassDayResponse, error) {
	return nil, service.ErrDateScheduled
}

type rejectAll struct{}

func (rejectAll) Login(context.Context, string, string) ([]model.User, error) {
	return nil, service.ErrInvalidCredentials
}

func newTestRouter(t *testing.T, cfg *config.Config, limiter *middleware.RateLimiter) *gin.Engine {
	t.Helper()
	validator.Setup()
	log := zerolog.Nop()
	return SetupRouter(&Handlers{
		Student:    handler.NewStudentHandler(emptyRoster{}, log),
		Attendance: handler.NewAttendanceHandler(noAttendance{}, log),
		ClassDay:   handler.NewClassDayHandler(noClassDays{}, log),
		Auth:       handler.NewAuthHandler(rejectAll{}, log),
		System:     handler.NewSystemHandler(nil, log),
	}, limiter, cfg, log)
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "192.0.2.1:1234"
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRoutesMountedUnderBasePath(t *testing.T) {
	r := newTestRouter(t, &config.Config{GinMode: gin.TestMode, APIBasePath: "/api"}, nil)

	cases := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/health/ready", "", http.StatusOK},
		{http.MethodGet, "/api/students", "", http.StatusOK},
		{http.MethodPost, "/api/students", `{"name":"Ani"}`, http.StatusCreated},
		{http.MethodGet, "/api/students/5", "", http.StatusNotFound},
		{http.MethodPost, "/api/attendance?id=5", "", http.StatusConflict},
		{http.MethodGet, "/api/attendance", "", http.StatusOK},
		{http.MethodPost, "/api/classDay", `{"classes":"10A","date":"2024-03-01","num":0}`, http.StatusConflict},
		{http.MethodPost, "/api/login", `{"email":"a@b.c","password":"x"}`, http.StatusUnauthorized},
		{http.MethodGet, "/students", "", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := do(r, tc.method, tc.path, tc.body)
		assert.Equal(t, tc.status, rec.Code, "%s %s", tc.method, tc.path)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"), "%s %s", tc.method, tc.path)
	}
}

func TestUnknownRouteBody(t *testing.T) {
	r := newTestRouter(t, &config.Config{GinMode: gin.TestMode, APIBasePath: "/api"}, nil)
	rec := do(r, http.MethodGet, "/api/nope", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Resource not found."}`, rec.Body.String())
}

func TestCORSAllowedOrigin(t *testing.T) {
	cfg := &config.Config{
		GinMode:        gin.TestMode,
		APIBasePath:    "/api",
		AllowedOrigins: []string{"https://webattend.vercel.app"},
	}
	r := newTestRouter(t, cfg, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/students", nil)
	req.Header.Set("Origin", "https://webattend.vercel.app")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://webattend.vercel.app", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoginRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	limiter := middleware.NewRateLimiter(rdb, 2, time.Minute, config.RedisKey.LoginAttemptsKey, zerolog.Nop())
	r := newTestRouter(t, &config.Config{GinMode: gin.TestMode, APIBasePath: "/api"}, limiter)

	body := `{"email":"a@b.c","password":"x"}`
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/login", body).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/api/login", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(r, http.MethodPost, "/api/login", body).Code)

	// Only login is throttled.
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/api/students", "").Code)
}
