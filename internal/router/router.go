package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/absensi-backend/internal/config"
	"github.com/stemsi/absensi-backend/internal/handler"
	"github.com/stemsi/absensi-backend/internal/middleware"
	"github.com/stemsi/absensi-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Student    *handler.StudentHandler
	Attendance *handler.AttendanceHandler
	ClassDay   *handler.ClassDayHandler
	Auth       *handler.AuthHandler
	Live       *handler.LiveHandler
	System     *handler.SystemHandler
}

// SetupRouter configures the Gin engine. loginLimiter may be nil, which
// leaves login unthrottled.
func SetupRouter(
	handlers *Handlers,
	loginLimiter *middleware.RateLimiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// Request IDs come first so the request logger can report them.
	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.RequestLogger(log))

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(middleware.Brotli())

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	router.GET("/health", handlers.System.Health)
	router.GET("/health/ready", handlers.System.Ready)

	api := router.Group(cfg.APIBasePath)
	{
		api.POST("/students", handlers.Student.CreateStudent)
		api.GET("/students", handlers.Student.ListStudents)
		api.GET("/students/:id", handlers.Student.GetStudent)

		api.POST("/attendance", handlers.Attendance.MarkPresent)
		api.GET("/attendance", handlers.Attendance.ListAttendance)

		api.POST("/classDay", handlers.ClassDay.CreateClassDay)

		login := []gin.HandlerFunc{handlers.Auth.Login}
		if loginLimiter != nil {
			login = append([]gin.HandlerFunc{loginLimiter.Middleware()}, login...)
		}
		api.POST("/login", login...)

		if handlers.Live != nil {
			api.GET("/ws/attendance", handlers.Live.AttendanceStream)
		}
	}

	return router
}
