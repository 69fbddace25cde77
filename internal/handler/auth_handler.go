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

// Authenticator checks login credentials.
type Authenticator interface {
	Login(ctx context.Context, email, password string) ([]model.User, error)
}

// AuthHandler handles login.
type AuthHandler struct {
	auth Authenticator
	log  zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth Authenticator, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		auth: auth,
		log:  log.With().Str("component", "auth_handler").Logger(),
	}
}

// Login godoc
// POST /api/login
// Returns the accounts matching the credentials.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		code := response.ErrValidation
		if validator.HasField(fields, "email") || validator.HasField(fields, "password") {
			code = response.ErrMissingCredentials
		}
		response.FailWithFields(c, http.StatusBadRequest, code, fields)
		return
	}

	users, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.log, err)
		return
	}

	h.log.Info().Str("email", req.Email).Int("matches", len(users)).Msg("Login succeeded")
	response.Success(c, http.StatusOK, model.LoginResponse{
		Message: "Login successful",
		User:    users,
	})
}
