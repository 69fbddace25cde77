package service

import (
	"context"
	"strings"

	"github.com/stemsi/absensi-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles credential login.
type AuthService struct {
	userStore  UserStore
	bcryptCost int
}

// NewAuthService creates a new AuthService.
func NewAuthService(userStore UserStore, bcryptCost int) *AuthService {
	return &AuthService{userStore: userStore, bcryptCost: bcryptCost}
}

// HashPassword hashes a password with the configured bcrypt cost.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	return string(hash), err
}

// CheckPassword compares a plaintext password against a bcrypt hash.
func (s *AuthService) CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// Login returns every account registered under email whose password matches.
// No match yields ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) ([]model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrCredentialsMissing
	}

	candidates, err := s.userStore.ListByEmail(ctx, email)
	if err != nil {
		return nil, storageErr("list users", err)
	}

	matched := make([]model.User, 0, len(candidates))
	for _, u := range candidates {
		if s.CheckPassword(u.PasswordHash, password) == nil {
			matched = append(matched, u)
		}
	}
	if len(matched) == 0 {
		return nil, ErrInvalidCredentials
	}
	return matched, nil
}
