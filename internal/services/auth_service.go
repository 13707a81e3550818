package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/pkg/hasher"
)

// ErrInvalidCredentials is returned on any login failure. It deliberately
// does not distinguish an unknown username from a wrong password, so the
// endpoint cannot be used for username enumeration.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles registration and credential verification. Session
// establishment is the handlers' concern; this layer only resolves
// credentials to a principal.
type AuthService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register hashes the password and creates the user. The repository enforces
// username and email uniqueness atomically; a violation surfaces as
// repositories.ErrDuplicate. The admin flag can never be set through this
// path.
func (s *AuthService) Register(user *models.User, password string) error {
	hashed, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// Login verifies the credentials and returns the principal. Both the
// unknown-user and wrong-password paths collapse into ErrInvalidCredentials.
func (s *AuthService) Login(username, password string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !hasher.Verify(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// UpdateProfile merges a partial profile update into the principal's record.
func (s *AuthService) UpdateProfile(userID int, updates models.UserUpdate) (*models.User, error) {
	user, err := s.userRepo.Update(userID, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update user %d: %w", userID, err)
	}
	return user, nil
}
