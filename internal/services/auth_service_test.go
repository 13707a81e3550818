package services_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/hasher"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(id int, updates models.UserUpdate) (*models.User, error) {
	args := m.Called(id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	user := &models.User{Username: "testuser", Email: "test@example.com"}

	// Successful registration stores a hash, never the plaintext.
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()
	err := authService.Register(user, "password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "password123", user.Password)
	assert.True(t, hasher.Verify("password123", user.Password))
	mockRepo.AssertExpectations(t)

	// Duplicate username surfaces the repository's conflict sentinel.
	dupErr := fmt.Errorf("username %q: %w", "testuser", repositories.ErrDuplicate)
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(dupErr).Once()
	err = authService.Register(&models.User{Username: "testuser", Email: "x@example.com"}, "password123")
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	hash, err := hasher.Hash("password123")
	assert.NoError(t, err)
	user := &models.User{ID: 1, Username: "testuser", Email: "test@example.com", Password: hash}

	// Successful login returns the principal.
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	principal, err := authService.Login("testuser", "password123")
	assert.NoError(t, err)
	assert.Equal(t, 1, principal.ID)
	mockRepo.AssertExpectations(t)

	// Wrong password and unknown user produce the same error, so the
	// endpoint cannot be used to enumerate usernames.
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, err = authService.Login("testuser", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	mockRepo.On("GetByUsername", "ghost").Return(nil, fmt.Errorf("user %q: %w", "ghost", repositories.ErrNotFound)).Once()
	_, err = authService.Login("ghost", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginMalformedStoredHash(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo)

	// A corrupted stored hash fails login instead of panicking.
	user := &models.User{ID: 1, Username: "testuser", Password: "no-delimiter-here"}
	mockRepo.On("GetByUsername", "testuser").Return(user, nil).Once()
	_, err := authService.Login("testuser", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}
