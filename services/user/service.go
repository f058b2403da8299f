package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	userRepo "smartbooking/database/repository/user"
	"smartbooking/models"
	"smartbooking/utils"
)

// ErrInvalidCredentials is returned on a failed sign-in. The reason (unknown
// user vs wrong password) is deliberately not distinguished.
var ErrInvalidCredentials = errors.New("invalid credentials")

const tokenDuration = 24 * time.Hour

// Service handles account registration and sign-in.
type Service interface {
	Register(username, password string) (*models.User, error)
	SignIn(username, password string) (*models.User, string, error)
	GetUserByID(id string) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}

// Register creates a CUSTOMER account with a bcrypt-hashed password.
func (s *DefaultUserService) Register(username, password string) (*models.User, error) {
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(password) < 4 {
		return nil, fmt.Errorf("password must be at least 4 characters")
	}
	if existing, err := s.Repo.GetByUsername(username); err == nil && existing != nil {
		return nil, fmt.Errorf("username %s already exists", username)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	u := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hashed),
		Role:         models.RoleCustomer,
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.Logger.Info("user registered", zap.String("user_id", u.ID), zap.String("username", username))
	return u, nil
}

// SignIn verifies the credentials and issues a signed JWT.
func (s *DefaultUserService) SignIn(username, password string) (*models.User, string, error) {
	u, err := s.Repo.GetByUsername(username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := utils.GenerateToken(u.ID, string(u.Role), tokenDuration)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return u, token, nil
}

// GetUserByID fetches an account by id.
func (s *DefaultUserService) GetUserByID(id string) (*models.User, error) {
	return s.Repo.GetByID(id)
}
