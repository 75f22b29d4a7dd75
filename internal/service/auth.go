package service

import (
	"errors"
	"fmt"

	"backend/internal/crypto"
	"backend/internal/models"
	"backend/internal/repository"
	"backend/internal/token"

	"go.uber.org/zap"
)

var ( // Define custom errors
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrUnauthenticated        = errors.New("not authenticated")
)

type AuthService interface {
	Register(email, password string) (*models.User, error)
	Login(email, password string) (string, error) // Returns a signed bearer token
	ResolveUser(tokenString string) (*models.User, error)
}

type authService struct {
	repo   repository.UserRepository
	tokens *token.Manager
	logger *zap.Logger
}

func NewAuthService(repo repository.UserRepository, tokens *token.Manager, logger *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a new user with a freshly salted password hash. No
// token is issued here; a separate login is required.
func (s *authService) Register(email, password string) (*models.User, error) {
	_, err := s.repo.GetUserByEmail(email)
	if err == nil {
		return nil, ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		s.logger.Error("Failed to check existing email", zap.Error(err))
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, salt, err := crypto.HashPassword(password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
	}

	if err := s.repo.CreateUser(user); err != nil {
		// The unique constraint closes the window between the check
		// above and the insert.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailAlreadyRegistered
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("email", user.Email))
	return user, nil
}

// Login verifies the credentials and issues a bearer token with the
// user's email as subject. An unknown email and a wrong password are
// indistinguishable to the caller.
func (s *authService) Login(email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		s.logger.Error("Failed to get user by email", zap.Error(err))
		return "", fmt.Errorf("failed to retrieve user: %w", err)
	}

	if !crypto.VerifyPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	signed, err := s.tokens.Issue(user.Email)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User logged in", zap.String("email", user.Email))
	return signed, nil
}

// ResolveUser verifies the token and resolves its subject to a live
// user record. Invalid/expired tokens and subjects that no longer
// exist collapse into the same ErrUnauthenticated.
func (s *authService) ResolveUser(tokenString string) (*models.User, error) {
	subject, err := s.tokens.Verify(tokenString)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.repo.GetUserByEmail(subject)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUnauthenticated
		}
		s.logger.Error("Failed to resolve token subject", zap.Error(err))
		return nil, fmt.Errorf("failed to resolve token subject: %w", err)
	}
	return user, nil
}
