package services

import (
	"context"
	"errors"
	"strings"
	"topup-store/models"
	"topup-store/repository"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService defines registration and login business logic.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.Identity, string, *ServiceError)
	Login(ctx context.Context, req *models.LoginRequest) (*models.Identity, string, *ServiceError)
}

type authServiceImpl struct {
	users  repository.UserRepository
	tokens TokenService
	logger *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, tokens TokenService, logger *zap.Logger) AuthService {
	return &authServiceImpl{users: users, tokens: tokens, logger: logger}
}

// Register creates an account and issues a session token. New accounts
// always get the user role; admins are promoted out of band.
func (s *authServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.Identity, string, *ServiceError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", errValidation("User already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("Failed to check existing user", zap.Error(err))
		return nil, "", errInternal("Failed to create account")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return nil, "", errInternal("Failed to create account")
	}

	user := &models.User{
		Name:       req.Name,
		Email:      email,
		Password:   string(hashed),
		Role:       models.RoleUser,
		ProfilePic: models.DefaultProfilePic,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return nil, "", errValidation("User already exists")
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, "", errInternal("Failed to create account")
	}

	token, err := s.tokens.Generate(user.ID.String(), user.Email, user.Role)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, "", errInternal("Failed to create session")
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	return user.Identity(), token, nil
}

// Login checks credentials and issues a session token. Unknown email and
// wrong password fail identically so accounts cannot be enumerated.
func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.Identity, string, *ServiceError) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", &ServiceError{StatusCode: 401, Message: "Invalid credentials"}
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, "", errInternal("Login failed")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", &ServiceError{StatusCode: 401, Message: "Invalid credentials"}
	}

	token, err := s.tokens.Generate(user.ID.String(), user.Email, user.Role)
	if err != nil {
		s.logger.Error("Failed to generate token", zap.Error(err))
		return nil, "", errInternal("Failed to create session")
	}

	s.logger.Info("User logged in", zap.String("user_id", user.ID.String()))
	return user.Identity(), token, nil
}

// isDuplicateKey matches unique-constraint violations across drivers.
func isDuplicateKey(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
