package services

import (
	"context"
	"errors"
	"strings"
	"topup-store/models"
	"topup-store/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService defines profile management business logic.
type UserService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Identity, *ServiceError)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.Identity, *ServiceError)
	ChangePassword(ctx context.Context, userID uuid.UUID, req *models.ChangePasswordRequest) *ServiceError
}

type userServiceImpl struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository, logger *zap.Logger) UserService {
	return &userServiceImpl{users: users, logger: logger}
}

// GetProfile returns the password-free view of the user.
func (s *userServiceImpl) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Identity, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("User not found")
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, errInternal("Failed to fetch profile")
	}
	return user.Identity(), nil
}

// UpdateProfile changes only the supplied fields. Email uniqueness is still
// enforced on change.
func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.Identity, *ServiceError) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("User not found")
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, errInternal("Failed to update profile")
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if email != user.Email {
			if _, err := s.users.FindByEmail(ctx, email); err == nil {
				return nil, errValidation("Email already in use")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("Failed to check email", zap.Error(err))
				return nil, errInternal("Failed to update profile")
			}
			user.Email = email
		}
	}
	if req.ProfilePic != nil {
		user.ProfilePic = *req.ProfilePic
	}

	if err := s.users.Update(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return nil, errValidation("Email already in use")
		}
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, errInternal("Failed to update profile")
	}

	return user.Identity(), nil
}

// ChangePassword requires the current password to match before storing the
// new hash.
func (s *userServiceImpl) ChangePassword(ctx context.Context, userID uuid.UUID, req *models.ChangePasswordRequest) *ServiceError {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("User not found")
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return errInternal("Failed to update password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return errValidation("Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return errInternal("Failed to update password")
	}
	user.Password = string(hashed)

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update password", zap.Error(err))
		return errInternal("Failed to update password")
	}

	s.logger.Info("Password changed", zap.String("user_id", userID.String()))
	return nil
}
