package service

import (
	"errors"
	"log/slog"

	"github.com/modubox/lockerhub/backend-go/internal/database/models"
	"github.com/modubox/lockerhub/backend-go/internal/database/repository"
)

// UserService defines the interface for user account business logic
type UserService interface {
	GetUser(userID uint) (*models.User, error)
	ListUsers() ([]models.User, error)
	DeleteUser(userID uint) error
	RestoreUser(userID uint) (*models.User, error)
}

type userService struct {
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	logger           *slog.Logger
}

// NewUserService creates a new user service instance
func NewUserService(
	userRepo repository.UserRepository,
	refreshTokenRepo repository.RefreshTokenRepository,
	logger *slog.Logger,
) UserService {
	return &userService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		logger:           logger,
	}
}

func (s *userService) GetUser(userID uint) (*models.User, error) {
	return s.userRepo.FindByID(userID)
}

func (s *userService) ListUsers() ([]models.User, error) {
	return s.userRepo.FindAll()
}

// DeleteUser soft-deletes the account and revokes its refresh tokens so the
// deleted user cannot mint new access tokens
func (s *userService) DeleteUser(userID uint) error {
	s.logger.Info("🗑️ [UserService] Deleting user", "user_id", userID)

	if err := s.userRepo.Delete(userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.logger.Warn("⚠️ [UserService] User not found", "user_id", userID)
		}
		return err
	}

	if err := s.refreshTokenRepo.RevokeAllUserTokens(userID); err != nil {
		s.logger.Error("❌ [UserService] Failed to revoke tokens", "user_id", userID, "error", err)
	}

	s.logger.Info("✅ [UserService] User deleted", "user_id", userID)
	return nil
}

// RestoreUser clears the deletion marker. The account must currently be
// soft-deleted: a hit under the default scope means it is active and the
// restore fails without touching state.
func (s *userService) RestoreUser(userID uint) (*models.User, error) {
	s.logger.Info("♻️ [UserService] Restoring user", "user_id", userID)

	if _, err := s.userRepo.FindByID(userID); err == nil {
		s.logger.Warn("⚠️ [UserService] User is not deleted", "user_id", userID)
		return nil, ErrUserNotDeleted
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.userRepo.FindDeletedByID(userID); err != nil {
		return nil, err
	}

	if err := s.userRepo.Restore(userID); err != nil {
		s.logger.Error("❌ [UserService] Failed to restore user", "user_id", userID, "error", err)
		return nil, err
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("✅ [UserService] User restored", "user_id", userID)
	return user, nil
}

// Service errors
var (
	ErrUserNotDeleted = errors.New("삭제되지 않은 회원입니다")
)
