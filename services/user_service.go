package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/fencing-tournament/models"
	"github.com/Dosada05/fencing-tournament/repositories"
)

// UserService covers account administration available to ADMIN users.
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ChangeUserRole(ctx context.Context, actor *models.User, userID int, role models.UserRole) (*models.User, error)
	EnsureAdmin(ctx context.Context, username, password, email string) (*models.User, bool, error)
}

type userService struct {
	userRepo repositories.UserRepository
	logger   *slog.Logger
}

func NewUserService(userRepo repositories.UserRepository, logger *slog.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// ChangeUserRole sets the role of userID. An admin cannot demote themselves.
func (s *userService) ChangeUserRole(ctx context.Context, actor *models.User, userID int, role models.UserRole) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if actor == nil || !actor.Role.CanManage() {
		return nil, ErrForbiddenOperation
	}
	if actor.ID == userID && role != actor.Role {
		return nil, fmt.Errorf("%w: cannot change own role", ErrForbiddenOperation)
	}

	if err := s.userRepo.UpdateRole(ctx, userID, role); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update role of user %d: %w", userID, err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to reload user %d: %w", userID, err)
	}
	user.PasswordHash = ""

	s.logger.InfoContext(ctx, "user role changed",
		slog.Int("user_id", userID),
		slog.String("role", string(role)),
		slog.Int("actor_id", actor.ID),
	)
	return user, nil
}

// EnsureAdmin creates an ADMIN account or promotes an existing one and resets
// its password. The boolean reports whether a new account was created.
func (s *userService) EnsureAdmin(ctx context.Context, username, password, email string) (*models.User, bool, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, false, ErrUsernameRequired
	}
	if len(password) < minPasswordLength {
		return nil, false, ErrPasswordTooShort
	}
	hashed, err := hashPassword(password)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		if err := s.userRepo.UpdateRole(ctx, existing.ID, models.RoleAdmin); err != nil {
			return nil, false, fmt.Errorf("failed to promote user %q: %w", username, err)
		}
		if err := s.userRepo.UpdatePassword(ctx, existing.ID, hashed); err != nil {
			return nil, false, fmt.Errorf("failed to reset password of user %q: %w", username, err)
		}
		existing.Role = models.RoleAdmin
		existing.PasswordHash = ""
		return existing, false, nil
	case !errors.Is(err, repositories.ErrUserNotFound):
		return nil, false, fmt.Errorf("failed to look up user %q: %w", username, err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashed,
		Email:        strings.TrimSpace(email),
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserUsernameConflict) {
			return nil, false, ErrAuthUsernameTaken
		}
		return nil, false, fmt.Errorf("failed to create admin %q: %w", username, err)
	}
	user.PasswordHash = ""
	return user, true, nil
}
