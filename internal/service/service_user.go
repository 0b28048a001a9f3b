package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/internal/store"
	"github.com/MKhiriev/dataset-hub/models"
)

// userService serves the authenticated user's own account.
type userService struct {
	userRepository store.UserRepository
	sessionStore   store.SessionStore
	passwords      *passwordHasher
	logger         *logger.Logger
}

func NewUserService(userRepository store.UserRepository, sessionStore store.SessionStore, bcryptCost int, logger *logger.Logger) (UserService, error) {
	logger.Debug().Msg("creating user service")

	passwords, err := newPasswordHasher(bcryptCost)
	if err != nil {
		return nil, err
	}

	return &userService{
		userRepository: userRepository,
		sessionStore:   sessionStore,
		passwords:      passwords,
		logger:         logger,
	}, nil
}

func (s *userService) Profile(ctx context.Context, identity models.Identity) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, identity.User.UserID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.Profile").Msg("error loading profile")
		return models.User{}, fmt.Errorf("error loading profile: %w", err)
	}

	return user, nil
}

// UpdateProfile changes only the fields present in request.
func (s *userService) UpdateProfile(ctx context.Context, identity models.Identity, request models.UpdateProfileRequest) (models.User, error) {
	update := request.ProfileUpdate()
	update.Email = trimmed(update.Email)
	update.FirstName = trimmed(update.FirstName)
	update.LastName = trimmed(update.LastName)

	user, err := s.userRepository.UpdateProfile(ctx, identity.User.UserID, update)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.UpdateProfile").Msg("error updating profile")
		return models.User{}, fmt.Errorf("error updating profile: %w", err)
	}

	return user, nil
}

// ChangePassword replaces the password after verifying the old one, then
// revokes every other session of the user. The session making the request
// stays valid.
func (s *userService) ChangePassword(ctx context.Context, identity models.Identity, request models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindUserByID(ctx, identity.User.UserID)
	if err != nil {
		log.Err(err).Str("func", "*userService.ChangePassword").Msg("error loading user")
		return fmt.Errorf("error loading user: %w", err)
	}

	if !s.passwords.Matches(user.PasswordHash, models.Value(request.OldPassword)) {
		return ErrWrongOldPassword
	}

	passwordHash, err := s.passwords.Hash(models.Value(request.NewPassword))
	if err != nil {
		log.Err(err).Str("func", "*userService.ChangePassword").Msg("error hashing password")
		return err
	}

	if err = s.userRepository.UpdatePassword(ctx, user.UserID, passwordHash); err != nil {
		log.Err(err).Str("func", "*userService.ChangePassword").Msg("error saving password")
		return fmt.Errorf("error saving password: %w", err)
	}

	if err = s.sessionStore.DeleteUserSessions(ctx, user.UserID, identity.Session.ID); err != nil {
		log.Err(err).Str("func", "*userService.ChangePassword").Msg("error revoking sessions")
		return fmt.Errorf("error revoking sessions: %w", err)
	}

	log.Info().Int64("user_id", user.UserID).Msg("password changed")
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}

	return models.Ptr(strings.TrimSpace(*s))
}
