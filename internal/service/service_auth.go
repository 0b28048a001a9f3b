package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/dataset-hub/internal/config"
	"github.com/MKhiriev/dataset-hub/internal/logger"
	"github.com/MKhiriev/dataset-hub/internal/store"
	"github.com/MKhiriev/dataset-hub/internal/utils"
	"github.com/MKhiriev/dataset-hub/internal/validators"
	"github.com/MKhiriev/dataset-hub/models"
)

// authService registers users and manages login sessions.
//
// A session lives in the [store.SessionStore]; clients hold an HS256 token
// whose "jti" names it. A token is accepted only while its session exists
// and has not expired, so deleting the session revokes the token.
type authService struct {
	userRepository store.UserRepository
	sessionStore   store.SessionStore
	passwords      *passwordHasher
	ids            *utils.UUIDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	tokenIssuer string

	// sessionDuration controls how long a new session remains valid.
	sessionDuration time.Duration

	now    func() time.Time
	logger *logger.Logger
}

// NewAuthService constructs an AuthService from the session settings of cfg.
func NewAuthService(userRepository store.UserRepository, sessionStore store.SessionStore, cfg config.App, logger *logger.Logger) (AuthService, error) {
	logger.Debug().Msg("creating auth service")

	passwords, err := newPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	return &authService{
		userRepository:  userRepository,
		sessionStore:    sessionStore,
		passwords:       passwords,
		ids:             utils.NewUUIDGenerator(),
		tokenSignKey:    cfg.SessionSignKey,
		tokenIssuer:     cfg.SessionIssuer,
		sessionDuration: cfg.SessionDuration,
		now:             time.Now,
		logger:          logger,
	}, nil
}

// RegisterUser hashes the password and persists the user. A taken username
// is reported as a field error on "username".
func (a *authService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	passwordHash, err := a.passwords.Hash(models.Value(request.Password))
	if err != nil {
		log.Err(err).Str("func", "*authService.RegisterUser").Msg("error hashing password")
		return models.User{}, err
	}

	user := models.User{
		Username:     strings.TrimSpace(models.Value(request.Username)),
		Email:        strings.TrimSpace(models.Value(request.Email)),
		FirstName:    strings.TrimSpace(models.Value(request.FirstName)),
		LastName:     strings.TrimSpace(models.Value(request.LastName)),
		PasswordHash: passwordHash,
		DateJoined:   a.now().UTC(),
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if errors.Is(err, store.ErrUsernameAlreadyExists) {
		return models.User{}, validators.NewFieldError(validators.FieldUsername, validators.MsgUsernameTaken)
	}
	if err != nil {
		log.Err(err).Str("username", user.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("user_id", registeredUser.UserID).Msg("user registered")
	return registeredUser, nil
}

// Login checks the credentials and opens a session.
//
// Every failure (missing fields, unknown user, wrong password) returns
// [ErrInvalidCredentials]. Unknown users still pay for one bcrypt comparison.
func (a *authService) Login(ctx context.Context, request models.LoginRequest) (models.User, models.Token, error) {
	log := logger.FromContext(ctx)

	if request.Username == "" || request.Password == "" {
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	user, err := a.userRepository.FindUserByUsername(ctx, request.Username)
	if errors.Is(err, store.ErrUserNotFound) {
		a.passwords.MatchesNothing(request.Password)
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Msg("user search by username failed")
		return models.User{}, models.Token{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !a.passwords.Matches(user.PasswordHash, request.Password) {
		log.Info().Int64("user_id", user.UserID).Msg("wrong password")
		return models.User{}, models.Token{}, ErrInvalidCredentials
	}

	token, err := a.openSession(ctx, user)
	if err != nil {
		return models.User{}, models.Token{}, err
	}

	return user, token, nil
}

func (a *authService) openSession(ctx context.Context, user models.User) (models.Token, error) {
	log := logger.FromContext(ctx)

	now := a.now().UTC()
	session := models.Session{
		ID:        a.ids.Generate(),
		UserID:    user.UserID,
		CreatedAt: now,
		ExpiresAt: now.Add(a.sessionDuration),
	}

	token, err := utils.GenerateSessionToken(a.tokenIssuer, session, a.tokenSignKey)
	if err != nil {
		log.Err(err).Str("func", "*authService.openSession").Msg("error signing session token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	if err = a.sessionStore.CreateSession(ctx, session); err != nil {
		log.Err(err).Str("func", "*authService.openSession").Msg("error storing session")
		return models.Token{}, fmt.Errorf("error storing session: %w", err)
	}

	return token, nil
}

func (a *authService) Logout(ctx context.Context, identity models.Identity) error {
	if err := a.sessionStore.DeleteSession(ctx, identity.Session.ID); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Msg("error deleting session")
		return fmt.Errorf("error deleting session: %w", err)
	}

	return nil
}

// Authenticate validates tokenString and loads its session and user.
// Any reason the token cannot be honoured yields [ErrSessionInvalid]; only
// storage failures are returned as other errors.
func (a *authService) Authenticate(ctx context.Context, tokenString string) (models.Identity, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseSessionToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		log.Debug().Err(err).Msg("rejected session token")
		return models.Identity{}, ErrSessionInvalid
	}

	session, err := a.sessionStore.FindSession(ctx, token.SessionID)
	if errors.Is(err, store.ErrSessionNotFound) {
		return models.Identity{}, ErrSessionInvalid
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("error loading session: %w", err)
	}

	if session.UserID != token.UserID {
		log.Warn().Str("session_id", session.ID).Msg("session token subject does not match session owner")
		return models.Identity{}, ErrSessionInvalid
	}

	if session.IsExpired(a.now()) {
		if err = a.sessionStore.DeleteSession(ctx, session.ID); err != nil {
			log.Err(err).Str("session_id", session.ID).Msg("error deleting expired session")
		}
		return models.Identity{}, ErrSessionInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, session.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return models.Identity{}, ErrSessionInvalid
	}
	if err != nil {
		return models.Identity{}, fmt.Errorf("error loading session user: %w", err)
	}

	return models.Identity{User: user, Session: session}, nil
}
