package user

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"stylora-be/internal/apperr"
	"stylora-be/internal/auth"
	"stylora-be/internal/domain"
	"stylora-be/internal/logger"
)

// Store is the slice of the storage layer the identity provider needs.
type Store interface {
	UserByEmail(email string) (domain.User, bool)
	UserByID(id int) (domain.User, bool)
	CreateUser(ctx context.Context, name, email, passwordHash string) (domain.User, error)
	UpdateUser(ctx context.Context, u domain.User) error
}

// Service is the identity provider: signup, login, password and profile
// changes. Sessions are stateless bearer tokens issued here.
type Service interface {
	Register(ctx context.Context, name, email, password string) (string, domain.User, error)
	Login(ctx context.Context, email, password string) (string, domain.User, error)
	ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error
	UpdateName(ctx context.Context, userID int, name string) (domain.User, error)
	GetByID(ctx context.Context, userID int) (domain.User, error)
}

type service struct {
	store  Store
	tokens *auth.Manager
}

func NewService(store Store, tokens *auth.Manager) Service {
	return &service{store: store, tokens: tokens}
}

// Register creates a user and issues a session token. The email is
// normalized before the uniqueness check and before storage.
func (s *service) Register(ctx context.Context, name, email, password string) (string, domain.User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Register"),
	)

	email = domain.NormalizeEmail(email)
	if strings.TrimSpace(name) == "" || email == "" || password == "" {
		return "", domain.User{}, ErrMissingFields
	}
	if len(password) < MinPasswordLength {
		return "", domain.User{}, ErrPasswordTooShort
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", domain.User{}, err
	}

	u, err := s.store.CreateUser(ctx, name, email, hashed)
	if err != nil {
		if apperr.IsConflict(err) {
			return "", domain.User{}, ErrEmailExists
		}
		log.Error("failed to create user", zap.Error(err))
		return "", domain.User{}, err
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		log.Error("failed to issue token", zap.Int("user_id", u.ID), zap.Error(err))
		return "", domain.User{}, err
	}

	log.Info("user registered", zap.Int("user_id", u.ID))
	return token, u, nil
}

// Login verifies credentials and issues a session token. Unknown email
// and wrong password fail identically.
func (s *service) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	u, found := s.store.UserByEmail(email)
	if !found {
		return "", domain.User{}, ErrInvalidCredentials
	}
	if !CheckPasswordHash(password, u.PasswordHash) {
		return "", domain.User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return "", domain.User{}, err
	}

	logger.FromCtx(ctx).Info("user logged in", zap.Int("user_id", u.ID))
	return token, u, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	u, found := s.store.UserByID(userID)
	if !found {
		return ErrWrongPassword
	}
	if !CheckPasswordHash(currentPassword, u.PasswordHash) {
		return ErrWrongPassword
	}

	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	u.PasswordHash = hashed
	return s.store.UpdateUser(ctx, u)
}

// UpdateName changes the display name.
func (s *service) UpdateName(ctx context.Context, userID int, name string) (domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.User{}, ErrMissingFields
	}

	u, found := s.store.UserByID(userID)
	if !found {
		return domain.User{}, ErrUserNotFound
	}

	u.Name = name
	if err := s.store.UpdateUser(ctx, u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, userID int) (domain.User, error) {
	u, found := s.store.UserByID(userID)
	if !found {
		return domain.User{}, ErrUserNotFound
	}
	return u, nil
}
