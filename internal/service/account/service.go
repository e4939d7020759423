package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"log/slog"

	"github.com/google/uuid"

	"github.com/Gusdevr/API-cadastrar-usu-rio-protegido/internal/domain"
	"github.com/Gusdevr/API-cadastrar-usu-rio-protegido/internal/repository"
	"github.com/Gusdevr/API-cadastrar-usu-rio-protegido/pkg/config"
	"github.com/Gusdevr/API-cadastrar-usu-rio-protegido/pkg/crypto"
	jwtpkg "github.com/Gusdevr/API-cadastrar-usu-rio-protegido/pkg/jwt"
)

// ErrMissingFields indicates a registration payload with a blank field.
var ErrMissingFields = errors.New("name, email and password are required")

// ErrWrongPassword indicates the password did not match the stored digest.
var ErrWrongPassword = errors.New("invalid password")

// Service orchestrates account workflows: registration, password login,
// token authorization and user management.
type Service struct {
	users  repository.UserRepository
	logger *slog.Logger
	cfg    config.APIConfig
}

// New constructs a Service.
func New(users repository.UserRepository, logger *slog.Logger, cfg config.APIConfig) Service {
	return Service{users: users, logger: logger, cfg: cfg}
}

// Register creates a user from the provided fields. The plaintext password is
// bcrypt-hashed before it ever reaches the repository; duplicate emails
// surface as repository.ErrDuplicateEmail from the store's unique constraint.
func (s Service) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return nil, ErrMissingFields
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user registered", "user_id", user.ID)
	return user, nil
}

// Login authenticates a user by email and password and returns a signed
// bearer token. The token lifetime comes from configuration.
func (s Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if err := crypto.ComparePassword(user.PasswordHash, password); err != nil {
		return "", ErrWrongPassword
	}
	token, err := jwtpkg.GenerateToken(user.ID, user.Email, s.cfg.JWTSecret, s.cfg.TokenTTL)
	if err != nil {
		return "", err
	}
	s.logger.Info("user logged in", "user_id", user.ID)
	return token, nil
}

// Authorize validates a bearer token and returns the identity it encodes.
// No store round-trip happens here; a token stays valid until expiry even if
// the user row was deleted after issuance.
func (s Service) Authorize(token string) (domain.Identity, error) {
	claims, err := jwtpkg.Parse(strings.TrimSpace(token), s.cfg.JWTSecret)
	if err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// List returns every registered user.
func (s Service) List(ctx context.Context) ([]domain.User, error) {
	return s.users.ListUsers(ctx)
}

// Delete removes the user matching id. Callers are only required to hold a
// valid token; there is no ownership check on the target id.
func (s Service) Delete(ctx context.Context, id string) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", "user_id", id)
	return nil
}

// Profile resolves the caller's own user record from the identity the auth
// gate attached. Returns repository.ErrNotFound when the row no longer
// exists, e.g. deleted after the token was issued.
func (s Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.GetUserByID(ctx, userID)
}
