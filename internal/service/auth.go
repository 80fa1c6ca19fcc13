package service

import (
	"context"
	"errors"

	"github.com/Nerldy/hello-books-api/internal/hash"
	"github.com/Nerldy/hello-books-api/internal/logging"
	"github.com/Nerldy/hello-books-api/internal/models"
	"github.com/Nerldy/hello-books-api/internal/mykafka"
	"github.com/Nerldy/hello-books-api/internal/repo"
	"github.com/Nerldy/hello-books-api/internal/tokens"
	"github.com/Nerldy/hello-books-api/internal/transport"
	"github.com/Nerldy/hello-books-api/internal/validate"
)

var (
	// ErrUserExists is the idempotent refusal for a registration that
	// collides on username or email. Not a validation failure.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound means no record matches the username+email pair.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is deliberately vague about which field was
	// wrong.
	ErrInvalidCredentials = errors.New("invalid username, password or email")
)

type AuthService struct {
	Repo     *repo.GormRepo
	Codec    *tokens.Codec
	Producer *mykafka.Producer
}

// Register validates the payload, normalizes the username, refuses
// collisions, and persists a new account with a bcrypt hash. The unique
// constraints, not the pre-check, decide registration races.
func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) error {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if verr := validate.Struct(req); verr != nil {
		l.Warn("register_rejected", "reason", "validation", "fields", len(verr.Fields))
		return verr
	}

	username := validate.FormatInput(req.Username)

	existing, err := s.Repo.FindByUsernameOrEmail(ctx, username, req.Email)
	if err != nil {
		l.Error("register_failed", "reason", "store lookup", "error", err)
		return err
	}
	if existing != nil {
		l.Info("register_refused", "reason", "user already exists")
		return ErrUserExists
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash the password", "error", err)
		return err
	}

	user := models.User{
		Username:     username,
		Email:        req.Email,
		PasswordHash: pwHash,
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}

	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// Lost the insert race to a concurrent registration.
			l.Info("register_refused", "reason", "user already exists")
			return ErrUserExists
		}
		l.Error("register_failed", "reason", "store insert", "error", err)
		return err
	}

	if err := s.Producer.PublishEvent(ctx, "user_events", username, map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	}); err != nil {
		l.Warn("event_publish_failed", "error", err)
	}

	l.Info("register_successful", "user_id", user.ID, "is_admin", user.IsAdmin)
	return nil
}

// Login looks the account up by username AND email jointly, verifies the
// password against the stored hash, and issues an access token.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", req.Username)

	user, err := s.Repo.FindByUsernameAndEmail(ctx, req.Username, req.Email)
	if err != nil {
		l.Error("login_failed", "reason", "store lookup", "error", err)
		return "", err
	}
	if user == nil {
		l.Warn("login_refused", "reason", "user not found")
		return "", ErrUserNotFound
	}

	if verr := validate.Struct(req); verr != nil {
		l.Warn("login_refused", "reason", "invalid credentials")
		return "", ErrInvalidCredentials
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_refused", "reason", "invalid credentials")
		return "", ErrInvalidCredentials
	}

	token, err := s.Codec.Issue(user.ID)
	if err != nil {
		l.Error("login_failed", "reason", "token signing", "error", err)
		return "", err
	}

	l.Info("login_successful", "user_id", user.ID)
	return token, nil
}
