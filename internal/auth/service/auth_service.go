package service

import (
	"context"
	"errors"

	"github.com/givehub/server/internal/common/clock"
	"github.com/givehub/server/internal/common/crypto"
	commonerrors "github.com/givehub/server/internal/common/errors"
	"github.com/givehub/server/internal/common/logger"
	"github.com/givehub/server/internal/observability/metrics"
	userdomain "github.com/givehub/server/internal/user/domain"
	userrepo "github.com/givehub/server/internal/user/repository"
)

type AuthService struct {
	repo        userrepo.Repository
	hasher      crypto.PasswordHasher
	idGenerator crypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

type AuthServiceDeps struct {
	Repo        userrepo.Repository
	Hasher      crypto.PasswordHasher
	IDGenerator crypto.IDGenerator
	Clock       clock.Clock
	Log         *logger.Logger
}

func NewAuthService(deps AuthServiceDeps) *AuthService {
	if deps.Clock == nil {
		deps.Clock = clock.NewRealClock()
	}
	return &AuthService{
		repo:        deps.Repo,
		hasher:      deps.Hasher,
		idGenerator: deps.IDGenerator,
		clock:       deps.Clock,
		log:         deps.Log,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// Register creates a user or reports exactly one of ErrInvalidEmail,
// ErrWeakPassword, ErrEmailTaken. The email unique index is the only
// arbiter of a registration race.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (userdomain.ID, error) {
	email := NormalizeEmail(input.Email)

	if !validateEmail(email) {
		metrics.RegisterFailuresTotal.WithLabelValues("invalid_email").Inc()
		return "", commonerrors.ErrInvalidEmail
	}

	if !validatePassword(input.Password) {
		metrics.RegisterFailuresTotal.WithLabelValues("weak_password").Inc()
		return "", commonerrors.ErrWeakPassword
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(logger.Fields{
			"email":  email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return "", err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return "", err
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(logger.Fields{
				"email":  email,
				"action": "register_email_taken",
			}).Warn("register failed: email already registered")
			metrics.RegisterFailuresTotal.WithLabelValues("email_taken").Inc()
			return "", commonerrors.ErrEmailTaken
		}
		s.log.WithFields(logger.Fields{
			"email":  email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		return "", commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(logger.Fields{
		"email":   email,
		"user_id": string(user.ID),
		"action":  "register_success",
	}).Info("register success")

	metrics.UsersRegisteredTotal.Inc()

	return user.ID, nil
}

// Authenticate returns the user ID on a credential match. Unknown email and
// wrong password are indistinguishable to the caller so accounts cannot be
// enumerated. No side effects.
func (s *AuthService) Authenticate(ctx context.Context, input LoginInput) (userdomain.ID, error) {
	email := NormalizeEmail(input.Email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(logger.Fields{
				"email":  email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return "", commonerrors.ErrInvalidCredentials
		}
		s.log.WithFields(logger.Fields{
			"email":  email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return "", commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(logger.Fields{
			"email":  email,
			"action": "login_invalid_password",
		}).Warn("login failed: invalid password")
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return "", commonerrors.ErrInvalidCredentials
	}

	s.log.WithFields(logger.Fields{
		"email":   email,
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return user.ID, nil
}
