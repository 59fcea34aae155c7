package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/givehub/server/internal/auth/service"
	"github.com/givehub/server/internal/common/clock"
	commonerrors "github.com/givehub/server/internal/common/errors"
	"github.com/givehub/server/internal/common/logger"
	userdomain "github.com/givehub/server/internal/user/domain"
	userrepo "github.com/givehub/server/internal/user/repository"
)

func setupAuthService(t *testing.T) (*service.AuthService, *mockUserRepo, *mockHasher, *mockIDGenerator, *clock.MockClock) {
	_ = t
	repo := &mockUserRepo{}
	hasher := &mockHasher{}
	idGenerator := &mockIDGenerator{}
	mockClock := clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	log, _ := logger.New("", "test", "info")

	svc := service.NewAuthService(service.AuthServiceDeps{
		Repo:        repo,
		Hasher:      hasher,
		IDGenerator: idGenerator,
		Clock:       mockClock,
		Log:         log,
	})

	return svc, repo, hasher, idGenerator, mockClock
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, repo, hasher, idGenerator, mockClock := setupAuthService(t)

	userID := "11111111-1111-1111-1111-111111111111"
	hashedPassword := "hashed_secret123"

	idGenerator.newIDFunc = func() (string, error) {
		return userID, nil
	}
	hasher.hashFunc = func(p string) (string, error) {
		return hashedPassword, nil
	}
	repo.createFunc = func(ctx context.Context, user userdomain.User) error {
		if user.Email != "alice@example.com" {
			t.Errorf("expected normalized email alice@example.com, got %s", user.Email)
		}
		if user.PasswordHash != hashedPassword {
			t.Errorf("expected password hash %s, got %s", hashedPassword, user.PasswordHash)
		}
		if !user.CreatedAt.Equal(mockClock.Now()) {
			t.Errorf("expected created_at %v, got %v", mockClock.Now(), user.CreatedAt)
		}
		return nil
	}

	id, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "  Alice@Example.COM ",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if string(id) != userID {
		t.Errorf("expected id %s, got %s", userID, id)
	}
}

func TestAuthService_Register_InvalidEmail(t *testing.T) {
	svc, _, _, _, _ := setupAuthService(t)

	cases := []struct {
		name  string
		email string
	}{
		{"empty", ""},
		{"no at sign", "aliceexample.com"},
		{"no dot in domain", "alice@example"},
		{"space in local part", "al ice@example.com"},
		{"double at sign", "alice@@example.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), service.RegisterInput{
				Email:    tc.email,
				Password: "secret123",
			})
			if !errors.Is(err, commonerrors.ErrInvalidEmail) {
				t.Errorf("expected ErrInvalidEmail, got %v", err)
			}
		})
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	svc, _, _, _, _ := setupAuthService(t)

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "alice@example.com",
		Password: "short7!",
	})
	if !errors.Is(err, commonerrors.ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	svc, repo, _, _, _ := setupAuthService(t)

	repo.createFunc = func(ctx context.Context, user userdomain.User) error {
		return userrepo.ErrEmailAlreadyExists
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, commonerrors.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Register_RepoFailure(t *testing.T) {
	svc, repo, _, _, _ := setupAuthService(t)

	repo.createFunc = func(ctx context.Context, user userdomain.User) error {
		return errors.New("connection refused")
	}

	_, err := svc.Register(context.Background(), service.RegisterInput{
		Email:    "alice@example.com",
		Password: "secret123",
	})

	var domainErr commonerrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected a domain error, got %v", err)
	}
	if domainErr.Code() != commonerrors.ErrDatabaseError.Code() {
		t.Errorf("expected database error code, got %s", domainErr.Code())
	}
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	svc, repo, hasher, _, mockClock := setupAuthService(t)

	userID := "22222222-2222-2222-2222-222222222222"

	repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		if email != "alice@example.com" {
			t.Errorf("expected normalized email lookup, got %s", email)
		}
		return userdomain.User{
			ID:           userdomain.ID(userID),
			Email:        email,
			PasswordHash: "stored-hash",
			CreatedAt:    mockClock.Now(),
		}, nil
	}
	hasher.compareFunc = func(hash, password string) error {
		if hash != "stored-hash" {
			t.Errorf("expected stored hash, got %s", hash)
		}
		if password != "secret123" {
			t.Errorf("expected submitted password, got %s", password)
		}
		return nil
	}

	id, err := svc.Authenticate(context.Background(), service.LoginInput{
		Email:    "ALICE@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if string(id) != userID {
		t.Errorf("expected id %s, got %s", userID, id)
	}
}

func TestAuthService_Authenticate_UnknownEmail(t *testing.T) {
	svc, _, _, _, _ := setupAuthService(t)

	_, err := svc.Authenticate(context.Background(), service.LoginInput{
		Email:    "ghost@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, commonerrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_WrongPassword(t *testing.T) {
	svc, repo, hasher, _, _ := setupAuthService(t)

	repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{ID: "user-1", Email: email, PasswordHash: "stored-hash"}, nil
	}
	hasher.compareFunc = func(hash, password string) error {
		return errors.New("mismatch")
	}

	_, err := svc.Authenticate(context.Background(), service.LoginInput{
		Email:    "alice@example.com",
		Password: "wrongpassword",
	})
	if !errors.Is(err, commonerrors.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Authenticate_RepoFailure(t *testing.T) {
	svc, repo, _, _, _ := setupAuthService(t)

	repo.findByEmailFunc = func(ctx context.Context, email string) (userdomain.User, error) {
		return userdomain.User{}, errors.New("connection refused")
	}

	_, err := svc.Authenticate(context.Background(), service.LoginInput{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	if errors.Is(err, commonerrors.ErrInvalidCredentials) {
		t.Error("infrastructure failure must not look like bad credentials")
	}

	var domainErr commonerrors.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected a domain error, got %v", err)
	}
	if domainErr.Code() != commonerrors.ErrDatabaseError.Code() {
		t.Errorf("expected database error code, got %s", domainErr.Code())
	}
}

func TestNormalizeEmail(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Alice@Example.COM", "alice@example.com"},
		{"trims whitespace", "  alice@example.com  ", "alice@example.com"},
		{"already normal", "alice@example.com", "alice@example.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := service.NormalizeEmail(tc.input)
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}
