package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/givehub/server/internal/common/clock"
	"github.com/givehub/server/internal/common/session"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newManager(issuedAt time.Time, ttl time.Duration) *session.Manager {
	return session.NewManager(testSecret, ttl, clock.NewMockClock(issuedAt))
}

func TestManager_IssueAndParse(t *testing.T) {
	issuedAt := time.Now()
	manager := newManager(issuedAt, time.Hour)

	token, expiresAt, err := manager.Issue("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("expected issue to succeed, got %v", err)
	}
	if !expiresAt.Equal(issuedAt.Add(time.Hour)) {
		t.Errorf("expected expiry %v, got %v", issuedAt.Add(time.Hour), expiresAt)
	}

	claims, err := manager.Parse(token)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", claims.UserID)
	}
	if claims.Email != "alice@example.com" {
		t.Errorf("expected alice@example.com, got %s", claims.Email)
	}
}

func TestManager_Parse_Expired(t *testing.T) {
	manager := newManager(time.Now().Add(-2*time.Hour), time.Hour)

	token, _, err := manager.Issue("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("expected issue to succeed, got %v", err)
	}

	if _, err := manager.Parse(token); err == nil {
		t.Error("expected expired token to be rejected")
	}
}

func TestManager_Parse_WrongSecret(t *testing.T) {
	issuer := newManager(time.Now(), time.Hour)
	verifier := session.NewManager("another-secret-another-secret!!!", time.Hour, clock.NewRealClock())

	token, _, err := issuer.Issue("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("expected issue to succeed, got %v", err)
	}

	if _, err := verifier.Parse(token); err == nil {
		t.Error("expected token signed with a different secret to be rejected")
	}
}

func TestManager_Parse_Garbage(t *testing.T) {
	manager := newManager(time.Now(), time.Hour)

	if _, err := manager.Parse("not.a.token"); err == nil {
		t.Error("expected garbage token to be rejected")
	}
}

func TestManager_Middleware_AttachesClaims(t *testing.T) {
	manager := newManager(time.Now(), time.Hour)

	token, _, err := manager.Issue("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("expected issue to succeed, got %v", err)
	}

	var got session.Claims
	var found bool
	handler := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !found {
		t.Fatal("expected claims in context")
	}
	if got.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", got.UserID)
	}
}

func TestManager_Middleware_AnonymousPassesThrough(t *testing.T) {
	manager := newManager(time.Now(), time.Hour)

	var found bool
	var status int
	handler := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = session.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	status = recorder.Code

	if found {
		t.Error("expected no claims for anonymous request")
	}
	if status != http.StatusOK {
		t.Errorf("anonymous requests must not be rejected, got %d", status)
	}
}

func TestManager_Middleware_InvalidCookieIgnored(t *testing.T) {
	manager := newManager(time.Now(), time.Hour)

	var found bool
	handler := manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = session.FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "tampered"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if found {
		t.Error("expected tampered cookie to be ignored")
	}
}

func TestFromContext_Empty(t *testing.T) {
	if _, ok := session.FromContext(context.Background()); ok {
		t.Error("expected no claims in empty context")
	}
}
