package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/givehub/server/internal/common/clock"
	commonhttp "github.com/givehub/server/internal/common/http"
	"github.com/givehub/server/internal/common/logger"
	"github.com/givehub/server/internal/common/session"
	"github.com/givehub/server/internal/need/domain"
	needhttp "github.com/givehub/server/internal/need/http"
	"github.com/givehub/server/internal/need/service"
)

type mockNeedRepo struct {
	createFunc func(ctx context.Context, need domain.Need) error
	listFunc   func(ctx context.Context, limit int) ([]domain.Need, error)
}

func (m *mockNeedRepo) Create(ctx context.Context, need domain.Need) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, need)
	}
	return nil
}

func (m *mockNeedRepo) List(ctx context.Context, limit int) ([]domain.Need, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit)
	}
	return nil, nil
}

type mockIDGenerator struct{}

func (m *mockIDGenerator) NewID() (string, error) {
	return "55555555-5555-5555-5555-555555555555", nil
}

func setupNeedHandler(t *testing.T) (http.Handler, *mockNeedRepo) {
	_ = t
	repo := &mockNeedRepo{}
	log, _ := logger.New("", "test", "info")

	svc := service.NewNeedService(service.NeedServiceDeps{
		Repo:        repo,
		IDGenerator: &mockIDGenerator{},
		Clock:       clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
		Log:         log,
	})

	return needhttp.NewHandler(svc, commonhttp.NewErrorHandler(log), log), repo
}

func TestCreateNeed_Success(t *testing.T) {
	handler, repo := setupNeedHandler(t)

	var created domain.Need
	repo.createFunc = func(ctx context.Context, need domain.Need) error {
		created = need
		return nil
	}

	body := `{"title":"Winter coats","description":"Warm coats for the shelter","category":"clothing"}`
	req := httptest.NewRequest(http.MethodPost, "/api/needs", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if created.CreatedBy != nil {
		t.Error("anonymous request must not record a creator")
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != string(created.ID) {
		t.Errorf("expected id %s, got %s", created.ID, resp.ID)
	}
}

func TestCreateNeed_RecordsSessionUser(t *testing.T) {
	handler, repo := setupNeedHandler(t)

	var created domain.Need
	repo.createFunc = func(ctx context.Context, need domain.Need) error {
		created = need
		return nil
	}

	sessions := session.NewManager("0123456789abcdef0123456789abcdef", time.Hour, clock.NewRealClock())
	token, _, err := sessions.Issue("user-1", "alice@example.com")
	if err != nil {
		t.Fatalf("failed to issue session: %v", err)
	}

	body := `{"title":"Winter coats","description":"Warm coats"}`
	req := httptest.NewRequest(http.MethodPost, "/api/needs", strings.NewReader(body))
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: token})
	recorder := httptest.NewRecorder()
	sessions.Middleware(handler).ServeHTTP(recorder, req)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if created.CreatedBy == nil || *created.CreatedBy != "user-1" {
		t.Error("expected the session user to be recorded as creator")
	}
}

func TestCreateNeed_MissingField(t *testing.T) {
	handler, _ := setupNeedHandler(t)

	body := `{"title":"Winter coats"}`
	req := httptest.NewRequest(http.MethodPost, "/api/needs", strings.NewReader(body))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}

	var envelope struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if envelope.Code != "MISSING_FIELD" {
		t.Errorf("expected MISSING_FIELD, got %s", envelope.Code)
	}
}

func TestCreateNeed_InvalidJSON(t *testing.T) {
	handler, _ := setupNeedHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/needs", strings.NewReader("{broken"))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", recorder.Code)
	}
}

func TestListNeeds(t *testing.T) {
	handler, repo := setupNeedHandler(t)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	repo.listFunc = func(ctx context.Context, limit int) ([]domain.Need, error) {
		return []domain.Need{
			{ID: "need-1", Title: "Winter coats", Description: "Warm coats", Category: "clothing", CreatedAt: now},
			{ID: "need-2", Title: "Canned food", Description: "Non-perishables", Category: "general", CreatedAt: now},
		}, nil
	}

	req := httptest.NewRequest(http.MethodGet, "/api/needs", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var resp []struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(recorder.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 needs, got %d", len(resp))
	}
	if resp[0].ID != "need-1" || resp[1].ID != "need-2" {
		t.Error("expected needs in repository order")
	}
}

func TestListNeeds_EmptyIsArray(t *testing.T) {
	handler, _ := setupNeedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/needs", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if body := strings.TrimSpace(recorder.Body.String()); body != "[]" {
		t.Errorf("expected an empty json array, got %s", body)
	}
}

func TestNeeds_MethodNotAllowed(t *testing.T) {
	handler, _ := setupNeedHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/needs", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", recorder.Code)
	}
}
