package session

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/givehub/server/internal/common/clock"
	"github.com/givehub/server/internal/observability/metrics"
)

const CookieName = "session"

type Claims struct {
	UserID string
	Email  string
}

type contextKey string

const claimsKey contextKey = "session_claims"

// Manager issues and verifies the HS256-signed session cookie. The cookie is
// the only place login state lives; handlers receive identity through the
// request context, never through shared state.
type Manager struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewManager(secret string, ttl time.Duration, clk clock.Clock) *Manager {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
		clock:  clk,
	}
}

func (m *Manager) Issue(userID, email string) (string, time.Time, error) {
	now := m.clock.Now()
	expiresAt := now.Add(m.ttl)

	claims := jwt.MapClaims{
		"sub": userID,
		"eml": email,
		"exp": expiresAt.Unix(),
		"iat": now.Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	metrics.SessionsIssuedTotal.Inc()
	return token, expiresAt, nil
}

func (m *Manager) Parse(token string) (Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		if err == nil {
			err = errors.New("token is not valid")
		}
		return Claims{}, err
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims type")
	}

	sub, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["eml"].(string)
	if sub == "" {
		return Claims{}, errors.New("missing sub claim")
	}

	return Claims{UserID: sub, Email: email}, nil
}

func (m *Manager) SetCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}

func (m *Manager) ClearCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}

// Middleware attaches session claims to the context when a valid cookie is
// present. It never rejects: anonymous requests pass through and handlers
// decide whether identity is required.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err == nil && cookie.Value != "" {
			if claims, parseErr := m.Parse(cookie.Value); parseErr == nil {
				r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}
