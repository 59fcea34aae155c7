package http

import (
	"context"
	"net/http"

	"github.com/givehub/server/internal/auth/service"
	"github.com/givehub/server/internal/common/constants"
	commonhttp "github.com/givehub/server/internal/common/http"
	"github.com/givehub/server/internal/common/logger"
	"github.com/givehub/server/internal/common/session"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type userResponse struct {
	ID string `json:"id"`
}

type Handler struct {
	auth     *service.AuthService
	sessions *session.Manager
	errors   *commonhttp.ErrorHandler
	log      *logger.Logger
}

func NewHandler(auth *service.AuthService, sessions *session.Manager, errors *commonhttp.ErrorHandler, log *logger.Logger) http.Handler {
	h := &Handler{auth: auth, sessions: sessions, errors: errors, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/register", h.register)
	mux.HandleFunc("/api/auth/login", h.login)
	mux.HandleFunc("/api/auth/logout", h.logout)
	return mux
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteMethodNotAllowed(w)
		return
	}

	var req registerRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("register failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", "")
		return
	}

	if err := commonhttp.ValidatePayload(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	userID, err := h.auth.Register(ctx, service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	token, expiresAt, err := h.sessions.Issue(string(userID), service.NormalizeEmail(req.Email))
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	h.sessions.SetCookie(w, r, token, expiresAt)
	commonhttp.WriteJSON(w, http.StatusCreated, userResponse{ID: string(userID)})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteMethodNotAllowed(w)
		return
	}

	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", "")
		return
	}

	if err := commonhttp.ValidatePayload(req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	userID, err := h.auth.Authenticate(ctx, service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	token, expiresAt, err := h.sessions.Issue(string(userID), service.NormalizeEmail(req.Email))
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	h.sessions.SetCookie(w, r, token, expiresAt)
	commonhttp.WriteJSON(w, http.StatusOK, userResponse{ID: string(userID)})
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		commonhttp.WriteMethodNotAllowed(w)
		return
	}

	h.sessions.ClearCookie(w, r)
	w.WriteHeader(http.StatusNoContent)
}
