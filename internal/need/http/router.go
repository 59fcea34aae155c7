package http

import (
	"context"
	"net/http"
	"time"

	"github.com/givehub/server/internal/common/constants"
	commonhttp "github.com/givehub/server/internal/common/http"
	"github.com/givehub/server/internal/common/logger"
	"github.com/givehub/server/internal/common/session"
	"github.com/givehub/server/internal/need/domain"
	"github.com/givehub/server/internal/need/service"
)

type createNeedRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type needResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type Handler struct {
	needs  *service.NeedService
	errors *commonhttp.ErrorHandler
	log    *logger.Logger
}

func NewHandler(needs *service.NeedService, errors *commonhttp.ErrorHandler, log *logger.Logger) http.Handler {
	h := &Handler{needs: needs, errors: errors, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/needs", h.handle)
	return mux
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		commonhttp.WriteMethodNotAllowed(w)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	needs, err := h.needs.List(ctx, constants.DefaultListingLimit)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toNeedResponses(needs))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createNeedRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create need failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", "")
		return
	}

	// The session is optional here: anonymous needs are allowed, a logged-in
	// user becomes the creator.
	var creatorID string
	if claims, ok := session.FromContext(r.Context()); ok {
		creatorID = claims.UserID
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	need, err := h.needs.Create(ctx, service.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		CreatorID:   creatorID,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, createdResponse{ID: string(need.ID)})
}

func toNeedResponses(needs []domain.Need) []needResponse {
	out := make([]needResponse, 0, len(needs))
	for _, n := range needs {
		out = append(out, needResponse{
			ID:          string(n.ID),
			Title:       n.Title,
			Description: n.Description,
			Category:    n.Category,
			CreatedAt:   n.CreatedAt,
		})
	}
	return out
}
