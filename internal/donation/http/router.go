package http

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/givehub/server/internal/common/constants"
	commonhttp "github.com/givehub/server/internal/common/http"
	"github.com/givehub/server/internal/common/logger"
	"github.com/givehub/server/internal/donation/domain"
	"github.com/givehub/server/internal/donation/service"
)

type createDonationRequest struct {
	DonorName string `json:"donor_name"`
	Item      string `json:"item"`
	Quantity  any    `json:"quantity"`
	Notes     string `json:"notes"`
	NeedID    string `json:"need_id"`
}

type donationResponse struct {
	ID        string    `json:"id"`
	DonorName string    `json:"donor_name"`
	Item      string    `json:"item"`
	Quantity  int       `json:"quantity"`
	NeedID    *string   `json:"need_id"`
	CreatedAt time.Time `json:"created_at"`
}

type createdResponse struct {
	ID string `json:"id"`
}

type Handler struct {
	donations *service.DonationService
	errors    *commonhttp.ErrorHandler
	log       *logger.Logger
}

func NewHandler(donations *service.DonationService, errors *commonhttp.ErrorHandler, log *logger.Logger) http.Handler {
	h := &Handler{donations: donations, errors: errors, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/donations", h.handle)
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

	donations, err := h.donations.List(ctx, constants.DefaultListingLimit)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toDonationResponses(donations))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createDonationRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create donation failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json", "")
		return
	}

	// Dangling need references are allowed, malformed identifiers are not.
	if req.NeedID != "" {
		if err := commonhttp.ValidateUUID(req.NeedID); err != nil {
			commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidNeedID, "need_id must be a uuid", "")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	donation, err := h.donations.Create(ctx, service.CreateInput{
		DonorName: req.DonorName,
		Item:      req.Item,
		Quantity:  rawQuantity(req.Quantity),
		Notes:     req.Notes,
		NeedID:    req.NeedID,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusCreated, createdResponse{ID: string(donation.ID)})
}

// rawQuantity flattens the JSON value to the raw string form the service
// parses: clients send quantity both as a number and as a numeric string.
func rawQuantity(v any) string {
	switch q := v.(type) {
	case nil:
		return ""
	case string:
		return q
	case float64:
		// int(q) is undefined for values outside the int range; leave those
		// in float form so parsing rejects them.
		if q == math.Trunc(q) && q >= math.MinInt32 && q <= math.MaxInt32 {
			return strconv.Itoa(int(q))
		}
		return strconv.FormatFloat(q, 'f', -1, 64)
	default:
		return "invalid"
	}
}

func toDonationResponses(donations []domain.Donation) []donationResponse {
	out := make([]donationResponse, 0, len(donations))
	for _, d := range donations {
		out = append(out, donationResponse{
			ID:        string(d.ID),
			DonorName: d.DonorName,
			Item:      d.Item,
			Quantity:  d.Quantity,
			NeedID:    d.NeedID,
			CreatedAt: d.CreatedAt,
		})
	}
	return out
}
