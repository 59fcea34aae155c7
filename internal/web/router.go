package web

import (
	"net/http"

	"github.com/givehub/server/internal/common/logger"
	"github.com/givehub/server/internal/common/session"
	authservice "github.com/givehub/server/internal/auth/service"
	donationservice "github.com/givehub/server/internal/donation/service"
	needservice "github.com/givehub/server/internal/need/service"
)

type Handler struct {
	auth      *authservice.AuthService
	needs     *needservice.NeedService
	donations *donationservice.DonationService
	sessions  *session.Manager
	templates templateSet
	log       *logger.Logger
}

func NewHandler(
	auth *authservice.AuthService,
	needs *needservice.NeedService,
	donations *donationservice.DonationService,
	sessions *session.Manager,
	log *logger.Logger,
) http.Handler {
	h := &Handler{
		auth:      auth,
		needs:     needs,
		donations: donations,
		sessions:  sessions,
		templates: parseTemplates(),
		log:       log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", h.index)
	mux.HandleFunc("/register", h.register)
	mux.HandleFunc("/login", h.login)
	mux.HandleFunc("/logout", h.logout)
	mux.HandleFunc("/dashboard", h.dashboard)
	mux.HandleFunc("/needs", h.needsPage)
	mux.HandleFunc("/donate", h.donate)
	return mux
}

func (h *Handler) isLoggedIn(r *http.Request) bool {
	_, ok := session.FromContext(r.Context())
	return ok
}
