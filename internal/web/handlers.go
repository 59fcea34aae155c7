package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/givehub/server/internal/common/constants"
	commonerrors "github.com/givehub/server/internal/common/errors"
	commonhttp "github.com/givehub/server/internal/common/http"
	"github.com/givehub/server/internal/common/logger"
	"github.com/givehub/server/internal/common/session"
	authservice "github.com/givehub/server/internal/auth/service"
	donationdomain "github.com/givehub/server/internal/donation/domain"
	donationservice "github.com/givehub/server/internal/donation/service"
	needdomain "github.com/givehub/server/internal/need/domain"
	needservice "github.com/givehub/server/internal/need/service"
)

type indexData struct {
	Needs     []needdomain.Need
	Donations []donationdomain.Donation
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	needs, err := h.needs.List(ctx, constants.RecentListingLimit)
	if err != nil {
		h.renderListFailure(w, r, err)
		return
	}
	donations, err := h.donations.List(ctx, constants.RecentListingLimit)
	if err != nil {
		h.renderListFailure(w, r, err)
		return
	}

	h.render(w, r, "index.html", "Give Hub", indexData{Needs: needs, Donations: donations})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.render(w, r, "register.html", "Register", nil)
	case http.MethodPost:
		h.handleRegister(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		addFlash(w, r, "Invalid form submission.", "error")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	input := authservice.RegisterInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	userID, err := h.auth.Register(ctx, input)
	if err != nil {
		addFlash(w, r, domainMessage(err), "error")
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	h.startSession(w, r, string(userID), authservice.NormalizeEmail(input.Email))
	addFlash(w, r, "Welcome! Your account has been created.", "success")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.render(w, r, "login.html", "Log in", nil)
	case http.MethodPost:
		h.handleLogin(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		addFlash(w, r, "Invalid form submission.", "error")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	input := authservice.LoginInput{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	userID, err := h.auth.Authenticate(ctx, input)
	if err != nil {
		addFlash(w, r, domainMessage(err), "error")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.startSession(w, r, string(userID), authservice.NormalizeEmail(input.Email))
	addFlash(w, r, "Logged in.", "success")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w, r)
	addFlash(w, r, "Logged out.", "success")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type dashboardData struct {
	Email     string
	Needs     []needdomain.Need
	Donations []donationdomain.Donation
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	claims, ok := session.FromContext(r.Context())
	if !ok {
		addFlash(w, r, "Please log in to view your dashboard.", "error")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	needs, err := h.needs.List(ctx, 0)
	if err != nil {
		h.renderListFailure(w, r, err)
		return
	}
	donations, err := h.donations.List(ctx, 0)
	if err != nil {
		h.renderListFailure(w, r, err)
		return
	}

	h.render(w, r, "dashboard.html", "Dashboard", dashboardData{
		Email:     claims.Email,
		Needs:     needs,
		Donations: donations,
	})
}

type needsData struct {
	Needs []needdomain.Need
}

func (h *Handler) needsPage(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
		defer cancel()

		needs, err := h.needs.List(ctx, 0)
		if err != nil {
			h.renderListFailure(w, r, err)
			return
		}
		h.render(w, r, "needs.html", "Needs", needsData{Needs: needs})
	case http.MethodPost:
		h.handleCreateNeed(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleCreateNeed(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		addFlash(w, r, "Invalid form submission.", "error")
		http.Redirect(w, r, "/needs", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	input := needservice.CreateInput{
		Title:       r.PostFormValue("title"),
		Description: r.PostFormValue("description"),
		Category:    r.PostFormValue("category"),
	}
	if claims, ok := session.FromContext(r.Context()); ok {
		input.CreatorID = claims.UserID
	}

	if _, err := h.needs.Create(ctx, input); err != nil {
		addFlash(w, r, domainMessage(err), "error")
		http.Redirect(w, r, "/needs", http.StatusSeeOther)
		return
	}

	addFlash(w, r, "Need posted. Thank you!", "success")
	http.Redirect(w, r, "/needs", http.StatusSeeOther)
}

type donateData struct {
	Needs     []needdomain.Need
	Donations []donationdomain.Donation
}

func (h *Handler) donate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
		defer cancel()

		needs, err := h.needs.List(ctx, 0)
		if err != nil {
			h.renderListFailure(w, r, err)
			return
		}
		donations, err := h.donations.List(ctx, 0)
		if err != nil {
			h.renderListFailure(w, r, err)
			return
		}
		h.render(w, r, "donate.html", "Donate", donateData{Needs: needs, Donations: donations})
	case http.MethodPost:
		h.handleCreateDonation(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleCreateDonation(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		addFlash(w, r, "Invalid form submission.", "error")
		http.Redirect(w, r, "/donate", http.StatusSeeOther)
		return
	}

	needID := strings.TrimSpace(r.PostFormValue("need_id"))
	if needID != "" {
		if err := commonhttp.ValidateUUID(needID); err != nil {
			addFlash(w, r, "The selected need reference is not valid.", "error")
			http.Redirect(w, r, "/donate", http.StatusSeeOther)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), constants.RequestTimeout)
	defer cancel()

	input := donationservice.CreateInput{
		DonorName: r.PostFormValue("donor_name"),
		Item:      r.PostFormValue("item"),
		Quantity:  r.PostFormValue("quantity"),
		Notes:     r.PostFormValue("notes"),
		NeedID:    needID,
	}

	if _, err := h.donations.Create(ctx, input); err != nil {
		addFlash(w, r, domainMessage(err), "error")
		http.Redirect(w, r, "/donate", http.StatusSeeOther)
		return
	}

	addFlash(w, r, "Donation recorded. Thank you!", "success")
	http.Redirect(w, r, "/donate", http.StatusSeeOther)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, userID, email string) {
	token, expiresAt, err := h.sessions.Issue(userID, email)
	if err != nil {
		h.log.WithFields(logger.Fields{
			"action": "session_issue_failed",
		}).Errorf("session issue failed: %v", err)
		return
	}
	h.sessions.SetCookie(w, r, token, expiresAt)
}

func (h *Handler) renderListFailure(w http.ResponseWriter, r *http.Request, err error) {
	h.log.WithFields(logger.Fields{
		"action": "page_listing_failed",
	}).Errorf("page listing failed: %v", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// domainMessage surfaces the user-facing message of domain failures and a
// generic line for everything else.
func domainMessage(err error) string {
	var domainErr commonerrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message()
	}
	return "Something went wrong. Please try again."
}
