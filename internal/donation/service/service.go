package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/givehub/server/internal/common/clock"
	"github.com/givehub/server/internal/common/constants"
	"github.com/givehub/server/internal/common/crypto"
	commonerrors "github.com/givehub/server/internal/common/errors"
	"github.com/givehub/server/internal/common/logger"
	"github.com/givehub/server/internal/donation/domain"
	"github.com/givehub/server/internal/donation/repository"
	"github.com/givehub/server/internal/observability/metrics"
)

type EventPublisher interface {
	PublishDonationCreated(donation domain.Donation)
}

type DonationService struct {
	repo        repository.Repository
	idGenerator crypto.IDGenerator
	clock       clock.Clock
	publisher   EventPublisher
	log         *logger.Logger
}

type DonationServiceDeps struct {
	Repo        repository.Repository
	IDGenerator crypto.IDGenerator
	Clock       clock.Clock
	Publisher   EventPublisher
	Log         *logger.Logger
}

func NewDonationService(deps DonationServiceDeps) *DonationService {
	if deps.Clock == nil {
		deps.Clock = clock.NewRealClock()
	}
	return &DonationService{
		repo:        deps.Repo,
		idGenerator: deps.IDGenerator,
		clock:       deps.Clock,
		publisher:   deps.Publisher,
		log:         deps.Log,
	}
}

type CreateInput struct {
	DonorName string
	Item      string
	Quantity  string
	Notes     string
	NeedID    string
}

// Create records a donation. Quantity arrives raw: empty defaults to 1,
// non-integer input fails with ErrInvalidQuantity, and anything below 1 is
// silently raised to 1. NeedID is stored as given, no existence check.
func (s *DonationService) Create(ctx context.Context, input CreateInput) (domain.Donation, error) {
	item := strings.TrimSpace(input.Item)
	if item == "" {
		return domain.Donation{}, commonerrors.ErrMissingField
	}

	donorName := strings.TrimSpace(input.DonorName)
	if donorName == "" {
		donorName = constants.DefaultDonorName
	}

	quantity, err := parseQuantity(input.Quantity)
	if err != nil {
		return domain.Donation{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Donation{}, err
	}

	donation := domain.Donation{
		ID:        domain.ID(id),
		DonorName: truncate(donorName, constants.DonorNameMaxLength),
		Item:      truncate(item, constants.ItemMaxLength),
		Quantity:  quantity,
		CreatedAt: s.clock.Now(),
	}
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		donation.Notes = &notes
	}
	if needID := strings.TrimSpace(input.NeedID); needID != "" {
		donation.NeedID = &needID
	}

	if err := s.repo.Create(ctx, donation); err != nil {
		s.log.WithFields(logger.Fields{
			"item":   donation.Item,
			"action": "donation_create_failed",
		}).Errorf("donation create failed: %v", err)
		return domain.Donation{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(logger.Fields{
		"donation_id": string(donation.ID),
		"quantity":    donation.Quantity,
		"action":      "donation_created",
	}).Info("donation created")

	metrics.DonationsCreatedTotal.Inc()
	metrics.DonationItemsTotal.Add(float64(donation.Quantity))

	if s.publisher != nil {
		s.publisher.PublishDonationCreated(donation)
	}

	return donation, nil
}

func (s *DonationService) List(ctx context.Context, limit int) ([]domain.Donation, error) {
	if limit <= 0 {
		limit = constants.DefaultListingLimit
	}
	return s.repo.List(ctx, limit)
}

func parseQuantity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return constants.MinDonationQuantity, nil
	}

	quantity, err := strconv.Atoi(raw)
	if err != nil {
		return 0, commonerrors.ErrInvalidQuantity
	}

	if quantity < constants.MinDonationQuantity {
		return constants.MinDonationQuantity, nil
	}
	return quantity, nil
}

// truncate counts characters, not bytes, so multi-byte input is never cut
// mid-rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
