package service

import (
	"context"
	"strings"

	"github.com/givehub/server/internal/common/clock"
	"github.com/givehub/server/internal/common/constants"
	"github.com/givehub/server/internal/common/crypto"
	commonerrors "github.com/givehub/server/internal/common/errors"
	"github.com/givehub/server/internal/common/logger"
	"github.com/givehub/server/internal/need/domain"
	"github.com/givehub/server/internal/need/repository"
	"github.com/givehub/server/internal/observability/metrics"
)

// EventPublisher receives a notification after a need is durably created.
// A nil publisher disables notifications.
type EventPublisher interface {
	PublishNeedCreated(need domain.Need)
}

type NeedService struct {
	repo        repository.Repository
	idGenerator crypto.IDGenerator
	clock       clock.Clock
	publisher   EventPublisher
	log         *logger.Logger
}

type NeedServiceDeps struct {
	Repo        repository.Repository
	IDGenerator crypto.IDGenerator
	Clock       clock.Clock
	Publisher   EventPublisher
	Log         *logger.Logger
}

func NewNeedService(deps NeedServiceDeps) *NeedService {
	if deps.Clock == nil {
		deps.Clock = clock.NewRealClock()
	}
	return &NeedService{
		repo:        deps.Repo,
		idGenerator: deps.IDGenerator,
		clock:       deps.Clock,
		publisher:   deps.Publisher,
		log:         deps.Log,
	}
}

type CreateInput struct {
	Title       string
	Description string
	Category    string
	CreatorID   string
}

// Create trims and truncates once at write time, so a listed need already
// carries its final title and category.
func (s *NeedService) Create(ctx context.Context, input CreateInput) (domain.Need, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)

	if title == "" || description == "" {
		return domain.Need{}, commonerrors.ErrMissingField
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = constants.DefaultCategory
	}

	title = truncate(title, constants.TitleMaxLength)
	category = truncate(category, constants.CategoryMaxLength)

	id, err := s.idGenerator.NewID()
	if err != nil {
		return domain.Need{}, err
	}

	need := domain.Need{
		ID:          domain.ID(id),
		Title:       title,
		Description: description,
		Category:    category,
		CreatedAt:   s.clock.Now(),
	}
	if input.CreatorID != "" {
		creator := input.CreatorID
		need.CreatedBy = &creator
	}

	if err := s.repo.Create(ctx, need); err != nil {
		s.log.WithFields(logger.Fields{
			"title":  need.Title,
			"action": "need_create_failed",
		}).Errorf("need create failed: %v", err)
		return domain.Need{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	s.log.WithFields(logger.Fields{
		"need_id":  string(need.ID),
		"category": need.Category,
		"action":   "need_created",
	}).Info("need created")

	metrics.NeedsCreatedTotal.WithLabelValues(need.Category).Inc()

	if s.publisher != nil {
		s.publisher.PublishNeedCreated(need)
	}

	return need, nil
}

func (s *NeedService) List(ctx context.Context, limit int) ([]domain.Need, error) {
	if limit <= 0 {
		limit = constants.DefaultListingLimit
	}
	return s.repo.List(ctx, limit)
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
