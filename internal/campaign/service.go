package campaign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/MrJamesThe3rd/fundhive/internal/apperr"
	"github.com/MrJamesThe3rd/fundhive/internal/pagination"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=campaign
type Repository interface {
	CreateCampaign(ctx context.Context, c *Campaign) error
	GetCampaign(ctx context.Context, id uuid.UUID) (*Campaign, error)
	ListCampaigns(ctx context.Context, filter ListFilter) ([]*Campaign, int, error)
	DeleteCampaign(ctx context.Context, id uuid.UUID) error

	// CloseCampaign closes an open campaign. It reports false when the
	// campaign was already closed, leaving the stored reason untouched.
	CloseCampaign(ctx context.Context, id uuid.UUID, reason StatusReason) (bool, error)
	ListExpiredOpen(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source used for deadline checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateParams struct {
	Title       string          `validate:"required"`
	Description string          `validate:"required"`
	Medias      []string        `validate:"dive,required"`
	PriceTarget decimal.Decimal `validate:"-"`
	StartDate   time.Time       `validate:"required"`
	EndDate     time.Time       `validate:"required,gtfield=StartDate"`
}

type ListFilter struct {
	Search string
	pagination.Params
}

type ListResult struct {
	Campaigns []*Campaign
	Total     int
	Page      *pagination.PageInfo
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Campaign, error) {
	params.Title = norm.NFC.String(strings.TrimSpace(params.Title))
	params.Description = strings.TrimSpace(params.Description)

	if len(params.Medias) == 0 {
		return nil, apperr.Validation("Media not found.")
	}

	if len(params.Medias) != RequiredMedias {
		return nil, apperr.Validation("Media not up to required length")
	}

	if err := apperr.Validate(params); err != nil {
		return nil, err
	}

	if !params.PriceTarget.IsPositive() {
		return nil, apperr.Validation(`"priceTarget" must be greater than 0`)
	}

	c := &Campaign{
		Title:        params.Title,
		Slug:         slug.Make(fmt.Sprintf("%s-%d", params.Title, s.now().UnixMilli())),
		Description:  params.Description,
		Medias:       params.Medias,
		PriceTarget:  params.PriceTarget,
		CurrentPrice: decimal.Zero,
		StartDate:    params.StartDate,
		EndDate:      params.EndDate,
		Open:         true,
	}

	if err := s.repo.CreateCampaign(ctx, c); err != nil {
		if errors.Is(err, ErrDuplicateTitle) {
			return nil, apperr.Validation(fmt.Sprintf("%q already exists. Please try a unique name.", c.Title))
		}

		return nil, err
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	c, err := s.repo.GetCampaign(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("Can't find campaign.")
		}

		return nil, err
	}

	return c, nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	if !filter.Valid() {
		return nil, apperr.Validation("Page and Limit must be defined")
	}

	campaigns, total, err := s.repo.ListCampaigns(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Campaigns: campaigns,
		Total:     total,
		Page:      pagination.Build(filter.Params, total),
	}, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.repo.DeleteCampaign(ctx, id)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return apperr.NotFound("Can't find campaign.")
	case errors.Is(err, ErrHasDonations):
		return apperr.Validation("Can't delete a campaign that has received donations.")
	default:
		return err
	}
}

// CheckEligibility loads a campaign and confirms it can take a donation.
// A campaign found past its deadline is closed here as a side effect, so the
// deadline holds even before the periodic sweep has run.
func (s *Service) CheckEligibility(ctx context.Context, id uuid.UUID) (*Campaign, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !c.Open {
		return nil, apperr.CampaignClosed("Can't donate to this campaign because the status is closed.")
	}

	if c.Expired(s.now()) {
		closed, err := s.repo.CloseCampaign(ctx, id, ReasonDeadlineReached)
		if err != nil {
			return nil, fmt.Errorf("closing expired campaign: %w", err)
		}

		if closed {
			slog.Info("campaign closed on donation attempt", "campaign_id", id, "reason", ReasonDeadlineReached)
		}

		return nil, apperr.CampaignClosed("Can't donate to this campaign because the deadline has passed")
	}

	return c, nil
}

// CloseExpired closes every open campaign whose deadline has passed. Each
// campaign is closed independently; failures are collected and the batch goes on.
func (s *Service) CloseExpired(ctx context.Context) (int, error) {
	ids, err := s.repo.ListExpiredOpen(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("listing expired campaigns: %w", err)
	}

	var (
		closed int
		errs   []error
	)

	for _, id := range ids {
		ok, err := s.repo.CloseCampaign(ctx, id, ReasonDeadlineReached)
		if err != nil {
			slog.Error("failed to close expired campaign", "campaign_id", id, "error", err)
			errs = append(errs, fmt.Errorf("closing campaign %s: %w", id, err))

			continue
		}

		if ok {
			closed++
		}
	}

	return closed, errors.Join(errs...)
}
