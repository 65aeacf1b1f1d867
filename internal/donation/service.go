package donation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fundhive/internal/apperr"
	"github.com/MrJamesThe3rd/fundhive/internal/auth"
	"github.com/MrJamesThe3rd/fundhive/internal/campaign"
	"github.com/MrJamesThe3rd/fundhive/internal/pagination"
	"github.com/MrJamesThe3rd/fundhive/internal/payment"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=donation
type Repository interface {
	GetDonation(ctx context.Context, id uuid.UUID) (*Donation, error)
	ListDonations(ctx context.Context, filter ListFilter) ([]*Donation, int, error)
	ReferenceExists(ctx context.Context, reference string) (bool, error)
	BeginRecord(ctx context.Context) (RecordTx, error)
}

// RecordTx is a single database transaction in which a donation is stored
// and its campaign credited. Nothing is visible until Commit.
type RecordTx interface {
	InsertDonation(ctx context.Context, d *Donation) error
	// CreditCampaign atomically adds amount to the campaign balance and returns the updated campaign.
	CreditCampaign(ctx context.Context, campaignID uuid.UUID, amount decimal.Decimal) (*campaign.Campaign, error)
	CloseCampaign(ctx context.Context, campaignID uuid.UUID, reason campaign.StatusReason) (bool, error)
	Commit() error
	Rollback() error
}

// Campaigns is the campaign lookup the workflow needs before taking money.
type Campaigns interface {
	CheckEligibility(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error)
}

type Service struct {
	repo      Repository
	campaigns Campaigns
	gateways  map[payment.Provider]payment.Gateway
}

func NewService(repo Repository, campaigns Campaigns, gateways ...payment.Gateway) *Service {
	s := &Service{
		repo:      repo,
		campaigns: campaigns,
		gateways:  make(map[payment.Provider]payment.Gateway, len(gateways)),
	}

	for _, gw := range gateways {
		s.gateways[gw.Provider()] = gw
	}

	return s
}

type ListFilter struct {
	Search string
	UserID *uuid.UUID
	pagination.Params
}

type ListParams struct {
	Search string
	pagination.Params
}

type ListResult struct {
	Donations []*Donation
	Total     int
	Page      *pagination.PageInfo
}

// PreValidate checks that an intent could be accepted right now.
func (s *Service) PreValidate(ctx context.Context, intent Intent) (*campaign.Campaign, error) {
	if intent.CampaignID == uuid.Nil {
		return nil, apperr.Validation(`"campaignId" is required`)
	}

	if !intent.Amount.IsPositive() {
		return nil, apperr.Validation(`"amount" must be greater than 0`)
	}

	if !intent.Amount.Equal(intent.Amount.Truncate(2)) {
		return nil, apperr.Validation(`"amount" must have at most 2 decimal places`)
	}

	if intent.Amount.LessThan(payment.MinAmount) || !intent.Amount.LessThan(payment.MaxAmount) {
		return nil, apperr.Validation(fmt.Sprintf(`"amount" must be at least %s and less than %s`,
			payment.MinAmount.StringFixed(2), payment.MaxAmount.StringFixed(0)))
	}

	return s.campaigns.CheckEligibility(ctx, intent.CampaignID)
}

// InitializePayment starts a provider payment for the intent. No donation is
// recorded and no balance changes until the payment is confirmed.
func (s *Service) InitializePayment(ctx context.Context, provider payment.Provider, intent Intent, caller auth.Caller) (*payment.Session, error) {
	gw, err := s.gateway(provider)
	if err != nil {
		return nil, err
	}

	c, err := s.PreValidate(ctx, intent)
	if err != nil {
		return nil, err
	}

	session, err := gw.Initialize(ctx, payment.InitializeParams{
		Amount:      intent.Amount,
		Email:       caller.Email,
		Description: c.Title,
		Metadata: payment.Metadata{
			CampaignID: c.ID,
			UserID:     caller.ID,
			Amount:     intent.Amount,
		},
	})
	if err != nil {
		if _, ok := apperr.As(err); ok {
			return nil, err
		}

		return nil, apperr.ProviderError("Payment provider is unavailable, please try again", err)
	}

	slog.Info("payment initialized",
		"provider", provider,
		"campaign_id", c.ID,
		"user_id", caller.ID,
		"reference", session.Reference,
	)

	return session, nil
}

// ConfirmWebhook authenticates a provider event and turns it into a confirmation.
func (s *Service) ConfirmWebhook(ctx context.Context, provider payment.Provider, payload []byte, signature string) (*Confirmation, error) {
	gw, err := s.gateway(provider)
	if err != nil {
		return nil, err
	}

	wc, ok := gw.(payment.WebhookConfirmer)
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("%s does not deliver webhooks", provider))
	}

	vp, err := wc.ConfirmWebhook(ctx, payload, signature)
	if err != nil {
		return nil, err
	}

	return confirmationFrom(provider, vp, vp.Reference)
}

// ConfirmSynchronous asks the provider for the outcome of reference on behalf of caller.
func (s *Service) ConfirmSynchronous(ctx context.Context, provider payment.Provider, reference string, caller auth.Caller) (*Confirmation, error) {
	if reference == "" {
		return nil, apperr.Validation(`"reference" is required`)
	}

	gw, err := s.gateway(provider)
	if err != nil {
		return nil, err
	}

	sc, ok := gw.(payment.SyncConfirmer)
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("%s payments can't be verified on demand", provider))
	}

	if err := s.ensureUnused(ctx, reference); err != nil {
		return nil, err
	}

	vp, err := sc.ConfirmSync(ctx, reference)
	if err != nil {
		return nil, err
	}

	conf, err := confirmationFrom(provider, vp, reference)
	if err != nil {
		return nil, err
	}

	if conf.UserID != caller.ID {
		return nil, apperr.Forbidden("This payment was initialized by another user")
	}

	return conf, nil
}

// RecordDonation stores a confirmed payment and credits its campaign in one
// transaction. The unique reference decides which of two racing confirmations
// wins; the loser sees AlreadyProcessed and changes nothing.
func (s *Service) RecordDonation(ctx context.Context, conf Confirmation) (*Donation, error) {
	if conf.CampaignID == uuid.Nil || conf.UserID == uuid.Nil {
		return nil, apperr.Validation("Donation is missing its campaign or donor")
	}

	if !conf.Amount.IsPositive() {
		return nil, apperr.Validation(`"amount" must be greater than 0`)
	}

	if conf.Reference != "" {
		if err := s.ensureUnused(ctx, conf.Reference); err != nil {
			return nil, err
		}
	}

	rtx, err := s.repo.BeginRecord(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning donation record: %w", err)
	}
	defer rtx.Rollback()

	d := &Donation{
		CampaignID:    conf.CampaignID,
		UserID:        conf.UserID,
		Amount:        conf.Amount,
		Reference:     conf.Reference,
		Provider:      conf.Provider,
		PaymentStatus: PaymentStatusSuccess,
	}

	if err := rtx.InsertDonation(ctx, d); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateReference):
			return nil, alreadyProcessed()
		case errors.Is(err, campaign.ErrNotFound):
			return nil, apperr.NotFound("Can't find campaign.")
		default:
			return nil, err
		}
	}

	c, err := rtx.CreditCampaign(ctx, conf.CampaignID, conf.Amount)
	if err != nil {
		if errors.Is(err, campaign.ErrNotFound) {
			return nil, apperr.NotFound("Can't find campaign.")
		}

		return nil, err
	}

	wasOpen := c.Open

	if c.ReachedTarget() {
		if _, err := rtx.CloseCampaign(ctx, c.ID, campaign.ReasonPriceReached); err != nil {
			return nil, err
		}

		c.Close(campaign.ReasonPriceReached)
	}

	if err := rtx.Commit(); err != nil {
		return nil, fmt.Errorf("committing donation record: %w", err)
	}

	switch {
	case !wasOpen:
		slog.Warn("donation recorded for closed campaign",
			"campaign_id", c.ID,
			"donation_id", d.ID,
			"reference", d.Reference,
		)
	case !c.Open:
		slog.Info("campaign closed", "campaign_id", c.ID, "reason", campaign.ReasonPriceReached)
	}

	slog.Info("donation recorded",
		"donation_id", d.ID,
		"campaign_id", d.CampaignID,
		"provider", d.Provider,
		"amount", d.Amount.String(),
	)

	d.Campaign = &CampaignSummary{Title: c.Title, Slug: c.Slug}

	return d, nil
}

// ProcessWebhook confirms a provider event and records the donation it carries.
func (s *Service) ProcessWebhook(ctx context.Context, provider payment.Provider, payload []byte, signature string) (*Donation, error) {
	conf, err := s.ConfirmWebhook(ctx, provider, payload, signature)
	if err != nil {
		return nil, err
	}

	return s.RecordDonation(ctx, *conf)
}

// VerifyAndRecord confirms reference with the provider and records the donation.
func (s *Service) VerifyAndRecord(ctx context.Context, provider payment.Provider, reference string, caller auth.Caller) (*Donation, error) {
	conf, err := s.ConfirmSynchronous(ctx, provider, reference, caller)
	if err != nil {
		return nil, err
	}

	return s.RecordDonation(ctx, *conf)
}

// List returns donations visible to caller. Users only see their own.
func (s *Service) List(ctx context.Context, params ListParams, caller auth.Caller) (*ListResult, error) {
	if !params.Valid() {
		return nil, apperr.Validation("Page and Limit must be defined")
	}

	filter := ListFilter{Search: params.Search, Params: params.Params}
	if !caller.IsAdmin() {
		filter.UserID = &caller.ID
	}

	donations, total, err := s.repo.ListDonations(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ListResult{
		Donations: donations,
		Total:     total,
		Page:      pagination.Build(params.Params, total),
	}, nil
}

// Get returns a single donation. Another user's donation is reported as not found.
func (s *Service) Get(ctx context.Context, id uuid.UUID, caller auth.Caller) (*Donation, error) {
	d, err := s.repo.GetDonation(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("Id not found")
		}

		return nil, err
	}

	if !caller.IsAdmin() && d.UserID != caller.ID {
		return nil, apperr.NotFound("Id not found")
	}

	return d, nil
}

func (s *Service) gateway(provider payment.Provider) (payment.Gateway, error) {
	gw, ok := s.gateways[provider]
	if !ok {
		return nil, apperr.Validation(fmt.Sprintf("Unsupported payment provider %q", provider))
	}

	return gw, nil
}

func (s *Service) ensureUnused(ctx context.Context, reference string) error {
	used, err := s.repo.ReferenceExists(ctx, reference)
	if err != nil {
		return fmt.Errorf("checking reference: %w", err)
	}

	if used {
		return alreadyProcessed()
	}

	return nil
}

func alreadyProcessed() error {
	return apperr.AlreadyProcessed("Payment has been verified already")
}

func confirmationFrom(provider payment.Provider, vp *payment.VerifiedPayment, reference string) (*Confirmation, error) {
	if !vp.Success {
		return nil, apperr.PaymentNotSuccessful("Payment not successful")
	}

	if vp.Reference != "" {
		reference = vp.Reference
	}

	return &Confirmation{
		CampaignID: vp.Metadata.CampaignID,
		UserID:     vp.Metadata.UserID,
		Amount:     vp.SettledAmount(),
		Reference:  reference,
		Provider:   provider,
	}, nil
}
