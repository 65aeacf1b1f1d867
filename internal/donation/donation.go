package donation

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fundhive/internal/payment"
)

type PaymentStatus string

const PaymentStatusSuccess PaymentStatus = "success"

var (
	ErrNotFound           = errors.New("donation not found")
	ErrDuplicateReference = errors.New("donation reference already recorded")
)

// Donation is an immutable record of a confirmed payment towards a campaign.
type Donation struct {
	ID            uuid.UUID
	CampaignID    uuid.UUID
	UserID        uuid.UUID
	Amount        decimal.Decimal
	Reference     string
	Provider      payment.Provider
	PaymentStatus PaymentStatus
	CreatedAt     time.Time

	// Campaign is filled on reads that join the campaign.
	Campaign *CampaignSummary
}

type CampaignSummary struct {
	Title string
	Slug  string
}

// Intent is a donor's request to give Amount to a campaign, before any payment.
type Intent struct {
	CampaignID uuid.UUID
	Amount     decimal.Decimal
}

// Confirmation is a provider-verified payment, normalised across providers.
type Confirmation struct {
	CampaignID uuid.UUID
	UserID     uuid.UUID
	Amount     decimal.Decimal
	Reference  string
	Provider   payment.Provider
}
