// Package payment defines the provider-neutral contract between the donation
// workflow and the external payment processors.
//
// Amounts crossing this boundary are in major currency units. Adapters convert
// to and from the provider's minor units with ToMinor and FromMinor.
package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Provider string

const (
	ProviderStripe   Provider = "stripe"
	ProviderPaystack Provider = "paystack"
)

// Metadata keys attached to a payment at initialization and read back on confirmation.
const (
	KeyCampaignID    = "campaignId"
	KeyUserID        = "userId"
	KeyDonatedAmount = "donatedAmount"
)

var (
	ErrIncompleteMetadata = errors.New("payment metadata is incomplete")
	ErrAmountOutOfRange   = errors.New("amount out of range")
)

// Accepted donation amounts in major units. MaxAmount is exclusive and
// matches the NUMERIC(18, 2) amount columns.
var (
	MinAmount = decimal.New(1, -2)
	MaxAmount = decimal.New(1, 16)
)

// Metadata ties a provider payment back to the donation it funds.
type Metadata struct {
	CampaignID uuid.UUID
	UserID     uuid.UUID
	Amount     decimal.Decimal
}

func (m Metadata) Map() map[string]string {
	return map[string]string{
		KeyCampaignID:    m.CampaignID.String(),
		KeyUserID:        m.UserID.String(),
		KeyDonatedAmount: m.Amount.String(),
	}
}

// ParseMetadata reads metadata echoed back by a provider. The amount is optional.
func ParseMetadata(values map[string]string) (Metadata, error) {
	var m Metadata

	campaignID, err := uuid.Parse(values[KeyCampaignID])
	if err != nil {
		return m, fmt.Errorf("%w: %s: %w", ErrIncompleteMetadata, KeyCampaignID, err)
	}

	userID, err := uuid.Parse(values[KeyUserID])
	if err != nil {
		return m, fmt.Errorf("%w: %s: %w", ErrIncompleteMetadata, KeyUserID, err)
	}

	m.CampaignID = campaignID
	m.UserID = userID

	if raw := values[KeyDonatedAmount]; raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return m, fmt.Errorf("%w: %s: %w", ErrIncompleteMetadata, KeyDonatedAmount, err)
		}

		m.Amount = amount
	}

	return m, nil
}

type InitializeParams struct {
	Amount      decimal.Decimal
	Email       string
	Description string
	Metadata    Metadata
}

// Session is a started payment the donor completes on the provider's page.
type Session struct {
	CheckoutURL string
	Reference   string
}

type VerifiedPayment struct {
	Reference string
	Amount    decimal.Decimal // zero when the provider did not report one
	Metadata  Metadata
	Success   bool
	Status    string
}

// SettledAmount is the provider-reported amount, falling back to the metadata amount.
func (v *VerifiedPayment) SettledAmount() decimal.Decimal {
	if v.Amount.IsPositive() {
		return v.Amount
	}

	return v.Metadata.Amount
}

//go:generate mockgen -source=payment.go -destination=payment_mock.go -package=payment
type Gateway interface {
	Provider() Provider
	Initialize(ctx context.Context, params InitializeParams) (*Session, error)
}

// SyncConfirmer is implemented by providers that are polled for a payment's outcome.
type SyncConfirmer interface {
	ConfirmSync(ctx context.Context, reference string) (*VerifiedPayment, error)
}

// WebhookConfirmer is implemented by providers that push signed event notifications.
type WebhookConfirmer interface {
	ConfirmWebhook(ctx context.Context, payload []byte, signature string) (*VerifiedPayment, error)
}

// ToMinor converts a major-unit amount to the provider's smallest unit, rounding half away from zero.
// Amounts that round outside [MinAmount, MaxAmount) are rejected.
func ToMinor(amount decimal.Decimal) (int64, error) {
	minor := amount.Shift(2).Round(0)
	if minor.LessThan(MinAmount.Shift(2)) || !minor.LessThan(MaxAmount.Shift(2)) {
		return 0, fmt.Errorf("%w: %s", ErrAmountOutOfRange, amount)
	}

	return minor.IntPart(), nil
}

func FromMinor(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}
