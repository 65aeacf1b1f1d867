// Package stripe adapts Stripe hosted checkout to the payment contract.
package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/MrJamesThe3rd/fundhive/internal/apperr"
	"github.com/MrJamesThe3rd/fundhive/internal/payment"
)

const eventCheckoutCompleted = "checkout.session.completed"

type Config struct {
	SecretKey     string
	WebhookSecret string
	APIURL        string // overrides the Stripe API base, used in tests
	Currency      string
	SuccessURL    string
	CancelURL     string
	Timeout       time.Duration
}

type Gateway struct {
	sessions      *session.Client
	webhookSecret string
	currency      string
	successURL    string
	cancelURL     string
	timeout       time.Duration
}

func New(cfg Config) *Gateway {
	backendCfg := &stripego.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripego.Int64(0),
	}

	if cfg.APIURL != "" {
		backendCfg.URL = stripego.String(cfg.APIURL)
	}

	backend := stripego.GetBackendWithConfig(stripego.APIBackend, backendCfg)

	return &Gateway{
		sessions:      &session.Client{B: backend, Key: cfg.SecretKey},
		webhookSecret: cfg.WebhookSecret,
		currency:      cfg.Currency,
		successURL:    cfg.SuccessURL,
		cancelURL:     cfg.CancelURL,
		timeout:       cfg.Timeout,
	}
}

func (g *Gateway) Provider() payment.Provider {
	return payment.ProviderStripe
}

func (g *Gateway) Initialize(ctx context.Context, p payment.InitializeParams) (*payment.Session, error) {
	unitAmount, err := payment.ToMinor(p.Amount)
	if err != nil {
		return nil, apperr.Validation(`"amount" is out of range`)
	}

	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	params := &stripego.CheckoutSessionParams{
		Mode:       stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL: stripego.String(g.successURL),
		CancelURL:  stripego.String(g.cancelURL),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
					Currency: stripego.String(g.currency),
					ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripego.String(p.Description),
					},
					UnitAmount: stripego.Int64(unitAmount),
				},
				Quantity: stripego.Int64(1),
			},
		},
	}

	if p.Email != "" {
		params.CustomerEmail = stripego.String(p.Email)
	}

	params.Context = ctx

	for k, v := range p.Metadata.Map() {
		params.AddMetadata(k, v)
	}

	s, err := g.sessions.New(params)
	if err != nil {
		return nil, providerError("creating checkout session", err)
	}

	return &payment.Session{CheckoutURL: s.URL, Reference: s.ID}, nil
}

// ConfirmWebhook verifies the Stripe-Signature header against the raw payload
// and extracts the completed checkout session.
func (g *Gateway) ConfirmWebhook(_ context.Context, payload []byte, signature string) (*payment.VerifiedPayment, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		Tolerance:                webhook.DefaultTolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, apperr.SignatureInvalid("Webhook Error: "+err.Error(), err)
	}

	if string(event.Type) != eventCheckoutCompleted {
		return nil, apperr.UnhandledEvent(fmt.Sprintf("Unhandled event type: %s", event.Type))
	}

	var s stripego.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, apperr.ProviderError("Malformed checkout session in webhook event", err)
	}

	return verified(&s)
}

func (g *Gateway) ConfirmSync(ctx context.Context, reference string) (*payment.VerifiedPayment, error) {
	ctx, cancel := g.withTimeout(ctx)
	defer cancel()

	s, err := g.sessions.Get(reference, &stripego.CheckoutSessionParams{Params: stripego.Params{Context: ctx}})
	if err != nil {
		return nil, providerError("retrieving checkout session", err)
	}

	return verified(s)
}

func (g *Gateway) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, g.timeout)
}

func verified(s *stripego.CheckoutSession) (*payment.VerifiedPayment, error) {
	meta, err := payment.ParseMetadata(s.Metadata)
	if err != nil {
		return nil, apperr.ProviderError("Checkout session is missing donation metadata", err)
	}

	return &payment.VerifiedPayment{
		Reference: s.ID,
		Amount:    payment.FromMinor(s.AmountTotal),
		Metadata:  meta,
		Success:   s.PaymentStatus == stripego.CheckoutSessionPaymentStatusPaid,
		Status:    string(s.PaymentStatus),
	}, nil
}

func providerError(action string, err error) error {
	var stripeErr *stripego.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return apperr.ProviderError(stripeErr.Msg, fmt.Errorf("%s: %w", action, err))
	}

	return apperr.ProviderError("Payment provider is unavailable, please try again", fmt.Errorf("%s: %w", action, err))
}
