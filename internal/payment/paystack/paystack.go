// Package paystack adapts the Paystack transaction API to the payment contract.
package paystack

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fundhive/internal/apperr"
	"github.com/MrJamesThe3rd/fundhive/internal/payment"
)

const statusSuccess = "success"

type Config struct {
	SecretKey   string
	BaseURL     string
	CallbackURL string
	CancelURL   string
	Timeout     time.Duration
}

type Gateway struct {
	client      *resty.Client
	callbackURL string
	cancelURL   string
}

func New(cfg Config) *Gateway {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.SecretKey).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	return &Gateway{
		client:      client,
		callbackURL: cfg.CallbackURL,
		cancelURL:   cfg.CancelURL,
	}
}

// envelope is the shape of every Paystack response, success or failure.
type envelope[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type metadata struct {
	CancelAction  string          `json:"cancel_action,omitempty"`
	CampaignID    string          `json:"campaignId"`
	UserID        string          `json:"userId"`
	DonatedAmount decimal.Decimal `json:"donatedAmount"`
}

type initializeRequest struct {
	Email       string   `json:"email"`
	Amount      int64    `json:"amount"`
	CallbackURL string   `json:"callback_url,omitempty"`
	Metadata    metadata `json:"metadata"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Reference       string   `json:"reference"`
	Status          string   `json:"status"`
	Amount          int64    `json:"amount"`
	GatewayResponse string   `json:"gateway_response"`
	Metadata        metadata `json:"metadata"`
}

func (g *Gateway) Provider() payment.Provider {
	return payment.ProviderPaystack
}

func (g *Gateway) Initialize(ctx context.Context, p payment.InitializeParams) (*payment.Session, error) {
	amount, err := payment.ToMinor(p.Amount)
	if err != nil {
		return nil, apperr.Validation(`"amount" is out of range`)
	}

	body := initializeRequest{
		Email:       p.Email,
		Amount:      amount,
		CallbackURL: g.callbackURL,
		Metadata: metadata{
			CancelAction:  g.cancelURL,
			CampaignID:    p.Metadata.CampaignID.String(),
			UserID:        p.Metadata.UserID.String(),
			DonatedAmount: p.Metadata.Amount,
		},
	}

	var out envelope[initializeData]

	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		SetError(&out).
		Post("/transaction/initialize")
	if err := checkResponse("initializing transaction", resp, err, out.Status, out.Message); err != nil {
		return nil, err
	}

	return &payment.Session{CheckoutURL: out.Data.AuthorizationURL, Reference: out.Data.Reference}, nil
}

func (g *Gateway) ConfirmSync(ctx context.Context, reference string) (*payment.VerifiedPayment, error) {
	var out envelope[verifyData]

	resp, err := g.client.R().
		SetContext(ctx).
		SetPathParam("reference", reference).
		SetResult(&out).
		SetError(&out).
		Get("/transaction/verify/{reference}")
	if err := checkResponse("verifying transaction", resp, err, out.Status, out.Message); err != nil {
		return nil, err
	}

	meta, err := out.Data.Metadata.parse()
	if err != nil {
		return nil, apperr.ProviderError("Transaction is missing donation metadata", err)
	}

	ref := out.Data.Reference
	if ref == "" {
		ref = reference
	}

	return &payment.VerifiedPayment{
		Reference: ref,
		Amount:    payment.FromMinor(out.Data.Amount),
		Metadata:  meta,
		Success:   out.Data.Status == statusSuccess,
		Status:    out.Data.Status,
	}, nil
}

func (m metadata) parse() (payment.Metadata, error) {
	var out payment.Metadata

	campaignID, err := uuid.Parse(m.CampaignID)
	if err != nil {
		return out, fmt.Errorf("%w: %s: %w", payment.ErrIncompleteMetadata, payment.KeyCampaignID, err)
	}

	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return out, fmt.Errorf("%w: %s: %w", payment.ErrIncompleteMetadata, payment.KeyUserID, err)
	}

	out.CampaignID = campaignID
	out.UserID = userID
	out.Amount = m.DonatedAmount

	return out, nil
}

// checkResponse turns transport failures and {status:false} replies into provider errors.
func checkResponse(action string, resp *resty.Response, err error, ok bool, message string) error {
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperr.ProviderError("Payment provider timed out, please try again", fmt.Errorf("%s: %w", action, err))
		}

		return apperr.ProviderError("Payment provider is unavailable, please try again", fmt.Errorf("%s: %w", action, err))
	}

	if ok && !resp.IsError() {
		return nil
	}

	if message == "" {
		message = fmt.Sprintf("Payment provider responded with %s", http.StatusText(resp.StatusCode()))
	}

	return apperr.ProviderError(message, fmt.Errorf("%s: status %d", action, resp.StatusCode()))
}
