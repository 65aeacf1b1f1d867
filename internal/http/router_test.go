package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/fundhive/internal/apperr"
	"github.com/MrJamesThe3rd/fundhive/internal/auth"
	"github.com/MrJamesThe3rd/fundhive/internal/campaign"
	"github.com/MrJamesThe3rd/fundhive/internal/donation"
	fundhttp "github.com/MrJamesThe3rd/fundhive/internal/http"
	campaignhttp "github.com/MrJamesThe3rd/fundhive/internal/http/campaign"
	donationhttp "github.com/MrJamesThe3rd/fundhive/internal/http/donation"
	"github.com/MrJamesThe3rd/fundhive/internal/http/respond"
	"github.com/MrJamesThe3rd/fundhive/internal/payment"
)

const secret = "test-secret"

var (
	now   = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	user  = auth.Caller{ID: uuid.New(), Email: "donor@fundhive.test", Role: auth.RoleUser}
	admin = auth.Caller{ID: uuid.New(), Email: "admin@fundhive.test", Role: auth.RoleAdmin}
)

// stubGateway answers like a provider that supports both confirmation styles.
type stubGateway struct {
	provider payment.Provider
	verified *payment.VerifiedPayment
}

func (g *stubGateway) Provider() payment.Provider { return g.provider }

func (g *stubGateway) Initialize(context.Context, payment.InitializeParams) (*payment.Session, error) {
	return &payment.Session{CheckoutURL: "https://pay.test/" + string(g.provider), Reference: "ref_1"}, nil
}

func (g *stubGateway) ConfirmSync(context.Context, string) (*payment.VerifiedPayment, error) {
	return g.verified, nil
}

func (g *stubGateway) ConfirmWebhook(_ context.Context, _ []byte, signature string) (*payment.VerifiedPayment, error) {
	if signature != "t=1,v1=good" {
		return nil, apperr.SignatureInvalid("Webhook Error: No signatures found matching the expected signature for payload", nil)
	}

	return g.verified, nil
}

type env struct {
	handler   http.Handler
	campaigns *campaign.MockRepository
	donations *donation.MockRepository
	rtx       *donation.MockRecordTx
	gateway   *stubGateway
	stripe    *stubGateway
}

func newEnv(t *testing.T) *env {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	e := &env{
		campaigns: campaign.NewMockRepository(ctrl),
		donations: donation.NewMockRepository(ctrl),
		rtx:       donation.NewMockRecordTx(ctrl),
		gateway:   &stubGateway{provider: payment.ProviderPaystack},
		stripe:    &stubGateway{provider: payment.ProviderStripe},
	}

	campaignSvc := campaign.NewService(e.campaigns, campaign.WithClock(func() time.Time { return now }))
	donationSvc := donation.NewService(e.donations, campaignSvc, e.gateway, e.stripe)

	rs := respond.New(false)

	e.handler = fundhttp.New(
		fundhttp.Options{AllowedOrigins: []string{"*"}},
		rs,
		auth.NewVerifier(secret),
		campaignhttp.NewHandler(campaignSvc, rs),
		donationhttp.NewHandler(donationSvc, rs),
	)

	return e
}

func token(t *testing.T, c auth.Caller) string {
	t.Helper()

	raw, err := auth.NewVerifier(secret).Sign(c, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	require.NoError(t, err)

	return raw
}

func (e *env) do(t *testing.T, method, path, body string, caller *auth.Caller) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if caller != nil {
		req.Header.Set("Authorization", "Bearer "+token(t, *caller))
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}

	return rec.Code, out
}

func openCampaign() *campaign.Campaign {
	return &campaign.Campaign{
		ID:           uuid.New(),
		Title:        "School Roof",
		Slug:         "school-roof-1717243200000",
		Medias:       []string{"a.jpg", "b.jpg", "c.jpg"},
		PriceTarget:  decimal.NewFromInt(1000),
		CurrentPrice: decimal.NewFromInt(800),
		EndDate:      now.Add(24 * time.Hour),
		Open:         true,
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	e := newEnv(t)

	status, body := e.do(t, http.MethodGet, "/api/v1/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "/api/v1/unknown not found.", body["message"])
}

func TestRouter_GetCampaign(t *testing.T) {
	e := newEnv(t)
	c := openCampaign()

	e.campaigns.EXPECT().GetCampaign(gomock.Any(), c.ID).Return(c, nil)

	status, body := e.do(t, http.MethodGet, "/api/v1/campaigns/"+c.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", body["status"])

	got := body["data"].(map[string]any)["campaign"].(map[string]any)
	assert.Equal(t, "School Roof", got["title"])
	assert.InDelta(t, 800, got["currentPrice"], 0.001)
	assert.Equal(t, true, got["status"])
}

func TestRouter_ListCampaigns_PageWithoutLimit(t *testing.T) {
	e := newEnv(t)

	status, body := e.do(t, http.MethodGet, "/api/v1/campaigns?page=2", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Page and Limit must be defined", body["message"])
}

func TestRouter_CreateCampaign_Access(t *testing.T) {
	reqBody := `{
		"title": "School Roof",
		"description": "Fix the roof",
		"medias": ["a.jpg", "b.jpg", "c.jpg"],
		"priceTarget": 1000,
		"startDate": "2024-06-01T00:00:00Z",
		"endDate": "2024-07-01T00:00:00Z"
	}`

	t.Run("Anonymous", func(t *testing.T) {
		e := newEnv(t)

		status, body := e.do(t, http.MethodPost, "/api/v1/campaigns", reqBody, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "You are not logged in. Please login to get access.", body["message"])
	})

	t.Run("User", func(t *testing.T) {
		e := newEnv(t)

		status, _ := e.do(t, http.MethodPost, "/api/v1/campaigns", reqBody, &user)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("Admin", func(t *testing.T) {
		e := newEnv(t)

		e.campaigns.EXPECT().
			CreateCampaign(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *campaign.Campaign) error {
				c.ID = uuid.New()
				return nil
			})

		status, body := e.do(t, http.MethodPost, "/api/v1/campaigns", reqBody, &admin)
		require.Equal(t, http.StatusCreated, status)

		got := body["data"].(map[string]any)["campaign"].(map[string]any)
		assert.InDelta(t, 1000, got["priceTarget"], 0.001)
		assert.Nil(t, got["statusReason"])
	})
}

func TestRouter_InitializePaystack(t *testing.T) {
	e := newEnv(t)
	c := openCampaign()

	e.campaigns.EXPECT().GetCampaign(gomock.Any(), c.ID).Return(c, nil)

	status, body := e.do(t, http.MethodPost, "/api/v1/donations/paystack/initialize",
		`{"campaignId":"`+c.ID.String()+`","amount":300}`, &user)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "https://pay.test/paystack", body["data"].(map[string]any)["checkoutUrl"])
}

func TestRouter_InitializePaystack_ClosedCampaign(t *testing.T) {
	e := newEnv(t)
	c := openCampaign()
	c.Close(campaign.ReasonPriceReached)

	e.campaigns.EXPECT().GetCampaign(gomock.Any(), c.ID).Return(c, nil)

	status, body := e.do(t, http.MethodPost, "/api/v1/donations/paystack/initialize",
		`{"campaignId":"`+c.ID.String()+`","amount":300}`, &user)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "fail", body["status"])
	assert.Equal(t, "Can't donate to this campaign because the status is closed.", body["message"])
}

func TestRouter_InitializePaystack_BadCampaignID(t *testing.T) {
	e := newEnv(t)

	status, body := e.do(t, http.MethodPost, "/api/v1/donations/paystack/initialize",
		`{"campaignId":"nope","amount":300}`, &user)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, `"campaignId" must be a valid id`, body["message"])
}

func TestRouter_VerifyPaystack(t *testing.T) {
	e := newEnv(t)
	c := openCampaign()

	e.gateway.verified = &payment.VerifiedPayment{
		Reference: "ref_1",
		Amount:    decimal.NewFromInt(300),
		Metadata:  payment.Metadata{CampaignID: c.ID, UserID: user.ID, Amount: decimal.NewFromInt(300)},
		Success:   true,
		Status:    "success",
	}

	credited := *c
	credited.CurrentPrice = decimal.NewFromInt(1100)

	e.donations.EXPECT().ReferenceExists(gomock.Any(), "ref_1").Return(false, nil).Times(2)
	e.donations.EXPECT().BeginRecord(gomock.Any()).Return(e.rtx, nil)
	e.rtx.EXPECT().InsertDonation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d *donation.Donation) error {
			d.ID = uuid.New()
			d.CreatedAt = now

			return nil
		})
	e.rtx.EXPECT().CreditCampaign(gomock.Any(), c.ID, gomock.Any()).Return(&credited, nil)
	e.rtx.EXPECT().CloseCampaign(gomock.Any(), c.ID, campaign.ReasonPriceReached).Return(true, nil)
	e.rtx.EXPECT().Commit().Return(nil)
	e.rtx.EXPECT().Rollback().Return(nil)

	status, body := e.do(t, http.MethodPost, "/api/v1/donations/paystack", `{"reference":"ref_1"}`, &user)
	require.Equal(t, http.StatusCreated, status)

	got := body["data"].(map[string]any)["donation"].(map[string]any)
	assert.Equal(t, "ref_1", got["reference"])
	assert.Equal(t, "paystack", got["provider"])
	assert.Equal(t, "success", got["paymentStatus"])
	assert.InDelta(t, 300, got["amount"], 0.001)
}

func TestRouter_VerifyPaystack_AlreadyProcessed(t *testing.T) {
	e := newEnv(t)

	e.donations.EXPECT().ReferenceExists(gomock.Any(), "ref_1").Return(true, nil)

	status, body := e.do(t, http.MethodPost, "/api/v1/donations/paystack", `{"reference":"ref_1"}`, &user)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Payment has been verified already", body["message"])
}

func TestRouter_StripeWebhook_BadSignature(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/donations/stripe/webhook", strings.NewReader(`{"id":"evt_1"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=forged")

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Webhook Error")
}

func TestRouter_StripeWebhook_Redelivery(t *testing.T) {
	e := newEnv(t)
	e.stripe.verified = &payment.VerifiedPayment{
		Reference: "cs_1",
		Amount:    decimal.NewFromInt(300),
		Success:   true,
		Metadata:  payment.Metadata{CampaignID: uuid.New(), UserID: user.ID},
	}

	e.donations.EXPECT().ReferenceExists(gomock.Any(), "cs_1").Return(true, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/donations/stripe/webhook", strings.NewReader(`{"id":"evt_1"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=good")

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"received":true,"duplicate":true}`, rec.Body.String())
}

func TestRouter_StripeWebhook_RecordFailure(t *testing.T) {
	e := newEnv(t)
	e.stripe.verified = &payment.VerifiedPayment{
		Reference: "cs_2",
		Amount:    decimal.NewFromInt(300),
		Success:   true,
		Metadata:  payment.Metadata{CampaignID: uuid.New(), UserID: user.ID},
	}

	e.donations.EXPECT().ReferenceExists(gomock.Any(), "cs_2").Return(false, errors.New("connection refused"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/donations/stripe/webhook", strings.NewReader(`{"id":"evt_2"}`))
	req.Header.Set("Stripe-Signature", "t=1,v1=good")

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRouter_ListDonations_ScopedToUser(t *testing.T) {
	e := newEnv(t)

	e.donations.EXPECT().
		ListDonations(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f donation.ListFilter) ([]*donation.Donation, int, error) {
			require.NotNil(t, f.UserID)
			assert.Equal(t, user.ID, *f.UserID)
			assert.Equal(t, "roof", f.Search)

			return []*donation.Donation{{
				ID:            uuid.New(),
				UserID:        user.ID,
				Amount:        decimal.NewFromInt(50),
				Provider:      payment.ProviderStripe,
				PaymentStatus: donation.PaymentStatusSuccess,
				Campaign:      &donation.CampaignSummary{Title: "School Roof", Slug: "school-roof"},
			}}, 3, nil
		})

	status, body := e.do(t, http.MethodGet, "/api/v1/donations?search=roof&page=1&limit=1", "", &user)
	require.Equal(t, http.StatusOK, status)
	assert.InDelta(t, 1, body["result"], 0.001)

	page := body["pagination"].(map[string]any)
	assert.InDelta(t, 3, page["totalPages"], 0.001)
	assert.InDelta(t, 2, page["nextPage"], 0.001)
	assert.Nil(t, page["prevPage"])
}

func TestRouter_ExpiredToken(t *testing.T) {
	e := newEnv(t)

	raw, err := auth.NewVerifier(secret).Sign(user, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/donations", nil)
	req.Header.Set("Authorization", "Bearer "+raw)

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your token has expired")
}
