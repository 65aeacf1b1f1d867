package paystack_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/fundhive/internal/apperr"
	"github.com/MrJamesThe3rd/fundhive/internal/payment"
	"github.com/MrJamesThe3rd/fundhive/internal/payment/paystack"
)

func newGateway(baseURL string) *paystack.Gateway {
	return paystack.New(paystack.Config{
		SecretKey:   "sk_test_paystack",
		BaseURL:     baseURL,
		CallbackURL: "https://fundhive.test/donations/callback",
		CancelURL:   "https://fundhive.test/cancel",
		Timeout:     5 * time.Second,
	})
}

func TestGateway_Initialize(t *testing.T) {
	meta := payment.Metadata{CampaignID: uuid.New(), UserID: uuid.New(), Amount: decimal.NewFromInt(300)}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_paystack", r.Header.Get("Authorization"))

		var body struct {
			Email    string `json:"email"`
			Amount   int64  `json:"amount"`
			Metadata struct {
				CampaignID   string `json:"campaignId"`
				UserID       string `json:"userId"`
				CancelAction string `json:"cancel_action"`
			} `json:"metadata"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		assert.Equal(t, "donor@fundhive.test", body.Email)
		assert.Equal(t, int64(30000), body.Amount)
		assert.Equal(t, meta.CampaignID.String(), body.Metadata.CampaignID)
		assert.Equal(t, meta.UserID.String(), body.Metadata.UserID)
		assert.Equal(t, "https://fundhive.test/cancel", body.Metadata.CancelAction)

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"status":true,"message":"Authorization URL created",
			"data":{"authorization_url":"https://checkout.paystack.test/abc","access_code":"abc","reference":"ref_abc"}}`)
	}))
	defer srv.Close()

	got, err := newGateway(srv.URL).Initialize(context.Background(), payment.InitializeParams{
		Amount:   decimal.NewFromInt(300),
		Email:    "donor@fundhive.test",
		Metadata: meta,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.paystack.test/abc", got.CheckoutURL)
	assert.Equal(t, "ref_abc", got.Reference)
}

func TestGateway_Initialize_AmountOutOfRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	}))
	defer srv.Close()

	for _, amount := range []string{"0.004", "92233720368547758.08"} {
		t.Run(amount, func(t *testing.T) {
			_, err := newGateway(srv.URL).Initialize(context.Background(), payment.InitializeParams{
				Amount: decimal.RequireFromString(amount),
				Email:  "donor@fundhive.test",
			})
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestGateway_ConfirmSync(t *testing.T) {
	meta := payment.Metadata{CampaignID: uuid.New(), UserID: uuid.New()}

	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    apperr.Kind
		wantMessage string
		wantSuccess bool
	}{
		{
			name:   "Success",
			status: http.StatusOK,
			body: fmt.Sprintf(`{"status":true,"message":"Verification successful","data":{"reference":"ref_1","status":"success","amount":30000,
				"metadata":{"campaignId":%q,"userId":%q,"donatedAmount":"300"}}}`, meta.CampaignID, meta.UserID),
			wantSuccess: true,
		},
		{
			name:   "Abandoned",
			status: http.StatusOK,
			body: fmt.Sprintf(`{"status":true,"message":"Verification successful","data":{"reference":"ref_1","status":"abandoned","amount":30000,
				"metadata":{"campaignId":%q,"userId":%q,"donatedAmount":300}}}`, meta.CampaignID, meta.UserID),
		},
		{
			name:        "UnknownReference",
			status:      http.StatusBadRequest,
			body:        `{"status":false,"message":"Transaction reference not found"}`,
			wantKind:    apperr.KindProviderError,
			wantMessage: "Transaction reference not found",
		},
		{
			name:        "ServerError",
			status:      http.StatusInternalServerError,
			body:        `{}`,
			wantKind:    apperr.KindProviderError,
			wantMessage: "Payment provider responded with Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/transaction/verify/ref_1", r.URL.Path)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer srv.Close()

			got, err := newGateway(srv.URL).ConfirmSync(context.Background(), "ref_1")

			if tt.wantKind != "" {
				appErr, ok := apperr.As(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantKind, appErr.Kind)
				assert.Equal(t, tt.wantMessage, appErr.Message)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSuccess, got.Success)
			assert.Equal(t, "ref_1", got.Reference)
			assert.True(t, decimal.NewFromInt(300).Equal(got.Amount))
			assert.True(t, decimal.NewFromInt(300).Equal(got.Metadata.Amount))
			assert.Equal(t, meta.UserID, got.Metadata.UserID)
		})
	}
}

func TestGateway_ConfirmSync_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	gw := paystack.New(paystack.Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	_, err := gw.ConfirmSync(context.Background(), "ref_1")
	assert.Equal(t, apperr.KindProviderError, apperr.KindOf(err))
}
