package donation

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fundhive/internal/apperr"
	"github.com/MrJamesThe3rd/fundhive/internal/auth"
	"github.com/MrJamesThe3rd/fundhive/internal/donation"
	"github.com/MrJamesThe3rd/fundhive/internal/http/respond"
	"github.com/MrJamesThe3rd/fundhive/internal/payment"
)

// maxWebhookBytes bounds the raw body read for signature verification.
const maxWebhookBytes = 64 << 10

type Handler struct {
	svc *donation.Service
	rs  *respond.Responder
}

func NewHandler(svc *donation.Service, rs *respond.Responder) *Handler {
	return &Handler{svc: svc, rs: rs}
}

// Routes mounts the donation endpoints. The Stripe webhook is authenticated by
// its signature rather than a bearer token.
func (h *Handler) Routes(r chi.Router, protect func(http.Handler) http.Handler) {
	r.Post("/stripe/webhook", h.stripeWebhook)

	r.Group(func(r chi.Router) {
		r.Use(protect)

		r.With(auth.RestrictTo(h.rs.Error, auth.RoleUser, auth.RoleAdmin)).Get("/", h.list)
		r.With(auth.RestrictTo(h.rs.Error, auth.RoleUser, auth.RoleAdmin)).Get("/{id}", h.get)

		r.Group(func(r chi.Router) {
			r.Use(auth.RestrictTo(h.rs.Error, auth.RoleUser), middleware.AllowContentType("application/json"))

			r.Post("/paystack/initialize", h.initialize(payment.ProviderPaystack))
			r.Post("/paystack", h.verify(payment.ProviderPaystack))
			r.Post("/stripe/initialize", h.initialize(payment.ProviderStripe))
		})
	})
}

type initializeRequest struct {
	CampaignID string          `json:"campaignId" validate:"required,uuid"`
	Amount     decimal.Decimal `json:"amount"`
}

type verifyRequest struct {
	Reference string `json:"reference" validate:"required"`
}

func (h *Handler) initialize(provider payment.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req initializeRequest
		if err := respond.Decode(r, &req); err != nil {
			h.rs.Error(w, r, err)
			return
		}

		caller, _ := auth.CallerFrom(r.Context())

		session, err := h.svc.InitializePayment(r.Context(), provider, donation.Intent{
			CampaignID: uuid.MustParse(req.CampaignID),
			Amount:     req.Amount,
		}, caller)
		if err != nil {
			h.rs.Error(w, r, err)
			return
		}

		h.rs.Success(w, http.StatusOK, map[string]string{"checkoutUrl": session.CheckoutURL})
	}
}

func (h *Handler) verify(provider payment.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if err := respond.Decode(r, &req); err != nil {
			h.rs.Error(w, r, err)
			return
		}

		caller, _ := auth.CallerFrom(r.Context())

		d, err := h.svc.VerifyAndRecord(r.Context(), provider, req.Reference, caller)
		if err != nil {
			h.rs.Error(w, r, err)
			return
		}

		h.rs.Success(w, http.StatusCreated, map[string]any{"donation": toResponse(d)})
	}
}

func (h *Handler) stripeWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		h.rs.Error(w, r, apperr.Validation("Webhook payload is too large or unreadable"))
		return
	}

	_, err = h.svc.ProcessWebhook(r.Context(), payment.ProviderStripe, payload, r.Header.Get("Stripe-Signature"))

	switch {
	case err == nil:
		h.rs.JSON(w, http.StatusOK, map[string]bool{"received": true})
	case apperr.IsKind(err, apperr.KindAlreadyProcessed):
		// Acknowledge redeliveries so Stripe stops retrying the event.
		slog.Info("duplicate stripe webhook acknowledged", "request_id", middleware.GetReqID(r.Context()))
		h.rs.JSON(w, http.StatusOK, map[string]bool{"received": true, "duplicate": true})
	default:
		h.rs.Error(w, r, err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, err := respond.Page(r)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	caller, _ := auth.CallerFrom(r.Context())

	res, err := h.svc.List(r.Context(), donation.ListParams{
		Search: r.URL.Query().Get("search"),
		Params: page,
	}, caller)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	h.rs.List(w, len(res.Donations), map[string]any{"donations": toResponseList(res.Donations)}, res.Page)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.rs.Error(w, r, apperr.NotFound("Id not found"))
		return
	}

	caller, _ := auth.CallerFrom(r.Context())

	d, err := h.svc.Get(r.Context(), id, caller)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	h.rs.Success(w, http.StatusOK, map[string]any{"donation": toResponse(d)})
}
