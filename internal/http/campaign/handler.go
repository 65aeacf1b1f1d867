package campaign

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fundhive/internal/apperr"
	"github.com/MrJamesThe3rd/fundhive/internal/auth"
	"github.com/MrJamesThe3rd/fundhive/internal/campaign"
	"github.com/MrJamesThe3rd/fundhive/internal/http/respond"
)

type Handler struct {
	svc *campaign.Service
	rs  *respond.Responder
}

func NewHandler(svc *campaign.Service, rs *respond.Responder) *Handler {
	return &Handler{svc: svc, rs: rs}
}

// Routes mounts the campaign endpoints. Reads are public; writes need an admin token.
func (h *Handler) Routes(r chi.Router, protect func(http.Handler) http.Handler) {
	r.Get("/", h.list)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(protect, auth.RestrictTo(h.rs.Error, auth.RoleAdmin))

		r.Post("/", h.create)
		r.Delete("/{id}", h.delete)
	})
}

type createCampaignRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Medias      []string        `json:"medias"`
	PriceTarget decimal.Decimal `json:"priceTarget"`
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := respond.Decode(r, &req); err != nil {
		h.rs.Error(w, r, err)
		return
	}

	c, err := h.svc.Create(r.Context(), campaign.CreateParams{
		Title:       req.Title,
		Description: req.Description,
		Medias:      req.Medias,
		PriceTarget: req.PriceTarget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	h.rs.Success(w, http.StatusCreated, map[string]any{"campaign": toResponse(c)})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, err := respond.Page(r)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	res, err := h.svc.List(r.Context(), campaign.ListFilter{
		Search: r.URL.Query().Get("search"),
		Params: page,
	})
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	h.rs.List(w, len(res.Campaigns), map[string]any{"campaigns": toResponseList(res.Campaigns)}, res.Page)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.rs.Error(w, r, apperr.Validation("Invalid id"))
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.rs.Error(w, r, err)
		return
	}

	h.rs.Success(w, http.StatusOK, map[string]any{"campaign": toResponse(c)})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.rs.Error(w, r, apperr.Validation("Invalid id"))
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.rs.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
