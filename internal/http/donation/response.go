package donation

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fundhive/internal/donation"
	"github.com/MrJamesThe3rd/fundhive/internal/payment"
)

type donationResponse struct {
	ID            uuid.UUID              `json:"id"`
	CampaignID    uuid.UUID              `json:"campaignId"`
	Campaign      *campaignSummary       `json:"campaign,omitempty"`
	UserID        uuid.UUID              `json:"userId"`
	Amount        float64                `json:"amount"`
	Reference     string                 `json:"reference,omitempty"`
	Provider      payment.Provider       `json:"provider"`
	PaymentStatus donation.PaymentStatus `json:"paymentStatus"`
	CreatedAt     time.Time              `json:"createdAt"`
}

type campaignSummary struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
	Slug  string    `json:"slug"`
}

func toResponse(d *donation.Donation) donationResponse {
	resp := donationResponse{
		ID:            d.ID,
		CampaignID:    d.CampaignID,
		UserID:        d.UserID,
		Amount:        d.Amount.InexactFloat64(),
		Reference:     d.Reference,
		Provider:      d.Provider,
		PaymentStatus: d.PaymentStatus,
		CreatedAt:     d.CreatedAt,
	}

	if d.Campaign != nil {
		resp.Campaign = &campaignSummary{
			ID:    d.CampaignID,
			Title: d.Campaign.Title,
			Slug:  d.Campaign.Slug,
		}
	}

	return resp
}

func toResponseList(ds []*donation.Donation) []donationResponse {
	resp := make([]donationResponse, len(ds))
	for i, d := range ds {
		resp[i] = toResponse(d)
	}

	return resp
}
