package campaign

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/fundhive/internal/campaign"
)

type campaignResponse struct {
	ID           uuid.UUID              `json:"id"`
	Title        string                 `json:"title"`
	Slug         string                 `json:"slug"`
	Description  string                 `json:"description"`
	Medias       []string               `json:"medias"`
	PriceTarget  float64                `json:"priceTarget"`
	CurrentPrice float64                `json:"currentPrice"`
	StartDate    time.Time              `json:"startDate"`
	EndDate      time.Time              `json:"endDate"`
	Status       bool                   `json:"status"`
	StatusReason *campaign.StatusReason `json:"statusReason,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

func toResponse(c *campaign.Campaign) campaignResponse {
	return campaignResponse{
		ID:           c.ID,
		Title:        c.Title,
		Slug:         c.Slug,
		Description:  c.Description,
		Medias:       c.Medias,
		PriceTarget:  c.PriceTarget.InexactFloat64(),
		CurrentPrice: c.CurrentPrice.InexactFloat64(),
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Status:       c.Open,
		StatusReason: c.StatusReason,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toResponseList(cs []*campaign.Campaign) []campaignResponse {
	resp := make([]campaignResponse, len(cs))
	for i, c := range cs {
		resp[i] = toResponse(c)
	}

	return resp
}
