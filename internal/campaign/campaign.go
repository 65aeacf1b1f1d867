package campaign

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatusReason records why a campaign stopped accepting donations.
type StatusReason string

const (
	ReasonPriceReached    StatusReason = "price-reached"
	ReasonDeadlineReached StatusReason = "deadline-reached"
)

// RequiredMedias is the number of media references a campaign is created with.
const RequiredMedias = 3

var (
	ErrNotFound       = errors.New("campaign not found")
	ErrDuplicateTitle = errors.New("campaign title already exists")
	ErrHasDonations   = errors.New("campaign has donations")
)

// Campaign is a fundraising goal. Open flips to false exactly once and
// StatusReason is set if and only if the campaign is closed.
type Campaign struct {
	ID           uuid.UUID
	Title        string
	Slug         string
	Description  string
	Medias       []string
	PriceTarget  decimal.Decimal // major currency units
	CurrentPrice decimal.Decimal // sum of confirmed donations
	StartDate    time.Time
	EndDate      time.Time
	Open         bool
	StatusReason *StatusReason
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Expired reports whether the deadline has passed at now.
func (c *Campaign) Expired(now time.Time) bool {
	return now.After(c.EndDate)
}

// ReachedTarget reports whether an open campaign's balance has met its goal.
func (c *Campaign) ReachedTarget() bool {
	return c.Open && c.CurrentPrice.GreaterThanOrEqual(c.PriceTarget)
}

// Close marks the campaign closed. It returns false if it was already closed,
// in which case the first reason is kept.
func (c *Campaign) Close(reason StatusReason) bool {
	if !c.Open {
		return false
	}

	c.Open = false
	c.StatusReason = &reason

	return true
}
