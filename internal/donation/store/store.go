package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/fundhive/internal/campaign"
	campaignstore "github.com/MrJamesThe3rd/fundhive/internal/campaign/store"
	"github.com/MrJamesThe3rd/fundhive/internal/database"
	"github.com/MrJamesThe3rd/fundhive/internal/donation"
	"github.com/MrJamesThe3rd/fundhive/internal/payment"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

// Expected column order: id, campaign_id, user_id, amount, reference, provider, payment_status, created_at, title, slug
const selectDonationColumns = `
	d.id, d.campaign_id, d.user_id, d.amount, d.reference, d.provider, d.payment_status, d.created_at,
	c.title, c.slug
`

func scanDonation(s scanner) (*donation.Donation, error) {
	var d donation.Donation

	var reference sql.NullString

	var provider, status string

	var summary donation.CampaignSummary

	if err := s.Scan(
		&d.ID, &d.CampaignID, &d.UserID, &d.Amount, &reference, &provider, &status, &d.CreatedAt,
		&summary.Title, &summary.Slug,
	); err != nil {
		return nil, err
	}

	d.Reference = reference.String
	d.Provider = payment.Provider(provider)
	d.PaymentStatus = donation.PaymentStatus(status)
	d.Campaign = &summary

	return &d, nil
}

func (s *Store) GetDonation(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	query := `SELECT ` + selectDonationColumns + `
		FROM donations d
		JOIN campaigns c ON c.id = d.campaign_id
		WHERE d.id = $1`

	d, err := scanDonation(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, donation.ErrNotFound
		}

		return nil, fmt.Errorf("getting donation: %w", err)
	}

	return d, nil
}

func (s *Store) ListDonations(ctx context.Context, filter donation.ListFilter) ([]*donation.Donation, int, error) {
	from := ` FROM donations d JOIN campaigns c ON c.id = d.campaign_id WHERE TRUE`

	var args []any

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		from += fmt.Sprintf(" AND d.user_id = $%d", len(args))
	}

	if filter.Search != "" {
		args = append(args, database.ContainsPattern(filter.Search))
		from += fmt.Sprintf(" AND c.title ILIKE $%d", len(args))
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting donations: %w", err)
	}

	query := `SELECT ` + selectDonationColumns + from + ` ORDER BY d.created_at DESC`

	if filter.Requested() {
		args = append(args, filter.Limit, filter.Offset())
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing donations: %w", err)
	}
	defer rows.Close()

	var donations []*donation.Donation

	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning donation: %w", err)
		}

		donations = append(donations, d)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating donations: %w", err)
	}

	return donations, total, nil
}

func (s *Store) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var exists bool

	err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM donations WHERE reference = $1)`, reference).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking donation reference: %w", err)
	}

	return exists, nil
}

// BeginRecord opens the transaction a donation and its campaign credit are written in.
func (s *Store) BeginRecord(ctx context.Context) (donation.RecordTx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	return &recordTx{tx: tx}, nil
}

type recordTx struct {
	tx *sql.Tx
}

func (r *recordTx) InsertDonation(ctx context.Context, d *donation.Donation) error {
	query := `
		INSERT INTO donations (campaign_id, user_id, amount, reference, provider, payment_status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	reference := sql.NullString{String: d.Reference, Valid: d.Reference != ""}

	err := r.tx.QueryRowContext(ctx, query,
		d.CampaignID,
		d.UserID,
		d.Amount,
		reference,
		d.Provider,
		d.PaymentStatus,
	).Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err, "donations_reference_key"):
			return donation.ErrDuplicateReference
		case database.IsForeignKeyViolation(err, "donations_campaign_id_fkey"):
			return campaign.ErrNotFound
		default:
			return fmt.Errorf("inserting donation: %w", err)
		}
	}

	return nil
}

// CreditCampaign increments the balance in place, holding the row lock until the
// transaction ends, so concurrent credits never lose an update.
func (r *recordTx) CreditCampaign(ctx context.Context, campaignID uuid.UUID, amount decimal.Decimal) (*campaign.Campaign, error) {
	query := `
		UPDATE campaigns AS c
		SET current_price = c.current_price + $1, updated_at = NOW()
		WHERE c.id = $2
		RETURNING ` + campaignstore.Columns

	c, err := campaignstore.Scan(r.tx.QueryRowContext(ctx, query, amount, campaignID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, campaign.ErrNotFound
		}

		return nil, fmt.Errorf("crediting campaign: %w", err)
	}

	return c, nil
}

func (r *recordTx) CloseCampaign(ctx context.Context, campaignID uuid.UUID, reason campaign.StatusReason) (bool, error) {
	return campaignstore.CloseCampaignTx(ctx, r.tx, campaignID, reason)
}

func (r *recordTx) Commit() error {
	return r.tx.Commit()
}

func (r *recordTx) Rollback() error {
	return r.tx.Rollback()
}
