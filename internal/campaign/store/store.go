package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/MrJamesThe3rd/fundhive/internal/campaign"
	"github.com/MrJamesThe3rd/fundhive/internal/database"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Scanner is satisfied by both *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Columns lists the campaign columns in the order Scan expects them.
const Columns = `
	c.id, c.title, c.slug, c.description, c.medias, c.price_target, c.current_price,
	c.start_date, c.end_date, c.status, c.status_reason, c.created_at, c.updated_at
`

// typeMaps holds pgtype maps for decoding array columns. A Map caches scan
// plans and is not safe for concurrent use.
var typeMaps = sync.Pool{New: func() any { return pgtype.NewMap() }}

// Scan reads a campaign row selected with Columns.
func Scan(s Scanner) (*campaign.Campaign, error) {
	var c campaign.Campaign

	var reason sql.NullString

	types := typeMaps.Get().(*pgtype.Map)
	defer typeMaps.Put(types)

	if err := s.Scan(
		&c.ID, &c.Title, &c.Slug, &c.Description, types.SQLScanner(&c.Medias),
		&c.PriceTarget, &c.CurrentPrice, &c.StartDate, &c.EndDate,
		&c.Open, &reason, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if reason.Valid {
		c.StatusReason = new(campaign.StatusReason(reason.String))
	}

	return &c, nil
}

func (s *Store) CreateCampaign(ctx context.Context, c *campaign.Campaign) error {
	query := `
		INSERT INTO campaigns (title, slug, description, medias, price_target, current_price, start_date, end_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, TRUE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		c.Title,
		c.Slug,
		c.Description,
		c.Medias,
		c.PriceTarget,
		c.CurrentPrice,
		c.StartDate,
		c.EndDate,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if database.IsUniqueViolation(err, "campaigns_title_key") || database.IsUniqueViolation(err, "campaigns_slug_key") {
			return campaign.ErrDuplicateTitle
		}

		return fmt.Errorf("creating campaign: %w", err)
	}

	return nil
}

func (s *Store) GetCampaign(ctx context.Context, id uuid.UUID) (*campaign.Campaign, error) {
	query := `SELECT ` + Columns + ` FROM campaigns c WHERE c.id = $1`

	c, err := Scan(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, campaign.ErrNotFound
		}

		return nil, fmt.Errorf("getting campaign: %w", err)
	}

	return c, nil
}

func (s *Store) ListCampaigns(ctx context.Context, filter campaign.ListFilter) ([]*campaign.Campaign, int, error) {
	where := ` WHERE TRUE`

	var args []any

	if filter.Search != "" {
		args = append(args, database.ContainsPattern(filter.Search))
		where += fmt.Sprintf(" AND c.title ILIKE $%d", len(args))
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM campaigns c`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting campaigns: %w", err)
	}

	query := `SELECT ` + Columns + ` FROM campaigns c` + where + ` ORDER BY c.created_at DESC`

	if filter.Requested() {
		args = append(args, filter.Limit, filter.Offset())
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []*campaign.Campaign

	for rows.Next() {
		c, err := Scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning campaign: %w", err)
		}

		campaigns = append(campaigns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating campaigns: %w", err)
	}

	return campaigns, total, nil
}

func (s *Store) DeleteCampaign(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err, "donations_campaign_id_fkey") {
			return campaign.ErrHasDonations
		}

		return fmt.Errorf("deleting campaign: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting campaign: %w", err)
	}

	if n == 0 {
		return campaign.ErrNotFound
	}

	return nil
}

// CloseCampaign only touches open rows, so concurrent closers agree on a single reason.
func (s *Store) CloseCampaign(ctx context.Context, id uuid.UUID, reason campaign.StatusReason) (bool, error) {
	return closeCampaign(ctx, s.db, id, reason)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func closeCampaign(ctx context.Context, db execer, id uuid.UUID, reason campaign.StatusReason) (bool, error) {
	query := `
		UPDATE campaigns
		SET status = FALSE, status_reason = $1, updated_at = NOW()
		WHERE id = $2 AND status
	`

	res, err := db.ExecContext(ctx, query, reason, id)
	if err != nil {
		return false, fmt.Errorf("closing campaign: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("closing campaign: %w", err)
	}

	return n > 0, nil
}

// CloseCampaignTx closes a campaign inside an open transaction.
func CloseCampaignTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, reason campaign.StatusReason) (bool, error) {
	return closeCampaign(ctx, tx, id, reason)
}

func (s *Store) ListExpiredOpen(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM campaigns WHERE status AND end_date < $1 ORDER BY end_date`, now)
	if err != nil {
		return nil, fmt.Errorf("listing expired campaigns: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning campaign id: %w", err)
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}
