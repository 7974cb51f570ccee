// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"outreach-engine/internal/common/errors"
	"outreach-engine/internal/models"
)

// PostgresStore is the production CampaignStore over lib/pq.
//
// Schema:
//
//	campaigns(id TEXT PK, owner_id TEXT, name TEXT, mode TEXT,
//	          sender_identity TEXT, scheduled_at TIMESTAMPTZ NULL,
//	          stats JSONB, status TEXT, created_at TIMESTAMPTZ)
//	send_records(id TEXT PK, campaign_id TEXT, recipient_email TEXT,
//	          business_name TEXT, website TEXT, subject TEXT, body TEXT,
//	          outcome TEXT, error TEXT, opened BOOLEAN, opened_at TIMESTAMPTZ NULL,
//	          created_at TIMESTAMPTZ, scheduled_for TIMESTAMPTZ NULL)
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) AppendCampaign(ctx context.Context, c models.Campaign) error {
	statsJSON, err := json.Marshal(c.Stats)
	if err != nil {
		return errors.NewStoreAppendFailedError(fmt.Errorf("marshal stats: %w", err))
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO campaigns (
			id, owner_id, name, mode, sender_identity,
			scheduled_at, stats, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.OwnerID, c.Name, string(c.Mode), c.SenderIdentity,
		c.ScheduledAt, statsJSON, string(c.Status), c.CreatedAt,
	)
	if err != nil {
		return errors.NewStoreAppendFailedError(err)
	}
	return nil
}

func (s *PostgresStore) CampaignByID(ctx context.Context, id string) (*models.Campaign, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, mode, sender_identity,
		       scheduled_at, stats, status, created_at
		FROM campaigns WHERE id = $1`, id)

	c, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewRecordNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewStoreQueryFailedError(err)
	}
	return c, nil
}

func (s *PostgresStore) CampaignsByOwner(ctx context.Context, ownerID string) ([]models.Campaign, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, name, mode, sender_identity,
		       scheduled_at, stats, status, created_at
		FROM campaigns WHERE owner_id = $1
		ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, errors.NewStoreQueryFailedError(err)
	}
	defer rows.Close()

	var out []models.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, errors.NewStoreQueryFailedError(err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreQueryFailedError(err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCampaign(row rowScanner) (*models.Campaign, error) {
	var (
		c         models.Campaign
		mode      string
		status    string
		statsJSON []byte
		scheduled sql.NullTime
	)
	err := row.Scan(&c.ID, &c.OwnerID, &c.Name, &mode, &c.SenderIdentity,
		&scheduled, &statsJSON, &status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Mode = models.CampaignMode(mode)
	c.Status = models.CampaignStatus(status)
	if scheduled.Valid {
		t := scheduled.Time
		c.ScheduledAt = &t
	}
	if len(statsJSON) > 0 {
		if err := json.Unmarshal(statsJSON, &c.Stats); err != nil {
			return nil, fmt.Errorf("unmarshal stats: %w", err)
		}
	}
	return &c, nil
}

func (s *PostgresStore) AppendRecord(ctx context.Context, r models.SendRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO send_records (
			id, campaign_id, recipient_email, business_name, website,
			subject, body, outcome, error, opened, opened_at,
			created_at, scheduled_for
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		r.ID, r.CampaignID, r.RecipientEmail, r.BusinessName, r.Website,
		r.Subject, r.Body, string(r.Outcome), r.Error, r.Opened, r.OpenedAt,
		r.CreatedAt, r.ScheduledFor,
	)
	if err != nil {
		return errors.NewStoreAppendFailedError(err)
	}
	return nil
}

func (s *PostgresStore) RecordsByCampaign(ctx context.Context, campaignID string) ([]models.SendRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, campaign_id, recipient_email, business_name, website,
		       subject, body, outcome, error, opened, opened_at,
		       created_at, scheduled_for
		FROM send_records WHERE campaign_id = $1
		ORDER BY created_at ASC`, campaignID)
	if err != nil {
		return nil, errors.NewStoreQueryFailedError(err)
	}
	defer rows.Close()

	var out []models.SendRecord
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, errors.NewStoreQueryFailedError(err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreQueryFailedError(err)
	}
	return out, nil
}

func scanRecord(row rowScanner) (*models.SendRecord, error) {
	var (
		r            models.SendRecord
		outcome      string
		openedAt     sql.NullTime
		scheduledFor sql.NullTime
	)
	err := row.Scan(&r.ID, &r.CampaignID, &r.RecipientEmail, &r.BusinessName,
		&r.Website, &r.Subject, &r.Body, &outcome, &r.Error, &r.Opened,
		&openedAt, &r.CreatedAt, &scheduledFor)
	if err != nil {
		return nil, err
	}
	r.Outcome = models.SendOutcome(outcome)
	if openedAt.Valid {
		t := openedAt.Time
		r.OpenedAt = &t
	}
	if scheduledFor.Valid {
		t := scheduledFor.Time
		r.ScheduledFor = &t
	}
	return &r, nil
}

func (s *PostgresStore) MarkOpened(ctx context.Context, recordID string, at time.Time) (*models.SendRecord, error) {
	// First call wins; the guard on opened keeps repeat callbacks no-ops.
	_, err := s.db.ExecContext(ctx, `
		UPDATE send_records SET opened = TRUE, opened_at = $2
		WHERE id = $1 AND opened = FALSE`, recordID, at)
	if err != nil {
		return nil, errors.NewStoreAppendFailedError(err)
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, campaign_id, recipient_email, business_name, website,
		       subject, body, outcome, error, opened, opened_at,
		       created_at, scheduled_for
		FROM send_records WHERE id = $1`, recordID)

	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewRecordNotFoundError(recordID)
	}
	if err != nil {
		return nil, errors.NewStoreQueryFailedError(err)
	}
	return r, nil
}
