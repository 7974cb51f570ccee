// Package store holds the injected persistence boundary of the campaign
// engine. Campaigns and send records are append-only from the orchestrator's
// perspective; the only post-creation mutation is the idempotent opened flag.
package store

import (
	"context"
	"time"

	"outreach-engine/internal/models"
)

// CampaignStore persists campaigns and their per-recipient send records.
type CampaignStore interface {
	AppendCampaign(ctx context.Context, c models.Campaign) error
	CampaignByID(ctx context.Context, id string) (*models.Campaign, error)
	CampaignsByOwner(ctx context.Context, ownerID string) ([]models.Campaign, error)

	AppendRecord(ctx context.Context, r models.SendRecord) error
	RecordsByCampaign(ctx context.Context, campaignID string) ([]models.SendRecord, error)

	// MarkOpened flips the opened flag for a record. The first call wins:
	// repeated calls return the record unchanged with the original openedAt.
	MarkOpened(ctx context.Context, recordID string, at time.Time) (*models.SendRecord, error)
}

// ActivityStore persists the per-owner transmission log.
type ActivityStore interface {
	AppendActivity(ctx context.Context, e models.ActivityEntry) error
	ActivitiesByOwner(ctx context.Context, ownerID string, limit int) ([]models.ActivityEntry, error)
}
