// internal/store/memory.go
package store

import (
	"context"
	"sync"
	"time"

	"outreach-engine/internal/common/errors"
	"outreach-engine/internal/models"
)

// MemoryStore is an in-memory CampaignStore + ActivityStore used in tests
// and single-process development runs.
type MemoryStore struct {
	mu         sync.Mutex
	campaigns  []models.Campaign
	records    []models.SendRecord
	activities []models.ActivityEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) AppendCampaign(ctx context.Context, c models.Campaign) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.campaigns = append(m.campaigns, c)
	return nil
}

func (m *MemoryStore) CampaignByID(ctx context.Context, id string) (*models.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.campaigns {
		if m.campaigns[i].ID == id {
			c := m.campaigns[i]
			return &c, nil
		}
	}
	return nil, errors.NewRecordNotFoundError(id)
}

func (m *MemoryStore) CampaignsByOwner(ctx context.Context, ownerID string) ([]models.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Campaign
	for _, c := range m.campaigns {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MemoryStore) AppendRecord(ctx context.Context, r models.SendRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r)
	return nil
}

func (m *MemoryStore) RecordsByCampaign(ctx context.Context, campaignID string) ([]models.SendRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.SendRecord
	for _, r := range m.records {
		if r.CampaignID == campaignID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MemoryStore) MarkOpened(ctx context.Context, recordID string, at time.Time) (*models.SendRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == recordID {
			if !m.records[i].Opened {
				opened := at
				m.records[i].Opened = true
				m.records[i].OpenedAt = &opened
			}
			r := m.records[i]
			return &r, nil
		}
	}
	return nil, errors.NewRecordNotFoundError(recordID)
}

func (m *MemoryStore) AppendActivity(ctx context.Context, e models.ActivityEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities = append(m.activities, e)
	return nil
}

func (m *MemoryStore) ActivitiesByOwner(ctx context.Context, ownerID string, limit int) ([]models.ActivityEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ActivityEntry
	// newest first, matching the Redis-backed store
	for i := len(m.activities) - 1; i >= 0; i-- {
		if m.activities[i].OwnerID == ownerID {
			out = append(out, m.activities[i])
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}
