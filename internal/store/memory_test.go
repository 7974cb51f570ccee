// internal/store/memory_test.go
package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outreach-engine/internal/models"
)

func TestMemoryStore_Campaigns(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.AppendCampaign(ctx, models.Campaign{ID: "c1", OwnerID: "o1", Name: "first"}))
	require.NoError(t, s.AppendCampaign(ctx, models.Campaign{ID: "c2", OwnerID: "o1", Name: "second"}))
	require.NoError(t, s.AppendCampaign(ctx, models.Campaign{ID: "c3", OwnerID: "o2", Name: "other owner"}))

	c, err := s.CampaignByID(ctx, "c2")
	require.NoError(t, err)
	assert.Equal(t, "second", c.Name)

	_, err = s.CampaignByID(ctx, "missing")
	require.Error(t, err)

	owned, err := s.CampaignsByOwner(ctx, "o1")
	require.NoError(t, err)
	assert.Len(t, owned, 2)
}

func TestMemoryStore_Records(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.AppendRecord(ctx, models.SendRecord{
			ID:         fmt.Sprintf("r%d", i),
			CampaignID: "c1",
			Outcome:    models.OutcomeSent,
		}))
	}
	require.NoError(t, s.AppendRecord(ctx, models.SendRecord{ID: "other", CampaignID: "c2"}))

	records, err := s.RecordsByCampaign(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestMemoryStore_MarkOpenedFirstCallWins(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, s.AppendRecord(ctx, models.SendRecord{ID: "r1", CampaignID: "c1", Outcome: models.OutcomeSent}))

	first := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	r, err := s.MarkOpened(ctx, "r1", first)
	require.NoError(t, err)
	assert.True(t, r.Opened)
	require.NotNil(t, r.OpenedAt)
	assert.Equal(t, first, *r.OpenedAt)

	// A later signal does not move the timestamp.
	r, err = s.MarkOpened(ctx, "r1", first.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, first, *r.OpenedAt)

	_, err = s.MarkOpened(ctx, "missing", first)
	require.Error(t, err)
}

func TestMemoryStore_ActivitiesNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.AppendActivity(ctx, models.ActivityEntry{
			ID:      fmt.Sprintf("a%d", i),
			OwnerID: "o1",
			Kind:    models.ActivitySendOK,
		}))
	}
	require.NoError(t, s.AppendActivity(ctx, models.ActivityEntry{ID: "other", OwnerID: "o2"}))

	entries, err := s.ActivitiesByOwner(ctx, "o1", 0)
	require.NoError(t, err)
	require.Len(t, entries, 5)
	assert.Equal(t, "a4", entries[0].ID)
	assert.Equal(t, "a0", entries[4].ID)

	limited, err := s.ActivitiesByOwner(ctx, "o1", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "a4", limited[0].ID)
}
