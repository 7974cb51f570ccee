// internal/store/activity_redis.go
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"outreach-engine/internal/common/errors"
	"outreach-engine/internal/models"
)

const activityKeyPrefix = "outreach:activity:"

// maxActivityEntries bounds the per-owner log; older entries are trimmed.
const maxActivityEntries = 1000

// RedisActivityStore keeps the per-owner transmission log in a Redis list,
// newest entry first.
type RedisActivityStore struct {
	client *redis.Client
}

func NewRedisActivityStore(client *redis.Client) *RedisActivityStore {
	return &RedisActivityStore{client: client}
}

func activityKey(ownerID string) string {
	return activityKeyPrefix + ownerID
}

func (s *RedisActivityStore) AppendActivity(ctx context.Context, e models.ActivityEntry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return errors.NewStoreAppendFailedError(fmt.Errorf("marshal activity: %w", err))
	}

	key := activityKey(e.OwnerID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, maxActivityEntries-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.NewStoreAppendFailedError(err)
	}
	return nil
}

func (s *RedisActivityStore) ActivitiesByOwner(ctx context.Context, ownerID string, limit int) ([]models.ActivityEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	raw, err := s.client.LRange(ctx, activityKey(ownerID), 0, stop).Result()
	if err != nil {
		return nil, errors.NewStoreQueryFailedError(err)
	}

	var out []models.ActivityEntry
	for _, item := range raw {
		var e models.ActivityEntry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, errors.NewStoreQueryFailedError(fmt.Errorf("unmarshal activity: %w", err))
		}
		out = append(out, e)
	}
	return out, nil
}
