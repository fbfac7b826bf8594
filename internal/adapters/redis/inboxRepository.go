package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const inboxPrefix = "notifications:"

// InboxRepositoryRedis keeps each user's notification ids in a sorted set
// scored by delivery time.
type InboxRepositoryRedis struct {
	Client *redis.Client
	Logger *zap.Logger
}

func NewInboxRepositoryRedis(client *redis.Client, logger *zap.Logger) *InboxRepositoryRedis {
	return &InboxRepositoryRedis{
		Client: client,
		Logger: logger,
	}
}

func inboxKey(userID string) string {
	return inboxPrefix + userID
}

// Push adds notificationID to the inbox of userID.
func (r *InboxRepositoryRedis) Push(ctx context.Context, userID, notificationID string, at time.Time) error {
	key := inboxKey(userID)
	z := &redis.Z{
		Score:  float64(at.UnixMilli()),
		Member: notificationID,
	}
	if err := r.Client.ZAdd(ctx, key, z).Err(); err != nil {
		return err
	}

	r.Logger.Debug("Added notification to inbox", zap.String("notificationID", notificationID), zap.String("inboxKey", key))
	return nil
}

// Range returns up to limit ids, newest first, skipping the first start entries.
func (r *InboxRepositoryRedis) Range(ctx context.Context, userID string, start, limit int64) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	return r.Client.ZRevRange(ctx, inboxKey(userID), start, start+limit-1).Result()
}
