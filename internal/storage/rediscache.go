package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"jobtrail/internal/config"
)

// seenTTL bounds how long ingested message IDs are remembered. Old entries
// age out once the scan query itself no longer returns those messages.
const seenTTL = 120 * 24 * time.Hour

// ScanCache implements mailscan.ScanCache on Redis. It remembers which Gmail
// message IDs have already been ingested per user so re-scans skip them.
type ScanCache struct {
	client *redis.Client
}

// NewRedisClient builds a Redis client from configuration.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if cfg.Redis.Password != "" {
		opts.Password = cfg.Redis.Password
	}
	opts.DB = cfg.Redis.DB
	opts.DialTimeout = cfg.Redis.Timeout
	opts.ReadTimeout = cfg.Redis.Timeout
	opts.WriteTimeout = cfg.Redis.Timeout

	return redis.NewClient(opts), nil
}

// NewScanCache creates a scan cache on the given Redis client.
func NewScanCache(client *redis.Client) *ScanCache {
	return &ScanCache{client: client}
}

// Seen reports whether the message ID was already ingested for this user.
func (c *ScanCache) Seen(ctx context.Context, userID, messageID string) (bool, error) {
	n, err := c.client.Exists(ctx, seenKey(userID, messageID)).Result()
	if err != nil {
		return false, fmt.Errorf("checking seen message: %w", err)
	}
	return n > 0, nil
}

// MarkSeen remembers a processed message ID.
func (c *ScanCache) MarkSeen(ctx context.Context, userID, messageID string) error {
	if err := c.client.Set(ctx, seenKey(userID, messageID), 1, seenTTL).Err(); err != nil {
		return fmt.Errorf("marking message seen: %w", err)
	}
	return nil
}

func seenKey(userID, messageID string) string {
	return fmt.Sprintf("jobtrail:scan:seen:%s:%s", userID, messageID)
}
