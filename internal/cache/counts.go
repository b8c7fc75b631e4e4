package cache

import (
	"context"
	"time"
)

// feedTotalKey caches the total post count the feed paginator bounds
// itself by. Invalidated on post create and delete.
const feedTotalKey = "feed:total_posts"

// FeedTotalTTL bounds staleness of the cached count; a stale total only
// delays the paginator's "no more data" decision by one page.
const FeedTotalTTL = 30 * time.Second

// GetFeedTotal returns the cached total post count, or ok=false on a miss.
// A nil global client (Redis not configured) is treated as a miss.
func GetFeedTotal(ctx context.Context) (int64, bool) {
	rc := GetRedisClient()
	if rc == nil {
		return 0, false
	}
	n, err := rc.GetInt(ctx, feedTotalKey)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SetFeedTotal stores the total post count with the standard TTL.
func SetFeedTotal(ctx context.Context, total int64) {
	rc := GetRedisClient()
	if rc == nil {
		return
	}
	_ = rc.SetEx(ctx, feedTotalKey, total, FeedTotalTTL)
}

// InvalidateFeedTotal drops the cached count after a post create/delete.
func InvalidateFeedTotal(ctx context.Context) {
	rc := GetRedisClient()
	if rc == nil {
		return
	}
	_ = rc.Del(ctx, feedTotalKey)
}
