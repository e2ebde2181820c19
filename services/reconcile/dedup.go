package reconcile

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Deduper remembers which webhook event ids have already been fully
// processed. It only exists to minimize duplicate notifications; the
// conditional slot write is what actually guarantees at-most-one booking,
// so a broken Deduper degrades gracefully.
type Deduper interface {
	// Seen reports whether the event id was already processed.
	Seen(ctx context.Context, eventID string) (bool, error)
	// Mark records the event id as processed. Called only after the slot
	// transition committed, so a failed delivery stays retryable.
	Mark(ctx context.Context, eventID string) error
}

// RedisDeduper stores processed event ids with a TTL; Stripe does not
// retry deliveries older than that.
type RedisDeduper struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisDeduper(client *redis.Client) *RedisDeduper {
	return &RedisDeduper{Client: client, TTL: 24 * time.Hour}
}

func dedupKey(eventID string) string {
	return "webhook:event:" + eventID
}

func (d *RedisDeduper) Seen(ctx context.Context, eventID string) (bool, error) {
	err := d.Client.Get(ctx, dedupKey(eventID)).Err()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *RedisDeduper) Mark(ctx context.Context, eventID string) error {
	return d.Client.Set(ctx, dedupKey(eventID), "1", d.TTL).Err()
}
