package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rledge21/shardmart/internal/core/domain"
	"github.com/rledge21/shardmart/internal/port"
)

const (
	eventsKey           = "sync:events"
	processingKeyPrefix = "sync:processing:"
	popTimeout          = 5 * time.Second
	requeueDelay        = 2 * time.Second
)

// RedisQueue carries synchronization events through a Redis list. Publish
// pushes to the head; a consumer moves each event onto its own processing
// list before applying it, so a crash between move and ack leaves the event
// recoverable via Reclaim. Delivery is at least once and unordered; the
// applier's idempotent upserts absorb both.
type RedisQueue struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewRedisQueue(client *redis.Client, log *logrus.Logger) *RedisQueue {
	return &RedisQueue{client: client, log: log}
}

func (q *RedisQueue) Publish(ctx context.Context, ev domain.SyncEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode sync event: %w", err)
	}
	if err := q.client.LPush(ctx, eventsKey, payload).Err(); err != nil {
		return fmt.Errorf("enqueue sync event: %w", err)
	}
	return nil
}

// Consume pulls events until ctx is cancelled, handing each to applier.
// A failed event is pushed back to the tail of the queue and retried after
// a delay, keeping delivery at least once under eventual connectivity.
func (q *RedisQueue) Consume(ctx context.Context, consumerID string, applier port.EventApplier) error {
	processing := processingKeyPrefix + consumerID

	for {
		payload, err := q.client.BLMove(ctx, eventsKey, processing, "RIGHT", "LEFT", popTimeout).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("dequeue sync event: %w", err)
		}

		var ev domain.SyncEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			// An undecodable event can never be applied; drop it with a trace.
			q.log.WithError(err).Error("dropping malformed sync event")
			q.client.LRem(ctx, processing, 1, payload)
			continue
		}

		if err := applier.Apply(ctx, ev); err != nil {
			q.log.WithField("kind", ev.Kind).WithError(err).Warn("sync apply failed, requeueing event")
			q.client.RPush(ctx, eventsKey, payload)
			q.client.LRem(ctx, processing, 1, payload)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(requeueDelay):
			}
			continue
		}

		q.client.LRem(ctx, processing, 1, payload)
	}
}

// Reclaim moves events stranded on a consumer's processing list back onto
// the queue. Run it before consuming when restarting after a crash.
func (q *RedisQueue) Reclaim(ctx context.Context, consumerID string) (int, error) {
	processing := processingKeyPrefix + consumerID
	moved := 0
	for {
		_, err := q.client.LMove(ctx, processing, eventsKey, "RIGHT", "LEFT").Result()
		if errors.Is(err, redis.Nil) {
			return moved, nil
		}
		if err != nil {
			return moved, fmt.Errorf("reclaim sync events: %w", err)
		}
		moved++
	}
}
