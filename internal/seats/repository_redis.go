package seats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"seatboard/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const (
	redisSeatsKey      = "seatboard:seats"
	redisChangeChannel = "seatboard:seats:changed"
)

// redisRepository keeps the collection in a single hash: field is the
// stringified seat id, value is the JSON document. Every save publishes
// on a change channel; the subscription reloads the full hash and
// pushes a snapshot, mirroring a shared live-updating document store.
type redisRepository struct {
	client    *redis.Client
	pubsub    *redis.PubSub
	snapshots chan []Seat
	done      chan struct{}
}

// NewRedisRepository connects the change-feed subscription. If the
// subscription cannot be confirmed the repository still works for
// loads and saves, but without live updates from other writers.
func NewRedisRepository(client *redis.Client) Repository {
	r := &redisRepository{
		client: client,
		done:   make(chan struct{}),
	}

	pubsub := client.Subscribe(context.Background(), redisChangeChannel)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := pubsub.Receive(ctx); err != nil {
		logger.GetDefault().Warn("redis subscription unavailable, continuing without live updates",
			slog.String("channel", redisChangeChannel),
			slog.Any("error", err),
		)
		_ = pubsub.Close()
		return r
	}

	r.pubsub = pubsub
	r.snapshots = make(chan []Seat, 1)
	go r.watch()
	return r
}

func (r *redisRepository) Load(ctx context.Context) ([]Seat, error) {
	entries, err := r.client.HGetAll(ctx, redisSeatsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load seats from redis: %w", err)
	}

	seats := make([]Seat, 0, len(entries))
	for field, raw := range entries {
		var seat Seat
		if err := json.Unmarshal([]byte(raw), &seat); err != nil {
			return nil, fmt.Errorf("corrupt seat document %s: %w", field, err)
		}
		seats = append(seats, seat)
	}
	return seats, nil
}

func (r *redisRepository) Save(ctx context.Context, seat Seat) error {
	raw, err := json.Marshal(seat)
	if err != nil {
		return fmt.Errorf("failed to marshal seat %d: %w", seat.ID, err)
	}

	field := strconv.Itoa(seat.ID)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, redisSeatsKey, field, raw)
	pipe.Publish(ctx, redisChangeChannel, field)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save seat %d to redis: %w", seat.ID, err)
	}
	return nil
}

func (r *redisRepository) Snapshots() <-chan []Seat {
	return r.snapshots
}

// watch turns change notifications into full-collection snapshots. A
// reload that fails is logged and skipped; the next notification tries
// again.
func (r *redisRepository) watch() {
	defer close(r.snapshots)

	for {
		select {
		case <-r.done:
			return
		case msg, ok := <-r.pubsub.Channel():
			if !ok {
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			seats, err := r.Load(ctx)
			cancel()
			if err != nil {
				logger.GetDefault().Warn("failed to reload seats after change notification",
					slog.String("changed_seat", msg.Payload),
					slog.Any("error", err),
				)
				continue
			}

			select {
			case r.snapshots <- seats:
			case <-r.done:
				return
			}
		}
	}
}

func (r *redisRepository) Close(ctx context.Context) error {
	close(r.done)
	if r.pubsub != nil {
		if err := r.pubsub.Close(); err != nil {
			return fmt.Errorf("failed to close redis subscription: %w", err)
		}
	}
	return nil
}
