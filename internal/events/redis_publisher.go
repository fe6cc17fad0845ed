package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AimalShah/BarterDash-sub004/utils"
)

// RedisPublisher mirrors every event onto a per-stream Redis Pub/Sub channel
// ("auction_events:{streamID}") so out-of-process broadcasters can fan them
// out to viewers. Delivery is best effort; the in-process bus stays the
// source of truth.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher connects to Redis and verifies the connection
func NewRedisPublisher(addr, password string, db int) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis at %s: %w", addr, err)
	}

	return &RedisPublisher{client: client}, nil
}

// Handle publishes the event asynchronously; it satisfies events.Handler
func (p *RedisPublisher) Handle(e Event) {
	if e.StreamID == "" {
		return
	}
	go func() {
		payload, err := json.Marshal(e)
		if err != nil {
			utils.Error("failed to marshal event for redis", map[string]any{"type": string(e.Type), "error": err.Error()})
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		channel := fmt.Sprintf("auction_events:%s", e.StreamID)
		if err := p.client.Publish(ctx, channel, payload).Err(); err != nil {
			utils.Error("failed to publish event to redis", map[string]any{"channel": channel, "error": err.Error()})
		}
	}()
}

// Close releases the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
