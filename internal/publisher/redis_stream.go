// Package publisher pushes game updates onto Redis streams for the
// websocket relay and any other downstream consumer.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LiveStream returns the live-update stream name for a league.
func LiveStream(league string) string {
	return fmt.Sprintf("courtside.live.%s", league)
}

// StatsStream returns the final-stats stream name for a league.
func StatsStream(league string) string {
	return fmt.Sprintf("courtside.stats.%s", league)
}

// RedisStreamPublisher publishes events to per-league Redis streams.
type RedisStreamPublisher struct {
	client *redis.Client
}

// NewRedisStreamPublisher creates a publisher on an existing client.
func NewRedisStreamPublisher(client *redis.Client) *RedisStreamPublisher {
	return &RedisStreamPublisher{client: client}
}

// PublishLiveUpdate publishes a live game update to the league's stream.
func (p *RedisStreamPublisher) PublishLiveUpdate(ctx context.Context, league string, payload interface{}) error {
	return p.publish(ctx, LiveStream(league), payload)
}

// PublishFinalStats publishes a completed game's stats to the league's
// stream.
func (p *RedisStreamPublisher) PublishFinalStats(ctx context.Context, league string, payload interface{}) error {
	return p.publish(ctx, StatsStream(league), payload)
}

func (p *RedisStreamPublisher) publish(ctx context.Context, stream string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling stream payload: %w", err)
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: 1000,
		Approx: true,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
