package redisevents

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/flashkit/pkg/bridge"
)

// PublishClient is the subset of redis.UniversalClient the publisher uses.
type PublishClient interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Publisher sends events to a Redis channel so every subscribed process
// can relay them into its own bus.
type Publisher struct {
	client  PublishClient
	channel string
}

func NewPublisher(client PublishClient, channel string) (*Publisher, error) {
	if channel == "" {
		return nil, ErrEmptyChannel
	}
	return &Publisher{client: client, channel: channel}, nil
}

// Publish encodes e and publishes it. It returns the number of receivers
// reported by Redis.
func (p *Publisher) Publish(ctx context.Context, e bridge.Event) (int64, error) {
	data, err := Encode(e)
	if err != nil {
		return 0, err
	}
	n, err := p.client.Publish(ctx, p.channel, data).Result()
	if err != nil {
		return 0, errors.Join(ErrPublishFailed, err)
	}
	return n, nil
}
