package redisevents

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/flashkit/pkg/bridge"
	"github.com/dmitrymomot/flashkit/pkg/logger"
)

// Emitter receives relayed events. *eventbus.Bus implements it.
type Emitter interface {
	Emit(ctx context.Context, e bridge.Event)
}

// Subscriber relays events from a Redis channel into an Emitter.
type Subscriber struct {
	client  redis.UniversalClient
	channel string
	emitter Emitter
	logger  *slog.Logger
}

// SubscriberOption configures a Subscriber.
type SubscriberOption func(*Subscriber)

func WithLogger(l *slog.Logger) SubscriberOption {
	return func(s *Subscriber) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewSubscriber(client redis.UniversalClient, channel string, emitter Emitter, opts ...SubscriberOption) (*Subscriber, error) {
	if channel == "" {
		return nil, ErrEmptyChannel
	}
	s := &Subscriber{
		client:  client,
		channel: channel,
		emitter: emitter,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run subscribes and relays messages until ctx is cancelled. It returns an
// error only when the subscription cannot be established.
func (s *Subscriber) Run(ctx context.Context) error {
	pubsub := s.client.Subscribe(ctx, s.channel)
	defer func() { _ = pubsub.Close() }()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "redis event relay started",
		logger.Component("redisevents"),
		slog.String("channel", s.channel),
	)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			_ = s.Handle(ctx, []byte(msg.Payload))
		}
	}
}

// Handle decodes one message and emits it. Malformed messages are logged
// and skipped.
func (s *Subscriber) Handle(ctx context.Context, data []byte) error {
	e, err := Decode(data)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "malformed event skipped",
			logger.Component("redisevents"),
			slog.String("channel", s.channel),
			logger.Error(err),
		)
		return err
	}
	s.emitter.Emit(ctx, e)
	return nil
}
