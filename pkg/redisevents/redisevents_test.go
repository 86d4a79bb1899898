package redisevents_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashkit/pkg/bridge"
	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/redisevents"
)

type fakePublishClient struct {
	mu       sync.Mutex
	channel  string
	messages [][]byte
	err      error
}

func (f *fakePublishClient) Publish(_ context.Context, channel string, message any) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	f.channel = channel
	f.messages = append(f.messages, message.([]byte))
	return redis.NewIntResult(2, nil)
}

type recordingEmitter struct {
	events []bridge.Event
}

func (r *recordingEmitter) Emit(_ context.Context, e bridge.Event) {
	r.events = append(r.events, e)
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    bridge.Event
		wantErr bool
	}{
		{
			name: "flash pushed",
			data: `{"name":"flash-pushed","flash":{"success":"Saved"}}`,
			want: bridge.Event{Name: bridge.EventFlash, Flash: flash.Payload{"success": "Saved"}},
		},
		{
			name: "navigation succeeded",
			data: `{"name":"navigation-succeeded","page":{"component":"Items/Index","url":"/items","flash":{"error":"Failed"}}}`,
			want: bridge.Event{Name: bridge.EventSuccess, Page: &bridge.Page{
				Component: "Items/Index",
				URL:       "/items",
				Flash:     flash.Payload{"error": "Failed"},
			}},
		},
		{name: "before navigation", data: `{"name":"before-navigation"}`, want: bridge.Event{Name: bridge.EventBefore}},
		{name: "missing name", data: `{"flash":{"success":"x"}}`, wantErr: true},
		{name: "not json", data: `flash`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := redisevents.Decode([]byte(tt.data))
			if tt.wantErr {
				assert.ErrorIs(t, err, redisevents.ErrMalformedEvent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeRejectsUnnamed(t *testing.T) {
	t.Parallel()

	_, err := redisevents.Encode(bridge.Event{})
	assert.ErrorIs(t, err, redisevents.ErrMalformedEvent)
}

func TestPublisher(t *testing.T) {
	t.Parallel()

	client := &fakePublishClient{}
	pub, err := redisevents.NewPublisher(client, "flashkit:events")
	require.NoError(t, err)

	n, err := pub.Publish(context.Background(), bridge.Event{Name: bridge.EventFlash, Flash: flash.Payload{"info": "Hi"}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.Equal(t, "flashkit:events", client.channel)
	require.Len(t, client.messages, 1)

	decoded, err := redisevents.Decode(client.messages[0])
	require.NoError(t, err)
	assert.Equal(t, flash.Payload{"info": "Hi"}, decoded.Flash)
}

func TestPublisher_Errors(t *testing.T) {
	t.Parallel()

	_, err := redisevents.NewPublisher(&fakePublishClient{}, "")
	assert.ErrorIs(t, err, redisevents.ErrEmptyChannel)

	boom := errors.New("connection reset")
	pub, err := redisevents.NewPublisher(&fakePublishClient{err: boom}, "c")
	require.NoError(t, err)

	_, err = pub.Publish(context.Background(), bridge.Event{Name: bridge.EventBefore})
	assert.ErrorIs(t, err, redisevents.ErrPublishFailed)
	assert.ErrorIs(t, err, boom)
}

func TestSubscriber_Handle(t *testing.T) {
	t.Parallel()

	emitter := &recordingEmitter{}
	sub, err := redisevents.NewSubscriber(nil, "flashkit:events", emitter,
		redisevents.WithLogger(logger.Discard()))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, sub.Handle(ctx, []byte(`{"name":"before-navigation"}`)))
	assert.ErrorIs(t, sub.Handle(ctx, []byte(`{"name":`)), redisevents.ErrMalformedEvent)
	require.NoError(t, sub.Handle(ctx, []byte(`{"name":"flash-pushed","flash":{"warning":"Low disk"}}`)))

	require.Len(t, emitter.events, 2, "malformed messages are skipped")
	assert.Equal(t, bridge.EventBefore, emitter.events[0].Name)
	assert.Equal(t, flash.Payload{"warning": "Low disk"}, emitter.events[1].Flash)
}

func TestNewSubscriber_EmptyChannel(t *testing.T) {
	t.Parallel()

	_, err := redisevents.NewSubscriber(nil, "", &recordingEmitter{})
	assert.ErrorIs(t, err, redisevents.ErrEmptyChannel)
}

func TestConnect_Errors(t *testing.T) {
	t.Parallel()

	_, err := redisevents.Connect(context.Background(), redisevents.Config{})
	assert.ErrorIs(t, err, redisevents.ErrEmptyConnectionURL)

	_, err = redisevents.Connect(context.Background(), redisevents.Config{ConnectionURL: "http://nope"})
	assert.ErrorIs(t, err, redisevents.ErrFailedToParseRedisConnString)

	_, err = redisevents.Connect(context.Background(), redisevents.Config{
		ConnectionURL:  "redis://127.0.0.1:1/0",
		RetryAttempts:  2,
		RetryInterval:  10 * time.Millisecond,
		ConnectTimeout: 2 * time.Second,
	})
	assert.ErrorIs(t, err, redisevents.ErrRedisNotReady)
}
