package bridge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashkit/pkg/bridge"
	"github.com/dmitrymomot/flashkit/pkg/eventbus"
	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/logger"
	"github.com/dmitrymomot/flashkit/pkg/notify"
)

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) FlashEvent(event, result string) { m.Called(event, result) }

func setup(t *testing.T, o notify.Overrides, opts ...bridge.Option) (*bridge.Bridge, *notify.Notifier) {
	t.Helper()
	n := notify.New(o, nil, notify.WithLogger(logger.Discard()))
	t.Cleanup(n.Close)
	opts = append([]bridge.Option{bridge.WithLogger(logger.Discard())}, opts...)
	return bridge.New(n, opts...), n
}

func texts(n *notify.Notifier) []string {
	var out []string
	for _, item := range n.Queue().Items() {
		out = append(out, item.Text)
	}
	return out
}

func TestBridge_SuccessQueuesInKeyOrder(t *testing.T) {
	t.Parallel()

	b, n := setup(t, notify.Overrides{})

	queued := b.Success(context.Background(), &bridge.Page{
		Flash: flash.Payload{"info": "Reviewed", "success": "Saved"},
	})

	assert.Equal(t, 2, queued)
	items := n.Queue().Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Saved", items[0].Text)
	assert.Equal(t, "success", items[0].Color)
	assert.Equal(t, "Reviewed", items[1].Text)
	assert.Equal(t, "info", items[1].Color)
}

func TestBridge_SuccessSkipsNilAndUnknownKeys(t *testing.T) {
	t.Parallel()

	b, n := setup(t, notify.Overrides{})

	queued := b.Success(context.Background(), &bridge.Page{
		Flash: flash.Payload{"success": nil, "error": "Failed", "debug": "hidden"},
	})

	assert.Equal(t, 1, queued)
	assert.Equal(t, []string{"Failed"}, texts(n))
}

func TestBridge_SuccessIgnoresEmpty(t *testing.T) {
	t.Parallel()

	b, n := setup(t, notify.Overrides{})
	ctx := context.Background()

	assert.Zero(t, b.Success(ctx, nil))
	assert.Zero(t, b.Success(ctx, &bridge.Page{URL: "/"}))
	assert.Zero(t, b.Success(ctx, &bridge.Page{Flash: flash.Payload{}}))
	assert.Zero(t, n.Queue().Len())
}

func TestBridge_SuccessDeduplicates(t *testing.T) {
	t.Parallel()

	b, n := setup(t, notify.Overrides{})
	ctx := context.Background()

	assert.Equal(t, 1, b.Success(ctx, &bridge.Page{Flash: flash.Payload{"success": "Saved"}}))
	assert.Zero(t, b.Success(ctx, &bridge.Page{Flash: flash.Payload{"success": "Saved"}}))
	assert.Equal(t, []string{"Saved"}, texts(n))

	assert.Equal(t, 1, b.Success(ctx, &bridge.Page{Flash: flash.Payload{"success": "Saved again"}}))
	assert.Equal(t, 1, b.Success(ctx, &bridge.Page{Flash: flash.Payload{"success": "Saved"}}),
		"only the immediately preceding payload is remembered")
	assert.Len(t, texts(n), 3)
}

func TestBridge_DedupIgnoresKeyOrder(t *testing.T) {
	t.Parallel()

	b, n := setup(t, notify.Overrides{})
	ctx := context.Background()

	b.Success(ctx, &bridge.Page{Flash: flash.Payload{
		"warning": map[string]any{"message": "Careful", "timeout": 1000},
	}})
	b.Success(ctx, &bridge.Page{Flash: flash.Payload{
		"warning": map[string]any{"timeout": 1000, "message": "Careful"},
	}})

	assert.Equal(t, 1, n.Queue().Len())
}

func TestBridge_BeforeResetsDedup(t *testing.T) {
	t.Parallel()

	b, n := setup(t, notify.Overrides{})
	ctx := context.Background()
	page := &bridge.Page{Flash: flash.Payload{"error": "Failed"}}

	b.Before(ctx)
	b.Success(ctx, page)
	b.Before(ctx)
	b.Success(ctx, page)

	assert.Equal(t, []string{"Failed", "Failed"}, texts(n))
}

func TestBridge_FlashNeverDeduplicates(t *testing.T) {
	t.Parallel()

	b, n := setup(t, notify.Overrides{})
	ctx := context.Background()
	payload := flash.Payload{"notification": "Ping"}

	assert.Equal(t, 1, b.Flash(ctx, payload))
	assert.Equal(t, 1, b.Flash(ctx, payload))
	assert.Zero(t, b.Flash(ctx, nil))

	assert.Equal(t, []string{"Ping", "Ping"}, texts(n))
	assert.Empty(t, n.Queue().Items()[0].Color, "notification has no default color")
}

func TestBridge_FlashDoesNotAffectSuccessDedup(t *testing.T) {
	t.Parallel()

	b, n := setup(t, notify.Overrides{})
	ctx := context.Background()
	payload := flash.Payload{"success": "Saved"}

	b.Success(ctx, &bridge.Page{Flash: payload})
	b.Flash(ctx, payload)
	b.Success(ctx, &bridge.Page{Flash: payload})

	assert.Equal(t, 2, n.Queue().Len())
}

func TestBridge_CustomFlashKeys(t *testing.T) {
	t.Parallel()

	b, n := setup(t, notify.Overrides{
		FlashKeys: []flash.Key{"alert"},
		ColorMap:  map[string]string{"alert": "deep-orange"},
	})

	queued := b.Success(context.Background(), &bridge.Page{
		Flash: flash.Payload{"alert": "Heads up", "success": "ignored"},
	})

	assert.Equal(t, 1, queued)
	items := n.Queue().Items()
	require.Len(t, items, 1)
	assert.Equal(t, "deep-orange", items[0].Color)
}

func TestBridge_Handle(t *testing.T) {
	t.Parallel()

	b, n := setup(t, notify.Overrides{})
	ctx := context.Background()

	assert.Zero(t, b.Handle(ctx, bridge.Event{Name: bridge.EventBefore}))
	assert.Equal(t, 1, b.Handle(ctx, bridge.Event{
		Name: bridge.EventSuccess,
		Page: &bridge.Page{Flash: flash.Payload{"success": "Saved"}},
	}))
	assert.Equal(t, 1, b.Handle(ctx, bridge.Event{
		Name:  bridge.EventFlash,
		Flash: flash.Payload{"info": "Pushed"},
	}))
	assert.Zero(t, b.Handle(ctx, bridge.Event{Name: "unknown", Flash: flash.Payload{"info": "x"}}))

	assert.Equal(t, []string{"Saved", "Pushed"}, texts(n))
}

func TestBridge_AttachDetach(t *testing.T) {
	t.Parallel()

	bus := eventbus.New()
	b, n := setup(t, notify.Overrides{})
	ctx := context.Background()

	b.Attach(bus)
	assert.Equal(t, 1, bus.Len(bridge.EventBefore))
	assert.Equal(t, 1, bus.Len(bridge.EventSuccess))
	assert.Equal(t, 1, bus.Len(bridge.EventFlash))

	bus.Emit(ctx, bridge.Event{Name: bridge.EventBefore})
	bus.Emit(ctx, bridge.Event{Name: bridge.EventSuccess, Page: &bridge.Page{Flash: flash.Payload{"success": "Saved"}}})
	assert.Equal(t, 1, n.Queue().Len())

	b.Detach()
	assert.Zero(t, bus.Len(bridge.EventBefore))
	assert.Zero(t, bus.Len(bridge.EventSuccess))
	assert.Zero(t, bus.Len(bridge.EventFlash))

	bus.Emit(ctx, bridge.Event{Name: bridge.EventFlash, Flash: flash.Payload{"info": "late"}})
	assert.Equal(t, 1, n.Queue().Len())

	b.Detach()
}

func TestBridge_Recorder(t *testing.T) {
	t.Parallel()

	rec := new(MockRecorder)
	rec.On("FlashEvent", bridge.EventBefore, bridge.ResultReset).Once()
	rec.On("FlashEvent", bridge.EventSuccess, bridge.ResultProcessed).Once()
	rec.On("FlashEvent", bridge.EventSuccess, bridge.ResultDeduplicated).Once()
	rec.On("FlashEvent", bridge.EventSuccess, bridge.ResultEmpty).Once()
	rec.On("FlashEvent", bridge.EventFlash, bridge.ResultProcessed).Once()

	b, _ := setup(t, notify.Overrides{}, bridge.WithRecorder(rec))
	ctx := context.Background()
	page := &bridge.Page{Flash: flash.Payload{"success": "Saved"}}

	b.Before(ctx)
	b.Success(ctx, page)
	b.Success(ctx, page)
	b.Success(ctx, &bridge.Page{})
	b.Flash(ctx, flash.Payload{"info": "x"})

	rec.AssertExpectations(t)
}

func TestKnown(t *testing.T) {
	t.Parallel()

	assert.True(t, bridge.Known(bridge.EventBefore))
	assert.True(t, bridge.Known(bridge.EventSuccess))
	assert.True(t, bridge.Known(bridge.EventFlash))
	assert.False(t, bridge.Known("navigate"))
	assert.False(t, bridge.Known(""))
}
