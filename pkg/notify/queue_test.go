package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flashkit/pkg/flash"
	"github.com/dmitrymomot/flashkit/pkg/notify"
)

func receive(t *testing.T, sub *notify.Subscription) notify.Change {
	t.Helper()
	select {
	case c, ok := <-sub.C():
		require.True(t, ok, "subscription closed unexpectedly")
		return c
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for queue change")
		return notify.Change{}
	}
}

func TestQueue_RemoveAndGet(t *testing.T) {
	t.Parallel()

	n := newTestNotifier(t, notify.Overrides{})
	ctx := context.Background()
	a, _ := n.Notify(ctx, "a", flash.KeyInfo)
	b, _ := n.Notify(ctx, "b", flash.KeyInfo)
	c, _ := n.Notify(ctx, "c", flash.KeyInfo)

	q := n.Queue()
	got, ok := q.Get(b.ID)
	require.True(t, ok)
	assert.Equal(t, "b", got.Text)

	assert.True(t, q.Remove(b.ID))
	assert.False(t, q.Remove(b.ID))

	items := q.Items()
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, c.ID, items[1].ID)

	_, ok = q.Get(b.ID)
	assert.False(t, ok)
}

func TestQueue_ItemsIsSnapshot(t *testing.T) {
	t.Parallel()

	n := newTestNotifier(t, notify.Overrides{})
	_, _ = n.Notify(context.Background(), "a", flash.KeyInfo)

	items := n.Queue().Items()
	items[0].Text = "changed"
	assert.Equal(t, "a", n.Queue().Items()[0].Text)
}

func TestQueue_Subscribe(t *testing.T) {
	t.Parallel()

	n := newTestNotifier(t, notify.Overrides{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := n.Queue().Subscribe(ctx)
	defer sub.Close()

	added, _ := n.Notify(ctx, "hello", flash.KeySuccess)
	change := receive(t, sub)
	assert.Equal(t, notify.ChangeAdded, change.Kind)
	assert.Equal(t, added.ID, change.Notification.ID)
	assert.Equal(t, 1, change.Len)

	n.Queue().Remove(added.ID)
	change = receive(t, sub)
	assert.Equal(t, notify.ChangeRemoved, change.Kind)
	assert.Equal(t, 0, change.Len)

	_, _ = n.Notify(ctx, "x", flash.KeyInfo)
	_ = receive(t, sub)
	n.Queue().Clear()
	change = receive(t, sub)
	assert.Equal(t, notify.ChangeCleared, change.Kind)
	assert.Zero(t, n.Queue().Len())
}

func TestQueue_ClearEmptyPublishesNothing(t *testing.T) {
	t.Parallel()

	n := newTestNotifier(t, notify.Overrides{})
	sub := n.Queue().Subscribe(context.Background())
	defer sub.Close()

	n.Queue().Clear()

	select {
	case c := <-sub.C():
		t.Fatalf("unexpected change %v", c.Kind)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestQueue_SubscriptionEndsWithContext(t *testing.T) {
	t.Parallel()

	n := newTestNotifier(t, notify.Overrides{})
	ctx, cancel := context.WithCancel(context.Background())
	sub := n.Queue().Subscribe(ctx)
	require.Equal(t, 1, n.Queue().Subscribers())

	cancel()

	assert.Eventually(t, func() bool { return n.Queue().Subscribers() == 0 }, time.Second, 10*time.Millisecond)
	_, open := <-sub.C()
	assert.False(t, open)
}

func TestQueue_SlowSubscriberDropped(t *testing.T) {
	t.Parallel()

	n := newTestNotifier(t, notify.Overrides{}, notify.WithSubscriberBuffer(1))
	sub := n.Queue().Subscribe(context.Background())

	ctx := context.Background()
	_, _ = n.Notify(ctx, "one", flash.KeyInfo)
	_, _ = n.Notify(ctx, "two", flash.KeyInfo)

	assert.Eventually(t, func() bool { return n.Queue().Subscribers() == 0 }, time.Second, 10*time.Millisecond)

	first, ok := <-sub.C()
	require.True(t, ok)
	assert.Equal(t, "one", first.Notification.Text)
	_, ok = <-sub.C()
	assert.False(t, ok, "channel closed after the subscriber is dropped")
	assert.Equal(t, 2, n.Queue().Len(), "queue is unaffected by slow subscribers")
}

func TestQueue_CloseEndsSubscriptions(t *testing.T) {
	t.Parallel()

	n := notify.New(notify.Overrides{}, nil)
	sub := n.Queue().Subscribe(context.Background())

	n.Close()

	_, ok := <-sub.C()
	assert.False(t, ok)

	late := n.Queue().Subscribe(context.Background())
	_, ok = <-late.C()
	assert.False(t, ok, "subscribing after close yields a closed subscription")

	sub.Close()
	n.Close()
}
