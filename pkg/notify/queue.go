package notify

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrymomot/flashkit/pkg/flash"
)

// ChangeKind describes a queue mutation.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeRemoved ChangeKind = "removed"
	ChangeCleared ChangeKind = "cleared"
)

// Change is published to subscribers after every queue mutation.
// Notification is zero for ChangeCleared. Len is the queue length after the change.
type Change struct {
	Kind         ChangeKind
	Notification flash.Notification
	Len          int
}

// Recorder receives queue activity.
type Recorder interface {
	NotificationQueued(key string)
	NotificationRemoved()
	QueueLength(n int)
}

type noopRecorder struct{}

func (noopRecorder) NotificationQueued(string) {}
func (noopRecorder) NotificationRemoved()      {}
func (noopRecorder) QueueLength(int)           {}

// Queue holds notifications in insertion order until the presentation layer
// removes them. It never evicts on its own. Safe for concurrent use.
type Queue struct {
	mu       sync.RWMutex
	items    []flash.Notification
	feed     *feed
	recorder Recorder
}

func newQueue(bufferSize int, rec Recorder) *Queue {
	if rec == nil {
		rec = noopRecorder{}
	}
	return &Queue{
		feed:     newFeed(bufferSize),
		recorder: rec,
	}
}

func (q *Queue) push(n flash.Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.items = append(q.items, n)
	q.recorder.NotificationQueued(string(n.Key))
	q.recorder.QueueLength(len(q.items))
	q.feed.publish(Change{Kind: ChangeAdded, Notification: n, Len: len(q.items)})
}

// Items returns a snapshot of the queue in display order.
func (q *Queue) Items() []flash.Notification {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return slices.Clone(q.items)
}

func (q *Queue) Len() int {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return len(q.items)
}

// Get returns the queued notification with the given ID.
func (q *Queue) Get(id string) (flash.Notification, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	i := q.index(id)
	if i < 0 {
		return flash.Notification{}, false
	}
	return q.items[i], true
}

// Remove drops the notification with the given ID. It reports whether
// anything was removed.
func (q *Queue) Remove(id string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	i := q.index(id)
	if i < 0 {
		return false
	}
	n := q.items[i]
	q.items = slices.Delete(q.items, i, i+1)
	q.recorder.NotificationRemoved()
	q.recorder.QueueLength(len(q.items))
	q.feed.publish(Change{Kind: ChangeRemoved, Notification: n, Len: len(q.items)})
	return true
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return
	}
	for range q.items {
		q.recorder.NotificationRemoved()
	}
	q.items = nil
	q.recorder.QueueLength(0)
	q.feed.publish(Change{Kind: ChangeCleared})
}

// Subscribe returns a subscription to queue changes. It ends when ctx is
// cancelled, when Close is called on it, or when the queue is closed.
func (q *Queue) Subscribe(ctx context.Context) *Subscription {
	return q.feed.subscribe(ctx)
}

// Subscribers returns the number of active subscriptions.
func (q *Queue) Subscribers() int {
	return q.feed.len()
}

// Close ends all subscriptions. The queue stays readable.
func (q *Queue) Close() {
	q.feed.close()
}

func (q *Queue) index(id string) int {
	return slices.IndexFunc(q.items, func(n flash.Notification) bool {
		return n.ID == id
	})
}
