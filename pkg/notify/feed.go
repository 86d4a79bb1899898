package notify

import (
	"context"
	"sync"
)

// Subscription receives queue changes. A subscriber that falls behind by
// more than its buffer is dropped and its channel closed; it should
// resubscribe and read Queue.Items to resync.
type Subscription struct {
	ch     chan Change
	closed bool
	mu     sync.RWMutex
	feed   *feed
}

// C returns the change channel. It is closed when the subscription ends.
func (s *Subscription) C() <-chan Change {
	return s.ch
}

// Close ends the subscription. It is idempotent.
func (s *Subscription) Close() {
	if s.feed != nil {
		s.feed.unsubscribe(s)
		return
	}
	s.close()
}

func (s *Subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		close(s.ch)
		s.closed = true
	}
}

func (s *Subscription) send(c Change) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return false
	}
	select {
	case s.ch <- c:
		return true
	default:
		return false
	}
}

// feed fans queue changes out to subscribers without ever blocking the queue.
type feed struct {
	subs       map[*Subscription]struct{}
	bufferSize int
	closed     bool
	done       chan struct{}
	mu         sync.RWMutex
	cleanupWg  sync.WaitGroup
}

func newFeed(bufferSize int) *feed {
	return &feed{
		subs:       make(map[*Subscription]struct{}),
		bufferSize: max(bufferSize, 1),
		done:       make(chan struct{}),
	}
}

func (f *feed) subscribe(ctx context.Context) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := &Subscription{ch: make(chan Change, f.bufferSize), feed: f}
	if f.closed {
		sub.close()
		return sub
	}
	f.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		f.cleanupWg.Add(1)
		go func() {
			defer f.cleanupWg.Done()
			select {
			case <-ctx.Done():
				f.unsubscribe(sub)
			case <-f.done:
			}
		}()
	}
	return sub
}

func (f *feed) publish(c Change) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		return
	}
	for sub := range f.subs {
		if !sub.send(c) {
			go f.unsubscribe(sub)
		}
	}
}

func (f *feed) len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}

func (f *feed) close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	close(f.done)
	for sub := range f.subs {
		sub.close()
	}
	clear(f.subs)
	f.mu.Unlock()

	f.cleanupWg.Wait()
}

func (f *feed) unsubscribe(sub *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.subs, sub)
	sub.close()
}
