package tracking

import "sync"

// Handler receives one published payload. Handlers run on the publisher's
// goroutine and must not block.
type Handler func(payload any)

// Notifier is an in-process fanout keyed by channel name. Delivery is
// at-least-once to live subscribers; ordering across distinct keys is not
// guaranteed.
type Notifier struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string]map[uint64]Handler
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[string]map[uint64]Handler)}
}

// TripKey is the channel for one trip's updates.
func TripKey(tripID string) string { return "trip:" + tripID }

// BookingKey is the channel for a booking's full leg set.
func BookingKey(bookingID string) string { return "booking:" + bookingID }

// Subscribe registers a handler on a channel. The returned Subscription is
// caller-owned: teardown happens only through Cancel.
func (n *Notifier) Subscribe(key string, h Handler) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	if n.subs[key] == nil {
		n.subs[key] = make(map[uint64]Handler)
	}
	n.subs[key][id] = h

	return &Subscription{notifier: n, key: key, id: id}
}

// Publish delivers a payload to every subscriber of the channel.
func (n *Notifier) Publish(key string, payload any) {
	n.mu.RLock()
	handlers := make([]Handler, 0, len(n.subs[key]))
	for _, h := range n.subs[key] {
		handlers = append(handlers, h)
	}
	n.mu.RUnlock()

	for _, h := range handlers {
		h(payload)
	}
}

// SubscriberCount reports how many handlers a channel currently has.
func (n *Notifier) SubscriberCount(key string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.subs[key])
}

func (n *Notifier) unsubscribe(key string, id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.subs[key], id)
	if len(n.subs[key]) == 0 {
		delete(n.subs, key)
	}
}

// Subscription is a handle on one registered handler.
type Subscription struct {
	notifier *Notifier
	key      string
	id       uint64
	once     sync.Once
}

// Cancel removes the subscription. Safe to call more than once.
func (s *Subscription) Cancel() {
	s.once.Do(func() { s.notifier.unsubscribe(s.key, s.id) })
}
