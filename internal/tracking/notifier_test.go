package tracking

import (
	"sync"
	"testing"
)

func TestNotifier_PublishReachesSubscribers(t *testing.T) {
	n := NewNotifier()

	var got []any
	sub := n.Subscribe(TripKey("t1"), func(payload any) {
		got = append(got, payload)
	})
	defer sub.Cancel()

	n.Publish(TripKey("t1"), "first")
	n.Publish(TripKey("t1"), "second")
	n.Publish(TripKey("t2"), "other trip")

	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("got %v, want [first second]", got)
	}
}

func TestNotifier_CancelStopsDelivery(t *testing.T) {
	n := NewNotifier()

	count := 0
	sub := n.Subscribe(BookingKey("b1"), func(any) { count++ })

	n.Publish(BookingKey("b1"), 1)
	sub.Cancel()
	n.Publish(BookingKey("b1"), 2)

	if count != 1 {
		t.Errorf("handler ran %d times, want 1", count)
	}
	if n.SubscriberCount(BookingKey("b1")) != 0 {
		t.Error("canceled subscription still registered")
	}

	// Cancel is idempotent
	sub.Cancel()
}

func TestNotifier_MultipleSubscribersSameKey(t *testing.T) {
	n := NewNotifier()

	a, b := 0, 0
	subA := n.Subscribe(TripKey("t1"), func(any) { a++ })
	subB := n.Subscribe(TripKey("t1"), func(any) { b++ })

	n.Publish(TripKey("t1"), "x")
	if a != 1 || b != 1 {
		t.Errorf("fanout miss: a=%d b=%d", a, b)
	}

	subA.Cancel()
	n.Publish(TripKey("t1"), "y")
	if a != 1 || b != 2 {
		t.Errorf("after cancel: a=%d b=%d, want 1, 2", a, b)
	}
	subB.Cancel()
}

func TestNotifier_ConcurrentPublishAndSubscribe(t *testing.T) {
	n := NewNotifier()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := n.Subscribe(TripKey("t1"), func(any) {})
			n.Publish(TripKey("t1"), "payload")
			sub.Cancel()
		}()
	}
	wg.Wait()

	if c := n.SubscriberCount(TripKey("t1")); c != 0 {
		t.Errorf("leaked %d subscriptions", c)
	}
}
