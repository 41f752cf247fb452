package stream

import (
	"testing"
	"time"
)

func TestPublishReachesSubscriber(t *testing.T) {
	b := NewBroadcaster[[]int]()
	sub := b.Subscribe(7)
	defer sub.Cancel()

	b.Publish(7, []int{1, 2})

	select {
	case got := <-sub.C:
		if len(got) != 2 {
			t.Fatalf("expected 2 elements, got %d", len(got))
		}
	case <-time.After(time.Second):
		t.Fatal("snapshot was not delivered")
	}
}

func TestPublishScopedToUser(t *testing.T) {
	b := NewBroadcaster[string]()
	mine := b.Subscribe(1)
	theirs := b.Subscribe(2)
	defer mine.Cancel()
	defer theirs.Cancel()

	b.Publish(1, "hello")

	select {
	case <-theirs.C:
		t.Fatal("snapshot leaked to another user's subscription")
	case <-time.After(50 * time.Millisecond):
	}
	select {
	case <-mine.C:
	case <-time.After(time.Second):
		t.Fatal("snapshot missing for owning user")
	}
}

func TestCoalescing(t *testing.T) {
	b := NewBroadcaster[int]()
	sub := b.Subscribe(3)
	defer sub.Cancel()

	// subscriber is not draining; only the latest snapshot must survive
	b.Publish(3, 1)
	b.Publish(3, 2)
	b.Publish(3, 3)

	got := <-sub.C
	if got != 3 {
		t.Fatalf("expected latest snapshot 3, got %d", got)
	}
}

func TestOfferNeverBlocksOnFullBuffer(t *testing.T) {
	b := NewBroadcaster[int]()
	sub := b.Subscribe(4)
	defer sub.Cancel()

	// a publish lands before the seed and fills the buffer
	b.Publish(4, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		sub.Offer(2)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Offer blocked on an undrained subscription")
	}

	if got := <-sub.C; got != 2 {
		t.Fatalf("expected offered snapshot 2 to replace 1, got %d", got)
	}
}

func TestOfferAfterCancelIsNoop(t *testing.T) {
	b := NewBroadcaster[int]()
	sub := b.Subscribe(6)
	sub.Cancel()

	sub.Offer(1) // must not panic on the closed channel
}

func TestCancelStopsDelivery(t *testing.T) {
	b := NewBroadcaster[int]()
	sub := b.Subscribe(5)
	sub.Cancel()
	sub.Cancel() // second cancel must be a no-op

	b.Publish(5, 42)

	if v, ok := <-sub.C; ok {
		t.Fatalf("expected closed channel after cancel, got %d", v)
	}
}
