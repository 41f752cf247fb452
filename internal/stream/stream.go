package stream

import "sync"

// Broadcaster fans out snapshots to any number of subscribers. Rapid
// publishes may coalesce: a slow subscriber skips intermediate snapshots
// but always observes the latest one. Subscribers are keyed per user so a
// cart update only wakes listeners for that user.
type Broadcaster[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*Subscription[T]
}

// Subscription is a live feed of snapshots. C delivers them; Cancel must be
// called when the owning scope is torn down or the subscription leaks.
type Subscription[T any] struct {
	C      chan T
	id     int
	userID int
	b      *Broadcaster[T]
	once   sync.Once
}

func NewBroadcaster[T any]() *Broadcaster[T] {
	return &Broadcaster[T]{subs: make(map[int]*Subscription[T])}
}

// Subscribe registers a listener for snapshots belonging to userID.
func (b *Broadcaster[T]) Subscribe(userID int) *Subscription[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription[T]{
		C:      make(chan T, 1),
		id:     b.nextID,
		userID: userID,
		b:      b,
	}
	b.subs[sub.id] = sub
	return sub
}

// Publish delivers a snapshot to every subscriber for userID. Delivery never
// blocks: if a subscriber has not drained the previous snapshot it is
// replaced, so only the freshest state is kept.
func (b *Broadcaster[T]) Publish(userID int, snapshot T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs {
		if sub.userID != userID {
			continue
		}
		deliver(sub.C, snapshot)
	}
}

// Offer hands the subscription a snapshot with the same never-block,
// freshest-wins delivery Publish uses. Seeding goes through here: a publish
// landing between Subscribe and the seed may already fill the buffer, and a
// plain send would park the caller forever.
func (s *Subscription[T]) Offer(snapshot T) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()
	if _, ok := s.b.subs[s.id]; !ok {
		return
	}
	deliver(s.C, snapshot)
}

func deliver[T any](c chan T, snapshot T) {
	select {
	case c <- snapshot:
	default:
		select {
		case <-c:
		default:
		}
		select {
		case c <- snapshot:
		default:
		}
	}
}

// Cancel removes the subscription and closes its channel. Safe to call more
// than once; after it returns no further snapshots are delivered.
func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		s.b.mu.Lock()
		delete(s.b.subs, s.id)
		s.b.mu.Unlock()
		close(s.C)
	})
}
