package wishlist

import (
	"sync"
)

// Repository provides access to wishlist storage. Put overwrites and Remove
// is idempotent; the wishlist is freely created and destroyed by the user.
type Repository interface {
	List(userID int) ([]WishlistItem, error)
	Put(userID int, item WishlistItem) error
	Remove(userID int, itemID string) error
	RemoveAll(userID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[int][]WishlistItem
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[int][]WishlistItem)}
}

func (r *InMemoryRepository) List(userID int) ([]WishlistItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]WishlistItem, len(r.items[userID]))
	copy(out, r.items[userID])
	return out, nil
}

func (r *InMemoryRepository) Put(userID int, item WishlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.items[userID] {
		if existing.ID == item.ID {
			r.items[userID][i] = item
			return nil
		}
	}
	r.items[userID] = append(r.items[userID], item)
	return nil
}

func (r *InMemoryRepository) Remove(userID int, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.items[userID][:0]
	for _, existing := range r.items[userID] {
		if existing.ID != itemID {
			kept = append(kept, existing)
		}
	}
	r.items[userID] = kept
	return nil
}

func (r *InMemoryRepository) RemoveAll(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, userID)
	return nil
}
