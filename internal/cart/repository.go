package cart

import (
	"errors"
	"sync"
)

var (
	ErrItemNotFound = errors.New("cart item not found")
)

// Repository provides access to cart storage. Quantities are stored as
// absolute values; clamping happens in the service.
type Repository interface {
	List(userID int) ([]CartItem, error)
	Put(userID int, item CartItem) error
	SetQuantity(userID int, itemID string, quantity int) error
	Remove(userID int, itemID string) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[int][]CartItem
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[int][]CartItem)}
}

func (r *InMemoryRepository) List(userID int) ([]CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]CartItem, len(r.items[userID]))
	copy(out, r.items[userID])
	return out, nil
}

// Put creates or overwrites the entry keyed by item.ID.
func (r *InMemoryRepository) Put(userID int, item CartItem) error {
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

func (r *InMemoryRepository) SetQuantity(userID int, itemID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.items[userID] {
		if existing.ID == itemID {
			r.items[userID][i].Quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

// Remove deletes the entry. Removing an absent item is not an error.
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

// RemoveAll clears every entry for the user. Used by the order repository's
// in-memory checkout and by the account deletion cascade in tests.
func (r *InMemoryRepository) RemoveAll(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, userID)
	return nil
}
