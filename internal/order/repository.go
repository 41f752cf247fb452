package order

import (
	"errors"
	"sync"

	"github.com/lumibelle/beauty-shop-backend/internal/cart"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrTransactionFailed = errors.New("checkout transaction failed")
)

// Repository defines persistence operations for orders. CreateFromCart must
// be all-or-nothing: the order row appears and the cart rows disappear
// together, or neither happens.
type Repository interface {
	CreateFromCart(ord Order, itemIDs []string) (Order, error)
	ListByUser(userID int) ([]Order, error)
	GetByID(orderID string) (Order, error)
	UpdateFulfillment(orderID, status string, progress int, trackingNumber string, deliveryDate *string) (Order, error)
}

// InMemoryRepository is used for tests and local scenarios. It shares the
// in-memory cart repository so checkout can clear the cart the same way the
// Postgres transaction does.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
	carts  *cart.InMemoryRepository

	// FailNextCreate makes the next CreateFromCart fail without committing
	// anything, simulating a rejected batch.
	FailNextCreate bool
}

func NewInMemoryRepository(carts *cart.InMemoryRepository) *InMemoryRepository {
	return &InMemoryRepository{orders: make([]Order, 0), carts: carts}
}

func (r *InMemoryRepository) CreateFromCart(ord Order, itemIDs []string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailNextCreate {
		r.FailNextCreate = false
		return Order{}, errors.New("store rejected the batch")
	}

	for _, id := range itemIDs {
		if err := r.carts.Remove(ord.UserID, id); err != nil {
			return Order{}, err
		}
	}
	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) ListByUser(userID int) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *InMemoryRepository) GetByID(orderID string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == orderID {
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) UpdateFulfillment(orderID, status string, progress int, trackingNumber string, deliveryDate *string) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID == orderID {
			o.Status = status
			o.Progress = progress
			if trackingNumber != "" {
				o.TrackingNumber = trackingNumber
			}
			if deliveryDate != nil {
				o.DeliveryDate = deliveryDate
			}
			r.orders[i] = o
			return o, nil
		}
	}
	return Order{}, ErrNotFound
}
