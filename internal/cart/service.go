package cart

import (
	"errors"

	"github.com/lumibelle/beauty-shop-backend/internal/stream"
)

var ErrInvalidProduct = errors.New("invalid product")

// Service mediates all cart mutations and pushes a fresh snapshot to
// subscribers after every confirmed write. Subscribers only ever see
// store-confirmed state, never optimistic local state.
type Service struct {
	repo Repository
	bus  *stream.Broadcaster[[]CartItem]
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, bus: stream.NewBroadcaster[[]CartItem]()}
}

func (s *Service) List(userID int) ([]CartItem, error) {
	return s.repo.List(userID)
}

// AddToCart creates or overwrites the cart entry keyed by the product's ID
// with quantity 1. A repeated add resets the quantity rather than
// incrementing it; wishlist "add to cart" relies on this set-to-one shape.
func (s *Service) AddToCart(userID int, p Product) ([]CartItem, error) {
	if p.ID == "" || p.Price < 0 {
		return nil, ErrInvalidProduct
	}
	item := CartItem{
		ID:        p.ID,
		Title:     p.Title,
		Price:     p.Price,
		Image:     p.Image,
		Quantity:  1,
		ProductID: p.ID,
	}
	if err := s.repo.Put(userID, item); err != nil {
		return nil, err
	}
	return s.publish(userID)
}

// UpdateQuantity applies a signed delta, clamped so the quantity never drops
// below 1. Removal goes through RemoveItem, not a delta.
func (s *Service) UpdateQuantity(userID int, itemID string, delta int) ([]CartItem, error) {
	items, err := s.repo.List(userID)
	if err != nil {
		return nil, err
	}
	current := -1
	for _, it := range items {
		if it.ID == itemID {
			current = it.Quantity
			break
		}
	}
	if current < 0 {
		return nil, ErrItemNotFound
	}

	newQty := current + delta
	if newQty < 1 {
		newQty = 1
	}
	if err := s.repo.SetQuantity(userID, itemID, newQty); err != nil {
		return nil, err
	}
	return s.publish(userID)
}

// RemoveItem deletes the entry. Idempotent.
func (s *Service) RemoveItem(userID int, itemID string) ([]CartItem, error) {
	if err := s.repo.Remove(userID, itemID); err != nil {
		return nil, err
	}
	return s.publish(userID)
}

// Subscribe returns a live feed of cart snapshots seeded with the current
// state. The caller must Cancel the subscription on teardown.
func (s *Service) Subscribe(userID int) (*stream.Subscription[[]CartItem], error) {
	sub := s.bus.Subscribe(userID)
	items, err := s.repo.List(userID)
	if err != nil {
		sub.Cancel()
		return nil, err
	}
	sub.Offer(items)
	return sub, nil
}

// Publish re-reads the cart and notifies subscribers. The order service
// calls this after checkout clears the cart in its own transaction.
func (s *Service) Publish(userID int) {
	s.publish(userID)
}

func (s *Service) publish(userID int) ([]CartItem, error) {
	items, err := s.repo.List(userID)
	if err != nil {
		return nil, err
	}
	s.bus.Publish(userID, items)
	return items, nil
}
