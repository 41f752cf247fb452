package wishlist

import (
	"errors"
	"time"
)

var ErrInvalidItem = errors.New("invalid wishlist item")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(userID int) ([]WishlistItem, error) {
	return s.repo.List(userID)
}

// Add saves or overwrites the item.
func (s *Service) Add(userID int, item WishlistItem) ([]WishlistItem, error) {
	if item.ID == "" || item.Price < 0 {
		return nil, ErrInvalidItem
	}
	if item.AddedAt == "" {
		item.AddedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if err := s.repo.Put(userID, item); err != nil {
		return nil, err
	}
	return s.repo.List(userID)
}

// Remove deletes the item. Removing an absent item is not an error.
func (s *Service) Remove(userID int, itemID string) ([]WishlistItem, error) {
	if err := s.repo.Remove(userID, itemID); err != nil {
		return nil, err
	}
	return s.repo.List(userID)
}
