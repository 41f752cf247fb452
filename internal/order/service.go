package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lumibelle/beauty-shop-backend/internal/cart"
	"github.com/lumibelle/beauty-shop-backend/internal/handoff"
	"github.com/lumibelle/beauty-shop-backend/internal/stream"
)

// CartSource is the slice of the cart service checkout needs: the current
// items and a way to tell cart subscribers the cart was cleared.
type CartSource interface {
	List(userID int) ([]cart.CartItem, error)
	Publish(userID int)
}

// Notifier forwards a committed order to the fulfillment pipeline.
// Best-effort: a failure is logged and never affects the order.
type Notifier interface {
	OrderCreated(ord Order) error
}

// Service owns the cart-to-order transition and the delivery lifecycle view.
type Service struct {
	repo     Repository
	carts    CartSource
	notifier Notifier
	phone    string
	bus      *stream.Broadcaster[[]Order]
}

func NewService(repo Repository, carts CartSource, notifier Notifier, whatsAppPhone string) *Service {
	return &Service{
		repo:     repo,
		carts:    carts,
		notifier: notifier,
		phone:    whatsAppPhone,
		bus:      stream.NewBroadcaster[[]Order](),
	}
}

// Checkout promotes the user's cart into an order: one transaction creates
// the order row and deletes every cart row, then the hand-off link and the
// subscriber/fulfillment notifications happen strictly after the commit.
// On failure nothing is committed and the cart is left intact for retry.
func (s *Service) Checkout(userID int, name, email string) (Order, string, error) {
	items, err := s.carts.List(userID)
	if err != nil {
		return Order{}, "", err
	}
	if len(items) == 0 {
		return Order{}, "", ErrEmptyCart
	}

	subtotal := 0.0
	lines := make([]LineItem, 0, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		subtotal += it.Price * float64(it.Quantity)
		lines = append(lines, LineItem{
			ID:        it.ID,
			Title:     it.Title,
			Price:     it.Price,
			Image:     it.Image,
			Quantity:  it.Quantity,
			ProductID: it.ProductID,
		})
		ids = append(ids, it.ID)
	}

	now := time.Now().UTC()
	ord := Order{
		ID:                uuid.NewString(),
		UserID:            userID,
		Items:             lines,
		Subtotal:          subtotal,
		ShippingFee:       0,
		Total:             subtotal,
		Status:            "pending",
		Progress:          0,
		CreatedAt:         now.Format(time.RFC3339),
		EstimatedDelivery: now.AddDate(0, 0, 7).Format(time.RFC3339),
	}

	created, err := s.repo.CreateFromCart(ord, ids)
	if err != nil {
		return Order{}, "", fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	// everything below is post-commit and best-effort
	s.carts.Publish(userID)
	s.publish(userID)

	if s.notifier != nil {
		if err := s.notifier.OrderCreated(created); err != nil {
			fmt.Printf("warning: order %s not forwarded to fulfillment: %v\n", created.ID, err)
		}
	}

	summaryItems := make([]handoff.Item, 0, len(created.Items))
	for _, li := range created.Items {
		summaryItems = append(summaryItems, handoff.Item{Title: li.Title, Price: li.Price, Quantity: li.Quantity})
	}
	url := handoff.URL(s.phone, handoff.Summary(summaryItems, created.Total, name, email))

	return created, url, nil
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

// Subscribe returns a live feed of the user's orders seeded with the
// current state. The caller must Cancel the subscription on teardown.
func (s *Service) Subscribe(userID int) (*stream.Subscription[[]Order], error) {
	sub := s.bus.Subscribe(userID)
	orders, err := s.repo.ListByUser(userID)
	if err != nil {
		sub.Cancel()
		return nil, err
	}
	sub.Offer(orders)
	return sub, nil
}

// ApplyFulfillment records a delivery-progress update from the out-of-band
// fulfillment writer and notifies subscribers. Status and progress are
// stored as received; nothing cross-checks them against each other.
func (s *Service) ApplyFulfillment(orderID, status string, progress int, trackingNumber string, deliveryDate *string) (Order, error) {
	if progress < 0 || progress > 3 {
		return Order{}, fmt.Errorf("progress %d outside 0..3", progress)
	}
	ord, err := s.repo.UpdateFulfillment(orderID, status, progress, trackingNumber, deliveryDate)
	if err != nil {
		return Order{}, err
	}
	s.publish(ord.UserID)
	return ord, nil
}

func (s *Service) publish(userID int) {
	orders, err := s.repo.ListByUser(userID)
	if err != nil {
		fmt.Printf("warning: could not load orders for user %d: %v\n", userID, err)
		return
	}
	s.bus.Publish(userID, orders)
}
