package order

import (
	"errors"
	"strings"
	"testing"

	"github.com/lumibelle/beauty-shop-backend/internal/cart"
)

type recordingNotifier struct {
	created []Order
	fail    bool
}

func (n *recordingNotifier) OrderCreated(ord Order) error {
	if n.fail {
		return errors.New("broker down")
	}
	n.created = append(n.created, ord)
	return nil
}

func newCheckoutFixture(t *testing.T) (*Service, *cart.Service, *InMemoryRepository, *recordingNotifier) {
	t.Helper()
	cartRepo := cart.NewInMemoryRepository()
	cartService := cart.NewService(cartRepo)
	orderRepo := NewInMemoryRepository(cartRepo)
	notifier := &recordingNotifier{}
	svc := NewService(orderRepo, cartService, notifier, "12033900003")
	return svc, cartService, orderRepo, notifier
}

func TestCheckout_Success(t *testing.T) {
	svc, carts, _, notifier := newCheckoutFixture(t)

	carts.AddToCart(1, cart.Product{ID: "a", Title: "Serum", Price: 10})
	carts.UpdateQuantity(1, "a", 1) // quantity 2
	carts.AddToCart(1, cart.Product{ID: "b", Title: "Gloss", Price: 5})

	ord, url, err := svc.Checkout(1, "Ava", "ava@example.com")
	if err != nil {
		t.Fatal(err)
	}

	if ord.Total != 25.00 {
		t.Fatalf("expected total 25.00, got %v", ord.Total)
	}
	if ord.Status != "pending" {
		t.Fatalf("expected status pending, got %q", ord.Status)
	}
	if len(ord.Items) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(ord.Items))
	}
	if ord.ID == "" || ord.UserID != 1 || ord.Progress != 0 {
		t.Fatalf("unexpected order %+v", ord)
	}

	remaining, _ := carts.List(1)
	if len(remaining) != 0 {
		t.Fatalf("expected empty cart after checkout, got %+v", remaining)
	}

	orders, _ := svc.ListByUser(1)
	if len(orders) != 1 {
		t.Fatalf("expected exactly one order, got %d", len(orders))
	}

	if !strings.HasPrefix(url, "https://wa.me/12033900003?text=") {
		t.Fatalf("unexpected hand-off url %q", url)
	}
	if !strings.Contains(url, "Ava") {
		t.Fatalf("hand-off url missing customer name: %q", url)
	}

	if len(notifier.created) != 1 || notifier.created[0].ID != ord.ID {
		t.Fatalf("expected committed order forwarded to fulfillment, got %+v", notifier.created)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _, repo, _ := newCheckoutFixture(t)

	_, _, err := svc.Checkout(2, "", "")
	if err != ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	orders, _ := repo.ListByUser(2)
	if len(orders) != 0 {
		t.Fatalf("empty-cart checkout must not create orders, got %d", len(orders))
	}
}

func TestCheckout_TransactionFailureLeavesCartIntact(t *testing.T) {
	svc, carts, repo, _ := newCheckoutFixture(t)

	carts.AddToCart(3, cart.Product{ID: "a", Title: "Serum", Price: 10})
	repo.FailNextCreate = true

	_, _, err := svc.Checkout(3, "Ava", "ava@example.com")
	if !errors.Is(err, ErrTransactionFailed) {
		t.Fatalf("expected ErrTransactionFailed, got %v", err)
	}

	remaining, _ := carts.List(3)
	if len(remaining) != 1 {
		t.Fatalf("cart must be intact after failed checkout, got %+v", remaining)
	}
	orders, _ := repo.ListByUser(3)
	if len(orders) != 0 {
		t.Fatalf("no order may exist after failed checkout, got %d", len(orders))
	}

	// retry succeeds
	if _, _, err := svc.Checkout(3, "Ava", "ava@example.com"); err != nil {
		t.Fatalf("retry after failure should succeed, got %v", err)
	}
}

func TestCheckout_NotifierFailureDoesNotAffectOrder(t *testing.T) {
	svc, carts, repo, notifier := newCheckoutFixture(t)
	notifier.fail = true

	carts.AddToCart(4, cart.Product{ID: "a", Title: "Serum", Price: 10})
	ord, _, err := svc.Checkout(4, "", "")
	if err != nil {
		t.Fatalf("hand-off failure must not fail checkout, got %v", err)
	}
	if _, err := repo.GetByID(ord.ID); err != nil {
		t.Fatalf("order must stay committed, got %v", err)
	}
}

func TestCheckout_ItemsAreSnapshots(t *testing.T) {
	svc, carts, _, _ := newCheckoutFixture(t)

	carts.AddToCart(5, cart.Product{ID: "a", Title: "Serum", Price: 10})
	ord, _, err := svc.Checkout(5, "", "")
	if err != nil {
		t.Fatal(err)
	}

	// new cart activity after checkout must not reach the placed order
	carts.AddToCart(5, cart.Product{ID: "a", Title: "Serum v2", Price: 99})

	stored, _ := svc.ListByUser(5)
	if stored[0].Items[0].Title != "Serum" || stored[0].Items[0].Price != 10 {
		t.Fatalf("order items must be snapshots, got %+v", stored[0].Items[0])
	}
	_ = ord
}

func TestApplyFulfillment(t *testing.T) {
	svc, carts, _, _ := newCheckoutFixture(t)

	carts.AddToCart(6, cart.Product{ID: "a", Title: "Serum", Price: 10})
	ord, _, _ := svc.Checkout(6, "", "")

	sub, err := svc.Subscribe(6)
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Cancel()
	<-sub.C // initial snapshot

	updated, err := svc.ApplyFulfillment(ord.ID, "Expédié", 2, "TRK123", nil)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != "Expédié" || updated.Progress != 2 || updated.TrackingNumber != "TRK123" {
		t.Fatalf("unexpected fulfillment state %+v", updated)
	}

	snapshot := <-sub.C
	if snapshot[0].Progress != 2 {
		t.Fatalf("subscribers must see the fulfillment update, got %+v", snapshot[0])
	}

	if _, err := svc.ApplyFulfillment(ord.ID, "x", 9, "", nil); err == nil {
		t.Fatal("progress outside 0..3 must be rejected")
	}
	if _, err := svc.ApplyFulfillment("missing", "x", 1, "", nil); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for unknown order, got %v", err)
	}
}

func TestStage(t *testing.T) {
	cases := map[int]string{
		0: StagePreparation,
		1: StagePreparation,
		2: StageShipped,
		3: StageDelivered,
	}
	for progress, want := range cases {
		if got := Stage(progress); got != want {
			t.Errorf("Stage(%d) = %q, want %q", progress, got, want)
		}
	}
}
