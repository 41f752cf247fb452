package user_test

import (
	"testing"

	"github.com/lumibelle/beauty-shop-backend/internal/cart"
	"github.com/lumibelle/beauty-shop-backend/internal/user"
	"github.com/lumibelle/beauty-shop-backend/internal/wishlist"
	"golang.org/x/crypto/bcrypt"
)

func seedAccount(t *testing.T) (*user.Service, *cart.InMemoryRepository, *wishlist.InMemoryRepository) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}

	carts := cart.NewInMemoryRepository()
	wishlists := wishlist.NewInMemoryRepository()
	repo := user.NewInMemoryRepository([]user.User{{
		ID:       42,
		Email:    "ava@example.com",
		Password: string(hashed),
	}}, carts, wishlists)

	carts.Put(42, cart.CartItem{ID: "p1", Title: "Serum", Price: 10, Quantity: 2, ProductID: "p1"})
	wishlists.Put(42, wishlist.WishlistItem{ID: "p2", Title: "Gloss", Price: 5})

	return user.NewService(repo), carts, wishlists
}

func TestDeleteAccount_WrongPasswordDeletesNothing(t *testing.T) {
	svc, carts, wishlists := seedAccount(t)

	if err := svc.DeleteAccount(42, "wrong"); err != user.ErrReauthenticationFailed {
		t.Fatalf("expected ErrReauthenticationFailed, got %v", err)
	}

	if _, err := svc.GetByID(42); err != nil {
		t.Fatalf("profile must survive failed re-authentication: %v", err)
	}
	items, _ := carts.List(42)
	if len(items) != 1 {
		t.Fatalf("cart must survive failed re-authentication, got %+v", items)
	}
	saved, _ := wishlists.List(42)
	if len(saved) != 1 {
		t.Fatalf("wishlist must survive failed re-authentication, got %+v", saved)
	}
}

func TestDeleteAccount_CascadesOwnedData(t *testing.T) {
	svc, carts, wishlists := seedAccount(t)

	if err := svc.DeleteAccount(42, "s3cret"); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetByID(42); err != user.ErrNotFound {
		t.Fatalf("expected profile gone, got %v", err)
	}
	items, _ := carts.List(42)
	if len(items) != 0 {
		t.Fatalf("expected cart emptied, got %+v", items)
	}
	saved, _ := wishlists.List(42)
	if len(saved) != 0 {
		t.Fatalf("expected wishlist emptied, got %+v", saved)
	}
}

func TestRegisterAndAuthenticate(t *testing.T) {
	repo := user.NewInMemoryRepository(nil, cart.NewInMemoryRepository(), wishlist.NewInMemoryRepository())
	svc := user.NewService(repo)

	u, err := svc.Register(user.User{Email: "new@example.com", Password: "pass", DisplayName: "New"})
	if err != nil {
		t.Fatal(err)
	}
	if u.Password == "pass" {
		t.Fatal("password must be hashed before storage")
	}

	if _, err := svc.Register(user.User{Email: "new@example.com", Password: "pass"}); err != user.ErrEmailExists {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}

	if _, err := svc.Authenticate("new@example.com", "pass"); err != nil {
		t.Fatalf("expected successful authentication, got %v", err)
	}
	if _, err := svc.Authenticate("new@example.com", "nope"); err != user.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
