package cart

import (
	"io"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

func makeAppWithCartHandler(cHandler *Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if v := c.Get("X-User-ID"); v != "" {
			id, err := strconv.Atoi(v)
			if err == nil {
				claims := jwt.MapClaims{"user_id": id}
				tok := &jwt.Token{Claims: claims}
				c.Locals("user", tok)
			}
		}
		return c.Next()
	})
	cHandler.RegisterProtectedRoutes(app)
	return app
}

func TestCartRoutes_Basic(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(repo)
	handler := NewHandler(service)
	app := makeAppWithCartHandler(handler)

	// ensure routes registered
	routes := map[string]bool{}
	for _, grp := range app.Stack() {
		for _, r := range grp {
			routes[r.Path] = true
		}
	}
	if !routes["/api/v1/cart"] {
		t.Fatalf("expected route '/api/v1/cart' to be registered")
	}
	if !routes["/api/v1/cart/:itemId"] {
		t.Fatalf("expected route '/api/v1/cart/:itemId' to be registered")
	}

	// unauthorized access should be blocked
	req := httptest.NewRequest("GET", "/api/v1/cart", nil)
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 for unauthenticated GET, got %d", res.StatusCode)
	}

	// authorized add
	req2 := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"id":"lip-01","title":"Lip Oil","price":12.5,"image":"/img/lip.jpg"}`))
	req2.Header.Set("Content-Type", "application/json")
	req2.Header.Set("X-User-ID", "42")
	res2, _ := app.Test(req2)
	if res2.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for adding to cart, got %d", res2.StatusCode)
	}
	b2, _ := io.ReadAll(res2.Body)
	if !strings.Contains(string(b2), `"quantity":1`) {
		t.Fatalf("expected quantity 1 after add, got %s", string(b2))
	}

	// adding the same product again overwrites instead of incrementing
	req3 := httptest.NewRequest("POST", "/api/v1/cart", strings.NewReader(`{"id":"lip-01","title":"Lip Oil","price":12.5,"image":"/img/lip.jpg"}`))
	req3.Header.Set("Content-Type", "application/json")
	req3.Header.Set("X-User-ID", "42")
	res3, _ := app.Test(req3)
	if res3.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for second add, got %d", res3.StatusCode)
	}
	b3, _ := io.ReadAll(res3.Body)
	if !strings.Contains(string(b3), `"quantity":1`) || strings.Contains(string(b3), `"quantity":2`) {
		t.Fatalf("expected single entry with quantity 1 after repeated add, got %s", string(b3))
	}
	if strings.Count(string(b3), `"lip-01"`) != 2 { // id and productId of one entry
		t.Fatalf("expected exactly one cart entry, got %s", string(b3))
	}

	// increment then decrement below one: quantity clamps at 1
	req4 := httptest.NewRequest("PATCH", "/api/v1/cart/lip-01", strings.NewReader(`{"delta":2}`))
	req4.Header.Set("Content-Type", "application/json")
	req4.Header.Set("X-User-ID", "42")
	res4, _ := app.Test(req4)
	b4, _ := io.ReadAll(res4.Body)
	if !strings.Contains(string(b4), `"quantity":3`) {
		t.Fatalf("expected quantity 3 after +2, got %s", string(b4))
	}
	req5 := httptest.NewRequest("PATCH", "/api/v1/cart/lip-01", strings.NewReader(`{"delta":-10}`))
	req5.Header.Set("Content-Type", "application/json")
	req5.Header.Set("X-User-ID", "42")
	res5, _ := app.Test(req5)
	b5, _ := io.ReadAll(res5.Body)
	if !strings.Contains(string(b5), `"quantity":1`) {
		t.Fatalf("expected quantity clamped to 1, got %s", string(b5))
	}

	// quantity update on a vanished item is a 404, not a silent no-op
	req6 := httptest.NewRequest("PATCH", "/api/v1/cart/ghost", strings.NewReader(`{"delta":1}`))
	req6.Header.Set("Content-Type", "application/json")
	req6.Header.Set("X-User-ID", "42")
	res6, _ := app.Test(req6)
	if res6.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for missing item, got %d", res6.StatusCode)
	}

	// removing an absent item succeeds and leaves the rest alone
	req7 := httptest.NewRequest("DELETE", "/api/v1/cart/ghost", nil)
	req7.Header.Set("X-User-ID", "42")
	res7, _ := app.Test(req7)
	if res7.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200 for removing absent item, got %d", res7.StatusCode)
	}
	b7, _ := io.ReadAll(res7.Body)
	if !strings.Contains(string(b7), `"lip-01"`) {
		t.Fatalf("expected remaining item untouched, got %s", string(b7))
	}

	// real removal empties the cart
	req8 := httptest.NewRequest("DELETE", "/api/v1/cart/lip-01", nil)
	req8.Header.Set("X-User-ID", "42")
	res8, _ := app.Test(req8)
	b8, _ := io.ReadAll(res8.Body)
	if strings.Contains(string(b8), `"lip-01"`) {
		t.Fatalf("expected empty cart after removal, got %s", string(b8))
	}
}

func TestCartQuantityNeverBelowOne(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(repo)

	if _, err := service.AddToCart(7, Product{ID: "p1", Title: "Serum", Price: 30}); err != nil {
		t.Fatal(err)
	}

	deltas := []int{-1, -3, 2, -10, 1, -1, -1}
	for _, d := range deltas {
		if _, err := service.UpdateQuantity(7, "p1", d); err != nil {
			t.Fatalf("update with delta %d failed: %v", d, err)
		}
		items, _ := service.List(7)
		if len(items) != 1 || items[0].Quantity < 1 {
			t.Fatalf("quantity dropped below 1 after delta %d: %+v", d, items)
		}
	}
}

func TestCartSubscribeSeesConfirmedWrites(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(repo)

	sub, err := service.Subscribe(9)
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Cancel()

	// seeded with the current (empty) state
	if initial := <-sub.C; len(initial) != 0 {
		t.Fatalf("expected empty initial snapshot, got %+v", initial)
	}

	if _, err := service.AddToCart(9, Product{ID: "p2", Title: "Mask", Price: 8}); err != nil {
		t.Fatal(err)
	}
	snapshot := <-sub.C
	if len(snapshot) != 1 || snapshot[0].ID != "p2" {
		t.Fatalf("expected snapshot with the added item, got %+v", snapshot)
	}

	sub.Cancel()
	if _, err := service.RemoveItem(9, "p2"); err != nil {
		t.Fatal(err)
	}
	if _, ok := <-sub.C; ok {
		t.Fatal("cancelled subscription must not receive further snapshots")
	}
}
