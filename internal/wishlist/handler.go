package wishlist

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lumibelle/beauty-shop-backend/internal/cart"
	"github.com/lumibelle/beauty-shop-backend/internal/user"
)

// Handler delegates wishlist operations to the wishlist service. Moving a
// saved item into the cart goes through the cart service so the quantity-one
// overwrite semantics stay in one place.
type Handler struct {
	service *Service
	carts   *cart.Service
}

func NewHandler(s *Service, carts *cart.Service) *Handler {
	return &Handler{service: s, carts: carts}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/wishlist", h.getWishlist)
	app.Post("/api/v1/wishlist", h.addItem)
	app.Delete("/api/v1/wishlist/:itemId", h.removeItem)
	app.Post("/api/v1/wishlist/:itemId/cart", h.addToCart)
}

func (h *Handler) getWishlist(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, err := h.service.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(items)
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(WishlistItem)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, err := h.service.Add(userID, *payload)
	if err != nil {
		switch err {
		case ErrInvalidItem:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid wishlist item"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	items, err := h.service.Remove(userID, c.Params("itemId"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusOK).JSON(items)
}

// addToCart copies a saved item into the cart with quantity 1. A repeated
// call resets the quantity to 1 rather than incrementing it.
func (h *Handler) addToCart(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	saved, err := h.service.List(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	itemID := c.Params("itemId")
	for _, it := range saved {
		if it.ID != itemID {
			continue
		}
		image := ""
		if len(it.Images) > 0 {
			image = it.Images[0]
		}
		items, err := h.carts.AddToCart(userID, cart.Product{
			ID:    it.ID,
			Title: it.Title,
			Price: it.Price,
			Image: image,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusOK).JSON(items)
	}

	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "wishlist item not found"})
}
