package order

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/lumibelle/beauty-shop-backend/internal/user"
)

// Handler delegates order operations to the order service.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/v1/orders/ws", websocket.New(h.streamOrders))
	app.Get("/api/v1/orders", h.getOrders)
	app.Post("/api/v1/checkout", h.checkout)
}

type checkoutRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (h *Handler) checkout(c *fiber.Ctx) error {
	payload := new(checkoutRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	ord, handoffURL, err := h.service.Checkout(userID, payload.Name, payload.Email)
	if err != nil {
		switch {
		case err == ErrEmptyCart:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "cart is empty"})
		case errors.Is(err, ErrTransactionFailed):
			// nothing committed; the cart is intact and the client may retry
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "checkout failed, please retry"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"order": ord, "whatsappUrl": handoffURL})
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	userID, err := user.GetUserIDFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "unauthorized"})
	}

	orders, err := h.service.ListByUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	return c.JSON(orders)
}

func (h *Handler) streamOrders(c *websocket.Conn) {
	userID, err := user.IDFromToken(c.Locals("user"))
	if err != nil {
		c.WriteJSON(fiber.Map{"message": "unauthorized"})
		return
	}

	sub, err := h.service.Subscribe(userID)
	if err != nil {
		c.WriteJSON(fiber.Map{"message": err.Error()})
		return
	}
	defer sub.Cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case snapshot, ok := <-sub.C:
			if !ok {
				return
			}
			if err := c.WriteJSON(snapshot); err != nil {
				fmt.Printf("[DEBUG] order stream write failed for user %d: %v\n", userID, err)
				return
			}
		case <-done:
			return
		}
	}
}
