package lead

import (
	"github.com/gofiber/fiber/v2"
)

// Handler exposes the lead-capture form endpoints. Submissions are public:
// applicants are not necessarily customers with accounts.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/applications/:kind", h.submit)
}

func (h *Handler) submit(c *fiber.Ctx) error {
	payload := new(Application)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	payload.Kind = c.Params("kind")

	created, err := h.service.Submit(*payload)
	if err != nil {
		switch err {
		case ErrInvalidKind:
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "unknown application kind"})
		case ErrMissingContact:
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "name and email are required"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}
