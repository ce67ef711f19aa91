package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/gst-invoice-api/internal/application/billing"
	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
)

// CalculateHandler vista previa del cálculo GST (público, sin persistencia).
type CalculateHandler struct {
	uc *billing.CalculateUseCase
}

// NewCalculateHandler construye el handler.
func NewCalculateHandler(uc *billing.CalculateUseCase) *CalculateHandler {
	return &CalculateHandler{uc: uc}
}

// Calculate calcula líneas y totales.
// POST /api/calculate
func (h *CalculateHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Calculate(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
