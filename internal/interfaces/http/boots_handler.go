package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// BootsHandler maneja el asistente de IA del workspace (protegido).
type BootsHandler struct {
	uc *usecase.BootsUseCase
}

// NewBootsHandler construye el handler.
func NewBootsHandler(uc *usecase.BootsUseCase) *BootsHandler {
	return &BootsHandler{uc: uc}
}

// Ask godoc
// @Summary      Consultar al asistente (cuota por ciclo de facturación)
// @Tags         boots
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        body  body  dto.BootsRequest  true  "Pregunta"
// @Success      200   {object}  dto.BootsResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/boots [post]
func (h *BootsHandler) Ask(c *fiber.Ctx) error {
	var in dto.BootsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Prompt == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "prompt es requerido"})
	}
	out, err := h.uc.Ask(c.UserContext(), GetUserID(c), GetWorkspaceID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
