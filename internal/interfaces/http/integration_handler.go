package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// IntegrationHandler maneja integraciones externas del workspace (protegido).
type IntegrationHandler struct {
	uc *usecase.IntegrationUseCase
}

// NewIntegrationHandler construye el handler.
func NewIntegrationHandler(uc *usecase.IntegrationUseCase) *IntegrationHandler {
	return &IntegrationHandler{uc: uc}
}

// Create godoc
// @Summary      Crear integración (solo admin)
// @Tags         integrations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        body  body  dto.CreateIntegrationRequest  true  "Datos de la integración"
// @Success      201   {object}  dto.IntegrationResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/integrations [post]
func (h *IntegrationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIntegrationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Kind == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kind y name son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), GetWorkspaceID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar integraciones del workspace
// @Tags         integrations
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Success      200  {object}  dto.IntegrationListResponse
// @Router       /api/workspaces/{workspaceID}/integrations [get]
func (h *IntegrationHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetWorkspaceID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar integración (solo admin)
// @Tags         integrations
// @Security     Bearer
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        id  path  string  true  "ID de la integración"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/integrations/{id} [delete]
func (h *IntegrationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), GetWorkspaceID(c), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
