package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskhive/taskhive-api/internal/application/billing"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// WorkspaceHandler maneja las peticiones HTTP de workspaces (protegido).
type WorkspaceHandler struct {
	uc      *usecase.WorkspaceUseCase
	receipt *billing.ReceiptUseCase
}

// NewWorkspaceHandler construye el handler.
func NewWorkspaceHandler(uc *usecase.WorkspaceUseCase, receipt *billing.ReceiptUseCase) *WorkspaceHandler {
	return &WorkspaceHandler{uc: uc, receipt: receipt}
}

// Create godoc
// @Summary      Crear workspace adicional
// @Tags         workspaces
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateWorkspaceRequest  true  "Datos del workspace"
// @Success      201   {object}  dto.WorkspaceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/workspaces [post]
func (h *WorkspaceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateWorkspaceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar workspaces del usuario
// @Tags         workspaces
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WorkspaceListResponse
// @Router       /api/workspaces [get]
func (h *WorkspaceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListForUser(c.UserContext(), GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener workspace
// @Tags         workspaces
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Success      200  {object}  dto.WorkspaceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID} [get]
func (h *WorkspaceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetWorkspaceID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar workspace
// @Tags         workspaces
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        body  body  dto.UpdateWorkspaceRequest  true  "Campos editables"
// @Success      200   {object}  dto.WorkspaceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID} [put]
func (h *WorkspaceHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateWorkspaceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	if err := h.uc.UpdateName(c.UserContext(), GetWorkspaceID(c), in); err != nil {
		return errorJSON(c, err)
	}
	return h.GetByID(c)
}

// Usage godoc
// @Summary      Uso actual vs techos del plan por categoría
// @Tags         workspaces
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Success      200  {object}  dto.UsageResponse
// @Router       /api/workspaces/{workspaceID}/usage [get]
func (h *WorkspaceHandler) Usage(c *fiber.Ctx) error {
	out, err := h.uc.Usage(c.UserContext(), GetWorkspaceID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF del último pago
// @Tags         billing
// @Security     Bearer
// @Produce      application/pdf
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/billing/receipt [get]
func (h *WorkspaceHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.receipt.GetReceipt(c.UserContext(), GetWorkspaceID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `attachment; filename="recibo.pdf"`)
	return c.Send(pdfBytes)
}
