package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// BoardHandler maneja boards kanban y sus columnas (protegido).
type BoardHandler struct {
	uc *usecase.BoardUseCase
}

// NewBoardHandler construye el handler.
func NewBoardHandler(uc *usecase.BoardUseCase) *BoardHandler {
	return &BoardHandler{uc: uc}
}

// Create godoc
// @Summary      Crear board
// @Tags         boards
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        body  body  dto.CreateBoardRequest  true  "Datos del board"
// @Success      201   {object}  dto.BoardResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/boards [post]
func (h *BoardHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBoardRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProjectID == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "project_id y name son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), GetWorkspaceID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByProject godoc
// @Summary      Listar boards de un proyecto
// @Tags         boards
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        projectID    path  string  true  "ID del proyecto"
// @Success      200  {object}  dto.BoardListResponse
// @Router       /api/workspaces/{workspaceID}/projects/{projectID}/boards [get]
func (h *BoardHandler) ListByProject(c *fiber.Ctx) error {
	out, err := h.uc.ListByProject(c.UserContext(), GetWorkspaceID(c), c.Params("projectID"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener board por ID
// @Tags         boards
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        id  path  string  true  "ID del board"
// @Success      200  {object}  dto.BoardResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/boards/{id} [get]
func (h *BoardHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetWorkspaceID(c), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar board
// @Tags         boards
// @Security     Bearer
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        id  path  string  true  "ID del board"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/boards/{id} [delete]
func (h *BoardHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), GetWorkspaceID(c), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddColumn godoc
// @Summary      Agregar columna al board
// @Tags         boards
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        id    path  string  true  "ID del board"
// @Param        body  body  dto.CreateColumnRequest  true  "Datos de la columna"
// @Success      201   {object}  dto.ColumnResponse
// @Router       /api/workspaces/{workspaceID}/boards/{id}/columns [post]
func (h *BoardHandler) AddColumn(c *fiber.Ctx) error {
	var in dto.CreateColumnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.AddColumn(c.UserContext(), GetWorkspaceID(c), c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListColumns godoc
// @Summary      Listar columnas del board
// @Tags         boards
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        id  path  string  true  "ID del board"
// @Success      200  {array}  dto.ColumnResponse
// @Router       /api/workspaces/{workspaceID}/boards/{id}/columns [get]
func (h *BoardHandler) ListColumns(c *fiber.Ctx) error {
	out, err := h.uc.ListColumns(c.UserContext(), GetWorkspaceID(c), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// DeleteColumn godoc
// @Summary      Eliminar columna
// @Tags         boards
// @Security     Bearer
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        columnID     path  string  true  "ID de la columna"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/columns/{columnID} [delete]
func (h *BoardHandler) DeleteColumn(c *fiber.Ctx) error {
	if err := h.uc.DeleteColumn(c.UserContext(), GetWorkspaceID(c), c.Params("columnID")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
