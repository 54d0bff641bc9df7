package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// TeamHandler maneja teams y sus integrantes (protegido).
type TeamHandler struct {
	uc *usecase.TeamUseCase
}

// NewTeamHandler construye el handler.
func NewTeamHandler(uc *usecase.TeamUseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// Create godoc
// @Summary      Crear team (solo admin)
// @Tags         teams
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        body  body  dto.CreateTeamRequest  true  "Datos del team"
// @Success      201   {object}  dto.TeamResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/teams [post]
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTeamRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), GetWorkspaceID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar teams del workspace
// @Tags         teams
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Success      200  {object}  dto.TeamListResponse
// @Router       /api/workspaces/{workspaceID}/teams [get]
func (h *TeamHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetWorkspaceID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// AddMember godoc
// @Summary      Agregar miembro del workspace a un team
// @Tags         teams
// @Security     Bearer
// @Accept       json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        teamID       path  string  true  "ID del team"
// @Param        body  body  dto.AddTeamMemberRequest  true  "Usuario a agregar"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/teams/{teamID}/members [post]
func (h *TeamHandler) AddMember(c *fiber.Ctx) error {
	var in dto.AddTeamMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "user_id es requerido"})
	}
	if err := h.uc.AddMember(c.UserContext(), GetUserID(c), GetWorkspaceID(c), c.Params("teamID"), in); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RemoveMember godoc
// @Summary      Quitar integrante del team (él mismo o un admin)
// @Tags         teams
// @Security     Bearer
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        teamID       path  string  true  "ID del team"
// @Param        userID       path  string  true  "ID del usuario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/teams/{teamID}/members/{userID} [delete]
func (h *TeamHandler) RemoveMember(c *fiber.Ctx) error {
	if err := h.uc.RemoveMember(c.UserContext(), GetUserID(c), GetWorkspaceID(c), c.Params("teamID"), c.Params("userID")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete godoc
// @Summary      Eliminar team (solo admin)
// @Tags         teams
// @Security     Bearer
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        teamID       path  string  true  "ID del team"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/teams/{teamID} [delete]
func (h *TeamHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetUserID(c), GetWorkspaceID(c), c.Params("teamID")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
