package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// MemberHandler maneja miembros e invitaciones del workspace (protegido).
type MemberHandler struct {
	members *usecase.MemberUseCase
	invites *usecase.InviteUseCase
}

// NewMemberHandler construye el handler.
func NewMemberHandler(members *usecase.MemberUseCase, invites *usecase.InviteUseCase) *MemberHandler {
	return &MemberHandler{members: members, invites: invites}
}

// List godoc
// @Summary      Listar miembros del workspace
// @Tags         members
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Success      200  {object}  dto.MemberListResponse
// @Router       /api/workspaces/{workspaceID}/members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	out, err := h.members.List(c.UserContext(), GetWorkspaceID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Quitar un miembro del workspace
// @Tags         members
// @Security     Bearer
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        userID       path  string  true  "ID del usuario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/members/{userID} [delete]
func (h *MemberHandler) Remove(c *fiber.Ctx) error {
	userID := c.Params("userID")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "userID es requerido"})
	}
	if err := h.members.Remove(c.UserContext(), GetUserID(c), GetWorkspaceID(c), userID); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateInvite godoc
// @Summary      Invitar por email al workspace
// @Tags         invites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        body  body  dto.CreateInviteRequest  true  "Datos de la invitación"
// @Success      201   {object}  dto.InviteResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/invites [post]
func (h *MemberHandler) CreateInvite(c *fiber.Ctx) error {
	var in dto.CreateInviteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email es requerido"})
	}
	out, err := h.invites.Create(c.UserContext(), GetUserID(c), GetWorkspaceID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListInvites godoc
// @Summary      Listar invitaciones del workspace
// @Tags         invites
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Success      200  {object}  dto.InviteListResponse
// @Router       /api/workspaces/{workspaceID}/invites [get]
func (h *MemberHandler) ListInvites(c *fiber.Ctx) error {
	out, err := h.invites.List(c.UserContext(), GetWorkspaceID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// RevokeInvite godoc
// @Summary      Revocar una invitación pendiente
// @Tags         invites
// @Security     Bearer
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        inviteID     path  string  true  "ID de la invitación"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/invites/{inviteID} [delete]
func (h *MemberHandler) RevokeInvite(c *fiber.Ctx) error {
	inviteID := c.Params("inviteID")
	if inviteID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "inviteID es requerido"})
	}
	if err := h.invites.Revoke(c.UserContext(), GetUserID(c), GetWorkspaceID(c), inviteID); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AcceptInvite godoc
// @Summary      Aceptar una invitación por token
// @Tags         invites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AcceptInviteRequest  true  "Token de la invitación"
// @Success      201   {object}  dto.MemberResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/invites/accept [post]
func (h *MemberHandler) AcceptInvite(c *fiber.Ctx) error {
	var in dto.AcceptInviteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Token == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "token es requerido"})
	}
	out, err := h.invites.Accept(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
