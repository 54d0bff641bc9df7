package http

import (
	"github.com/gofiber/fiber/v2"
	_ "github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// ActivityHandler maneja el historial de actividad y las notificaciones (protegido).
type ActivityHandler struct {
	uc *usecase.ActivityUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *usecase.ActivityUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// Feed godoc
// @Summary      Historial de actividad (recortado a la retención del plan)
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Success      200  {object}  dto.ActivityListResponse
// @Router       /api/workspaces/{workspaceID}/activity [get]
func (h *ActivityHandler) Feed(c *fiber.Ctx) error {
	out, err := h.uc.Feed(c.UserContext(), GetWorkspaceID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Analytics godoc
// @Summary      Resumen de actividad por tipo de entidad (planes con analytics)
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Success      200  {object}  dto.AnalyticsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/analytics [get]
func (h *ActivityHandler) Analytics(c *fiber.Ctx) error {
	out, err := h.uc.Analytics(c.UserContext(), GetWorkspaceID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Notifications godoc
// @Summary      Notificaciones del usuario en el workspace
// @Tags         activity
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Success      200  {object}  dto.NotificationListResponse
// @Router       /api/workspaces/{workspaceID}/notifications [get]
func (h *ActivityHandler) Notifications(c *fiber.Ctx) error {
	out, err := h.uc.Notifications(c.UserContext(), GetWorkspaceID(c), GetUserID(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         activity
// @Security     Bearer
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        id  path  string  true  "ID de la notificación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/notifications/{id}/read [post]
func (h *ActivityHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkNotificationRead(c.UserContext(), GetWorkspaceID(c), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
