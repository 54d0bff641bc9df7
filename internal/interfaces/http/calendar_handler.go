package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// CalendarHandler maneja eventos de calendario (protegido).
type CalendarHandler struct {
	uc *usecase.CalendarUseCase
}

// NewCalendarHandler construye el handler.
func NewCalendarHandler(uc *usecase.CalendarUseCase) *CalendarHandler {
	return &CalendarHandler{uc: uc}
}

// Create godoc
// @Summary      Crear evento de calendario
// @Tags         calendar
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        body  body  dto.CreateEventRequest  true  "Datos del evento"
// @Success      201   {object}  dto.EventResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/calendar [post]
func (h *CalendarHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEventRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Title == "" || in.StartsAt.IsZero() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "title y starts_at son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), GetWorkspaceID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRange godoc
// @Summary      Listar eventos en un rango de fechas
// @Tags         calendar
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        from  query  string  true  "Inicio del rango (RFC3339)"
// @Param        to    query  string  true  "Fin del rango (RFC3339)"
// @Success      200  {object}  dto.EventListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/calendar [get]
func (h *CalendarHandler) ListRange(c *fiber.Ctx) error {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}
	out, err := h.uc.ListRange(c.UserContext(), GetWorkspaceID(c), from, to)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar evento
// @Tags         calendar
// @Security     Bearer
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        id  path  string  true  "ID del evento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/calendar/{id} [delete]
func (h *CalendarHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetWorkspaceID(c), c.Params("id")); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
