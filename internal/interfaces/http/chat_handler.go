package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// ChatHandler maneja el chat del workspace y de los teams (protegido).
type ChatHandler struct {
	uc *usecase.ChatUseCase
}

// NewChatHandler construye el handler.
func NewChatHandler(uc *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

// Send godoc
// @Summary      Enviar mensaje (canal general o de un team)
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        body  body  dto.SendMessageRequest  true  "Mensaje"
// @Success      201   {object}  dto.ChatMessageResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/chat [post]
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var in dto.SendMessageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "body es requerido"})
	}
	out, err := h.uc.Send(c.UserContext(), GetUserID(c), GetWorkspaceID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      Historial de mensajes
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        team_id  query  string  false  "ID del team (vacío = canal general)"
// @Param        limit    query  int     false  "Límite"   default(20)
// @Param        offset   query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.ChatListResponse
// @Router       /api/workspaces/{workspaceID}/chat [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	var teamID *string
	if t := c.Query("team_id"); t != "" {
		teamID = &t
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.History(c.UserContext(), GetUserID(c), GetWorkspaceID(c), teamID, page)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
