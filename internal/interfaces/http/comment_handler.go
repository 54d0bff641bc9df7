package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
)

// CommentHandler maneja comentarios de tareas (protegido).
type CommentHandler struct {
	uc *usecase.CommentUseCase
}

// NewCommentHandler construye el handler.
func NewCommentHandler(uc *usecase.CommentUseCase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

// Create godoc
// @Summary      Comentar una tarea
// @Tags         comments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        body  body  dto.CreateCommentRequest  true  "Comentario"
// @Success      201   {object}  dto.CommentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/workspaces/{workspaceID}/comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCommentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.TaskID == "" || in.Body == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "task_id y body son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), GetWorkspaceID(c), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListByTask godoc
// @Summary      Listar comentarios de una tarea
// @Tags         comments
// @Security     Bearer
// @Produce      json
// @Param        workspaceID  path  string  true  "ID del workspace"
// @Param        taskID       path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.CommentListResponse
// @Router       /api/workspaces/{workspaceID}/tasks/{taskID}/comments [get]
func (h *CommentHandler) ListByTask(c *fiber.Ctx) error {
	out, err := h.uc.ListByTask(c.UserContext(), GetWorkspaceID(c), c.Params("taskID"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// DeleteByID godoc
// @Summary      Eliminar comentario por ID
// @Description  Ruta sin workspace en el path: el comentario se localiza entre
// @Description  los shards y el acceso se verifica contra su workspace dueño.
// @Tags         comments
// @Security     Bearer
// @Param        id  path  string  true  "ID del comentario"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comments/{id} [delete]
func (h *CommentHandler) DeleteByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeleteByID(c.UserContext(), GetUserID(c), id); err != nil {
		return errorJSON(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
