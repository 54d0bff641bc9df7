package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskhive/taskhive-api/internal/application/access"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
)

// WorkspaceAccessMiddleware resuelve el parámetro :workspaceID y consulta el
// guard de membership. No-miembro recibe 403 sin distinguir si el workspace
// existe; un error de infraestructura del guard es 503 (nunca fail-open).
// El rol queda en locals para los handlers que lo necesiten.
func WorkspaceAccessMiddleware(guard *access.Guard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "user_id requerido"})
		}
		workspaceID := c.Params("workspaceID")
		if workspaceID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_WORKSPACE", Message: "workspaceID es requerido"})
		}
		role, ok, err := guard.RoleOf(c.UserContext(), userID, workspaceID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "ACCESS_CHECK_FAILED", Message: "no se pudo verificar el acceso"})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "no sos miembro de este workspace"})
		}
		c.Locals(LocalWorkspaceID, workspaceID)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireWorkspaceRole exige que el rol resuelto por WorkspaceAccessMiddleware
// sea alguno de los dados. Pensado para rutas enteras de administración; las
// reglas más finas (autor-o-admin) viven en los casos de uso.
func RequireWorkspaceRole(roles ...plan.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(LocalRole).(plan.Role)
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol insuficiente para esta operación"})
	}
}
