package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/taskhive/taskhive-api/internal/application/access"
	"github.com/taskhive/taskhive-api/internal/application/auth"
	"github.com/taskhive/taskhive-api/internal/application/billing"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
	"github.com/taskhive/taskhive-api/pkg/config"
	"github.com/taskhive/taskhive-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	WorkspaceUC   *usecase.WorkspaceUseCase
	MemberUC      *usecase.MemberUseCase
	InviteUC      *usecase.InviteUseCase
	ProjectUC     *usecase.ProjectUseCase
	TaskUC        *usecase.TaskUseCase
	BoardUC       *usecase.BoardUseCase
	TeamUC        *usecase.TeamUseCase
	ChatUC        *usecase.ChatUseCase
	CalendarUC    *usecase.CalendarUseCase
	CommentUC     *usecase.CommentUseCase
	IntegrationUC *usecase.IntegrationUseCase
	ActivityUC    *usecase.ActivityUseCase
	BootsUC       *usecase.BootsUseCase
	ReceiptUC     *billing.ReceiptUseCase
	Reconciler    *billing.Reconciler
	Guard         *access.Guard
	Billing       config.BillingConfig
	JWTSecret     string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Webhooks de billing (público: la firma HMAC es la autenticación)
	webhooks := api.Group("/webhooks")
	webhookHandler := NewBillingWebhookHandler(deps.Reconciler, deps.Billing, deps.Log)
	webhooks.Post("/stripe", webhookHandler.Stripe)
	webhooks.Post("/paddle", webhookHandler.Paddle)
	webhooks.Post("/lemonsqueezy", webhookHandler.Lemon)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	workspaceHandler := NewWorkspaceHandler(deps.WorkspaceUC, deps.ReceiptUC)
	protected.Post("/workspaces", workspaceHandler.Create)
	protected.Get("/workspaces", workspaceHandler.List)

	// Aceptación de invitación y borrado de comentario por id: sin workspace
	// en el path, la autorización se resuelve adentro (token / fan-out).
	memberHandler := NewMemberHandler(deps.MemberUC, deps.InviteUC)
	protected.Post("/invites/accept", memberHandler.AcceptInvite)

	commentHandler := NewCommentHandler(deps.CommentUC)
	protected.Delete("/comments/:id", commentHandler.DeleteByID)

	// Todo lo demás vive bajo el workspace: membership verificada por request.
	ws := protected.Group("/workspaces/:workspaceID", WorkspaceAccessMiddleware(deps.Guard))
	ws.Get("/", workspaceHandler.GetByID)
	ws.Put("/", workspaceHandler.Update)
	ws.Get("/usage", workspaceHandler.Usage)
	ws.Get("/billing/receipt", workspaceHandler.Receipt)

	ws.Get("/members", memberHandler.List)
	ws.Delete("/members/:userID", memberHandler.Remove)
	ws.Post("/invites", memberHandler.CreateInvite)
	ws.Get("/invites", memberHandler.ListInvites)
	ws.Delete("/invites/:inviteID", memberHandler.RevokeInvite)

	projectHandler := NewProjectHandler(deps.ProjectUC)
	ws.Post("/projects", projectHandler.Create)
	ws.Get("/projects", projectHandler.List)
	ws.Get("/projects/:id", projectHandler.GetByID)
	ws.Put("/projects/:id", projectHandler.Update)
	ws.Delete("/projects/:id", projectHandler.Delete)

	taskHandler := NewTaskHandler(deps.TaskUC)
	ws.Get("/projects/:projectID/tasks", taskHandler.ListByProject)
	ws.Post("/tasks", taskHandler.Create)
	ws.Get("/tasks/:id", taskHandler.GetByID)
	ws.Put("/tasks/:id", taskHandler.Update)
	ws.Delete("/tasks/:id", taskHandler.Delete)
	ws.Post("/tasks/:id/subtasks", taskHandler.AddSubtask)
	ws.Get("/tasks/:id/subtasks", taskHandler.ListSubtasks)
	ws.Post("/tasks/:id/time", taskHandler.LogTime)
	ws.Post("/tags", taskHandler.CreateTag)
	ws.Get("/tags", taskHandler.ListTags)

	boardHandler := NewBoardHandler(deps.BoardUC)
	ws.Get("/projects/:projectID/boards", boardHandler.ListByProject)
	ws.Post("/boards", boardHandler.Create)
	ws.Get("/boards/:id", boardHandler.GetByID)
	ws.Delete("/boards/:id", boardHandler.Delete)
	ws.Post("/boards/:id/columns", boardHandler.AddColumn)
	ws.Get("/boards/:id/columns", boardHandler.ListColumns)
	ws.Delete("/columns/:columnID", boardHandler.DeleteColumn)

	teamHandler := NewTeamHandler(deps.TeamUC)
	ws.Post("/teams", teamHandler.Create)
	ws.Get("/teams", teamHandler.List)
	ws.Delete("/teams/:teamID", teamHandler.Delete)
	ws.Post("/teams/:teamID/members", teamHandler.AddMember)
	ws.Delete("/teams/:teamID/members/:userID", teamHandler.RemoveMember)

	chatHandler := NewChatHandler(deps.ChatUC)
	ws.Post("/chat", chatHandler.Send)
	ws.Get("/chat", chatHandler.History)

	calendarHandler := NewCalendarHandler(deps.CalendarUC)
	ws.Post("/calendar", calendarHandler.Create)
	ws.Get("/calendar", calendarHandler.ListRange)
	ws.Delete("/calendar/:id", calendarHandler.Delete)

	ws.Post("/comments", commentHandler.Create)
	ws.Get("/tasks/:taskID/comments", commentHandler.ListByTask)

	integrationHandler := NewIntegrationHandler(deps.IntegrationUC)
	ws.Post("/integrations", integrationHandler.Create)
	ws.Get("/integrations", integrationHandler.List)
	ws.Delete("/integrations/:id", integrationHandler.Delete)

	activityHandler := NewActivityHandler(deps.ActivityUC)
	ws.Get("/activity", activityHandler.Feed)
	ws.Get("/analytics", activityHandler.Analytics)
	ws.Get("/notifications", activityHandler.Notifications)
	ws.Post("/notifications/:id/read", activityHandler.MarkRead)

	bootsHandler := NewBootsHandler(deps.BootsUC)
	ws.Post("/boots", bootsHandler.Ask)
}
