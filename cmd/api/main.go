package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/taskhive/taskhive-api/internal/application/access"
	"github.com/taskhive/taskhive-api/internal/application/auth"
	"github.com/taskhive/taskhive-api/internal/application/billing"
	"github.com/taskhive/taskhive-api/internal/application/events"
	"github.com/taskhive/taskhive-api/internal/application/quota"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
	infraai "github.com/taskhive/taskhive-api/internal/infrastructure/ai"
	infrapdf "github.com/taskhive/taskhive-api/internal/infrastructure/pdf"
	"github.com/taskhive/taskhive-api/internal/infrastructure/postgres"
	httpRouter "github.com/taskhive/taskhive-api/internal/interfaces/http"
	"github.com/taskhive/taskhive-api/pkg/config"
	"github.com/taskhive/taskhive-api/pkg/logger"
	"github.com/taskhive/taskhive-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Int("shards", cfg.Shards.Count()).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Topología de shards: un pool por DSN, el índice en la lista es el índice
	// del shard y el 0 es el primario.
	shards := make([]*postgres.Shard, 0, cfg.Shards.Count())
	for i, dsn := range cfg.Shards.DatabaseURLs {
		pool, err := postgres.NewPool(ctx, dsn)
		if err != nil {
			log.Fatal().Err(err).Int("shard", i).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		shards = append(shards, &postgres.Shard{Index: i, Pool: pool})
	}

	registry, err := postgres.NewShardRegistry(shards)
	if err != nil {
		log.Fatal().Err(err).Msg("topología de shards inválida")
	}
	if err := registry.LoadAssignments(ctx); err != nil {
		log.Fatal().Err(err).Msg("cargar asignaciones de shard")
	}

	primary := registry.Primary().Pool

	// Repositorios del shard primario (workspaces, usuarios, memberships, invites).
	workspaceRepo := postgres.NewWorkspaceRepository(primary)
	userRepo := postgres.NewUserRepository(primary)
	memberRepo := postgres.NewMemberRepository(primary)
	inviteRepo := postgres.NewInviteRepository(primary)
	txRunner := postgres.NewTxRunner(primary)

	// Repositorios shard-local: resuelven el shard dueño por workspace en cada operación.
	projectRepo := postgres.NewProjectRepository(registry)
	taskRepo := postgres.NewTaskRepository(registry)
	boardRepo := postgres.NewBoardRepository(registry)
	teamRepo := postgres.NewTeamRepository(registry)
	chatRepo := postgres.NewChatRepository(registry)
	calendarRepo := postgres.NewCalendarRepository(registry)
	commentRepo := postgres.NewCommentRepository(registry)
	integrationRepo := postgres.NewIntegrationRepository(registry)
	activityRepo := postgres.NewActivityRepository(registry)
	notificationRepo := postgres.NewNotificationRepository(registry)
	bootRepo := postgres.NewBootRepository(registry)

	guard := access.NewGuard(memberRepo, teamRepo)
	ledger := quota.NewLedger(workspaceRepo)
	reconciler := billing.NewReconciler(workspaceRepo, log)

	// Bus post-commit: historial de actividad y notificaciones corren fuera
	// del camino de la mutación que los originó.
	bus := events.NewBus(256, log)
	bus.Subscribe(events.ActivityRecorder(activityRepo, log))
	bus.Subscribe(events.Notifier(notificationRepo, log))
	busCtx, stopBus := context.WithCancel(ctx)
	go bus.Run(busCtx)

	authUC := auth.NewAuthUseCase(userRepo, workspaceRepo, memberRepo, registry, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	workspaceUC := usecase.NewWorkspaceUseCase(usecase.WorkspaceDeps{
		Workspaces:   workspaceRepo,
		Members:      memberRepo,
		Invites:      inviteRepo,
		Shards:       registry,
		Projects:     projectRepo,
		Tasks:        taskRepo,
		Boards:       boardRepo,
		Teams:        teamRepo,
		Chat:         chatRepo,
		Calendar:     calendarRepo,
		Integrations: integrationRepo,
		Boots:        bootRepo,
	})
	memberUC := usecase.NewMemberUseCase(memberRepo, guard, bus)
	inviteUC := usecase.NewInviteUseCase(inviteRepo, memberRepo, teamRepo, guard, ledger, bus, txRunner)
	projectUC := usecase.NewProjectUseCase(projectRepo, ledger, bus)
	taskUC := usecase.NewTaskUseCase(taskRepo, projectRepo, boardRepo, ledger, bus)
	boardUC := usecase.NewBoardUseCase(boardRepo, projectRepo, ledger, bus)
	teamUC := usecase.NewTeamUseCase(teamRepo, guard, ledger, bus)
	chatUC := usecase.NewChatUseCase(chatRepo, guard, ledger)
	calendarUC := usecase.NewCalendarUseCase(calendarRepo, ledger, bus)
	commentUC := usecase.NewCommentUseCase(commentRepo, taskRepo, guard, bus)
	integrationUC := usecase.NewIntegrationUseCase(integrationRepo, guard, ledger)
	activityUC := usecase.NewActivityUseCase(activityRepo, notificationRepo, workspaceRepo, ledger)

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	bootsUC := usecase.NewBootsUseCase(bootRepo, workspaceRepo, anthropicSvc, ledger)

	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	receiptUC := billing.NewReceiptUseCase(workspaceRepo, receiptGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())

	httpMetrics := metrics.NewHTTPMetrics(cfg.App.Name)
	app.Use(httpMetrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TaskHive API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		WorkspaceUC:   workspaceUC,
		MemberUC:      memberUC,
		InviteUC:      inviteUC,
		ProjectUC:     projectUC,
		TaskUC:        taskUC,
		BoardUC:       boardUC,
		TeamUC:        teamUC,
		ChatUC:        chatUC,
		CalendarUC:    calendarUC,
		CommentUC:     commentUC,
		IntegrationUC: integrationUC,
		ActivityUC:    activityUC,
		BootsUC:       bootsUC,
		ReceiptUC:     receiptUC,
		Reconciler:    reconciler,
		Guard:         guard,
		Billing:       cfg.Billing,
		JWTSecret:     cfg.JWT.Secret,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// El bus se apaga después del servidor: no entran más publicaciones.
	stopBus()
	bus.Wait()

	log.Info().Msg("aplicación detenida")
}
