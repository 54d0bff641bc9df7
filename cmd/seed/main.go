// seed puebla los shards configurados con datos de demo: un usuario
// demo@taskhive.test (password "demo1234"), un workspace free con su
// asignación de shard, y un tablero con proyecto y tareas de ejemplo.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que cmd/api (SHARD_DATABASE_URLS).
// Es idempotente: si el usuario demo ya existe no hace nada.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/internal/infrastructure/postgres"
	"github.com/taskhive/taskhive-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	shards := make([]*postgres.Shard, 0, cfg.Shards.Count())
	for i, dsn := range cfg.Shards.DatabaseURLs {
		pool, err := postgres.NewPool(ctx, dsn)
		if err != nil {
			fail("conexión al shard %d: %v", i, err)
		}
		defer pool.Close()
		shards = append(shards, &postgres.Shard{Index: i, Pool: pool})
	}

	registry, err := postgres.NewShardRegistry(shards)
	if err != nil {
		fail("topología de shards inválida: %v", err)
	}
	if err := registry.LoadAssignments(ctx); err != nil {
		fail("cargar asignaciones de shard: %v", err)
	}

	primary := registry.Primary().Pool
	users := postgres.NewUserRepository(primary)
	workspaces := postgres.NewWorkspaceRepository(primary)
	members := postgres.NewMemberRepository(primary)
	projects := postgres.NewProjectRepository(registry)
	boards := postgres.NewBoardRepository(registry)
	tasks := postgres.NewTaskRepository(registry)

	const demoEmail = "demo@taskhive.test"
	existing, err := users.GetByEmail(ctx, demoEmail)
	if err != nil {
		fail("buscar usuario demo: %v", err)
	}
	if existing != nil {
		fmt.Printf("Usuario %s ya existe, nada que sembrar\n", demoEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		fail("hash password: %v", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        demoEmail,
		Name:         "Demo",
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, user); err != nil {
		fail("crear usuario demo: %v", err)
	}

	ws := &entity.Workspace{
		ID:            uuid.New().String(),
		Name:          "Colmena Demo",
		Plan:          plan.Free,
		BillingStatus: plan.StatusActive,
		Currency:      "USD",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := workspaces.Create(ctx, ws); err != nil {
		fail("crear workspace demo: %v", err)
	}
	shardIdx, err := registry.Assign(ctx, ws.ID)
	if err != nil {
		fail("asignar shard: %v", err)
	}
	if err := members.Create(ctx, &entity.WorkspaceMember{
		ID:          uuid.New().String(),
		WorkspaceID: ws.ID,
		UserID:      user.ID,
		Role:        plan.RoleOwner,
		CreatedAt:   now,
	}); err != nil {
		fail("crear membership owner: %v", err)
	}

	project := &entity.Project{
		ID:          uuid.New().String(),
		WorkspaceID: ws.ID,
		Name:        "Lanzamiento",
		Description: "Proyecto de ejemplo",
		Color:       "#f59e0b",
		Status:      "active",
		CreatedBy:   user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := projects.Create(ctx, project); err != nil {
		fail("crear proyecto demo: %v", err)
	}

	board := &entity.Board{
		ID:          uuid.New().String(),
		WorkspaceID: ws.ID,
		ProjectID:   project.ID,
		Name:        "Sprint 1",
		CreatedBy:   user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := boards.Create(ctx, board); err != nil {
		fail("crear board demo: %v", err)
	}

	demoTasks := []struct {
		title    string
		status   string
		priority string
	}{
		{"Definir alcance", "done", "high"},
		{"Armar backlog", "in_progress", "medium"},
		{"Invitar al equipo", "todo", "medium"},
	}
	for i, dt := range demoTasks {
		task := &entity.Task{
			ID:          uuid.New().String(),
			WorkspaceID: ws.ID,
			ProjectID:   project.ID,
			Title:       dt.title,
			Status:      dt.status,
			Priority:    dt.priority,
			Position:    i,
			CreatedBy:   user.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tasks.Create(ctx, task); err != nil {
			fail("crear tarea demo %q: %v", dt.title, err)
		}
	}

	fmt.Printf("Sembrado workspace %s en shard %d: 1 proyecto, 1 board, %d tareas\n",
		ws.ID, shardIdx, len(demoTasks))
	fmt.Printf("Login: %s / demo1234\n", demoEmail)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
