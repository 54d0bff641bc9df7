package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/quota"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// WorkspaceUseCase ciclo de vida del workspace (salvo billing, que escribe el
// reconciler) más el reporte de uso contra los techos del plan.
type WorkspaceUseCase struct {
	workspaces   repository.WorkspaceRepository
	members      repository.MemberRepository
	invites      repository.InviteRepository
	shards       repository.ShardAssigner
	projects     repository.ProjectRepository
	tasks        repository.TaskRepository
	boards       repository.BoardRepository
	teams        repository.TeamRepository
	chat         repository.ChatRepository
	calendar     repository.CalendarRepository
	integrations repository.IntegrationRepository
	boots        repository.BootRepository
}

// WorkspaceDeps dependencias del caso de uso (son muchas: el reporte de uso
// cuenta en vivo cada categoría contra su repo).
type WorkspaceDeps struct {
	Workspaces   repository.WorkspaceRepository
	Members      repository.MemberRepository
	Invites      repository.InviteRepository
	Shards       repository.ShardAssigner
	Projects     repository.ProjectRepository
	Tasks        repository.TaskRepository
	Boards       repository.BoardRepository
	Teams        repository.TeamRepository
	Chat         repository.ChatRepository
	Calendar     repository.CalendarRepository
	Integrations repository.IntegrationRepository
	Boots        repository.BootRepository
}

// NewWorkspaceUseCase construye el caso de uso.
func NewWorkspaceUseCase(d WorkspaceDeps) *WorkspaceUseCase {
	return &WorkspaceUseCase{
		workspaces:   d.Workspaces,
		members:      d.Members,
		invites:      d.Invites,
		shards:       d.Shards,
		projects:     d.Projects,
		tasks:        d.Tasks,
		boards:       d.Boards,
		teams:        d.Teams,
		chat:         d.Chat,
		calendar:     d.Calendar,
		integrations: d.Integrations,
		boots:        d.Boots,
	}
}

// Create crea un workspace adicional con el caller como owner.
// Mismo orden que el registro: workspace → shard → membership.
func (uc *WorkspaceUseCase) Create(ctx context.Context, userID string, in dto.CreateWorkspaceRequest) (*dto.WorkspaceResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	currency := in.Currency
	if currency == "" {
		currency = "USD"
	}
	now := time.Now()
	ws := &entity.Workspace{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Plan:          plan.Free,
		BillingStatus: plan.StatusActive,
		Currency:      currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.workspaces.Create(ctx, ws); err != nil {
		return nil, err
	}
	if _, err := uc.shards.Assign(ctx, ws.ID); err != nil {
		return nil, fmt.Errorf("crear workspace: asignar shard: %w", err)
	}
	member := &entity.WorkspaceMember{
		ID:          uuid.New().String(),
		WorkspaceID: ws.ID,
		UserID:      userID,
		Role:        plan.RoleOwner,
		CreatedAt:   now,
	}
	if err := uc.members.Create(ctx, member); err != nil {
		return nil, err
	}
	return workspaceToResponse(ws), nil
}

// GetByID obtiene un workspace (nil si no existe).
func (uc *WorkspaceUseCase) GetByID(ctx context.Context, id string) (*dto.WorkspaceResponse, error) {
	ws, err := uc.workspaces.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, nil
	}
	return workspaceToResponse(ws), nil
}

// ListForUser lista los workspaces donde el usuario es miembro.
func (uc *WorkspaceUseCase) ListForUser(ctx context.Context, userID string) (*dto.WorkspaceListResponse, error) {
	memberships, err := uc.members.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := &dto.WorkspaceListResponse{Items: make([]dto.WorkspaceResponse, 0, len(memberships))}
	for _, m := range memberships {
		ws, err := uc.workspaces.GetByID(ctx, m.WorkspaceID)
		if err != nil {
			return nil, err
		}
		if ws != nil {
			out.Items = append(out.Items, *workspaceToResponse(ws))
		}
	}
	return out, nil
}

// UpdateName renombra el workspace.
func (uc *WorkspaceUseCase) UpdateName(ctx context.Context, id string, in dto.UpdateWorkspaceRequest) error {
	if in.Name == "" {
		return domain.ErrInvalidInput
	}
	return uc.workspaces.UpdateName(ctx, id, in.Name)
}

// Usage reporta uso vivo vs techo por categoría (pantalla de plan). Cada
// conteo va contra el shard dueño en el momento de la consulta.
func (uc *WorkspaceUseCase) Usage(ctx context.Context, workspaceID string) (*dto.UsageResponse, error) {
	ws, err := uc.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	type counter struct {
		cat   plan.Category
		count func(context.Context) (int, error)
	}
	counters := []counter{
		{plan.CategoryProjects, func(ctx context.Context) (int, error) { return uc.projects.CountByWorkspace(ctx, workspaceID) }},
		{plan.CategoryTasks, func(ctx context.Context) (int, error) { return uc.tasks.CountByWorkspace(ctx, workspaceID) }},
		{plan.CategoryBoards, func(ctx context.Context) (int, error) { return uc.boards.CountByWorkspace(ctx, workspaceID) }},
		{plan.CategoryTeams, func(ctx context.Context) (int, error) { return uc.teams.CountByWorkspace(ctx, workspaceID) }},
		{plan.CategoryMembers, func(ctx context.Context) (int, error) { return uc.countMembers(ctx, workspaceID, now) }},
		{plan.CategoryCalendarEvents, func(ctx context.Context) (int, error) { return uc.calendar.CountByWorkspace(ctx, workspaceID) }},
		{plan.CategoryChat, func(ctx context.Context) (int, error) { return uc.chat.CountByWorkspace(ctx, workspaceID) }},
		{plan.CategoryIntegrations, func(ctx context.Context) (int, error) { return uc.integrations.CountByWorkspace(ctx, workspaceID) }},
		{plan.CategoryBoots, func(ctx context.Context) (int, error) {
			return uc.boots.CountSince(ctx, workspaceID, quota.PeriodStart(ws, now))
		}},
	}

	p := plan.FromString(string(ws.Plan))
	out := &dto.UsageResponse{Plan: string(p), Categories: make([]dto.CategoryUsage, 0, len(counters))}
	for _, c := range counters {
		used, err := c.count(ctx)
		if err != nil {
			return nil, fmt.Errorf("usage %s: %w", c.cat, err)
		}
		out.Categories = append(out.Categories, dto.CategoryUsage{
			Category: string(c.cat),
			Used:     used,
			Ceiling:  int(plan.CeilingFor(p, c.cat)),
		})
	}
	return out, nil
}

// countMembers suma memberships + invitaciones pendientes (la categoría
// members cubre ambas).
func (uc *WorkspaceUseCase) countMembers(ctx context.Context, workspaceID string, now time.Time) (int, error) {
	members, err := uc.members.CountByWorkspace(ctx, workspaceID)
	if err != nil {
		return 0, err
	}
	pending, err := uc.invites.CountPending(ctx, workspaceID, now)
	if err != nil {
		return 0, err
	}
	return members + pending, nil
}

func workspaceToResponse(ws *entity.Workspace) *dto.WorkspaceResponse {
	out := &dto.WorkspaceResponse{
		ID:            ws.ID,
		Name:          ws.Name,
		Plan:          string(ws.Plan),
		BillingStatus: string(ws.BillingStatus),
		Currency:      ws.Currency,
		NextBillingAt: ws.NextBillingAt,
		CreatedAt:     ws.CreatedAt,
	}
	if ws.BillingInterval != nil {
		out.BillingInterval = string(*ws.BillingInterval)
	}
	if ws.BillingProvider != nil {
		out.BillingProvider = string(*ws.BillingProvider)
	}
	return out
}
