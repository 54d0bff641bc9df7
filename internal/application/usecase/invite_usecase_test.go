package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/application/access"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/events"
	"github.com/taskhive/taskhive-api/internal/application/quota"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
	"github.com/taskhive/taskhive-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de los puertos del shard primario
// ──────────────────────────────────────────────────────────────────────────────

type fakeWorkspaceRepo struct {
	ws map[string]*entity.Workspace
}

func (r *fakeWorkspaceRepo) Create(_ context.Context, ws *entity.Workspace) error {
	r.ws[ws.ID] = ws
	return nil
}
func (r *fakeWorkspaceRepo) GetByID(_ context.Context, id string) (*entity.Workspace, error) {
	return r.ws[id], nil
}
func (r *fakeWorkspaceRepo) UpdateName(_ context.Context, _, _ string) error { return nil }
func (r *fakeWorkspaceRepo) UpdateBilling(_ context.Context, _ string, _ entity.BillingRecord) error {
	return nil
}
func (r *fakeWorkspaceRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeMemberRepo struct {
	rows map[string]*entity.WorkspaceMember
}

func mkey(workspaceID, userID string) string { return workspaceID + "/" + userID }

func (r *fakeMemberRepo) Create(_ context.Context, m *entity.WorkspaceMember) error {
	key := mkey(m.WorkspaceID, m.UserID)
	if _, ok := r.rows[key]; ok {
		return domain.ErrDuplicate
	}
	r.rows[key] = m
	return nil
}
func (r *fakeMemberRepo) Get(_ context.Context, workspaceID, userID string) (*entity.WorkspaceMember, error) {
	return r.rows[mkey(workspaceID, userID)], nil
}
func (r *fakeMemberRepo) ListByWorkspace(_ context.Context, workspaceID string) ([]*entity.WorkspaceMember, error) {
	var out []*entity.WorkspaceMember
	for _, m := range r.rows {
		if m.WorkspaceID == workspaceID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *fakeMemberRepo) ListByUser(_ context.Context, userID string) ([]*entity.WorkspaceMember, error) {
	var out []*entity.WorkspaceMember
	for _, m := range r.rows {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *fakeMemberRepo) CountByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	ms, _ := r.ListByWorkspace(ctx, workspaceID)
	return len(ms), nil
}
func (r *fakeMemberRepo) Delete(_ context.Context, workspaceID, userID string) error {
	delete(r.rows, mkey(workspaceID, userID))
	return nil
}

type fakeInviteRepo struct {
	rows map[string]*entity.Invite // por ID
}

func (r *fakeInviteRepo) Create(_ context.Context, inv *entity.Invite) error {
	r.rows[inv.ID] = inv
	return nil
}
func (r *fakeInviteRepo) GetByToken(_ context.Context, token string) (*entity.Invite, error) {
	for _, inv := range r.rows {
		if inv.Token == token {
			return inv, nil
		}
	}
	return nil, nil
}
func (r *fakeInviteRepo) GetByID(_ context.Context, id string) (*entity.Invite, error) {
	return r.rows[id], nil
}
func (r *fakeInviteRepo) ListByWorkspace(_ context.Context, workspaceID string) ([]*entity.Invite, error) {
	var out []*entity.Invite
	for _, inv := range r.rows {
		if inv.WorkspaceID == workspaceID {
			out = append(out, inv)
		}
	}
	return out, nil
}
func (r *fakeInviteRepo) CountPending(_ context.Context, workspaceID string, now time.Time) (int, error) {
	n := 0
	for _, inv := range r.rows {
		if inv.WorkspaceID == workspaceID && inv.Pending(now) {
			n++
		}
	}
	return n, nil
}
func (r *fakeInviteRepo) UpdateStatus(_ context.Context, id string, status entity.InviteStatus) error {
	inv, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	inv.Status = status
	return nil
}

type fakeTeamRepo struct {
	teams   map[string]*entity.Team
	members map[string]bool
}

func (r *fakeTeamRepo) Create(_ context.Context, t *entity.Team) error {
	r.teams[t.ID] = t
	return nil
}
func (r *fakeTeamRepo) GetByID(_ context.Context, workspaceID, id string) (*entity.Team, error) {
	t, ok := r.teams[id]
	if !ok || t.WorkspaceID != workspaceID {
		return nil, nil
	}
	return t, nil
}
func (r *fakeTeamRepo) FindByID(_ context.Context, id string) (*entity.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}
func (r *fakeTeamRepo) ListByWorkspace(_ context.Context, _ string) ([]*entity.Team, error) {
	return nil, nil
}
func (r *fakeTeamRepo) CountByWorkspace(_ context.Context, _ string) (int, error) { return 0, nil }
func (r *fakeTeamRepo) Delete(_ context.Context, _, id string) error {
	delete(r.teams, id)
	return nil
}
func (r *fakeTeamRepo) AddMember(_ context.Context, m *entity.TeamMember) error {
	r.members[m.TeamID+"/"+m.UserID] = true
	return nil
}
func (r *fakeTeamRepo) IsMember(_ context.Context, _, teamID, userID string) (bool, error) {
	return r.members[teamID+"/"+userID], nil
}
func (r *fakeTeamRepo) ListMembers(_ context.Context, _, _ string) ([]*entity.TeamMember, error) {
	return nil, nil
}
func (r *fakeTeamRepo) RemoveMember(_ context.Context, _, teamID, userID string) error {
	delete(r.members, teamID+"/"+userID)
	return nil
}

// fakeTxRunner ejecuta el cierre directo sobre los mismos fakes: suficiente
// para verificar el efecto conjunto (membership creada + invitación marcada).
type fakeTxRunner struct {
	members repository.MemberRepository
	invites repository.InviteRepository
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(repository.MemberRepository, repository.InviteRepository) error) error {
	return fn(r.members, r.invites)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type inviteFixture struct {
	uc      *usecase.InviteUseCase
	invites *fakeInviteRepo
	members *fakeMemberRepo
	teams   *fakeTeamRepo
}

// newInviteFixture arma el caso de uso con un workspace free cuyo owner es
// "owner-1" y un member raso "member-1".
func newInviteFixture(t *testing.T) *inviteFixture {
	t.Helper()
	workspaces := &fakeWorkspaceRepo{ws: map[string]*entity.Workspace{
		"ws-1": {ID: "ws-1", Name: "acme", Plan: plan.Free, BillingStatus: plan.StatusActive},
	}}
	members := &fakeMemberRepo{rows: make(map[string]*entity.WorkspaceMember)}
	invites := &fakeInviteRepo{rows: make(map[string]*entity.Invite)}
	teams := &fakeTeamRepo{teams: make(map[string]*entity.Team), members: make(map[string]bool)}

	ctx := context.Background()
	require.NoError(t, members.Create(ctx, &entity.WorkspaceMember{ID: "m-o", WorkspaceID: "ws-1", UserID: "owner-1", Role: plan.RoleOwner}))
	require.NoError(t, members.Create(ctx, &entity.WorkspaceMember{ID: "m-m", WorkspaceID: "ws-1", UserID: "member-1", Role: plan.RoleMember}))

	guard := access.NewGuard(members, teams)
	ledger := quota.NewLedger(workspaces)
	bus := events.NewBus(16, logger.Nop())
	tx := &fakeTxRunner{members: members, invites: invites}

	return &inviteFixture{
		uc:      usecase.NewInviteUseCase(invites, members, teams, guard, ledger, bus, tx),
		invites: invites,
		members: members,
		teams:   teams,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestInviteCreate_SoloAdmin(t *testing.T) {
	f := newInviteFixture(t)

	_, err := f.uc.Create(context.Background(), "member-1", "ws-1", dto.CreateInviteRequest{
		Email: "nuevo@acme.test", Role: "member",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestInviteCreate_EmiteTokenConVencimiento(t *testing.T) {
	f := newInviteFixture(t)

	out, err := f.uc.Create(context.Background(), "owner-1", "ws-1", dto.CreateInviteRequest{
		Email: "Nuevo@Acme.Test", Role: "member",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token, "el token solo es visible al crear")
	assert.Equal(t, "nuevo@acme.test", out.Email, "el email se normaliza a minúsculas")
	assert.Equal(t, "pending", out.Status)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), out.ExpiresAt, time.Minute,
		"la invitación vence a los 7 días")
}

func TestInviteCreate_RolOwnerNoInvitable(t *testing.T) {
	f := newInviteFixture(t)

	_, err := f.uc.Create(context.Background(), "owner-1", "ws-1", dto.CreateInviteRequest{
		Email: "nuevo@acme.test", Role: "owner",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La cuota de members cuenta memberships + invitaciones pendientes: en free
// (techo 5) con 2 miembros entran 3 invitaciones y la cuarta se rechaza.
func TestInviteCreate_CuotaCuentaMiembrosMasPendientes(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.uc.Create(ctx, "owner-1", "ws-1", dto.CreateInviteRequest{
			Email: "p" + string(rune('a'+i)) + "@acme.test", Role: "member",
		})
		require.NoError(t, err)
	}

	_, err := f.uc.Create(ctx, "owner-1", "ws-1", dto.CreateInviteRequest{
		Email: "uno-mas@acme.test", Role: "member",
	})
	var qe *quota.QuotaError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, plan.CategoryMembers, qe.Category)
}

func TestInviteAccept_CreaMembershipYMarcaAceptada(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	out, err := f.uc.Create(ctx, "owner-1", "ws-1", dto.CreateInviteRequest{
		Email: "nuevo@acme.test", Role: "admin",
	})
	require.NoError(t, err)

	member, err := f.uc.Accept(ctx, "user-9", dto.AcceptInviteRequest{Token: out.Token})
	require.NoError(t, err)
	assert.Equal(t, "user-9", member.UserID)
	assert.Equal(t, "admin", member.Role)

	// Efecto conjunto: la membership existe y la invitación quedó aceptada.
	m, err := f.members.Get(ctx, "ws-1", "user-9")
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, plan.RoleAdmin, m.Role)

	inv, err := f.invites.GetByID(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.InviteAccepted, inv.Status)
}

func TestInviteAccept_TokenVencidoRechazado(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	inv := &entity.Invite{
		ID: "inv-1", WorkspaceID: "ws-1", Email: "viejo@acme.test",
		Token: "tok-vencido", Role: plan.RoleMember, Status: entity.InvitePending,
		InvitedBy: "owner-1", ExpiresAt: time.Now().Add(-time.Hour), CreatedAt: time.Now().Add(-8 * 24 * time.Hour),
	}
	require.NoError(t, f.invites.Create(ctx, inv))

	_, err := f.uc.Accept(ctx, "user-9", dto.AcceptInviteRequest{Token: "tok-vencido"})
	assert.ErrorIs(t, err, domain.ErrInviteExpired)
}

func TestInviteAccept_SegundoCanjeRechazado(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	out, err := f.uc.Create(ctx, "owner-1", "ws-1", dto.CreateInviteRequest{
		Email: "nuevo@acme.test", Role: "member",
	})
	require.NoError(t, err)

	_, err = f.uc.Accept(ctx, "user-9", dto.AcceptInviteRequest{Token: out.Token})
	require.NoError(t, err)

	_, err = f.uc.Accept(ctx, "user-10", dto.AcceptInviteRequest{Token: out.Token})
	assert.ErrorIs(t, err, domain.ErrInviteUsed)
}

func TestInviteAccept_ConTeamAgregaPertenencia(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()
	require.NoError(t, f.teams.Create(ctx, &entity.Team{ID: "team-1", WorkspaceID: "ws-1", Name: "backend"}))

	teamID := "team-1"
	out, err := f.uc.Create(ctx, "owner-1", "ws-1", dto.CreateInviteRequest{
		Email: "nuevo@acme.test", Role: "member", TeamID: &teamID,
	})
	require.NoError(t, err)

	_, err = f.uc.Accept(ctx, "user-9", dto.AcceptInviteRequest{Token: out.Token})
	require.NoError(t, err)

	ok, err := f.teams.IsMember(ctx, "ws-1", "team-1", "user-9")
	require.NoError(t, err)
	assert.True(t, ok, "la invitación con team agrega también la pertenencia al team")
}

func TestInviteRevoke_YEstadoComputadoEnListado(t *testing.T) {
	f := newInviteFixture(t)
	ctx := context.Background()

	out, err := f.uc.Create(ctx, "owner-1", "ws-1", dto.CreateInviteRequest{
		Email: "nuevo@acme.test", Role: "member",
	})
	require.NoError(t, err)

	require.NoError(t, f.uc.Revoke(ctx, "owner-1", "ws-1", out.ID))

	_, err = f.uc.Accept(ctx, "user-9", dto.AcceptInviteRequest{Token: out.Token})
	assert.ErrorIs(t, err, domain.ErrInviteRevoked)

	list, err := f.uc.List(ctx, "ws-1")
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "revoked", list.Items[0].Status)
	assert.Empty(t, list.Items[0].Token, "el token no se expone en listados")
}
