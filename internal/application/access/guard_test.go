package access_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/application/access"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
)

// fakeMemberRepo memberships en memoria, clave (workspace, usuario).
type fakeMemberRepo struct {
	rows map[string]*entity.WorkspaceMember
	err  error
}

func memberKey(workspaceID, userID string) string { return workspaceID + "/" + userID }

func newFakeMemberRepo(ms ...*entity.WorkspaceMember) *fakeMemberRepo {
	r := &fakeMemberRepo{rows: make(map[string]*entity.WorkspaceMember)}
	for _, m := range ms {
		r.rows[memberKey(m.WorkspaceID, m.UserID)] = m
	}
	return r
}

func (r *fakeMemberRepo) Create(_ context.Context, m *entity.WorkspaceMember) error {
	key := memberKey(m.WorkspaceID, m.UserID)
	if _, ok := r.rows[key]; ok {
		return domain.ErrDuplicate
	}
	r.rows[key] = m
	return nil
}

func (r *fakeMemberRepo) Get(_ context.Context, workspaceID, userID string) (*entity.WorkspaceMember, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.rows[memberKey(workspaceID, userID)], nil
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
	delete(r.rows, memberKey(workspaceID, userID))
	return nil
}

// fakeTeamRepo teams y pertenencias en memoria.
type fakeTeamRepo struct {
	teams   map[string]*entity.Team
	members map[string]bool // teamID/userID
}

func newFakeTeamRepo(teams ...*entity.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: make(map[string]*entity.Team), members: make(map[string]bool)}
	for _, t := range teams {
		r.teams[t.ID] = t
	}
	return r
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

func (r *fakeTeamRepo) ListByWorkspace(_ context.Context, workspaceID string) ([]*entity.Team, error) {
	var out []*entity.Team
	for _, t := range r.teams {
		if t.WorkspaceID == workspaceID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) CountByWorkspace(ctx context.Context, workspaceID string) (int, error) {
	ts, _ := r.ListByWorkspace(ctx, workspaceID)
	return len(ts), nil
}

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

func member(workspaceID, userID string, role plan.Role) *entity.WorkspaceMember {
	return &entity.WorkspaceMember{
		ID:          workspaceID + "-" + userID,
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
		CreatedAt:   time.Now(),
	}
}

func TestVerifyAccess_NoMiembroEsFalseSinError(t *testing.T) {
	guard := access.NewGuard(newFakeMemberRepo(), newFakeTeamRepo())

	ok, err := guard.VerifyAccess(context.Background(), "user-1", "ws-1")
	require.NoError(t, err, "no-miembro es un resultado esperado, nunca un error")
	assert.False(t, ok)
}

func TestVerifyAccess_MiembroVisibleInmediatamente(t *testing.T) {
	members := newFakeMemberRepo()
	guard := access.NewGuard(members, newFakeTeamRepo())
	ctx := context.Background()

	ok, err := guard.VerifyAccess(ctx, "user-1", "ws-1")
	require.NoError(t, err)
	require.False(t, ok)

	// Alta de membership: la siguiente consulta ya la ve (sin cache).
	require.NoError(t, members.Create(ctx, member("ws-1", "user-1", plan.RoleMember)))

	ok, err = guard.VerifyAccess(ctx, "user-1", "ws-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyAccess_ErrorDeInfraSePropaga(t *testing.T) {
	members := newFakeMemberRepo()
	members.err = errors.New("conexión caída")
	guard := access.NewGuard(members, newFakeTeamRepo())

	_, err := guard.VerifyAccess(context.Background(), "user-1", "ws-1")
	assert.Error(t, err, "un fallo de infraestructura nunca degrada a denegado silencioso")
}

func TestRequireAdmin_MatrizDeRoles(t *testing.T) {
	cases := []struct {
		role plan.Role
		want bool
	}{
		{plan.RoleOwner, true},
		{plan.RoleAdmin, true},
		{plan.RoleMember, false},
	}
	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			members := newFakeMemberRepo(member("ws-1", "user-1", tc.role))
			guard := access.NewGuard(members, newFakeTeamRepo())

			ok, err := guard.RequireAdmin(context.Background(), "user-1", "ws-1")
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestRequireAdmin_NoMiembroEsFalse(t *testing.T) {
	guard := access.NewGuard(newFakeMemberRepo(), newFakeTeamRepo())

	ok, err := guard.RequireAdmin(context.Background(), "user-1", "ws-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyTeamAccess_ExigeMembershipDelWorkspace(t *testing.T) {
	team := &entity.Team{ID: "team-1", WorkspaceID: "ws-1", Name: "backend"}
	teams := newFakeTeamRepo(team)
	ctx := context.Background()
	require.NoError(t, teams.AddMember(ctx, &entity.TeamMember{TeamID: "team-1", UserID: "user-1"}))

	// Integrante del team pero SIN membership del workspace: denegado.
	guard := access.NewGuard(newFakeMemberRepo(), teams)
	ok, err := guard.VerifyTeamAccess(ctx, "user-1", "team-1")
	require.NoError(t, err)
	assert.False(t, ok, "un team nunca otorga acceso a un workspace ajeno")

	// Con membership del workspace: permitido.
	guard = access.NewGuard(newFakeMemberRepo(member("ws-1", "user-1", plan.RoleMember)), teams)
	ok, err = guard.VerifyTeamAccess(ctx, "user-1", "team-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyTeamAccess_TeamInexistenteEsFalse(t *testing.T) {
	guard := access.NewGuard(newFakeMemberRepo(), newFakeTeamRepo())

	ok, err := guard.VerifyTeamAccess(context.Background(), "user-1", "team-fantasma")
	require.NoError(t, err)
	assert.False(t, ok)
}
