package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/application/access"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	httpapi "github.com/taskhive/taskhive-api/internal/interfaces/http"
	"github.com/taskhive/taskhive-api/pkg/jwt"
)

const testSecret = "secreto-de-test"

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos para el Guard
// ──────────────────────────────────────────────────────────────────────────────

type fakeMemberRepo struct {
	rows map[string]*entity.WorkspaceMember // workspaceID+"/"+userID
	err  error
}

func (r *fakeMemberRepo) Create(_ context.Context, m *entity.WorkspaceMember) error {
	r.rows[m.WorkspaceID+"/"+m.UserID] = m
	return nil
}
func (r *fakeMemberRepo) Get(_ context.Context, workspaceID, userID string) (*entity.WorkspaceMember, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.rows[workspaceID+"/"+userID], nil
}
func (r *fakeMemberRepo) ListByWorkspace(_ context.Context, _ string) ([]*entity.WorkspaceMember, error) {
	return nil, nil
}
func (r *fakeMemberRepo) ListByUser(_ context.Context, _ string) ([]*entity.WorkspaceMember, error) {
	return nil, nil
}
func (r *fakeMemberRepo) CountByWorkspace(_ context.Context, _ string) (int, error) { return 0, nil }
func (r *fakeMemberRepo) Delete(_ context.Context, workspaceID, userID string) error {
	delete(r.rows, workspaceID+"/"+userID)
	return nil
}

type fakeTeamRepo struct{}

func (fakeTeamRepo) Create(_ context.Context, _ *entity.Team) error { return nil }
func (fakeTeamRepo) GetByID(_ context.Context, _, _ string) (*entity.Team, error) {
	return nil, nil
}
func (fakeTeamRepo) FindByID(_ context.Context, _ string) (*entity.Team, error) {
	return nil, domain.ErrNotFound
}
func (fakeTeamRepo) ListByWorkspace(_ context.Context, _ string) ([]*entity.Team, error) {
	return nil, nil
}
func (fakeTeamRepo) CountByWorkspace(_ context.Context, _ string) (int, error) { return 0, nil }
func (fakeTeamRepo) Delete(_ context.Context, _, _ string) error               { return nil }
func (fakeTeamRepo) AddMember(_ context.Context, _ *entity.TeamMember) error   { return nil }
func (fakeTeamRepo) IsMember(_ context.Context, _, _, _ string) (bool, error)  { return false, nil }
func (fakeTeamRepo) ListMembers(_ context.Context, _, _ string) ([]*entity.TeamMember, error) {
	return nil, nil
}
func (fakeTeamRepo) RemoveMember(_ context.Context, _, _, _ string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func tokenFor(t *testing.T, userID, email string) string {
	t.Helper()
	tok, err := jwt.Generate(testSecret, userID, email, "taskhive-test", 15)
	require.NoError(t, err)
	return tok
}

// newWorkspaceApp arma una app con auth + guard de workspace: "user-1" es
// admin de "ws-1", "user-2" es member raso y "user-3" no es miembro.
func newWorkspaceApp(t *testing.T, members *fakeMemberRepo) *fiber.App {
	t.Helper()
	guard := access.NewGuard(members, fakeTeamRepo{})

	app := fiber.New()
	api := app.Group("/api", httpapi.AuthMiddleware(testSecret))
	ws := api.Group("/workspaces/:workspaceID", httpapi.WorkspaceAccessMiddleware(guard))
	ws.Get("/", func(c *fiber.Ctx) error {
		role, _ := c.Locals(httpapi.LocalRole).(plan.Role)
		return c.JSON(fiber.Map{
			"workspace_id": httpapi.GetWorkspaceID(c),
			"role":         string(role),
		})
	})
	ws.Delete("/", httpapi.RequireWorkspaceRole(plan.RoleOwner, plan.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})
	return app
}

func membersFixture() *fakeMemberRepo {
	return &fakeMemberRepo{rows: map[string]*entity.WorkspaceMember{
		"ws-1/user-1": {ID: "m-1", WorkspaceID: "ws-1", UserID: "user-1", Role: plan.RoleAdmin},
		"ws-1/user-2": {ID: "m-2", WorkspaceID: "ws-1", UserID: "user-2", Role: plan.RoleMember},
	}}
}

func errCode(t *testing.T, body *json.Decoder) string {
	t.Helper()
	var out struct {
		Code string `json:"code"`
	}
	require.NoError(t, body.Decode(&out))
	return out.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinHeaderEs401(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", httpapi.AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.SendString(httpapi.GetUserID(c))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errCode(t, json.NewDecoder(resp.Body)))
}

func TestAuthMiddleware_FormatoInvalidoEs401(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", httpapi.AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.SendString(httpapi.GetUserID(c))
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Token abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errCode(t, json.NewDecoder(resp.Body)))
}

func TestAuthMiddleware_TokenDeOtroSecretoEs401(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", httpapi.AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.SendString(httpapi.GetUserID(c))
	})

	forged, err := jwt.Generate("otro-secreto", "user-1", "a@b.test", "taskhive-test", 15)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", errCode(t, json.NewDecoder(resp.Body)))
}

func TestAuthMiddleware_TokenValidoExponeIdentidad(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", httpapi.AuthMiddleware(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": httpapi.GetUserID(c), "email": httpapi.GetUserEmail(c)})
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-1", "ana@acme.test"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "user-1", out["user_id"])
	assert.Equal(t, "ana@acme.test", out["email"])
}

// ──────────────────────────────────────────────────────────────────────────────
// WorkspaceAccessMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestWorkspaceAccess_MiembroResuelveRol(t *testing.T) {
	app := newWorkspaceApp(t, membersFixture())

	req := httptest.NewRequest("GET", "/api/workspaces/ws-1", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-2", "b@acme.test"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "ws-1", out["workspace_id"])
	assert.Equal(t, "member", out["role"])
}

func TestWorkspaceAccess_NoMiembroEs403(t *testing.T) {
	app := newWorkspaceApp(t, membersFixture())

	req := httptest.NewRequest("GET", "/api/workspaces/ws-1", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-3", "c@acme.test"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errCode(t, json.NewDecoder(resp.Body)))
}

// El workspace inexistente responde igual que el no-miembro: 403, sin filtrar
// existencia.
func TestWorkspaceAccess_WorkspaceAjenoIndistinguible(t *testing.T) {
	app := newWorkspaceApp(t, membersFixture())

	req := httptest.NewRequest("GET", "/api/workspaces/ws-fantasma", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-1", "a@acme.test"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestWorkspaceAccess_ErrorDeInfraEs503NuncaFailOpen(t *testing.T) {
	members := membersFixture()
	members.err = errors.New("conexión rechazada")
	app := newWorkspaceApp(t, members)

	req := httptest.NewRequest("GET", "/api/workspaces/ws-1", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-1", "a@acme.test"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "ACCESS_CHECK_FAILED", errCode(t, json.NewDecoder(resp.Body)))
}

func TestRequireWorkspaceRole_MemberNoAccedeRutaAdmin(t *testing.T) {
	app := newWorkspaceApp(t, membersFixture())

	req := httptest.NewRequest("DELETE", "/api/workspaces/ws-1", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-2", "b@acme.test"))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	req = httptest.NewRequest("DELETE", "/api/workspaces/ws-1", nil)
	req.Header.Set("Authorization", "Bearer "+tokenFor(t, "user-1", "a@acme.test"))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}
