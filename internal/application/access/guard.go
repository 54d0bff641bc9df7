package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// Guard autoriza pares (usuario, workspace) y reporta el rol. Lectura pura:
// no cachea nada entre requests, cada decisión refleja el estado commiteado
// actual de la tabla de memberships (shard primario).
//
// "No es miembro" es un resultado esperado y frecuente: se devuelve como
// booleano, nunca como error.
type Guard struct {
	members repository.MemberRepository
	teams   repository.TeamRepository
}

// NewGuard construye el guard con los puertos de membership y teams.
func NewGuard(members repository.MemberRepository, teams repository.TeamRepository) *Guard {
	return &Guard{members: members, teams: teams}
}

// VerifyAccess informa si existe una fila de membership para (usuario, workspace).
func (g *Guard) VerifyAccess(ctx context.Context, userID, workspaceID string) (bool, error) {
	m, err := g.members.Get(ctx, workspaceID, userID)
	if err != nil {
		return false, fmt.Errorf("verify access ws=%s: %w", workspaceID, err)
	}
	return m != nil, nil
}

// RoleOf devuelve el rol del usuario en el workspace. ok=false si no es miembro.
func (g *Guard) RoleOf(ctx context.Context, userID, workspaceID string) (plan.Role, bool, error) {
	m, err := g.members.Get(ctx, workspaceID, userID)
	if err != nil {
		return "", false, fmt.Errorf("role of ws=%s: %w", workspaceID, err)
	}
	if m == nil {
		return "", false, nil
	}
	return m.Role, true, nil
}

// RequireAdmin informa si el usuario es owner o admin del workspace.
func (g *Guard) RequireAdmin(ctx context.Context, userID, workspaceID string) (bool, error) {
	role, ok, err := g.RoleOf(ctx, userID, workspaceID)
	if err != nil {
		return false, err
	}
	return ok && role.IsAdmin(), nil
}

// VerifyTeamAccess informa si el usuario pertenece al team. El team es una
// entidad shard-local: primero se localiza con el fan-out del router (solo se
// conoce el teamID) y luego se consulta la pertenencia en ese mismo shard.
// Además exige membership en el workspace dueño: un team nunca otorga acceso
// a un workspace al que no se pertenece.
func (g *Guard) VerifyTeamAccess(ctx context.Context, userID, teamID string) (bool, error) {
	team, err := g.teams.FindByID(ctx, teamID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("verify team access team=%s: %w", teamID, err)
	}
	member, err := g.VerifyAccess(ctx, userID, team.WorkspaceID)
	if err != nil || !member {
		return false, err
	}
	return g.teams.IsMember(ctx, team.WorkspaceID, teamID, userID)
}
