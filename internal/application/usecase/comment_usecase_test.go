package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/application/access"
	"github.com/taskhive/taskhive-api/internal/application/events"
	"github.com/taskhive/taskhive-api/internal/application/usecase"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/pkg/logger"
)

// fakeCommentRepo agrupa los comentarios por shard para poder observar el
// recorrido de FindByID: orden ascendente, primer hit gana.
type fakeCommentRepo struct {
	shards  []map[string]*entity.Comment
	visited []int
}

func (r *fakeCommentRepo) Create(_ context.Context, _ *entity.Comment) error { return nil }
func (r *fakeCommentRepo) ListByTask(_ context.Context, _, _ string) ([]*entity.Comment, error) {
	return nil, nil
}
func (r *fakeCommentRepo) FindByID(_ context.Context, id string) (*entity.Comment, error) {
	for i, shard := range r.shards {
		r.visited = append(r.visited, i)
		if c, ok := shard[id]; ok {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}
func (r *fakeCommentRepo) Update(_ context.Context, _ *entity.Comment) error { return nil }
func (r *fakeCommentRepo) Delete(_ context.Context, workspaceID, id string) error {
	for _, shard := range r.shards {
		if c, ok := shard[id]; ok {
			if c.WorkspaceID != workspaceID {
				return domain.ErrNotFound
			}
			delete(shard, id)
			return nil
		}
	}
	return domain.ErrNotFound
}

type commentFixture struct {
	uc       *usecase.CommentUseCase
	comments *fakeCommentRepo
}

// newCommentFixture arma el caso de uso con un comentario de "author-1" que
// vive en el shard 2 de un workspace con admin "admin-1" y un member raso
// "other-1". "outsider-1" no es miembro.
func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	members := &fakeMemberRepo{rows: make(map[string]*entity.WorkspaceMember)}
	teams := &fakeTeamRepo{teams: make(map[string]*entity.Team), members: make(map[string]bool)}

	ctx := context.Background()
	require.NoError(t, members.Create(ctx, &entity.WorkspaceMember{ID: "m-a", WorkspaceID: "ws-1", UserID: "admin-1", Role: plan.RoleAdmin}))
	require.NoError(t, members.Create(ctx, &entity.WorkspaceMember{ID: "m-b", WorkspaceID: "ws-1", UserID: "author-1", Role: plan.RoleMember}))
	require.NoError(t, members.Create(ctx, &entity.WorkspaceMember{ID: "m-c", WorkspaceID: "ws-1", UserID: "other-1", Role: plan.RoleMember}))

	comments := &fakeCommentRepo{shards: []map[string]*entity.Comment{
		{},
		{},
		{"c-1": {ID: "c-1", WorkspaceID: "ws-1", TaskID: "t-1", UserID: "author-1", Body: "hola"}},
	}}

	// DeleteByID nunca toca el repo de tareas.
	uc := usecase.NewCommentUseCase(comments, nil, access.NewGuard(members, teams), events.NewBus(16, logger.Nop()))
	return &commentFixture{uc: uc, comments: comments}
}

func TestCommentDeleteByID_LocalizaEnShardTardioYBorra(t *testing.T) {
	f := newCommentFixture(t)

	err := f.uc.DeleteByID(context.Background(), "author-1", "c-1")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, f.comments.visited, "el recorrido es ascendente hasta el hit")
	assert.Empty(t, f.comments.shards[2], "se borra en el shard donde se lo encontró")
}

func TestCommentDeleteByID_NoMiembroRecibeNotFound(t *testing.T) {
	f := newCommentFixture(t)

	err := f.uc.DeleteByID(context.Background(), "outsider-1", "c-1")
	assert.ErrorIs(t, err, domain.ErrNotFound, "a un extraño no se le revela que el comentario existe")
	assert.Contains(t, f.comments.shards[2], "c-1")
}

func TestCommentDeleteByID_MiembroNoAutorRecibeForbidden(t *testing.T) {
	f := newCommentFixture(t)

	err := f.uc.DeleteByID(context.Background(), "other-1", "c-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Contains(t, f.comments.shards[2], "c-1")
}

func TestCommentDeleteByID_AdminBorraComentarioAjeno(t *testing.T) {
	f := newCommentFixture(t)

	err := f.uc.DeleteByID(context.Background(), "admin-1", "c-1")
	require.NoError(t, err)
	assert.Empty(t, f.comments.shards[2])
}

func TestCommentDeleteByID_InexistenteEsNotFound(t *testing.T) {
	f := newCommentFixture(t)

	err := f.uc.DeleteByID(context.Background(), "admin-1", "c-ausente")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
