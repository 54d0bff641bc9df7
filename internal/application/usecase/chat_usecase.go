package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/taskhive/taskhive-api/internal/application/access"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/application/quota"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// ChatUseCase historial de chat del workspace y de sus teams.
type ChatUseCase struct {
	chat   repository.ChatRepository
	guard  *access.Guard
	ledger *quota.Ledger
}

// NewChatUseCase construye el caso de uso.
func NewChatUseCase(chat repository.ChatRepository, guard *access.Guard, ledger *quota.Ledger) *ChatUseCase {
	return &ChatUseCase{chat: chat, guard: guard, ledger: ledger}
}

// Send persiste un mensaje en el canal general o en el de un team. Para el
// canal de un team, el remitente debe pertenecer al team, no solo al
// workspace.
func (uc *ChatUseCase) Send(ctx context.Context, actorID, workspaceID string, in dto.SendMessageRequest) (*dto.ChatMessageResponse, error) {
	if in.Body == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.TeamID != nil {
		ok, err := uc.guard.VerifyTeamAccess(ctx, actorID, *in.TeamID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrForbidden
		}
	}

	unlock := uc.ledger.Lock(workspaceID, plan.CategoryChat)
	defer unlock()

	used, err := uc.chat.CountByWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if err := uc.ledger.Enforce(ctx, workspaceID, plan.CategoryChat, used); err != nil {
		return nil, err
	}

	m := &entity.ChatMessage{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		TeamID:      in.TeamID,
		UserID:      actorID,
		Body:        in.Body,
		CreatedAt:   time.Now(),
	}
	if err := uc.chat.Create(ctx, m); err != nil {
		return nil, err
	}
	return chatToResponse(m), nil
}

// History devuelve el historial paginado del canal pedido.
func (uc *ChatUseCase) History(ctx context.Context, actorID, workspaceID string, teamID *string, page dto.PageRequest) (*dto.ChatListResponse, error) {
	if teamID != nil {
		ok, err := uc.guard.VerifyTeamAccess(ctx, actorID, *teamID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrForbidden
		}
	}
	page.DefaultPage()
	list, err := uc.chat.List(ctx, workspaceID, teamID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ChatListResponse{
		Items: make([]dto.ChatMessageResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, m := range list {
		out.Items = append(out.Items, *chatToResponse(m))
	}
	return out, nil
}

func chatToResponse(m *entity.ChatMessage) *dto.ChatMessageResponse {
	return &dto.ChatMessageResponse{
		ID:        m.ID,
		TeamID:    m.TeamID,
		UserID:    m.UserID,
		Body:      m.Body,
		CreatedAt: m.CreatedAt,
	}
}
