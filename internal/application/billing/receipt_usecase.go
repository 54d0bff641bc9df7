package billing

import (
	"context"
	"fmt"

	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// ReceiptUseCase genera el comprobante PDF del último pago de un workspace.
type ReceiptUseCase struct {
	workspaces repository.WorkspaceRepository
	pdf        ReceiptPDFGenerator
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(workspaces repository.WorkspaceRepository, pdf ReceiptPDFGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{workspaces: workspaces, pdf: pdf}
}

// GetReceipt devuelve el PDF del último pago registrado por el reconciler.
// Workspace sin pagos → domain.ErrNotFound.
func (uc *ReceiptUseCase) GetReceipt(ctx context.Context, workspaceID string) ([]byte, error) {
	ws, err := uc.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("receipt: leer workspace: %w", err)
	}
	if ws == nil || ws.LastPaymentAt == nil {
		return nil, domain.ErrNotFound
	}

	data := dto.ReceiptData{
		WorkspaceName: ws.Name,
		Plan:          string(ws.Plan),
		Currency:      ws.Currency,
		Amount:        ws.LastPaymentAmount,
		PaidAt:        *ws.LastPaymentAt,
		NextBillingAt: ws.NextBillingAt,
	}
	if ws.BillingInterval != nil {
		data.Interval = string(*ws.BillingInterval)
	}
	if ws.BillingProvider != nil {
		data.Provider = string(*ws.BillingProvider)
	}
	return uc.pdf.Generate(ctx, data)
}
