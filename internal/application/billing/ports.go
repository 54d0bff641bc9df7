package billing

import (
	"context"

	"github.com/taskhive/taskhive-api/internal/application/dto"
)

// ReceiptPDFGenerator puerto de salida para la representación PDF del último
// pago de un workspace. La implementación (maroto) vive en infrastructure.
type ReceiptPDFGenerator interface {
	Generate(ctx context.Context, data dto.ReceiptData) ([]byte, error)
}
