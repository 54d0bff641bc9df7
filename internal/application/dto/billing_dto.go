package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptData datos del comprobante del último pago (entrada del generador PDF).
type ReceiptData struct {
	WorkspaceName string
	Plan          string
	Interval      string
	Provider      string
	Currency      string
	Amount        decimal.Decimal
	PaidAt        time.Time
	NextBillingAt *time.Time
}
