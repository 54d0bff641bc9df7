package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/taskhive/taskhive-api/internal/domain/plan"
)

// Workspace es la raíz de tenant del sistema. Todas las entidades pertenecen a
// exactamente un workspace y el workspace vive en exactamente un shard durante
// toda su vida (la asignación workspace→shard es inmutable una vez creada).
//
// Los campos de billing (Plan, BillingInterval, BillingStatus, BillingProvider,
// NextBillingAt, LastPaymentAmount) los escribe únicamente el Billing Reconciler;
// el Quota Ledger solo los lee. Consistencia aceptada: read-committed.
type Workspace struct {
	ID                string
	Name              string
	Plan              plan.Plan
	BillingInterval   *plan.BillingInterval // nil hasta el primer pago
	BillingStatus     plan.BillingStatus
	BillingProvider   *plan.Provider // nil hasta el primer pago
	Currency          string
	NextBillingAt     *time.Time // nil para lifetime y para workspaces free
	LastPaymentAmount decimal.Decimal
	LastPaymentAt     *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// BillingRecord es la porción de Workspace que el reconciler sobrescribe como
// upsert last-write-wins (clave: workspace).
type BillingRecord struct {
	Plan              plan.Plan
	BillingInterval   *plan.BillingInterval
	BillingStatus     plan.BillingStatus
	BillingProvider   *plan.Provider
	Currency          string
	NextBillingAt     *time.Time
	LastPaymentAmount decimal.Decimal
	LastPaymentAt     *time.Time
}
