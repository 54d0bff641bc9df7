package billing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/taskhive/taskhive-api/internal/domain/plan"
)

// EventType tipo normalizado de evento de pago.
type EventType string

const (
	EventPaymentSucceeded EventType = "payment_succeeded"
	EventPaymentFailed    EventType = "payment_failed"
	EventPaymentVoided    EventType = "payment_voided"
)

// ProviderEvent es el contrato de salida de la capa de webhooks: un evento ya
// verificado (firma HMAC chequeada por el handler) y normalizado desde el
// payload propio de cada procesador. Es lo único que consume el reconciler.
type ProviderEvent struct {
	Provider    plan.Provider
	Type        EventType
	EventID     string
	WorkspaceID string
	PlanRef     string // identificador de plan/producto propio del proveedor
	Interval    plan.BillingInterval
	Amount      decimal.Decimal
	Currency    string
	OccurredAt  time.Time
}

// planRefs mapea identificadores de plan/price de cada proveedor al plan
// canónico. Un ref no listado se trata como desconocido (el evento se
// descarta como malformado, nunca se adivina un plan).
var planRefs = map[plan.Provider]map[string]plan.Plan{
	plan.ProviderStripe: {
		"price_taskhive_pro":        plan.Pro,
		"price_taskhive_growth":     plan.Growth,
		"price_taskhive_theta_plus": plan.ThetaPlus,
	},
	plan.ProviderPaddle: {
		"pri_taskhive_pro":        plan.Pro,
		"pri_taskhive_growth":     plan.Growth,
		"pri_taskhive_theta_plus": plan.ThetaPlus,
	},
	plan.ProviderLemon: {
		"taskhive-pro":      plan.Pro,
		"taskhive-growth":   plan.Growth,
		"taskhive-theta":    plan.ThetaPlus,
		"taskhive-lifetime": plan.Lifetime,
	},
}

// CanonicalPlan resuelve el plan canónico de un ref de proveedor.
func CanonicalPlan(provider plan.Provider, planRef string) (plan.Plan, bool) {
	refs, ok := planRefs[provider]
	if !ok {
		return "", false
	}
	p, ok := refs[planRef]
	return p, ok
}
