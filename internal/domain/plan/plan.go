package plan

// Plan es el plan de suscripción de un workspace.
type Plan string

// Planes disponibles. FromString mapea cualquier valor desconocido a Free
// (fail closed: un plan no reconocido nunca se trata como ilimitado).
const (
	Free      Plan = "free"
	Pro       Plan = "pro"
	Growth    Plan = "growth"
	ThetaPlus Plan = "theta_plus"
	Lifetime  Plan = "lifetime"
)

// FromString normaliza el nombre de plan persistido. Desconocido o vacío → Free.
func FromString(s string) Plan {
	switch Plan(s) {
	case Free, Pro, Growth, ThetaPlus, Lifetime:
		return Plan(s)
	default:
		return Free
	}
}

// BillingInterval periodicidad de cobro del workspace.
type BillingInterval string

const (
	IntervalMonthly  BillingInterval = "monthly"
	IntervalAnnual   BillingInterval = "annual"
	IntervalLifetime BillingInterval = "lifetime"
)

// BillingStatus estado de cobro del workspace.
// Un pago fallido marca inactive sin degradar el plan (dunning).
type BillingStatus string

const (
	StatusActive   BillingStatus = "active"
	StatusInactive BillingStatus = "inactive"
	StatusPastDue  BillingStatus = "past_due"
)

// Provider procesador de pagos autoritativo para el workspace.
type Provider string

const (
	ProviderStripe Provider = "stripe"
	ProviderPaddle Provider = "paddle"
	ProviderLemon  Provider = "lemonsqueezy"
)

// Role rol de un miembro dentro de un workspace.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// IsAdmin informa si el rol tiene permisos administrativos (owner o admin).
func (r Role) IsAdmin() bool {
	return r == RoleOwner || r == RoleAdmin
}

// Valid informa si el rol es uno de los reconocidos.
func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleAdmin || r == RoleMember
}
