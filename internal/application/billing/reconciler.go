package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
	"github.com/taskhive/taskhive-api/pkg/logger"
)

// Reconciler pliega eventos de pago asíncronos (posiblemente duplicados o
// fuera de orden) en el registro canónico de billing del workspace.
//
// Es un upsert last-write-wins con clave workspace, no un acumulador: aplicar
// el mismo evento dos veces produce exactamente el mismo registro (la próxima
// fecha de cobro se calcula desde OccurredAt del evento, no desde el reloj de
// procesamiento). Si dos eventos del mismo workspace llegan desordenados, gana
// el último procesado; no se intenta reordenar (trade-off aceptado).
type Reconciler struct {
	workspaces repository.WorkspaceRepository
	log        *logger.Logger
}

// NewReconciler construye el reconciler.
func NewReconciler(workspaces repository.WorkspaceRepository, log *logger.Logger) *Reconciler {
	return &Reconciler{workspaces: workspaces, log: log}
}

// Apply aplica un evento normalizado al workspace.
//
//   - payment_succeeded: plan, intervalo, status=active, proveedor, moneda y
//     próxima fecha de cobro (OccurredAt + un intervalo; nil para lifetime).
//   - payment_failed / payment_voided: status=inactive, el plan NO se degrada
//     (una renovación fallida marca la cuenta para dunning, no la baja).
//
// Un evento con metadata incompleta o plan desconocido devuelve
// domain.ErrMalformedEvent: se loggea y se descarta sin retry (el proveedor
// reintenta la entrega por su cuenta).
func (r *Reconciler) Apply(ctx context.Context, ev ProviderEvent) error {
	if ev.WorkspaceID == "" || ev.Provider == "" || ev.Type == "" {
		return fmt.Errorf("evento %s de %s: %w", ev.EventID, ev.Provider, domain.ErrMalformedEvent)
	}

	ws, err := r.workspaces.GetByID(ctx, ev.WorkspaceID)
	if err != nil {
		return fmt.Errorf("reconciler: leer workspace %s: %w", ev.WorkspaceID, err)
	}
	if ws == nil {
		r.log.Warn().
			Str("workspace_id", ev.WorkspaceID).
			Str("provider", string(ev.Provider)).
			Str("event_id", ev.EventID).
			Msg("evento de billing para workspace inexistente, descartado")
		return fmt.Errorf("workspace %s: %w", ev.WorkspaceID, domain.ErrMalformedEvent)
	}

	switch ev.Type {
	case EventPaymentSucceeded:
		return r.applySucceeded(ctx, ws, ev)
	case EventPaymentFailed, EventPaymentVoided:
		return r.applyFailed(ctx, ws, ev)
	default:
		return fmt.Errorf("tipo de evento %q: %w", ev.Type, domain.ErrMalformedEvent)
	}
}

func (r *Reconciler) applySucceeded(ctx context.Context, ws *entity.Workspace, ev ProviderEvent) error {
	canonical, ok := CanonicalPlan(ev.Provider, ev.PlanRef)
	if !ok {
		return fmt.Errorf("plan ref %q de %s: %w", ev.PlanRef, ev.Provider, domain.ErrMalformedEvent)
	}

	interval := ev.Interval
	if canonical == plan.Lifetime {
		interval = plan.IntervalLifetime
	}

	occurred := ev.OccurredAt
	provider := ev.Provider
	rec := entity.BillingRecord{
		Plan:              canonical,
		BillingInterval:   &interval,
		BillingStatus:     plan.StatusActive,
		BillingProvider:   &provider,
		Currency:          ev.Currency,
		NextBillingAt:     nextBillingAt(occurred, interval),
		LastPaymentAmount: ev.Amount,
		LastPaymentAt:     &occurred,
	}
	if err := r.workspaces.UpdateBilling(ctx, ws.ID, rec); err != nil {
		return fmt.Errorf("reconciler: upsert billing ws=%s: %w", ws.ID, err)
	}

	r.log.Info().
		Str("workspace_id", ws.ID).
		Str("provider", string(ev.Provider)).
		Str("plan", string(canonical)).
		Str("interval", string(interval)).
		Msg("billing reconciliado: pago exitoso")
	return nil
}

func (r *Reconciler) applyFailed(ctx context.Context, ws *entity.Workspace, ev ProviderEvent) error {
	// Solo cambia el status: plan, intervalo, proveedor y próxima fecha quedan
	// como estaban.
	rec := entity.BillingRecord{
		Plan:              ws.Plan,
		BillingInterval:   ws.BillingInterval,
		BillingStatus:     plan.StatusInactive,
		BillingProvider:   ws.BillingProvider,
		Currency:          ws.Currency,
		NextBillingAt:     ws.NextBillingAt,
		LastPaymentAmount: ws.LastPaymentAmount,
		LastPaymentAt:     ws.LastPaymentAt,
	}
	if err := r.workspaces.UpdateBilling(ctx, ws.ID, rec); err != nil {
		return fmt.Errorf("reconciler: marcar inactive ws=%s: %w", ws.ID, err)
	}

	r.log.Info().
		Str("workspace_id", ws.ID).
		Str("provider", string(ev.Provider)).
		Str("event_type", string(ev.Type)).
		Msg("billing reconciliado: pago fallido, status inactive")
	return nil
}

// nextBillingAt avanza un intervalo desde la fecha del evento. Lifetime (pago
// único) no tiene próxima fecha.
func nextBillingAt(from time.Time, interval plan.BillingInterval) *time.Time {
	var next time.Time
	switch interval {
	case plan.IntervalMonthly:
		next = from.AddDate(0, 1, 0)
	case plan.IntervalAnnual:
		next = from.AddDate(1, 0, 0)
	default:
		return nil
	}
	return &next
}
