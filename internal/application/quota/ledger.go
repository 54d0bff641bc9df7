package quota

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/internal/domain/repository"
)

// QuotaError rechazo del ledger. El mensaje nombra plan, categoría y techo y
// se muestra tal cual al usuario final (resultado 4xx accionable: "mejorá tu
// plan"). No es retryable y nunca se loggea como error de sistema.
type QuotaError struct {
	Plan     plan.Plan
	Category plan.Category
	Ceiling  plan.Ceiling
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("el plan %q permite hasta %d de %s; alcanzaste el límite", e.Plan, e.Ceiling, e.Category)
}

// Ledger decide si un workspace puede ejecutar una unidad más de una acción
// medida, según su plan. No posee contadores: el uso actual lo aporta el
// caller como conteo vivo contra el shard dueño, calculado en el momento de
// la decisión (un contador cacheado derivaría bajo creación/borrado
// concurrentes).
type Ledger struct {
	workspaces repository.WorkspaceRepository

	// Mutex por (workspace, categoría): serializa la secuencia
	// contar→verificar→insertar de los casos de uso de creación y cierra la
	// carrera de overshoot por off-by-one entre creaciones concurrentes.
	// Las entradas se refcuentan y se descartan al soltar el último holder:
	// el mapa solo contiene pares con una creación en vuelo.
	mu    sync.Mutex
	locks map[lockKey]*lockEntry
}

type lockKey struct {
	workspaceID string
	category    plan.Category
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// NewLedger construye el ledger con el puerto de workspaces.
func NewLedger(workspaces repository.WorkspaceRepository) *Ledger {
	return &Ledger{
		workspaces: workspaces,
		locks:      make(map[lockKey]*lockEntry),
	}
}

// Lock toma el mutex de (workspace, categoría) y devuelve su unlock. Los
// casos de uso de creación lo adquieren antes del conteo y lo sueltan después
// del insert.
func (l *Ledger) Lock(workspaceID string, category plan.Category) func() {
	key := lockKey{workspaceID: workspaceID, category: category}

	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &lockEntry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// Enforce decide si el workspace admite una unidad más en la categoría dada
// el uso actual. Lee el workspace fresco en cada llamada (sin cache: debe
// reflejar un upgrade recién aplicado por el reconciler).
//
// Devuelve nil (Ok), *QuotaError (rechazo, cota superior EXCLUSIVA: con techo
// N la creación N+1 se rechaza) o un error de infraestructura.
func (l *Ledger) Enforce(ctx context.Context, workspaceID string, category plan.Category, currentUsage int) error {
	p, err := l.planOf(ctx, workspaceID)
	if err != nil {
		return err
	}
	ceiling := plan.CeilingFor(p, category)
	if ceiling.Allows(currentUsage) {
		return nil
	}
	return &QuotaError{Plan: p, Category: category, Ceiling: ceiling}
}

// RequireFeature exige que la categoría booleana esté habilitada por el plan;
// el rechazo es un *QuotaError igual que en los conteos.
func (l *Ledger) RequireFeature(ctx context.Context, workspaceID string, category plan.Category) error {
	p, err := l.planOf(ctx, workspaceID)
	if err != nil {
		return err
	}
	if plan.CeilingFor(p, category).IsUnlimited() {
		return nil
	}
	return &QuotaError{Plan: p, Category: category, Ceiling: plan.CeilingFor(p, category)}
}

// RetentionSince devuelve el instante más antiguo visible del historial de
// actividad según la retención en días del plan.
func (l *Ledger) RetentionSince(ctx context.Context, workspaceID string, now time.Time) (time.Time, error) {
	p, err := l.planOf(ctx, workspaceID)
	if err != nil {
		return time.Time{}, err
	}
	days := plan.LimitsFor(p).RetentionDays
	return now.AddDate(0, 0, -days), nil
}

// PeriodStart devuelve el inicio del período de cobro actual del workspace,
// usado como borde de la ventana de la categoría boots. Si el workspace no
// tiene fecha de próximo cobro (free, lifetime) se usa el mes calendario.
func PeriodStart(ws *entity.Workspace, now time.Time) time.Time {
	if ws.NextBillingAt == nil || ws.BillingInterval == nil {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	switch *ws.BillingInterval {
	case plan.IntervalAnnual:
		return ws.NextBillingAt.AddDate(-1, 0, 0)
	case plan.IntervalMonthly:
		return ws.NextBillingAt.AddDate(0, -1, 0)
	default:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
}

// planOf lee el plan actual del workspace. Workspace inexistente o plan no
// reconocido degradan al plan más restrictivo (free): fail closed, nunca
// ilimitado por accidente.
func (l *Ledger) planOf(ctx context.Context, workspaceID string) (plan.Plan, error) {
	ws, err := l.workspaces.GetByID(ctx, workspaceID)
	if err != nil {
		return plan.Free, fmt.Errorf("quota: leer workspace %s: %w", workspaceID, err)
	}
	if ws == nil {
		return plan.Free, fmt.Errorf("quota: workspace %s: %w", workspaceID, domain.ErrNotFound)
	}
	return plan.FromString(string(ws.Plan)), nil
}
