package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/application/billing"
	"github.com/taskhive/taskhive-api/internal/domain"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/pkg/logger"
)

// fakeWorkspaceRepo mínimo para el reconciler: guarda el último upsert.
type fakeWorkspaceRepo struct {
	ws      map[string]*entity.Workspace
	upserts int
}

func newFakeWorkspaceRepo(ws ...*entity.Workspace) *fakeWorkspaceRepo {
	r := &fakeWorkspaceRepo{ws: make(map[string]*entity.Workspace)}
	for _, w := range ws {
		r.ws[w.ID] = w
	}
	return r
}

func (r *fakeWorkspaceRepo) Create(_ context.Context, ws *entity.Workspace) error {
	r.ws[ws.ID] = ws
	return nil
}

func (r *fakeWorkspaceRepo) GetByID(_ context.Context, id string) (*entity.Workspace, error) {
	return r.ws[id], nil
}

func (r *fakeWorkspaceRepo) UpdateName(_ context.Context, id, name string) error {
	if ws, ok := r.ws[id]; ok {
		ws.Name = name
	}
	return nil
}

func (r *fakeWorkspaceRepo) UpdateBilling(_ context.Context, id string, rec entity.BillingRecord) error {
	r.upserts++
	ws, ok := r.ws[id]
	if !ok {
		return domain.ErrNotFound
	}
	ws.Plan = rec.Plan
	ws.BillingInterval = rec.BillingInterval
	ws.BillingStatus = rec.BillingStatus
	ws.BillingProvider = rec.BillingProvider
	ws.Currency = rec.Currency
	ws.NextBillingAt = rec.NextBillingAt
	ws.LastPaymentAmount = rec.LastPaymentAmount
	ws.LastPaymentAt = rec.LastPaymentAt
	return nil
}

func (r *fakeWorkspaceRepo) Delete(_ context.Context, id string) error {
	delete(r.ws, id)
	return nil
}

func succeededEvent(wsID string) billing.ProviderEvent {
	return billing.ProviderEvent{
		Provider:    plan.ProviderStripe,
		Type:        billing.EventPaymentSucceeded,
		EventID:     "evt_1",
		WorkspaceID: wsID,
		PlanRef:     "price_taskhive_pro",
		Interval:    plan.IntervalMonthly,
		Amount:      decimal.New(1900, -2),
		Currency:    "USD",
		OccurredAt:  time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC),
	}
}

func TestApply_PagoExitosoActualizaPlanYProximoCobro(t *testing.T) {
	ws := &entity.Workspace{ID: "ws-1", Plan: plan.Free, BillingStatus: plan.StatusActive}
	repo := newFakeWorkspaceRepo(ws)
	rec := billing.NewReconciler(repo, logger.Nop())

	require.NoError(t, rec.Apply(context.Background(), succeededEvent("ws-1")))

	assert.Equal(t, plan.Pro, ws.Plan)
	assert.Equal(t, plan.StatusActive, ws.BillingStatus)
	require.NotNil(t, ws.BillingProvider)
	assert.Equal(t, plan.ProviderStripe, *ws.BillingProvider)
	assert.Equal(t, "USD", ws.Currency)
	assert.True(t, decimal.New(1900, -2).Equal(ws.LastPaymentAmount))

	// La próxima fecha se calcula desde OccurredAt, no desde el reloj de
	// procesamiento: un mes después del evento.
	require.NotNil(t, ws.NextBillingAt)
	assert.Equal(t, time.Date(2025, time.April, 5, 10, 0, 0, 0, time.UTC), *ws.NextBillingAt)
}

// Reprocesar el mismo evento produce exactamente el mismo registro.
func TestApply_ReplayIdempotente(t *testing.T) {
	ws := &entity.Workspace{ID: "ws-1", Plan: plan.Free, BillingStatus: plan.StatusActive}
	repo := newFakeWorkspaceRepo(ws)
	rec := billing.NewReconciler(repo, logger.Nop())
	ctx := context.Background()

	require.NoError(t, rec.Apply(ctx, succeededEvent("ws-1")))
	first := *ws

	require.NoError(t, rec.Apply(ctx, succeededEvent("ws-1")))
	assert.Equal(t, first.Plan, ws.Plan)
	assert.Equal(t, *first.NextBillingAt, *ws.NextBillingAt)
	assert.True(t, first.LastPaymentAmount.Equal(ws.LastPaymentAmount))
	assert.Equal(t, 2, repo.upserts, "ambas aplicaciones escriben, el registro no cambia")
}

// Un pago fallido marca inactivo pero NO degrada el plan.
func TestApply_PagoFallidoNoDegradaElPlan(t *testing.T) {
	ws := &entity.Workspace{ID: "ws-1", Plan: plan.Free, BillingStatus: plan.StatusActive}
	repo := newFakeWorkspaceRepo(ws)
	rec := billing.NewReconciler(repo, logger.Nop())
	ctx := context.Background()

	require.NoError(t, rec.Apply(ctx, succeededEvent("ws-1")))
	next := *ws.NextBillingAt

	failed := succeededEvent("ws-1")
	failed.Type = billing.EventPaymentFailed
	failed.EventID = "evt_2"
	require.NoError(t, rec.Apply(ctx, failed))

	assert.Equal(t, plan.Pro, ws.Plan, "el plan queda como estaba")
	assert.Equal(t, plan.StatusInactive, ws.BillingStatus)
	assert.Equal(t, next, *ws.NextBillingAt, "la próxima fecha no se toca")
}

func TestApply_LifetimeSinProximoCobro(t *testing.T) {
	ws := &entity.Workspace{ID: "ws-1", Plan: plan.Free, BillingStatus: plan.StatusActive}
	repo := newFakeWorkspaceRepo(ws)
	rec := billing.NewReconciler(repo, logger.Nop())

	ev := succeededEvent("ws-1")
	ev.Provider = plan.ProviderLemon
	ev.PlanRef = "taskhive-lifetime"
	ev.Interval = plan.IntervalLifetime
	require.NoError(t, rec.Apply(context.Background(), ev))

	assert.Equal(t, plan.Lifetime, ws.Plan)
	assert.Nil(t, ws.NextBillingAt, "lifetime no tiene próxima fecha de cobro")
}

func TestApply_EventoMalformadoSeDescarta(t *testing.T) {
	repo := newFakeWorkspaceRepo(&entity.Workspace{ID: "ws-1", Plan: plan.Free})
	rec := billing.NewReconciler(repo, logger.Nop())
	ctx := context.Background()

	// Sin workspace.
	ev := succeededEvent("")
	err := rec.Apply(ctx, ev)
	assert.ErrorIs(t, err, domain.ErrMalformedEvent)

	// Plan ref desconocido: no se adivina un plan.
	ev = succeededEvent("ws-1")
	ev.PlanRef = "price_misterioso"
	err = rec.Apply(ctx, ev)
	assert.ErrorIs(t, err, domain.ErrMalformedEvent)

	// Workspace inexistente.
	ev = succeededEvent("ws-fantasma")
	err = rec.Apply(ctx, ev)
	assert.ErrorIs(t, err, domain.ErrMalformedEvent)

	assert.Equal(t, 0, repo.upserts, "ningún evento malformado debe escribir")
}

func TestCanonicalPlan_MapeoDeRefs(t *testing.T) {
	cases := []struct {
		provider plan.Provider
		ref      string
		want     plan.Plan
		ok       bool
	}{
		{plan.ProviderStripe, "price_taskhive_pro", plan.Pro, true},
		{plan.ProviderPaddle, "pri_taskhive_growth", plan.Growth, true},
		{plan.ProviderLemon, "taskhive-lifetime", plan.Lifetime, true},
		{plan.ProviderStripe, "price_de_otro_producto", "", false},
		{plan.Provider("mercadopago"), "algo", "", false},
	}
	for _, tc := range cases {
		got, ok := billing.CanonicalPlan(tc.provider, tc.ref)
		assert.Equal(t, tc.ok, ok, "%s/%s", tc.provider, tc.ref)
		if tc.ok {
			assert.Equal(t, tc.want, got)
		}
	}
}

// Eventos fuera de orden: gana el último procesado (trade-off documentado).
func TestApply_FueraDeOrdenGanaElUltimo(t *testing.T) {
	ws := &entity.Workspace{ID: "ws-1", Plan: plan.Free, BillingStatus: plan.StatusActive}
	repo := newFakeWorkspaceRepo(ws)
	rec := billing.NewReconciler(repo, logger.Nop())
	ctx := context.Background()

	newer := succeededEvent("ws-1")
	newer.PlanRef = "price_taskhive_growth"
	newer.OccurredAt = time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)

	older := succeededEvent("ws-1")
	older.OccurredAt = time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, rec.Apply(ctx, newer))
	require.NoError(t, rec.Apply(ctx, older))

	assert.Equal(t, plan.Pro, ws.Plan, "el evento viejo procesado al final pisa al nuevo")
}
