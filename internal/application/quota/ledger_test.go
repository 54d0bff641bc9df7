package quota_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/application/quota"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
)

// fakeWorkspaceRepo repositorio en memoria del shard primario para los tests.
type fakeWorkspaceRepo struct {
	mu  sync.Mutex
	byI map[string]*entity.Workspace
}

func newFakeWorkspaceRepo(ws ...*entity.Workspace) *fakeWorkspaceRepo {
	r := &fakeWorkspaceRepo{byI: make(map[string]*entity.Workspace)}
	for _, w := range ws {
		r.byI[w.ID] = w
	}
	return r
}

func (r *fakeWorkspaceRepo) Create(_ context.Context, ws *entity.Workspace) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byI[ws.ID] = ws
	return nil
}

func (r *fakeWorkspaceRepo) GetByID(_ context.Context, id string) (*entity.Workspace, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byI[id], nil
}

func (r *fakeWorkspaceRepo) UpdateName(_ context.Context, id, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ws, ok := r.byI[id]; ok {
		ws.Name = name
	}
	return nil
}

func (r *fakeWorkspaceRepo) UpdateBilling(_ context.Context, id string, rec entity.BillingRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ws, ok := r.byI[id]
	if !ok {
		return nil
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
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byI, id)
	return nil
}

func freeWorkspace(id string) *entity.Workspace {
	return &entity.Workspace{ID: id, Name: "ws", Plan: plan.Free, BillingStatus: plan.StatusActive}
}

func TestEnforce_AdmiteHastaElTecho(t *testing.T) {
	repo := newFakeWorkspaceRepo(freeWorkspace("ws-1"))
	ledger := quota.NewLedger(repo)

	// free permite 3 proyectos: con 0, 1 y 2 existentes se admite uno más.
	for used := 0; used < 3; used++ {
		assert.NoError(t, ledger.Enforce(context.Background(), "ws-1", plan.CategoryProjects, used),
			"con %d proyectos existentes debe admitirse crear otro", used)
	}
}

func TestEnforce_RechazaEnElTechoExacto(t *testing.T) {
	repo := newFakeWorkspaceRepo(freeWorkspace("ws-1"))
	ledger := quota.NewLedger(repo)

	err := ledger.Enforce(context.Background(), "ws-1", plan.CategoryProjects, 3)
	require.Error(t, err)

	var qe *quota.QuotaError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, plan.Free, qe.Plan)
	assert.Equal(t, plan.CategoryProjects, qe.Category)
	assert.Equal(t, plan.Ceiling(3), qe.Ceiling)
	// El mensaje es visible al usuario: debe nombrar plan y categoría.
	assert.Contains(t, qe.Error(), "free")
	assert.Contains(t, qe.Error(), "projects")
}

func TestEnforce_UpgradeDesbloqueaSinReiniciar(t *testing.T) {
	ws := freeWorkspace("ws-1")
	repo := newFakeWorkspaceRepo(ws)
	ledger := quota.NewLedger(repo)
	ctx := context.Background()

	require.Error(t, ledger.Enforce(ctx, "ws-1", plan.CategoryProjects, 3),
		"en free con 3 proyectos el cuarto se rechaza")

	// Upgrade a pro: el mismo uso ahora pasa. Enforce lee el workspace fresco.
	ws.Plan = plan.Pro
	assert.NoError(t, ledger.Enforce(ctx, "ws-1", plan.CategoryProjects, 3))
}

func TestEnforce_IlimitadoNuncaRechaza(t *testing.T) {
	ws := freeWorkspace("ws-1")
	ws.Plan = plan.ThetaPlus
	ledger := quota.NewLedger(newFakeWorkspaceRepo(ws))

	assert.NoError(t, ledger.Enforce(context.Background(), "ws-1", plan.CategoryProjects, 1_000_000))
}

func TestEnforce_WorkspaceInexistenteFailaCerrado(t *testing.T) {
	ledger := quota.NewLedger(newFakeWorkspaceRepo())

	err := ledger.Enforce(context.Background(), "no-existe", plan.CategoryProjects, 0)
	assert.Error(t, err, "workspace inexistente nunca pasa como ilimitado")
}

func TestRequireFeature_GateDeAnalytics(t *testing.T) {
	free := freeWorkspace("ws-free")
	pro := freeWorkspace("ws-pro")
	pro.Plan = plan.Pro
	ledger := quota.NewLedger(newFakeWorkspaceRepo(free, pro))
	ctx := context.Background()

	err := ledger.RequireFeature(ctx, "ws-free", plan.CategoryAnalytics)
	var qe *quota.QuotaError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, plan.Free, qe.Plan)
	assert.Equal(t, plan.CategoryAnalytics, qe.Category)

	assert.NoError(t, ledger.RequireFeature(ctx, "ws-pro", plan.CategoryAnalytics))
}

// El lock por (workspace, categoría) serializa la secuencia contar→verificar→
// insertar: N goroutines compitiendo por el último cupo producen exactamente
// una creación.
func TestLock_SerializaCreacionesConcurrentes(t *testing.T) {
	repo := newFakeWorkspaceRepo(freeWorkspace("ws-1"))
	ledger := quota.NewLedger(repo)
	ctx := context.Background()

	var mu sync.Mutex
	created := 2 // ya existen 2 de 3 proyectos: queda un solo cupo

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := ledger.Lock("ws-1", plan.CategoryProjects)
			defer unlock()

			mu.Lock()
			used := created
			mu.Unlock()

			if err := ledger.Enforce(ctx, "ws-1", plan.CategoryProjects, used); err != nil {
				return
			}
			mu.Lock()
			created++
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, created, "solo una goroutine debe ganar el último cupo")
}

func TestPeriodStart_VentanaDeBoots(t *testing.T) {
	now := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)

	// Sin próxima fecha de cobro: mes calendario.
	ws := freeWorkspace("ws-1")
	got := quota.PeriodStart(ws, now)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), got)

	// Mensual: próxima fecha menos un mes.
	next := time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC)
	monthly := plan.IntervalMonthly
	ws.NextBillingAt = &next
	ws.BillingInterval = &monthly
	got = quota.PeriodStart(ws, now)
	assert.Equal(t, time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC), got)

	// Anual: próxima fecha menos un año.
	annual := plan.IntervalAnnual
	ws.BillingInterval = &annual
	got = quota.PeriodStart(ws, now)
	assert.Equal(t, time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC), got)
}
