package http_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive-api/internal/application/billing"
	"github.com/taskhive/taskhive-api/internal/domain/entity"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	httpapi "github.com/taskhive/taskhive-api/internal/interfaces/http"
	"github.com/taskhive/taskhive-api/pkg/config"
	"github.com/taskhive/taskhive-api/pkg/logger"
)

type fakeWorkspaceRepo struct {
	ws      map[string]*entity.Workspace
	upserts int
}

func (r *fakeWorkspaceRepo) Create(_ context.Context, ws *entity.Workspace) error {
	r.ws[ws.ID] = ws
	return nil
}
func (r *fakeWorkspaceRepo) GetByID(_ context.Context, id string) (*entity.Workspace, error) {
	return r.ws[id], nil
}
func (r *fakeWorkspaceRepo) UpdateName(_ context.Context, _, _ string) error { return nil }
func (r *fakeWorkspaceRepo) UpdateBilling(_ context.Context, id string, rec entity.BillingRecord) error {
	ws := r.ws[id]
	ws.Plan = rec.Plan
	ws.BillingInterval = rec.BillingInterval
	ws.BillingStatus = rec.BillingStatus
	ws.BillingProvider = rec.BillingProvider
	ws.Currency = rec.Currency
	ws.NextBillingAt = rec.NextBillingAt
	ws.LastPaymentAmount = rec.LastPaymentAmount
	ws.LastPaymentAt = rec.LastPaymentAt
	r.upserts++
	return nil
}
func (r *fakeWorkspaceRepo) Delete(_ context.Context, id string) error {
	delete(r.ws, id)
	return nil
}

const (
	stripeSecret = "whsec_test_stripe"
	paddleSecret = "pdl_test_paddle"
	lemonSecret  = "lmn_test_lemon"
)

func newWebhookApp(t *testing.T) (*fiber.App, *fakeWorkspaceRepo) {
	t.Helper()
	workspaces := &fakeWorkspaceRepo{ws: map[string]*entity.Workspace{
		"ws-1": {ID: "ws-1", Name: "acme", Plan: plan.Free, BillingStatus: plan.StatusActive},
	}}
	h := httpapi.NewBillingWebhookHandler(
		billing.NewReconciler(workspaces, logger.Nop()),
		config.BillingConfig{
			StripeWebhookSecret: stripeSecret,
			PaddleWebhookSecret: paddleSecret,
			LemonWebhookSecret:  lemonSecret,
		},
		logger.Nop(),
	)

	app := fiber.New()
	app.Post("/api/webhooks/stripe", h.Stripe)
	app.Post("/api/webhooks/paddle", h.Paddle)
	app.Post("/api/webhooks/lemonsqueezy", h.Lemon)
	return app, workspaces
}

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

const stripeInvoicePaid = `{
	"id": "evt_001",
	"type": "invoice.payment_succeeded",
	"data": {"object": {
		"metadata": {"workspace_id": "ws-1"},
		"amount_paid": 1900,
		"currency": "usd",
		"created": 1741168800,
		"lines": {"data": [{"price": {"id": "price_taskhive_pro", "recurring": {"interval": "month"}}}]}
	}}
}`

func TestWebhookStripe_PagoValidoActualizaBilling(t *testing.T) {
	app, workspaces := newWebhookApp(t)
	body := []byte(stripeInvoicePaid)

	req := httptest.NewRequest("POST", "/api/webhooks/stripe", strings.NewReader(string(body)))
	req.Header.Set("Stripe-Signature", "t=1741168800,v1="+sign(stripeSecret, body))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	ws := workspaces.ws["ws-1"]
	assert.Equal(t, plan.Pro, ws.Plan)
	assert.Equal(t, plan.StatusActive, ws.BillingStatus)
	assert.Equal(t, "USD", ws.Currency)
	require.NotNil(t, ws.NextBillingAt)
	occurred := time.Unix(1741168800, 0).UTC()
	assert.Equal(t, occurred.AddDate(0, 1, 0), *ws.NextBillingAt)
}

func TestWebhookStripe_FirmaInvalidaEs401(t *testing.T) {
	app, workspaces := newWebhookApp(t)
	body := []byte(stripeInvoicePaid)

	req := httptest.NewRequest("POST", "/api/webhooks/stripe", strings.NewReader(string(body)))
	req.Header.Set("Stripe-Signature", "t=1,v1="+sign("secreto-equivocado", body))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_SIGNATURE", errCode(t, json.NewDecoder(resp.Body)))
	assert.Zero(t, workspaces.upserts, "un evento sin firma válida no toca el billing")
}

func TestWebhookStripe_SinHeaderDeFirmaEs401(t *testing.T) {
	app, workspaces := newWebhookApp(t)

	req := httptest.NewRequest("POST", "/api/webhooks/stripe", strings.NewReader(stripeInvoicePaid))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, workspaces.upserts)
}

// Secret sin configurar rechaza todo: nunca fail-open.
func TestWebhookStripe_SecretNoConfiguradoRechaza(t *testing.T) {
	workspaces := &fakeWorkspaceRepo{ws: map[string]*entity.Workspace{}}
	h := httpapi.NewBillingWebhookHandler(
		billing.NewReconciler(workspaces, logger.Nop()),
		config.BillingConfig{}, // sin secretos
		logger.Nop(),
	)
	app := fiber.New()
	app.Post("/api/webhooks/stripe", h.Stripe)

	body := []byte(stripeInvoicePaid)
	req := httptest.NewRequest("POST", "/api/webhooks/stripe", strings.NewReader(string(body)))
	req.Header.Set("Stripe-Signature", "t=1,v1="+sign("", body))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookStripe_JSONInvalidoConFirmaValidaEs400(t *testing.T) {
	app, _ := newWebhookApp(t)
	body := []byte(`{esto no es json`)

	req := httptest.NewRequest("POST", "/api/webhooks/stripe", strings.NewReader(string(body)))
	req.Header.Set("Stripe-Signature", "t=1,v1="+sign(stripeSecret, body))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MALFORMED_EVENT", errCode(t, json.NewDecoder(resp.Body)))
}

// Eventos de tipos que no afectan el plan se confirman sin procesar, para que
// el proveedor no reintente la entrega.
func TestWebhookStripe_TipoIrrelevanteSeConfirmaSinProcesar(t *testing.T) {
	app, workspaces := newWebhookApp(t)
	body := []byte(`{"id": "evt_002", "type": "customer.created", "data": {"object": {}}}`)

	req := httptest.NewRequest("POST", "/api/webhooks/stripe", strings.NewReader(string(body)))
	req.Header.Set("Stripe-Signature", "t=1,v1="+sign(stripeSecret, body))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Zero(t, workspaces.upserts)
}

func TestWebhookStripe_WorkspaceDesconocidoEs400(t *testing.T) {
	app, workspaces := newWebhookApp(t)
	body := []byte(strings.Replace(stripeInvoicePaid, `"ws-1"`, `"ws-fantasma"`, 1))

	req := httptest.NewRequest("POST", "/api/webhooks/stripe", strings.NewReader(string(body)))
	req.Header.Set("Stripe-Signature", "t=1,v1="+sign(stripeSecret, body))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MALFORMED_EVENT", errCode(t, json.NewDecoder(resp.Body)))
	assert.Zero(t, workspaces.upserts)
}

func TestWebhookPaddle_TransaccionAnualValida(t *testing.T) {
	app, workspaces := newWebhookApp(t)
	body := []byte(`{
		"event_id": "evt_pdl_001",
		"event_type": "transaction.completed",
		"occurred_at": "2025-03-05T10:00:00Z",
		"data": {
			"custom_data": {"workspace_id": "ws-1"},
			"items": [{"price": {"id": "pri_taskhive_growth", "billing_cycle": {"interval": "year"}}}],
			"details": {"totals": {"total": "490.00", "currency_code": "USD"}}
		}
	}`)

	req := httptest.NewRequest("POST", "/api/webhooks/paddle", strings.NewReader(string(body)))
	req.Header.Set("Paddle-Signature", sign(paddleSecret, body))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	ws := workspaces.ws["ws-1"]
	assert.Equal(t, plan.Growth, ws.Plan)
	require.NotNil(t, ws.BillingInterval)
	assert.Equal(t, plan.IntervalAnnual, *ws.BillingInterval)
	require.NotNil(t, ws.NextBillingAt)
	assert.Equal(t, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), *ws.NextBillingAt)
}

func TestWebhookLemon_LifetimeSinProximoCobro(t *testing.T) {
	app, workspaces := newWebhookApp(t)
	body := []byte(`{
		"meta": {"event_name": "order_created", "custom_data": {"workspace_id": "ws-1"}},
		"data": {"id": "ord_001", "attributes": {
			"variant_slug": "taskhive-lifetime",
			"interval": "lifetime",
			"total": 29900,
			"currency": "USD",
			"created_at": "2025-03-05T10:00:00Z"
		}}
	}`)

	req := httptest.NewRequest("POST", "/api/webhooks/lemonsqueezy", strings.NewReader(string(body)))
	req.Header.Set("X-Signature", sign(lemonSecret, body))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	ws := workspaces.ws["ws-1"]
	assert.Equal(t, plan.Lifetime, ws.Plan)
	assert.Nil(t, ws.NextBillingAt, "lifetime no tiene próxima fecha de cobro")
	assert.Equal(t, "299", ws.LastPaymentAmount.String())
}

func TestWebhookLemon_PagoFallidoNoDegradaElPlan(t *testing.T) {
	app, workspaces := newWebhookApp(t)
	workspaces.ws["ws-1"].Plan = plan.Pro

	body := []byte(`{
		"meta": {"event_name": "subscription_payment_failed", "custom_data": {"workspace_id": "ws-1"}},
		"data": {"id": "ord_002", "attributes": {"created_at": "2025-04-05T10:00:00Z"}}
	}`)
	req := httptest.NewRequest("POST", "/api/webhooks/lemonsqueezy", strings.NewReader(string(body)))
	req.Header.Set("X-Signature", sign(lemonSecret, body))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	ws := workspaces.ws["ws-1"]
	assert.Equal(t, plan.Pro, ws.Plan, "el pago fallido marca inactive, no degrada")
	assert.Equal(t, plan.StatusInactive, ws.BillingStatus)
}
