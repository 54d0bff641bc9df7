package http

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/taskhive/taskhive-api/internal/application/billing"
	"github.com/taskhive/taskhive-api/internal/application/dto"
	"github.com/taskhive/taskhive-api/internal/domain/plan"
	"github.com/taskhive/taskhive-api/pkg/config"
	"github.com/taskhive/taskhive-api/pkg/logger"
)

// BillingWebhookHandler recibe los webhooks de pago de los tres proveedores.
// Cada endpoint verifica la firma HMAC-SHA256 de su proveedor sobre el cuerpo
// crudo, normaliza el payload a billing.ProviderEvent y lo entrega al
// reconciler. Rutas públicas: la autenticación ES la firma.
type BillingWebhookHandler struct {
	reconciler *billing.Reconciler
	secrets    config.BillingConfig
	log        *logger.Logger
}

// NewBillingWebhookHandler construye el handler.
func NewBillingWebhookHandler(reconciler *billing.Reconciler, secrets config.BillingConfig, log *logger.Logger) *BillingWebhookHandler {
	return &BillingWebhookHandler{reconciler: reconciler, secrets: secrets, log: log}
}

// ── Stripe ──────────────────────────────────────────────────────────────────

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			Metadata struct {
				WorkspaceID string `json:"workspace_id"`
			} `json:"metadata"`
			AmountPaid int64  `json:"amount_paid"` // centavos
			Currency   string `json:"currency"`
			Created    int64  `json:"created"`
			Lines      struct {
				Data []struct {
					Price struct {
						ID        string `json:"id"`
						Recurring struct {
							Interval string `json:"interval"` // month, year
						} `json:"recurring"`
					} `json:"price"`
				} `json:"data"`
			} `json:"lines"`
		} `json:"object"`
	} `json:"data"`
}

// Stripe godoc
// @Summary      Webhook de Stripe
// @Tags         billing
// @Accept       json
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/webhooks/stripe [post]
func (h *BillingWebhookHandler) Stripe(c *fiber.Ctx) error {
	body := c.Body()
	if !verifyHMAC(h.secrets.StripeWebhookSecret, c.Get("Stripe-Signature"), body) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
	}
	var ev stripeEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MALFORMED_EVENT", Message: "payload inválido"})
	}

	var kind billing.EventType
	switch ev.Type {
	case "invoice.payment_succeeded":
		kind = billing.EventPaymentSucceeded
	case "invoice.payment_failed":
		kind = billing.EventPaymentFailed
	case "invoice.voided":
		kind = billing.EventPaymentVoided
	default:
		// Evento no relevante para el plan: se confirma recepción sin procesar.
		return c.JSON(fiber.Map{"received": true})
	}

	obj := ev.Data.Object
	var planRef string
	if len(obj.Lines.Data) > 0 {
		planRef = obj.Lines.Data[0].Price.ID
	}
	interval := plan.IntervalMonthly
	if len(obj.Lines.Data) > 0 && obj.Lines.Data[0].Price.Recurring.Interval == "year" {
		interval = plan.IntervalAnnual
	}

	return h.apply(c, billing.ProviderEvent{
		Provider:    plan.ProviderStripe,
		Type:        kind,
		EventID:     ev.ID,
		WorkspaceID: obj.Metadata.WorkspaceID,
		PlanRef:     planRef,
		Interval:    interval,
		Amount:      decimal.New(obj.AmountPaid, -2),
		Currency:    strings.ToUpper(obj.Currency),
		OccurredAt:  time.Unix(obj.Created, 0).UTC(),
	})
}

// ── Paddle ──────────────────────────────────────────────────────────────────

type paddleEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       struct {
		CustomData struct {
			WorkspaceID string `json:"workspace_id"`
		} `json:"custom_data"`
		Items []struct {
			Price struct {
				ID           string `json:"id"`
				BillingCycle struct {
					Interval string `json:"interval"` // month, year
				} `json:"billing_cycle"`
			} `json:"price"`
		} `json:"items"`
		Details struct {
			Totals struct {
				Total        string `json:"total"` // decimal en string
				CurrencyCode string `json:"currency_code"`
			} `json:"totals"`
		} `json:"details"`
	} `json:"data"`
}

// Paddle godoc
// @Summary      Webhook de Paddle
// @Tags         billing
// @Accept       json
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/webhooks/paddle [post]
func (h *BillingWebhookHandler) Paddle(c *fiber.Ctx) error {
	body := c.Body()
	if !verifyHMAC(h.secrets.PaddleWebhookSecret, c.Get("Paddle-Signature"), body) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
	}
	var ev paddleEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MALFORMED_EVENT", Message: "payload inválido"})
	}

	var kind billing.EventType
	switch ev.EventType {
	case "transaction.completed":
		kind = billing.EventPaymentSucceeded
	case "transaction.payment_failed":
		kind = billing.EventPaymentFailed
	case "transaction.canceled":
		kind = billing.EventPaymentVoided
	default:
		return c.JSON(fiber.Map{"received": true})
	}

	var planRef string
	interval := plan.IntervalMonthly
	if len(ev.Data.Items) > 0 {
		planRef = ev.Data.Items[0].Price.ID
		if ev.Data.Items[0].Price.BillingCycle.Interval == "year" {
			interval = plan.IntervalAnnual
		}
	}
	amount, err := decimal.NewFromString(ev.Data.Details.Totals.Total)
	if err != nil {
		amount = decimal.Zero
	}

	return h.apply(c, billing.ProviderEvent{
		Provider:    plan.ProviderPaddle,
		Type:        kind,
		EventID:     ev.EventID,
		WorkspaceID: ev.Data.CustomData.WorkspaceID,
		PlanRef:     planRef,
		Interval:    interval,
		Amount:      amount,
		Currency:    ev.Data.Details.Totals.CurrencyCode,
		OccurredAt:  ev.OccurredAt.UTC(),
	})
}

// ── Lemon Squeezy ───────────────────────────────────────────────────────────

type lemonEvent struct {
	Meta struct {
		EventName  string `json:"event_name"`
		CustomData struct {
			WorkspaceID string `json:"workspace_id"`
		} `json:"custom_data"`
	} `json:"meta"`
	Data struct {
		ID         string `json:"id"`
		Attributes struct {
			VariantSlug string    `json:"variant_slug"`
			Interval    string    `json:"interval"` // month, year, lifetime
			Total       int64     `json:"total"`    // centavos
			Currency    string    `json:"currency"`
			CreatedAt   time.Time `json:"created_at"`
		} `json:"attributes"`
	} `json:"data"`
}

// Lemon godoc
// @Summary      Webhook de Lemon Squeezy
// @Tags         billing
// @Accept       json
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/webhooks/lemonsqueezy [post]
func (h *BillingWebhookHandler) Lemon(c *fiber.Ctx) error {
	body := c.Body()
	if !verifyHMAC(h.secrets.LemonWebhookSecret, c.Get("X-Signature"), body) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SIGNATURE", Message: "firma inválida"})
	}
	var ev lemonEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MALFORMED_EVENT", Message: "payload inválido"})
	}

	var kind billing.EventType
	switch ev.Meta.EventName {
	case "order_created", "subscription_payment_success":
		kind = billing.EventPaymentSucceeded
	case "subscription_payment_failed":
		kind = billing.EventPaymentFailed
	case "order_refunded":
		kind = billing.EventPaymentVoided
	default:
		return c.JSON(fiber.Map{"received": true})
	}

	attrs := ev.Data.Attributes
	interval := plan.IntervalMonthly
	switch attrs.Interval {
	case "year":
		interval = plan.IntervalAnnual
	case "lifetime":
		interval = plan.IntervalLifetime
	}

	return h.apply(c, billing.ProviderEvent{
		Provider:    plan.ProviderLemon,
		Type:        kind,
		EventID:     ev.Data.ID,
		WorkspaceID: ev.Meta.CustomData.WorkspaceID,
		PlanRef:     attrs.VariantSlug,
		Interval:    interval,
		Amount:      decimal.New(attrs.Total, -2),
		Currency:    attrs.Currency,
		OccurredAt:  attrs.CreatedAt.UTC(),
	})
}

// apply entrega el evento normalizado al reconciler y responde al proveedor.
// Un evento malformado devuelve 400 y NO se reintenta desde acá: el proveedor
// maneja sus propios reintentos de entrega.
func (h *BillingWebhookHandler) apply(c *fiber.Ctx, ev billing.ProviderEvent) error {
	if err := h.reconciler.Apply(c.UserContext(), ev); err != nil {
		h.log.Warn().Err(err).
			Str("provider", string(ev.Provider)).
			Str("event_id", ev.EventID).
			Msg("evento de billing descartado")
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"received": true})
}

// verifyHMAC compara la firma del header contra el HMAC-SHA256 hex del cuerpo
// crudo. Stripe manda "t=...,v1=<hex>"; Paddle y Lemon mandan el hex directo.
// Secret sin configurar rechaza siempre (fail closed).
func verifyHMAC(secret, header string, body []byte) bool {
	if secret == "" || header == "" {
		return false
	}
	signature := header
	for _, part := range strings.Split(header, ",") {
		if v, ok := strings.CutPrefix(strings.TrimSpace(part), "v1="); ok {
			signature = v
		}
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
