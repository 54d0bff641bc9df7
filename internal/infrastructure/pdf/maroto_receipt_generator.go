// Package pdf implementa la generación del comprobante de pago de un
// workspace (último pago registrado por el reconciler de billing).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: TaskHive  │  Comprobante de pago + Fecha            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  WORKSPACE: nombre / plan / ciclo de cobro                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DETALLE: Plan | Proveedor | Moneda | Importe                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: próxima fecha de cobro / leyenda                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbilling "github.com/taskhive/taskhive-api/internal/application/billing"
	"github.com/taskhive/taskhive-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 242, Green: 153, Blue: 0}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.ReceiptPDFGenerator = (*MarotoReceiptGenerator)(nil)

// MarotoReceiptGenerator implementa billing.ReceiptPDFGenerator usando Maroto v2.
type MarotoReceiptGenerator struct{}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator() *MarotoReceiptGenerator { return &MarotoReceiptGenerator{} }

// Generate genera el PDF del comprobante y devuelve sus bytes.
func (g *MarotoReceiptGenerator) Generate(_ context.Context, data dto.ReceiptData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de pago TaskHive", true).
		WithAuthor("TaskHive", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(workspaceRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(detailHeaderRow())
	m.AddRows(detailRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(data))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: marca (izq) y título + fecha de pago (der).
func headerRow(data dto.ReceiptData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("TaskHive", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("Comprobante de pago", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(data.PaidAt.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// workspaceRow: nombre del workspace, plan y ciclo.
func workspaceRow(data dto.ReceiptData) core.Row {
	ciclo := data.Interval
	if ciclo == "" {
		ciclo = "-"
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("Workspace: "+data.WorkspaceName, props.Text{Size: 10, Top: 1}),
			text.New(fmt.Sprintf("Plan: %s · Ciclo: %s", strings.ToUpper(data.Plan), ciclo), props.Text{
				Size: 9, Top: 7, Color: colorGray,
			}),
		),
	)
}

func detailHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}
	return row.New(8).Add(
		col.New(4).Add(text.New("Plan", header)),
		col.New(3).Add(text.New("Proveedor", header)),
		col.New(2).Add(text.New("Moneda", header)),
		col.New(3).Add(text.New("Importe", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1, Align: align.Right})),
	)
}

func detailRow(data dto.ReceiptData) core.Row {
	cell := props.Text{Size: 9, Top: 1}
	provider := data.Provider
	if provider == "" {
		provider = "-"
	}
	return row.New(8).Add(
		col.New(4).Add(text.New(data.Plan, cell)),
		col.New(3).Add(text.New(provider, cell)),
		col.New(2).Add(text.New(data.Currency, cell)),
		col.New(3).Add(text.New(data.Amount.StringFixed(2), props.Text{Size: 9, Top: 1, Align: align.Right, Style: fontstyle.Bold})),
	)
}

// footerRow: próxima fecha de cobro (si hay) y leyenda.
func footerRow(data dto.ReceiptData) core.Row {
	next := "Sin próximo cobro programado"
	if data.NextBillingAt != nil {
		next = "Próximo cobro: " + data.NextBillingAt.Format("02/01/2006")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New(next, props.Text{Size: 9, Top: 1}),
			text.New("Documento generado automáticamente por TaskHive. No requiere firma.", props.Text{
				Size: 8, Top: 7, Color: colorGray,
			}),
		),
	)
}
