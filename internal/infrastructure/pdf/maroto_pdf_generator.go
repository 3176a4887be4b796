// Package pdf genera la factura imprimible de una transacción.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio + RFC + domicilio │ FACTURA + Folio + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre / Teléfono │ Domicilio                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Descripción | Código | Precio | Importe       │
//	│  TOTALES: Total / Abono / Pendiente                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FECHAS │ CONDICIONES (renta o venta)                        │
//	│  FOOTER                                                      │
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appbilling "github.com/jhoicas/violett-api/internal/application/billing"
	"github.com/jhoicas/violett-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 124, Green: 58, Blue: 237}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

const dateLayout = "02/01/2006"

var moneyPrinter = message.NewPrinter(language.MustParse("es-MX"))

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, inv *appbilling.Invoice) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+inv.Folio, true).
		WithAuthor(inv.Business.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(inv))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(inv.Customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(inv))
	m.AddRows(totalsRows(inv)...)

	m.AddRows(line.NewRow(4))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(datesAndConditionsRow(inv))
	m.AddRows(footerRows()...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: datos del negocio (izq) y folio + fecha de impresión (der).
func headerRow(inv *appbilling.Invoice) core.Row {
	left := col.New(8).Add(
		text.New(inv.Business.Name, props.Text{
			Style: fontstyle.Bold, Size: 16, Color: colorPrimary, Top: 1,
		}),
	)
	top := 9.0
	if inv.Business.TaxID != "" {
		left.Add(text.New("RFC: "+inv.Business.TaxID, props.Text{Size: 8, Top: top, Color: colorGray}))
		top += 4
	}
	for _, l := range inv.Business.Address {
		left.Add(text.New(l, props.Text{Size: 8, Top: top, Color: colorGray}))
		top += 4
	}
	if len(inv.Business.Hours) > 0 {
		left.Add(text.New("Horario: "+strings.Join(inv.Business.Hours, " · "), props.Text{Size: 8, Top: top, Color: colorGray}))
		top += 4
	}

	return row.New(top+2).Add(
		left,
		col.New(4).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Folio: "+inv.Folio, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 8,
			}),
			text.New("Fecha: "+inv.IssuedOn.Format(dateLayout), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: nombre y teléfono (izq), domicilio (der).
func customerRow(c appbilling.InvoiceParty) core.Row {
	return row.New(18).Add(
		col.New(6).Add(
			text.New("Cliente:", props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1}),
			text.New("Nombre: "+nonEmpty(c.Name, "N/A"), props.Text{Size: 9, Top: 7}),
			text.New("Teléfono: "+nonEmpty(c.Phone, "N/A"), props.Text{Size: 9, Top: 12}),
		),
		col.New(6).Add(
			text.New("Domicilio: "+nonEmpty(c.Address, "N/A"), props.Text{Size: 9, Top: 7}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cantidad", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("Código", 2, align.Left),
		h("Precio", 2, align.Right),
		h("Importe", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// detailRow: la única línea (una transacción = un vestido).
func detailRow(inv *appbilling.Invoice) core.Row {
	description := fmt.Sprintf("%s (%s)", nonEmpty(inv.Line.Description, "N/A"), typeLabel(inv.Type))
	return row.New(8).Add(
		col.New(1).Add(text.New(fmt.Sprint(inv.Line.Quantity), props.Text{Size: 8, Align: align.Center, Top: 2})),
		col.New(5).Add(text.New(description, props.Text{Size: 8, Top: 2, Left: 1})),
		col.New(2).Add(text.New(nonEmpty(inv.Line.Code, "N/A"), props.Text{Size: 8, Top: 2, Left: 1})),
		col.New(2).Add(text.New(FormatMoney(inv.Line.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 2, Right: 1})),
		col.New(2).Add(text.New(FormatMoney(inv.Line.Amount), props.Text{Size: 8, Align: align.Right, Top: 2, Right: 1})),
	)
}

// totalsRows: Total y, si hubo abono, Abono y Pendiente.
func totalsRows(inv *appbilling.Invoice) []core.Row {
	totalRow := func(label, value string, highlight bool) core.Row {
		p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: 1}
		lp := props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1}
		if highlight {
			p.Style = fontstyle.Bold
			p.Color = colorPrimary
		}
		return row.New(6).Add(
			col.New(8),
			col.New(2).Add(text.New(label, lp)),
			col.New(2).Add(text.New(value, p)),
		)
	}
	rows := []core.Row{totalRow("Total:", FormatMoney(inv.Total), inv.Deposit == nil)}
	if inv.Deposit != nil {
		rows = append(rows,
			totalRow("Abono:", FormatMoney(*inv.Deposit), false),
			totalRow("Pendiente:", FormatMoney(inv.Balance), true),
		)
	}
	return rows
}

// datesAndConditionsRow: fechas (izq) y condiciones según el tipo (der).
func datesAndConditionsRow(inv *appbilling.Invoice) core.Row {
	dates := col.New(6).Add(
		text.New("Fechas:", props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1}),
		text.New("Fecha de Transacción: "+inv.CreatedOn.Format(dateLayout), props.Text{Size: 9, Top: 7}),
		text.New("Fecha de Entrega: "+inv.DeliveryDate.Format(dateLayout), props.Text{Size: 9, Top: 12}),
	)
	if inv.Type == entity.TypeRental && inv.ReturnDate != nil {
		dates.Add(text.New("Fecha de Devolución: "+inv.ReturnDate.Format(dateLayout), props.Text{Size: 9, Top: 17}))
	}

	conditions := col.New(6).Add(
		text.New("Condiciones:", props.Text{Style: fontstyle.Bold, Size: 10, Color: colorPrimary, Top: 1}),
	)
	for i, l := range Conditions(inv.Type) {
		conditions.Add(text.New(l, props.Text{Size: 9, Top: 7 + float64(i)*9}))
	}
	return row.New(28).Add(dates, conditions)
}

func footerRows() []core.Row {
	style := props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(text.New("Este documento es una representación impresa de la factura", style))),
		row.New(6).Add(col.New(12).Add(text.New("¡Gracias por su preferencia!", style))),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// Conditions leyenda de condiciones de renta o de venta.
func Conditions(tipo string) []string {
	if tipo == entity.TypeRental {
		return []string{
			"El vestido debe ser devuelto en las mismas condiciones en que fue entregado.",
			"En caso de daño o pérdida, se cobrará el valor total del producto.",
		}
	}
	return []string{"Venta final. No se aceptan devoluciones ni cambios."}
}

// FormatMoney formatea en pesos con separador de miles y dos decimales (ej. "$1,200.00").
func FormatMoney(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return moneyPrinter.Sprintf("$%.2f", f)
}

func typeLabel(tipo string) string {
	if tipo == entity.TypeSale {
		return "Venta"
	}
	return "Renta"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
