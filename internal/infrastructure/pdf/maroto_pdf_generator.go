// Package pdf genera la representación gráfica de una factura GST (Tax Invoice).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: TAX INVOICE + N° Factura + Fecha                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR: GSTIN + Estado  │  COMPRADOR: Nombre + GSTIN     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Descripción | Cant | Tarifa | Base | GST% | C/S/IGST │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Sub Total / CGST / SGST / IGST / Grand Total       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR resumen + opciones de cálculo                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	appbilling "github.com/jhoicas/gst-invoice-api/internal/application/billing"
	"github.com/jhoicas/gst-invoice-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
)

var _ appbilling.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	companyName string
}

// NewMarotoPDFGenerator construye el generador. companyName aparece como autor y en la cabecera.
func NewMarotoPDFGenerator(companyName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{companyName: companyName}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	lines []*entity.InvoiceLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Tax Invoice "+invoiceNumber(invoice), true).
		WithAuthor(nonEmpty(g.companyName, "GST Invoice"), true).
		Build()

	m := maroto.New(cfg)
	places := invoice.DecimalPlaces

	m.AddRows(headerRow(invoice, g.companyName))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(lines, places)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(invoice)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(invoice))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(invoice *entity.Invoice, companyName string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(companyName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(supplyLabel(invoice.SupplyType), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("TAX INVOICE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoiceNumber(invoice), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+invoice.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// partiesRow: proveedor a la izquierda, comprador a la derecha.
func partiesRow(invoice *entity.Invoice) core.Row {
	block := func(title, name, gstin, state string) []core.Component {
		return []core.Component{
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(fmt.Sprintf("GSTIN: %s   |   State: %s", nonEmpty(gstin, "—"), nonEmpty(state, "—")),
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		}
	}
	return row.New(18).Add(
		col.New(6).Add(block("SUPPLIER", "", invoice.SupplierGSTIN, invoice.SupplierState)...),
		col.New(6).Add(block("BILL TO", invoice.CustomerName, invoice.BuyerGSTIN, invoice.BuyerState)...),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", 3, align.Left),
		h("Qty", 1, align.Center),
		h("Rate", 1, align.Right),
		h("Taxable", 2, align.Right),
		h("GST%", 1, align.Center),
		h("CGST", 1, align.Right),
		h("SGST", 1, align.Right),
		h("IGST", 1, align.Right),
		h("Amount", 1, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableLineRows: una fila por línea; "*" marca un importe base ajustado a mano.
func tableLineRows(lines []*entity.InvoiceLine, places int32) []core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		base := formatMoney(l.BaseAmount, places)
		if l.AmountOverridden {
			base += "*"
		}
		result = append(result, row.New(7).Add(
			cell(nonEmpty(l.Description, "—"), 3, align.Left),
			cell(l.Quantity.String(), 1, align.Center),
			cell(formatMoney(l.Rate, places), 1, align.Right),
			cell(base, 2, align.Right),
			cell(l.TaxRatePercent.String()+"%", 1, align.Center),
			cell(formatMoney(l.CGSTAmount, places), 1, align.Right),
			cell(formatMoney(l.SGSTAmount, places), 1, align.Right),
			cell(formatMoney(l.IGSTAmount, places), 1, align.Right),
			cell(formatMoney(l.FinalAmount, places), 1, align.Right),
		))
	}
	return result
}

// totalsRows: bloque de totales alineado a la derecha; "(manual)" marca los ajustes.
func totalsRows(invoice *entity.Invoice) []core.Row {
	p := invoice.DecimalPlaces
	manual := make(map[string]bool, len(invoice.OverriddenFields))
	for _, f := range invoice.OverriddenFields {
		manual[f] = true
	}

	entries := []struct {
		field string
		label string
		value decimal.Decimal
	}{
		{string(gst.FieldSubTotal), "Sub Total", invoice.SubTotal},
		{string(gst.FieldCGST), "CGST", invoice.CGSTTotal},
		{string(gst.FieldSGST), "SGST", invoice.SGSTTotal},
		{string(gst.FieldIGST), "IGST", invoice.IGSTTotal},
		{string(gst.FieldTotalTax), "Total Tax Payable", invoice.TotalTaxPayable},
		{string(gst.FieldGrandTotal), "GRAND TOTAL", invoice.GrandTotal},
		{"received_amount", "Received", invoice.ReceivedAmount},
		{string(gst.FieldBalance), "Balance", invoice.Balance},
	}

	rows := make([]core.Row, 0, len(entries)+1)
	for _, e := range entries {
		label := e.label + ":"
		if manual[e.field] {
			label = e.label + " (manual):"
		}
		style := props.Text{Size: 9, Align: align.Right, Right: 2}
		if e.field == string(gst.FieldGrandTotal) {
			style.Style = fontstyle.Bold
			style.Size = 10
			style.Color = colorPrimary
		}
		valueStyle := style
		valueStyle.Right = 1
		rows = append(rows, row.New(5).Add(
			col.New(6),
			col.New(3).Add(text.New(label, style)),
			col.New(3).Add(text.New(formatMoney(e.value, p), valueStyle)),
		))
	}
	if !invoice.BalanceConsistent {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Balance adjusted manually; it does not equal Grand Total minus Received.", props.Text{
				Size: 7, Align: align.Right, Color: colorGray, Right: 1,
			}),
		)))
	}
	return rows
}

// footerRow: QR con el resumen verificable y las opciones de cálculo usadas.
func footerRow(invoice *entity.Invoice) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(qrPayload(invoice), props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New(fmt.Sprintf("Tax: %s   |   Method: %s   |   Rounding: %s (%d decimals, scope %s)",
				onOff(invoice.TaxEnabled), invoice.TaxMethod, invoice.RoundingMode,
				invoice.DecimalPlaces, invoice.RoundingScope,
			), props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("This is a computer generated invoice.", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 14, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func invoiceNumber(invoice *entity.Invoice) string {
	return invoice.Prefix + "-" + invoice.Number
}

func qrPayload(invoice *entity.Invoice) string {
	return strings.Join([]string{
		"SellerGstin=" + invoice.SupplierGSTIN,
		"BuyerGstin=" + invoice.BuyerGSTIN,
		"DocNo=" + invoiceNumber(invoice),
		"DocDt=" + invoice.Date.Format("02/01/2006"),
		"TotInvVal=" + gst.Format(invoice.GrandTotal, invoice.DecimalPlaces),
	}, ";")
}

func supplyLabel(supplyType string) string {
	if supplyType == string(gst.SupplyInterState) {
		return "Inter-state supply (IGST)"
	}
	return "Intra-state supply (CGST + SGST)"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney agrupa la parte entera al estilo indio (lakh/crore) con los decimales fijos.
// Ej: 1234567.5 con 2 decimales → "12,34,567.50"
func formatMoney(d decimal.Decimal, places int32) string {
	s := gst.Format(d, places)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	return sign + groupIndian(intPart) + frac
}

// groupIndian últimos tres dígitos juntos y el resto en pares.
func groupIndian(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	head, tail := s[:n-3], s[n-3:]
	buf := make([]byte, 0, n+n/2)
	for i, c := range []byte(head) {
		if i > 0 && (len(head)-i)%2 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf) + "," + tail
}
