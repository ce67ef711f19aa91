// Package spreadsheet exporta facturas GST a hojas de cálculo .xlsx con excelize.
package spreadsheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	appbilling "github.com/jhoicas/gst-invoice-api/internal/application/billing"
	"github.com/jhoicas/gst-invoice-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoice-api/pkg/logger"
)

var _ appbilling.InvoiceSpreadsheetExporter = (*XLSXExporter)(nil)

const (
	sheetInvoice = "Invoice"
	firstLineRow = 9
)

var lineHeaders = []string{
	"#", "Description", "Qty", "Rate", "Taxable Value", "Manual", "GST %",
	"CGST", "SGST", "IGST", "Tax", "Amount",
}

// XLSXExporter implementa billing.InvoiceSpreadsheetExporter.
type XLSXExporter struct {
	log *logger.Logger
}

// NewXLSXExporter construye el exportador.
func NewXLSXExporter(log *logger.Logger) *XLSXExporter {
	if log == nil {
		log = logger.Nop()
	}
	return &XLSXExporter{log: log}
}

// ExportInvoiceXLSX arma una hoja con cabecera, líneas y totales, y devuelve el archivo en memoria.
func (e *XLSXExporter) ExportInvoiceXLSX(_ context.Context, inv *entity.Invoice, lines []*entity.InvoiceLine) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetInvoice); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	numFmt := "#,##0"
	if inv.DecimalPlaces > 0 {
		numFmt += "." + strings.Repeat("0", int(inv.DecimalPlaces))
	}
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo numérico: %w", err)
	}

	// Cabecera
	e.setCell(f, "A1", "TAX INVOICE")
	e.setCell(f, "B1", inv.Prefix+"-"+inv.Number)
	e.setCell(f, "A2", "Date")
	e.setCell(f, "B2", inv.Date.Format("2006-01-02"))
	e.setCell(f, "A3", "Customer")
	e.setCell(f, "B3", inv.CustomerName)
	e.setCell(f, "A4", "Supplier GSTIN")
	e.setCell(f, "B4", inv.SupplierGSTIN)
	e.setCell(f, "C4", inv.SupplierState)
	e.setCell(f, "A5", "Buyer GSTIN")
	e.setCell(f, "B5", inv.BuyerGSTIN)
	e.setCell(f, "C5", inv.BuyerState)
	e.setCell(f, "A6", "Supply")
	e.setCell(f, "B6", inv.SupplyType)
	e.setCell(f, "A7", "Options")
	e.setCell(f, "B7", fmt.Sprintf("tax=%t method=%s rounding=%s decimals=%d scope=%s",
		inv.TaxEnabled, inv.TaxMethod, inv.RoundingMode, inv.DecimalPlaces, inv.RoundingScope))
	e.style(f, "A1", "A7", bold)

	// Líneas
	header := make([]interface{}, len(lineHeaders))
	for i, h := range lineHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetInvoice, cellName(1, firstLineRow-1), &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera de líneas: %w", err)
	}
	e.style(f, cellName(1, firstLineRow-1), cellName(len(lineHeaders), firstLineRow-1), bold)

	r := firstLineRow
	for _, l := range lines {
		manual := ""
		if l.AmountOverridden {
			manual = "yes"
		}
		values := []interface{}{
			l.Position, l.Description, num(l.Quantity), num(l.Rate), num(l.BaseAmount), manual,
			num(l.TaxRatePercent), num(l.CGSTAmount), num(l.SGSTAmount), num(l.IGSTAmount),
			num(l.TaxAmount), num(l.FinalAmount),
		}
		if err := f.SetSheetRow(sheetInvoice, cellName(1, r), &values); err != nil {
			return nil, fmt.Errorf("xlsx: línea %d: %w", l.Position, err)
		}
		e.style(f, cellName(4, r), cellName(5, r), money)
		e.style(f, cellName(8, r), cellName(12, r), money)
		r++
	}

	// Totales
	r++
	manual := make(map[string]bool, len(inv.OverriddenFields))
	for _, field := range inv.OverriddenFields {
		manual[field] = true
	}
	for _, t := range []struct {
		field string
		label string
		value decimal.Decimal
	}{
		{"sub_total", "Sub Total", inv.SubTotal},
		{"cgst_total", "CGST", inv.CGSTTotal},
		{"sgst_total", "SGST", inv.SGSTTotal},
		{"igst_total", "IGST", inv.IGSTTotal},
		{"total_tax_payable", "Total Tax Payable", inv.TotalTaxPayable},
		{"grand_total", "Grand Total", inv.GrandTotal},
		{"received_amount", "Received", inv.ReceivedAmount},
		{"balance", "Balance", inv.Balance},
	} {
		e.setCell(f, cellName(11, r), t.label)
		e.setCell(f, cellName(12, r), num(t.value))
		if manual[t.field] {
			e.setCell(f, cellName(13, r), "manual")
		}
		e.style(f, cellName(11, r), cellName(11, r), bold)
		e.style(f, cellName(12, r), cellName(12, r), money)
		r++
	}

	if err := f.SetColWidth(sheetInvoice, "B", "B", 32); err != nil {
		e.log.Warn().Err(err).Msg("xlsx: ancho de columna")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

// setCell escribe un valor; un fallo se registra pero no aborta la exportación.
func (e *XLSXExporter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(sheetInvoice, cell, value); err != nil {
		e.log.Warn().Err(err).Str("cell", cell).Msg("xlsx: no se pudo escribir la celda")
	}
}

func (e *XLSXExporter) style(f *excelize.File, from, to string, style int) {
	if err := f.SetCellStyle(sheetInvoice, from, to, style); err != nil {
		e.log.Warn().Err(err).Str("range", from+":"+to).Msg("xlsx: no se pudo aplicar estilo")
	}
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// num las celdas numéricas de Excel son float64.
func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
