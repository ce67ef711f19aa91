package spreadsheet_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/gst-invoice-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoice-api/internal/infrastructure/spreadsheet"
)

func TestExportInvoiceXLSX(t *testing.T) {
	d := decimal.RequireFromString
	inv := &entity.Invoice{
		Prefix: "INV", Number: "42", Date: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		CustomerName: "Acme Traders", SupplierState: "Delhi", BuyerState: "Delhi", SupplyType: "intra_state",
		TaxEnabled: true, TaxMethod: "inclusive", RoundingMode: "nearest", DecimalPlaces: 2, RoundingScope: "all",
		SubTotal: d("1000"), CGSTTotal: d("90"), SGSTTotal: d("90"), TotalTaxPayable: d("180"),
		GrandTotal: d("1180"), Balance: d("1180"), OverriddenFields: []string{"grand_total"},
	}
	lines := []*entity.InvoiceLine{{
		Position: 1, Description: "Servicio", Quantity: d("1"), Rate: d("1180"), TaxRatePercent: d("18"),
		BaseAmount: d("1180"), TaxAmount: d("180"), CGSTAmount: d("90"), SGSTAmount: d("90"), FinalAmount: d("1180"),
	}}

	b, err := spreadsheet.NewXLSXExporter(nil).ExportInvoiceXLSX(context.Background(), inv, lines)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue("Invoice", cell)
		require.NoError(t, err)
		return v
	}
	assert.Equal(t, "INV-42", get("B1"))
	assert.Equal(t, "Acme Traders", get("B3"))
	assert.Equal(t, "Description", get("B8"))
	assert.Equal(t, "Servicio", get("B9"))
	assert.Equal(t, "Sub Total", get("K11"))
	assert.Equal(t, "Grand Total", get("K16"))
	assert.Equal(t, "manual", get("M16"))
	assert.Empty(t, get("M11"))
}
