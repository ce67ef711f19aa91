package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
	"github.com/jhoicas/gst-invoice-api/internal/domain"
	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
)

// Límites de las columnas de invoices / invoice_lines (schema.sql).
type columnLimit struct {
	max    decimal.Decimal // exclusivo, en valor absoluto
	places int32
}

var (
	quantityLimit = columnLimit{max: decimal.New(1, 12), places: 6} // NUMERIC(18,6)
	taxRateLimit  = columnLimit{max: decimal.New(1, 4), places: 3}  // NUMERIC(7,3)
	amountLimit   = columnLimit{max: decimal.New(1, 15), places: 3} // NUMERIC(18,3)
)

func (l columnLimit) check(field string, v decimal.Decimal) error {
	if v.Abs().GreaterThanOrEqual(l.max) {
		return domain.NewFieldError(field, fmt.Sprintf("debe ser menor que %s", l.max.String()))
	}
	if !v.Equal(v.Truncate(l.places)) {
		return domain.NewFieldError(field, fmt.Sprintf("admite como máximo %d decimales", l.places))
	}
	return nil
}

// validateStorable comprueba que los datos de la factura caben en las columnas antes de guardarla.
// Los importes manuales se guardan redondeados a decimal_places, así que solo se limita su magnitud.
func validateStorable(in dto.CalculateRequest) error {
	for i, it := range in.Items {
		prefix := fmt.Sprintf("items[%d].", i)
		if err := quantityLimit.check(prefix+"quantity", it.Quantity.Decimal); err != nil {
			return err
		}
		if err := quantityLimit.check(prefix+"rate", it.Rate.Decimal); err != nil {
			return err
		}
		if err := taxRateLimit.check(prefix+"tax_rate_percent", it.TaxRatePercent.Decimal); err != nil {
			return err
		}
		if v := it.Amount.Ptr(); v != nil && v.Abs().GreaterThanOrEqual(amountLimit.max) {
			return domain.NewFieldError(prefix+"amount", fmt.Sprintf("debe ser menor que %s", amountLimit.max.String()))
		}
	}
	if in.ReceivedAmount.Abs().GreaterThanOrEqual(amountLimit.max) {
		return domain.NewFieldError("received_amount", fmt.Sprintf("debe ser menor que %s", amountLimit.max.String()))
	}
	return nil
}

// validateDerived rechaza facturas cuyos importes calculados no caben en NUMERIC(18,3),
// por ejemplo cantidad y tarifa válidas por separado pero con un producto enorme.
func validateDerived(inv gst.Invoice) error {
	tooBig := func(d decimal.Decimal) bool { return d.Abs().GreaterThanOrEqual(amountLimit.max) }
	for i, l := range inv.Lines {
		if tooBig(l.Base) || tooBig(l.FinalAmount) || tooBig(l.Tax.TaxAmount) {
			return domain.NewFieldError(fmt.Sprintf("items[%d]", i), "el importe de la línea excede el máximo admitido")
		}
	}
	t := inv.Totals
	for _, a := range []gst.Amount{t.SubTotal, t.CGST, t.SGST, t.IGST, t.TotalTaxPayable, t.GrandTotal, t.Balance} {
		if tooBig(a.Value) {
			return domain.NewFieldError("items", "los totales exceden el máximo admitido")
		}
	}
	return nil
}
