package gst

import "github.com/shopspring/decimal"

// LineItem línea de factura tal como la edita el usuario.
// AmountOverride, si existe, reemplaza la base cantidad × tarifa.
type LineItem struct {
	Description    string
	Quantity       decimal.Decimal
	Rate           decimal.Decimal
	TaxRatePercent decimal.Decimal
	AmountOverride Override
}

// BaseAmount cantidad × tarifa, o el ajuste manual de la línea.
func (li LineItem) BaseAmount() decimal.Decimal {
	if li.AmountOverride.IsSet() {
		return li.AmountOverride.Value()
	}
	return nonNegative(li.Quantity).Mul(nonNegative(li.Rate))
}

// LineResult línea con sus impuestos calculados.
// LineTax conserva los valores sin redondear (son los que se suman);
// FinalAmount es el importe a mostrar, redondeado solo con alcance "all".
type LineResult struct {
	Item        LineItem
	Base        decimal.Decimal
	Tax         LineTax
	FinalAmount decimal.Decimal
}

// ComputeLines calcula el impuesto de cada línea.
func ComputeLines(items []LineItem, j Jurisdiction, opts CalculationOptions) []LineResult {
	out := make([]LineResult, 0, len(items))
	for _, it := range items {
		base := it.BaseAmount()
		tax := ComputeLineTax(base, it.TaxRatePercent, j, opts.TaxEnabled, opts.Method)
		out = append(out, LineResult{
			Item:        it,
			Base:        base,
			Tax:         tax,
			FinalAmount: opts.round(tax.FinalAmount, opts.RoundsLines()),
		})
	}
	return out
}

// InvoiceTotals totales de la factura con su origen (calculado o ajustado).
type InvoiceTotals struct {
	SubTotal        Amount
	CGST            Amount
	SGST            Amount
	IGST            Amount
	TotalTaxPayable Amount
	GrandTotal      Amount
	ReceivedAmount  decimal.Decimal
	Balance         Amount
	// BalanceConsistent es false cuando un ajuste de saldo rompe saldo = total − recibido.
	BalanceConsistent bool
}

// ComputeTotals suma las líneas y aplica ajustes manuales y redondeo por alcance.
// Se suma sobre los valores sin redondear y se redondea una sola vez al final.
func ComputeTotals(lines []LineResult, opts CalculationOptions, ov Overrides, received decimal.Decimal) InvoiceTotals {
	sub, cgst, sgst, igst := decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	for _, l := range lines {
		if opts.TaxEnabled {
			sub = sub.Add(l.Tax.FinalAmount.Sub(l.Tax.TaxAmount))
			cgst = cgst.Add(l.Tax.CGST)
			sgst = sgst.Add(l.Tax.SGST)
			igst = igst.Add(l.Tax.IGST)
		} else {
			sub = sub.Add(l.Tax.FinalAmount)
		}
	}

	t := InvoiceTotals{ReceivedAmount: received}
	t.SubTotal = roundAmount(Resolve(sub, ov.SubTotal), opts, opts.RoundsSubtotal())
	t.CGST = roundAmount(Resolve(cgst, ov.CGST), opts, opts.RoundsTax())
	t.SGST = roundAmount(Resolve(sgst, ov.SGST), opts, opts.RoundsTax())
	t.IGST = roundAmount(Resolve(igst, ov.IGST), opts, opts.RoundsTax())

	components := t.CGST.Value.Add(t.SGST.Value).Add(t.IGST.Value)
	t.TotalTaxPayable = roundAmount(Resolve(components, ov.TotalTax), opts, opts.RoundsTax())

	grand := t.SubTotal.Value.Add(components)
	t.GrandTotal = roundAmount(Resolve(grand, ov.GrandTotal), opts, opts.RoundsGrandTotal())

	derived := t.GrandTotal.Value.Sub(received)
	t.Balance = Resolve(derived, ov.Balance)
	t.BalanceConsistent = t.Balance.Value.Equal(derived)
	return t
}

func roundAmount(a Amount, opts CalculationOptions, enabled bool) Amount {
	a.Value = opts.round(a.Value, enabled)
	return a
}
