package gst

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// LineTax resultado del cálculo de impuesto de una línea.
type LineTax struct {
	TaxAmount   decimal.Decimal
	CGST        decimal.Decimal
	SGST        decimal.Decimal
	IGST        decimal.Decimal
	FinalAmount decimal.Decimal
}

// ComputeLineTax calcula el impuesto de una línea.
//
// Exclusivo: el impuesto se suma a la base. Inclusivo: la base ya contiene el
// impuesto, se extrae con base·tasa/(100+tasa) y el importe final no cambia.
// Intra-estatal reparte en CGST/SGST a partes iguales; inter-estatal va todo a IGST.
// Valores negativos se tratan como 0.
func ComputeLineTax(base, taxRatePercent decimal.Decimal, j Jurisdiction, taxEnabled bool, method TaxMethod) LineTax {
	base = nonNegative(base)
	rate := nonNegative(taxRatePercent)

	if !taxEnabled {
		return LineTax{
			TaxAmount:   decimal.Zero,
			CGST:        decimal.Zero,
			SGST:        decimal.Zero,
			IGST:        decimal.Zero,
			FinalAmount: base,
		}
	}

	intra := j.IsIntraState()
	out := LineTax{CGST: decimal.Zero, SGST: decimal.Zero, IGST: decimal.Zero}

	if method == MethodExclusive {
		if intra {
			out.CGST = base.Mul(rate.Div(two)).Div(hundred)
			out.SGST = out.CGST
		} else {
			out.IGST = base.Mul(rate).Div(hundred)
		}
		out.TaxAmount = out.CGST.Add(out.SGST).Add(out.IGST)
		out.FinalAmount = base.Add(out.TaxAmount)
		return out
	}

	portion := base.Mul(rate).Div(hundred.Add(rate))
	if intra {
		out.CGST = portion.Div(two)
		out.SGST = out.CGST
	} else {
		out.IGST = portion
	}
	out.TaxAmount = out.CGST.Add(out.SGST).Add(out.IGST)
	out.FinalAmount = base
	return out
}

// ComputeLineTaxFloat variante con float64: NaN o Inf en la entrada cuentan como 0.
func ComputeLineTaxFloat(base, taxRatePercent float64, supplierState, buyerState string, taxEnabled bool, method TaxMethod) LineTax {
	return ComputeLineTax(FromFloat(base), FromFloat(taxRatePercent),
		Jurisdiction{SupplierState: supplierState, BuyerState: buyerState}, taxEnabled, method)
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
