package entity

import "github.com/shopspring/decimal"

// InvoiceLine representa una línea de detalle de una factura GST.
type InvoiceLine struct {
	ID               string
	InvoiceID        string
	Position         int
	Description      string
	Quantity         decimal.Decimal
	Rate             decimal.Decimal
	TaxRatePercent   decimal.Decimal
	BaseAmount       decimal.Decimal
	AmountOverridden bool
	TaxAmount        decimal.Decimal
	CGSTAmount       decimal.Decimal
	SGSTAmount       decimal.Decimal
	IGSTAmount       decimal.Decimal
	FinalAmount      decimal.Decimal
}
