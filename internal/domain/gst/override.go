package gst

import "github.com/shopspring/decimal"

// Source origen de un importe efectivo.
type Source string

const (
	SourceComputed   Source = "computed"
	SourceOverridden Source = "overridden"
)

// Amount valor efectivo etiquetado: Computed(v) | Overridden(v).
type Amount struct {
	Value  decimal.Decimal
	Source Source
}

// Computed importe calculado por el motor.
func Computed(v decimal.Decimal) Amount { return Amount{Value: v, Source: SourceComputed} }

// Overridden importe fijado manualmente por el usuario.
func Overridden(v decimal.Decimal) Amount { return Amount{Value: v, Source: SourceOverridden} }

// IsOverridden true si el valor viene de un ajuste manual.
func (a Amount) IsOverridden() bool { return a.Source == SourceOverridden }

// Override ajuste manual opcional. El valor cero (NoOverride) significa "sin ajuste",
// así no hay ambigüedad entre null y un ajuste a 0.
type Override struct {
	value decimal.Decimal
	set   bool
}

// NoOverride ausencia de ajuste.
var NoOverride = Override{}

// SetOverride crea un ajuste manual con el valor dado.
func SetOverride(v decimal.Decimal) Override { return Override{value: v, set: true} }

// OverrideFromPtr nil significa sin ajuste (campo vacío en el formulario).
func OverrideFromPtr(v *decimal.Decimal) Override {
	if v == nil {
		return NoOverride
	}
	return SetOverride(*v)
}

// IsSet true si hay ajuste.
func (o Override) IsSet() bool { return o.set }

// Value valor del ajuste (cero si no hay).
func (o Override) Value() decimal.Decimal { return o.value }

// Ptr devuelve nil si no hay ajuste; útil para DTOs y persistencia.
func (o Override) Ptr() *decimal.Decimal {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}

// Resolve único punto de fusión: el ajuste, si existe, reemplaza al calculado.
func Resolve(computed decimal.Decimal, o Override) Amount {
	if o.set {
		return Overridden(o.value)
	}
	return Computed(computed)
}

// TotalField identifica un total que admite ajuste manual.
type TotalField string

const (
	FieldSubTotal   TotalField = "sub_total"
	FieldCGST       TotalField = "cgst_total"
	FieldSGST       TotalField = "sgst_total"
	FieldIGST       TotalField = "igst_total"
	FieldTotalTax   TotalField = "total_tax_payable"
	FieldGrandTotal TotalField = "grand_total"
	FieldBalance    TotalField = "balance"
)

// Overrides ajustes manuales de los totales de la factura.
type Overrides struct {
	SubTotal   Override
	CGST       Override
	SGST       Override
	IGST       Override
	TotalTax   Override
	GrandTotal Override
	Balance    Override
}

// With devuelve una copia con el ajuste del campo reemplazado. Campos desconocidos se ignoran.
func (o Overrides) With(field TotalField, v Override) Overrides {
	switch field {
	case FieldSubTotal:
		o.SubTotal = v
	case FieldCGST:
		o.CGST = v
	case FieldSGST:
		o.SGST = v
	case FieldIGST:
		o.IGST = v
	case FieldTotalTax:
		o.TotalTax = v
	case FieldGrandTotal:
		o.GrandTotal = v
	case FieldBalance:
		o.Balance = v
	}
	return o
}
