package gst

import "github.com/shopspring/decimal"

// State estado inmutable de una factura en edición. Reduce nunca modifica
// el estado recibido; siempre devuelve una copia.
type State struct {
	Lines        []LineItem
	Jurisdiction Jurisdiction
	Options      CalculationOptions
	Overrides    Overrides
	Received     decimal.Decimal
}

// NewState estado vacío con las opciones por defecto.
func NewState() State {
	return State{Options: DefaultOptions(), Received: decimal.Zero}
}

// Action edición del usuario sobre el estado.
type Action interface{ isAction() }

type (
	// AddLine agrega una línea al final.
	AddLine struct{ Item LineItem }
	// RemoveLine elimina la línea Index.
	RemoveLine struct{ Index int }
	// SetDescription no afecta el cálculo.
	SetDescription struct {
		Index int
		Value string
	}
	// SetQuantity limpia el ajuste manual de la línea.
	SetQuantity struct {
		Index int
		Value decimal.Decimal
	}
	// SetRate limpia el ajuste manual de la línea.
	SetRate struct {
		Index int
		Value decimal.Decimal
	}
	// SetTaxRate limpia el ajuste manual de la línea.
	SetTaxRate struct {
		Index int
		Value decimal.Decimal
	}
	// OverrideLineAmount fija manualmente la base de la línea.
	OverrideLineAmount struct {
		Index int
		Value decimal.Decimal
	}
	// ClearLineAmount vuelve al valor calculado.
	ClearLineAmount struct{ Index int }
	// SetJurisdiction conserva los ajustes manuales de las líneas.
	SetJurisdiction struct{ Value Jurisdiction }
	// SetOptions conserva los ajustes manuales de las líneas.
	SetOptions struct{ Value CalculationOptions }
	// OverrideTotal fija manualmente un total.
	OverrideTotal struct {
		Field TotalField
		Value decimal.Decimal
	}
	// ClearTotal vuelve al total calculado (campo vacío).
	ClearTotal struct{ Field TotalField }
	// SetReceived importe recibido del cliente.
	SetReceived struct{ Value decimal.Decimal }
)

func (AddLine) isAction()            {}
func (RemoveLine) isAction()         {}
func (SetDescription) isAction()     {}
func (SetQuantity) isAction()        {}
func (SetRate) isAction()            {}
func (SetTaxRate) isAction()         {}
func (OverrideLineAmount) isAction() {}
func (ClearLineAmount) isAction()    {}
func (SetJurisdiction) isAction()    {}
func (SetOptions) isAction()         {}
func (OverrideTotal) isAction()      {}
func (ClearTotal) isAction()         {}
func (SetReceived) isAction()        {}

// Reduce aplica la acción y devuelve el nuevo estado. Índices fuera de rango
// dejan el estado igual.
func Reduce(s State, a Action) State {
	next := s
	next.Lines = append([]LineItem(nil), s.Lines...)

	switch act := a.(type) {
	case AddLine:
		next.Lines = append(next.Lines, act.Item)
	case RemoveLine:
		if !inRange(next.Lines, act.Index) {
			return s
		}
		next.Lines = append(next.Lines[:act.Index], next.Lines[act.Index+1:]...)
	case SetDescription:
		if !inRange(next.Lines, act.Index) {
			return s
		}
		next.Lines[act.Index].Description = act.Value
	case SetQuantity:
		if !inRange(next.Lines, act.Index) {
			return s
		}
		next.Lines[act.Index].Quantity = act.Value
		next.Lines[act.Index].AmountOverride = NoOverride
	case SetRate:
		if !inRange(next.Lines, act.Index) {
			return s
		}
		next.Lines[act.Index].Rate = act.Value
		next.Lines[act.Index].AmountOverride = NoOverride
	case SetTaxRate:
		if !inRange(next.Lines, act.Index) {
			return s
		}
		next.Lines[act.Index].TaxRatePercent = act.Value
		next.Lines[act.Index].AmountOverride = NoOverride
	case OverrideLineAmount:
		if !inRange(next.Lines, act.Index) {
			return s
		}
		next.Lines[act.Index].AmountOverride = SetOverride(act.Value)
	case ClearLineAmount:
		if !inRange(next.Lines, act.Index) {
			return s
		}
		next.Lines[act.Index].AmountOverride = NoOverride
	case SetJurisdiction:
		next.Jurisdiction = act.Value
	case SetOptions:
		next.Options = act.Value
	case OverrideTotal:
		next.Overrides = next.Overrides.With(act.Field, SetOverride(act.Value))
	case ClearTotal:
		next.Overrides = next.Overrides.With(act.Field, NoOverride)
	case SetReceived:
		next.Received = act.Value
	default:
		return s
	}
	return next
}

// Invoice resultado derivado del estado.
type Invoice struct {
	Lines  []LineResult
	Totals InvoiceTotals
}

// Derive selector: recalcula líneas y totales a partir del estado.
func Derive(s State) Invoice {
	lines := ComputeLines(s.Lines, s.Jurisdiction, s.Options)
	return Invoice{
		Lines:  lines,
		Totals: ComputeTotals(lines, s.Options, s.Overrides, s.Received),
	}
}

func inRange(lines []LineItem, i int) bool {
	return i >= 0 && i < len(lines)
}
