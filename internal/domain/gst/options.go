// Package gst implementa el motor de cálculo de GST (India): reparto CGST/SGST/IGST
// según la jurisdicción, métodos inclusivo/exclusivo, política de redondeo y
// agregación de totales con ajustes manuales.
//
// Todo el paquete es puro: no hace I/O y no guarda estado global.
package gst

import (
	"fmt"
	"strings"

	"github.com/jhoicas/gst-invoice-api/internal/domain"
)

// TaxMethod indica si el precio ya incluye el impuesto o si se suma encima.
type TaxMethod string

const (
	MethodInclusive TaxMethod = "inclusive"
	MethodExclusive TaxMethod = "exclusive"
)

// RoundingMode modo de redondeo configurable.
type RoundingMode string

const (
	RoundNearest RoundingMode = "nearest"
	RoundUp      RoundingMode = "up"
	RoundDown    RoundingMode = "down"
	RoundNone    RoundingMode = "none"
)

// RoundingScope a qué totales se aplica el redondeo.
type RoundingScope string

const (
	ScopeAll        RoundingScope = "all"
	ScopeSubtotal   RoundingScope = "subtotal"
	ScopeTax        RoundingScope = "tax"
	ScopeGrandTotal RoundingScope = "grandtotal"
)

// MaxDecimalPlaces límite superior de decimales configurables.
const MaxDecimalPlaces = 3

// CalculationOptions opciones globales de cálculo para toda la factura.
type CalculationOptions struct {
	TaxEnabled    bool
	Method        TaxMethod
	RoundingMode  RoundingMode
	DecimalPlaces int32
	RoundingScope RoundingScope
}

// DefaultOptions impuesto desactivado, inclusivo, redondeo al más cercano, 0 decimales, alcance "all".
func DefaultOptions() CalculationOptions {
	return CalculationOptions{
		TaxEnabled:    false,
		Method:        MethodInclusive,
		RoundingMode:  RoundNearest,
		DecimalPlaces: 0,
		RoundingScope: ScopeAll,
	}
}

// Validate rechaza enums desconocidos y decimales fuera de 0..3.
func (o CalculationOptions) Validate() error {
	switch o.Method {
	case MethodInclusive, MethodExclusive:
	default:
		return fmt.Errorf("%w: método de impuesto %q", domain.ErrInvalidInput, o.Method)
	}
	switch o.RoundingMode {
	case RoundNearest, RoundUp, RoundDown, RoundNone:
	default:
		return fmt.Errorf("%w: modo de redondeo %q", domain.ErrInvalidInput, o.RoundingMode)
	}
	switch o.RoundingScope {
	case ScopeAll, ScopeSubtotal, ScopeTax, ScopeGrandTotal:
	default:
		return fmt.Errorf("%w: alcance de redondeo %q", domain.ErrInvalidInput, o.RoundingScope)
	}
	if o.DecimalPlaces < 0 || o.DecimalPlaces > MaxDecimalPlaces {
		return fmt.Errorf("%w: decimales %d fuera de rango 0..%d", domain.ErrInvalidInput, o.DecimalPlaces, MaxDecimalPlaces)
	}
	return nil
}

// RoundsSubtotal true si el alcance incluye el subtotal.
func (o CalculationOptions) RoundsSubtotal() bool {
	return o.RoundingScope == ScopeAll || o.RoundingScope == ScopeSubtotal
}

// RoundsTax true si el alcance incluye los componentes de impuesto.
func (o CalculationOptions) RoundsTax() bool {
	return o.RoundingScope == ScopeAll || o.RoundingScope == ScopeTax
}

// RoundsGrandTotal true si el alcance incluye el total general.
func (o CalculationOptions) RoundsGrandTotal() bool {
	return o.RoundingScope == ScopeAll || o.RoundingScope == ScopeGrandTotal
}

// RoundsLines el importe final por línea solo se redondea con alcance "all".
func (o CalculationOptions) RoundsLines() bool {
	return o.RoundingScope == ScopeAll
}

// ParseTaxMethod convierte un string (sin distinguir mayúsculas) en TaxMethod.
// Vacío devuelve el valor por defecto.
func ParseTaxMethod(s string) (TaxMethod, error) {
	switch TaxMethod(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultOptions().Method, nil
	case MethodInclusive:
		return MethodInclusive, nil
	case MethodExclusive:
		return MethodExclusive, nil
	}
	return "", domain.NewFieldError("method", fmt.Sprintf("valor %q no soportado (inclusive|exclusive)", s))
}

// ParseRoundingMode convierte un string en RoundingMode.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch RoundingMode(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultOptions().RoundingMode, nil
	case RoundNearest:
		return RoundNearest, nil
	case RoundUp:
		return RoundUp, nil
	case RoundDown:
		return RoundDown, nil
	case RoundNone:
		return RoundNone, nil
	}
	return "", domain.NewFieldError("rounding_mode", fmt.Sprintf("valor %q no soportado (nearest|up|down|none)", s))
}

// ParseRoundingScope convierte un string en RoundingScope.
func ParseRoundingScope(s string) (RoundingScope, error) {
	switch RoundingScope(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DefaultOptions().RoundingScope, nil
	case ScopeAll:
		return ScopeAll, nil
	case ScopeSubtotal:
		return ScopeSubtotal, nil
	case ScopeTax:
		return ScopeTax, nil
	case ScopeGrandTotal:
		return ScopeGrandTotal, nil
	}
	return "", domain.NewFieldError("rounding_scope", fmt.Sprintf("valor %q no soportado (all|subtotal|tax|grandtotal)", s))
}
