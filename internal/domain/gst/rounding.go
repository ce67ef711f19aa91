package gst

import (
	"math"

	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// FromFloat convierte un float64 a decimal; NaN e ±Inf se tratan como 0.
// decimal.NewFromFloat entra en pánico con esos valores.
func FromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// ApplyRounding redondea value a places decimales según el modo.
//
//	none    → sin cambios
//	nearest → floor(v·10^d + 0.5) / 10^d  (la mitad sube hacia +∞)
//	up      → ceil(v·10^d) / 10^d
//	down    → floor(v·10^d) / 10^d
//
// places se limita a 0..3. Es idempotente para cualquier modo.
// Un modo desconocido se trata como nearest, el modo por defecto; CalculationOptions.Validate
// lo rechaza antes de llegar aquí.
func ApplyRounding(value decimal.Decimal, mode RoundingMode, places int32) decimal.Decimal {
	d := clampPlaces(places)
	switch mode {
	case RoundNone:
		return value
	case RoundUp:
		return value.RoundCeil(d)
	case RoundDown:
		return value.RoundFloor(d)
	case RoundNearest:
		return roundHalfUp(value, d)
	default:
		return roundHalfUp(value, d)
	}
}

func roundHalfUp(value decimal.Decimal, places int32) decimal.Decimal {
	return value.Shift(places).Add(half).Floor().Shift(-places)
}

// ApplyRoundingFloat punto de entrada con float64: NaN devuelve 0.
func ApplyRoundingFloat(value float64, mode RoundingMode, places int32) float64 {
	f, _ := ApplyRounding(FromFloat(value), mode, places).Float64()
	return f
}

// Format representación con decimales fijos, como se envía a la API externa.
func Format(value decimal.Decimal, places int32) string {
	return value.StringFixed(clampPlaces(places))
}

func clampPlaces(places int32) int32 {
	if places < 0 {
		return 0
	}
	if places > MaxDecimalPlaces {
		return MaxDecimalPlaces
	}
	return places
}

// round aplica el redondeo de las opciones solo si enabled (alcance).
func (o CalculationOptions) round(value decimal.Decimal, enabled bool) decimal.Decimal {
	if !enabled {
		return value
	}
	return ApplyRounding(value, o.RoundingMode, o.DecimalPlaces)
}
