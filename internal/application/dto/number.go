package dto

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Number importe numérico tolerante: acepta número o string en JSON y convierte
// cualquier valor no numérico (null, "", "abc", "NaN", true) en 0. Valores de 10^15
// en adelante o con más de 18 decimales también cuentan como no numéricos. El formulario
// nunca falla por un campo numérico mal escrito.
type Number struct {
	decimal.Decimal
}

// NewNumber construye un Number a partir de un decimal.
func NewNumber(d decimal.Decimal) Number { return Number{Decimal: d} }

// UnmarshalJSON ver Number.
func (n *Number) UnmarshalJSON(b []byte) error {
	d, ok := parseLenient(b)
	if !ok {
		d = decimal.Zero
	}
	n.Decimal = d
	return nil
}

// OptionalNumber valor manual opcional. Ausente, null, "" o no numérico
// significan "sin ajuste" (Valid = false).
type OptionalNumber struct {
	Value decimal.Decimal
	Valid bool
}

// Some construye un OptionalNumber informado.
func Some(d decimal.Decimal) OptionalNumber { return OptionalNumber{Value: d, Valid: true} }

// Ptr nil si no está informado.
func (o OptionalNumber) Ptr() *decimal.Decimal {
	if !o.Valid {
		return nil
	}
	v := o.Value
	return &v
}

// UnmarshalJSON ver OptionalNumber.
func (o *OptionalNumber) UnmarshalJSON(b []byte) error {
	d, ok := parseLenient(b)
	o.Value, o.Valid = d, ok
	return nil
}

// MarshalJSON null si no está informado.
func (o OptionalNumber) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return o.Value.MarshalJSON()
}

// Límites de lo que se acepta como número. Fuera de ellos el valor cuenta como no numérico:
// los importes caben en NUMERIC(18,3) y un exponente enorme no llega nunca a la aritmética.
const maxScale = 18

var maxMagnitude = decimal.New(1, 15)

func parseLenient(b []byte) (decimal.Decimal, bool) {
	s := strings.TrimSpace(string(b))
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" || s == "null" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if e := d.Exponent(); e > maxScale || e < -maxScale {
		return decimal.Zero, false
	}
	if d.Abs().GreaterThanOrEqual(maxMagnitude) {
		return decimal.Zero, false
	}
	return d, true
}
