// Package gstin valida el GSTIN (Goods and Services Tax Identification Number, India).
//
// Estructura (15 caracteres):
//
//	27  AAPFU0939F  1  Z  V
//	│   │           │  │  └ carácter de control (módulo 36)
//	│   │           │  └─── fijo "Z"
//	│   │           └────── número de registro dentro del PAN
//	│   └────────────────── PAN del contribuyente
//	└────────────────────── código de estado
package gstin

import (
	"fmt"
	"regexp"
	"strings"
)

// Length longitud fija del GSTIN.
const Length = 15

const charset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

var pattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// Normalize quita espacios y pasa a mayúsculas.
func Normalize(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Validate verifica formato, código de estado y carácter de control.
func Validate(gstin string) error {
	g := Normalize(gstin)
	if len(g) != Length {
		return fmt.Errorf("gstin: debe tener %d caracteres, se recibieron %d", Length, len(g))
	}
	if !pattern.MatchString(g) {
		return fmt.Errorf("gstin: formato inválido %q", g)
	}
	if _, ok := stateNames[g[:2]]; !ok {
		return fmt.Errorf("gstin: código de estado desconocido %s", g[:2])
	}
	expected, err := CheckDigit(g[:14])
	if err != nil {
		return err
	}
	if g[14] != expected {
		return fmt.Errorf("gstin: carácter de control inválido: esperado %c, recibido %c", expected, g[14])
	}
	return nil
}

// CheckDigit calcula el carácter de control (módulo 36) para los 14 primeros caracteres.
// Las posiciones pares pesan 1 y las impares 2; cada producto aporta cociente + resto base 36.
func CheckDigit(first14 string) (byte, error) {
	s := Normalize(first14)
	if len(s) != Length-1 {
		return 0, fmt.Errorf("gstin: se requieren %d caracteres para calcular el control, se recibieron %d", Length-1, len(s))
	}
	sum := 0
	for i := 0; i < len(s); i++ {
		v := strings.IndexByte(charset, s[i])
		if v < 0 {
			return 0, fmt.Errorf("gstin: carácter no permitido %q en posición %d", s[i], i+1)
		}
		factor := 1
		if i%2 == 1 {
			factor = 2
		}
		p := v * factor
		sum += p/36 + p%36
	}
	return charset[(36-sum%36)%36], nil
}

// StateCode código de estado (dos dígitos) del GSTIN, sin validar el resto.
func StateCode(gstin string) string {
	g := Normalize(gstin)
	if len(g) < 2 {
		return ""
	}
	return g[:2]
}

// ResolveState usa el estado explícito si viene informado; si no, el del GSTIN.
func ResolveState(explicit, gstin string) string {
	if strings.TrimSpace(explicit) != "" {
		return explicit
	}
	if gstin == "" {
		return ""
	}
	name, _ := StateName(StateCode(gstin))
	return name
}
