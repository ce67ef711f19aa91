package gst

import (
	"strings"

	"golang.org/x/text/cases"
)

// SupplyType tipo de operación según la jurisdicción de las partes.
type SupplyType string

const (
	SupplyIntraState SupplyType = "intra_state" // CGST + SGST
	SupplyInterState SupplyType = "inter_state" // IGST
)

// Jurisdiction par proveedor/comprador con nombres de estado en texto libre.
type Jurisdiction struct {
	SupplierState string
	BuyerState    string
}

// IsIntraState compara los estados ignorando espacios y mayúsculas.
func (j Jurisdiction) IsIntraState() bool {
	return normalizeState(j.SupplierState) == normalizeState(j.BuyerState)
}

// SupplyType devuelve el tipo de operación.
func (j Jurisdiction) SupplyType() SupplyType {
	if j.IsIntraState() {
		return SupplyIntraState
	}
	return SupplyInterState
}

func normalizeState(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}
