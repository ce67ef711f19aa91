package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice representa la cabecera de una factura GST con sus totales ya calculados.
// Los importes se guardan con los decimales fijos configurados (DecimalPlaces).
type Invoice struct {
	ID            string
	CompanyID     string
	CreatedBy     string
	Prefix        string
	Number        string
	Date          time.Time
	CustomerName  string
	SupplierGSTIN string
	BuyerGSTIN    string
	SupplierState string
	BuyerState    string
	SupplyType    string // intra_state | inter_state

	// Opciones de cálculo con las que se generó
	TaxEnabled    bool
	TaxMethod     string
	RoundingMode  string
	DecimalPlaces int32
	RoundingScope string

	SubTotal          decimal.Decimal
	CGSTTotal         decimal.Decimal
	SGSTTotal         decimal.Decimal
	IGSTTotal         decimal.Decimal
	TotalTaxPayable   decimal.Decimal
	GrandTotal        decimal.Decimal
	ReceivedAmount    decimal.Decimal
	Balance           decimal.Decimal
	BalanceConsistent bool
	OverriddenFields  []string // totales ajustados a mano (sub_total, grand_total, ...)

	CreatedAt time.Time
	UpdatedAt time.Time
}
