package dto

// CalculationOptionsRequest opciones de cálculo. Los campos ausentes toman el
// valor por defecto configurado en el servicio.
type CalculationOptionsRequest struct {
	TaxEnabled    *bool  `json:"tax_enabled,omitempty"`
	Method        string `json:"method,omitempty"`         // inclusive | exclusive
	RoundingMode  string `json:"rounding_mode,omitempty"`  // nearest | up | down | none
	DecimalPlaces *int32 `json:"decimal_places,omitempty"` // 0..3
	RoundingScope string `json:"rounding_scope,omitempty"` // all | subtotal | tax | grandtotal
}

// LineItemRequest línea de factura. Amount, si viene, reemplaza cantidad × tarifa.
type LineItemRequest struct {
	Description    string         `json:"description"`
	Quantity       Number         `json:"quantity"`
	Rate           Number         `json:"rate"`
	TaxRatePercent Number         `json:"tax_rate_percent"`
	Amount         OptionalNumber `json:"amount"`
}

// TotalsOverrideRequest ajustes manuales de totales; vacío o null = calculado.
type TotalsOverrideRequest struct {
	SubTotal        OptionalNumber `json:"sub_total"`
	CGSTTotal       OptionalNumber `json:"cgst_total"`
	SGSTTotal       OptionalNumber `json:"sgst_total"`
	IGSTTotal       OptionalNumber `json:"igst_total"`
	TotalTaxPayable OptionalNumber `json:"total_tax_payable"`
	GrandTotal      OptionalNumber `json:"grand_total"`
	Balance         OptionalNumber `json:"balance"`
}

// CalculateRequest body para POST /api/calculate.
// Si SupplierState/BuyerState van vacíos se toma el estado del GSTIN correspondiente.
type CalculateRequest struct {
	SupplierState  string                     `json:"supplier_state"`
	BuyerState     string                     `json:"buyer_state"`
	SupplierGSTIN  string                     `json:"supplier_gstin,omitempty"`
	BuyerGSTIN     string                     `json:"buyer_gstin,omitempty"`
	Options        *CalculationOptionsRequest `json:"options,omitempty"`
	Items          []LineItemRequest          `json:"items"`
	Overrides      TotalsOverrideRequest      `json:"overrides"`
	ReceivedAmount Number                     `json:"received_amount"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CalculateRequest
	CustomerName string `json:"customer_name"`
	Prefix       string `json:"prefix"`
	Number       string `json:"number,omitempty"` // opcional; si va vacío se genera
}

// OptionsResponse opciones efectivas usadas en el cálculo.
type OptionsResponse struct {
	TaxEnabled    bool   `json:"tax_enabled"`
	Method        string `json:"method"`
	RoundingMode  string `json:"rounding_mode"`
	DecimalPlaces int32  `json:"decimal_places"`
	RoundingScope string `json:"rounding_scope"`
}

// LineResultResponse línea con impuestos; importes con decimales fijos.
type LineResultResponse struct {
	Description      string `json:"description"`
	Quantity         string `json:"quantity"`
	Rate             string `json:"rate"`
	TaxRatePercent   string `json:"tax_rate_percent"`
	BaseAmount       string `json:"base_amount"`
	AmountOverridden bool   `json:"amount_overridden"`
	TaxAmount        string `json:"tax_amount"`
	CGSTAmount       string `json:"cgst_amount"`
	SGSTAmount       string `json:"sgst_amount"`
	IGSTAmount       string `json:"igst_amount"`
	FinalAmount      string `json:"final_amount"`
}

// TotalsResponse totales de la factura. Overridden lista los campos ajustados a mano.
type TotalsResponse struct {
	SubTotal          string   `json:"sub_total"`
	CGSTTotal         string   `json:"cgst_total"`
	SGSTTotal         string   `json:"sgst_total"`
	IGSTTotal         string   `json:"igst_total"`
	TotalTaxPayable   string   `json:"total_tax_payable"`
	GrandTotal        string   `json:"grand_total"`
	ReceivedAmount    string   `json:"received_amount"`
	Balance           string   `json:"balance"`
	BalanceConsistent bool     `json:"balance_consistent"`
	Overridden        []string `json:"overridden"`
}

// CalculateResponse resultado de POST /api/calculate.
type CalculateResponse struct {
	SupplierState string               `json:"supplier_state"`
	BuyerState    string               `json:"buyer_state"`
	SupplyType    string               `json:"supply_type"` // intra_state | inter_state
	Options       OptionsResponse      `json:"options"`
	Lines         []LineResultResponse `json:"lines"`
	Totals        TotalsResponse       `json:"totals"`
}

// InvoiceResponse factura guardada para GET /api/invoices/:id.
type InvoiceResponse struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	Prefix        string `json:"prefix"`
	Number        string `json:"number"`
	Date          string `json:"date"`
	CustomerName  string `json:"customer_name"`
	SupplierGSTIN string `json:"supplier_gstin,omitempty"`
	BuyerGSTIN    string `json:"buyer_gstin,omitempty"`
	CalculateResponse
}
