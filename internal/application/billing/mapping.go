package billing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
	"github.com/jhoicas/gst-invoice-api/internal/domain"
	"github.com/jhoicas/gst-invoice-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
	"github.com/jhoicas/gst-invoice-api/pkg/gstin"
)

// Defaults valores por defecto de la empresa emisora.
type Defaults struct {
	Options       gst.CalculationOptions
	SupplierState string
	SupplierGSTIN string
}

// resolveOptions completa las opciones del request con los valores por defecto y las valida.
func resolveOptions(in *dto.CalculationOptionsRequest, def gst.CalculationOptions) (gst.CalculationOptions, error) {
	opts := def
	if in == nil {
		return opts, opts.Validate()
	}
	if in.TaxEnabled != nil {
		opts.TaxEnabled = *in.TaxEnabled
	}
	if in.Method != "" {
		m, err := gst.ParseTaxMethod(in.Method)
		if err != nil {
			return opts, err
		}
		opts.Method = m
	}
	if in.RoundingMode != "" {
		m, err := gst.ParseRoundingMode(in.RoundingMode)
		if err != nil {
			return opts, err
		}
		opts.RoundingMode = m
	}
	if in.RoundingScope != "" {
		s, err := gst.ParseRoundingScope(in.RoundingScope)
		if err != nil {
			return opts, err
		}
		opts.RoundingScope = s
	}
	if in.DecimalPlaces != nil {
		if *in.DecimalPlaces < 0 || *in.DecimalPlaces > gst.MaxDecimalPlaces {
			return opts, domain.NewFieldError("decimal_places", "debe estar entre 0 y 3")
		}
		opts.DecimalPlaces = *in.DecimalPlaces
	}
	return opts, opts.Validate()
}

func validateGSTIN(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	if err := gstin.Validate(value); err != nil {
		return domain.NewFieldError(field, err.Error())
	}
	return nil
}

// buildState construye el estado de la factura aplicando cada dato del request
// como una acción del reductor.
func buildState(in dto.CalculateRequest, def Defaults) (gst.State, error) {
	opts, err := resolveOptions(in.Options, def.Options)
	if err != nil {
		return gst.State{}, err
	}

	supplierGSTIN := in.SupplierGSTIN
	if supplierGSTIN == "" {
		supplierGSTIN = def.SupplierGSTIN
	}
	if err := validateGSTIN("supplier_gstin", supplierGSTIN); err != nil {
		return gst.State{}, err
	}
	if err := validateGSTIN("buyer_gstin", in.BuyerGSTIN); err != nil {
		return gst.State{}, err
	}

	supplierState := in.SupplierState
	if strings.TrimSpace(supplierState) == "" && in.SupplierGSTIN == "" {
		supplierState = def.SupplierState
	}

	s := gst.NewState()
	s = gst.Reduce(s, gst.SetOptions{Value: opts})
	s = gst.Reduce(s, gst.SetJurisdiction{Value: gst.Jurisdiction{
		SupplierState: gstin.ResolveState(supplierState, supplierGSTIN),
		BuyerState:    gstin.ResolveState(in.BuyerState, in.BuyerGSTIN),
	}})
	for _, it := range in.Items {
		s = gst.Reduce(s, gst.AddLine{Item: gst.LineItem{
			Description:    strings.TrimSpace(it.Description),
			Quantity:       it.Quantity.Decimal,
			Rate:           it.Rate.Decimal,
			TaxRatePercent: it.TaxRatePercent.Decimal,
			AmountOverride: gst.OverrideFromPtr(it.Amount.Ptr()),
		}})
	}

	ov := in.Overrides
	for _, o := range []struct {
		field gst.TotalField
		value dto.OptionalNumber
	}{
		{gst.FieldSubTotal, ov.SubTotal},
		{gst.FieldCGST, ov.CGSTTotal},
		{gst.FieldSGST, ov.SGSTTotal},
		{gst.FieldIGST, ov.IGSTTotal},
		{gst.FieldTotalTax, ov.TotalTaxPayable},
		{gst.FieldGrandTotal, ov.GrandTotal},
		{gst.FieldBalance, ov.Balance},
	} {
		if o.value.Valid {
			s = gst.Reduce(s, gst.OverrideTotal{Field: o.field, Value: o.value.Value})
		}
	}
	return gst.Reduce(s, gst.SetReceived{Value: in.ReceivedAmount.Decimal}), nil
}

func overriddenFields(t gst.InvoiceTotals) []string {
	out := []string{}
	for _, f := range []struct {
		field gst.TotalField
		a     gst.Amount
	}{
		{gst.FieldSubTotal, t.SubTotal},
		{gst.FieldCGST, t.CGST},
		{gst.FieldSGST, t.SGST},
		{gst.FieldIGST, t.IGST},
		{gst.FieldTotalTax, t.TotalTaxPayable},
		{gst.FieldGrandTotal, t.GrandTotal},
		{gst.FieldBalance, t.Balance},
	} {
		if f.a.IsOverridden() {
			out = append(out, string(f.field))
		}
	}
	return out
}

// toEntities fija los importes a los decimales configurados, como se envían a persistencia.
func toEntities(s gst.State, inv gst.Invoice) (*entity.Invoice, []*entity.InvoiceLine) {
	p := s.Options.DecimalPlaces
	fx := func(d decimal.Decimal) decimal.Decimal { return d.Round(p) }
	t := inv.Totals

	header := &entity.Invoice{
		SupplierState:     s.Jurisdiction.SupplierState,
		BuyerState:        s.Jurisdiction.BuyerState,
		SupplyType:        string(s.Jurisdiction.SupplyType()),
		TaxEnabled:        s.Options.TaxEnabled,
		TaxMethod:         string(s.Options.Method),
		RoundingMode:      string(s.Options.RoundingMode),
		DecimalPlaces:     p,
		RoundingScope:     string(s.Options.RoundingScope),
		SubTotal:          fx(t.SubTotal.Value),
		CGSTTotal:         fx(t.CGST.Value),
		SGSTTotal:         fx(t.SGST.Value),
		IGSTTotal:         fx(t.IGST.Value),
		TotalTaxPayable:   fx(t.TotalTaxPayable.Value),
		GrandTotal:        fx(t.GrandTotal.Value),
		ReceivedAmount:    fx(t.ReceivedAmount),
		Balance:           fx(t.Balance.Value),
		BalanceConsistent: t.BalanceConsistent,
		OverriddenFields:  overriddenFields(t),
	}

	lines := make([]*entity.InvoiceLine, 0, len(inv.Lines))
	for i, l := range inv.Lines {
		lines = append(lines, &entity.InvoiceLine{
			Position:         i + 1,
			Description:      l.Item.Description,
			Quantity:         l.Item.Quantity,
			Rate:             l.Item.Rate,
			TaxRatePercent:   l.Item.TaxRatePercent,
			BaseAmount:       fx(l.Base),
			AmountOverridden: l.Item.AmountOverride.IsSet(),
			TaxAmount:        fx(l.Tax.TaxAmount),
			CGSTAmount:       fx(l.Tax.CGST),
			SGSTAmount:       fx(l.Tax.SGST),
			IGSTAmount:       fx(l.Tax.IGST),
			FinalAmount:      fx(l.FinalAmount),
		})
	}
	return header, lines
}

// toCalculateResponse serializa con decimales fijos (valor.toFixed(decimales)).
func toCalculateResponse(header *entity.Invoice, lines []*entity.InvoiceLine) dto.CalculateResponse {
	p := header.DecimalPlaces
	f := func(d decimal.Decimal) string { return gst.Format(d, p) }

	resp := dto.CalculateResponse{
		SupplierState: header.SupplierState,
		BuyerState:    header.BuyerState,
		SupplyType:    header.SupplyType,
		Options: dto.OptionsResponse{
			TaxEnabled:    header.TaxEnabled,
			Method:        header.TaxMethod,
			RoundingMode:  header.RoundingMode,
			DecimalPlaces: header.DecimalPlaces,
			RoundingScope: header.RoundingScope,
		},
		Lines: make([]dto.LineResultResponse, 0, len(lines)),
		Totals: dto.TotalsResponse{
			SubTotal:          f(header.SubTotal),
			CGSTTotal:         f(header.CGSTTotal),
			SGSTTotal:         f(header.SGSTTotal),
			IGSTTotal:         f(header.IGSTTotal),
			TotalTaxPayable:   f(header.TotalTaxPayable),
			GrandTotal:        f(header.GrandTotal),
			ReceivedAmount:    f(header.ReceivedAmount),
			Balance:           f(header.Balance),
			BalanceConsistent: header.BalanceConsistent,
			Overridden:        header.OverriddenFields,
		},
	}
	if resp.Totals.Overridden == nil {
		resp.Totals.Overridden = []string{}
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.LineResultResponse{
			Description:      l.Description,
			Quantity:         l.Quantity.String(),
			Rate:             l.Rate.String(),
			TaxRatePercent:   l.TaxRatePercent.String(),
			BaseAmount:       f(l.BaseAmount),
			AmountOverridden: l.AmountOverridden,
			TaxAmount:        f(l.TaxAmount),
			CGSTAmount:       f(l.CGSTAmount),
			SGSTAmount:       f(l.SGSTAmount),
			IGSTAmount:       f(l.IGSTAmount),
			FinalAmount:      f(l.FinalAmount),
		})
	}
	return resp
}

func toInvoiceResponse(inv *entity.Invoice, lines []*entity.InvoiceLine) *dto.InvoiceResponse {
	return &dto.InvoiceResponse{
		ID:                inv.ID,
		CompanyID:         inv.CompanyID,
		Prefix:            inv.Prefix,
		Number:            inv.Number,
		Date:              inv.Date.Format("2006-01-02"),
		CustomerName:      inv.CustomerName,
		SupplierGSTIN:     inv.SupplierGSTIN,
		BuyerGSTIN:        inv.BuyerGSTIN,
		CalculateResponse: toCalculateResponse(inv, lines),
	}
}
