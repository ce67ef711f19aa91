package main

import (
	"fmt"

	"github.com/jhoicas/gst-invoice-api/internal/application/billing"
	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
	"github.com/jhoicas/gst-invoice-api/pkg/config"
	"github.com/jhoicas/gst-invoice-api/pkg/gstin"
)

// billingDefaults convierte la configuración GST_* en opciones validadas del motor.
func billingDefaults(c config.BillingConfig) (billing.Defaults, error) {
	method, err := gst.ParseTaxMethod(c.TaxMethod)
	if err != nil {
		return billing.Defaults{}, fmt.Errorf("GST_TAX_METHOD: %w", err)
	}
	mode, err := gst.ParseRoundingMode(c.RoundingMode)
	if err != nil {
		return billing.Defaults{}, fmt.Errorf("GST_ROUNDING_MODE: %w", err)
	}
	scope, err := gst.ParseRoundingScope(c.RoundingScope)
	if err != nil {
		return billing.Defaults{}, fmt.Errorf("GST_ROUNDING_SCOPE: %w", err)
	}
	opts := gst.CalculationOptions{
		TaxEnabled:    c.TaxEnabled,
		Method:        method,
		RoundingMode:  mode,
		DecimalPlaces: int32(c.DecimalPlaces),
		RoundingScope: scope,
	}
	if err := opts.Validate(); err != nil {
		return billing.Defaults{}, err
	}
	if c.SupplierGSTIN != "" {
		if err := gstin.Validate(c.SupplierGSTIN); err != nil {
			return billing.Defaults{}, fmt.Errorf("GST_SUPPLIER_GSTIN: %w", err)
		}
	}
	return billing.Defaults{
		Options:       opts,
		SupplierState: gstin.ResolveState(c.SupplierState, c.SupplierGSTIN),
		SupplierGSTIN: gstin.Normalize(c.SupplierGSTIN),
	}, nil
}
