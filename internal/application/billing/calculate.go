package billing

import (
	"context"

	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
)

// CalculateUseCase calcula una factura GST sin persistirla (vista previa del formulario).
type CalculateUseCase struct {
	defaults Defaults
	metrics  CalculationMetrics
}

// NewCalculateUseCase construye el caso de uso. metrics puede ser nil.
func NewCalculateUseCase(defaults Defaults, metrics CalculationMetrics) *CalculateUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &CalculateUseCase{defaults: defaults, metrics: metrics}
}

// Calculate valida las opciones, resuelve la jurisdicción y devuelve líneas y totales.
// Una factura sin líneas es válida: todos los totales quedan en cero.
func (uc *CalculateUseCase) Calculate(ctx context.Context, in dto.CalculateRequest) (*dto.CalculateResponse, error) {
	s, err := buildState(in, uc.defaults)
	if err != nil {
		return nil, err
	}
	header, lines := toEntities(s, gst.Derive(s))

	uc.metrics.ObserveCalculation(s.Jurisdiction.SupplyType(), s.Options.Method, s.Options.TaxEnabled)
	uc.metrics.ObserveOverrides(header.OverriddenFields)

	resp := toCalculateResponse(header, lines)
	return &resp, nil
}
