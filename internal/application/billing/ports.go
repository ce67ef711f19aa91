package billing

import (
	"context"

	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
	"github.com/jhoicas/gst-invoice-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
	"github.com/jhoicas/gst-invoice-api/internal/domain/repository"
)

// InvoiceTxRunner ejecuta una función dentro de una transacción con el repositorio de facturas.
type InvoiceTxRunner interface {
	RunInvoice(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// InvoiceCache caché de lectura de facturas ya calculadas.
// Get devuelve (nil, nil) en caso de fallo de caché.
type InvoiceCache interface {
	Get(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	Set(ctx context.Context, invoice *dto.InvoiceResponse) error
}

// InvoiceEventPublisher publica eventos de facturación hacia otros servicios.
type InvoiceEventPublisher interface {
	PublishInvoiceCreated(ctx context.Context, invoice *dto.InvoiceResponse) error
}

// InvoicePDFGenerator genera la representación gráfica (PDF) de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, lines []*entity.InvoiceLine) ([]byte, error)
}

// InvoiceSpreadsheetExporter exporta la factura a hoja de cálculo (.xlsx).
type InvoiceSpreadsheetExporter interface {
	ExportInvoiceXLSX(ctx context.Context, invoice *entity.Invoice, lines []*entity.InvoiceLine) ([]byte, error)
}

// CalculationMetrics métricas del motor de cálculo.
type CalculationMetrics interface {
	ObserveCalculation(supply gst.SupplyType, method gst.TaxMethod, taxEnabled bool)
	ObserveOverrides(fields []string)
	ObserveInvoiceCreated(supply gst.SupplyType)
}

type noopMetrics struct{}

func (noopMetrics) ObserveCalculation(gst.SupplyType, gst.TaxMethod, bool) {}
func (noopMetrics) ObserveOverrides([]string)                              {}
func (noopMetrics) ObserveInvoiceCreated(gst.SupplyType)                   {}
