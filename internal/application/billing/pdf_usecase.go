package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/gst-invoice-api/internal/domain/repository"
)

// DocumentUseCase genera las representaciones descargables de una factura guardada (PDF y XLSX).
type DocumentUseCase struct {
	invoiceRepo repository.InvoiceRepository
	pdf         InvoicePDFGenerator
	xlsx        InvoiceSpreadsheetExporter
}

// NewDocumentUseCase construye el caso de uso inyectando todas sus dependencias.
func NewDocumentUseCase(
	invoiceRepo repository.InvoiceRepository,
	pdf InvoicePDFGenerator,
	xlsx InvoiceSpreadsheetExporter,
) *DocumentUseCase {
	return &DocumentUseCase{invoiceRepo: invoiceRepo, pdf: pdf, xlsx: xlsx}
}

// DownloadInvoicePDF carga la factura y genera su PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil)  si todo sale bien.
//   - domain.ErrNotFound         si la factura no existe.
//   - domain.ErrForbidden        si la factura no pertenece a la empresa del token.
func (uc *DocumentUseCase) DownloadInvoicePDF(ctx context.Context, companyID, invoiceID string) ([]byte, string, error) {
	inv, lines, err := loadInvoice(ctx, uc.invoiceRepo, companyID, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: %w", err)
	}
	b, err := uc.pdf.GenerateInvoicePDF(ctx, inv, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return b, fmt.Sprintf("invoice_%s-%s.pdf", inv.Prefix, inv.Number), nil
}

// DownloadInvoiceXLSX carga la factura y la exporta a hoja de cálculo.
// Mismos errores que DownloadInvoicePDF.
func (uc *DocumentUseCase) DownloadInvoiceXLSX(ctx context.Context, companyID, invoiceID string) ([]byte, string, error) {
	inv, lines, err := loadInvoice(ctx, uc.invoiceRepo, companyID, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: %w", err)
	}
	b, err := uc.xlsx.ExportInvoiceXLSX(ctx, inv, lines)
	if err != nil {
		return nil, "", fmt.Errorf("xlsx: exportación fallida: %w", err)
	}
	return b, fmt.Sprintf("invoice_%s-%s.xlsx", inv.Prefix, inv.Number), nil
}
