package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/gst-invoice-api/internal/domain"
	"github.com/jhoicas/gst-invoice-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoice-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, created_by, prefix, number, date, customer_name,
	supplier_gstin, buyer_gstin, supplier_state, buyer_state, supply_type,
	tax_enabled, tax_method, rounding_mode, decimal_places, rounding_scope,
	sub_total, cgst_total, sgst_total, igst_total, total_tax_payable, grand_total,
	received_amount, balance, balance_consistent, overridden_fields,
	created_at, updated_at`

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.Invoice) error {
	if inv.ID == "" {
		inv.ID = uuid.New().String()
	}
	overridden := inv.OverriddenFields
	if overridden == nil {
		overridden = []string{}
	}
	query := `INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.CompanyID, nullIfEmpty(inv.CreatedBy), inv.Prefix, inv.Number, inv.Date, inv.CustomerName,
		nullIfEmpty(inv.SupplierGSTIN), nullIfEmpty(inv.BuyerGSTIN), inv.SupplierState, inv.BuyerState, inv.SupplyType,
		inv.TaxEnabled, inv.TaxMethod, inv.RoundingMode, inv.DecimalPlaces, inv.RoundingScope,
		inv.SubTotal, inv.CGSTTotal, inv.SGSTTotal, inv.IGSTTotal, inv.TotalTaxPayable, inv.GrandTotal,
		inv.ReceivedAmount, inv.Balance, inv.BalanceConsistent, overridden,
		inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: ya existe la factura %s-%s", domain.ErrDuplicate, inv.Prefix, inv.Number)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine persiste una línea de la factura.
func (r *InvoiceRepo) CreateLine(ctx context.Context, l *entity.InvoiceLine) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_lines (id, invoice_id, position, description, quantity, rate, tax_rate_percent,
		                           base_amount, amount_overridden, tax_amount, cgst_amount, sgst_amount,
		                           igst_amount, final_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.InvoiceID, l.Position, l.Description, l.Quantity, l.Rate, l.TaxRatePercent,
		l.BaseAmount, l.AmountOverridden, l.TaxAmount, l.CGSTAmount, l.SGSTAmount,
		l.IGSTAmount, l.FinalAmount,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	var inv entity.Invoice
	var createdBy, supplierGSTIN, buyerGSTIN *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.CompanyID, &createdBy, &inv.Prefix, &inv.Number, &inv.Date, &inv.CustomerName,
		&supplierGSTIN, &buyerGSTIN, &inv.SupplierState, &inv.BuyerState, &inv.SupplyType,
		&inv.TaxEnabled, &inv.TaxMethod, &inv.RoundingMode, &inv.DecimalPlaces, &inv.RoundingScope,
		&inv.SubTotal, &inv.CGSTTotal, &inv.SGSTTotal, &inv.IGSTTotal, &inv.TotalTaxPayable, &inv.GrandTotal,
		&inv.ReceivedAmount, &inv.Balance, &inv.BalanceConsistent, &inv.OverriddenFields,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	inv.CreatedBy = derefStr(createdBy)
	inv.SupplierGSTIN = derefStr(supplierGSTIN)
	inv.BuyerGSTIN = derefStr(buyerGSTIN)
	return &inv, nil
}

// GetLinesByInvoiceID obtiene las líneas de una factura en su orden original.
func (r *InvoiceRepo) GetLinesByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, position, description, quantity, rate, tax_rate_percent,
		       base_amount, amount_overridden, tax_amount, cgst_amount, sgst_amount,
		       igst_amount, final_amount
		FROM invoice_lines WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(
			&l.ID, &l.InvoiceID, &l.Position, &l.Description, &l.Quantity, &l.Rate, &l.TaxRatePercent,
			&l.BaseAmount, &l.AmountOverridden, &l.TaxAmount, &l.CGSTAmount, &l.SGSTAmount,
			&l.IGSTAmount, &l.FinalAmount,
		); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
