package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
	"github.com/jhoicas/gst-invoice-api/internal/domain"
	"github.com/jhoicas/gst-invoice-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
	"github.com/jhoicas/gst-invoice-api/internal/domain/repository"
	"github.com/jhoicas/gst-invoice-api/pkg/logger"
)

const publishTimeout = 30 * time.Second

// InvoiceUseCase crea y consulta facturas GST.
type InvoiceUseCase struct {
	txRunner    InvoiceTxRunner
	invoiceRepo repository.InvoiceRepository
	cache       InvoiceCache
	publisher   InvoiceEventPublisher
	metrics     CalculationMetrics
	defaults    Defaults
	log         *logger.Logger
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso. cache, publisher y metrics son opcionales (nil).
func NewInvoiceUseCase(
	txRunner InvoiceTxRunner,
	invoiceRepo repository.InvoiceRepository,
	cache InvoiceCache,
	publisher InvoiceEventPublisher,
	metrics CalculationMetrics,
	defaults Defaults,
	log *logger.Logger,
) *InvoiceUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		cache:       cache,
		publisher:   publisher,
		metrics:     metrics,
		defaults:    defaults,
		log:         log,
		now:         time.Now,
	}
}

// CreateInvoice calcula la factura y guarda cabecera y líneas en una sola transacción.
// Tras el commit publica el evento invoice.created en segundo plano.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, companyID, userID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.Prefix = strings.TrimSpace(in.Prefix)
	if in.CustomerName == "" {
		return nil, domain.NewFieldError("customer_name", "es obligatorio")
	}
	if in.Prefix == "" {
		return nil, domain.NewFieldError("prefix", "es obligatorio")
	}
	if len(in.Items) == 0 {
		return nil, domain.NewFieldError("items", "la factura debe tener al menos una línea")
	}

	if err := validateStorable(in.CalculateRequest); err != nil {
		return nil, err
	}
	s, err := buildState(in.CalculateRequest, uc.defaults)
	if err != nil {
		return nil, err
	}
	derived := gst.Derive(s)
	if err := validateDerived(derived); err != nil {
		return nil, err
	}
	inv, lines := toEntities(s, derived)

	now := uc.now()
	inv.ID = uuid.New().String()
	inv.CompanyID = companyID
	inv.CreatedBy = userID
	inv.Prefix = in.Prefix
	inv.Number = strings.TrimSpace(in.Number)
	if inv.Number == "" {
		inv.Number = fmt.Sprintf("%d", now.Unix())
	}
	inv.Date = now
	inv.CustomerName = in.CustomerName
	inv.SupplierGSTIN = in.SupplierGSTIN
	if inv.SupplierGSTIN == "" {
		inv.SupplierGSTIN = uc.defaults.SupplierGSTIN
	}
	inv.BuyerGSTIN = in.BuyerGSTIN
	inv.CreatedAt = now
	inv.UpdatedAt = now

	err = uc.txRunner.RunInvoice(ctx, func(repo repository.InvoiceRepository) error {
		if err := repo.Create(ctx, inv); err != nil {
			return err
		}
		for _, l := range lines {
			l.ID = uuid.New().String()
			l.InvoiceID = inv.ID
			if err := repo.CreateLine(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("crear factura: %w", err)
	}

	uc.metrics.ObserveInvoiceCreated(gst.SupplyType(inv.SupplyType))
	uc.metrics.ObserveOverrides(inv.OverriddenFields)
	uc.log.WithInvoice(companyID, inv.ID).Info().
		Str("number", inv.Prefix+"-"+inv.Number).
		Str("supply_type", inv.SupplyType).
		Str("grand_total", inv.GrandTotal.String()).
		Msg("factura creada")

	resp := toInvoiceResponse(inv, lines)
	uc.cacheSet(ctx, resp)
	uc.PublishAsync(resp)
	return resp, nil
}

// GetInvoice devuelve la factura con sus líneas. Primero consulta la caché.
//
// Retorna domain.ErrNotFound si no existe y domain.ErrForbidden si pertenece a otra empresa.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, companyID, invoiceID string) (*dto.InvoiceResponse, error) {
	if uc.cache != nil {
		cached, err := uc.cache.Get(ctx, invoiceID)
		if err != nil {
			uc.log.Warn().Err(err).Str("invoice_id", invoiceID).Msg("caché de facturas no disponible")
		} else if cached != nil {
			if cached.CompanyID != companyID {
				return nil, domain.ErrForbidden
			}
			return cached, nil
		}
	}

	inv, lines, err := loadInvoice(ctx, uc.invoiceRepo, companyID, invoiceID)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(inv, lines)
	uc.cacheSet(ctx, resp)
	return resp, nil
}

// PublishAsync publica invoice.created en una goroutine con su propio timeout;
// un fallo del broker no afecta a la factura ya guardada.
func (uc *InvoiceUseCase) PublishAsync(resp *dto.InvoiceResponse) {
	if uc.publisher == nil {
		return
	}
	go uc.publish(resp)
}

func (uc *InvoiceUseCase) publish(resp *dto.InvoiceResponse) {
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := uc.publisher.PublishInvoiceCreated(ctx, resp); err != nil {
		uc.log.WithInvoice(resp.CompanyID, resp.ID).Error().Err(err).Msg("no se pudo publicar invoice.created")
		return
	}
	uc.log.WithInvoice(resp.CompanyID, resp.ID).Debug().Msg("evento invoice.created publicado")
}

func (uc *InvoiceUseCase) cacheSet(ctx context.Context, resp *dto.InvoiceResponse) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, resp); err != nil {
		uc.log.Warn().Err(err).Str("invoice_id", resp.ID).Msg("no se pudo cachear la factura")
	}
}

// loadInvoice carga cabecera y líneas verificando la empresa.
func loadInvoice(ctx context.Context, repo repository.InvoiceRepository, companyID, invoiceID string) (*entity.Invoice, []*entity.InvoiceLine, error) {
	inv, err := repo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener factura: %w", err)
	}
	if inv == nil {
		return nil, nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, nil, domain.ErrForbidden
	}
	lines, err := repo.GetLinesByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, nil, fmt.Errorf("obtener líneas: %w", err)
	}
	return inv, lines, nil
}
