package billing_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
	"github.com/jhoicas/gst-invoice-api/internal/domain/entity"
	"github.com/jhoicas/gst-invoice-api/internal/domain/repository"
)

// memRepo repositorio en memoria.
type memRepo struct {
	mu       sync.Mutex
	invoices map[string]*entity.Invoice
	lines    map[string][]*entity.InvoiceLine
	failLine bool
	reads    int
}

func newMemRepo() *memRepo {
	return &memRepo{invoices: map[string]*entity.Invoice{}, lines: map[string][]*entity.InvoiceLine{}}
}

func (r *memRepo) Create(_ context.Context, inv *entity.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *memRepo) CreateLine(_ context.Context, l *entity.InvoiceLine) error {
	if r.failLine {
		return errors.New("fallo de inserción")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *l
	r.lines[l.InvoiceID] = append(r.lines[l.InvoiceID], &cp)
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *memRepo) GetLinesByInvoiceID(_ context.Context, id string) ([]*entity.InvoiceLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lines[id], nil
}

// memTx simula la transacción: si fn falla descarta lo escrito.
type memTx struct{ repo *memRepo }

func (t memTx) RunInvoice(ctx context.Context, fn func(repository.InvoiceRepository) error) error {
	staging := newMemRepo()
	staging.failLine = t.repo.failLine
	if err := fn(staging); err != nil {
		return err
	}
	t.repo.mu.Lock()
	defer t.repo.mu.Unlock()
	for id, inv := range staging.invoices {
		t.repo.invoices[id] = inv
	}
	for id, ls := range staging.lines {
		t.repo.lines[id] = ls
	}
	return nil
}

type memCache struct {
	mu    sync.Mutex
	items map[string]*dto.InvoiceResponse
	err   error
}

func newMemCache() *memCache { return &memCache{items: map[string]*dto.InvoiceResponse{}} }

func (c *memCache) Get(_ context.Context, id string) (*dto.InvoiceResponse, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	return c.items[id], nil
}

func (c *memCache) Set(_ context.Context, inv *dto.InvoiceResponse) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.items[inv.ID] = inv
	return nil
}

type chanPublisher struct {
	events chan *dto.InvoiceResponse
	err    error
}

func newChanPublisher() *chanPublisher {
	return &chanPublisher{events: make(chan *dto.InvoiceResponse, 4)}
}

func (p *chanPublisher) PublishInvoiceCreated(_ context.Context, inv *dto.InvoiceResponse) error {
	p.events <- inv
	return p.err
}

type fakeDocs struct{ calls int }

func (f *fakeDocs) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, lines []*entity.InvoiceLine) ([]byte, error) {
	f.calls++
	return []byte("%PDF-" + inv.Number), nil
}

func (f *fakeDocs) ExportInvoiceXLSX(_ context.Context, inv *entity.Invoice, lines []*entity.InvoiceLine) ([]byte, error) {
	f.calls++
	return []byte("PK" + inv.Number), nil
}
