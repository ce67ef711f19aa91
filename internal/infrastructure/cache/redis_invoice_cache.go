// Package cache implementa la caché de lectura de facturas sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appbilling "github.com/jhoicas/gst-invoice-api/internal/application/billing"
	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
	"github.com/jhoicas/gst-invoice-api/pkg/config"
	"github.com/jhoicas/gst-invoice-api/pkg/logger"
)

var _ appbilling.InvoiceCache = (*RedisInvoiceCache)(nil)

const (
	invoiceKeyPrefix = "gst:invoice:"
	defaultCacheTTL  = 5 * time.Minute
)

// RedisInvoiceCache guarda la respuesta ya serializada de cada factura.
// Las facturas no se modifican tras crearse, así que no hay invalidación.
type RedisInvoiceCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisClient abre el cliente con la configuración de la app.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisInvoiceCache construye la caché sobre un cliente ya abierto.
func NewRedisInvoiceCache(client redis.UniversalClient, ttl time.Duration, log *logger.Logger) *RedisInvoiceCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RedisInvoiceCache{client: client, ttl: ttl, log: log}
}

// Get devuelve (nil, nil) si la factura no está en caché.
func (c *RedisInvoiceCache) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	data, err := c.client.Get(ctx, invoiceKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug().Str("invoice_id", id).Msg("cache miss")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var inv dto.InvoiceResponse
	if err := json.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("decodificar factura cacheada: %w", err)
	}
	c.log.Debug().Str("invoice_id", id).Msg("cache hit")
	return &inv, nil
}

// Set guarda la factura con el TTL configurado.
func (c *RedisInvoiceCache) Set(ctx context.Context, inv *dto.InvoiceResponse) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("codificar factura: %w", err)
	}
	if err := c.client.Set(ctx, invoiceKeyPrefix+inv.ID, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Ping verifica la conexión (para /health).
func (c *RedisInvoiceCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
