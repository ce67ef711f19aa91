// Package events publica eventos de facturación en Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	appbilling "github.com/jhoicas/gst-invoice-api/internal/application/billing"
	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
	"github.com/jhoicas/gst-invoice-api/pkg/config"
	"github.com/jhoicas/gst-invoice-api/pkg/logger"
)

var _ appbilling.InvoiceEventPublisher = (*KafkaPublisher)(nil)

// EventType tipo de evento de facturación.
type EventType string

const EventTypeInvoiceCreated EventType = "invoice.created"

// InvoiceEvent sobre del evento; Data lleva la factura tal como la devuelve la API.
type InvoiceEvent struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	InvoiceID string          `json:"invoice_id"`
	CompanyID string          `json:"company_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// MessageWriter parte de *kafka.Writer que usa el publicador.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher implementa billing.InvoiceEventPublisher.
type KafkaPublisher struct {
	writer MessageWriter
	log    *logger.Logger
	now    func() time.Time
}

// NewKafkaWriter construye el writer para el topic configurado.
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
	}
}

// NewKafkaPublisher construye el publicador sobre un writer.
func NewKafkaPublisher(w MessageWriter, log *logger.Logger) *KafkaPublisher {
	if log == nil {
		log = logger.Nop()
	}
	return &KafkaPublisher{writer: w, log: log, now: time.Now}
}

// PublishInvoiceCreated publica invoice.created con clave = empresa, para conservar el orden por empresa.
func (p *KafkaPublisher) PublishInvoiceCreated(ctx context.Context, inv *dto.InvoiceResponse) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("codificar factura: %w", err)
	}
	event := InvoiceEvent{
		ID:        uuid.New().String(),
		Type:      EventTypeInvoiceCreated,
		InvoiceID: inv.ID,
		CompanyID: inv.CompanyID,
		Data:      data,
		Timestamp: p.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("codificar evento: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(inv.CompanyID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	p.log.Info().
		Str("event_id", event.ID).
		Str("event_type", string(event.Type)).
		Str("invoice_id", inv.ID).
		Msg("evento publicado")
	return nil
}

// Close cierra el writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
