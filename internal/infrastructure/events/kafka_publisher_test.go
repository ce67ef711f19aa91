package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoice-api/internal/application/dto"
	"github.com/jhoicas/gst-invoice-api/internal/infrastructure/events"
)

type memWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *memWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *memWriter) Close() error { return nil }

func TestPublishInvoiceCreated(t *testing.T) {
	w := &memWriter{}
	p := events.NewKafkaPublisher(w, nil)
	inv := &dto.InvoiceResponse{ID: "inv-1", CompanyID: "company-1", Prefix: "INV", Number: "7"}
	inv.Totals.GrandTotal = "236.00"

	require.NoError(t, p.PublishInvoiceCreated(context.Background(), inv))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "company-1", string(msg.Key))
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, "invoice.created", string(msg.Headers[0].Value))

	var ev events.InvoiceEvent
	require.NoError(t, json.Unmarshal(msg.Value, &ev))
	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, string(msg.Headers[1].Value), ev.ID)
	assert.Equal(t, "inv-1", ev.InvoiceID)

	var data dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(ev.Data, &data))
	assert.Equal(t, "236.00", data.Totals.GrandTotal)
}

func TestPublishInvoiceCreated_ErrorDelBroker(t *testing.T) {
	p := events.NewKafkaPublisher(&memWriter{err: errors.New("broker caído")}, nil)

	err := p.PublishInvoiceCreated(context.Background(), &dto.InvoiceResponse{ID: "x"})
	assert.ErrorContains(t, err, "broker caído")
}
