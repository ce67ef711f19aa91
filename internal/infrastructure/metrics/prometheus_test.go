package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
	"github.com/jhoicas/gst-invoice-api/internal/infrastructure/metrics"
)

func TestPrometheus_Contadores(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveCalculation(gst.SupplyIntraState, gst.MethodExclusive, true)
	m.ObserveCalculation(gst.SupplyIntraState, gst.MethodExclusive, true)
	m.ObserveOverrides([]string{"balance", "grand_total"})
	m.ObserveInvoiceCreated(gst.SupplyInterState)
	m.ObserveRequest("/api/calculate", "POST", 200, 0.01)

	families, err := reg.Gather()
	require.NoError(t, err)

	series := map[string]int{}
	var calculations float64
	for _, mf := range families {
		series[mf.GetName()] = len(mf.GetMetric())
		if mf.GetName() == "gst_calculations_total" {
			calculations = mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2, series["gst_total_overrides_total"])
	assert.Equal(t, 1, series["gst_invoices_created_total"])
	assert.Equal(t, 1, series["gst_http_request_duration_seconds"])
	assert.Equal(t, float64(2), calculations)
}
