// Package metrics expone contadores Prometheus del motor de cálculo y de la API.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	appbilling "github.com/jhoicas/gst-invoice-api/internal/application/billing"
	"github.com/jhoicas/gst-invoice-api/internal/domain/gst"
)

var _ appbilling.CalculationMetrics = (*Prometheus)(nil)

// Prometheus implementa billing.CalculationMetrics y las métricas HTTP.
type Prometheus struct {
	calculations *prometheus.CounterVec
	overrides    *prometheus.CounterVec
	invoices     *prometheus.CounterVec
	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
}

// New registra las métricas en reg.
func New(reg prometheus.Registerer) *Prometheus {
	f := promauto.With(reg)
	return &Prometheus{
		calculations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gst",
			Name:      "calculations_total",
			Help:      "Cálculos de factura por tipo de suministro, método y si el impuesto está activo.",
		}, []string{"supply_type", "method", "tax_enabled"}),
		overrides: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gst",
			Name:      "total_overrides_total",
			Help:      "Totales ajustados manualmente por campo.",
		}, []string{"field"}),
		invoices: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gst",
			Name:      "invoices_created_total",
			Help:      "Facturas guardadas por tipo de suministro.",
		}, []string{"supply_type"}),
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gst",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Peticiones HTTP por ruta, método y código.",
		}, []string{"route", "method", "status"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gst",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func (p *Prometheus) ObserveCalculation(supply gst.SupplyType, method gst.TaxMethod, taxEnabled bool) {
	p.calculations.WithLabelValues(string(supply), string(method), strconv.FormatBool(taxEnabled)).Inc()
}

func (p *Prometheus) ObserveOverrides(fields []string) {
	for _, f := range fields {
		p.overrides.WithLabelValues(f).Inc()
	}
}

func (p *Prometheus) ObserveInvoiceCreated(supply gst.SupplyType) {
	p.invoices.WithLabelValues(string(supply)).Inc()
}

// ObserveRequest registra una petición HTTP ya respondida.
func (p *Prometheus) ObserveRequest(route, method string, status int, seconds float64) {
	p.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	p.latency.WithLabelValues(route, method).Observe(seconds)
}
