// Package metrics expone contadores Prometheus del motor de transacciones y de la API HTTP.
package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config etiquetas constantes de todas las series.
type Config struct {
	ServiceName string
	Environment string
}

// Metrics implementa transaction.Recorder y registra la latencia HTTP.
type Metrics struct {
	transactionsCreated *prometheus.CounterVec
	customersResolved   *prometheus.CounterVec
	stockDecrements     *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
}

// New crea y registra las series en registerer (DefaultRegisterer si es nil).
func New(registerer prometheus.Registerer, cfg Config) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "violett-api"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &Metrics{
		transactionsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "violett_transactions_created_total",
			Help:        "Transacciones registradas por tipo (renta, venta).",
			ConstLabels: constLabels,
		}, []string{"tipo"}),
		customersResolved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "violett_customers_resolved_total",
			Help:        "Clientes resueltos al registrar una transacción: reutilizado o creado.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		stockDecrements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "violett_stock_decrements_total",
			Help:        "Descuentos de stock: aplicado, u omitido por producto inexistente.",
			ConstLabels: constLabels,
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "violett_http_requests_total",
			Help:        "Peticiones HTTP por método, ruta y código de estado.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "violett_http_request_duration_seconds",
			Help:        "Latencia de las peticiones HTTP.",
			Buckets:     []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
	}

	registerer.MustRegister(
		m.transactionsCreated,
		m.customersResolved,
		m.stockDecrements,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// TransactionCreated cuenta una transacción confirmada.
func (m *Metrics) TransactionCreated(tipo string) {
	m.transactionsCreated.WithLabelValues(tipo).Inc()
}

// CustomerResolved cuenta la resolución de cliente (reused=true: ya existía).
func (m *Metrics) CustomerResolved(reused bool) {
	result := "created"
	if reused {
		result = "reused"
	}
	m.customersResolved.WithLabelValues(result).Inc()
}

// StockDecrement cuenta el descuento de stock de una transacción.
func (m *Metrics) StockDecrement(applied bool) {
	result := "skipped"
	if applied {
		result = "applied"
	}
	m.stockDecrements.WithLabelValues(result).Inc()
}

// ObserveHTTP registra una petición. route es el patrón de la ruta, no la URL concreta.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
