package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IntakeMetrics содержит метрики приёма заказов и HTTP-слоя.
type IntakeMetrics struct {
	// Счётчики результата обработки
	ordersCreated      prometheus.Counter
	validationFailures *prometheus.CounterVec
	dependencyErrors   *prometheus.CounterVec

	// Распределение сумм успешных заказов
	orderTotal prometheus.Histogram

	// Латентность HTTP-запросов по маршруту и коду ответа
	requestDuration *prometheus.HistogramVec
}

// NewIntakeMetrics создаёт метрики в DefaultRegisterer.
func NewIntakeMetrics() *IntakeMetrics {
	return NewIntakeMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewIntakeMetricsWithRegisterer создаёт метрики в переданном registerer.
// Повторная регистрация переиспользует уже существующие коллекторы.
func NewIntakeMetricsWithRegisterer(registerer prometheus.Registerer) *IntakeMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	return &IntakeMetrics{
		ordersCreated: registerCounter(registerer, prometheus.CounterOpts{
			Name: "storefront_orders_created_total",
			Help: "Total number of orders persisted successfully",
		}),
		validationFailures: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_order_validation_failures_total",
			Help: "Total number of rejected order submissions by reason",
		}, []string{"reason"}),
		dependencyErrors: registerCounterVec(registerer, prometheus.CounterOpts{
			Name: "storefront_dependency_errors_total",
			Help: "Total number of catalog/store collaborator failures",
		}, []string{"collaborator"}),
		orderTotal: registerHistogram(registerer, prometheus.HistogramOpts{
			Name:    "storefront_order_total_amount",
			Help:    "Distribution of computed order totals",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		requestDuration: registerHistogramVec(registerer, prometheus.HistogramOpts{
			Name:    "storefront_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}, []string{"path", "code"}),
	}
}

// RecordOrderCreated фиксирует успешно сохранённый заказ и его сумму.
func (m *IntakeMetrics) RecordOrderCreated(total float64) {
	m.ordersCreated.Inc()
	m.orderTotal.Observe(total)
}

// RecordValidationFailure фиксирует отклонённый запрос по причине.
func (m *IntakeMetrics) RecordValidationFailure(reason string) {
	m.validationFailures.WithLabelValues(reason).Inc()
}

// RecordDependencyError фиксирует сбой коллаборатора (catalog | order-store).
func (m *IntakeMetrics) RecordDependencyError(collaborator string) {
	m.dependencyErrors.WithLabelValues(collaborator).Inc()
}

// ObserveRequest фиксирует латентность HTTP-запроса.
func (m *IntakeMetrics) ObserveRequest(path string, code int, elapsed time.Duration) {
	m.requestDuration.WithLabelValues(path, fmt.Sprintf("%d", code)).Observe(elapsed.Seconds())
}

func registerCounter(registerer prometheus.Registerer, opts prometheus.CounterOpts) prometheus.Counter {
	collector := prometheus.NewCounter(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Counter)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter %q: %v", opts.Name, err))
	}
	return collector
}

func registerCounterVec(registerer prometheus.Registerer, opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	collector := prometheus.NewCounterVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register counter vec %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogram(registerer prometheus.Registerer, opts prometheus.HistogramOpts) prometheus.Histogram {
	collector := prometheus.NewHistogram(opts)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(prometheus.Histogram)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram %q: %v", opts.Name, err))
	}
	return collector
}

func registerHistogramVec(registerer prometheus.Registerer, opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	collector := prometheus.NewHistogramVec(opts, labels)
	if err := registerer.Register(collector); err != nil {
		if alreadyRegistered, ok := err.(prometheus.AlreadyRegisteredError); ok {
			existing, ok := alreadyRegistered.ExistingCollector.(*prometheus.HistogramVec)
			if !ok {
				panic(fmt.Sprintf("collector %q already registered with unexpected type", opts.Name))
			}
			return existing
		}
		panic(fmt.Sprintf("register histogram vec %q: %v", opts.Name, err))
	}
	return collector
}
