package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewIntakeMetrics_Collectors(t *testing.T) {
	m := NewIntakeMetricsWithRegisterer(prometheus.NewRegistry())

	if m.ordersCreated == nil {
		t.Error("ordersCreated counter should not be nil")
	}
	if m.validationFailures == nil {
		t.Error("validationFailures counter vec should not be nil")
	}
	if m.dependencyErrors == nil {
		t.Error("dependencyErrors counter vec should not be nil")
	}
	if m.orderTotal == nil {
		t.Error("orderTotal histogram should not be nil")
	}
	if m.requestDuration == nil {
		t.Error("requestDuration histogram vec should not be nil")
	}
}

func TestIntakeMetrics_DoubleRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := NewIntakeMetricsWithRegisterer(registry)
	// Повторная регистрация не должна паниковать, коллекторы переиспользуются.
	second := NewIntakeMetricsWithRegisterer(registry)

	first.RecordOrderCreated(10)
	second.RecordOrderCreated(20)

	metric := &dto.Metric{}
	if err := first.ordersCreated.Write(metric); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("expected shared counter value 2, got %v", got)
	}
}

func TestIntakeMetrics_RecordValidationFailure(t *testing.T) {
	m := NewIntakeMetricsWithRegisterer(prometheus.NewRegistry())

	m.RecordValidationFailure("EMPTY_CART")
	m.RecordValidationFailure("EMPTY_CART")
	m.RecordValidationFailure("PRODUCT_NOT_FOUND")

	metric := &dto.Metric{}
	if err := m.validationFailures.WithLabelValues("EMPTY_CART").Write(metric); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("expected EMPTY_CART count 2, got %v", got)
	}
}

func TestIntakeMetrics_RecordDependencyError(t *testing.T) {
	m := NewIntakeMetricsWithRegisterer(prometheus.NewRegistry())

	m.RecordDependencyError("catalog")
	m.RecordDependencyError("order-store")
	m.RecordDependencyError("order-store")

	metric := &dto.Metric{}
	if err := m.dependencyErrors.WithLabelValues("order-store").Write(metric); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("expected order-store count 2, got %v", got)
	}
}

func TestIntakeMetrics_ObserveRequest(t *testing.T) {
	m := NewIntakeMetricsWithRegisterer(prometheus.NewRegistry())

	m.ObserveRequest("/orders", 201, 15*time.Millisecond)
	m.ObserveRequest("/orders", 201, 30*time.Millisecond)

	metric := &dto.Metric{}
	observer, err := m.requestDuration.GetMetricWithLabelValues("/orders", "201")
	if err != nil {
		t.Fatalf("get metric: %v", err)
	}
	if err := observer.(prometheus.Histogram).Write(metric); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	if got := metric.GetHistogram().GetSampleCount(); got != 2 {
		t.Errorf("expected 2 observations, got %d", got)
	}
}
