package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PaymentMetrics records gateway call outcomes and reconciliation results.
type PaymentMetrics struct {
	gatewayCalls    *prometheus.CounterVec
	reconciliations *prometheus.CounterVec
}

// NewPaymentMetrics registers the payment metrics on the provided registerer.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		return &PaymentMetrics{}
	}
	gatewayCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_gateway_calls_total",
		Help: "Payment gateway calls by operation and outcome.",
	}, []string{"operation", "outcome"})
	reconciliations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_reconciliations_total",
		Help: "Callback reconciliations by kind and result.",
	}, []string{"kind", "result"})
	reg.MustRegister(gatewayCalls, reconciliations)
	return &PaymentMetrics{
		gatewayCalls:    gatewayCalls,
		reconciliations: reconciliations,
	}
}

// IncGatewayCall increments the gateway call counter.
func (p *PaymentMetrics) IncGatewayCall(operation, outcome string) {
	if p == nil || p.gatewayCalls == nil {
		return
	}
	p.gatewayCalls.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

// IncReconciliation increments the reconciliation counter.
func (p *PaymentMetrics) IncReconciliation(kind, result string) {
	if p == nil || p.reconciliations == nil {
		return
	}
	p.reconciliations.WithLabelValues(normalizeLabel(kind), normalizeLabel(result)).Inc()
}
