package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// BusinessMetrics exposes billing document activity as Prometheus series.
type BusinessMetrics struct {
	created *prometheus.CounterVec
	updated *prometheus.CounterVec
	deleted *prometheus.CounterVec
	amount  *prometheus.CounterVec
	totals  *prometheus.HistogramVec
}

// DocumentAmountBuckets spans invoice totals from a small receipt up to a large contract.
var DocumentAmountBuckets = prometheus.ExponentialBuckets(10, 10, 8)

// NewBusinessMetrics creates the document collectors and registers them on reg.
func NewBusinessMetrics(reg prometheus.Registerer) (*BusinessMetrics, error) {
	labels := []string{"doc_type"}
	m := &BusinessMetrics{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accounting",
			Name:      "documents_created_total",
			Help:      "Billing documents created.",
		}, labels),
		updated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accounting",
			Name:      "documents_updated_total",
			Help:      "Billing documents updated.",
		}, labels),
		deleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accounting",
			Name:      "documents_deleted_total",
			Help:      "Billing documents deleted.",
		}, labels),
		amount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "accounting",
			Name:      "documents_amount_total",
			Help:      "Sum of the totals of created billing documents.",
		}, labels),
		totals: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "accounting",
			Name:      "document_total_amount",
			Help:      "Distribution of created billing document totals.",
			Buckets:   DocumentAmountBuckets,
		}, labels),
	}

	for _, c := range []prometheus.Collector{m.created, m.updated, m.deleted, m.amount, m.totals} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// DocumentCreated counts a new document and adds its total.
func (m *BusinessMetrics) DocumentCreated(docType string, total decimal.Decimal) {
	m.created.WithLabelValues(docType).Inc()
	amount := total.InexactFloat64()
	if amount < 0 {
		return
	}
	m.amount.WithLabelValues(docType).Add(amount)
	m.totals.WithLabelValues(docType).Observe(amount)
}

// DocumentUpdated counts an update.
func (m *BusinessMetrics) DocumentUpdated(docType string) {
	m.updated.WithLabelValues(docType).Inc()
}

// DocumentDeleted counts a deletion.
func (m *BusinessMetrics) DocumentDeleted(docType string) {
	m.deleted.WithLabelValues(docType).Inc()
}
