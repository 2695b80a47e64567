package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeMissing = "not_found"
	OutcomeBlocked = "blocked"
	OutcomeError   = "error"
)

var (
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "syntex_store_operations_total",
			Help: "Total number of persistence operations",
		},
		[]string{"entity", "operation", "outcome"},
	)

	StoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "syntex_store_operation_duration_seconds",
			Help:    "Duration of persistence operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"entity", "operation"},
	)

	CascadeDeleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "syntex_cascade_deleted_rows_total",
			Help: "Rows removed transitively by cascade deletes",
		},
		[]string{"entity", "table"},
	)

	Registry = prometheus.NewRegistry()

	registerOnce sync.Once
)

func Init() {
	registerOnce.Do(func() {
		Registry.MustRegister(StoreOperations, StoreDuration, CascadeDeleted)
	})
}

// Observe 记录一次操作的结果和耗时
func Observe(entity, operation, outcome string, start time.Time) {
	StoreOperations.WithLabelValues(entity, operation, outcome).Inc()
	StoreDuration.WithLabelValues(entity, operation).Observe(time.Since(start).Seconds())
}

// Push 将本次运行的指标推送到 Pushgateway，命令行任务结束时调用
func Push(url, job string) error {
	return push.New(url, job).Gatherer(Registry).Push()
}
