package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ogurasousui/grpc-payroll-clean-arch/internal/core/payroll"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "payroll"

// PayrollObserver は給与計算の結果を Prometheus に記録します。
type PayrollObserver struct {
	runs     prometheus.Counter
	lines    prometheus.Counter
	duration prometheus.Histogram
	failures *prometheus.CounterVec
}

var _ payroll.Observer = (*PayrollObserver)(nil)

// NewPayrollObserver はコレクタを reg に登録して PayrollObserver を生成します。
func NewPayrollObserver(reg prometheus.Registerer) *PayrollObserver {
	factory := promauto.With(reg)
	return &PayrollObserver{
		runs: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Number of successful payroll runs.",
		}),
		lines: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Number of pay lines computed by successful runs.",
		}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of successful payroll runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "run_failures_total",
			Help:      "Number of failed payroll runs by reason.",
		}, []string{"reason"}),
	}
}

func (o *PayrollObserver) ObserveRun(lines int, elapsed time.Duration) {
	o.runs.Inc()
	o.lines.Add(float64(lines))
	o.duration.Observe(elapsed.Seconds())
}

func (o *PayrollObserver) ObserveFailure(err error) {
	o.failures.WithLabelValues(FailureReason(err)).Inc()
}

// FailureReason はエラーをメトリクスのラベル値に変換します。
func FailureReason(err error) string {
	switch {
	case errors.Is(err, payroll.ErrMissingCapability):
		return "missing_capability"
	case errors.Is(err, payroll.ErrConstructionMismatch),
		errors.Is(err, payroll.ErrUnknownKind),
		errors.Is(err, payroll.ErrInvalidAmount),
		errors.Is(err, payroll.ErrInvalidHours):
		return "construction"
	case errors.Is(err, payroll.ErrRecordNotFound):
		return "not_found"
	case errors.Is(err, payroll.ErrInvalidRunInput), errors.Is(err, payroll.ErrInvalidID):
		return "invalid_input"
	case errors.Is(err, payroll.ErrNegativePay):
		return "negative_pay"
	default:
		return "internal"
	}
}

// ReadinessFunc は依存先の疎通を確認します。
type ReadinessFunc func(ctx context.Context) error

// NewHandler は /healthz と /metrics を提供する HTTP ハンドラを返します。
// ready が nil の場合 /healthz は常に成功します。
func NewHandler(gatherer prometheus.Gatherer, ready ReadinessFunc) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if ready != nil {
			if err := ready(req.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(err.Error()))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}
