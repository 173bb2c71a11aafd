package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                       sync.Once
	metricsRouter              *chi.Mux
	operationDurationHistogram *prometheus.HistogramVec
	rewardPaidCounter          *prometheus.CounterVec
	rewardClippedCounter       *prometheus.CounterVec
	accountsExitedCounter      prometheus.Counter
	swapVolumeCounter          *prometheus.CounterVec
	tokensBurnedCounter        prometheus.Counter
	queuePublishErrorCounter   prometheus.Counter
	dbLatency                  *prometheus.HistogramVec
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}

	operationDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "protocol_operation_duration_seconds",
			Help:    "Histogram of protocol operation durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "status"},
	)

	rewardPaidCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reward_paid_total",
			Help: "Total reward units settled, by reward kind.",
		},
		[]string{"kind"},
	)

	rewardClippedCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reward_clipped_total",
			Help: "Total reward units dropped at the revenue cap, by reward kind.",
		},
		[]string{"kind"},
	)

	accountsExitedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "accounts_exited_count",
			Help: "Number of accounts that exhausted their revenue cap",
		},
	)

	swapVolumeCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swap_volume_total",
			Help: "Total swap input volume, by direction.",
		},
		[]string{"direction"},
	)

	tokensBurnedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tokens_burned_total",
			Help: "Total token supply destroyed by taxes and daily burns",
		},
	)

	queuePublishErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_publish_error_count",
			Help: "The total number of errors when publishing protocol events",
		},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	prometheus.MustRegister(
		operationDurationHistogram,
		rewardPaidCounter,
		rewardClippedCounter,
		accountsExitedCounter,
		swapVolumeCounter,
		tokensBurnedCounter,
		queuePublishErrorCounter,
		dbLatency,
	)
}

func RecordOperationDuration(d time.Duration, operation string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	operationDurationHistogram.WithLabelValues(operation, status.String()).Observe(d.Seconds())
}

// RecordRewardPaid tracks settled and clipped reward units. Amounts arrive
// as floats only for the counter; ledger arithmetic never leaves integers.
func RecordRewardPaid(kind string, paid, clipped float64) {
	rewardPaidCounter.WithLabelValues(kind).Add(paid)
	if clipped > 0 {
		rewardClippedCounter.WithLabelValues(kind).Add(clipped)
	}
}

func RecordAccountExited() {
	accountsExitedCounter.Inc()
}

func RecordSwapVolume(direction string, amountIn float64) {
	swapVolumeCounter.WithLabelValues(direction).Add(amountIn)
}

func RecordTokensBurned(amount float64) {
	tokensBurnedCounter.Add(amount)
}

func RecordQueuePublishError() {
	queuePublishErrorCounter.Inc()
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}
