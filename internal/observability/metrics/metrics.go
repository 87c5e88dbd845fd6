package metrics

import (
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
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
	once                           sync.Once
	metricsRouter                  *chi.Mux
	ledgerOperationDuration        *prometheus.HistogramVec
	ledgerOperationErrorCounter    *prometheus.CounterVec
	withdrawnAmountCounter         prometheus.Counter
	depositedAmountCounter         prometheus.Counter
	benefitAmountGauge             prometheus.Gauge
	totalSharesGauge               prometheus.Gauge
	beneficiariesGauge             prometheus.Gauge
	transferClientLatency          *prometheus.HistogramVec
	clientRequestDurationHistogram *prometheus.HistogramVec
	httpRequestDurationHistogram   *prometheus.HistogramVec
	pollerDurationHistogram        *prometheus.HistogramVec
	queueSendErrorCounter          prometheus.Counter
	eventStoreErrorCounter         prometheus.Counter
	unreconciledDepositCounter     prometheus.Counter
	dbLatency                      *prometheus.HistogramVec
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
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	ledgerOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Histogram of ledger operation durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "status"},
	)

	ledgerOperationErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_operation_error_count",
			Help: "The total number of rejected ledger operations by error code",
		},
		[]string{"operation", "error_code"},
	)

	// amounts are in the smallest unit, float precision is good enough for dashboards
	withdrawnAmountCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "withdrawn_amount_total",
			Help: "Total value paid out to beneficiaries",
		},
	)

	depositedAmountCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "deposited_amount_total",
			Help: "Total value deposited into the pool since start",
		},
	)

	benefitAmountGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "benefit_amount",
			Help: "Cumulative deposited value of the pool",
		},
	)

	totalSharesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "total_shares",
			Help: "Sum of all allocated shares",
		},
	)

	beneficiariesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "beneficiaries_count",
			Help: "Number of beneficiary records",
		},
	)

	transferClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transfer_client_latency_seconds",
			Help:    "Histogram of transfer client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of incoming http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "route", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	eventStoreErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "event_store_error_count",
			Help: "The total number of events that could not be written to the event log",
		},
	)

	unreconciledDepositCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "unreconciled_deposit_count",
			Help: "The total number of collected deposits that were neither credited nor refunded",
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
		ledgerOperationDuration,
		ledgerOperationErrorCounter,
		withdrawnAmountCounter,
		depositedAmountCounter,
		benefitAmountGauge,
		totalSharesGauge,
		beneficiariesGauge,
		transferClientLatency,
		clientRequestDurationHistogram,
		httpRequestDurationHistogram,
		pollerDurationHistogram,
		queueSendErrorCounter,
		eventStoreErrorCounter,
		unreconciledDepositCounter,
		dbLatency,
	)
}

// every recorder is a no-op until Init was called, so unit tests can run
// service code without a metrics server.
func initialized() bool {
	return dbLatency != nil
}

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func uintToFloat(v sdkmath.Uint) float64 {
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}

func RecordLedgerOperation(d time.Duration, operation string, errorCode string) {
	if !initialized() {
		return
	}

	ledgerOperationDuration.WithLabelValues(operation, outcome(errorCode != "").String()).Observe(d.Seconds())
	if errorCode != "" {
		ledgerOperationErrorCounter.WithLabelValues(operation, errorCode).Inc()
	}
}

func RecordWithdrawnAmount(amount sdkmath.Uint) {
	if !initialized() {
		return
	}
	withdrawnAmountCounter.Add(uintToFloat(amount))
}

func RecordDepositedAmount(amount sdkmath.Uint) {
	if !initialized() {
		return
	}
	depositedAmountCounter.Add(uintToFloat(amount))
}

func RecordLedgerStats(benefitAmount, totalShares sdkmath.Uint, beneficiaries int) {
	if !initialized() {
		return
	}
	benefitAmountGauge.Set(uintToFloat(benefitAmount))
	totalSharesGauge.Set(uintToFloat(totalShares))
	beneficiariesGauge.Set(float64(beneficiaries))
}

func RecordTransferClientLatency(d time.Duration, method string, failure bool) {
	if !initialized() {
		return
	}
	transferClientLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	if !initialized() {
		return
	}
	dbLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordHttpRequestDuration(d time.Duration, method, route string, statusCode int) {
	if !initialized() {
		return
	}
	httpRequestDurationHistogram.WithLabelValues(method, route, strconv.Itoa(statusCode)).Observe(d.Seconds())
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		if !initialized() {
			return
		}
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}

func RecordQueueSendError() {
	if !initialized() {
		return
	}
	queueSendErrorCounter.Inc()
}

func RecordEventStoreError() {
	if !initialized() {
		return
	}
	eventStoreErrorCounter.Inc()
}

func RecordUnreconciledDeposit() {
	if !initialized() {
		return
	}
	unreconciledDepositCounter.Inc()
}
