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

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

var defaultHistogramBucketsSeconds = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30}

// Collectors are created eagerly so recorders are safe to call before Init;
// Init only registers them and exposes the /metrics endpoint.
var (
	once          sync.Once
	metricsRouter *chi.Mux

	clientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_latency_seconds",
			Help:    "Histogram of collaborator client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"client", "method", "status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	ledgerOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Number of ledger operations split by operation and outcome",
		},
		[]string{"operation", "status"},
	)

	ledgerOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Ledger operation duration in seconds, persistence included.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "status"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	exchangeRateGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pool_exchange_rate",
		Help: "Current exchange rate of one receipt token in base units",
	})
	totalDepositedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pool_total_deposited",
		Help: "Base units owed to receipt holders",
	})
	receiptSupplyGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pool_receipt_supply",
		Help: "Outstanding receipt tokens",
	})
	liquidReserveGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pool_liquid_reserve",
		Help: "Base units held in custody and not delegated",
	})
	stakedBalanceGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pool_staked_balance",
		Help: "Base units delegated to validators",
	})
	protocolFeesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pool_protocol_fees_earned",
		Help: "Accrued protocol fees not yet withdrawn",
	})
	validatorCountGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "pool_validator_count",
		Help: "Number of registered validators",
	})
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
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	go func() {
		log.Info().Msgf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

func registerMetrics() {
	prometheus.MustRegister(
		clientLatency,
		queueSendErrorCounter,
		pollerDurationHistogram,
		ledgerOperationCounter,
		ledgerOperationDuration,
		dbLatency,
		exchangeRateGauge,
		totalDepositedGauge,
		receiptSupplyGauge,
		liquidReserveGauge,
		stakedBalanceGauge,
		protocolFeesGauge,
		validatorCountGauge,
	)
}

func RecordClientLatency(d time.Duration, client, method string, failure bool) {
	clientLatency.WithLabelValues(client, method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	dbLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordLedgerOperation(d time.Duration, operation string, failure bool) {
	status := outcome(failure).String()
	ledgerOperationCounter.WithLabelValues(operation, status).Inc()
	ledgerOperationDuration.WithLabelValues(operation, status).Observe(d.Seconds())
}

// PoolSnapshot carries the gauge values published after every committed
// ledger operation. ExchangeRate is already scaled to a float.
type PoolSnapshot struct {
	ExchangeRate   float64
	TotalDeposited uint64
	ReceiptSupply  uint64
	LiquidReserve  uint64
	StakedBalance  uint64
	ProtocolFees   uint64
	ValidatorCount uint32
}

func RecordPoolState(s PoolSnapshot) {
	exchangeRateGauge.Set(s.ExchangeRate)
	totalDepositedGauge.Set(float64(s.TotalDeposited))
	receiptSupplyGauge.Set(float64(s.ReceiptSupply))
	liquidReserveGauge.Set(float64(s.LiquidReserve))
	stakedBalanceGauge.Set(float64(s.StakedBalance))
	protocolFeesGauge.Set(float64(s.ProtocolFees))
	validatorCountGauge.Set(float64(s.ValidatorCount))
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}
