package keeper

import (
	"fmt"
	"sync"
	"time"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/telemetry"
	metrics "github.com/hashicorp/go-metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/cpamm/x/amm/types"
)

// Operation labels shared by Prometheus and telemetry metrics.
const (
	opCreatePool      = "create_pool"
	opAddLiquidity    = "add_liquidity"
	opRemoveLiquidity = "remove_liquidity"
	opSwap            = "swap"
)

// AMMMetrics holds all Prometheus metrics for the AMM module
type AMMMetrics struct {
	// Operation metrics
	Operations       *prometheus.CounterVec
	OperationLatency *prometheus.HistogramVec

	// Swap metrics
	SwapsTotal        *prometheus.CounterVec
	SwapVolume        *prometheus.CounterVec
	SwapFeesCollected *prometheus.CounterVec

	// Liquidity metrics
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	LPTokenSupply    *prometheus.GaugeVec

	// Pool metrics
	PoolsTotal       prometheus.Gauge
	PoolCreationRate prometheus.Counter
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *AMMMetrics
)

// NewAMMMetrics creates and registers AMM metrics (singleton pattern)
func NewAMMMetrics() *AMMMetrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &AMMMetrics{
			Operations: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "operations_total",
					Help:      "Keeper operations by outcome; status is ok or codespace_code",
				},
				[]string{"operation", "status"},
			),
			OperationLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "operation_latency_seconds",
					Help:      "Keeper operation latency in seconds",
					Buckets:   prometheus.DefBuckets,
				},
				[]string{"operation"},
			),

			// Swap metrics
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"pool", "direction"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pool", "denom"},
			),
			SwapFeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "swap_fees_collected_total",
					Help:      "Total swap fees retained by pools",
				},
				[]string{"pool", "denom"},
			),

			// Liquidity metrics
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity added to pools",
				},
				[]string{"pool", "denom"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity removed from pools",
				},
				[]string{"pool", "denom"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "pool_reserves",
					Help:      "Current pool reserves",
				},
				[]string{"pool", "denom"},
			),
			LPTokenSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "lp_token_supply",
					Help:      "LP share supply per pool",
				},
				[]string{"pool"},
			),

			// Pool metrics
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "pools_total",
					Help:      "Total number of pools",
				},
			),
			PoolCreationRate: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "paw",
					Subsystem: "amm",
					Name:      "pool_creations_total",
					Help:      "Total number of pools created",
				},
			),
		}
	})
	return ammMetrics
}

// observe records the outcome and latency of one keeper operation in both
// Prometheus and the SDK telemetry sink. A nil receiver records nothing.
func (m *AMMMetrics) observe(operation string, start time.Time, err error) {
	if m == nil {
		return
	}

	status := "ok"
	if err != nil {
		codespace, code, _ := errors.ABCIInfo(err, false)
		status = fmt.Sprintf("%s_%d", codespace, code)
	}

	m.Operations.WithLabelValues(operation, status).Inc()
	m.OperationLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())

	telemetry.MeasureSince(start, types.ModuleName, operation)
	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, operation},
		1,
		[]metrics.Label{telemetry.NewLabel("status", status)},
	)
}

func (m *AMMMetrics) poolCreated(count uint64) {
	if m == nil {
		return
	}
	m.PoolCreationRate.Inc()
	m.PoolsTotal.Set(float64(count))
}

func (m *AMMMetrics) liquidityAdded(pool types.Pool, amountA, amountB math.Int) {
	if m == nil {
		return
	}
	m.LiquidityAdded.WithLabelValues(pool.Name(), pool.AssetA).Add(toFloat(amountA))
	m.LiquidityAdded.WithLabelValues(pool.Name(), pool.AssetB).Add(toFloat(amountB))
	m.setPoolGauges(pool)
}

func (m *AMMMetrics) liquidityRemoved(pool types.Pool, amountA, amountB math.Int) {
	if m == nil {
		return
	}
	m.LiquidityRemoved.WithLabelValues(pool.Name(), pool.AssetA).Add(toFloat(amountA))
	m.LiquidityRemoved.WithLabelValues(pool.Name(), pool.AssetB).Add(toFloat(amountB))
	m.setPoolGauges(pool)
}

func (m *AMMMetrics) swapExecuted(plan types.SwapPlan) {
	if m == nil {
		return
	}
	name := plan.Next.Name()
	m.SwapsTotal.WithLabelValues(name, plan.Direction.String()).Inc()
	m.SwapVolume.WithLabelValues(name, plan.AssetIn).Add(toFloat(plan.AmountIn))
	m.SwapFeesCollected.WithLabelValues(name, plan.AssetIn).Add(toFloat(plan.Fee))
	m.setPoolGauges(plan.Next)
}

func (m *AMMMetrics) setPoolGauges(pool types.Pool) {
	m.PoolReserves.WithLabelValues(pool.Name(), pool.AssetA).Set(toFloat(pool.ReserveA))
	m.PoolReserves.WithLabelValues(pool.Name(), pool.AssetB).Set(toFloat(pool.ReserveB))
	m.LPTokenSupply.WithLabelValues(pool.Name()).Set(toFloat(pool.TotalShares))
}

// toFloat converts an amount for gauges and counters; precision loss above
// 2^53 is acceptable there.
func toFloat(amount math.Int) float64 {
	if amount.IsNil() {
		return 0
	}
	f, err := math.LegacyNewDecFromInt(amount).Float64()
	if err != nil {
		return 0
	}
	return f
}
