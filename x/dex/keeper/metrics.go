package keeper

import (
	"fmt"
	"math/big"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DEXMetrics holds all Prometheus metrics for the DEX module
type DEXMetrics struct {
	// Factory metrics
	PairsTotal        prometheus.Gauge
	PairCreationRate  prometheus.Counter
	CriteriaCoinsSize prometheus.Gauge

	// Swap metrics
	SwapsTotal  *prometheus.CounterVec
	SwapVolume  *prometheus.CounterVec
	FlashSwaps  prometheus.Counter
	RouterCalls *prometheus.CounterVec

	// Liquidity metrics
	LiquidityEvents *prometheus.CounterVec
	PairReserves    *prometheus.GaugeVec
	LPTokenSupply   *prometheus.GaugeVec
	ProtocolFeeMint *prometheus.CounterVec

	// Errors
	Errors *prometheus.CounterVec
}

var (
	dexMetricsOnce sync.Once
	dexMetrics     *DEXMetrics
)

// NewDEXMetrics creates and registers DEX metrics (singleton pattern)
func NewDEXMetrics() *DEXMetrics {
	dexMetricsOnce.Do(func() {
		dexMetrics = &DEXMetrics{
			PairsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "tokenest",
					Subsystem: "dex",
					Name:      "pairs_total",
					Help:      "Total number of pairs created by the factory",
				},
			),
			PairCreationRate: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "tokenest",
					Subsystem: "dex",
					Name:      "pair_creations_total",
					Help:      "Total number of createPair calls that succeeded",
				},
			),
			CriteriaCoinsSize: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "tokenest",
					Subsystem: "dex",
					Name:      "criteria_coins",
					Help:      "Number of registered criteria coins",
				},
			),

			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tokenest",
					Subsystem: "dex",
					Name:      "swaps_total",
					Help:      "Total number of pair swaps executed",
				},
				[]string{"pair"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tokenest",
					Subsystem: "dex",
					Name:      "swap_volume_total",
					Help:      "Total swap output in base units",
				},
				[]string{"pair", "token"},
			),
			FlashSwaps: promauto.NewCounter(
				prometheus.CounterOpts{
					Namespace: "tokenest",
					Subsystem: "dex",
					Name:      "flash_swaps_total",
					Help:      "Total number of swaps that invoked a callee",
				},
			),
			RouterCalls: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tokenest",
					Subsystem: "dex",
					Name:      "router_calls_total",
					Help:      "Router entry points called, by method and status",
				},
				[]string{"method", "status"},
			),

			LiquidityEvents: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tokenest",
					Subsystem: "dex",
					Name:      "liquidity_events_total",
					Help:      "Total mint and burn events",
				},
				[]string{"pair", "kind"},
			),
			PairReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "tokenest",
					Subsystem: "dex",
					Name:      "pair_reserves",
					Help:      "Current pair reserves",
				},
				[]string{"pair", "side"},
			),
			LPTokenSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "tokenest",
					Subsystem: "dex",
					Name:      "lp_token_supply",
					Help:      "LP token supply per pair",
				},
				[]string{"pair"},
			),
			ProtocolFeeMint: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tokenest",
					Subsystem: "dex",
					Name:      "protocol_fee_mints_total",
					Help:      "Number of protocol fee share mints",
				},
				[]string{"pair"},
			),

			Errors: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "tokenest",
					Subsystem: "dex",
					Name:      "errors_total",
					Help:      "Failed operations by operation and codespace error",
				},
				[]string{"operation", "error"},
			),
		}
	})
	return dexMetrics
}

// errorLabel reduces err to its registered codespace and code.
func errorLabel(err error) string {
	codespace, code, _ := errorsmod.ABCIInfo(err, false)
	return fmt.Sprintf("%s/%d", codespace, code)
}

// intToFloat converts an amount for gauges, which only need magnitude.
func intToFloat(x math.Int) float64 {
	if x.IsNil() {
		return 0
	}
	f, _ := new(big.Float).SetInt(x.BigInt()).Float64()
	return f
}

func statusLabel(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}
