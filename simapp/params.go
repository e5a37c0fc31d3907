package simapp

import (
	"math/rand"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/types/simulation"
)

// Simulation parameter constants
const (
	// Account parameters
	InitialAccountBalance = "initial_account_balance"

	// Token parameters
	InitialTokenCount  = "initial_token_count"
	InitialTokenSupply = "initial_token_supply"

	// DEX parameters
	InitialLiquidity    = "initial_liquidity"
	SwapProbability     = "swap_probability"
	AddLiquidityProb    = "add_liquidity_probability"
	RemoveLiquidityProb = "remove_liquidity_probability"
)

// SimulationParams defines the parameters for the simulation
type SimulationParams struct {
	// Account parameters
	InitialAccountBalance math.Int

	// Token parameters
	InitialTokenCount  int
	InitialTokenSupply math.Int

	// DEX parameters
	InitialLiquidity    math.Int
	SwapProbability     math.LegacyDec
	AddLiquidityProb    math.LegacyDec
	RemoveLiquidityProb math.LegacyDec
}

// DefaultSimulationParams returns default simulation parameters
func DefaultSimulationParams() SimulationParams {
	return SimulationParams{
		InitialAccountBalance: math.NewInt(1000000000000), // 1M native
		InitialTokenCount:     4,
		InitialTokenSupply:    math.NewInt(1000000000000000),
		InitialLiquidity:      math.NewInt(10000000000),         // 10k per side
		SwapProbability:       math.LegacyNewDecWithPrec(60, 2), // 60%
		AddLiquidityProb:      math.LegacyNewDecWithPrec(25, 2), // 25%
		RemoveLiquidityProb:   math.LegacyNewDecWithPrec(15, 2), // 15%
	}
}

// RandomizedParams creates randomized simulation parameters
func RandomizedParams(r *rand.Rand) SimulationParams {
	return SimulationParams{
		InitialAccountBalance: simulation.RandomAmount(r, math.NewInt(10000000000000)).AddRaw(1),
		InitialTokenCount:     simulation.RandIntBetween(r, 2, 8),
		InitialTokenSupply:    simulation.RandomAmount(r, math.NewInt(1000000000000000)).AddRaw(1000000),
		InitialLiquidity:      simulation.RandomAmount(r, math.NewInt(100000000000)).AddRaw(10000),
		SwapProbability:       simulation.RandomDecAmount(r, math.LegacyNewDecWithPrec(70, 2)),
		AddLiquidityProb:      simulation.RandomDecAmount(r, math.LegacyNewDecWithPrec(30, 2)),
		RemoveLiquidityProb:   simulation.RandomDecAmount(r, math.LegacyNewDecWithPrec(30, 2)),
	}
}

// RandomAccounts creates random accounts for simulation
func RandomAccounts(r *rand.Rand, n int) []simulation.Account {
	// Use the SDK's RandomAccounts function instead
	return simulation.RandomAccounts(r, n)
}
