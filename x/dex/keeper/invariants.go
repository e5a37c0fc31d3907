package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

// RegisterInvariants registers all DEX invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "pair-reserves", PairReservesInvariant(k))
	ir.RegisterRoute(types.ModuleName, "lp-supply", LPSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "minimum-liquidity", MinimumLiquidityInvariant(k))
	ir.RegisterRoute(types.ModuleName, "router-balance", RouterBalanceInvariant(k))
}

// AllInvariants runs all invariants of the DEX module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := PairReservesInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = LPSupplyInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		res, stop = MinimumLiquidityInvariant(k)(ctx)
		if stop {
			return res, stop
		}

		return RouterBalanceInvariant(k)(ctx)
	}
}

// PairReservesInvariant checks that every pair holds at least its recorded
// reserves and that reserves fit in 112 bits.
func PairReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		for _, pair := range k.GetAllPairRecords(ctx) {
			if !pair.Initialized {
				continue
			}
			balance0, balance1 := k.pairBalances(ctx, pair)
			if balance0.LT(pair.Reserve0) {
				count++
				msg += fmt.Sprintf("pair %s: balance of %s (%s) < reserve0 (%s)\n",
					pair.Address, pair.Token0, balance0, pair.Reserve0)
			}
			if balance1.LT(pair.Reserve1) {
				count++
				msg += fmt.Sprintf("pair %s: balance of %s (%s) < reserve1 (%s)\n",
					pair.Address, pair.Token1, balance1, pair.Reserve1)
			}
			if pair.Reserve0.GT(types.MaxReserve) || pair.Reserve1.GT(types.MaxReserve) {
				count++
				msg += fmt.Sprintf("pair %s: reserves exceed uint112\n", pair.Address)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "pair-reserves",
			fmt.Sprintf("found %d pair reserve violations\n%s", count, msg),
		), broken
	}
}

// LPSupplyInvariant checks that the LP balances of every pair sum to its
// total supply.
func LPSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		sums := make(map[string]math.Int)
		k.IterateLPBalances(ctx, func(b types.LPBalance) bool {
			if cur, ok := sums[b.Pair.String()]; ok {
				sums[b.Pair.String()] = cur.Add(b.Amount)
			} else {
				sums[b.Pair.String()] = b.Amount
			}
			return false
		})

		for _, pair := range k.GetAllPairRecords(ctx) {
			sum, ok := sums[pair.Address.String()]
			if !ok {
				sum = math.ZeroInt()
			}
			if !sum.Equal(pair.TotalSupply) {
				count++
				msg += fmt.Sprintf("pair %s: balances sum to %s, total supply is %s\n",
					pair.Address, sum, pair.TotalSupply)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "lp-supply",
			fmt.Sprintf("found %d lp supply mismatches\n%s", count, msg),
		), broken
	}
}

// MinimumLiquidityInvariant checks that every pair with liquidity still has
// MinimumLiquidity shares locked at the zero address.
func MinimumLiquidityInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		for _, pair := range k.GetAllPairRecords(ctx) {
			if pair.TotalSupply.IsZero() {
				continue
			}
			locked := k.lpBalanceOf(ctx, pair.Address, types.ZeroAddress)
			if locked.LT(minimumLiquidity) {
				count++
				msg += fmt.Sprintf("pair %s: only %s shares locked\n", pair.Address, locked)
			}
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "minimum-liquidity",
			fmt.Sprintf("found %d pairs below minimum liquidity\n%s", count, msg),
		), broken
	}
}

// RouterBalanceInvariant checks that the router keeps no native or wrapped
// native balance between transactions.
func RouterBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		params, err := k.GetParams(ctx)
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "router-balance", err.Error()), true
		}

		var msg string
		native := k.bankKeeper.GetBalance(ctx, types.RouterAddress, params.NativeDenom)
		if native.IsPositive() {
			msg += fmt.Sprintf("router holds %s\n", native)
		}
		if len(params.WrappedNative) > 0 {
			wrapped := k.tokenKeeper.BalanceOf(ctx, params.WrappedNative, types.RouterAddress)
			if wrapped.IsPositive() {
				msg += fmt.Sprintf("router holds %s wrapped native\n", wrapped)
			}
		}

		broken := msg != ""
		return sdk.FormatInvariant(
			types.ModuleName, "router-balance",
			fmt.Sprintf("router balance check\n%s", msg),
		), broken
	}
}
