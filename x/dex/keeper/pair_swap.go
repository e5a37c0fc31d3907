package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

var (
	kScale   = math.NewInt(1000)
	feeScale = math.NewInt(3)
)

// Swap sends the requested outputs to `to` and then requires the pair's
// balances to satisfy the fee-adjusted constant product. When data is not
// empty the outputs are sent optimistically and the callee registered for
// `to` is invoked to pay for them.
func (k Keeper) Swap(ctx context.Context, sender, pairAddr sdk.AccAddress, amount0Out, amount1Out math.Int, to sdk.AccAddress, data []byte) error {
	err := k.atomic(ctx, func(ctx context.Context) error {
		return k.swap(ctx, sender, pairAddr, amount0Out, amount1Out, to, data)
	})
	if err != nil {
		k.metrics.Errors.WithLabelValues("swap", errorLabel(err)).Inc()
	}
	return err
}

func (k Keeper) swap(ctx context.Context, sender, pairAddr sdk.AccAddress, amount0Out, amount1Out math.Int, to sdk.AccAddress, data []byte) error {
	if amount0Out.IsNil() {
		amount0Out = math.ZeroInt()
	}
	if amount1Out.IsNil() {
		amount1Out = math.ZeroInt()
	}
	if amount0Out.IsNegative() || amount1Out.IsNegative() || (amount0Out.IsZero() && amount1Out.IsZero()) {
		return types.ErrInsufficientOutputAmount.Wrap(types.ReasonInsufficientOutputAmount)
	}

	return k.withPairLock(ctx, pairAddr, func() error {
		pair, err := k.initializedPair(ctx, pairAddr)
		if err != nil {
			return err
		}
		reserve0, reserve1 := pair.Reserve0, pair.Reserve1
		if amount0Out.GTE(reserve0) || amount1Out.GTE(reserve1) {
			return types.ErrInsufficientLiquidity.Wrap(types.ReasonInsufficientLiquidity)
		}
		if to.Equals(pair.Token0) || to.Equals(pair.Token1) {
			return types.ErrInvalidAddressParameters.Wrap(types.ReasonInvalidTo)
		}

		if amount0Out.IsPositive() {
			if err := k.tokenKeeper.Transfer(ctx, pair.Token0, pairAddr, to, amount0Out); err != nil {
				return err
			}
		}
		if amount1Out.IsPositive() {
			if err := k.tokenKeeper.Transfer(ctx, pair.Token1, pairAddr, to, amount1Out); err != nil {
				return err
			}
		}
		if len(data) > 0 {
			callee, ok := k.swapCallee(to)
			if !ok {
				return types.ErrInvalidCallee.Wrapf("no callee registered for %s", to)
			}
			if err := callee.DexCall(ctx, sender, amount0Out, amount1Out, data); err != nil {
				return err
			}
			k.metrics.FlashSwaps.Inc()
		}

		balance0, balance1 := k.pairBalances(ctx, pair)
		amount0In := math.ZeroInt()
		if rest := reserve0.Sub(amount0Out); balance0.GT(rest) {
			amount0In = balance0.Sub(rest)
		}
		amount1In := math.ZeroInt()
		if rest := reserve1.Sub(amount1Out); balance1.GT(rest) {
			amount1In = balance1.Sub(rest)
		}
		if amount0In.IsZero() && amount1In.IsZero() {
			return types.ErrInsufficientInputAmount.Wrap(types.ReasonInsufficientInputAmount)
		}
		if err := checkReserveBounds(balance0, balance1); err != nil {
			return err
		}

		balance0Adjusted := balance0.Mul(kScale).Sub(amount0In.Mul(feeScale))
		balance1Adjusted := balance1.Mul(kScale).Sub(amount1In.Mul(feeScale))
		if balance0Adjusted.Mul(balance1Adjusted).LT(reserve0.Mul(reserve1).Mul(kScale).Mul(kScale)) {
			return types.ErrInsufficientAmount.Wrap(types.ReasonK)
		}

		// the callee may have re-entered through the factory or LP token,
		// so write the reserves onto a fresh copy of the record
		pair, err = k.GetPairRecord(ctx, pairAddr)
		if err != nil {
			return err
		}
		if err := k.update(ctx, &pair, balance0, balance1); err != nil {
			return err
		}
		k.SetPairRecord(ctx, pair)

		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSwap,
				sdk.NewAttribute(types.AttributeKeyPair, pairAddr.String()),
				sdk.NewAttribute(types.AttributeKeySender, sender.String()),
				sdk.NewAttribute(types.AttributeKeyAmount0In, amount0In.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1In, amount1In.String()),
				sdk.NewAttribute(types.AttributeKeyAmount0Out, amount0Out.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1Out, amount1Out.String()),
				sdk.NewAttribute(types.AttributeKeyTo, to.String()),
			),
		)

		pairLabel := pairAddr.String()
		k.metrics.SwapsTotal.WithLabelValues(pairLabel).Inc()
		if amount0Out.IsPositive() {
			k.metrics.SwapVolume.WithLabelValues(pairLabel, pair.Token0.String()).Add(intToFloat(amount0Out))
		}
		if amount1Out.IsPositive() {
			k.metrics.SwapVolume.WithLabelValues(pairLabel, pair.Token1.String()).Add(intToFloat(amount1Out))
		}
		return nil
	})
}

// Skim sends any balance the pair holds above its reserves to `to`.
func (k Keeper) Skim(ctx context.Context, pairAddr, to sdk.AccAddress) error {
	return k.atomic(ctx, func(ctx context.Context) error {
		return k.withPairLock(ctx, pairAddr, func() error {
			pair, err := k.initializedPair(ctx, pairAddr)
			if err != nil {
				return err
			}

			balance0, balance1 := k.pairBalances(ctx, pair)
			if excess := balance0.Sub(pair.Reserve0); excess.IsPositive() {
				if err := k.tokenKeeper.Transfer(ctx, pair.Token0, pairAddr, to, excess); err != nil {
					return err
				}
			}
			if excess := balance1.Sub(pair.Reserve1); excess.IsPositive() {
				if err := k.tokenKeeper.Transfer(ctx, pair.Token1, pairAddr, to, excess); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// Sync sets the reserves to the pair's current balances.
func (k Keeper) Sync(ctx context.Context, pairAddr sdk.AccAddress) error {
	return k.atomic(ctx, func(ctx context.Context) error {
		return k.withPairLock(ctx, pairAddr, func() error {
			pair, err := k.initializedPair(ctx, pairAddr)
			if err != nil {
				return err
			}

			balance0, balance1 := k.pairBalances(ctx, pair)
			if err := k.update(ctx, &pair, balance0, balance1); err != nil {
				return err
			}
			k.SetPairRecord(ctx, pair)
			return nil
		})
	})
}
