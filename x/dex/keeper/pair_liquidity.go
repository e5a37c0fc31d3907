package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

var minimumLiquidity = math.NewInt(types.MinimumLiquidity)

// mintFee mints the protocol's share of the fees accrued since the last
// liquidity event, one sixth of the growth in sqrt(k), to FeeTo. It reports
// whether the protocol fee is on.
func (k Keeper) mintFee(ctx context.Context, pair *types.Pair) bool {
	feeTo := k.FeeTo(ctx)
	feeOn := !types.IsZeroAddress(feeTo)
	if !feeOn {
		if !pair.KLast.IsZero() {
			pair.KLast = math.ZeroInt()
		}
		return false
	}
	if pair.KLast.IsZero() {
		return true
	}

	rootK := types.Sqrt(pair.Reserve0.Mul(pair.Reserve1))
	rootKLast := types.Sqrt(pair.KLast)
	if rootK.LTE(rootKLast) {
		return true
	}

	numerator := pair.TotalSupply.Mul(rootK.Sub(rootKLast))
	denominator := rootK.MulRaw(5).Add(rootKLast)
	liquidity := numerator.Quo(denominator)
	if liquidity.IsPositive() {
		k.mintLP(ctx, pair, feeTo, liquidity)
		k.metrics.ProtocolFeeMint.WithLabelValues(pair.Address.String()).Inc()
	}
	return true
}

// Mint issues LP shares to `to` for the tokens sent to the pair since the last
// reserve update. The first mint permanently locks MinimumLiquidity shares at
// the zero address.
func (k Keeper) Mint(ctx context.Context, sender, pairAddr, to sdk.AccAddress) (math.Int, error) {
	var liquidity math.Int
	err := k.atomic(ctx, func(ctx context.Context) error {
		var err error
		liquidity, err = k.mint(ctx, sender, pairAddr, to)
		return err
	})
	if err != nil {
		k.metrics.Errors.WithLabelValues("mint", errorLabel(err)).Inc()
		return math.Int{}, err
	}
	return liquidity, nil
}

func (k Keeper) mint(ctx context.Context, sender, pairAddr, to sdk.AccAddress) (liquidity math.Int, err error) {
	err = k.withPairLock(ctx, pairAddr, func() error {
		pair, err := k.initializedPair(ctx, pairAddr)
		if err != nil {
			return err
		}

		balance0, balance1 := k.pairBalances(ctx, pair)
		if err := checkReserveBounds(balance0, balance1); err != nil {
			return err
		}
		amount0 := balance0.Sub(pair.Reserve0)
		amount1 := balance1.Sub(pair.Reserve1)
		if amount0.IsNegative() || amount1.IsNegative() {
			return types.ErrInsufficientLiquidity.Wrap(types.ReasonInsufficientLiquidityMint)
		}

		feeOn := k.mintFee(ctx, &pair)
		totalSupply := pair.TotalSupply
		if totalSupply.IsZero() {
			liquidity = types.Sqrt(amount0.Mul(amount1)).Sub(minimumLiquidity)
			if !liquidity.IsPositive() {
				return types.ErrInsufficientLiquidity.Wrap(types.ReasonInsufficientLiquidityMint)
			}
			k.mintLP(ctx, &pair, types.ZeroAddress, minimumLiquidity)
		} else {
			if pair.Reserve0.IsZero() || pair.Reserve1.IsZero() {
				return types.ErrInsufficientLiquidity.Wrap(types.ReasonInsufficientLiquidityMint)
			}
			liquidity = types.Min(
				amount0.Mul(totalSupply).Quo(pair.Reserve0),
				amount1.Mul(totalSupply).Quo(pair.Reserve1),
			)
		}
		if !liquidity.IsPositive() {
			return types.ErrInsufficientLiquidity.Wrap(types.ReasonInsufficientLiquidityMint)
		}
		k.mintLP(ctx, &pair, to, liquidity)

		if err := k.update(ctx, &pair, balance0, balance1); err != nil {
			return err
		}
		if feeOn {
			pair.KLast = pair.Reserve0.Mul(pair.Reserve1)
		}
		k.SetPairRecord(ctx, pair)

		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeMint,
				sdk.NewAttribute(types.AttributeKeyPair, pairAddr.String()),
				sdk.NewAttribute(types.AttributeKeySender, sender.String()),
				sdk.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
			),
		)
		k.metrics.LiquidityEvents.WithLabelValues(pairAddr.String(), "mint").Inc()
		return nil
	})
	if err != nil {
		return math.Int{}, err
	}
	return liquidity, nil
}

// Burn redeems the LP shares held by the pair itself for a pro-rata share of
// both reserves, paid to `to`.
func (k Keeper) Burn(ctx context.Context, sender, pairAddr, to sdk.AccAddress) (amount0, amount1 math.Int, err error) {
	err = k.atomic(ctx, func(ctx context.Context) error {
		var err error
		amount0, amount1, err = k.burn(ctx, sender, pairAddr, to)
		return err
	})
	if err != nil {
		k.metrics.Errors.WithLabelValues("burn", errorLabel(err)).Inc()
		return math.Int{}, math.Int{}, err
	}
	return amount0, amount1, nil
}

func (k Keeper) burn(ctx context.Context, sender, pairAddr, to sdk.AccAddress) (amount0, amount1 math.Int, err error) {
	err = k.withPairLock(ctx, pairAddr, func() error {
		pair, err := k.initializedPair(ctx, pairAddr)
		if err != nil {
			return err
		}

		balance0, balance1 := k.pairBalances(ctx, pair)
		if err := checkReserveBounds(balance0, balance1); err != nil {
			return err
		}
		liquidity := k.lpBalanceOf(ctx, pairAddr, pairAddr)

		feeOn := k.mintFee(ctx, &pair)
		totalSupply := pair.TotalSupply
		if totalSupply.IsZero() {
			return types.ErrInsufficientLiquidity.Wrap(types.ReasonInsufficientLiquidityBurn)
		}
		amount0 = liquidity.Mul(balance0).Quo(totalSupply)
		amount1 = liquidity.Mul(balance1).Quo(totalSupply)
		if !amount0.IsPositive() || !amount1.IsPositive() {
			return types.ErrInsufficientLiquidity.Wrap(types.ReasonInsufficientLiquidityBurn)
		}
		if err := k.burnLP(ctx, &pair, pairAddr, liquidity); err != nil {
			return err
		}

		if err := k.tokenKeeper.Transfer(ctx, pair.Token0, pairAddr, to, amount0); err != nil {
			return err
		}
		if err := k.tokenKeeper.Transfer(ctx, pair.Token1, pairAddr, to, amount1); err != nil {
			return err
		}

		balance0, balance1 = k.pairBalances(ctx, pair)
		if err := k.update(ctx, &pair, balance0, balance1); err != nil {
			return err
		}
		if feeOn {
			pair.KLast = pair.Reserve0.Mul(pair.Reserve1)
		}
		k.SetPairRecord(ctx, pair)

		sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeBurn,
				sdk.NewAttribute(types.AttributeKeyPair, pairAddr.String()),
				sdk.NewAttribute(types.AttributeKeySender, sender.String()),
				sdk.NewAttribute(types.AttributeKeyAmount0, amount0.String()),
				sdk.NewAttribute(types.AttributeKeyAmount1, amount1.String()),
				sdk.NewAttribute(types.AttributeKeyTo, to.String()),
			),
		)
		k.metrics.LiquidityEvents.WithLabelValues(pairAddr.String(), "burn").Inc()
		return nil
	})
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	return amount0, amount1, nil
}
