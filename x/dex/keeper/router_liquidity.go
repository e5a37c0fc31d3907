package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

// addLiquidityAmounts picks the deposit that keeps the pair's current ratio,
// creating the pair first when it does not exist.
func (k Keeper) addLiquidityAmounts(
	ctx context.Context,
	tokenA, tokenB sdk.AccAddress,
	amountADesired, amountBDesired, amountAMin, amountBMin math.Int,
) (amountA, amountB math.Int, err error) {
	if _, ok := k.GetPair(ctx, tokenA, tokenB); !ok {
		if _, err := k.createPair(ctx, types.RouterAddress, tokenA, tokenB, "", ""); err != nil {
			return math.Int{}, math.Int{}, err
		}
	}

	reserveA, reserveB, err := k.getReserves(ctx, tokenA, tokenB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if reserveA.IsZero() && reserveB.IsZero() {
		return amountADesired, amountBDesired, nil
	}

	amountBOptimal, err := types.Quote(amountADesired, reserveA, reserveB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if amountBOptimal.LTE(amountBDesired) {
		if amountBOptimal.LT(amountBMin) {
			return math.Int{}, math.Int{}, types.ErrInsufficientAmount.Wrap(types.ReasonRouterInsufficientB)
		}
		return amountADesired, amountBOptimal, nil
	}

	amountAOptimal, err := types.Quote(amountBDesired, reserveB, reserveA)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if amountAOptimal.GT(amountADesired) {
		return math.Int{}, math.Int{}, types.ErrInsufficientAmount.Wrap(types.ReasonRouterInsufficientA)
	}
	if amountAOptimal.LT(amountAMin) {
		return math.Int{}, math.Int{}, types.ErrInsufficientAmount.Wrap(types.ReasonRouterInsufficientA)
	}
	return amountAOptimal, amountBDesired, nil
}

// AddLiquidity deposits tokenA and tokenB from the sender at the pair's ratio
// and mints LP shares to msg.To. The router must be approved for both tokens.
func (k Keeper) AddLiquidity(ctx context.Context, msg types.MsgAddLiquidity) (*types.MsgAddLiquidityResponse, error) {
	var resp types.MsgAddLiquidityResponse
	err := k.runRouter(ctx, "add_liquidity", func(ctx context.Context) error {
		if err := checkDeadline(ctx, msg.Deadline, types.ReasonRouterExpired); err != nil {
			return err
		}
		if err := msg.ValidateBasic(); err != nil {
			return err
		}

		amountA, amountB, err := k.addLiquidityAmounts(ctx, msg.TokenA, msg.TokenB,
			msg.AmountADesired, msg.AmountBDesired, msg.AmountAMin, msg.AmountBMin)
		if err != nil {
			return err
		}
		pair, err := k.pairFor(ctx, msg.TokenA, msg.TokenB)
		if err != nil {
			return err
		}
		if err := k.tokenKeeper.TransferFrom(ctx, msg.TokenA, types.RouterAddress, msg.Sender, pair.Address, amountA); err != nil {
			return err
		}
		if err := k.tokenKeeper.TransferFrom(ctx, msg.TokenB, types.RouterAddress, msg.Sender, pair.Address, amountB); err != nil {
			return err
		}
		liquidity, err := k.mint(ctx, types.RouterAddress, pair.Address, msg.To)
		if err != nil {
			return err
		}

		resp = types.MsgAddLiquidityResponse{AmountA: amountA, AmountB: amountB, Liquidity: liquidity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddLiquidityKLAY deposits msg.Token and the native coin attached as
// msg.Value. The native side is wrapped on the way in and any unused value is
// refunded to the sender.
func (k Keeper) AddLiquidityKLAY(ctx context.Context, msg types.MsgAddLiquidityKLAY) (*types.MsgAddLiquidityKLAYResponse, error) {
	var resp types.MsgAddLiquidityKLAYResponse
	err := k.runRouter(ctx, "add_liquidity_klay", func(ctx context.Context) error {
		if err := checkDeadline(ctx, msg.Deadline, types.ReasonRouterExpired); err != nil {
			return err
		}
		if err := msg.ValidateBasic(); err != nil {
			return err
		}
		wklay, err := k.WrappedNative(ctx)
		if err != nil {
			return err
		}
		if err := k.receiveNative(ctx, msg.Sender, msg.Value); err != nil {
			return err
		}

		amountToken, amountKLAY, err := k.addLiquidityAmounts(ctx, msg.Token, wklay,
			msg.AmountTokenDesired, msg.Value, msg.AmountTokenMin, msg.AmountKLAYMin)
		if err != nil {
			return err
		}
		pair, err := k.pairFor(ctx, msg.Token, wklay)
		if err != nil {
			return err
		}
		if err := k.tokenKeeper.TransferFrom(ctx, msg.Token, types.RouterAddress, msg.Sender, pair.Address, amountToken); err != nil {
			return err
		}
		if err := k.wrapInto(ctx, wklay, pair.Address, amountKLAY); err != nil {
			return err
		}
		liquidity, err := k.mint(ctx, types.RouterAddress, pair.Address, msg.To)
		if err != nil {
			return err
		}
		if err := k.sendNative(ctx, msg.Sender, msg.Value.Sub(amountKLAY)); err != nil {
			return err
		}

		resp = types.MsgAddLiquidityKLAYResponse{AmountToken: amountToken, AmountKLAY: amountKLAY, Liquidity: liquidity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// removeLiquidity pulls the sender's shares into the pair, burns them and
// pays both tokens to `to`, ordered as tokenA and tokenB.
func (k Keeper) removeLiquidity(
	ctx context.Context,
	sender, tokenA, tokenB sdk.AccAddress,
	liquidity, amountAMin, amountBMin math.Int,
	to sdk.AccAddress,
) (amountA, amountB math.Int, err error) {
	pair, err := k.pairFor(ctx, tokenA, tokenB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.lpTransferFrom(ctx, pair.Address, types.RouterAddress, sender, pair.Address, liquidity); err != nil {
		return math.Int{}, math.Int{}, err
	}
	amount0, amount1, err := k.burn(ctx, types.RouterAddress, pair.Address, to)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	amountA, amountB = amount0, amount1
	if !tokenA.Equals(pair.Token0) {
		amountA, amountB = amount1, amount0
	}
	if amountA.LT(amountAMin) {
		return math.Int{}, math.Int{}, types.ErrInsufficientAmount.Wrap(types.ReasonRouterInsufficientA)
	}
	if amountB.LT(amountBMin) {
		return math.Int{}, math.Int{}, types.ErrInsufficientAmount.Wrap(types.ReasonRouterInsufficientB)
	}
	return amountA, amountB, nil
}

// removeLiquidityKLAY withdraws through the router and unwraps the native
// side. It returns the token amount the router received from the pair.
func (k Keeper) removeLiquidityKLAY(ctx context.Context, msg types.MsgRemoveLiquidityKLAY) (amountToken, amountKLAY math.Int, err error) {
	wklay, err := k.WrappedNative(ctx)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	amountToken, amountKLAY, err = k.removeLiquidity(ctx, msg.Sender, msg.Token, wklay,
		msg.Liquidity, msg.AmountTokenMin, msg.AmountKLAYMin, types.RouterAddress)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	if err := k.unwrapTo(ctx, wklay, msg.To, amountKLAY); err != nil {
		return math.Int{}, math.Int{}, err
	}
	return amountToken, amountKLAY, nil
}

// RemoveLiquidity burns msg.Liquidity shares of the sender. The router must
// be approved for the shares.
func (k Keeper) RemoveLiquidity(ctx context.Context, msg types.MsgRemoveLiquidity) (*types.MsgRemoveLiquidityResponse, error) {
	var resp types.MsgRemoveLiquidityResponse
	err := k.runRouter(ctx, "remove_liquidity", func(ctx context.Context) error {
		if err := checkDeadline(ctx, msg.Deadline, types.ReasonRouterExpired); err != nil {
			return err
		}
		if err := msg.ValidateBasic(); err != nil {
			return err
		}

		amountA, amountB, err := k.removeLiquidity(ctx, msg.Sender, msg.TokenA, msg.TokenB,
			msg.Liquidity, msg.AmountAMin, msg.AmountBMin, msg.To)
		if err != nil {
			return err
		}
		resp = types.MsgRemoveLiquidityResponse{AmountA: amountA, AmountB: amountB}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveLiquidityKLAY burns shares of a token/wrapped native pair and pays
// the native side out unwrapped.
func (k Keeper) RemoveLiquidityKLAY(ctx context.Context, msg types.MsgRemoveLiquidityKLAY) (*types.MsgRemoveLiquidityKLAYResponse, error) {
	var resp types.MsgRemoveLiquidityKLAYResponse
	err := k.runRouter(ctx, "remove_liquidity_klay", func(ctx context.Context) error {
		if err := checkDeadline(ctx, msg.Deadline, types.ReasonRouterExpired); err != nil {
			return err
		}
		if err := msg.ValidateBasic(); err != nil {
			return err
		}

		amountToken, amountKLAY, err := k.removeLiquidityKLAY(ctx, msg)
		if err != nil {
			return err
		}
		if err := k.tokenKeeper.Transfer(ctx, msg.Token, types.RouterAddress, msg.To, amountToken); err != nil {
			return err
		}
		resp = types.MsgRemoveLiquidityKLAYResponse{AmountToken: amountToken, AmountKLAY: amountKLAY}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// permitRouter grants the router the sender's shares of pair from a signed
// permit.
func (k Keeper) permitRouter(ctx context.Context, pair, owner sdk.AccAddress, liquidity math.Int, deadline uint64, sig types.PermitSignature) error {
	value := liquidity
	if sig.ApproveMax {
		value = types.MaxUint256
	}
	return k.permit(ctx, pair, owner, types.RouterAddress, value, deadline, sig.PubKey, sig.Signature)
}

// RemoveLiquidityWithPermit is RemoveLiquidity authorized by an LP permit
// instead of a prior approval.
func (k Keeper) RemoveLiquidityWithPermit(ctx context.Context, msg types.MsgRemoveLiquidityWithPermit) (*types.MsgRemoveLiquidityResponse, error) {
	var resp types.MsgRemoveLiquidityResponse
	err := k.runRouter(ctx, "remove_liquidity_with_permit", func(ctx context.Context) error {
		if err := checkDeadline(ctx, msg.Deadline, types.ReasonRouterExpired); err != nil {
			return err
		}
		if err := msg.ValidateBasic(); err != nil {
			return err
		}

		pair, err := k.pairFor(ctx, msg.TokenA, msg.TokenB)
		if err != nil {
			return err
		}
		if err := k.permitRouter(ctx, pair.Address, msg.Sender, msg.Liquidity, msg.Deadline, msg.Permit); err != nil {
			return err
		}
		amountA, amountB, err := k.removeLiquidity(ctx, msg.Sender, msg.TokenA, msg.TokenB,
			msg.Liquidity, msg.AmountAMin, msg.AmountBMin, msg.To)
		if err != nil {
			return err
		}
		resp = types.MsgRemoveLiquidityResponse{AmountA: amountA, AmountB: amountB}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveLiquidityKLAYWithPermit is RemoveLiquidityKLAY authorized by an LP
// permit instead of a prior approval.
func (k Keeper) RemoveLiquidityKLAYWithPermit(ctx context.Context, msg types.MsgRemoveLiquidityKLAYWithPermit) (*types.MsgRemoveLiquidityKLAYResponse, error) {
	var resp types.MsgRemoveLiquidityKLAYResponse
	err := k.runRouter(ctx, "remove_liquidity_klay_with_permit", func(ctx context.Context) error {
		if err := checkDeadline(ctx, msg.Deadline, types.ReasonRouterExpired); err != nil {
			return err
		}
		if err := msg.ValidateBasic(); err != nil {
			return err
		}

		wklay, err := k.WrappedNative(ctx)
		if err != nil {
			return err
		}
		pair, err := k.pairFor(ctx, msg.Token, wklay)
		if err != nil {
			return err
		}
		if err := k.permitRouter(ctx, pair.Address, msg.Sender, msg.Liquidity, msg.Deadline, msg.Permit); err != nil {
			return err
		}
		amountToken, amountKLAY, err := k.removeLiquidityKLAY(ctx, msg.MsgRemoveLiquidityKLAY)
		if err != nil {
			return err
		}
		if err := k.tokenKeeper.Transfer(ctx, msg.Token, types.RouterAddress, msg.To, amountToken); err != nil {
			return err
		}
		resp = types.MsgRemoveLiquidityKLAYResponse{AmountToken: amountToken, AmountKLAY: amountKLAY}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveLiquidityKLAYSupportingFeeOnTransferTokens pays out whatever token
// balance reached the router, for tokens that take a fee on transfer. It
// returns the native amount paid.
func (k Keeper) RemoveLiquidityKLAYSupportingFeeOnTransferTokens(ctx context.Context, msg types.MsgRemoveLiquidityKLAY) (math.Int, error) {
	var amountKLAY math.Int
	err := k.runRouter(ctx, "remove_liquidity_klay_fee_on_transfer", func(ctx context.Context) error {
		if err := checkDeadline(ctx, msg.Deadline, types.ReasonRouterExpired); err != nil {
			return err
		}
		if err := msg.ValidateBasic(); err != nil {
			return err
		}
		return k.removeLiquidityKLAYFeeOnTransfer(ctx, msg, &amountKLAY)
	})
	if err != nil {
		return math.Int{}, err
	}
	return amountKLAY, nil
}

// RemoveLiquidityKLAYWithPermitSupportingFeeOnTransferTokens combines the
// permit and fee-on-transfer variants.
func (k Keeper) RemoveLiquidityKLAYWithPermitSupportingFeeOnTransferTokens(ctx context.Context, msg types.MsgRemoveLiquidityKLAYWithPermit) (math.Int, error) {
	var amountKLAY math.Int
	err := k.runRouter(ctx, "remove_liquidity_klay_with_permit_fee_on_transfer", func(ctx context.Context) error {
		if err := checkDeadline(ctx, msg.Deadline, types.ReasonRouterExpired); err != nil {
			return err
		}
		if err := msg.ValidateBasic(); err != nil {
			return err
		}

		wklay, err := k.WrappedNative(ctx)
		if err != nil {
			return err
		}
		pair, err := k.pairFor(ctx, msg.Token, wklay)
		if err != nil {
			return err
		}
		if err := k.permitRouter(ctx, pair.Address, msg.Sender, msg.Liquidity, msg.Deadline, msg.Permit); err != nil {
			return err
		}
		return k.removeLiquidityKLAYFeeOnTransfer(ctx, msg.MsgRemoveLiquidityKLAY, &amountKLAY)
	})
	if err != nil {
		return math.Int{}, err
	}
	return amountKLAY, nil
}

func (k Keeper) removeLiquidityKLAYFeeOnTransfer(ctx context.Context, msg types.MsgRemoveLiquidityKLAY, amountKLAY *math.Int) error {
	_, klay, err := k.removeLiquidityKLAY(ctx, msg)
	if err != nil {
		return err
	}
	received := k.tokenKeeper.BalanceOf(ctx, msg.Token, types.RouterAddress)
	if received.IsPositive() {
		if err := k.tokenKeeper.Transfer(ctx, msg.Token, types.RouterAddress, msg.To, received); err != nil {
			return err
		}
	}
	*amountKLAY = klay
	return nil
}
