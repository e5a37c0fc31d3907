package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/x/token/types"
)

// Deposit moves amount of the native denom from from into escrow at the token
// address and credits from with the same amount of the wrapped token.
func (k Keeper) Deposit(ctx context.Context, token, from sdk.AccAddress, amount math.Int) error {
	t, err := k.mustGetToken(ctx, token)
	if err != nil {
		return err
	}
	if !t.IsWrappedNative() {
		return types.ErrNotWrappedNative.Wrapf("token %s", token)
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrap("amount must be non-negative")
	}
	if amount.IsZero() {
		return nil
	}

	if err := k.bankKeeper.SendCoins(ctx, from, token, sdk.NewCoins(sdk.NewCoin(t.NativeDenom, amount))); err != nil {
		return err
	}
	if err := k.mint(ctx, token, from, amount); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeDeposit,
			sdk.NewAttribute(types.AttributeKeyToken, token.String()),
			sdk.NewAttribute(types.AttributeKeyTo, from.String()),
			sdk.NewAttribute(types.AttributeKeyValue, amount.String()),
		),
	)
	return nil
}

// Withdraw burns amount of from's wrapped token and releases the same amount
// of the native denom from escrow to from.
func (k Keeper) Withdraw(ctx context.Context, token, from sdk.AccAddress, amount math.Int) error {
	t, err := k.mustGetToken(ctx, token)
	if err != nil {
		return err
	}
	if !t.IsWrappedNative() {
		return types.ErrNotWrappedNative.Wrapf("token %s", token)
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrap("amount must be non-negative")
	}
	if amount.IsZero() {
		return nil
	}

	if err := k.burn(ctx, token, from, amount); err != nil {
		return err
	}
	if err := k.bankKeeper.SendCoins(ctx, token, from, sdk.NewCoins(sdk.NewCoin(t.NativeDenom, amount))); err != nil {
		return err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeWithdrawal,
			sdk.NewAttribute(types.AttributeKeyToken, token.String()),
			sdk.NewAttribute(types.AttributeKeyFrom, from.String()),
			sdk.NewAttribute(types.AttributeKeyValue, amount.String()),
		),
	)
	return nil
}
