package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/x/token/types"
)

// CreateToken registers a new token and mints supply to creator. A non-zero
// transferFeeBps makes it a fee-on-transfer token.
func (k Keeper) CreateToken(ctx context.Context, creator sdk.AccAddress, name, symbol string, decimals uint32, supply math.Int, transferFeeBps uint32) (sdk.AccAddress, error) {
	if types.IsZeroAddress(creator) {
		return nil, types.ErrMintToZeroAddress
	}
	if supply.IsNil() || supply.IsNegative() {
		return nil, types.ErrInvalidAmount.Wrap("supply must be non-negative")
	}

	addr := types.TokenAddress(k.nextTokenSeq(ctx))
	t := types.Token{
		Address:        addr,
		Owner:          creator,
		Name:           name,
		Symbol:         symbol,
		Decimals:       decimals,
		TotalSupply:    math.ZeroInt(),
		TransferFeeBps: transferFeeBps,
	}
	if err := t.Validate(); err != nil {
		return nil, types.ErrInvalidToken.Wrap(err.Error())
	}
	if err := k.SetToken(ctx, t); err != nil {
		return nil, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTokenCreated,
			sdk.NewAttribute(types.AttributeKeyToken, addr.String()),
			sdk.NewAttribute(types.AttributeKeyName, name),
			sdk.NewAttribute(types.AttributeKeySymbol, symbol),
		),
	)

	if supply.IsPositive() {
		if err := k.mint(ctx, addr, creator, supply); err != nil {
			return nil, err
		}
	}

	k.Logger(ctx).Info("token created", "token", addr.String(), "symbol", symbol, "supply", supply.String())
	return addr, nil
}

// CreateWrappedNative registers a token that wraps denom one to one.
func (k Keeper) CreateWrappedNative(ctx context.Context, creator sdk.AccAddress, denom string) (sdk.AccAddress, error) {
	addr := types.TokenAddress(k.nextTokenSeq(ctx))
	t := types.Token{
		Address:     addr,
		Owner:       creator,
		Name:        "Wrapped " + denom,
		Symbol:      "W" + denom,
		Decimals:    18,
		TotalSupply: math.ZeroInt(),
		NativeDenom: denom,
	}
	if err := t.Validate(); err != nil {
		return nil, types.ErrInvalidToken.Wrap(err.Error())
	}
	if err := k.SetToken(ctx, t); err != nil {
		return nil, err
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTokenCreated,
			sdk.NewAttribute(types.AttributeKeyToken, addr.String()),
			sdk.NewAttribute(types.AttributeKeyName, t.Name),
			sdk.NewAttribute(types.AttributeKeySymbol, t.Symbol),
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
		),
	)
	return addr, nil
}

// Mint creates amount of token for to. Only the token owner may mint, and
// wrapped native tokens are only minted through Deposit.
func (k Keeper) Mint(ctx context.Context, token, minter, to sdk.AccAddress, amount math.Int) error {
	t, err := k.mustGetToken(ctx, token)
	if err != nil {
		return err
	}
	if t.IsWrappedNative() || !t.Owner.Equals(minter) {
		return types.ErrUnauthorized.Wrapf("%s cannot mint %s", minter, t.Symbol)
	}
	return k.mint(ctx, token, to, amount)
}

// Burn destroys amount of from's token.
func (k Keeper) Burn(ctx context.Context, token, from sdk.AccAddress, amount math.Int) error {
	t, err := k.mustGetToken(ctx, token)
	if err != nil {
		return err
	}
	if t.IsWrappedNative() {
		return types.ErrUnauthorized.Wrap("wrapped native tokens are burned through Withdraw")
	}
	return k.burn(ctx, token, from, amount)
}

func (k Keeper) mint(ctx context.Context, token, to sdk.AccAddress, amount math.Int) error {
	if types.IsZeroAddress(to) {
		return types.ErrMintToZeroAddress
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrap("amount must be non-negative")
	}
	t, err := k.mustGetToken(ctx, token)
	if err != nil {
		return err
	}

	supply, err := t.TotalSupply.SafeAdd(amount)
	if err != nil {
		return types.ErrInvalidAmount.Wrapf("total supply overflow: %s", err)
	}
	t.TotalSupply = supply
	if err := k.SetToken(ctx, t); err != nil {
		return err
	}
	k.setBalance(ctx, token, to, k.BalanceOf(ctx, token, to).Add(amount))
	k.emitTransfer(ctx, token, nil, to, amount)
	return nil
}

func (k Keeper) burn(ctx context.Context, token, from sdk.AccAddress, amount math.Int) error {
	if types.IsZeroAddress(from) {
		return types.ErrBurnFromZeroAddress
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrap("amount must be non-negative")
	}
	t, err := k.mustGetToken(ctx, token)
	if err != nil {
		return err
	}
	balance := k.BalanceOf(ctx, token, from)
	if balance.LT(amount) {
		return types.ErrInsufficientBalance
	}

	k.setBalance(ctx, token, from, balance.Sub(amount))
	t.TotalSupply = t.TotalSupply.Sub(amount)
	if err := k.SetToken(ctx, t); err != nil {
		return err
	}
	k.emitTransfer(ctx, token, from, nil, amount)
	return nil
}

// Approve sets the allowance of spender over owner's token.
func (k Keeper) Approve(ctx context.Context, token, owner, spender sdk.AccAddress, amount math.Int) error {
	if types.IsZeroAddress(spender) {
		return types.ErrApproveToZeroAddress
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrap("allowance must not be negative")
	}
	if !k.HasToken(ctx, token) {
		return types.ErrTokenNotFound.Wrapf("token %s", token)
	}

	k.setAllowance(ctx, token, owner, spender, amount)
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTokenApproval,
			sdk.NewAttribute(types.AttributeKeyToken, token.String()),
			sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.String()),
			sdk.NewAttribute(types.AttributeKeyValue, amount.String()),
		),
	)
	return nil
}

// Transfer moves amount of token from from to to. Fee-on-transfer tokens
// burn their fee out of amount, so to receives amount minus the fee.
func (k Keeper) Transfer(ctx context.Context, token, from, to sdk.AccAddress, amount math.Int) error {
	if types.IsZeroAddress(to) {
		return types.ErrTransferToZeroAddress
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrap("amount must be non-negative")
	}
	t, err := k.mustGetToken(ctx, token)
	if err != nil {
		return err
	}

	balance := k.BalanceOf(ctx, token, from)
	if balance.LT(amount) {
		return types.ErrInsufficientBalance
	}

	fee := t.TransferFee(amount)
	received := amount.Sub(fee)
	k.setBalance(ctx, token, from, balance.Sub(amount))
	k.setBalance(ctx, token, to, k.BalanceOf(ctx, token, to).Add(received))
	k.emitTransfer(ctx, token, from, to, received)

	if fee.IsPositive() {
		t.TotalSupply = t.TotalSupply.Sub(fee)
		if err := k.SetToken(ctx, t); err != nil {
			return err
		}
		k.emitTransfer(ctx, token, from, nil, fee)
	}
	return nil
}

// TransferFrom moves amount of from's token to to on behalf of spender. The
// maximum allowance is never decremented.
func (k Keeper) TransferFrom(ctx context.Context, token, spender, from, to sdk.AccAddress, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrap("amount must be non-negative")
	}
	allowance := k.Allowance(ctx, token, from, spender)
	if allowance.LT(amount) {
		return types.ErrInsufficientAllowance
	}
	if err := k.Transfer(ctx, token, from, to, amount); err != nil {
		return err
	}
	if !allowance.Equal(types.MaxAllowance) {
		k.setAllowance(ctx, token, from, spender, allowance.Sub(amount))
	}
	return nil
}

func (k Keeper) emitTransfer(ctx context.Context, token, from, to sdk.AccAddress, amount math.Int) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTokenTransfer,
			sdk.NewAttribute(types.AttributeKeyToken, token.String()),
			sdk.NewAttribute(types.AttributeKeyFrom, from.String()),
			sdk.NewAttribute(types.AttributeKeyTo, to.String()),
			sdk.NewAttribute(types.AttributeKeyValue, amount.String()),
		),
	)
}
