package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

// RouterAddress returns the account the router holds transient balances under.
func (k Keeper) RouterAddress() sdk.AccAddress {
	return types.RouterAddress
}

// WrappedNative returns the token the router wraps the native coin into.
func (k Keeper) WrappedNative(ctx context.Context) (sdk.AccAddress, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	if len(params.WrappedNative) == 0 {
		return nil, types.ErrInvalidAddressParameters.Wrap("wrapped native token is not configured")
	}
	return params.WrappedNative, nil
}

// runRouter executes a router entry point atomically and records its outcome.
func (k Keeper) runRouter(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	err := k.atomic(ctx, fn)
	k.metrics.RouterCalls.WithLabelValues(method, statusLabel(err)).Inc()
	if err != nil {
		k.metrics.Errors.WithLabelValues(method, errorLabel(err)).Inc()
		k.Logger(ctx).Debug("router call failed", "method", method, "error", err)
	}
	return err
}

// pairFor returns the pair of two tokens, which must exist.
func (k Keeper) pairFor(ctx context.Context, tokenA, tokenB sdk.AccAddress) (types.Pair, error) {
	addr, ok := k.GetPair(ctx, tokenA, tokenB)
	if !ok {
		return types.Pair{}, types.ErrPairNotFound.Wrapf("no pair for %s and %s", tokenA, tokenB)
	}
	return k.initializedPair(ctx, addr)
}

// getReserves returns the reserves of the tokenA/tokenB pair ordered as the
// arguments, whatever order the pair holds them in.
func (k Keeper) getReserves(ctx context.Context, tokenA, tokenB sdk.AccAddress) (reserveA, reserveB math.Int, err error) {
	pair, err := k.pairFor(ctx, tokenA, tokenB)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	r := pair.ReservesFor(tokenA)
	return r.In, r.Out, nil
}

func (k Keeper) pathReserves(ctx context.Context, path []sdk.AccAddress) ([]types.Reserves, error) {
	if len(path) < 2 {
		return nil, types.ErrInvalidPath.Wrap(types.ReasonLibraryInvalidPath)
	}
	hops := make([]types.Reserves, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		reserveIn, reserveOut, err := k.getReserves(ctx, path[i], path[i+1])
		if err != nil {
			return nil, err
		}
		hops = append(hops, types.Reserves{In: reserveIn, Out: reserveOut})
	}
	return hops, nil
}

// GetAmountsOut chains GetAmountOut along path for an exact input.
func (k Keeper) GetAmountsOut(ctx context.Context, amountIn math.Int, path []sdk.AccAddress) ([]math.Int, error) {
	hops, err := k.pathReserves(ctx, path)
	if err != nil {
		return nil, err
	}
	return types.GetAmountsOut(amountIn, hops)
}

// GetAmountsIn chains GetAmountIn backwards along path for an exact output.
func (k Keeper) GetAmountsIn(ctx context.Context, amountOut math.Int, path []sdk.AccAddress) ([]math.Int, error) {
	hops, err := k.pathReserves(ctx, path)
	if err != nil {
		return nil, err
	}
	return types.GetAmountsIn(amountOut, hops)
}

// Quote is types.Quote exposed on the router.
func (k Keeper) Quote(amountA, reserveA, reserveB math.Int) (math.Int, error) {
	return types.Quote(amountA, reserveA, reserveB)
}

// GetAmountOut is types.GetAmountOut exposed on the router.
func (k Keeper) GetAmountOut(amountIn, reserveIn, reserveOut math.Int) (math.Int, error) {
	return types.GetAmountOut(amountIn, reserveIn, reserveOut)
}

// GetAmountIn is types.GetAmountIn exposed on the router.
func (k Keeper) GetAmountIn(amountOut, reserveIn, reserveOut math.Int) (math.Int, error) {
	return types.GetAmountIn(amountOut, reserveIn, reserveOut)
}

func (k Keeper) nativeCoins(ctx context.Context, amount math.Int) (sdk.Coins, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	return sdk.NewCoins(sdk.NewCoin(params.NativeDenom, amount)), nil
}

// receiveNative moves the native value attached to a call into the router.
func (k Keeper) receiveNative(ctx context.Context, from sdk.AccAddress, amount math.Int) error {
	if !amount.IsPositive() {
		return nil
	}
	coins, err := k.nativeCoins(ctx, amount)
	if err != nil {
		return err
	}
	return k.bankKeeper.SendCoins(ctx, from, types.RouterAddress, coins)
}

// sendNative pays native coins out of the router.
func (k Keeper) sendNative(ctx context.Context, to sdk.AccAddress, amount math.Int) error {
	if !amount.IsPositive() {
		return nil
	}
	coins, err := k.nativeCoins(ctx, amount)
	if err != nil {
		return err
	}
	return k.bankKeeper.SendCoins(ctx, types.RouterAddress, to, coins)
}

// wrapInto wraps amount of the router's native coins and sends them to pair.
func (k Keeper) wrapInto(ctx context.Context, wrapped, pair sdk.AccAddress, amount math.Int) error {
	if err := k.tokenKeeper.Deposit(ctx, wrapped, types.RouterAddress, amount); err != nil {
		return err
	}
	return k.tokenKeeper.Transfer(ctx, wrapped, types.RouterAddress, pair, amount)
}

// unwrapTo unwraps amount of the router's wrapped balance and pays it to `to`.
func (k Keeper) unwrapTo(ctx context.Context, wrapped, to sdk.AccAddress, amount math.Int) error {
	if err := k.tokenKeeper.Withdraw(ctx, wrapped, types.RouterAddress, amount); err != nil {
		return err
	}
	return k.sendNative(ctx, to, amount)
}
