package keeper

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

// swapPath executes a precomputed swap along path. The first pair must
// already hold amounts[0]; each hop pays the next pair directly and the last
// pays `to`.
func (k Keeper) swapPath(ctx context.Context, amounts []math.Int, path []sdk.AccAddress, to sdk.AccAddress) error {
	for i := 0; i < len(path)-1; i++ {
		input, output := path[i], path[i+1]
		pair, err := k.pairFor(ctx, input, output)
		if err != nil {
			return err
		}

		amount0Out, amount1Out := math.ZeroInt(), amounts[i+1]
		if !input.Equals(pair.Token0) {
			amount0Out, amount1Out = amounts[i+1], math.ZeroInt()
		}
		recipient := to
		if i < len(path)-2 {
			next, err := k.pairFor(ctx, output, path[i+2])
			if err != nil {
				return err
			}
			recipient = next.Address
		}
		if err := k.swap(ctx, types.RouterAddress, pair.Address, amount0Out, amount1Out, recipient, nil); err != nil {
			return err
		}
	}
	return nil
}

// swapPathFeeOnTransfer swaps along path using whatever each pair actually
// received, for tokens that take a fee on transfer.
func (k Keeper) swapPathFeeOnTransfer(ctx context.Context, path []sdk.AccAddress, to sdk.AccAddress) error {
	for i := 0; i < len(path)-1; i++ {
		input, output := path[i], path[i+1]
		pair, err := k.pairFor(ctx, input, output)
		if err != nil {
			return err
		}

		reserves := pair.ReservesFor(input)
		amountInput := k.tokenKeeper.BalanceOf(ctx, input, pair.Address).Sub(reserves.In)
		amountOutput, err := types.GetAmountOut(amountInput, reserves.In, reserves.Out)
		if err != nil {
			return err
		}

		amount0Out, amount1Out := math.ZeroInt(), amountOutput
		if !input.Equals(pair.Token0) {
			amount0Out, amount1Out = amountOutput, math.ZeroInt()
		}
		recipient := to
		if i < len(path)-2 {
			next, err := k.pairFor(ctx, output, path[i+2])
			if err != nil {
				return err
			}
			recipient = next.Address
		}
		if err := k.swap(ctx, types.RouterAddress, pair.Address, amount0Out, amount1Out, recipient, nil); err != nil {
			return err
		}
	}
	return nil
}

// firstPair returns the pair that receives the input of a swap along path.
func (k Keeper) firstPair(ctx context.Context, path []sdk.AccAddress) (sdk.AccAddress, error) {
	pair, err := k.pairFor(ctx, path[0], path[1])
	if err != nil {
		return nil, err
	}
	return pair.Address, nil
}

func requirePathStart(path []sdk.AccAddress, token sdk.AccAddress) error {
	if !path[0].Equals(token) {
		return types.ErrInvalidPath.Wrap(types.ReasonRouterInvalidPath)
	}
	return nil
}

func requirePathEnd(path []sdk.AccAddress, token sdk.AccAddress) error {
	if !path[len(path)-1].Equals(token) {
		return types.ErrInvalidPath.Wrap(types.ReasonRouterInvalidPath)
	}
	return nil
}

func last(amounts []math.Int) math.Int {
	return amounts[len(amounts)-1]
}

// SwapExactTokensForTokens sells exactly msg.AmountIn of the first path token
// and fails unless at least msg.AmountOutMin of the last reaches msg.To.
func (k Keeper) SwapExactTokensForTokens(ctx context.Context, msg types.MsgSwapExactTokensForTokens) (*types.MsgSwapResponse, error) {
	var amounts []math.Int
	err := k.runRouter(ctx, "swap_exact_tokens_for_tokens", func(ctx context.Context) error {
		if err := checkDeadline(ctx, msg.Deadline, types.ReasonRouterExpired); err != nil {
			return err
		}
		if err := msg.ValidateBasic(); err != nil {
			return err
		}

		var err error
		amounts, err = k.GetAmountsOut(ctx, msg.AmountIn, msg.Path)
		if err != nil {
			return err
		}
		if last(amounts).LT(msg.AmountOutMin) {
			return types.ErrInsufficientAmount.Wrap(types.ReasonRouterInsufficientOutput)
		}
		pair, err := k.firstPair(ctx, msg.Path)
		if err != nil {
			return err
		}
		if err := k.tokenKeeper.TransferFrom(ctx, msg.Path[0], types.RouterAddress, msg.Sender, pair, amounts[0]); err != nil {
			return err
		}
		return k.swapPath(ctx, amounts, msg.Path, msg.To)
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapResponse{Amounts: amounts}, nil
}

// SwapTokensForExactTokens buys exactly msg.AmountOut of the last path token
// and fails if it would cost more than msg.AmountInMax.
func (k Keeper) SwapTokensForExactTokens(ctx context.Context, msg types.MsgSwapTokensForExactTokens) (*types.MsgSwapResponse, error) {
	var amounts []math.Int
	err := k.runRouter(ctx, "swap_tokens_for_exact_tokens", func(ctx context.Context) error {
		if err := checkDeadline(ctx, msg.Deadline, types.ReasonRouterExpired); err != nil {
			return err
		}
		if err := msg.ValidateBasic(); err != nil {
			return err
		}

		var err error
		amounts, err = k.GetAmountsIn(ctx, msg.AmountOut, msg.Path)
		if err != nil {
			return err
		}
		if amounts[0].GT(msg.AmountInMax) {
			return types.ErrExcessiveInputAmount.Wrap(types.ReasonRouterExcessiveInput)
		}
		pair, err := k.firstPair(ctx, msg.Path)
		if err != nil {
			return err
		}
		if err := k.tokenKeeper.TransferFrom(ctx, msg.Path[0], types.RouterAddress, msg.Sender, pair, amounts[0]); err != nil {
			return err
		}
		return k.swapPath(ctx, amounts, msg.Path, msg.To)
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapResponse{Amounts: amounts}, nil
}

// SwapExactKLAYForTokens sells exactly msg.Value of the native coin. The path
// must start at the wrapped native token.
func (k Keeper) SwapExactKLAYForTokens(ctx context.Context, msg types.MsgSwapExactKLAYForTokens) (*types.MsgSwapResponse, error) {
	var amounts []math.Int
	err := k.runRouter(ctx, "swap_exact_klay_for_tokens", func(ctx context.Context) error {
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
		if err := requirePathStart(msg.Path, wklay); err != nil {
			return err
		}
		if err := k.receiveNative(ctx, msg.Sender, msg.Value); err != nil {
			return err
		}

		amounts, err = k.GetAmountsOut(ctx, msg.Value, msg.Path)
		if err != nil {
			return err
		}
		if last(amounts).LT(msg.AmountOutMin) {
			return types.ErrInsufficientAmount.Wrap(types.ReasonRouterInsufficientOutput)
		}
		pair, err := k.firstPair(ctx, msg.Path)
		if err != nil {
			return err
		}
		if err := k.wrapInto(ctx, wklay, pair, amounts[0]); err != nil {
			return err
		}
		return k.swapPath(ctx, amounts, msg.Path, msg.To)
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapResponse{Amounts: amounts}, nil
}

// SwapTokensForExactKLAY buys exactly msg.AmountOut of the native coin. The
// path must end at the wrapped native token.
func (k Keeper) SwapTokensForExactKLAY(ctx context.Context, msg types.MsgSwapTokensForExactTokens) (*types.MsgSwapResponse, error) {
	var amounts []math.Int
	err := k.runRouter(ctx, "swap_tokens_for_exact_klay", func(ctx context.Context) error {
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
		if err := requirePathEnd(msg.Path, wklay); err != nil {
			return err
		}

		amounts, err = k.GetAmountsIn(ctx, msg.AmountOut, msg.Path)
		if err != nil {
			return err
		}
		if amounts[0].GT(msg.AmountInMax) {
			return types.ErrExcessiveInputAmount.Wrap(types.ReasonRouterExcessiveInput)
		}
		pair, err := k.firstPair(ctx, msg.Path)
		if err != nil {
			return err
		}
		if err := k.tokenKeeper.TransferFrom(ctx, msg.Path[0], types.RouterAddress, msg.Sender, pair, amounts[0]); err != nil {
			return err
		}
		if err := k.swapPath(ctx, amounts, msg.Path, types.RouterAddress); err != nil {
			return err
		}
		return k.unwrapTo(ctx, wklay, msg.To, last(amounts))
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapResponse{Amounts: amounts}, nil
}

// SwapExactTokensForKLAY sells exactly msg.AmountIn for the native coin. The
// path must end at the wrapped native token.
func (k Keeper) SwapExactTokensForKLAY(ctx context.Context, msg types.MsgSwapExactTokensForTokens) (*types.MsgSwapResponse, error) {
	var amounts []math.Int
	err := k.runRouter(ctx, "swap_exact_tokens_for_klay", func(ctx context.Context) error {
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
		if err := requirePathEnd(msg.Path, wklay); err != nil {
			return err
		}

		amounts, err = k.GetAmountsOut(ctx, msg.AmountIn, msg.Path)
		if err != nil {
			return err
		}
		if last(amounts).LT(msg.AmountOutMin) {
			return types.ErrInsufficientAmount.Wrap(types.ReasonRouterInsufficientOutput)
		}
		pair, err := k.firstPair(ctx, msg.Path)
		if err != nil {
			return err
		}
		if err := k.tokenKeeper.TransferFrom(ctx, msg.Path[0], types.RouterAddress, msg.Sender, pair, amounts[0]); err != nil {
			return err
		}
		if err := k.swapPath(ctx, amounts, msg.Path, types.RouterAddress); err != nil {
			return err
		}
		return k.unwrapTo(ctx, wklay, msg.To, last(amounts))
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapResponse{Amounts: amounts}, nil
}

// SwapKLAYForExactTokens buys exactly msg.AmountOut paying at most msg.Value
// of the native coin and refunds the rest. The path must start at the
// wrapped native token.
func (k Keeper) SwapKLAYForExactTokens(ctx context.Context, msg types.MsgSwapKLAYForExactTokens) (*types.MsgSwapResponse, error) {
	var amounts []math.Int
	err := k.runRouter(ctx, "swap_klay_for_exact_tokens", func(ctx context.Context) error {
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
		if err := requirePathStart(msg.Path, wklay); err != nil {
			return err
		}
		if err := k.receiveNative(ctx, msg.Sender, msg.Value); err != nil {
			return err
		}

		amounts, err = k.GetAmountsIn(ctx, msg.AmountOut, msg.Path)
		if err != nil {
			return err
		}
		if amounts[0].GT(msg.Value) {
			return types.ErrExcessiveInputAmount.Wrap(types.ReasonRouterExcessiveInput)
		}
		pair, err := k.firstPair(ctx, msg.Path)
		if err != nil {
			return err
		}
		if err := k.wrapInto(ctx, wklay, pair, amounts[0]); err != nil {
			return err
		}
		if err := k.swapPath(ctx, amounts, msg.Path, msg.To); err != nil {
			return err
		}
		return k.sendNative(ctx, msg.Sender, msg.Value.Sub(amounts[0]))
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgSwapResponse{Amounts: amounts}, nil
}

// checkReceived fails unless `to` gained at least amountMin of token since before.
func (k Keeper) checkReceived(ctx context.Context, token, to sdk.AccAddress, before, amountMin math.Int) error {
	if k.tokenKeeper.BalanceOf(ctx, token, to).Sub(before).LT(amountMin) {
		return types.ErrInsufficientAmount.Wrap(types.ReasonRouterInsufficientOutput)
	}
	return nil
}

// SwapExactTokensForTokensSupportingFeeOnTransferTokens is
// SwapExactTokensForTokens for tokens that take a fee on transfer; the output
// bound is checked against what msg.To actually received.
func (k Keeper) SwapExactTokensForTokensSupportingFeeOnTransferTokens(ctx context.Context, msg types.MsgSwapExactTokensForTokens) error {
	return k.runRouter(ctx, "swap_exact_tokens_for_tokens_fee_on_transfer", func(ctx context.Context) error {
		if err := checkDeadline(ctx, msg.Deadline, types.ReasonRouterExpired); err != nil {
			return err
		}
		if err := msg.ValidateBasic(); err != nil {
			return err
		}

		pair, err := k.firstPair(ctx, msg.Path)
		if err != nil {
			return err
		}
		if err := k.tokenKeeper.TransferFrom(ctx, msg.Path[0], types.RouterAddress, msg.Sender, pair, msg.AmountIn); err != nil {
			return err
		}
		tokenOut := msg.Path[len(msg.Path)-1]
		before := k.tokenKeeper.BalanceOf(ctx, tokenOut, msg.To)
		if err := k.swapPathFeeOnTransfer(ctx, msg.Path, msg.To); err != nil {
			return err
		}
		return k.checkReceived(ctx, tokenOut, msg.To, before, msg.AmountOutMin)
	})
}

// SwapExactKLAYForTokensSupportingFeeOnTransferTokens is
// SwapExactKLAYForTokens for output tokens that take a fee on transfer.
func (k Keeper) SwapExactKLAYForTokensSupportingFeeOnTransferTokens(ctx context.Context, msg types.MsgSwapExactKLAYForTokens) error {
	return k.runRouter(ctx, "swap_exact_klay_for_tokens_fee_on_transfer", func(ctx context.Context) error {
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
		if err := requirePathStart(msg.Path, wklay); err != nil {
			return err
		}
		if err := k.receiveNative(ctx, msg.Sender, msg.Value); err != nil {
			return err
		}

		pair, err := k.firstPair(ctx, msg.Path)
		if err != nil {
			return err
		}
		if err := k.wrapInto(ctx, wklay, pair, msg.Value); err != nil {
			return err
		}
		tokenOut := msg.Path[len(msg.Path)-1]
		before := k.tokenKeeper.BalanceOf(ctx, tokenOut, msg.To)
		if err := k.swapPathFeeOnTransfer(ctx, msg.Path, msg.To); err != nil {
			return err
		}
		return k.checkReceived(ctx, tokenOut, msg.To, before, msg.AmountOutMin)
	})
}

// SwapExactTokensForKLAYSupportingFeeOnTransferTokens is
// SwapExactTokensForKLAY for input tokens that take a fee on transfer.
func (k Keeper) SwapExactTokensForKLAYSupportingFeeOnTransferTokens(ctx context.Context, msg types.MsgSwapExactTokensForTokens) error {
	return k.runRouter(ctx, "swap_exact_tokens_for_klay_fee_on_transfer", func(ctx context.Context) error {
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
		if err := requirePathEnd(msg.Path, wklay); err != nil {
			return err
		}

		pair, err := k.firstPair(ctx, msg.Path)
		if err != nil {
			return err
		}
		if err := k.tokenKeeper.TransferFrom(ctx, msg.Path[0], types.RouterAddress, msg.Sender, pair, msg.AmountIn); err != nil {
			return err
		}
		if err := k.swapPathFeeOnTransfer(ctx, msg.Path, types.RouterAddress); err != nil {
			return err
		}
		amountOut := k.tokenKeeper.BalanceOf(ctx, wklay, types.RouterAddress)
		if amountOut.LT(msg.AmountOutMin) {
			return types.ErrInsufficientAmount.Wrap(types.ReasonRouterInsufficientOutput)
		}
		return k.unwrapTo(ctx, wklay, msg.To, amountOut)
	})
}
