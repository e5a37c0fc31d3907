package keeper_test

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	keepertest "github.com/TokeNest/TokeNest-SmartContract/testutil/keeper"
	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
	tokentypes "github.com/TokeNest/TokeNest-SmartContract/x/token/types"
)

const transferFeeBps = 100

// afterFee is what arrives from a transfer of amount of the fee token.
func afterFee(amount math.Int) math.Int {
	return amount.Sub(amount.MulRaw(transferFeeBps).QuoRaw(10000))
}

func (s *KeeperTestSuite) feeToken() sdk.AccAddress {
	return keepertest.CreateFeeOnTransferToken(s.T(), s.app, s.ctx, s.wallet, "DTT", ether(10000), transferFeeBps)
}

// seedFeeTokenPair adds 1 DTT and 4 native coins of liquidity and returns the
// pair address and the shares minted.
func (s *KeeperTestSuite) seedFeeTokenPair(dtt sdk.AccAddress) (sdk.AccAddress, math.Int) {
	resp := s.seedKLAYPair(dtt, ether(1), ether(4))
	pairAddr, ok := s.keeper.GetPair(s.ctx, dtt, s.wklay())
	s.Require().True(ok)
	s.Require().Equal(afterFee(ether(1)).String(), s.balance(dtt, pairAddr).String())
	return pairAddr, resp.Liquidity
}

// expectedWithdrawal returns the pair balances of tokenA and tokenB that
// liquidity shares redeem.
func (s *KeeperTestSuite) expectedWithdrawal(pairAddr, tokenA, tokenB sdk.AccAddress, liquidity math.Int) (math.Int, math.Int) {
	supply, err := s.keeper.LPTotalSupply(s.ctx, pairAddr)
	s.Require().NoError(err)
	amountA := liquidity.Mul(s.balance(tokenA, pairAddr)).Quo(supply)
	amountB := liquidity.Mul(s.balance(tokenB, pairAddr)).Quo(supply)
	return amountA, amountB
}

func (s *KeeperTestSuite) TestFeeOnTransferRemoveLiquidityKLAY() {
	dtt := s.feeToken()
	pairAddr, liquidity := s.seedFeeTokenPair(dtt)
	wklay := s.wklay()
	s.approveRouterLP(pairAddr)
	amountToken, amountKLAY := s.expectedWithdrawal(pairAddr, dtt, wklay, liquidity)
	startToken, startNative := s.balance(dtt, s.wallet), s.native(s.wallet)

	// the router receives less than the pair paid and cannot forward the full amount
	_, err := s.keeper.RemoveLiquidityKLAY(s.ctx, s.removeKLAYMsg(dtt, liquidity))
	s.Require().ErrorIs(err, tokentypes.ErrInsufficientBalance)
	s.Require().Equal(liquidity.String(), s.keeper.LPBalanceOf(s.ctx, pairAddr, s.wallet).String())

	paid, err := s.keeper.RemoveLiquidityKLAYSupportingFeeOnTransferTokens(s.ctx, s.removeKLAYMsg(dtt, liquidity))
	s.Require().NoError(err)
	s.Require().Equal(amountKLAY.String(), paid.String())
	s.Require().Equal(startToken.Add(afterFee(afterFee(amountToken))).String(), s.balance(dtt, s.wallet).String())
	s.Require().Equal(startNative.Add(amountKLAY).String(), s.native(s.wallet).String())
	s.Require().True(s.keeper.LPBalanceOf(s.ctx, pairAddr, s.wallet).IsZero())
	s.requireRouterEmpty(dtt, wklay)
}

func (s *KeeperTestSuite) TestFeeOnTransferRemoveLiquidityKLAYWithPermit() {
	dtt := s.feeToken()
	pairAddr, liquidity := s.seedFeeTokenPair(dtt)
	wklay := s.wklay()
	amountToken, amountKLAY := s.expectedWithdrawal(pairAddr, dtt, wklay, liquidity)
	startToken := s.balance(dtt, s.wallet)
	deadline := uint64(keepertest.TestBlockTime.Unix() + 3600)

	msg := s.removeKLAYMsg(dtt, liquidity)
	msg.Deadline = deadline
	paid, err := s.keeper.RemoveLiquidityKLAYWithPermitSupportingFeeOnTransferTokens(s.ctx, types.MsgRemoveLiquidityKLAYWithPermit{
		MsgRemoveLiquidityKLAY: msg,
		Permit:                 s.permitSignature(pairAddr, liquidity, deadline, true),
	})
	s.Require().NoError(err)
	s.Require().Equal(amountKLAY.String(), paid.String())
	s.Require().Equal(startToken.Add(afterFee(afterFee(amountToken))).String(), s.balance(dtt, s.wallet).String())
	s.Require().Equal(types.MaxUint256.String(), s.keeper.LPAllowance(s.ctx, pairAddr, s.wallet, types.RouterAddress).String())
	s.requireRouterEmpty(dtt, wklay)
}

func (s *KeeperTestSuite) TestFeeOnTransferSwapExactTokensForKLAY() {
	dtt := s.feeToken()
	s.seedFeeTokenPair(dtt)
	wklay := s.wklay()
	reserves := s.reservesOf(dtt, wklay)
	startNative := s.native(s.wallet)

	msg := types.MsgSwapExactTokensForTokens{
		Sender:       s.wallet,
		AmountIn:     ether(1),
		AmountOutMin: math.ZeroInt(),
		Path:         []sdk.AccAddress{dtt, wklay},
		To:           s.wallet,
		Deadline:     types.NoDeadline,
	}
	_, err := s.keeper.SwapExactTokensForKLAY(s.ctx, msg)
	s.requireErrorReason(err, types.ErrInsufficientAmount, types.ReasonK)

	expectedOut, err := types.GetAmountOut(afterFee(ether(1)), reserves.In, reserves.Out)
	s.Require().NoError(err)

	msg.AmountOutMin = expectedOut.AddRaw(1)
	err = s.keeper.SwapExactTokensForKLAYSupportingFeeOnTransferTokens(s.ctx, msg)
	s.requireErrorReason(err, types.ErrInsufficientAmount, types.ReasonRouterInsufficientOutput)

	msg.AmountOutMin = expectedOut
	s.Require().NoError(s.keeper.SwapExactTokensForKLAYSupportingFeeOnTransferTokens(s.ctx, msg))
	s.Require().Equal(startNative.Add(expectedOut).String(), s.native(s.wallet).String())
	s.requireRouterEmpty(dtt, wklay)
}

func (s *KeeperTestSuite) TestFeeOnTransferSwapExactKLAYForTokens() {
	dtt := s.feeToken()
	s.seedFeeTokenPair(dtt)
	wklay := s.wklay()
	reserves := s.reservesOf(wklay, dtt)
	startToken := s.balance(dtt, s.wallet)

	grossOut, err := types.GetAmountOut(ether(1), reserves.In, reserves.Out)
	s.Require().NoError(err)
	netOut := afterFee(grossOut)

	msg := types.MsgSwapExactKLAYForTokens{
		Sender:       s.wallet,
		Value:        ether(1),
		AmountOutMin: grossOut,
		Path:         []sdk.AccAddress{wklay, dtt},
		To:           s.wallet,
		Deadline:     types.NoDeadline,
	}
	err = s.keeper.SwapExactKLAYForTokensSupportingFeeOnTransferTokens(s.ctx, msg)
	s.requireErrorReason(err, types.ErrInsufficientAmount, types.ReasonRouterInsufficientOutput)

	msg.AmountOutMin = netOut
	s.Require().NoError(s.keeper.SwapExactKLAYForTokensSupportingFeeOnTransferTokens(s.ctx, msg))
	s.Require().Equal(startToken.Add(netOut).String(), s.balance(dtt, s.wallet).String())
	s.requireRouterEmpty(dtt, wklay)
}

func (s *KeeperTestSuite) TestFeeOnTransferSwapExactTokensForTokens() {
	dtt := s.feeToken()
	s.addRouterLiquidity(dtt, s.tokenB, ether(1), ether(1))
	reserves := s.reservesOf(dtt, s.tokenB)
	s.Require().Equal(afterFee(ether(1)).String(), reserves.In.String())
	startB := s.balance(s.tokenB, s.wallet)

	msg := types.MsgSwapExactTokensForTokens{
		Sender:       s.wallet,
		AmountIn:     ether(1).QuoRaw(10),
		AmountOutMin: math.ZeroInt(),
		Path:         []sdk.AccAddress{dtt, s.tokenB},
		To:           s.wallet,
		Deadline:     types.NoDeadline,
	}
	_, err := s.keeper.SwapExactTokensForTokens(s.ctx, msg)
	s.requireErrorReason(err, types.ErrInsufficientAmount, types.ReasonK)

	expectedOut, err := types.GetAmountOut(afterFee(msg.AmountIn), reserves.In, reserves.Out)
	s.Require().NoError(err)
	s.Require().NoError(s.keeper.SwapExactTokensForTokensSupportingFeeOnTransferTokens(s.ctx, msg))
	s.Require().Equal(startB.Add(expectedOut).String(), s.balance(s.tokenB, s.wallet).String())
	s.requireRouterEmpty(dtt, s.tokenB)
}
