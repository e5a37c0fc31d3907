package keeper_test

import (
	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"

	keepertest "github.com/TokeNest/TokeNest-SmartContract/testutil/keeper"
	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

func (s *KeeperTestSuite) approveRouter(tokens ...sdk.AccAddress) {
	keepertest.ApproveRouter(s.T(), s.app, s.ctx, s.wallet, tokens...)
}

// reservesOf returns the reserves of the tokenA/tokenB pair ordered as the
// arguments.
func (s *KeeperTestSuite) reservesOf(tokenA, tokenB sdk.AccAddress) types.Reserves {
	addr, ok := s.keeper.GetPair(s.ctx, tokenA, tokenB)
	s.Require().True(ok)
	return s.pair(addr).ReservesFor(tokenA)
}

// requireRouterEmpty checks the router kept nothing between calls.
func (s *KeeperTestSuite) requireRouterEmpty(tokens ...sdk.AccAddress) {
	for _, token := range tokens {
		s.Require().True(s.balance(token, types.RouterAddress).IsZero(), "router holds %s", token)
	}
	s.Require().True(keepertest.NativeBalance(s.T(), s.app, s.ctx, types.RouterAddress).IsZero(), "router holds native coins")
}

func (s *KeeperTestSuite) addRouterLiquidity(tokenA, tokenB sdk.AccAddress, amountA, amountB math.Int) *types.MsgAddLiquidityResponse {
	s.approveRouter(tokenA, tokenB)
	resp, err := s.keeper.AddLiquidity(s.ctx, types.MsgAddLiquidity{
		Sender:         s.wallet,
		TokenA:         tokenA,
		TokenB:         tokenB,
		AmountADesired: amountA,
		AmountBDesired: amountB,
		AmountAMin:     math.ZeroInt(),
		AmountBMin:     math.ZeroInt(),
		To:             s.wallet,
		Deadline:       types.NoDeadline,
	})
	s.Require().NoError(err)
	return resp
}

func (s *KeeperTestSuite) TestRouterLibraryPassThrough() {
	out, err := s.keeper.Quote(math.NewInt(1), math.NewInt(100), math.NewInt(200))
	s.Require().NoError(err)
	s.Require().Equal(int64(2), out.Int64())
	out, err = s.keeper.Quote(math.NewInt(2), math.NewInt(200), math.NewInt(100))
	s.Require().NoError(err)
	s.Require().Equal(int64(1), out.Int64())

	out, err = s.keeper.GetAmountOut(math.NewInt(2), math.NewInt(100), math.NewInt(100))
	s.Require().NoError(err)
	s.Require().Equal(int64(1), out.Int64())
	out, err = s.keeper.GetAmountIn(math.NewInt(1), math.NewInt(100), math.NewInt(100))
	s.Require().NoError(err)
	s.Require().Equal(int64(2), out.Int64())

	_, err = s.keeper.Quote(math.ZeroInt(), math.NewInt(100), math.NewInt(200))
	s.requireErrorReason(err, types.ErrInsufficientAmount, types.ReasonLibraryInsufficientAmount)
	_, err = s.keeper.GetAmountOut(math.NewInt(2), math.ZeroInt(), math.NewInt(100))
	s.requireErrorReason(err, types.ErrInsufficientLiquidity, types.ReasonLibraryInsufficientLiq)
	_, err = s.keeper.GetAmountIn(math.ZeroInt(), math.NewInt(100), math.NewInt(100))
	s.requireErrorReason(err, types.ErrInsufficientOutputAmount, types.ReasonLibraryInsufficientOutput)
}

func (s *KeeperTestSuite) TestRouterGetAmounts() {
	s.addRouterLiquidity(s.tokenA, s.tokenB, math.NewInt(10000), math.NewInt(10000))
	path := []sdk.AccAddress{s.tokenA, s.tokenB}

	amounts, err := s.keeper.GetAmountsOut(s.ctx, math.NewInt(2), path)
	s.Require().NoError(err)
	s.Require().Equal([]string{"2", "1"}, intStrings(amounts))

	amounts, err = s.keeper.GetAmountsIn(s.ctx, math.NewInt(1), path)
	s.Require().NoError(err)
	s.Require().Equal([]string{"2", "1"}, intStrings(amounts))

	_, err = s.keeper.GetAmountsOut(s.ctx, math.NewInt(2), path[:1])
	s.requireErrorReason(err, types.ErrInvalidPath, types.ReasonLibraryInvalidPath)
	_, err = s.keeper.GetAmountsIn(s.ctx, math.NewInt(1), path[:1])
	s.requireErrorReason(err, types.ErrInvalidPath, types.ReasonLibraryInvalidPath)

	_, err = s.keeper.GetAmountsOut(s.ctx, math.NewInt(2), []sdk.AccAddress{s.tokenA, s.accs[2].Address})
	s.Require().ErrorIs(err, types.ErrPairNotFound)
}

func intStrings(xs []math.Int) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		out[i] = x.String()
	}
	return out
}

func (s *KeeperTestSuite) TestRouterAddLiquidity() {
	startA, startB := s.balance(s.tokenA, s.wallet), s.balance(s.tokenB, s.wallet)

	s.resetEvents()
	resp := s.addRouterLiquidity(s.tokenA, s.tokenB, ether(1), ether(4))
	s.Require().Equal(ether(1).String(), resp.AmountA.String())
	s.Require().Equal(ether(4).String(), resp.AmountB.String())
	s.Require().Equal(expectedLiquidity(ether(2)).String(), resp.Liquidity.String())

	// the router created the missing pair
	s.Require().Equal(types.RouterAddress.String(), s.lastEvent(types.EventTypePairCreated)[types.AttributeKeySender])
	pairAddr, ok := s.keeper.GetPair(s.ctx, s.tokenA, s.tokenB)
	s.Require().True(ok)

	s.Require().Equal(resp.Liquidity.String(), s.keeper.LPBalanceOf(s.ctx, pairAddr, s.wallet).String())
	reserves := s.reservesOf(s.tokenA, s.tokenB)
	s.Require().Equal(ether(1).String(), reserves.In.String())
	s.Require().Equal(ether(4).String(), reserves.Out.String())
	s.Require().Equal(startA.Sub(ether(1)).String(), s.balance(s.tokenA, s.wallet).String())
	s.Require().Equal(startB.Sub(ether(4)).String(), s.balance(s.tokenB, s.wallet).String())
	s.requireRouterEmpty(s.tokenA, s.tokenB)
}

func (s *KeeperTestSuite) TestRouterAddLiquidityKeepsRatio() {
	s.addRouterLiquidity(s.tokenA, s.tokenB, ether(1), ether(4))

	// B is capped at the quote of A
	resp := s.addRouterLiquidity(s.tokenA, s.tokenB, ether(1), ether(8))
	s.Require().Equal(ether(1).String(), resp.AmountA.String())
	s.Require().Equal(ether(4).String(), resp.AmountB.String())
	s.Require().Equal(ether(2).String(), resp.Liquidity.String())

	// A is capped at the quote of B
	resp = s.addRouterLiquidity(s.tokenA, s.tokenB, ether(2), ether(4))
	s.Require().Equal(ether(1).String(), resp.AmountA.String())
	s.Require().Equal(ether(4).String(), resp.AmountB.String())

	// the reversed argument order is quoted against the same reserves
	resp = s.addRouterLiquidity(s.tokenB, s.tokenA, ether(4), ether(1))
	s.Require().Equal(ether(4).String(), resp.AmountA.String())
	s.Require().Equal(ether(1).String(), resp.AmountB.String())
}

func (s *KeeperTestSuite) TestRouterAddLiquidityMinimums() {
	s.addRouterLiquidity(s.tokenA, s.tokenB, ether(1), ether(4))
	msg := types.MsgAddLiquidity{
		Sender:         s.wallet,
		TokenA:         s.tokenA,
		TokenB:         s.tokenB,
		AmountADesired: ether(1),
		AmountBDesired: ether(8),
		AmountAMin:     math.ZeroInt(),
		AmountBMin:     ether(5),
		To:             s.wallet,
		Deadline:       types.NoDeadline,
	}
	_, err := s.keeper.AddLiquidity(s.ctx, msg)
	s.requireErrorReason(err, types.ErrInsufficientAmount, types.ReasonRouterInsufficientB)

	msg.AmountADesired, msg.AmountBDesired = ether(2), ether(4)
	msg.AmountAMin, msg.AmountBMin = ether(2), math.ZeroInt()
	_, err = s.keeper.AddLiquidity(s.ctx, msg)
	s.requireErrorReason(err, types.ErrInsufficientAmount, types.ReasonRouterInsufficientA)

	msg.AmountAMin = math.ZeroInt()
	msg.To = types.ZeroAddress
	_, err = s.keeper.AddLiquidity(s.ctx, msg)
	s.requireErrorReason(err, types.ErrInvalidAddressParameters, types.ReasonRouterRecipientZero)

	reserves := s.reservesOf(s.tokenA, s.tokenB)
	s.Require().Equal(ether(1).String(), reserves.In.String())
	s.requireRouterEmpty(s.tokenA, s.tokenB)
}

func (s *KeeperTestSuite) TestRouterAddLiquidityWithoutApproval() {
	_, err := s.keeper.AddLiquidity(s.ctx, types.MsgAddLiquidity{
		Sender:         s.wallet,
		TokenA:         s.tokenA,
		TokenB:         s.tokenB,
		AmountADesired: ether(1),
		AmountBDesired: ether(4),
		AmountAMin:     math.ZeroInt(),
		AmountBMin:     math.ZeroInt(),
		To:             s.wallet,
		Deadline:       types.NoDeadline,
	})
	s.Require().Error(err)

	// the pair created on the way is rolled back with the call
	_, ok := s.keeper.GetPair(s.ctx, s.tokenA, s.tokenB)
	s.Require().False(ok)
	s.Require().Zero(s.keeper.AllPairsLength(s.ctx))
}

func (s *KeeperTestSuite) TestRouterDeadline() {
	s.approveRouter(s.tokenA, s.tokenB)
	now := uint64(keepertest.TestBlockTime.Unix())
	msg := types.MsgAddLiquidity{
		Sender:         s.wallet,
		TokenA:         s.tokenA,
		TokenB:         s.tokenB,
		AmountADesired: ether(1),
		AmountBDesired: ether(4),
		AmountAMin:     math.ZeroInt(),
		AmountBMin:     math.ZeroInt(),
		To:             s.wallet,
		Deadline:       now - 1,
	}
	_, err := s.keeper.AddLiquidity(s.ctx, msg)
	s.requireErrorReason(err, types.ErrExpired, types.ReasonRouterExpired)

	_, err = s.keeper.SwapExactTokensForTokens(s.ctx, types.MsgSwapExactTokensForTokens{
		Sender:       s.wallet,
		AmountIn:     ether(1),
		AmountOutMin: math.ZeroInt(),
		Path:         []sdk.AccAddress{s.tokenA, s.tokenB},
		To:           s.wallet,
		Deadline:     now - 1,
	})
	s.requireErrorReason(err, types.ErrExpired, types.ReasonRouterExpired)

	// a deadline equal to the block time is still valid
	msg.Deadline = now
	_, err = s.keeper.AddLiquidity(s.ctx, msg)
	s.Require().NoError(err)
}

func (s *KeeperTestSuite) approveRouterLP(pairAddr sdk.AccAddress) {
	s.Require().NoError(s.keeper.LPApprove(s.ctx, pairAddr, s.wallet, types.RouterAddress, types.MaxUint256))
}

func (s *KeeperTestSuite) TestRouterRemoveLiquidity() {
	resp := s.addRouterLiquidity(s.tokenA, s.tokenB, ether(1), ether(4))
	pairAddr, _ := s.keeper.GetPair(s.ctx, s.tokenA, s.tokenB)
	startA, startB := s.balance(s.tokenA, s.wallet), s.balance(s.tokenB, s.wallet)

	msg := types.MsgRemoveLiquidity{
		Sender:     s.wallet,
		TokenA:     s.tokenA,
		TokenB:     s.tokenB,
		Liquidity:  resp.Liquidity,
		AmountAMin: math.ZeroInt(),
		AmountBMin: math.ZeroInt(),
		To:         s.wallet,
		Deadline:   types.NoDeadline,
	}

	_, err := s.keeper.RemoveLiquidity(s.ctx, msg)
	s.requireErrorReason(err, types.ErrInsufficientAllowance, types.ReasonInsufficientLPAllowance)

	s.approveRouterLP(pairAddr)
	msg.AmountAMin = ether(1)
	_, err = s.keeper.RemoveLiquidity(s.ctx, msg)
	s.requireErrorReason(err, types.ErrInsufficientAmount, types.ReasonRouterInsufficientA)
	msg.AmountAMin, msg.AmountBMin = math.ZeroInt(), ether(4)
	_, err = s.keeper.RemoveLiquidity(s.ctx, msg)
	s.requireErrorReason(err, types.ErrInsufficientAmount, types.ReasonRouterInsufficientB)
	s.Require().Equal(resp.Liquidity.String(), s.keeper.LPBalanceOf(s.ctx, pairAddr, s.wallet).String())

	msg.AmountBMin = math.ZeroInt()
	out, err := s.keeper.RemoveLiquidity(s.ctx, msg)
	s.Require().NoError(err)
	s.Require().Equal(ether(1).SubRaw(500).String(), out.AmountA.String())
	s.Require().Equal(ether(4).SubRaw(2000).String(), out.AmountB.String())

	s.Require().True(s.keeper.LPBalanceOf(s.ctx, pairAddr, s.wallet).IsZero())
	s.Require().Equal(startA.Add(out.AmountA).String(), s.balance(s.tokenA, s.wallet).String())
	s.Require().Equal(startB.Add(out.AmountB).String(), s.balance(s.tokenB, s.wallet).String())
	reserves := s.reservesOf(s.tokenA, s.tokenB)
	s.Require().Equal("500", reserves.In.String())
	s.Require().Equal("2000", reserves.Out.String())
	s.requireRouterEmpty(s.tokenA, s.tokenB)
}

func (s *KeeperTestSuite) permitSignature(pairAddr sdk.AccAddress, value math.Int, deadline uint64, approveMax bool) types.PermitSignature {
	owner := s.accs[0]
	signed := value
	if approveMax {
		signed = types.MaxUint256
	}
	nonce := s.keeper.LPNonce(s.ctx, pairAddr, owner.Address)
	return types.PermitSignature{
		ApproveMax: approveMax,
		PubKey:     owner.PrivKey.PubKey().(*secp256k1.PubKey),
		Signature:  s.signPermit(s.ctx, owner, pairAddr, types.RouterAddress, signed, nonce, deadline),
	}
}

func (s *KeeperTestSuite) TestRouterRemoveLiquidityWithPermit() {
	for _, tc := range []struct {
		name       string
		approveMax bool
	}{
		{"exact allowance", false},
		{"approve max", true},
	} {
		approveMax := tc.approveMax
		s.Run(tc.name, func() {
			s.SetupTest()
			resp := s.addRouterLiquidity(s.tokenA, s.tokenB, ether(1), ether(4))
			pairAddr, _ := s.keeper.GetPair(s.ctx, s.tokenA, s.tokenB)
			deadline := uint64(keepertest.TestBlockTime.Unix() + 3600)

			msg := types.MsgRemoveLiquidityWithPermit{
				MsgRemoveLiquidity: types.MsgRemoveLiquidity{
					Sender:     s.wallet,
					TokenA:     s.tokenA,
					TokenB:     s.tokenB,
					Liquidity:  resp.Liquidity,
					AmountAMin: math.ZeroInt(),
					AmountBMin: math.ZeroInt(),
					To:         s.wallet,
					Deadline:   deadline,
				},
				Permit: s.permitSignature(pairAddr, resp.Liquidity, deadline, approveMax),
			}
			out, err := s.keeper.RemoveLiquidityWithPermit(s.ctx, msg)
			s.Require().NoError(err)
			s.Require().Equal(ether(1).SubRaw(500).String(), out.AmountA.String())
			s.Require().Equal(ether(4).SubRaw(2000).String(), out.AmountB.String())
			s.Require().Equal(uint64(1), s.keeper.LPNonce(s.ctx, pairAddr, s.wallet))

			allowance := s.keeper.LPAllowance(s.ctx, pairAddr, s.wallet, types.RouterAddress)
			if approveMax {
				s.Require().Equal(types.MaxUint256.String(), allowance.String())
			} else {
				s.Require().True(allowance.IsZero())
			}

			// replaying the permit fails on the consumed nonce
			_, err = s.keeper.RemoveLiquidityWithPermit(s.ctx, msg)
			s.requireErrorReason(err, types.ErrInvalidSignature, types.ReasonInvalidSignature)
		})
	}
}

func (s *KeeperTestSuite) TestRouterRemoveLiquidityWithPermitRollsBack() {
	resp := s.addRouterLiquidity(s.tokenA, s.tokenB, ether(1), ether(4))
	pairAddr, _ := s.keeper.GetPair(s.ctx, s.tokenA, s.tokenB)
	deadline := uint64(keepertest.TestBlockTime.Unix() + 3600)

	_, err := s.keeper.RemoveLiquidityWithPermit(s.ctx, types.MsgRemoveLiquidityWithPermit{
		MsgRemoveLiquidity: types.MsgRemoveLiquidity{
			Sender:     s.wallet,
			TokenA:     s.tokenA,
			TokenB:     s.tokenB,
			Liquidity:  resp.Liquidity,
			AmountAMin: ether(1),
			AmountBMin: math.ZeroInt(),
			To:         s.wallet,
			Deadline:   deadline,
		},
		Permit: s.permitSignature(pairAddr, resp.Liquidity, deadline, false),
	})
	s.requireErrorReason(err, types.ErrInsufficientAmount, types.ReasonRouterInsufficientA)

	// the permit is undone with the failed withdrawal
	s.Require().Zero(s.keeper.LPNonce(s.ctx, pairAddr, s.wallet))
	s.Require().True(s.keeper.LPAllowance(s.ctx, pairAddr, s.wallet, types.RouterAddress).IsZero())
}

func (s *KeeperTestSuite) TestRouterSwapExactTokensForTokens() {
	s.addRouterLiquidity(s.tokenA, s.tokenB, ether(5), ether(10))
	startA, startB := s.balance(s.tokenA, s.wallet), s.balance(s.tokenB, s.wallet)
	expectedOut := mustInt("1662497915624478906")

	msg := types.MsgSwapExactTokensForTokens{
		Sender:       s.wallet,
		AmountIn:     ether(1),
		AmountOutMin: expectedOut.AddRaw(1),
		Path:         []sdk.AccAddress{s.tokenA, s.tokenB},
		To:           s.wallet,
		Deadline:     types.NoDeadline,
	}
	_, err := s.keeper.SwapExactTokensForTokens(s.ctx, msg)
	s.requireErrorReason(err, types.ErrInsufficientAmount, types.ReasonRouterInsufficientOutput)

	msg.AmountOutMin = expectedOut
	s.resetEvents()
	resp, err := s.keeper.SwapExactTokensForTokens(s.ctx, msg)
	s.Require().NoError(err)
	s.Require().Equal([]string{ether(1).String(), expectedOut.String()}, intStrings(resp.Amounts))
	s.Require().Equal(types.RouterAddress.String(), s.lastEvent(types.EventTypeSwap)[types.AttributeKeySender])

	s.Require().Equal(startA.Sub(ether(1)).String(), s.balance(s.tokenA, s.wallet).String())
	s.Require().Equal(startB.Add(expectedOut).String(), s.balance(s.tokenB, s.wallet).String())
	reserves := s.reservesOf(s.tokenA, s.tokenB)
	s.Require().Equal(ether(6).String(), reserves.In.String())
	s.Require().Equal(ether(10).Sub(expectedOut).String(), reserves.Out.String())
	s.requireRouterEmpty(s.tokenA, s.tokenB)
}

func (s *KeeperTestSuite) TestRouterSwapTokensForExactTokens() {
	s.addRouterLiquidity(s.tokenA, s.tokenB, ether(5), ether(10))
	startA, startB := s.balance(s.tokenA, s.wallet), s.balance(s.tokenB, s.wallet)
	expectedIn := mustInt("557227237267357629")

	msg := types.MsgSwapTokensForExactTokens{
		Sender:      s.wallet,
		AmountOut:   ether(1),
		AmountInMax: expectedIn.SubRaw(1),
		Path:        []sdk.AccAddress{s.tokenA, s.tokenB},
		To:          s.wallet,
		Deadline:    types.NoDeadline,
	}
	_, err := s.keeper.SwapTokensForExactTokens(s.ctx, msg)
	s.requireErrorReason(err, types.ErrExcessiveInputAmount, types.ReasonRouterExcessiveInput)

	msg.AmountInMax = expectedIn
	resp, err := s.keeper.SwapTokensForExactTokens(s.ctx, msg)
	s.Require().NoError(err)
	s.Require().Equal([]string{expectedIn.String(), ether(1).String()}, intStrings(resp.Amounts))
	s.Require().Equal(startA.Sub(expectedIn).String(), s.balance(s.tokenA, s.wallet).String())
	s.Require().Equal(startB.Add(ether(1)).String(), s.balance(s.tokenB, s.wallet).String())
	s.requireRouterEmpty(s.tokenA, s.tokenB)
}

func (s *KeeperTestSuite) TestRouterMultiHopSwap() {
	tokenC := keepertest.CreateTestToken(s.T(), s.app, s.ctx, s.wallet, "TKC", keepertest.Ether(10000))
	s.addRouterLiquidity(s.tokenA, s.tokenB, ether(100), ether(200))
	s.addRouterLiquidity(s.tokenB, tokenC, ether(300), ether(100))
	path := []sdk.AccAddress{s.tokenA, s.tokenB, tokenC}

	expected, err := s.keeper.GetAmountsOut(s.ctx, ether(1), path)
	s.Require().NoError(err)
	hop1, err := types.GetAmountOut(ether(1), ether(100), ether(200))
	s.Require().NoError(err)
	hop2, err := types.GetAmountOut(hop1, ether(300), ether(100))
	s.Require().NoError(err)
	s.Require().Equal([]string{ether(1).String(), hop1.String(), hop2.String()}, intStrings(expected))

	startC := s.balance(tokenC, s.wallet)
	resp, err := s.keeper.SwapExactTokensForTokens(s.ctx, types.MsgSwapExactTokensForTokens{
		Sender:       s.wallet,
		AmountIn:     ether(1),
		AmountOutMin: hop2,
		Path:         path,
		To:           s.wallet,
		Deadline:     types.NoDeadline,
	})
	s.Require().NoError(err)
	s.Require().Equal(intStrings(expected), intStrings(resp.Amounts))
	s.Require().Equal(startC.Add(hop2).String(), s.balance(tokenC, s.wallet).String())

	// the intermediate token went pair to pair
	ab := s.reservesOf(s.tokenB, s.tokenA)
	s.Require().Equal(ether(200).Sub(hop1).String(), ab.In.String())
	bc := s.reservesOf(s.tokenB, tokenC)
	s.Require().Equal(ether(300).Add(hop1).String(), bc.In.String())

	// exact output over the same path
	want := ether(1)
	amountsIn, err := s.keeper.GetAmountsIn(s.ctx, want, path)
	s.Require().NoError(err)
	resp, err = s.keeper.SwapTokensForExactTokens(s.ctx, types.MsgSwapTokensForExactTokens{
		Sender:      s.wallet,
		AmountOut:   want,
		AmountInMax: amountsIn[0],
		Path:        path,
		To:          s.other,
		Deadline:    types.NoDeadline,
	})
	s.Require().NoError(err)
	s.Require().Equal(intStrings(amountsIn), intStrings(resp.Amounts))
	s.Require().Equal(want.String(), s.balance(tokenC, s.other).String())
	s.requireRouterEmpty(s.tokenA, s.tokenB, tokenC)
}

func (s *KeeperTestSuite) TestRouterSwapPathErrors() {
	s.addRouterLiquidity(s.tokenA, s.tokenB, ether(5), ether(10))
	msg := types.MsgSwapExactTokensForTokens{
		Sender:       s.wallet,
		AmountIn:     ether(1),
		AmountOutMin: math.ZeroInt(),
		Path:         []sdk.AccAddress{s.tokenA},
		To:           s.wallet,
		Deadline:     types.NoDeadline,
	}
	_, err := s.keeper.SwapExactTokensForTokens(s.ctx, msg)
	s.requireErrorReason(err, types.ErrInvalidPath, types.ReasonLibraryInvalidPath)

	msg.Path = []sdk.AccAddress{s.tokenA, s.accs[2].Address}
	_, err = s.keeper.SwapExactTokensForTokens(s.ctx, msg)
	s.Require().ErrorIs(err, types.ErrPairNotFound)

	msg.Path = []sdk.AccAddress{s.tokenA, s.tokenB}
	msg.To = types.ZeroAddress
	_, err = s.keeper.SwapExactTokensForTokens(s.ctx, msg)
	s.requireErrorReason(err, types.ErrInvalidAddressParameters, types.ReasonRouterSwapToZero)

	reserves := s.reservesOf(s.tokenA, s.tokenB)
	s.Require().Equal(ether(5).String(), reserves.In.String())
}
