package keeper_test

import (
	"context"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	keepertest "github.com/TokeNest/TokeNest-SmartContract/testutil/keeper"
	"github.com/TokeNest/TokeNest-SmartContract/x/dex/keeper"
	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

var ether = keepertest.Ether

func (s *KeeperTestSuite) TestMint() {
	pair := s.createPair()
	token0Amount, token1Amount := ether(1), ether(4)

	s.transfer(pair.Token0, pair.Address, token0Amount)
	s.transfer(pair.Token1, pair.Address, token1Amount)

	s.resetEvents()
	liquidity, err := s.keeper.Mint(s.ctx, s.wallet, pair.Address, s.wallet)
	s.Require().NoError(err)

	total := ether(2)
	s.Require().Equal(expectedLiquidity(total).String(), liquidity.String())

	ev := s.lastEvent(types.EventTypeMint)
	s.Require().Equal(s.wallet.String(), ev[types.AttributeKeySender])
	s.Require().Equal(token0Amount.String(), ev[types.AttributeKeyAmount0])
	s.Require().Equal(token1Amount.String(), ev[types.AttributeKeyAmount1])
	sync := s.lastEvent(types.EventTypeSync)
	s.Require().Equal(token0Amount.String(), sync[types.AttributeKeyReserve0])
	s.Require().Equal(token1Amount.String(), sync[types.AttributeKeyReserve1])
	s.Require().Equal(2, s.countEvents(types.EventTypeTransfer))

	supply, err := s.keeper.LPTotalSupply(s.ctx, pair.Address)
	s.Require().NoError(err)
	s.Require().Equal(total.String(), supply.String())
	s.Require().Equal(expectedLiquidity(total).String(), s.keeper.LPBalanceOf(s.ctx, pair.Address, s.wallet).String())
	s.Require().Equal(int64(types.MinimumLiquidity), s.keeper.LPBalanceOf(s.ctx, pair.Address, types.ZeroAddress).Int64())

	s.Require().Equal(token0Amount.String(), s.balance(pair.Token0, pair.Address).String())
	s.Require().Equal(token1Amount.String(), s.balance(pair.Token1, pair.Address).String())
	s.requireReserves(pair.Address, token0Amount, token1Amount)

	_, _, ts, err := s.keeper.GetReserves(s.ctx, pair.Address)
	s.Require().NoError(err)
	s.Require().Equal(uint32(keepertest.TestBlockTime.Unix()), ts)
}

func (s *KeeperTestSuite) TestMintProportional() {
	pair := s.createPair()
	s.addLiquidity(pair, ether(1), ether(4))

	// the smaller ratio sets the shares; the excess of token1 is donated
	liquidity := s.addLiquidity(pair, ether(1), ether(8))
	s.Require().Equal(ether(2).String(), liquidity.String())
	s.requireReserves(pair.Address, ether(2), ether(12))
}

func (s *KeeperTestSuite) TestMintInsufficientLiquidity() {
	pair := s.createPair()
	s.transfer(pair.Token0, pair.Address, math.NewInt(1000))
	s.transfer(pair.Token1, pair.Address, math.NewInt(1000))

	_, err := s.keeper.Mint(s.ctx, s.wallet, pair.Address, s.wallet)
	s.requireErrorReason(err, types.ErrInsufficientLiquidity, types.ReasonInsufficientLiquidityMint)

	// nothing of the failed mint is kept
	supply, err := s.keeper.LPTotalSupply(s.ctx, pair.Address)
	s.Require().NoError(err)
	s.Require().True(supply.IsZero())
	s.Require().True(s.keeper.LPBalanceOf(s.ctx, pair.Address, types.ZeroAddress).IsZero())
	s.requireReserves(pair.Address, math.ZeroInt(), math.ZeroInt())
	s.Require().False(s.keeper.IsPairLocked(s.ctx, pair.Address))
}

func (s *KeeperTestSuite) TestSwapInputPrice() {
	for _, tc := range []struct {
		swapAmount math.Int
		token0     math.Int
		token1     math.Int
		expected   string
	}{
		{ether(1), ether(5), ether(10), "1662497915624478906"},
		{ether(1), ether(10), ether(5), "453305446940074565"},
		{ether(2), ether(5), ether(10), "2851015155847869602"},
		{ether(2), ether(10), ether(5), "831248957812239453"},
		{ether(1), ether(10), ether(10), "906610893880149131"},
		{ether(1), ether(100), ether(100), "987158034397061298"},
		{ether(1), ether(1000), ether(1000), "996006981039903216"},
	} {
		s.Run(tc.expected, func() {
			s.SetupTest()
			pair := s.createPair()
			s.addLiquidity(pair, tc.token0, tc.token1)
			s.transfer(pair.Token0, pair.Address, tc.swapAmount)

			expected := mustInt(tc.expected)
			err := s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), expected.AddRaw(1), s.wallet, nil)
			s.requireErrorReason(err, types.ErrInsufficientAmount, types.ReasonK)

			s.Require().NoError(s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), expected, s.wallet, nil))

			// the amount out agrees with the library
			out, err := types.GetAmountOut(tc.swapAmount, tc.token0, tc.token1)
			s.Require().NoError(err)
			s.Require().Equal(tc.expected, out.String())
		})
	}
}

func (s *KeeperTestSuite) TestSwapOptimistic() {
	for _, tc := range []struct {
		name         string
		outputAmount math.Int
		token0       math.Int
		token1       math.Int
		inputAmount  math.Int
	}{
		{"5/10", mustInt("997000000000000000"), ether(5), ether(10), ether(1)},
		{"10/5", mustInt("997000000000000000"), ether(10), ether(5), ether(1)},
		{"5/5", mustInt("997000000000000000"), ether(5), ether(5), ether(1)},
		{"exact output", ether(1), ether(5), ether(5), mustInt("1003009027081243732")},
	} {
		s.Run(tc.name, func() {
			s.SetupTest()
			pair := s.createPair()
			s.addLiquidity(pair, tc.token0, tc.token1)
			s.transfer(pair.Token0, pair.Address, tc.inputAmount)

			err := s.keeper.Swap(s.ctx, s.wallet, pair.Address, tc.outputAmount.AddRaw(1), math.ZeroInt(), s.wallet, nil)
			s.requireErrorReason(err, types.ErrInsufficientAmount, types.ReasonK)

			s.Require().NoError(s.keeper.Swap(s.ctx, s.wallet, pair.Address, tc.outputAmount, math.ZeroInt(), s.wallet, nil))
		})
	}
}

func (s *KeeperTestSuite) TestSwapToken0() {
	pair := s.createPair()
	token0Amount, token1Amount := ether(5), ether(10)
	s.addLiquidity(pair, token0Amount, token1Amount)
	start0, start1 := s.balance(pair.Token0, s.wallet), s.balance(pair.Token1, s.wallet)

	swapAmount := ether(1)
	expectedOut := mustInt("1662497915624478906")
	s.transfer(pair.Token0, pair.Address, swapAmount)

	s.resetEvents()
	s.Require().NoError(s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), expectedOut, s.wallet, nil))

	ev := s.lastEvent(types.EventTypeSwap)
	s.Require().Equal(swapAmount.String(), ev[types.AttributeKeyAmount0In])
	s.Require().Equal("0", ev[types.AttributeKeyAmount1In])
	s.Require().Equal("0", ev[types.AttributeKeyAmount0Out])
	s.Require().Equal(expectedOut.String(), ev[types.AttributeKeyAmount1Out])
	s.Require().Equal(s.wallet.String(), ev[types.AttributeKeyTo])

	s.requireReserves(pair.Address, token0Amount.Add(swapAmount), token1Amount.Sub(expectedOut))
	s.Require().Equal(token0Amount.Add(swapAmount).String(), s.balance(pair.Token0, pair.Address).String())
	s.Require().Equal(token1Amount.Sub(expectedOut).String(), s.balance(pair.Token1, pair.Address).String())
	s.Require().Equal(start0.Sub(swapAmount).String(), s.balance(pair.Token0, s.wallet).String())
	s.Require().Equal(start1.Add(expectedOut).String(), s.balance(pair.Token1, s.wallet).String())
}

func (s *KeeperTestSuite) TestSwapToken1() {
	pair := s.createPair()
	token0Amount, token1Amount := ether(5), ether(10)
	s.addLiquidity(pair, token0Amount, token1Amount)
	start0, start1 := s.balance(pair.Token0, s.wallet), s.balance(pair.Token1, s.wallet)

	swapAmount := ether(1)
	expectedOut := mustInt("453305446940074565")
	s.transfer(pair.Token1, pair.Address, swapAmount)

	s.resetEvents()
	s.Require().NoError(s.keeper.Swap(s.ctx, s.wallet, pair.Address, expectedOut, math.ZeroInt(), s.wallet, nil))

	ev := s.lastEvent(types.EventTypeSwap)
	s.Require().Equal("0", ev[types.AttributeKeyAmount0In])
	s.Require().Equal(swapAmount.String(), ev[types.AttributeKeyAmount1In])
	s.Require().Equal(expectedOut.String(), ev[types.AttributeKeyAmount0Out])
	s.Require().Equal("0", ev[types.AttributeKeyAmount1Out])

	s.requireReserves(pair.Address, token0Amount.Sub(expectedOut), token1Amount.Add(swapAmount))
	s.Require().Equal(start0.Add(expectedOut).String(), s.balance(pair.Token0, s.wallet).String())
	s.Require().Equal(start1.Sub(swapAmount).String(), s.balance(pair.Token1, s.wallet).String())
}

func (s *KeeperTestSuite) TestSwapValidation() {
	pair := s.createPair()
	s.addLiquidity(pair, ether(5), ether(10))

	err := s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), math.ZeroInt(), s.wallet, nil)
	s.requireErrorReason(err, types.ErrInsufficientOutputAmount, types.ReasonInsufficientOutputAmount)

	err = s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.Int{}, math.Int{}, s.wallet, nil)
	s.requireErrorReason(err, types.ErrInsufficientOutputAmount, types.ReasonInsufficientOutputAmount)

	err = s.keeper.Swap(s.ctx, s.wallet, pair.Address, ether(5), math.ZeroInt(), s.wallet, nil)
	s.requireErrorReason(err, types.ErrInsufficientLiquidity, types.ReasonInsufficientLiquidity)

	err = s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), ether(11), s.wallet, nil)
	s.requireErrorReason(err, types.ErrInsufficientLiquidity, types.ReasonInsufficientLiquidity)

	err = s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), ether(1), pair.Token0, nil)
	s.requireErrorReason(err, types.ErrInvalidAddressParameters, types.ReasonInvalidTo)

	err = s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), ether(1), pair.Token1, nil)
	s.requireErrorReason(err, types.ErrInvalidAddressParameters, types.ReasonInvalidTo)

	err = s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), ether(1), s.wallet, nil)
	s.requireErrorReason(err, types.ErrInsufficientInputAmount, types.ReasonInsufficientInputAmount)

	s.requireReserves(pair.Address, ether(5), ether(10))
	s.Require().False(s.keeper.IsPairLocked(s.ctx, pair.Address))
}

func (s *KeeperTestSuite) TestBurn() {
	pair := s.createPair()
	amount := ether(3)
	s.addLiquidity(pair, amount, amount)
	start0, start1 := s.balance(pair.Token0, s.wallet), s.balance(pair.Token1, s.wallet)

	liquidity := expectedLiquidity(amount)
	s.Require().NoError(s.keeper.LPTransfer(s.ctx, pair.Address, s.wallet, pair.Address, liquidity))

	s.resetEvents()
	amount0, amount1, err := s.keeper.Burn(s.ctx, s.wallet, pair.Address, s.wallet)
	s.Require().NoError(err)
	s.Require().Equal(liquidity.String(), amount0.String())
	s.Require().Equal(liquidity.String(), amount1.String())

	ev := s.lastEvent(types.EventTypeBurn)
	s.Require().Equal(amount0.String(), ev[types.AttributeKeyAmount0])
	s.Require().Equal(amount1.String(), ev[types.AttributeKeyAmount1])
	s.Require().Equal(s.wallet.String(), ev[types.AttributeKeyTo])
	sync := s.lastEvent(types.EventTypeSync)
	s.Require().Equal("1000", sync[types.AttributeKeyReserve0])
	s.Require().Equal("1000", sync[types.AttributeKeyReserve1])

	s.Require().True(s.keeper.LPBalanceOf(s.ctx, pair.Address, s.wallet).IsZero())
	supply, err := s.keeper.LPTotalSupply(s.ctx, pair.Address)
	s.Require().NoError(err)
	s.Require().Equal(int64(types.MinimumLiquidity), supply.Int64())

	s.Require().Equal(int64(1000), s.balance(pair.Token0, pair.Address).Int64())
	s.Require().Equal(int64(1000), s.balance(pair.Token1, pair.Address).Int64())
	s.Require().Equal(start0.Add(liquidity).String(), s.balance(pair.Token0, s.wallet).String())
	s.Require().Equal(start1.Add(liquidity).String(), s.balance(pair.Token1, s.wallet).String())
}

func (s *KeeperTestSuite) TestBurnWithoutShares() {
	pair := s.createPair()

	_, _, err := s.keeper.Burn(s.ctx, s.wallet, pair.Address, s.wallet)
	s.requireErrorReason(err, types.ErrInsufficientLiquidity, types.ReasonInsufficientLiquidityBurn)

	s.addLiquidity(pair, ether(3), ether(3))
	_, _, err = s.keeper.Burn(s.ctx, s.wallet, pair.Address, s.wallet)
	s.requireErrorReason(err, types.ErrInsufficientLiquidity, types.ReasonInsufficientLiquidityBurn)
}

func (s *KeeperTestSuite) TestPriceCumulativeLast() {
	pair := s.createPair()
	amount := ether(3)
	s.addLiquidity(pair, amount, amount)
	start := keepertest.TestBlockTime

	at := func(d time.Duration) {
		s.ctx = s.ctx.WithBlockTime(start.Add(d))
	}

	at(time.Second)
	s.Require().NoError(s.keeper.Sync(s.ctx, pair.Address))

	initial0, initial1 := types.EncodePrice(amount, amount)
	s.requireCumulative(pair.Address, initial0, initial1)
	_, _, ts, err := s.keeper.GetReserves(s.ctx, pair.Address)
	s.Require().NoError(err)
	s.Require().Equal(uint32(start.Unix()+1), ts)

	at(10 * time.Second)
	s.transfer(pair.Token0, pair.Address, ether(3))
	s.Require().NoError(s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), ether(1), s.wallet, nil))
	s.requireCumulative(pair.Address, initial0.MulRaw(10), initial1.MulRaw(10))

	at(20 * time.Second)
	s.Require().NoError(s.keeper.Sync(s.ctx, pair.Address))
	next0, next1 := types.EncodePrice(ether(6), ether(2))
	s.requireCumulative(pair.Address, initial0.MulRaw(10).Add(next0.MulRaw(10)), initial1.MulRaw(10).Add(next1.MulRaw(10)))
}

func (s *KeeperTestSuite) requireCumulative(pairAddr sdk.AccAddress, price0, price1 math.Int) {
	got0, err := s.keeper.Price0CumulativeLast(s.ctx, pairAddr)
	s.Require().NoError(err)
	got1, err := s.keeper.Price1CumulativeLast(s.ctx, pairAddr)
	s.Require().NoError(err)
	s.Require().Equal(price0.String(), got0.String(), "price0CumulativeLast")
	s.Require().Equal(price1.String(), got1.String(), "price1CumulativeLast")
}

// swapAndBurnAll runs the protocol fee scenario: 1000/1000 liquidity, one
// swap of token1 for token0, then every provider share burnt.
func (s *KeeperTestSuite) swapAndBurnAll(pair types.Pair) {
	amount := ether(1000)
	s.addLiquidity(pair, amount, amount)

	swapAmount := ether(1)
	expectedOut := mustInt("996006981039903216")
	s.transfer(pair.Token1, pair.Address, swapAmount)
	s.Require().NoError(s.keeper.Swap(s.ctx, s.wallet, pair.Address, expectedOut, math.ZeroInt(), s.wallet, nil))

	s.Require().NoError(s.keeper.LPTransfer(s.ctx, pair.Address, s.wallet, pair.Address, expectedLiquidity(amount)))
	_, _, err := s.keeper.Burn(s.ctx, s.wallet, pair.Address, s.wallet)
	s.Require().NoError(err)
}

func (s *KeeperTestSuite) TestFeeToOff() {
	pair := s.createPair()
	s.swapAndBurnAll(pair)

	supply, err := s.keeper.LPTotalSupply(s.ctx, pair.Address)
	s.Require().NoError(err)
	s.Require().Equal(int64(types.MinimumLiquidity), supply.Int64())
	kLast, err := s.keeper.KLast(s.ctx, pair.Address)
	s.Require().NoError(err)
	s.Require().True(kLast.IsZero())
}

func (s *KeeperTestSuite) TestFeeToOn() {
	s.Require().NoError(s.keeper.SetFeeTo(s.ctx, s.feeToSetter(), s.other))
	pair := s.createPair()
	s.swapAndBurnAll(pair)

	supply, err := s.keeper.LPTotalSupply(s.ctx, pair.Address)
	s.Require().NoError(err)
	s.Require().Equal("249750499252388", supply.String())
	s.Require().Equal("249750499251388", s.keeper.LPBalanceOf(s.ctx, pair.Address, s.other).String())

	// the pair keeps what backs the minimum liquidity plus the fee shares
	s.Require().Equal("249501683698445", s.balance(pair.Token0, pair.Address).String())
	s.Require().Equal("250000187313969", s.balance(pair.Token1, pair.Address).String())

	r0, r1, _, err := s.keeper.GetReserves(s.ctx, pair.Address)
	s.Require().NoError(err)
	kLast, err := s.keeper.KLast(s.ctx, pair.Address)
	s.Require().NoError(err)
	s.Require().Equal(r0.Mul(r1).String(), kLast.String())
}

func (s *KeeperTestSuite) TestFeeToTurnedOffClearsKLast() {
	s.Require().NoError(s.keeper.SetFeeTo(s.ctx, s.feeToSetter(), s.other))
	pair := s.createPair()
	s.addLiquidity(pair, ether(10), ether(10))

	kLast, err := s.keeper.KLast(s.ctx, pair.Address)
	s.Require().NoError(err)
	s.Require().Equal(ether(10).Mul(ether(10)).String(), kLast.String())

	s.Require().NoError(s.keeper.SetFeeTo(s.ctx, s.feeToSetter(), types.ZeroAddress))
	s.addLiquidity(pair, ether(1), ether(1))
	kLast, err = s.keeper.KLast(s.ctx, pair.Address)
	s.Require().NoError(err)
	s.Require().True(kLast.IsZero())
}

func (s *KeeperTestSuite) TestSkim() {
	pair := s.createPair()
	s.addLiquidity(pair, ether(1), ether(4))
	s.transfer(pair.Token0, pair.Address, ether(5))
	s.transfer(pair.Token1, pair.Address, ether(2))

	s.Require().NoError(s.keeper.Skim(s.ctx, pair.Address, s.other))
	s.Require().Equal(ether(5).String(), s.balance(pair.Token0, s.other).String())
	s.Require().Equal(ether(2).String(), s.balance(pair.Token1, s.other).String())
	s.requireReserves(pair.Address, ether(1), ether(4))
	s.Require().Equal(ether(1).String(), s.balance(pair.Token0, pair.Address).String())
}

func (s *KeeperTestSuite) TestSync() {
	pair := s.createPair()
	s.addLiquidity(pair, ether(1), ether(4))
	s.transfer(pair.Token0, pair.Address, ether(5))

	s.resetEvents()
	s.Require().NoError(s.keeper.Sync(s.ctx, pair.Address))
	s.requireReserves(pair.Address, ether(6), ether(4))
	s.Require().Equal(ether(6).String(), s.lastEvent(types.EventTypeSync)[types.AttributeKeyReserve0])
}

func (s *KeeperTestSuite) TestReserveOverflow() {
	big := keepertest.CreateTestToken(s.T(), s.app, s.ctx, s.wallet, "BIG", types.MaxReserve.MulRaw(2))
	pairAddr := keepertest.CreateTestPair(s.T(), s.app, s.ctx, s.wallet, big, s.tokenA, math.ZeroInt(), math.ZeroInt())

	s.transfer(big, pairAddr, types.MaxReserve.AddRaw(1))
	s.transfer(s.tokenA, pairAddr, ether(1))

	_, err := s.keeper.Mint(s.ctx, s.wallet, pairAddr, s.wallet)
	s.requireErrorReason(err, types.ErrOverflow, types.ReasonOverflow)

	err = s.keeper.Sync(s.ctx, pairAddr)
	s.requireErrorReason(err, types.ErrOverflow, types.ReasonOverflow)

	// skimming the excess restores a syncable state
	s.Require().NoError(s.keeper.Skim(s.ctx, pairAddr, s.wallet))
	s.transfer(big, pairAddr, types.MaxReserve)
	s.transfer(s.tokenA, pairAddr, ether(1))
	_, err = s.keeper.Mint(s.ctx, s.wallet, pairAddr, s.wallet)
	s.Require().NoError(err)
	r0, r1 := pick(s.pair(pairAddr), big, types.MaxReserve, ether(1))
	s.requireReserves(pairAddr, r0, r1)
}

// pick orders two amounts keyed by token as the pair holds them.
func pick(pair types.Pair, tokenA sdk.AccAddress, amountA, amountB math.Int) (math.Int, math.Int) {
	if pair.Token0.Equals(tokenA) {
		return amountA, amountB
	}
	return amountB, amountA
}

func (s *KeeperTestSuite) TestPairLock() {
	pair := s.createPair()
	s.addLiquidity(pair, ether(5), ether(10))

	s.Require().NoError(keeper.LockPairForTest(s.keeper, s.ctx, pair.Address))
	s.Require().True(s.keeper.IsPairLocked(s.ctx, pair.Address))

	_, err := s.keeper.Mint(s.ctx, s.wallet, pair.Address, s.wallet)
	s.requireErrorReason(err, types.ErrLocked, types.ReasonLocked)
	_, _, err = s.keeper.Burn(s.ctx, s.wallet, pair.Address, s.wallet)
	s.requireErrorReason(err, types.ErrLocked, types.ReasonLocked)
	err = s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), ether(1), s.wallet, nil)
	s.requireErrorReason(err, types.ErrLocked, types.ReasonLocked)
	err = s.keeper.Skim(s.ctx, pair.Address, s.wallet)
	s.requireErrorReason(err, types.ErrLocked, types.ReasonLocked)
	err = s.keeper.Sync(s.ctx, pair.Address)
	s.requireErrorReason(err, types.ErrLocked, types.ReasonLocked)

	keeper.UnlockPairForTest(s.keeper, s.ctx, pair.Address)
	s.Require().NoError(s.keeper.Sync(s.ctx, pair.Address))
	s.Require().False(s.keeper.IsPairLocked(s.ctx, pair.Address))
}

func (s *KeeperTestSuite) setupFlashSwap() (types.Pair, sdk.AccAddress) {
	pair := s.createPair()
	s.addLiquidity(pair, ether(5), ether(10))
	callee := s.accs[2].Address
	s.transfer(pair.Token1, callee, ether(10))
	return pair, callee
}

func (s *KeeperTestSuite) TestFlashSwap() {
	pair, callee := s.setupFlashSwap()
	out := ether(1)

	var gotSender sdk.AccAddress
	var gotData []byte
	s.keeper.SetSwapCallee(callee, types.DexCalleeFunc(func(ctx context.Context, sender sdk.AccAddress, amount0, amount1 math.Int, data []byte) error {
		gotSender, gotData = sender, data
		s.Require().True(amount0.IsZero())
		repay := amount1.MulRaw(1000).QuoRaw(997).AddRaw(1)
		return s.app.TokenKeeper.Transfer(ctx, pair.Token1, callee, pair.Address, repay)
	}))

	s.Require().NoError(s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), out, callee, []byte("flash")))
	s.Require().Equal(s.wallet, gotSender)
	s.Require().Equal([]byte("flash"), gotData)

	repay := mustInt("1003009027081243732")
	s.Require().Equal(ether(10).Add(out).Sub(repay).String(), s.balance(pair.Token1, callee).String())
	s.requireReserves(pair.Address, ether(5), ether(10).Sub(out).Add(repay))
}

func (s *KeeperTestSuite) TestFlashSwapUnderpaid() {
	pair, callee := s.setupFlashSwap()

	s.keeper.SetSwapCallee(callee, types.DexCalleeFunc(func(ctx context.Context, _ sdk.AccAddress, _, amount1 math.Int, _ []byte) error {
		return s.app.TokenKeeper.Transfer(ctx, pair.Token1, callee, pair.Address, amount1)
	}))

	err := s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), ether(1), callee, []byte("flash"))
	s.requireErrorReason(err, types.ErrInsufficientAmount, types.ReasonK)

	// the optimistic transfer is rolled back with the swap
	s.Require().Equal(ether(10).String(), s.balance(pair.Token1, callee).String())
	s.Require().Equal(ether(10).String(), s.balance(pair.Token1, pair.Address).String())
	s.Require().False(s.keeper.IsPairLocked(s.ctx, pair.Address))
}

func (s *KeeperTestSuite) TestFlashSwapWithoutCallee() {
	pair, callee := s.setupFlashSwap()

	err := s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), ether(1), callee, []byte("flash"))
	s.Require().ErrorIs(err, types.ErrInvalidCallee)
	s.Require().Equal(ether(10).String(), s.balance(pair.Token1, callee).String())

	s.keeper.SetSwapCallee(callee, types.DexCalleeFunc(func(context.Context, sdk.AccAddress, math.Int, math.Int, []byte) error {
		return nil
	}))
	s.keeper.SetSwapCallee(callee, nil)
	err = s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), ether(1), callee, []byte("flash"))
	s.Require().ErrorIs(err, types.ErrInvalidCallee)
}

func (s *KeeperTestSuite) TestFlashSwapReentry() {
	pair, callee := s.setupFlashSwap()

	s.keeper.SetSwapCallee(callee, types.DexCalleeFunc(func(ctx context.Context, _ sdk.AccAddress, _, amount1 math.Int, _ []byte) error {
		return s.keeper.Swap(ctx, callee, pair.Address, math.ZeroInt(), amount1, callee, nil)
	}))
	err := s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), ether(1), callee, []byte("flash"))
	s.requireErrorReason(err, types.ErrLocked, types.ReasonLocked)

	s.keeper.SetSwapCallee(callee, types.DexCalleeFunc(func(ctx context.Context, _ sdk.AccAddress, _, _ math.Int, _ []byte) error {
		return s.keeper.Sync(ctx, pair.Address)
	}))
	err = s.keeper.Swap(s.ctx, s.wallet, pair.Address, math.ZeroInt(), ether(1), callee, []byte("flash"))
	s.requireErrorReason(err, types.ErrLocked, types.ReasonLocked)

	s.requireReserves(pair.Address, ether(5), ether(10))
	s.Require().False(s.keeper.IsPairLocked(s.ctx, pair.Address))
}

func (s *KeeperTestSuite) TestPairNotFound() {
	missing := s.accs[2].Address

	_, err := s.keeper.Mint(s.ctx, s.wallet, missing, s.wallet)
	s.Require().ErrorIs(err, types.ErrPairNotFound)
	_, _, _, err = s.keeper.GetReserves(s.ctx, missing)
	s.Require().ErrorIs(err, types.ErrPairNotFound)
	s.Require().False(s.keeper.IsPairLocked(s.ctx, missing))
}
