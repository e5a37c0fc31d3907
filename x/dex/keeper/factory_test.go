package keeper_test

import (
	"bytes"

	sdk "github.com/cosmos/cosmos-sdk/types"

	keepertest "github.com/TokeNest/TokeNest-SmartContract/testutil/keeper"
	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

func (s *KeeperTestSuite) feeToSetter() sdk.AccAddress {
	return s.keeper.FeeToSetter(s.ctx)
}

func (s *KeeperTestSuite) sortedTokens() (sdk.AccAddress, sdk.AccAddress) {
	if bytes.Compare(s.tokenA, s.tokenB) < 0 {
		return s.tokenA, s.tokenB
	}
	return s.tokenB, s.tokenA
}

func (s *KeeperTestSuite) TestFactoryDefaults() {
	s.Require().Empty(s.keeper.FeeTo(s.ctx))
	s.Require().Equal(types.DefaultGenesis().FeeToSetter, s.feeToSetter())
	s.Require().Zero(s.keeper.AllPairsLength(s.ctx))
	s.Require().Equal(types.InitCodeHash, s.keeper.InitCodeHash())
}

func (s *KeeperTestSuite) TestCreatePair() {
	for _, tc := range []struct {
		name    string
		reverse bool
	}{
		{"sorted order", false},
		{"reverse order", true},
	} {
		s.Run(tc.name, func() {
			s.SetupTest()
			token0, token1 := s.sortedTokens()
			tokenA, tokenB := token0, token1
			if tc.reverse {
				tokenA, tokenB = token1, token0
			}

			s.resetEvents()
			pairAddr, err := s.keeper.CreatePair(s.ctx, s.wallet, tokenA, tokenB, "", "")
			s.Require().NoError(err)
			s.Require().Equal(types.PairAddress(types.FactoryAddress, token0, token1), pairAddr)

			ev := s.lastEvent(types.EventTypePairCreated)
			s.Require().Equal(token0.String(), ev[types.AttributeKeyToken0])
			s.Require().Equal(token1.String(), ev[types.AttributeKeyToken1])
			s.Require().Equal(pairAddr.String(), ev[types.AttributeKeyPair])
			s.Require().Equal("1", ev[types.AttributeKeyAllPairsLength])

			got, ok := s.keeper.GetPair(s.ctx, token0, token1)
			s.Require().True(ok)
			s.Require().Equal(pairAddr, got)
			got, ok = s.keeper.GetPair(s.ctx, token1, token0)
			s.Require().True(ok)
			s.Require().Equal(pairAddr, got)

			s.Require().Equal(uint64(1), s.keeper.AllPairsLength(s.ctx))
			first, err := s.keeper.AllPairs(s.ctx, 0)
			s.Require().NoError(err)
			s.Require().Equal(pairAddr, first)

			factory, err := s.keeper.Factory(s.ctx, pairAddr)
			s.Require().NoError(err)
			s.Require().Equal(types.FactoryAddress, factory)
			gotToken0, err := s.keeper.Token0(s.ctx, pairAddr)
			s.Require().NoError(err)
			s.Require().Equal(token0, gotToken0)
			gotToken1, err := s.keeper.Token1(s.ctx, pairAddr)
			s.Require().NoError(err)
			s.Require().Equal(token1, gotToken1)

			_, err = s.keeper.CreatePair(s.ctx, s.wallet, tokenA, tokenB, "", "")
			s.requireErrorReason(err, types.ErrInvalidAddressParameters, types.ReasonPairExists)
			_, err = s.keeper.CreatePair(s.ctx, s.wallet, tokenB, tokenA, "", "")
			s.requireErrorReason(err, types.ErrInvalidAddressParameters, types.ReasonPairExists)
			s.Require().Equal(uint64(1), s.keeper.AllPairsLength(s.ctx))
		})
	}
}

func (s *KeeperTestSuite) TestCreatePairRejectsInvalidTokens() {
	_, err := s.keeper.CreatePair(s.ctx, s.wallet, s.tokenA, s.tokenA, "", "")
	s.requireErrorReason(err, types.ErrInvalidAddressParameters, types.ReasonIdenticalAddresses)

	_, err = s.keeper.CreatePair(s.ctx, s.wallet, s.tokenA, types.ZeroAddress, "", "")
	s.requireErrorReason(err, types.ErrInvalidAddressParameters, types.ReasonZeroAddress)

	_, err = s.keeper.CreatePair(s.ctx, s.wallet, types.ZeroAddress, s.tokenA, "", "")
	s.requireErrorReason(err, types.ErrInvalidAddressParameters, types.ReasonZeroAddress)

	s.Require().Zero(s.keeper.AllPairsLength(s.ctx))
}

func (s *KeeperTestSuite) TestCreatePairLPMetadata() {
	pairAddr, err := s.keeper.CreatePair(s.ctx, s.wallet, s.tokenA, s.tokenB, "Tokenest LP", "TNLP")
	s.Require().NoError(err)

	name, err := s.keeper.LPName(s.ctx, pairAddr)
	s.Require().NoError(err)
	s.Require().Equal("Tokenest LP", name)
	symbol, err := s.keeper.LPSymbol(s.ctx, pairAddr)
	s.Require().NoError(err)
	s.Require().Equal("TNLP", symbol)
}

func (s *KeeperTestSuite) TestAllPairsIndex() {
	tokenC := keepertest.CreateTestToken(s.T(), s.app, s.ctx, s.wallet, "TKC", keepertest.Ether(100))

	first, err := s.keeper.CreatePair(s.ctx, s.wallet, s.tokenA, s.tokenB, "", "")
	s.Require().NoError(err)
	second, err := s.keeper.CreatePair(s.ctx, s.wallet, s.tokenA, tokenC, "", "")
	s.Require().NoError(err)

	s.Require().Equal(uint64(2), s.keeper.AllPairsLength(s.ctx))
	got, err := s.keeper.AllPairs(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Equal(first, got)
	got, err = s.keeper.AllPairs(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Equal(second, got)

	_, err = s.keeper.AllPairs(s.ctx, 2)
	s.Require().ErrorIs(err, types.ErrPairNotFound)
}

func (s *KeeperTestSuite) TestInitializeForbidden() {
	pair := s.createPair()

	err := s.keeper.Initialize(s.ctx, s.wallet, pair.Address, pair.Token0, pair.Token1)
	s.requireErrorReason(err, types.ErrUnauthorized, types.ReasonForbidden)

	// the factory itself may only initialize once
	err = s.keeper.Initialize(s.ctx, types.FactoryAddress, pair.Address, pair.Token1, pair.Token0)
	s.requireErrorReason(err, types.ErrUnauthorized, types.ReasonForbidden)
	s.Require().Equal(pair.Token0, s.pair(pair.Address).Token0)
}

func (s *KeeperTestSuite) TestSetFeeTo() {
	err := s.keeper.SetFeeTo(s.ctx, s.other, s.other)
	s.requireErrorReason(err, types.ErrUnauthorized, types.ReasonForbidden)

	s.resetEvents()
	s.Require().NoError(s.keeper.SetFeeTo(s.ctx, s.feeToSetter(), s.wallet))
	s.Require().Equal(s.wallet, s.keeper.FeeTo(s.ctx))
	s.Require().Equal(s.wallet.String(), s.lastEvent(types.EventTypeFeeToChanged)[types.AttributeKeyFeeTo])

	s.Require().NoError(s.keeper.SetFeeTo(s.ctx, s.feeToSetter(), types.ZeroAddress))
	s.Require().Empty(s.keeper.FeeTo(s.ctx))
}

func (s *KeeperTestSuite) TestSetFeeToSetter() {
	setter := s.feeToSetter()

	err := s.keeper.SetFeeToSetter(s.ctx, s.other, s.other)
	s.requireErrorReason(err, types.ErrUnauthorized, types.ReasonForbidden)

	err = s.keeper.SetFeeToSetter(s.ctx, setter, types.ZeroAddress)
	s.requireErrorReason(err, types.ErrInvalidAddressParameters, types.ReasonSetterZeroAddress)

	s.Require().NoError(s.keeper.SetFeeToSetter(s.ctx, setter, s.other))
	s.Require().Equal(s.other, s.feeToSetter())

	err = s.keeper.SetFeeToSetter(s.ctx, setter, setter)
	s.requireErrorReason(err, types.ErrUnauthorized, types.ReasonForbidden)
}

func (s *KeeperTestSuite) TestInitFactoryRejectsZeroSetter() {
	err := s.keeper.InitFactory(s.ctx, types.ZeroAddress)
	s.requireErrorReason(err, types.ErrInvalidAddressParameters, types.ReasonSetterZeroAddress)
	err = s.keeper.InitFactory(s.ctx, nil)
	s.requireErrorReason(err, types.ErrInvalidAddressParameters, types.ReasonSetterZeroAddress)
}

func (s *KeeperTestSuite) TestCriteriaCoinBecomesToken1() {
	token0, token1 := s.sortedTokens()

	s.resetEvents()
	s.Require().NoError(s.keeper.CreateCriteriaCoin(s.ctx, s.wallet, token0))
	s.Require().Equal(token0.String(), s.lastEvent(types.EventTypeCriteriaCoinAdded)[types.AttributeKeyToken])
	s.Require().Equal([]sdk.AccAddress{token0}, s.keeper.GetCriteriaCoins(s.ctx))

	pairAddr, err := s.keeper.CreatePair(s.ctx, s.wallet, token0, token1, "", "")
	s.Require().NoError(err)
	pair := s.pair(pairAddr)
	s.Require().Equal(token1, pair.Token0)
	s.Require().Equal(token0, pair.Token1)

	// the address does not depend on which side the criteria coin sits
	s.Require().Equal(types.PairAddress(types.FactoryAddress, token0, token1), pairAddr)
}

func (s *KeeperTestSuite) TestCriteriaCoinEarlierRegistrationWins() {
	token0, token1 := s.sortedTokens()

	s.Require().NoError(s.keeper.CreateCriteriaCoin(s.ctx, s.wallet, token1))
	s.Require().NoError(s.keeper.CreateCriteriaCoin(s.ctx, s.wallet, token0))

	pairAddr, err := s.keeper.CreatePair(s.ctx, s.wallet, token0, token1, "", "")
	s.Require().NoError(err)
	pair := s.pair(pairAddr)
	s.Require().Equal(token0, pair.Token0)
	s.Require().Equal(token1, pair.Token1)
}

func (s *KeeperTestSuite) TestCriteriaCoinConflictWithExistingPair() {
	token0, token1 := s.sortedTokens()
	pairAddr, err := s.keeper.CreatePair(s.ctx, s.wallet, token0, token1, "", "")
	s.Require().NoError(err)

	s.resetEvents()
	s.Require().NoError(s.keeper.CreateCriteriaCoin(s.ctx, s.wallet, token0))
	ev := s.lastEvent(types.EventTypeCriteriaCoinConflict)
	s.Require().Equal(token0.String(), ev[types.AttributeKeyToken])
	s.Require().Equal(pairAddr.String(), ev[types.AttributeKeyPair])

	// existing pairs keep their order
	s.Require().Equal(token0, s.pair(pairAddr).Token0)

	// token1 of an existing pair is not a conflict
	s.resetEvents()
	s.Require().NoError(s.keeper.CreateCriteriaCoin(s.ctx, s.wallet, token1))
	s.Require().Zero(s.countEvents(types.EventTypeCriteriaCoinConflict))
}

func (s *KeeperTestSuite) TestCriteriaCoinRejectsZeroAddress() {
	err := s.keeper.CreateCriteriaCoin(s.ctx, s.wallet, types.ZeroAddress)
	s.requireErrorReason(err, types.ErrInvalidAddressParameters, types.ReasonZeroAddress)
	s.Require().Empty(s.keeper.GetCriteriaCoins(s.ctx))
}

func (s *KeeperTestSuite) TestCreatePairFailureLeavesNoState() {
	s.resetEvents()
	_, err := s.keeper.CreatePair(s.ctx, s.wallet, s.tokenA, s.tokenA, "", "")
	s.Require().Error(err)
	s.Require().Zero(s.countEvents(types.EventTypePairCreated))

	_, ok := s.keeper.GetPair(s.ctx, s.tokenA, s.tokenB)
	s.Require().False(ok)
	s.Require().Empty(s.keeper.GetAllPairRecords(s.ctx))
}
