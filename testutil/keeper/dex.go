package keeper

import (
	"testing"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/TokeNest/TokeNest-SmartContract/simapp"
	"github.com/TokeNest/TokeNest-SmartContract/x/dex/keeper"
	dextypes "github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

// DexKeeper creates a dex keeper backed by real token, bank and auth keepers.
func DexKeeper(t testing.TB) (*keeper.Keeper, sdk.Context) {
	t.Helper()

	testApp, ctx := SetupTestApp(t)
	return testApp.DexKeeper, ctx
}

// CreateTestToken creates a plain token with supply minted to owner.
func CreateTestToken(t testing.TB, testApp *simapp.App, ctx sdk.Context, owner sdk.AccAddress, symbol string, supply math.Int) sdk.AccAddress {
	t.Helper()

	token, err := testApp.TokenKeeper.CreateToken(ctx, owner, symbol+" Token", symbol, 18, supply, 0)
	require.NoError(t, err)
	return token
}

// CreateFeeOnTransferToken creates a token that burns feeBps of every transfer.
func CreateFeeOnTransferToken(t testing.TB, testApp *simapp.App, ctx sdk.Context, owner sdk.AccAddress, symbol string, supply math.Int, feeBps uint32) sdk.AccAddress {
	t.Helper()

	token, err := testApp.TokenKeeper.CreateToken(ctx, owner, symbol+" Token", symbol, 18, supply, feeBps)
	require.NoError(t, err)
	return token
}

// CreateTestPair creates the pair of tokenA and tokenB and, when both amounts
// are positive, seeds it from provider. It returns the pair address.
func CreateTestPair(
	t testing.TB,
	testApp *simapp.App,
	ctx sdk.Context,
	provider, tokenA, tokenB sdk.AccAddress,
	amountA, amountB math.Int,
) sdk.AccAddress {
	t.Helper()

	pair, err := testApp.DexKeeper.CreatePair(ctx, provider, tokenA, tokenB, "", "")
	require.NoError(t, err)
	if amountA.IsPositive() && amountB.IsPositive() {
		AddTestLiquidity(t, testApp, ctx, provider, pair, tokenA, tokenB, amountA, amountB)
	}
	return pair
}

// AddTestLiquidity transfers both amounts into pair and mints the shares to
// provider, the way a direct pair user would.
func AddTestLiquidity(
	t testing.TB,
	testApp *simapp.App,
	ctx sdk.Context,
	provider, pair, tokenA, tokenB sdk.AccAddress,
	amountA, amountB math.Int,
) math.Int {
	t.Helper()

	require.NoError(t, testApp.TokenKeeper.Transfer(ctx, tokenA, provider, pair, amountA))
	require.NoError(t, testApp.TokenKeeper.Transfer(ctx, tokenB, provider, pair, amountB))
	liquidity, err := testApp.DexKeeper.Mint(ctx, provider, pair, provider)
	require.NoError(t, err)
	return liquidity
}

// ApproveRouter grants the router the maximum allowance of every token.
func ApproveRouter(t testing.TB, testApp *simapp.App, ctx sdk.Context, owner sdk.AccAddress, tokens ...sdk.AccAddress) {
	t.Helper()

	for _, token := range tokens {
		require.NoError(t, testApp.TokenKeeper.Approve(ctx, token, owner, dextypes.RouterAddress, dextypes.MaxUint256))
	}
}

// WrappedNative returns the wrapped native token the router uses.
func WrappedNative(t testing.TB, testApp *simapp.App, ctx sdk.Context) sdk.AccAddress {
	t.Helper()

	wklay, err := testApp.DexKeeper.WrappedNative(ctx)
	require.NoError(t, err)
	return wklay
}

// FundNative credits addr with amount of the native denom.
func FundNative(t testing.TB, testApp *simapp.App, ctx sdk.Context, addr sdk.AccAddress, amount math.Int) {
	t.Helper()

	params, err := testApp.DexKeeper.GetParams(ctx)
	require.NoError(t, err)
	require.NoError(t, testApp.FundAccount(ctx, addr, params.NativeDenom, amount))
}

// NativeBalance returns the native balance of addr.
func NativeBalance(t testing.TB, testApp *simapp.App, ctx sdk.Context, addr sdk.AccAddress) math.Int {
	t.Helper()

	params, err := testApp.DexKeeper.GetParams(ctx)
	require.NoError(t, err)
	return testApp.BankKeeper.GetBalance(ctx, addr, params.NativeDenom).Amount
}
