package simapp

import (
	"math/rand"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"

	dextypes "github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
	tokentypes "github.com/TokeNest/TokeNest-SmartContract/x/token/types"
)

// Operation names reported by the simulation.
const (
	OpAddLiquidity    = "add_liquidity"
	OpRemoveLiquidity = "remove_liquidity"
	OpSwap            = "swap"
	OpNoop            = "noop"
)

// Operation is one randomized user action routed through the dex. A returned
// error means the action was rejected and left no state behind.
type Operation func(r *rand.Rand, app *App, ctx sdk.Context, accs []simtypes.Account, tokens []sdk.AccAddress, sp SimulationParams) (string, error)

// RandomOperation picks an operation according to the weights in sp.
func RandomOperation(r *rand.Rand, sp SimulationParams) Operation {
	roll := math.LegacyNewDecWithPrec(int64(r.Intn(100)), 2)
	switch {
	case roll.LT(sp.SwapProbability):
		return SimulateSwap
	case roll.LT(sp.SwapProbability.Add(sp.AddLiquidityProb)):
		return SimulateAddLiquidity
	case roll.LT(sp.SwapProbability.Add(sp.AddLiquidityProb).Add(sp.RemoveLiquidityProb)):
		return SimulateRemoveLiquidity
	default:
		return SimulateNoop
	}
}

// SimulateNoop does nothing.
func SimulateNoop(_ *rand.Rand, _ *App, _ sdk.Context, _ []simtypes.Account, _ []sdk.AccAddress, _ SimulationParams) (string, error) {
	return OpNoop, nil
}

func randomTokenPair(r *rand.Rand, tokens []sdk.AccAddress) (sdk.AccAddress, sdk.AccAddress) {
	i := r.Intn(len(tokens))
	j := r.Intn(len(tokens) - 1)
	if j >= i {
		j++
	}
	return tokens[i], tokens[j]
}

// randomAmount returns an amount in [1, max], or zero when max is not positive.
func randomAmount(r *rand.Rand, max math.Int) math.Int {
	if !max.IsPositive() {
		return math.ZeroInt()
	}
	if max.Equal(math.OneInt()) {
		return max
	}
	return simtypes.RandomAmount(r, max.SubRaw(1)).AddRaw(1)
}

// SimulateAddLiquidity deposits a random amount of two random tokens.
func SimulateAddLiquidity(r *rand.Rand, app *App, ctx sdk.Context, accs []simtypes.Account, tokens []sdk.AccAddress, sp SimulationParams) (string, error) {
	if len(tokens) < 2 {
		return OpNoop, nil
	}
	acc, _ := simtypes.RandomAcc(r, accs)
	tokenA, tokenB := randomTokenPair(r, tokens)

	amountA := randomAmount(r, math.MinInt(sp.InitialLiquidity, app.TokenKeeper.BalanceOf(ctx, tokenA, acc.Address)))
	amountB := randomAmount(r, math.MinInt(sp.InitialLiquidity, app.TokenKeeper.BalanceOf(ctx, tokenB, acc.Address)))
	if amountA.IsZero() || amountB.IsZero() {
		return OpNoop, nil
	}
	if err := approveRouter(app, ctx, acc.Address, tokenA, tokenB); err != nil {
		return OpAddLiquidity, err
	}

	_, err := app.DexKeeper.AddLiquidity(ctx, dextypes.MsgAddLiquidity{
		Sender:         acc.Address,
		TokenA:         tokenA,
		TokenB:         tokenB,
		AmountADesired: amountA,
		AmountBDesired: amountB,
		AmountAMin:     math.ZeroInt(),
		AmountBMin:     math.ZeroInt(),
		To:             acc.Address,
		Deadline:       dextypes.NoDeadline,
	})
	return OpAddLiquidity, err
}

// SimulateRemoveLiquidity burns a random part of an account's shares in a
// random pair.
func SimulateRemoveLiquidity(r *rand.Rand, app *App, ctx sdk.Context, accs []simtypes.Account, _ []sdk.AccAddress, _ SimulationParams) (string, error) {
	pair, ok := randomPair(r, app, ctx)
	if !ok {
		return OpNoop, nil
	}
	acc, _ := simtypes.RandomAcc(r, accs)
	liquidity := randomAmount(r, app.DexKeeper.LPBalanceOf(ctx, pair.Address, acc.Address))
	if liquidity.IsZero() {
		return OpNoop, nil
	}
	if err := app.DexKeeper.LPApprove(ctx, pair.Address, acc.Address, dextypes.RouterAddress, liquidity); err != nil {
		return OpRemoveLiquidity, err
	}

	_, err := app.DexKeeper.RemoveLiquidity(ctx, dextypes.MsgRemoveLiquidity{
		Sender:     acc.Address,
		TokenA:     pair.Token0,
		TokenB:     pair.Token1,
		Liquidity:  liquidity,
		AmountAMin: math.ZeroInt(),
		AmountBMin: math.ZeroInt(),
		To:         acc.Address,
		Deadline:   dextypes.NoDeadline,
	})
	return OpRemoveLiquidity, err
}

// SimulateSwap sells a random amount through a random pair in a random
// direction.
func SimulateSwap(r *rand.Rand, app *App, ctx sdk.Context, accs []simtypes.Account, _ []sdk.AccAddress, _ SimulationParams) (string, error) {
	pair, ok := randomPair(r, app, ctx)
	if !ok {
		return OpNoop, nil
	}
	acc, _ := simtypes.RandomAcc(r, accs)
	tokenIn, tokenOut := pair.Token0, pair.Token1
	if r.Intn(2) == 0 {
		tokenIn, tokenOut = tokenOut, tokenIn
	}

	amountIn := randomAmount(r, math.MinInt(
		app.TokenKeeper.BalanceOf(ctx, tokenIn, acc.Address),
		pair.ReservesFor(tokenIn).In.QuoRaw(10),
	))
	if amountIn.IsZero() {
		return OpNoop, nil
	}
	if err := approveRouter(app, ctx, acc.Address, tokenIn); err != nil {
		return OpSwap, err
	}

	_, err := app.DexKeeper.SwapExactTokensForTokens(ctx, dextypes.MsgSwapExactTokensForTokens{
		Sender:       acc.Address,
		AmountIn:     amountIn,
		AmountOutMin: math.ZeroInt(),
		Path:         []sdk.AccAddress{tokenIn, tokenOut},
		To:           acc.Address,
		Deadline:     dextypes.NoDeadline,
	})
	return OpSwap, err
}

func randomPair(r *rand.Rand, app *App, ctx sdk.Context) (dextypes.Pair, bool) {
	n := app.DexKeeper.AllPairsLength(ctx)
	if n == 0 {
		return dextypes.Pair{}, false
	}
	addr, err := app.DexKeeper.AllPairs(ctx, uint64(r.Int63n(int64(n))))
	if err != nil {
		return dextypes.Pair{}, false
	}
	pair, err := app.DexKeeper.GetPairRecord(ctx, addr)
	if err != nil || pair.Reserve0.IsZero() || pair.Reserve1.IsZero() {
		return dextypes.Pair{}, false
	}
	return pair, true
}

func approveRouter(app *App, ctx sdk.Context, owner sdk.AccAddress, tokens ...sdk.AccAddress) error {
	for _, token := range tokens {
		if err := app.TokenKeeper.Approve(ctx, token, owner, dextypes.RouterAddress, tokentypes.MaxAllowance); err != nil {
			return err
		}
	}
	return nil
}
