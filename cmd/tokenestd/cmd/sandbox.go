package cmd

import (
	"fmt"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/simapp"
	dextypes "github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
	tokentypes "github.com/TokeNest/TokeNest-SmartContract/x/token/types"
)

// nativeDecimals is the precision of the native coin (1 KLAY = 10^18 peb).
const nativeDecimals = 18

// Sandbox is an in-memory chain seeded from a SeedConfig.
type Sandbox struct {
	App    *simapp.App
	Ctx    sdk.Context
	Owner  sdk.AccAddress
	Tokens map[string]sdk.AccAddress
	Pairs  []sdk.AccAddress
}

// NewSandbox creates an in-memory chain, seeds it and commits the result.
func NewSandbox(cfg *Config, logger log.Logger, blockTime time.Time) (*Sandbox, error) {
	app, ctx, err := simapp.Setup(cfg.ChainID, blockTime)
	if err != nil {
		return nil, fmt.Errorf("failed to set up app: %w", err)
	}

	owner := sdk.AccAddress(secp256k1.GenPrivKeyFromSecret([]byte(cfg.Seed.OwnerSecret)).PubKey().Address())
	sb := &Sandbox{
		App:    app,
		Ctx:    ctx,
		Owner:  owner,
		Tokens: make(map[string]sdk.AccAddress, len(cfg.Seed.Tokens)),
	}
	decimals := map[string]uint32{NativeSymbol: nativeDecimals}

	params, err := app.DexKeeper.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	if funds := toBaseUnits(cfg.Seed.NativeFunds, nativeDecimals); funds.IsPositive() {
		if err := app.FundAccount(ctx, owner, params.NativeDenom, funds); err != nil {
			return nil, fmt.Errorf("failed to fund owner: %w", err)
		}
	}

	for _, t := range cfg.Seed.Tokens {
		token, err := app.TokenKeeper.CreateToken(ctx, owner, t.Name, t.Symbol, t.Decimals, toBaseUnits(t.Supply, t.Decimals), t.FeeBps)
		if err != nil {
			return nil, fmt.Errorf("failed to create token %s: %w", t.Symbol, err)
		}
		if err := app.TokenKeeper.Approve(ctx, token, owner, dextypes.RouterAddress, tokentypes.MaxAllowance); err != nil {
			return nil, fmt.Errorf("failed to approve router for %s: %w", t.Symbol, err)
		}
		sb.Tokens[t.Symbol] = token
		decimals[t.Symbol] = t.Decimals
		logger.Info("seeded token", "symbol", t.Symbol, "address", token.String(), "fee_bps", t.FeeBps)
	}

	for _, p := range cfg.Seed.Pairs {
		amountA := toBaseUnits(p.AmountA, decimals[p.TokenA])
		amountB := toBaseUnits(p.AmountB, decimals[p.TokenB])
		pair, err := sb.seedPair(p.TokenA, p.TokenB, amountA, amountB)
		if err != nil {
			return nil, fmt.Errorf("failed to seed pair %s/%s: %w", p.TokenA, p.TokenB, err)
		}
		sb.Pairs = append(sb.Pairs, pair)
		logger.Info("seeded pair", "pair", pair.String(), "token_a", p.TokenA, "token_b", p.TokenB)
	}

	if err := app.AssertInvariants(ctx); err != nil {
		return nil, err
	}

	version := app.Commit()
	sb.Ctx = app.NewContext(cfg.ChainID, blockTime)
	logger.Info("sandbox ready", "chain_id", cfg.ChainID, "version", version, "owner", owner.String())
	return sb, nil
}

// seedPair creates and funds a pair through the router. A side named
// NativeSymbol is paid in native coin.
func (sb *Sandbox) seedPair(symbolA, symbolB string, amountA, amountB math.Int) (sdk.AccAddress, error) {
	if symbolA == NativeSymbol {
		symbolA, symbolB = symbolB, symbolA
		amountA, amountB = amountB, amountA
	}
	tokenA := sb.Tokens[symbolA]

	if symbolB == NativeSymbol {
		if _, err := sb.App.DexKeeper.AddLiquidityKLAY(sb.Ctx, dextypes.MsgAddLiquidityKLAY{
			Sender:             sb.Owner,
			Token:              tokenA,
			AmountTokenDesired: amountA,
			AmountTokenMin:     math.ZeroInt(),
			AmountKLAYMin:      math.ZeroInt(),
			To:                 sb.Owner,
			Deadline:           dextypes.NoDeadline,
			Value:              amountB,
		}); err != nil {
			return nil, err
		}
		wrapped, err := sb.App.DexKeeper.WrappedNative(sb.Ctx)
		if err != nil {
			return nil, err
		}
		return sb.pairOf(tokenA, wrapped)
	}

	tokenB := sb.Tokens[symbolB]
	if _, err := sb.App.DexKeeper.AddLiquidity(sb.Ctx, dextypes.MsgAddLiquidity{
		Sender:         sb.Owner,
		TokenA:         tokenA,
		TokenB:         tokenB,
		AmountADesired: amountA,
		AmountBDesired: amountB,
		AmountAMin:     math.ZeroInt(),
		AmountBMin:     math.ZeroInt(),
		To:             sb.Owner,
		Deadline:       dextypes.NoDeadline,
	}); err != nil {
		return nil, err
	}
	return sb.pairOf(tokenA, tokenB)
}

func (sb *Sandbox) pairOf(tokenA, tokenB sdk.AccAddress) (sdk.AccAddress, error) {
	pair, ok := sb.App.DexKeeper.GetPair(sb.Ctx, tokenA, tokenB)
	if !ok {
		return nil, dextypes.ErrPairNotFound
	}
	return pair, nil
}

// toBaseUnits scales a whole-token amount to the token's smallest unit,
// truncating any remainder.
func toBaseUnits(amount math.LegacyDec, decimals uint32) math.Int {
	if amount.IsNil() {
		return math.ZeroInt()
	}
	return amount.MulInt(math.NewIntWithDecimal(1, int(decimals))).TruncateInt()
}
