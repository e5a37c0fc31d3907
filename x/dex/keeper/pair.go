package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

// GetPairRecord returns the stored state of the pair at addr.
func (k Keeper) GetPairRecord(ctx context.Context, addr sdk.AccAddress) (types.Pair, error) {
	bz := k.getStore(ctx).Get(types.PairKey(addr))
	if bz == nil {
		return types.Pair{}, types.ErrPairNotFound.Wrapf("pair %s does not exist", addr)
	}

	var pair types.Pair
	if err := json.Unmarshal(bz, &pair); err != nil {
		return types.Pair{}, fmt.Errorf("failed to unmarshal pair %s: %w", addr, err)
	}
	return pair, nil
}

// SetPairRecord stores the state of a pair.
func (k Keeper) SetPairRecord(ctx context.Context, pair types.Pair) {
	bz, err := json.Marshal(pair)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal pair %s: %v", pair.Address, err))
	}
	k.getStore(ctx).Set(types.PairKey(pair.Address), bz)
}

func (k Keeper) hasPairRecord(ctx context.Context, addr sdk.AccAddress) bool {
	return k.getStore(ctx).Has(types.PairKey(addr))
}

// IteratePairs calls cb for every stored pair until cb returns true.
func (k Keeper) IteratePairs(ctx context.Context, cb func(pair types.Pair) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PairKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pair types.Pair
		if err := json.Unmarshal(iterator.Value(), &pair); err != nil {
			panic(fmt.Sprintf("failed to unmarshal pair: %v", err))
		}
		if cb(pair) {
			break
		}
	}
}

// GetAllPairRecords returns every stored pair.
func (k Keeper) GetAllPairRecords(ctx context.Context) []types.Pair {
	pairs := []types.Pair{}
	k.IteratePairs(ctx, func(pair types.Pair) bool {
		pairs = append(pairs, pair)
		return false
	})
	return pairs
}

// Initialize binds a freshly deployed pair to its two tokens. Only the
// deploying factory may call it, and only once.
func (k Keeper) Initialize(ctx context.Context, caller, pairAddr, token0, token1 sdk.AccAddress) error {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return err
	}
	if !caller.Equals(pair.Factory) || pair.Initialized {
		return types.ErrUnauthorized.Wrap(types.ReasonForbidden)
	}

	pair.Token0 = token0
	pair.Token1 = token1
	pair.Initialized = true
	k.SetPairRecord(ctx, pair)
	return nil
}

// initializedPair loads a pair that is ready to trade.
func (k Keeper) initializedPair(ctx context.Context, pairAddr sdk.AccAddress) (types.Pair, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return types.Pair{}, err
	}
	if !pair.Initialized {
		return types.Pair{}, types.ErrPairNotFound.Wrapf("pair %s is not initialized", pairAddr)
	}
	return pair, nil
}

// checkReserveBounds fails when a balance could not be recorded as a reserve.
func checkReserveBounds(balance0, balance1 math.Int) error {
	if balance0.GT(types.MaxReserve) || balance1.GT(types.MaxReserve) {
		return types.ErrOverflow.Wrap(types.ReasonOverflow)
	}
	return nil
}

// update records new reserves and, on the first call of each block time,
// accumulates the prices that held since the previous update.
func (k Keeper) update(ctx context.Context, pair *types.Pair, balance0, balance1 math.Int) error {
	if err := checkReserveBounds(balance0, balance1); err != nil {
		return err
	}

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	blockTimestamp := uint32(sdkCtx.BlockTime().Unix())
	elapsed := blockTimestamp - pair.BlockTimestampLast // overflow is desired
	if elapsed > 0 && !pair.Reserve0.IsZero() && !pair.Reserve1.IsZero() {
		pair.Price0CumulativeLast = types.AccumulatePrice(pair.Price0CumulativeLast, pair.Reserve1, pair.Reserve0, elapsed)
		pair.Price1CumulativeLast = types.AccumulatePrice(pair.Price1CumulativeLast, pair.Reserve0, pair.Reserve1, elapsed)
	}
	pair.Reserve0 = balance0
	pair.Reserve1 = balance1
	pair.BlockTimestampLast = blockTimestamp

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSync,
			sdk.NewAttribute(types.AttributeKeyPair, pair.Address.String()),
			sdk.NewAttribute(types.AttributeKeyReserve0, balance0.String()),
			sdk.NewAttribute(types.AttributeKeyReserve1, balance1.String()),
		),
	)

	pairLabel := pair.Address.String()
	k.metrics.PairReserves.WithLabelValues(pairLabel, "0").Set(intToFloat(balance0))
	k.metrics.PairReserves.WithLabelValues(pairLabel, "1").Set(intToFloat(balance1))
	return nil
}

// pairBalances returns the pair's own holdings of both tokens.
func (k Keeper) pairBalances(ctx context.Context, pair types.Pair) (math.Int, math.Int) {
	return k.tokenKeeper.BalanceOf(ctx, pair.Token0, pair.Address),
		k.tokenKeeper.BalanceOf(ctx, pair.Token1, pair.Address)
}

// GetReserves returns the recorded reserves and the block time of their last
// update, truncated to 32 bits.
func (k Keeper) GetReserves(ctx context.Context, pairAddr sdk.AccAddress) (reserve0, reserve1 math.Int, blockTimestampLast uint32, err error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return math.Int{}, math.Int{}, 0, err
	}
	return pair.Reserve0, pair.Reserve1, pair.BlockTimestampLast, nil
}

// Price0CumulativeLast returns the token0 price accumulator.
func (k Keeper) Price0CumulativeLast(ctx context.Context, pairAddr sdk.AccAddress) (math.Int, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return math.Int{}, err
	}
	return pair.Price0CumulativeLast, nil
}

// Price1CumulativeLast returns the token1 price accumulator.
func (k Keeper) Price1CumulativeLast(ctx context.Context, pairAddr sdk.AccAddress) (math.Int, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return math.Int{}, err
	}
	return pair.Price1CumulativeLast, nil
}

// KLast returns reserve0*reserve1 as of the most recent liquidity event while
// the protocol fee was on.
func (k Keeper) KLast(ctx context.Context, pairAddr sdk.AccAddress) (math.Int, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return math.Int{}, err
	}
	return pair.KLast, nil
}

// Token0 returns the first token of a pair.
func (k Keeper) Token0(ctx context.Context, pairAddr sdk.AccAddress) (sdk.AccAddress, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return nil, err
	}
	return pair.Token0, nil
}

// Token1 returns the second token of a pair.
func (k Keeper) Token1(ctx context.Context, pairAddr sdk.AccAddress) (sdk.AccAddress, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return nil, err
	}
	return pair.Token1, nil
}

// Factory returns the factory that deployed a pair.
func (k Keeper) Factory(ctx context.Context, pairAddr sdk.AccAddress) (sdk.AccAddress, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return nil, err
	}
	return pair.Factory, nil
}
