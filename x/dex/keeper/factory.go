package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

// InitFactory sets the account allowed to change the protocol fee recipient.
func (k Keeper) InitFactory(ctx context.Context, feeToSetter sdk.AccAddress) error {
	if types.IsZeroAddress(feeToSetter) {
		return types.ErrInvalidAddressParameters.Wrap(types.ReasonSetterZeroAddress)
	}
	k.getStore(ctx).Set(types.FeeToSetterKey, feeToSetter)
	return nil
}

// FeeTo returns the protocol fee recipient. An empty address means the
// protocol fee is off.
func (k Keeper) FeeTo(ctx context.Context) sdk.AccAddress {
	return k.getStore(ctx).Get(types.FeeToKey)
}

// FeeToSetter returns the account allowed to change FeeTo.
func (k Keeper) FeeToSetter(ctx context.Context) sdk.AccAddress {
	return k.getStore(ctx).Get(types.FeeToSetterKey)
}

// SetFeeTo changes the protocol fee recipient. Only the fee setter may call it;
// the zero address turns the protocol fee off.
func (k Keeper) SetFeeTo(ctx context.Context, sender, feeTo sdk.AccAddress) error {
	if !sender.Equals(k.FeeToSetter(ctx)) {
		return types.ErrUnauthorized.Wrap(types.ReasonForbidden)
	}

	store := k.getStore(ctx)
	if types.IsZeroAddress(feeTo) {
		store.Delete(types.FeeToKey)
	} else {
		store.Set(types.FeeToKey, feeTo)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFeeToChanged,
			sdk.NewAttribute(types.AttributeKeyFeeTo, feeTo.String()),
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
		),
	)
	return nil
}

// SetFeeToSetter hands the fee setter role to another account.
func (k Keeper) SetFeeToSetter(ctx context.Context, sender, feeToSetter sdk.AccAddress) error {
	if !sender.Equals(k.FeeToSetter(ctx)) {
		return types.ErrUnauthorized.Wrap(types.ReasonForbidden)
	}
	if types.IsZeroAddress(feeToSetter) {
		return types.ErrInvalidAddressParameters.Wrap(types.ReasonSetterZeroAddress)
	}

	k.getStore(ctx).Set(types.FeeToSetterKey, feeToSetter)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFeeToSetterChanged,
			sdk.NewAttribute(types.AttributeKeyFeeToSetter, feeToSetter.String()),
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
		),
	)
	return nil
}

// GetCriteriaCoins returns the criteria coins in registration order.
func (k Keeper) GetCriteriaCoins(ctx context.Context) []sdk.AccAddress {
	bz := k.getStore(ctx).Get(types.CriteriaCoinsKey)
	if bz == nil {
		return []sdk.AccAddress{}
	}

	var coins []sdk.AccAddress
	if err := json.Unmarshal(bz, &coins); err != nil {
		panic(fmt.Sprintf("failed to unmarshal criteria coins: %v", err))
	}
	return coins
}

func (k Keeper) setCriteriaCoins(ctx context.Context, coins []sdk.AccAddress) {
	bz, err := json.Marshal(coins)
	if err != nil {
		panic(fmt.Sprintf("failed to marshal criteria coins: %v", err))
	}
	k.getStore(ctx).Set(types.CriteriaCoinsKey, bz)
}

// criteriaIndex returns the registration position of token, or -1.
func criteriaIndex(coins []sdk.AccAddress, token sdk.AccAddress) int {
	for i, c := range coins {
		if c.Equals(token) {
			return i
		}
	}
	return -1
}

// CreateCriteriaCoin registers token as a quote coin. Pairs created afterwards
// hold it as token1. Existing pairs keep their order; a pair that already
// holds the coin as token0 is reported through a conflict event.
func (k Keeper) CreateCriteriaCoin(ctx context.Context, sender, token sdk.AccAddress) error {
	if types.IsZeroAddress(token) {
		return types.ErrInvalidAddressParameters.Wrap(types.ReasonZeroAddress)
	}

	coins := k.GetCriteriaCoins(ctx)
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	k.IteratePairs(ctx, func(pair types.Pair) bool {
		if !pair.Token0.Equals(token) {
			return false
		}
		// an older criteria coin on the other side already owns token1
		if criteriaIndex(coins, pair.Token1) >= 0 {
			return false
		}
		k.Logger(ctx).Warn(
			"criteria coin is token0 of an existing pair",
			"token", token.String(),
			"pair", pair.Address.String(),
		)
		sdkCtx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeCriteriaCoinConflict,
				sdk.NewAttribute(types.AttributeKeyToken, token.String()),
				sdk.NewAttribute(types.AttributeKeyPair, pair.Address.String()),
			),
		)
		return false
	})

	coins = append(coins, token)
	k.setCriteriaCoins(ctx, coins)
	k.metrics.CriteriaCoinsSize.Set(float64(len(coins)))

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeCriteriaCoinAdded,
			sdk.NewAttribute(types.AttributeKeyToken, token.String()),
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
		),
	)
	return nil
}

// orderPairTokens sorts tokenA and tokenB and then moves a criteria coin into
// token1. When both are criteria coins the earlier registration wins.
func (k Keeper) orderPairTokens(ctx context.Context, tokenA, tokenB sdk.AccAddress) (sdk.AccAddress, sdk.AccAddress, error) {
	token0, token1, err := types.SortTokens(tokenA, tokenB)
	if err != nil {
		return nil, nil, err
	}

	coins := k.GetCriteriaCoins(ctx)
	idx0, idx1 := criteriaIndex(coins, token0), criteriaIndex(coins, token1)
	if idx0 >= 0 && (idx1 < 0 || idx0 < idx1) {
		token0, token1 = token1, token0
	}
	return token0, token1, nil
}

// GetPair returns the pair of two tokens in either order.
func (k Keeper) GetPair(ctx context.Context, tokenA, tokenB sdk.AccAddress) (sdk.AccAddress, bool) {
	bz := k.getStore(ctx).Get(types.PairByTokensKey(tokenA, tokenB))
	if bz == nil {
		return nil, false
	}
	return sdk.AccAddress(bz), true
}

// AllPairsLength returns the number of pairs created.
func (k Keeper) AllPairsLength(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.AllPairsCountKey)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

func (k Keeper) setAllPairsLength(ctx context.Context, n uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, n)
	k.getStore(ctx).Set(types.AllPairsCountKey, bz)
}

// AllPairs returns the pair created at index.
func (k Keeper) AllPairs(ctx context.Context, index uint64) (sdk.AccAddress, error) {
	bz := k.getStore(ctx).Get(types.AllPairsKey(index))
	if bz == nil {
		return nil, types.ErrPairNotFound.Wrapf("no pair at index %d", index)
	}
	return sdk.AccAddress(bz), nil
}

// InitCodeHash returns the hash mixed into every pair address.
func (k Keeper) InitCodeHash() []byte {
	return append([]byte{}, types.InitCodeHash...)
}

// CreatePair deploys the pair of tokenA and tokenB with the given LP metadata.
// Empty metadata falls back to the default LP name and symbol.
func (k Keeper) CreatePair(ctx context.Context, sender, tokenA, tokenB sdk.AccAddress, lpName, lpSymbol string) (sdk.AccAddress, error) {
	var pairAddr sdk.AccAddress
	err := k.atomic(ctx, func(ctx context.Context) error {
		var err error
		pairAddr, err = k.createPair(ctx, sender, tokenA, tokenB, lpName, lpSymbol)
		return err
	})
	if err != nil {
		k.metrics.Errors.WithLabelValues("create_pair", errorLabel(err)).Inc()
		return nil, err
	}
	return pairAddr, nil
}

func (k Keeper) createPair(ctx context.Context, sender, tokenA, tokenB sdk.AccAddress, lpName, lpSymbol string) (sdk.AccAddress, error) {
	token0, token1, err := k.orderPairTokens(ctx, tokenA, tokenB)
	if err != nil {
		return nil, err
	}
	if _, exists := k.GetPair(ctx, token0, token1); exists {
		return nil, types.ErrInvalidAddressParameters.Wrap(types.ReasonPairExists)
	}

	pairAddr := types.PairAddress(types.FactoryAddress, token0, token1)
	if k.hasPairRecord(ctx, pairAddr) {
		return nil, types.ErrInvalidAddressParameters.Wrap(types.ReasonPairExists)
	}
	k.SetPairRecord(ctx, types.NewPair(pairAddr, types.FactoryAddress, lpName, lpSymbol))
	if err := k.Initialize(ctx, types.FactoryAddress, pairAddr, token0, token1); err != nil {
		return nil, err
	}

	store := k.getStore(ctx)
	store.Set(types.PairByTokensKey(token0, token1), pairAddr)
	store.Set(types.PairByTokensKey(token1, token0), pairAddr)

	index := k.AllPairsLength(ctx)
	store.Set(types.AllPairsKey(index), pairAddr)
	k.setAllPairsLength(ctx, index+1)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypePairCreated,
			sdk.NewAttribute(types.AttributeKeyToken0, token0.String()),
			sdk.NewAttribute(types.AttributeKeyToken1, token1.String()),
			sdk.NewAttribute(types.AttributeKeyPair, pairAddr.String()),
			sdk.NewAttribute(types.AttributeKeyAllPairsLength, fmt.Sprintf("%d", index+1)),
			sdk.NewAttribute(types.AttributeKeySender, sender.String()),
		),
	)

	k.metrics.PairsTotal.Set(float64(index + 1))
	k.metrics.PairCreationRate.Inc()
	k.Logger(ctx).Info("pair created",
		"pair", pairAddr.String(),
		"token0", token0.String(),
		"token1", token1.String(),
		"index", index,
	)
	return pairAddr, nil
}
