package keeper

import (
	"context"
	"encoding/binary"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

// LPName returns the LP token name of a pair.
func (k Keeper) LPName(ctx context.Context, pairAddr sdk.AccAddress) (string, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return "", err
	}
	return pair.Name, nil
}

// LPSymbol returns the LP token symbol of a pair.
func (k Keeper) LPSymbol(ctx context.Context, pairAddr sdk.AccAddress) (string, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return "", err
	}
	return pair.Symbol, nil
}

// LPDecimals returns the decimals shared by every LP token.
func (k Keeper) LPDecimals() uint32 {
	return types.LPDecimals
}

// LPTotalSupply returns the outstanding LP shares of a pair.
func (k Keeper) LPTotalSupply(ctx context.Context, pairAddr sdk.AccAddress) (math.Int, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return math.Int{}, err
	}
	return pair.TotalSupply, nil
}

// LPBalanceOf returns the LP shares of owner in a pair.
func (k Keeper) LPBalanceOf(ctx context.Context, pairAddr, owner sdk.AccAddress) math.Int {
	return k.lpBalanceOf(ctx, pairAddr, owner)
}

func (k Keeper) lpBalanceOf(ctx context.Context, pairAddr, owner sdk.AccAddress) math.Int {
	bz := k.getStore(ctx).Get(types.LPBalanceKey(pairAddr, owner))
	if bz == nil {
		return math.ZeroInt()
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(err)
	}
	return amount
}

func (k Keeper) setLPBalance(ctx context.Context, pairAddr, owner sdk.AccAddress, amount math.Int) {
	store := k.getStore(ctx)
	key := types.LPBalanceKey(pairAddr, owner)
	if amount.IsZero() {
		store.Delete(key)
		return
	}
	bz, err := amount.Marshal()
	if err != nil {
		panic(err)
	}
	store.Set(key, bz)
}

// IterateLPBalances calls cb for every non-zero LP balance until cb returns true.
func (k Keeper) IterateLPBalances(ctx context.Context, cb func(balance types.LPBalance) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.LPBalanceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		addrs := splitLengthPrefixed(iterator.Key()[len(types.LPBalanceKeyPrefix):])
		if len(addrs) != 2 {
			panic("malformed lp balance key")
		}

		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			panic(err)
		}
		if cb(types.LPBalance{Pair: addrs[0], Owner: addrs[1], Amount: amount}) {
			break
		}
	}
}

// LPAllowance returns the LP shares spender may move on behalf of owner.
func (k Keeper) LPAllowance(ctx context.Context, pairAddr, owner, spender sdk.AccAddress) math.Int {
	bz := k.getStore(ctx).Get(types.LPAllowanceKey(pairAddr, owner, spender))
	if bz == nil {
		return math.ZeroInt()
	}
	var amount math.Int
	if err := amount.Unmarshal(bz); err != nil {
		panic(err)
	}
	return amount
}

func (k Keeper) setLPAllowance(ctx context.Context, pairAddr, owner, spender sdk.AccAddress, amount math.Int) {
	store := k.getStore(ctx)
	key := types.LPAllowanceKey(pairAddr, owner, spender)
	if amount.IsZero() {
		store.Delete(key)
		return
	}
	bz, err := amount.Marshal()
	if err != nil {
		panic(err)
	}
	store.Set(key, bz)
}

// IterateLPAllowances calls cb for every non-zero LP allowance until cb returns true.
func (k Keeper) IterateLPAllowances(ctx context.Context, cb func(allowance types.LPAllowance) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.LPAllowanceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		addrs := splitLengthPrefixed(iterator.Key()[len(types.LPAllowanceKeyPrefix):])
		if len(addrs) != 3 {
			panic("malformed lp allowance key")
		}

		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			panic(err)
		}
		if cb(types.LPAllowance{Pair: addrs[0], Owner: addrs[1], Spender: addrs[2], Amount: amount}) {
			break
		}
	}
}

// LPNonce returns the next permit nonce of owner.
func (k Keeper) LPNonce(ctx context.Context, pairAddr, owner sdk.AccAddress) uint64 {
	bz := k.getStore(ctx).Get(types.LPNonceKey(pairAddr, owner))
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

func (k Keeper) setLPNonce(ctx context.Context, pairAddr, owner sdk.AccAddress, nonce uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, nonce)
	k.getStore(ctx).Set(types.LPNonceKey(pairAddr, owner), bz)
}

// IterateLPNonces calls cb for every used permit nonce until cb returns true.
func (k Keeper) IterateLPNonces(ctx context.Context, cb func(nonce types.LPNonce) (stop bool)) {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.LPNonceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		addrs := splitLengthPrefixed(iterator.Key()[len(types.LPNonceKeyPrefix):])
		if len(addrs) != 2 {
			panic("malformed lp nonce key")
		}
		if cb(types.LPNonce{Pair: addrs[0], Owner: addrs[1], Nonce: binary.BigEndian.Uint64(iterator.Value())}) {
			break
		}
	}
}

// splitLengthPrefixed splits a key built from address.MustLengthPrefix parts.
func splitLengthPrefixed(key []byte) []sdk.AccAddress {
	var addrs []sdk.AccAddress
	for len(key) > 0 {
		n := int(key[0])
		if len(key) < 1+n || n > address.MaxAddrLen {
			return nil
		}
		addrs = append(addrs, sdk.AccAddress(key[1:1+n]))
		key = key[1+n:]
	}
	return addrs
}

func (k Keeper) emitLPTransfer(ctx context.Context, pairAddr, from, to sdk.AccAddress, value math.Int) {
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyPair, pairAddr.String()),
			sdk.NewAttribute(types.AttributeKeyFrom, from.String()),
			sdk.NewAttribute(types.AttributeKeyTo, to.String()),
			sdk.NewAttribute(types.AttributeKeyValue, value.String()),
		),
	)
}

// mintLP credits shares to `to` and grows the supply held on pair.
func (k Keeper) mintLP(ctx context.Context, pair *types.Pair, to sdk.AccAddress, value math.Int) {
	pair.TotalSupply = pair.TotalSupply.Add(value)
	k.setLPBalance(ctx, pair.Address, to, k.lpBalanceOf(ctx, pair.Address, to).Add(value))
	k.emitLPTransfer(ctx, pair.Address, types.ZeroAddress, to, value)
	k.metrics.LPTokenSupply.WithLabelValues(pair.Address.String()).Set(intToFloat(pair.TotalSupply))
}

// burnLP destroys shares of from and shrinks the supply held on pair.
func (k Keeper) burnLP(ctx context.Context, pair *types.Pair, from sdk.AccAddress, value math.Int) error {
	balance := k.lpBalanceOf(ctx, pair.Address, from)
	if balance.LT(value) {
		return types.ErrInsufficientBalance.Wrap(types.ReasonInsufficientLPBalance)
	}
	pair.TotalSupply = pair.TotalSupply.Sub(value)
	k.setLPBalance(ctx, pair.Address, from, balance.Sub(value))
	k.emitLPTransfer(ctx, pair.Address, from, types.ZeroAddress, value)
	k.metrics.LPTokenSupply.WithLabelValues(pair.Address.String()).Set(intToFloat(pair.TotalSupply))
	return nil
}

func (k Keeper) lpTransfer(ctx context.Context, pairAddr, from, to sdk.AccAddress, value math.Int) error {
	if !k.hasPairRecord(ctx, pairAddr) {
		return types.ErrPairNotFound.Wrapf("pair %s does not exist", pairAddr)
	}
	if types.IsZeroAddress(to) {
		return types.ErrInvalidAddressParameters.Wrap(types.ReasonTransferToZero)
	}
	if value.IsNil() || value.IsNegative() {
		return types.ErrInsufficientAmount.Wrap("lp transfer amount must be non-negative")
	}

	balance := k.lpBalanceOf(ctx, pairAddr, from)
	if balance.LT(value) {
		return types.ErrInsufficientBalance.Wrap(types.ReasonInsufficientLPBalance)
	}
	k.setLPBalance(ctx, pairAddr, from, balance.Sub(value))
	k.setLPBalance(ctx, pairAddr, to, k.lpBalanceOf(ctx, pairAddr, to).Add(value))
	k.emitLPTransfer(ctx, pairAddr, from, to, value)
	return nil
}

func (k Keeper) lpApprove(ctx context.Context, pairAddr, owner, spender sdk.AccAddress, value math.Int) error {
	if !k.hasPairRecord(ctx, pairAddr) {
		return types.ErrPairNotFound.Wrapf("pair %s does not exist", pairAddr)
	}
	if types.IsZeroAddress(spender) {
		return types.ErrInvalidAddressParameters.Wrap(types.ReasonApproveToZero)
	}
	if value.IsNil() || value.IsNegative() {
		return types.ErrInsufficientAmount.Wrap("lp allowance must be non-negative")
	}

	k.setLPAllowance(ctx, pairAddr, owner, spender, value)
	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeApproval,
			sdk.NewAttribute(types.AttributeKeyPair, pairAddr.String()),
			sdk.NewAttribute(types.AttributeKeyOwner, owner.String()),
			sdk.NewAttribute(types.AttributeKeySpender, spender.String()),
			sdk.NewAttribute(types.AttributeKeyValue, value.String()),
		),
	)
	return nil
}

func (k Keeper) lpTransferFrom(ctx context.Context, pairAddr, spender, from, to sdk.AccAddress, value math.Int) error {
	allowance := k.LPAllowance(ctx, pairAddr, from, spender)
	if !allowance.Equal(types.MaxUint256) {
		if allowance.LT(value) {
			return types.ErrInsufficientAllowance.Wrap(types.ReasonInsufficientLPAllowance)
		}
		k.setLPAllowance(ctx, pairAddr, from, spender, allowance.Sub(value))
	}
	return k.lpTransfer(ctx, pairAddr, from, to, value)
}

// LPTransfer moves LP shares of a pair from `from` to `to`.
func (k Keeper) LPTransfer(ctx context.Context, pairAddr, from, to sdk.AccAddress, value math.Int) error {
	return k.atomic(ctx, func(ctx context.Context) error {
		return k.lpTransfer(ctx, pairAddr, from, to, value)
	})
}

// LPApprove sets the LP shares spender may move on behalf of owner.
func (k Keeper) LPApprove(ctx context.Context, pairAddr, owner, spender sdk.AccAddress, value math.Int) error {
	return k.lpApprove(ctx, pairAddr, owner, spender, value)
}

// LPTransferFrom moves LP shares of `from` on its behalf, spending allowance
// unless it was granted at MaxUint256.
func (k Keeper) LPTransferFrom(ctx context.Context, pairAddr, spender, from, to sdk.AccAddress, value math.Int) error {
	return k.atomic(ctx, func(ctx context.Context) error {
		return k.lpTransferFrom(ctx, pairAddr, spender, from, to, value)
	})
}

// DomainSeparator returns the permit signing domain of a pair's LP token.
func (k Keeper) DomainSeparator(ctx context.Context, pairAddr sdk.AccAddress) ([]byte, error) {
	pair, err := k.GetPairRecord(ctx, pairAddr)
	if err != nil {
		return nil, err
	}
	return types.DomainSeparator(pair.Name, sdk.UnwrapSDKContext(ctx).ChainID(), pairAddr), nil
}

// PermitTypehash returns the type hash of the permit struct.
func (k Keeper) PermitTypehash() []byte {
	return append([]byte{}, types.PermitTypehash...)
}

// Permit approves spender for value on behalf of owner, authorized by owner's
// secp256k1 signature over the permit digest instead of an owner transaction.
func (k Keeper) Permit(
	ctx context.Context,
	pairAddr, owner, spender sdk.AccAddress,
	value math.Int,
	deadline uint64,
	pubKey *secp256k1.PubKey,
	signature []byte,
) error {
	return k.atomic(ctx, func(ctx context.Context) error {
		return k.permit(ctx, pairAddr, owner, spender, value, deadline, pubKey, signature)
	})
}

func (k Keeper) permit(
	ctx context.Context,
	pairAddr, owner, spender sdk.AccAddress,
	value math.Int,
	deadline uint64,
	pubKey *secp256k1.PubKey,
	signature []byte,
) error {
	if err := checkDeadline(ctx, deadline, types.ReasonExpired); err != nil {
		return err
	}
	domain, err := k.DomainSeparator(ctx, pairAddr)
	if err != nil {
		return err
	}

	nonce := k.LPNonce(ctx, pairAddr, owner)
	digest := types.PermitDigest(domain, owner, spender, value, nonce, deadline)
	if pubKey == nil || types.IsZeroAddress(owner) ||
		!owner.Equals(sdk.AccAddress(pubKey.Address())) ||
		!pubKey.VerifySignature(digest, signature) {
		return types.ErrInvalidSignature.Wrap(types.ReasonInvalidSignature)
	}
	k.setLPNonce(ctx, pairAddr, owner, nonce+1)

	return k.lpApprove(ctx, pairAddr, owner, spender, value)
}
