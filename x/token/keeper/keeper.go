package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/x/token/types"
)

// Keeper of the token store
type Keeper struct {
	storeKey   storetypes.StoreKey
	bankKeeper types.BankKeeper
}

// NewKeeper creates a new token Keeper instance
func NewKeeper(key storetypes.StoreKey, bankKeeper types.BankKeeper) Keeper {
	return Keeper{
		storeKey:   key,
		bankKeeper: bankKeeper,
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// getStore returns the KVStore for the token module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

func (k Keeper) nextTokenSeq(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	var seq uint64
	if bz := store.Get(types.TokenCountKey); bz != nil {
		seq = binary.BigEndian.Uint64(bz)
	}
	k.setTokenCount(ctx, seq+1)
	return seq
}

func (k Keeper) setTokenCount(ctx context.Context, count uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, count)
	k.getStore(ctx).Set(types.TokenCountKey, bz)
}

// GetTokenCount returns the number of tokens ever created.
func (k Keeper) GetTokenCount(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.TokenCountKey)
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

// GetToken returns the token record at addr.
func (k Keeper) GetToken(ctx context.Context, token sdk.AccAddress) (types.Token, bool) {
	bz := k.getStore(ctx).Get(types.TokenKey(token))
	if bz == nil {
		return types.Token{}, false
	}
	var t types.Token
	if err := json.Unmarshal(bz, &t); err != nil {
		panic(fmt.Errorf("failed to unmarshal token %s: %w", token, err))
	}
	return t, true
}

// HasToken reports whether a token exists at addr.
func (k Keeper) HasToken(ctx context.Context, token sdk.AccAddress) bool {
	return k.getStore(ctx).Has(types.TokenKey(token))
}

func (k Keeper) mustGetToken(ctx context.Context, token sdk.AccAddress) (types.Token, error) {
	t, found := k.GetToken(ctx, token)
	if !found {
		return types.Token{}, types.ErrTokenNotFound.Wrapf("token %s", token)
	}
	return t, nil
}

// SetToken stores a token record.
func (k Keeper) SetToken(ctx context.Context, t types.Token) error {
	bz, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	k.getStore(ctx).Set(types.TokenKey(t.Address), bz)
	return nil
}

// IterateTokens iterates over all tokens in creation key order.
func (k Keeper) IterateTokens(ctx context.Context, cb func(t types.Token) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.TokenKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var t types.Token
		if err := json.Unmarshal(iterator.Value(), &t); err != nil {
			return fmt.Errorf("failed to unmarshal token: %w", err)
		}
		if cb(t) {
			break
		}
	}
	return nil
}

// GetAllTokens returns every token.
func (k Keeper) GetAllTokens(ctx context.Context) ([]types.Token, error) {
	var tokens []types.Token
	err := k.IterateTokens(ctx, func(t types.Token) bool {
		tokens = append(tokens, t)
		return false
	})
	return tokens, err
}

// TotalSupply returns the total supply of token.
func (k Keeper) TotalSupply(ctx context.Context, token sdk.AccAddress) math.Int {
	t, found := k.GetToken(ctx, token)
	if !found {
		return math.ZeroInt()
	}
	return t.TotalSupply
}

// BalanceOf returns the balance of owner in token.
func (k Keeper) BalanceOf(ctx context.Context, token, owner sdk.AccAddress) math.Int {
	bz := k.getStore(ctx).Get(types.BalanceKey(token, owner))
	if bz == nil {
		return math.ZeroInt()
	}
	var amt math.Int
	if err := amt.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to unmarshal balance: %w", err))
	}
	return amt
}

func (k Keeper) setBalance(ctx context.Context, token, owner sdk.AccAddress, amt math.Int) {
	store := k.getStore(ctx)
	key := types.BalanceKey(token, owner)
	if amt.IsZero() {
		store.Delete(key)
		return
	}
	bz, err := amt.Marshal()
	if err != nil {
		panic(fmt.Errorf("failed to marshal balance: %w", err))
	}
	store.Set(key, bz)
}

// IterateBalances iterates over every non-zero balance of token.
func (k Keeper) IterateBalances(ctx context.Context, token sdk.AccAddress, cb func(owner sdk.AccAddress, amt math.Int) (stop bool)) error {
	store := prefix.NewStore(k.getStore(ctx), types.BalancePrefix(token))
	iterator := store.Iterator(nil, nil)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()
		owner := sdk.AccAddress(key[1 : 1+int(key[0])])
		var amt math.Int
		if err := amt.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("failed to unmarshal balance: %w", err)
		}
		if cb(owner, amt) {
			break
		}
	}
	return nil
}

// Allowance returns how much of owner's token spender may transfer.
func (k Keeper) Allowance(ctx context.Context, token, owner, spender sdk.AccAddress) math.Int {
	bz := k.getStore(ctx).Get(types.AllowanceKey(token, owner, spender))
	if bz == nil {
		return math.ZeroInt()
	}
	var amt math.Int
	if err := amt.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("failed to unmarshal allowance: %w", err))
	}
	return amt
}

func (k Keeper) setAllowance(ctx context.Context, token, owner, spender sdk.AccAddress, amt math.Int) {
	store := k.getStore(ctx)
	key := types.AllowanceKey(token, owner, spender)
	if amt.IsZero() {
		store.Delete(key)
		return
	}
	bz, err := amt.Marshal()
	if err != nil {
		panic(fmt.Errorf("failed to marshal allowance: %w", err))
	}
	store.Set(key, bz)
}

// IterateAllowances iterates over every stored allowance.
func (k Keeper) IterateAllowances(ctx context.Context, cb func(a types.Allowance) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.AllowanceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()[len(types.AllowanceKeyPrefix):]
		parts := make([]sdk.AccAddress, 0, 3)
		for len(parts) < 3 {
			n := int(key[0])
			parts = append(parts, sdk.AccAddress(key[1:1+n]))
			key = key[1+n:]
		}
		var amt math.Int
		if err := amt.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("failed to unmarshal allowance: %w", err)
		}
		if cb(types.Allowance{Token: parts[0], Owner: parts[1], Spender: parts[2], Amount: amt}) {
			break
		}
	}
	return nil
}
