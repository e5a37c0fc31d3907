package keeper

import (
	"context"
	"sync"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

// Keeper of the dex store. It hosts the factory, every pair and the router.
type Keeper struct {
	storeKey    storetypes.StoreKey
	bankKeeper  types.BankKeeper
	tokenKeeper types.TokenKeeper
	metrics     *DEXMetrics

	// callees holds the flash swap receivers, keyed by address.
	callees *calleeRegistry
}

type calleeRegistry struct {
	mu      sync.RWMutex
	callees map[string]types.DexCallee
}

// NewKeeper creates a new dex Keeper instance
func NewKeeper(
	key storetypes.StoreKey,
	bankKeeper types.BankKeeper,
	tokenKeeper types.TokenKeeper,
) *Keeper {
	return &Keeper{
		storeKey:    key,
		bankKeeper:  bankKeeper,
		tokenKeeper: tokenKeeper,
		metrics:     NewDEXMetrics(),
		callees:     &calleeRegistry{callees: make(map[string]types.DexCallee)},
	}
}

// Logger returns a module-specific logger.
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", "x/"+types.ModuleName)
}

// getStore returns the KVStore for the dex module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// SetSwapCallee registers the flash swap receiver of addr. A nil callee
// removes the registration.
func (k Keeper) SetSwapCallee(addr sdk.AccAddress, callee types.DexCallee) {
	k.callees.mu.Lock()
	defer k.callees.mu.Unlock()
	if callee == nil {
		delete(k.callees.callees, addr.String())
		return
	}
	k.callees.callees[addr.String()] = callee
}

func (k Keeper) swapCallee(addr sdk.AccAddress) (types.DexCallee, bool) {
	k.callees.mu.RLock()
	defer k.callees.mu.RUnlock()
	callee, ok := k.callees.callees[addr.String()]
	return callee, ok
}

// atomic runs fn against a branch of the store and commits it, together with
// the events fn emitted, only when fn succeeds.
func (k Keeper) atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	cacheCtx, write := sdk.UnwrapSDKContext(ctx).CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	write()
	return nil
}

// checkDeadline fails once the block time is past deadline (unix seconds).
func checkDeadline(ctx context.Context, deadline uint64, reason string) error {
	now := sdk.UnwrapSDKContext(ctx).BlockTime().Unix()
	if now > 0 && uint64(now) > deadline {
		return types.ErrExpired.Wrap(reason)
	}
	return nil
}
