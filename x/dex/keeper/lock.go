package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

// withPairLock runs fn while holding the pair's reentrancy lock. The lock is a
// KVStore marker so nested calls through any context branch observe it.
func (k Keeper) withPairLock(ctx context.Context, pair sdk.AccAddress, fn func() error) error {
	if err := k.acquirePairLock(ctx, pair); err != nil {
		return err
	}
	defer k.releasePairLock(ctx, pair)

	return fn()
}

func (k Keeper) acquirePairLock(ctx context.Context, pair sdk.AccAddress) error {
	store := k.getStore(ctx)
	key := types.LockKey(pair)
	if store.Has(key) {
		return types.ErrLocked.Wrap(types.ReasonLocked)
	}
	store.Set(key, []byte{0x01})
	return nil
}

func (k Keeper) releasePairLock(ctx context.Context, pair sdk.AccAddress) {
	k.getStore(ctx).Delete(types.LockKey(pair))
}

// IsPairLocked reports whether a pair operation is in progress.
func (k Keeper) IsPairLocked(ctx context.Context, pair sdk.AccAddress) bool {
	return k.getStore(ctx).Has(types.LockKey(pair))
}
