package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// LockPairForTest sets the reentrancy marker of a pair as an in-flight call would.
func LockPairForTest(k *Keeper, ctx sdk.Context, pair sdk.AccAddress) error {
	return k.acquirePairLock(ctx, pair)
}

// UnlockPairForTest clears the reentrancy marker of a pair.
func UnlockPairForTest(k *Keeper, ctx sdk.Context, pair sdk.AccAddress) {
	k.releasePairLock(ctx, pair)
}
