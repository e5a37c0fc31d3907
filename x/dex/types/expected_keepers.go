package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BankKeeper defines the bank keeper surface the router uses for the native coin.
type BankKeeper interface {
	GetBalance(ctx context.Context, addr sdk.AccAddress, denom string) sdk.Coin
	SendCoins(ctx context.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
}

// TokenKeeper defines the fungible token ledger pairs hold their reserves in.
type TokenKeeper interface {
	HasToken(ctx context.Context, token sdk.AccAddress) bool
	BalanceOf(ctx context.Context, token, owner sdk.AccAddress) math.Int
	Transfer(ctx context.Context, token, from, to sdk.AccAddress, amount math.Int) error
	TransferFrom(ctx context.Context, token, spender, from, to sdk.AccAddress, amount math.Int) error

	// Deposit wraps amount of the token's native denom held by from into token
	// balance of from. Withdraw reverses it.
	Deposit(ctx context.Context, token, from sdk.AccAddress, amount math.Int) error
	Withdraw(ctx context.Context, token, from sdk.AccAddress, amount math.Int) error
}

// DexCallee receives the optimistic outputs of a flash swap and must repay the
// pair before returning.
type DexCallee interface {
	DexCall(ctx context.Context, sender sdk.AccAddress, amount0, amount1 math.Int, data []byte) error
}

// DexCalleeFunc adapts a function to DexCallee.
type DexCalleeFunc func(ctx context.Context, sender sdk.AccAddress, amount0, amount1 math.Int, data []byte) error

// DexCall implements DexCallee.
func (f DexCalleeFunc) DexCall(ctx context.Context, sender sdk.AccAddress, amount0, amount1 math.Int, data []byte) error {
	return f(ctx, sender, amount0, amount1, data)
}
