package types

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MaxTransferFeeBps caps the share of every transfer a token may burn.
const MaxTransferFeeBps = 10_000

// MaxAllowance is the allowance that is never decremented by TransferFrom.
var MaxAllowance = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1)))

// Token is the persisted metadata of a fungible token.
type Token struct {
	Address     sdk.AccAddress `json:"address"`
	Owner       sdk.AccAddress `json:"owner"`
	Name        string         `json:"name"`
	Symbol      string         `json:"symbol"`
	Decimals    uint32         `json:"decimals"`
	TotalSupply math.Int       `json:"total_supply"`

	// TransferFeeBps is burned from every transfer, in basis points.
	TransferFeeBps uint32 `json:"transfer_fee_bps,omitempty"`

	// NativeDenom is set on tokens that wrap a bank denom one to one.
	NativeDenom string `json:"native_denom,omitempty"`
}

// IsWrappedNative reports whether the token wraps a bank denom.
func (t Token) IsWrappedNative() bool {
	return t.NativeDenom != ""
}

// TransferFee returns the part of amount burned on transfer.
func (t Token) TransferFee(amount math.Int) math.Int {
	if t.TransferFeeBps == 0 {
		return math.ZeroInt()
	}
	return amount.MulRaw(int64(t.TransferFeeBps)).QuoRaw(MaxTransferFeeBps)
}

// Validate checks the stored invariants of a token record.
func (t Token) Validate() error {
	if IsZeroAddress(t.Address) {
		return fmt.Errorf("token address cannot be empty")
	}
	if t.Symbol == "" {
		return fmt.Errorf("token %s: symbol cannot be empty", t.Address)
	}
	if t.TransferFeeBps > MaxTransferFeeBps {
		return fmt.Errorf("token %s: transfer fee %d exceeds %d bps", t.Address, t.TransferFeeBps, MaxTransferFeeBps)
	}
	if t.IsWrappedNative() {
		if err := sdk.ValidateDenom(t.NativeDenom); err != nil {
			return fmt.Errorf("token %s: %w", t.Address, err)
		}
		if t.TransferFeeBps != 0 {
			return fmt.Errorf("token %s: wrapped native tokens cannot charge a transfer fee", t.Address)
		}
	}
	if t.TotalSupply.IsNil() || t.TotalSupply.IsNegative() {
		return fmt.Errorf("token %s: total supply must be non-negative", t.Address)
	}
	return nil
}

// Balance is a token balance, used in genesis.
type Balance struct {
	Token  sdk.AccAddress `json:"token"`
	Owner  sdk.AccAddress `json:"owner"`
	Amount math.Int       `json:"amount"`
}

// Allowance is a token allowance, used in genesis.
type Allowance struct {
	Token   sdk.AccAddress `json:"token"`
	Owner   sdk.AccAddress `json:"owner"`
	Spender sdk.AccAddress `json:"spender"`
	Amount  math.Int       `json:"amount"`
}
