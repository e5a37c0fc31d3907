package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DefaultNativeDenom is the native coin the router wraps by default.
const DefaultNativeDenom = "peb"

// Params defines the router-facing parameters of the DEX module.
type Params struct {
	// NativeDenom is the bank denom of the chain's native coin (KLAY).
	NativeDenom string `json:"native_denom"`

	// WrappedNative is the token that wraps NativeDenom one to one (WKLAY).
	// Empty disables the native coin router variants.
	WrappedNative sdk.AccAddress `json:"wrapped_native,omitempty"`
}

// DefaultParams returns a default set of parameters
func DefaultParams() Params {
	return Params{
		NativeDenom: DefaultNativeDenom,
	}
}

// Validate validates the set of params
func (p Params) Validate() error {
	if err := sdk.ValidateDenom(p.NativeDenom); err != nil {
		return fmt.Errorf("invalid native denom: %w", err)
	}
	if len(p.WrappedNative) > 0 && IsZeroAddress(p.WrappedNative) {
		return fmt.Errorf("wrapped native token cannot be the zero address")
	}
	return nil
}
