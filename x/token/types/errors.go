package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Token module sentinel errors
var (
	ErrTransferToZeroAddress = sdkerrors.Register(ModuleName, 2, "KIP7: transfer to the zero address")
	ErrInsufficientAllowance = sdkerrors.Register(ModuleName, 3, "KIP7: insufficient allowance")
	ErrInsufficientBalance   = sdkerrors.Register(ModuleName, 4, "KIP7: transfer amount exceeds balance")
	ErrTokenNotFound         = sdkerrors.Register(ModuleName, 5, "token not found")
	ErrInvalidToken          = sdkerrors.Register(ModuleName, 6, "invalid token")
	ErrInvalidAmount         = sdkerrors.Register(ModuleName, 7, "invalid amount")
	ErrUnauthorized          = sdkerrors.Register(ModuleName, 8, "unauthorized")
	ErrNotWrappedNative      = sdkerrors.Register(ModuleName, 9, "token does not wrap a native denom")
	ErrInvalidGenesis        = sdkerrors.Register(ModuleName, 10, "invalid genesis")
	ErrBurnFromZeroAddress   = sdkerrors.Register(ModuleName, 11, "KIP7: burn from the zero address")
	ErrApproveToZeroAddress  = sdkerrors.Register(ModuleName, 12, "KIP7: approve to the zero address")
	ErrMintToZeroAddress     = sdkerrors.Register(ModuleName, 13, "KIP7: mint to the zero address")
)
