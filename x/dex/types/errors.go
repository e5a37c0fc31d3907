package types

import (
	"cosmossdk.io/errors"
)

// DEX module sentinel errors. Every failure wraps one of these with the
// reason string callers match against (e.g. ErrInsufficientAmount.Wrap("DEX: K")).
var (
	ErrInvalidAddressParameters = errors.Register(ModuleName, 2, "invalid address parameters")
	ErrInvalidPath              = errors.Register(ModuleName, 3, "invalid path")
	ErrInsufficientAmount       = errors.Register(ModuleName, 4, "insufficient amount")
	ErrInsufficientLiquidity    = errors.Register(ModuleName, 5, "insufficient liquidity")
	ErrInsufficientInputAmount  = errors.Register(ModuleName, 6, "insufficient input amount")
	ErrInsufficientOutputAmount = errors.Register(ModuleName, 7, "insufficient output amount")
	ErrExcessiveInputAmount     = errors.Register(ModuleName, 8, "excessive input amount")
	ErrUnauthorized             = errors.Register(ModuleName, 9, "unauthorized")
	ErrExpired                  = errors.Register(ModuleName, 10, "expired")
	ErrLocked                   = errors.Register(ModuleName, 11, "pair locked")
	ErrOverflow                 = errors.Register(ModuleName, 12, "overflow")
	ErrPairNotFound             = errors.Register(ModuleName, 13, "pair not found")
	ErrInvalidSignature         = errors.Register(ModuleName, 14, "invalid signature")
	ErrInvalidCallee            = errors.Register(ModuleName, 15, "invalid swap callee")
	ErrInsufficientBalance      = errors.Register(ModuleName, 16, "insufficient balance")
	ErrInsufficientAllowance    = errors.Register(ModuleName, 17, "insufficient allowance")
	ErrInvalidGenesis           = errors.Register(ModuleName, 18, "invalid genesis")
)

// Reason strings carried by the sentinels above.
const (
	ReasonK                         = "DEX: K"
	ReasonLocked                    = "DEX: LOCKED"
	ReasonOverflow                  = "DEX: OVERFLOW"
	ReasonExpired                   = "DEX: EXPIRED"
	ReasonInvalidSignature          = "DEX: INVALID_SIGNATURE"
	ReasonInvalidTo                 = "DEX: INVALID_TO"
	ReasonIdenticalAddresses        = "DEX: IDENTICAL_ADDRESSES"
	ReasonZeroAddress               = "DEX: ZERO_ADDRESS"
	ReasonPairExists                = "DEX: PAIR_EXISTS"
	ReasonSetterZeroAddress         = "DEX: SETTER_ZERO_ADDRESS"
	ReasonForbidden                 = "DEX: FORBIDDEN"
	ReasonInsufficientLiquidity     = "DEX: INSUFFICIENT_LIQUIDITY"
	ReasonInsufficientInputAmount   = "DEX: INSUFFICIENT_INPUT_AMOUNT"
	ReasonInsufficientOutputAmount  = "DEX: INSUFFICIENT_OUTPUT_AMOUNT"
	ReasonInsufficientLiquidityMint = "DEX: INSUFFICIENT_LIQUIDITY_MINTED"
	ReasonInsufficientLiquidityBurn = "DEX: INSUFFICIENT_LIQUIDITY_BURNED"
	ReasonTransferToZero            = "KIP7: transfer to the zero address"
	ReasonApproveToZero             = "KIP7: approve to the zero address"
	ReasonInsufficientLPBalance     = "KIP7: transfer amount exceeds balance"
	ReasonInsufficientLPAllowance   = "KIP7: insufficient allowance"
	ReasonLibraryInsufficientAmount = "DexLibrary: INSUFFICIENT_AMOUNT"
	ReasonLibraryInsufficientLiq    = "DexLibrary: INSUFFICIENT_LIQUIDITY"
	ReasonLibraryInsufficientInput  = "DexLibrary: INSUFFICIENT_INPUT_AMOUNT"
	ReasonLibraryInsufficientOutput = "DexLibrary: INSUFFICIENT_OUTPUT_AMOUNT"
	ReasonLibraryInvalidPath        = "DexLibrary: INVALID_PATH"
	ReasonRouterInsufficientA       = "DexRouter: INSUFFICIENT_A_AMOUNT"
	ReasonRouterInsufficientB       = "DexRouter: INSUFFICIENT_B_AMOUNT"
	ReasonRouterInsufficientOutput  = "DexRouter: INSUFFICIENT_OUTPUT_AMOUNT"
	ReasonRouterExcessiveInput      = "DexRouter: EXCESSIVE_INPUT_AMOUNT"
	ReasonRouterRecipientZero       = "DexRouter: RECIPIENT_ZERO_ADDRESS"
	ReasonRouterSwapToZero          = "DexRouter: SWAP_TO_ZERO_ADDRESS"
	ReasonRouterInvalidPath         = "DexRouter: INVALID_PATH"
	ReasonRouterExpired             = "DexRouter: EXPIRED"
	ReasonRouterInsufficientValue   = "DexRouter: INSUFFICIENT_VALUE"
)
