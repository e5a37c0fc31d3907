package types

import (
	stdmath "math"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// NoDeadline never expires.
const NoDeadline uint64 = stdmath.MaxUint64

// MsgAddLiquidity adds liquidity to the pair of TokenA and TokenB, creating it
// when it does not exist.
type MsgAddLiquidity struct {
	Sender         sdk.AccAddress `json:"sender"`
	TokenA         sdk.AccAddress `json:"token_a"`
	TokenB         sdk.AccAddress `json:"token_b"`
	AmountADesired math.Int       `json:"amount_a_desired"`
	AmountBDesired math.Int       `json:"amount_b_desired"`
	AmountAMin     math.Int       `json:"amount_a_min"`
	AmountBMin     math.Int       `json:"amount_b_min"`
	To             sdk.AccAddress `json:"to"`
	Deadline       uint64         `json:"deadline"`
}

// MsgAddLiquidityResponse reports the deposited amounts and minted shares.
type MsgAddLiquidityResponse struct {
	AmountA   math.Int `json:"amount_a"`
	AmountB   math.Int `json:"amount_b"`
	Liquidity math.Int `json:"liquidity"`
}

// MsgAddLiquidityKLAY adds liquidity to the pair of Token and the wrapped
// native coin. Value is the native amount attached to the call.
type MsgAddLiquidityKLAY struct {
	Sender             sdk.AccAddress `json:"sender"`
	Token              sdk.AccAddress `json:"token"`
	AmountTokenDesired math.Int       `json:"amount_token_desired"`
	AmountTokenMin     math.Int       `json:"amount_token_min"`
	AmountKLAYMin      math.Int       `json:"amount_klay_min"`
	To                 sdk.AccAddress `json:"to"`
	Deadline           uint64         `json:"deadline"`
	Value              math.Int       `json:"value"`
}

// MsgAddLiquidityKLAYResponse reports the deposited amounts and minted shares.
type MsgAddLiquidityKLAYResponse struct {
	AmountToken math.Int `json:"amount_token"`
	AmountKLAY  math.Int `json:"amount_klay"`
	Liquidity   math.Int `json:"liquidity"`
}

// MsgRemoveLiquidity burns LP shares of the TokenA/TokenB pair.
type MsgRemoveLiquidity struct {
	Sender     sdk.AccAddress `json:"sender"`
	TokenA     sdk.AccAddress `json:"token_a"`
	TokenB     sdk.AccAddress `json:"token_b"`
	Liquidity  math.Int       `json:"liquidity"`
	AmountAMin math.Int       `json:"amount_a_min"`
	AmountBMin math.Int       `json:"amount_b_min"`
	To         sdk.AccAddress `json:"to"`
	Deadline   uint64         `json:"deadline"`
}

// MsgRemoveLiquidityResponse reports the withdrawn amounts.
type MsgRemoveLiquidityResponse struct {
	AmountA math.Int `json:"amount_a"`
	AmountB math.Int `json:"amount_b"`
}

// MsgRemoveLiquidityKLAY burns LP shares of the Token/wrapped native pair and
// pays the native side out unwrapped.
type MsgRemoveLiquidityKLAY struct {
	Sender         sdk.AccAddress `json:"sender"`
	Token          sdk.AccAddress `json:"token"`
	Liquidity      math.Int       `json:"liquidity"`
	AmountTokenMin math.Int       `json:"amount_token_min"`
	AmountKLAYMin  math.Int       `json:"amount_klay_min"`
	To             sdk.AccAddress `json:"to"`
	Deadline       uint64         `json:"deadline"`
}

// MsgRemoveLiquidityKLAYResponse reports the withdrawn amounts.
type MsgRemoveLiquidityKLAYResponse struct {
	AmountToken math.Int `json:"amount_token"`
	AmountKLAY  math.Int `json:"amount_klay"`
}

// PermitSignature is an owner's signature over an LP permit digest.
type PermitSignature struct {
	// ApproveMax signs for the maximum allowance instead of the liquidity amount.
	ApproveMax bool              `json:"approve_max"`
	PubKey     *secp256k1.PubKey `json:"pub_key"`
	Signature  []byte            `json:"signature"`
}

// MsgRemoveLiquidityWithPermit is MsgRemoveLiquidity preceded by an LP permit
// to the router.
type MsgRemoveLiquidityWithPermit struct {
	MsgRemoveLiquidity
	Permit PermitSignature `json:"permit"`
}

// MsgRemoveLiquidityKLAYWithPermit is MsgRemoveLiquidityKLAY preceded by an LP
// permit to the router.
type MsgRemoveLiquidityKLAYWithPermit struct {
	MsgRemoveLiquidityKLAY
	Permit PermitSignature `json:"permit"`
}

// MsgSwapExactTokensForTokens sells exactly AmountIn of Path[0].
type MsgSwapExactTokensForTokens struct {
	Sender       sdk.AccAddress   `json:"sender"`
	AmountIn     math.Int         `json:"amount_in"`
	AmountOutMin math.Int         `json:"amount_out_min"`
	Path         []sdk.AccAddress `json:"path"`
	To           sdk.AccAddress   `json:"to"`
	Deadline     uint64           `json:"deadline"`
}

// MsgSwapTokensForExactTokens buys exactly AmountOut of the last path token.
type MsgSwapTokensForExactTokens struct {
	Sender      sdk.AccAddress   `json:"sender"`
	AmountOut   math.Int         `json:"amount_out"`
	AmountInMax math.Int         `json:"amount_in_max"`
	Path        []sdk.AccAddress `json:"path"`
	To          sdk.AccAddress   `json:"to"`
	Deadline    uint64           `json:"deadline"`
}

// MsgSwapExactKLAYForTokens sells exactly Value of the native coin.
type MsgSwapExactKLAYForTokens struct {
	Sender       sdk.AccAddress   `json:"sender"`
	Value        math.Int         `json:"value"`
	AmountOutMin math.Int         `json:"amount_out_min"`
	Path         []sdk.AccAddress `json:"path"`
	To           sdk.AccAddress   `json:"to"`
	Deadline     uint64           `json:"deadline"`
}

// MsgSwapKLAYForExactTokens buys exactly AmountOut paying at most Value of the
// native coin; the unspent remainder is refunded.
type MsgSwapKLAYForExactTokens struct {
	Sender    sdk.AccAddress   `json:"sender"`
	Value     math.Int         `json:"value"`
	AmountOut math.Int         `json:"amount_out"`
	Path      []sdk.AccAddress `json:"path"`
	To        sdk.AccAddress   `json:"to"`
	Deadline  uint64           `json:"deadline"`
}

// MsgSwapResponse lists the amount of every token along the swap path.
type MsgSwapResponse struct {
	Amounts []math.Int `json:"amounts"`
}

func validateSender(sender sdk.AccAddress) error {
	if IsZeroAddress(sender) {
		return sdkerrors.Wrap(ErrInvalidAddressParameters, "sender cannot be empty")
	}
	return nil
}

func validateRecipient(to sdk.AccAddress, reason string) error {
	if IsZeroAddress(to) {
		return ErrInvalidAddressParameters.Wrap(reason)
	}
	return nil
}

// namedAmount pairs a message field with its value so checks run in field order.
type namedAmount struct {
	name   string
	amount math.Int
}

func validateAmounts(amounts ...namedAmount) error {
	for _, a := range amounts {
		if a.amount.IsNil() || a.amount.IsNegative() {
			return sdkerrors.Wrapf(ErrInsufficientAmount, "%s must be non-negative", a.name)
		}
	}
	return nil
}

func validatePath(path []sdk.AccAddress) error {
	if len(path) < 2 {
		return ErrInvalidPath.Wrap(ReasonLibraryInvalidPath)
	}
	for _, token := range path {
		if IsZeroAddress(token) {
			return ErrInvalidPath.Wrap(ReasonRouterInvalidPath)
		}
	}
	return nil
}

// GetSigners returns the account that authorizes the message.
func (msg MsgAddLiquidity) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{msg.Sender}
}

// ValidateBasic performs stateless checks.
func (msg MsgAddLiquidity) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	if err := validateRecipient(msg.To, ReasonRouterRecipientZero); err != nil {
		return err
	}
	return validateAmounts(
		namedAmount{"amount_a_desired", msg.AmountADesired},
		namedAmount{"amount_b_desired", msg.AmountBDesired},
		namedAmount{"amount_a_min", msg.AmountAMin},
		namedAmount{"amount_b_min", msg.AmountBMin},
	)
}

// GetSigners returns the account that authorizes the message.
func (msg MsgAddLiquidityKLAY) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{msg.Sender}
}

// ValidateBasic performs stateless checks.
func (msg MsgAddLiquidityKLAY) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	if err := validateRecipient(msg.To, ReasonRouterRecipientZero); err != nil {
		return err
	}
	return validateAmounts(
		namedAmount{"amount_token_desired", msg.AmountTokenDesired},
		namedAmount{"amount_token_min", msg.AmountTokenMin},
		namedAmount{"amount_klay_min", msg.AmountKLAYMin},
		namedAmount{"value", msg.Value},
	)
}

// GetSigners returns the account that authorizes the message.
func (msg MsgRemoveLiquidity) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{msg.Sender}
}

// ValidateBasic performs stateless checks.
func (msg MsgRemoveLiquidity) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	if err := validateRecipient(msg.To, ReasonRouterRecipientZero); err != nil {
		return err
	}
	return validateAmounts(
		namedAmount{"liquidity", msg.Liquidity},
		namedAmount{"amount_a_min", msg.AmountAMin},
		namedAmount{"amount_b_min", msg.AmountBMin},
	)
}

// GetSigners returns the account that authorizes the message.
func (msg MsgRemoveLiquidityKLAY) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{msg.Sender}
}

// ValidateBasic performs stateless checks.
func (msg MsgRemoveLiquidityKLAY) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	if err := validateRecipient(msg.To, ReasonRouterRecipientZero); err != nil {
		return err
	}
	return validateAmounts(
		namedAmount{"liquidity", msg.Liquidity},
		namedAmount{"amount_token_min", msg.AmountTokenMin},
		namedAmount{"amount_klay_min", msg.AmountKLAYMin},
	)
}

// ValidateBasic performs stateless checks.
func (p PermitSignature) ValidateBasic() error {
	if p.PubKey == nil || len(p.Signature) == 0 {
		return ErrInvalidSignature.Wrap(ReasonInvalidSignature)
	}
	return nil
}

// GetSigners returns the account that authorizes the message.
func (msg MsgSwapExactTokensForTokens) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{msg.Sender}
}

// ValidateBasic performs stateless checks.
func (msg MsgSwapExactTokensForTokens) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	if err := validateRecipient(msg.To, ReasonRouterSwapToZero); err != nil {
		return err
	}
	if err := validatePath(msg.Path); err != nil {
		return err
	}
	return validateAmounts(
		namedAmount{"amount_in", msg.AmountIn},
		namedAmount{"amount_out_min", msg.AmountOutMin},
	)
}

// GetSigners returns the account that authorizes the message.
func (msg MsgSwapTokensForExactTokens) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{msg.Sender}
}

// ValidateBasic performs stateless checks.
func (msg MsgSwapTokensForExactTokens) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	if err := validateRecipient(msg.To, ReasonRouterSwapToZero); err != nil {
		return err
	}
	if err := validatePath(msg.Path); err != nil {
		return err
	}
	return validateAmounts(
		namedAmount{"amount_out", msg.AmountOut},
		namedAmount{"amount_in_max", msg.AmountInMax},
	)
}

// GetSigners returns the account that authorizes the message.
func (msg MsgSwapExactKLAYForTokens) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{msg.Sender}
}

// ValidateBasic performs stateless checks.
func (msg MsgSwapExactKLAYForTokens) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	if err := validateRecipient(msg.To, ReasonRouterSwapToZero); err != nil {
		return err
	}
	if err := validatePath(msg.Path); err != nil {
		return err
	}
	return validateAmounts(
		namedAmount{"value", msg.Value},
		namedAmount{"amount_out_min", msg.AmountOutMin},
	)
}

// GetSigners returns the account that authorizes the message.
func (msg MsgSwapKLAYForExactTokens) GetSigners() []sdk.AccAddress {
	return []sdk.AccAddress{msg.Sender}
}

// ValidateBasic performs stateless checks.
func (msg MsgSwapKLAYForExactTokens) ValidateBasic() error {
	if err := validateSender(msg.Sender); err != nil {
		return err
	}
	if err := validateRecipient(msg.To, ReasonRouterSwapToZero); err != nil {
		return err
	}
	if err := validatePath(msg.Path); err != nil {
		return err
	}
	return validateAmounts(
		namedAmount{"value", msg.Value},
		namedAmount{"amount_out", msg.AmountOut},
	)
}

// ValidateBasic performs stateless checks.
func (msg MsgRemoveLiquidityWithPermit) ValidateBasic() error {
	if err := msg.MsgRemoveLiquidity.ValidateBasic(); err != nil {
		return err
	}
	return msg.Permit.ValidateBasic()
}

// ValidateBasic performs stateless checks.
func (msg MsgRemoveLiquidityKLAYWithPermit) ValidateBasic() error {
	if err := msg.MsgRemoveLiquidityKLAY.ValidateBasic(); err != nil {
		return err
	}
	return msg.Permit.ValidateBasic()
}
