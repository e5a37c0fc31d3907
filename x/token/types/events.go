package types

// Event types for the token module
const (
	EventTypeTokenCreated  = "token_created"
	EventTypeTokenTransfer = "token_transfer"
	EventTypeTokenApproval = "token_approval"
	EventTypeDeposit       = "deposit"
	EventTypeWithdrawal    = "withdrawal"
)

// Event attribute keys
const (
	AttributeKeyToken   = "token"
	AttributeKeyName    = "name"
	AttributeKeySymbol  = "symbol"
	AttributeKeyFrom    = "from"
	AttributeKeyTo      = "to"
	AttributeKeyOwner   = "owner"
	AttributeKeySpender = "spender"
	AttributeKeyValue   = "value"
	AttributeKeyFee     = "fee"
	AttributeKeyDenom   = "denom"
)
