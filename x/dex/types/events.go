package types

// Event types for the DEX module
const (
	// Factory Events
	EventTypePairCreated          = "pair_created"
	EventTypeCriteriaCoinAdded    = "criteria_coin_added"
	EventTypeCriteriaCoinConflict = "criteria_coin_conflict"
	EventTypeFeeToChanged         = "fee_to_changed"
	EventTypeFeeToSetterChanged   = "fee_to_setter_changed"

	// Pair Events
	EventTypeMint = "mint"
	EventTypeBurn = "burn"
	EventTypeSwap = "swap"
	EventTypeSync = "sync"

	// LP Token Events
	EventTypeTransfer = "transfer"
	EventTypeApproval = "approval"
)

// Event attribute keys
const (
	AttributeKeyToken0         = "token0"
	AttributeKeyToken1         = "token1"
	AttributeKeyPair           = "pair"
	AttributeKeyAllPairsLength = "all_pairs_length"
	AttributeKeyToken          = "token"
	AttributeKeySender         = "sender"
	AttributeKeyTo             = "to"
	AttributeKeyFrom           = "from"
	AttributeKeyOwner          = "owner"
	AttributeKeySpender        = "spender"
	AttributeKeyValue          = "value"
	AttributeKeyAmount0        = "amount0"
	AttributeKeyAmount1        = "amount1"
	AttributeKeyAmount0In      = "amount0_in"
	AttributeKeyAmount1In      = "amount1_in"
	AttributeKeyAmount0Out     = "amount0_out"
	AttributeKeyAmount1Out     = "amount1_out"
	AttributeKeyReserve0       = "reserve0"
	AttributeKeyReserve1       = "reserve1"
	AttributeKeyFeeTo          = "fee_to"
	AttributeKeyFeeToSetter    = "fee_to_setter"
)
