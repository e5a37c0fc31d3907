package types

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "dex"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// RouterKey defines the module's message routing key
	RouterKey = ModuleName

	// QuerierRoute defines the module's query routing key
	QuerierRoute = ModuleName

	// MinimumLiquidity is the amount of LP shares permanently locked at the
	// zero address on the first mint of every pair.
	MinimumLiquidity = 1000
)

// Store key prefixes
var (
	ParamsKey            = []byte{0x01}
	FeeToKey             = []byte{0x02}
	FeeToSetterKey       = []byte{0x03}
	CriteriaCoinsKey     = []byte{0x04}
	AllPairsCountKey     = []byte{0x05}
	AllPairsKeyPrefix    = []byte{0x06}
	PairByTokensPrefix   = []byte{0x07}
	PairKeyPrefix        = []byte{0x08}
	LPBalanceKeyPrefix   = []byte{0x09}
	LPAllowanceKeyPrefix = []byte{0x0A}
	LPNonceKeyPrefix     = []byte{0x0B}
	LockKeyPrefix        = []byte{0x0C}
)

var (
	// ZeroAddress is the burn address receiving MINIMUM_LIQUIDITY.
	ZeroAddress = sdk.AccAddress(make([]byte, 20))

	// FactoryAddress is the account the factory acts as when it initializes pairs.
	FactoryAddress = sdk.AccAddress(address.Module(ModuleName, []byte("factory")))

	// RouterAddress is the account the router holds transient balances under.
	RouterAddress = sdk.AccAddress(address.Module(ModuleName, []byte("router")))
)

// IsZeroAddress reports whether addr is empty or consists only of zero bytes.
func IsZeroAddress(addr sdk.AccAddress) bool {
	for _, b := range addr {
		if b != 0 {
			return false
		}
	}
	return true
}

// AllPairsKey returns the store key for the pair created at index.
func AllPairsKey(index uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, index)
	return append(append([]byte{}, AllPairsKeyPrefix...), bz...)
}

// PairByTokensKey returns the lookup key for an ordered token pair. The factory
// writes both orderings so either direction resolves.
func PairByTokensKey(tokenA, tokenB sdk.AccAddress) []byte {
	key := append([]byte{}, PairByTokensPrefix...)
	key = append(key, address.MustLengthPrefix(tokenA)...)
	return append(key, address.MustLengthPrefix(tokenB)...)
}

// PairKey returns the store key of a pair record.
func PairKey(pair sdk.AccAddress) []byte {
	return append(append([]byte{}, PairKeyPrefix...), address.MustLengthPrefix(pair)...)
}

// LPBalanceKey returns the store key of an LP share balance.
func LPBalanceKey(pair, owner sdk.AccAddress) []byte {
	key := append([]byte{}, LPBalanceKeyPrefix...)
	key = append(key, address.MustLengthPrefix(pair)...)
	return append(key, address.MustLengthPrefix(owner)...)
}

// LPBalancePairPrefix returns the prefix of every LP balance of a pair.
func LPBalancePairPrefix(pair sdk.AccAddress) []byte {
	return append(append([]byte{}, LPBalanceKeyPrefix...), address.MustLengthPrefix(pair)...)
}

// LPAllowanceKey returns the store key of an LP share allowance.
func LPAllowanceKey(pair, owner, spender sdk.AccAddress) []byte {
	key := append([]byte{}, LPAllowanceKeyPrefix...)
	key = append(key, address.MustLengthPrefix(pair)...)
	key = append(key, address.MustLengthPrefix(owner)...)
	return append(key, address.MustLengthPrefix(spender)...)
}

// LPNonceKey returns the store key of the permit nonce of owner.
func LPNonceKey(pair, owner sdk.AccAddress) []byte {
	key := append([]byte{}, LPNonceKeyPrefix...)
	key = append(key, address.MustLengthPrefix(pair)...)
	return append(key, address.MustLengthPrefix(owner)...)
}

// LockKey returns the store key of the reentrancy marker of a pair.
func LockKey(pair sdk.AccAddress) []byte {
	return append(append([]byte{}, LockKeyPrefix...), address.MustLengthPrefix(pair)...)
}
