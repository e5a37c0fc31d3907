package types

import (
	"encoding/binary"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "token"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes
var (
	TokenKeyPrefix     = []byte{0x01}
	BalanceKeyPrefix   = []byte{0x02}
	AllowanceKeyPrefix = []byte{0x03}
	TokenCountKey      = []byte{0x04}
)

// TokenAddress derives the address of the token created with sequence seq.
func TokenAddress(seq uint64) sdk.AccAddress {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, seq)
	return sdk.AccAddress(address.Module(ModuleName, bz))
}

// TokenKey returns the store key of a token record.
func TokenKey(token sdk.AccAddress) []byte {
	return append(append([]byte{}, TokenKeyPrefix...), address.MustLengthPrefix(token)...)
}

// BalanceKey returns the store key of the balance of owner in token.
func BalanceKey(token, owner sdk.AccAddress) []byte {
	key := append([]byte{}, BalanceKeyPrefix...)
	key = append(key, address.MustLengthPrefix(token)...)
	return append(key, address.MustLengthPrefix(owner)...)
}

// BalancePrefix returns the prefix of every balance of token.
func BalancePrefix(token sdk.AccAddress) []byte {
	return append(append([]byte{}, BalanceKeyPrefix...), address.MustLengthPrefix(token)...)
}

// AllowanceKey returns the store key of the allowance of spender over owner's token.
func AllowanceKey(token, owner, spender sdk.AccAddress) []byte {
	key := append([]byte{}, AllowanceKeyPrefix...)
	key = append(key, address.MustLengthPrefix(token)...)
	key = append(key, address.MustLengthPrefix(owner)...)
	return append(key, address.MustLengthPrefix(spender)...)
}

// IsZeroAddress reports whether addr is empty or consists only of zero bytes.
func IsZeroAddress(addr sdk.AccAddress) bool {
	for _, b := range addr {
		if b != 0 {
			return false
		}
	}
	return true
}
