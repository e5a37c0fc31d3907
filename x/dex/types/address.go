package types

import (
	"bytes"
	"encoding/hex"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"golang.org/x/crypto/sha3"
)

// PairCodeDescriptor identifies the pair state layout. Its hash seeds every
// pair address, so changing it moves every pair.
const PairCodeDescriptor = "tokenest/dex/pair/v1"

// InitCodeHash is the keccak256 hash mixed into pair address derivation.
var InitCodeHash = Keccak256([]byte(PairCodeDescriptor))

// Keccak256 hashes the concatenation of data with legacy keccak256.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// InitCodeHashHex returns InitCodeHash as a 0x-prefixed hex string.
func InitCodeHashHex() string {
	return "0x" + hex.EncodeToString(InitCodeHash)
}

// PairAddress computes the deterministic address of the pair of tokenA and
// tokenB created by factory:
//
//	keccak256(0xff ++ factory ++ keccak256(lo ++ hi) ++ InitCodeHash)[12:]
//
// where lo and hi are the tokens sorted by address bytes. The salt ignores
// criteria coin placement, so the address only depends on the unordered set.
func PairAddress(factory, tokenA, tokenB sdk.AccAddress) sdk.AccAddress {
	lo, hi := tokenA, tokenB
	if bytes.Compare(lo, hi) > 0 {
		lo, hi = hi, lo
	}
	salt := Keccak256(lo, hi)
	hash := Keccak256([]byte{0xff}, factory, salt, InitCodeHash)
	return sdk.AccAddress(hash[12:])
}
