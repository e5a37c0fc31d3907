package types

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/holiman/uint256"
)

// PermitVersion is the version string of every LP token signing domain.
const PermitVersion = "1"

var (
	// PermitTypehash is keccak256 of the permit struct type.
	PermitTypehash = Keccak256([]byte("Permit(address owner,address spender,uint256 value,uint256 nonce,uint256 deadline)"))

	// DomainTypehash is keccak256 of the signing domain struct type.
	DomainTypehash = Keccak256([]byte("EIP712Domain(string name,string version,string chainId,address verifyingContract)"))
)

func word(bz []byte) []byte {
	out := make([]byte, 32)
	if len(bz) > 32 {
		bz = bz[len(bz)-32:]
	}
	copy(out[32-len(bz):], bz)
	return out
}

func uintWord(x math.Int) []byte {
	b := uint256.MustFromBig(x.BigInt()).Bytes32()
	return b[:]
}

// DomainSeparator returns the signing domain of the LP token of pair.
func DomainSeparator(name, chainID string, pair sdk.AccAddress) []byte {
	return Keccak256(
		DomainTypehash,
		Keccak256([]byte(name)),
		Keccak256([]byte(PermitVersion)),
		Keccak256([]byte(chainID)),
		word(pair),
	)
}

// PermitDigest returns the hash an owner signs to approve spender for value.
func PermitDigest(domainSeparator []byte, owner, spender sdk.AccAddress, value math.Int, nonce, deadline uint64) []byte {
	structHash := Keccak256(
		PermitTypehash,
		word(owner),
		word(spender),
		uintWord(value),
		uintWord(math.NewIntFromUint64(nonce)),
		uintWord(math.NewIntFromUint64(deadline)),
	)
	return Keccak256([]byte{0x19, 0x01}, domainSeparator, structHash)
}
