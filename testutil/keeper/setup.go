package keeper

import (
	"fmt"
	"testing"
	"time"

	"cosmossdk.io/math"
	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/TokeNest/TokeNest-SmartContract/simapp"
)

// TestChainID is the chain id of every test context.
const TestChainID = "tokenest-test-1"

// TestBlockTime is the block time of a fresh test context.
var TestBlockTime = time.Unix(1_700_000_000, 0).UTC()

// SetupTestApp initializes an in-memory application with default genesis and
// the wrapped native token registered.
func SetupTestApp(t testing.TB) (*simapp.App, sdk.Context) {
	t.Helper()

	testApp, ctx, err := simapp.Setup(TestChainID, TestBlockTime)
	require.NoError(t, err)
	return testApp, ctx
}

// TestAccount is a deterministic key pair used to sign permits in tests.
type TestAccount struct {
	PrivKey *secp256k1.PrivKey
	Address sdk.AccAddress
}

// TestAccounts returns n deterministic accounts.
func TestAccounts(n int) []TestAccount {
	accs := make([]TestAccount, n)
	for i := range accs {
		priv := secp256k1.GenPrivKeyFromSecret([]byte(fmt.Sprintf("tokenest-test-account-%d", i)))
		accs[i] = TestAccount{PrivKey: priv, Address: sdk.AccAddress(priv.PubKey().Address())}
	}
	return accs
}

// Ether returns n * 10^18.
func Ether(n int64) math.Int {
	return math.NewInt(n).Mul(math.NewIntWithDecimal(1, 18))
}

// AdvanceTime returns ctx with the block time moved forward by d.
func AdvanceTime(ctx sdk.Context, d time.Duration) sdk.Context {
	return ctx.WithBlockTime(ctx.BlockTime().Add(d))
}
