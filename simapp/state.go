package simapp

import (
	"fmt"
	"math/rand"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	simtypes "github.com/cosmos/cosmos-sdk/types/simulation"

	dextypes "github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
	tokentypes "github.com/TokeNest/TokeNest-SmartContract/x/token/types"
)

// RandomizedTokenGenesisState generates tokens whose supply is spread over
// the simulation accounts.
func RandomizedTokenGenesisState(r *rand.Rand, accs []simtypes.Account, sp SimulationParams) tokentypes.GenesisState {
	genesis := tokentypes.DefaultGenesis()
	if len(accs) == 0 {
		return *genesis
	}

	for i := 0; i < sp.InitialTokenCount; i++ {
		addr := tokentypes.TokenAddress(uint64(i))
		supply := math.ZeroInt()
		for _, acc := range accs {
			amount := simtypes.RandomAmount(r, sp.InitialTokenSupply).AddRaw(1)
			supply = supply.Add(amount)
			genesis.Balances = append(genesis.Balances, tokentypes.Balance{
				Token:  addr,
				Owner:  acc.Address,
				Amount: amount,
			})
		}

		genesis.Tokens = append(genesis.Tokens, tokentypes.Token{
			Address:     addr,
			Owner:       accs[0].Address,
			Name:        fmt.Sprintf("Simulation Token %d", i),
			Symbol:      fmt.Sprintf("SIM%d", i),
			Decimals:    18,
			TotalSupply: supply,
		})
	}
	genesis.TokenCount = uint64(sp.InitialTokenCount)
	return *genesis
}

// RandomizedDEXGenesisState generates a DEX genesis with no pairs and, half of
// the time, the first token registered as a criteria coin.
func RandomizedDEXGenesisState(r *rand.Rand, accs []simtypes.Account, tokens []sdk.AccAddress) dextypes.GenesisState {
	genesis := dextypes.DefaultGenesis()
	if len(accs) > 0 {
		genesis.FeeToSetter = accs[0].Address
		if r.Intn(2) == 0 {
			genesis.FeeTo = accs[r.Intn(len(accs))].Address
		}
	}
	if len(tokens) > 0 && r.Intn(2) == 0 {
		genesis.CriteriaCoins = append(genesis.CriteriaCoins, tokens[0])
	}
	return *genesis
}
