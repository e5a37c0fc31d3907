package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TokeNest/TokeNest-SmartContract/x/dex/types"
)

const flagFactory = "factory"

// amountResult is the JSON output of the pricing commands.
type amountResult struct {
	Amount   math.Int `json:"amount"`
	ReserveA math.Int `json:"reserve_in"`
	ReserveB math.Int `json:"reserve_out"`
	Result   math.Int `json:"result"`
}

func parseInts(args []string, names ...string) ([]math.Int, error) {
	out := make([]math.Int, len(args))
	for i, arg := range args {
		n, ok := math.NewIntFromString(arg)
		if !ok {
			return nil, fmt.Errorf("invalid %s %q", names[i], arg)
		}
		out[i] = n
	}
	return out, nil
}

type libraryFunc func(amount, reserveA, reserveB math.Int) (math.Int, error)

func libraryCmd(v *viper.Viper, use, short string, names []string, fn libraryFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ints, err := parseInts(args, names...)
			if err != nil {
				return err
			}
			result, err := fn(ints[0], ints[1], ints[2])
			if err != nil {
				return err
			}
			return printOutput(cmd, v, result.String(), amountResult{
				Amount:   ints[0],
				ReserveA: ints[1],
				ReserveB: ints[2],
				Result:   result,
			})
		},
	}
}

// QuoteCmd prices an amount of one token in the other at the given reserves.
func QuoteCmd(v *viper.Viper) *cobra.Command {
	return libraryCmd(v,
		"quote [amount-a] [reserve-a] [reserve-b]",
		"Equivalent amount of token B for amount-a of token A",
		[]string{"amount-a", "reserve-a", "reserve-b"},
		types.Quote,
	)
}

// AmountOutCmd computes the output of an exact-input swap after the fee.
func AmountOutCmd(v *viper.Viper) *cobra.Command {
	return libraryCmd(v,
		"amount-out [amount-in] [reserve-in] [reserve-out]",
		"Maximum output for amount-in, after the 0.3% fee",
		[]string{"amount-in", "reserve-in", "reserve-out"},
		types.GetAmountOut,
	)
}

// AmountInCmd computes the input an exact-output swap requires.
func AmountInCmd(v *viper.Viper) *cobra.Command {
	return libraryCmd(v,
		"amount-in [amount-out] [reserve-in] [reserve-out]",
		"Minimum input to receive amount-out, after the 0.3% fee",
		[]string{"amount-out", "reserve-in", "reserve-out"},
		types.GetAmountIn,
	)
}

// PairAddressCmd derives the address a factory deploys the pair of two
// tokens at.
func PairAddressCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pair-address [token-a] [token-b]",
		Short: "Deterministic pair address of two tokens",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenA, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return fmt.Errorf("invalid token-a: %w", err)
			}
			tokenB, err := sdk.AccAddressFromBech32(args[1])
			if err != nil {
				return fmt.Errorf("invalid token-b: %w", err)
			}
			token0, token1, err := types.SortTokens(tokenA, tokenB)
			if err != nil {
				return err
			}

			factory := types.FactoryAddress
			if f, _ := cmd.Flags().GetString(flagFactory); f != "" {
				if factory, err = sdk.AccAddressFromBech32(f); err != nil {
					return fmt.Errorf("invalid factory: %w", err)
				}
			}

			pair := types.PairAddress(factory, token0, token1)
			return printOutput(cmd, v, pair.String(), map[string]string{
				"factory": factory.String(),
				"token0":  token0.String(),
				"token1":  token1.String(),
				"pair":    pair.String(),
			})
		},
	}
	cmd.Flags().String(flagFactory, "", "factory address (defaults to the dex module factory)")
	return cmd
}

// InitCodeHashCmd prints the hash mixed into every pair address.
func InitCodeHashCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "init-code-hash",
		Short: "Print the pair init code hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hash := types.InitCodeHashHex()
			return printOutput(cmd, v, hash, map[string]string{"init_code_hash": hash})
		},
	}
}
