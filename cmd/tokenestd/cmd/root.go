package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"cosmossdk.io/log"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/TokeNest/TokeNest-SmartContract/simapp"
)

const (
	// EnvPrefix prefixes every environment override, e.g. TOKENEST_API_PORT.
	EnvPrefix = "TOKENEST"

	flagConfig    = "config"
	flagOutput    = "output"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"

	outputText = "text"
	outputJSON = "json"
)

var sdkConfigOnce sync.Once

// initSDKConfig sets the account address prefix used by every command.
func initSDKConfig() {
	sdkConfigOnce.Do(func() {
		cfg := sdk.GetConfig()
		cfg.SetBech32PrefixForAccount(simapp.Bech32Prefix, simapp.Bech32Prefix+sdk.PrefixPublic)
	})
}

// NewRootCmd creates the tokenestd root command. It is called once in the
// main function.
func NewRootCmd() *cobra.Command {
	initSDKConfig()

	v := viper.New()
	rootCmd := &cobra.Command{
		Use:   "tokenestd",
		Short: "TokeNest DEX toolkit",
		Long: `tokenestd runs the TokeNest constant-product DEX in a local sandbox and
serves its query API, and evaluates the pricing library offline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())
			return loadViper(v, cmd.Flags())
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.String(flagConfig, "", "path to a sandbox config file (yaml, toml or json)")
	pf.StringP(flagOutput, "o", outputText, "output format (text|json)")
	pf.String(flagLogLevel, "info", "log level, e.g. info or x/dex:debug,*:info")
	pf.String(flagLogFormat, outputText, "log format (text|json)")

	rootCmd.AddCommand(
		QuoteCmd(v),
		AmountOutCmd(v),
		AmountInCmd(v),
		PairAddressCmd(v),
		InitCodeHashCmd(v),
		ServeCmd(v),
		ConfigCmd(v),
		GenesisCmd(v),
	)
	return rootCmd
}

// loadViper reads the config file named by --config, then binds the command
// flags and TOKENEST_ environment variables over it.
func loadViper(v *viper.Viper, flags *pflag.FlagSet) error {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString(flagConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}
	return nil
}

// newLogger builds the root logger from the log flags.
func newLogger(v *viper.Viper, w io.Writer) (log.Logger, error) {
	filter, err := log.ParseLogLevel(v.GetString(flagLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", flagLogLevel, err)
	}
	opts := []log.Option{log.FilterOption(filter)}
	if v.GetString(flagLogFormat) == outputJSON {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(w, opts...), nil
}

// printOutput writes v as indented JSON when --output=json, and as text
// otherwise.
func printOutput(cmd *cobra.Command, v *viper.Viper, text string, value any) error {
	switch format := v.GetString(flagOutput); format {
	case outputJSON:
		bz, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(bz))
	case outputText, "":
		fmt.Fprintln(cmd.OutOrStdout(), text)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	return nil
}
