package cmd

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TokeNest/TokeNest-SmartContract/api"
	"github.com/TokeNest/TokeNest-SmartContract/api/telemetry"
	"github.com/TokeNest/TokeNest-SmartContract/simapp"
)

// NativeSymbol names the native coin in seed pairs. Pairs against it are
// created through the router's KLAY entry points.
const NativeSymbol = "KLAY"

// Config is the sandbox configuration.
type Config struct {
	ChainID   string
	API       *api.Config
	Telemetry telemetry.Config
	Seed      SeedConfig
}

// SeedConfig describes the state the sandbox starts from.
type SeedConfig struct {
	// OwnerSecret derives the account that owns every seeded token.
	OwnerSecret string
	// NativeFunds is minted to the owner in whole native coins.
	NativeFunds math.LegacyDec
	Tokens      []TokenSeed
	Pairs       []PairSeed
}

// TokenSeed is a token created at startup. Supply is in whole tokens.
type TokenSeed struct {
	Name     string
	Symbol   string
	Decimals uint32
	Supply   math.LegacyDec
	FeeBps   uint32
}

// PairSeed is a pair created and funded at startup. Tokens are referenced
// by symbol and amounts are in whole tokens.
type PairSeed struct {
	TokenA  string
	TokenB  string
	AmountA math.LegacyDec
	AmountB math.LegacyDec
}

func setDefaults(v *viper.Viper) {
	apiCfg := api.DefaultConfig()
	v.SetDefault("chain_id", simapp.DefaultChainID)
	v.SetDefault("api.host", apiCfg.Host)
	v.SetDefault("api.port", apiCfg.Port)
	v.SetDefault("api.cors_origins", apiCfg.CORSOrigins)
	v.SetDefault("api.rate_limit_rps", apiCfg.RateLimitRPS)
	v.SetDefault("api.max_body_bytes", apiCfg.MaxBodyBytes)
	v.SetDefault("api.read_timeout", apiCfg.ReadTimeout)
	v.SetDefault("api.write_timeout", apiCfg.WriteTimeout)
	v.SetDefault("api.shutdown_timeout", apiCfg.ShutdownTimeout)
	telCfg := telemetry.DefaultConfig()
	v.SetDefault("telemetry.enabled", telCfg.Enabled)
	v.SetDefault("telemetry.endpoint", telCfg.Endpoint)
	v.SetDefault("telemetry.sample_rate", telCfg.SampleRate)
	v.SetDefault("telemetry.environment", telCfg.Environment)
	v.SetDefault("telemetry.prometheus", telCfg.PrometheusEnabled)
	v.SetDefault("seed.owner_secret", "tokenest-sandbox")
	v.SetDefault("seed.native_funds", "1000000")
}

// LoadConfig reads the sandbox configuration out of v.
func LoadConfig(v *viper.Viper) (*Config, error) {
	apiCfg := api.DefaultConfig()
	apiCfg.Host = v.GetString("api.host")
	apiCfg.Port = v.GetString("api.port")
	apiCfg.ChainID = v.GetString("chain_id")
	apiCfg.CORSOrigins = v.GetStringSlice("api.cors_origins")
	apiCfg.RateLimitRPS = v.GetInt("api.rate_limit_rps")
	apiCfg.MaxBodyBytes = v.GetInt64("api.max_body_bytes")
	apiCfg.ReadTimeout = v.GetDuration("api.read_timeout")
	apiCfg.WriteTimeout = v.GetDuration("api.write_timeout")
	apiCfg.ShutdownTimeout = v.GetDuration("api.shutdown_timeout")

	if apiCfg.ChainID == "" {
		return nil, fmt.Errorf("chain_id must not be empty")
	}

	nativeFunds, err := parseWholeAmount("seed.native_funds", v.Get("seed.native_funds"))
	if err != nil {
		return nil, err
	}
	tokens, err := parseTokenSeeds(v.Get("seed.tokens"))
	if err != nil {
		return nil, err
	}
	pairs, err := parsePairSeeds(v.Get("seed.pairs"))
	if err != nil {
		return nil, err
	}

	telCfg := telemetry.DefaultConfig()
	telCfg.Enabled = v.GetBool("telemetry.enabled")
	telCfg.Endpoint = v.GetString("telemetry.endpoint")
	telCfg.SampleRate = v.GetFloat64("telemetry.sample_rate")
	telCfg.Environment = v.GetString("telemetry.environment")
	telCfg.PrometheusEnabled = v.GetBool("telemetry.prometheus")
	telCfg.ChainID = apiCfg.ChainID
	telCfg.Version = apiCfg.Version

	cfg := &Config{
		ChainID:   apiCfg.ChainID,
		API:       apiCfg,
		Telemetry: telCfg,
		Seed: SeedConfig{
			OwnerSecret: v.GetString("seed.owner_secret"),
			NativeFunds: nativeFunds,
			Tokens:      tokens,
			Pairs:       pairs,
		},
	}
	if err := cfg.Seed.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that symbols are unique and that every pair references
// seeded tokens or the native coin.
func (s SeedConfig) Validate() error {
	if s.OwnerSecret == "" {
		return fmt.Errorf("seed.owner_secret must not be empty")
	}
	known := map[string]bool{NativeSymbol: true}
	for i, t := range s.Tokens {
		if t.Symbol == "" {
			return fmt.Errorf("seed.tokens[%d]: symbol is required", i)
		}
		if known[t.Symbol] {
			return fmt.Errorf("seed.tokens[%d]: duplicate symbol %s", i, t.Symbol)
		}
		known[t.Symbol] = true
	}
	for i, p := range s.Pairs {
		if !known[p.TokenA] || !known[p.TokenB] {
			return fmt.Errorf("seed.pairs[%d]: unknown token in %s/%s", i, p.TokenA, p.TokenB)
		}
		if p.TokenA == p.TokenB {
			return fmt.Errorf("seed.pairs[%d]: identical tokens %s", i, p.TokenA)
		}
	}
	return nil
}

// parseWholeAmount accepts numbers and numeric strings; YAML and TOML decode
// the same field either way.
func parseWholeAmount(field string, raw any) (math.LegacyDec, error) {
	if raw == nil {
		return math.LegacyZeroDec(), nil
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("%s: %w", field, err)
	}
	d, err := math.LegacyNewDecFromStr(strings.TrimSpace(s))
	if err != nil {
		return math.LegacyDec{}, fmt.Errorf("%s: %w", field, err)
	}
	if d.IsNegative() {
		return math.LegacyDec{}, fmt.Errorf("%s: negative amount %s", field, d)
	}
	return d, nil
}

func seedEntries(field string, raw any) ([]map[string]any, error) {
	if raw == nil {
		return nil, nil
	}
	items, err := cast.ToSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	entries := make([]map[string]any, len(items))
	for i, item := range items {
		m, err := cast.ToStringMapE(item)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", field, i, err)
		}
		entries[i] = m
	}
	return entries, nil
}

func parseTokenSeeds(raw any) ([]TokenSeed, error) {
	entries, err := seedEntries("seed.tokens", raw)
	if err != nil {
		return nil, err
	}
	tokens := make([]TokenSeed, 0, len(entries))
	for i, m := range entries {
		field := fmt.Sprintf("seed.tokens[%d]", i)
		symbol := strings.ToUpper(cast.ToString(m["symbol"]))
		name := cast.ToString(m["name"])
		if name == "" {
			name = symbol + " Token"
		}
		decimals := uint32(18)
		if d, ok := m["decimals"]; ok {
			if decimals, err = cast.ToUint32E(d); err != nil {
				return nil, fmt.Errorf("%s.decimals: %w", field, err)
			}
		}
		feeBps, err := cast.ToUint32E(m["fee_bps"])
		if err != nil {
			return nil, fmt.Errorf("%s.fee_bps: %w", field, err)
		}
		supply, err := parseWholeAmount(field+".supply", m["supply"])
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, TokenSeed{
			Name:     name,
			Symbol:   symbol,
			Decimals: decimals,
			Supply:   supply,
			FeeBps:   feeBps,
		})
	}
	return tokens, nil
}

func parsePairSeeds(raw any) ([]PairSeed, error) {
	entries, err := seedEntries("seed.pairs", raw)
	if err != nil {
		return nil, err
	}
	pairs := make([]PairSeed, 0, len(entries))
	for i, m := range entries {
		field := fmt.Sprintf("seed.pairs[%d]", i)
		amountA, err := parseWholeAmount(field+".amount_a", m["amount_a"])
		if err != nil {
			return nil, err
		}
		amountB, err := parseWholeAmount(field+".amount_b", m["amount_b"])
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, PairSeed{
			TokenA:  strings.ToUpper(cast.ToString(m["token_a"])),
			TokenB:  strings.ToUpper(cast.ToString(m["token_b"])),
			AmountA: amountA,
			AmountB: amountB,
		})
	}
	return pairs, nil
}

// ConfigCmd prints the effective sandbox configuration.
func ConfigCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective sandbox configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(v)
			if err != nil {
				return err
			}
			text := fmt.Sprintf("chain_id: %s\napi: %s:%s\ntokens: %d\npairs: %d",
				cfg.ChainID, cfg.API.Host, cfg.API.Port, len(cfg.Seed.Tokens), len(cfg.Seed.Pairs))
			return printOutput(cmd, v, text, cfg)
		},
	}
}
