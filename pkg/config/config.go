package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrMissingAPIKey is returned by Validate when no ChainGPT key is configured.
var ErrMissingAPIKey = errors.New("missing CHAINGPT_API_KEY in .env or environment")

type ChainGPT struct {
	APIKey     string `mapstructure:"chaingpt_api_key" validate:"required"`
	BaseURL    string `mapstructure:"chaingpt_base_url" validate:"required,url"`
	Model      string `mapstructure:"chaingpt_model" validate:"required"`
	AuditModel string `mapstructure:"chaingpt_audit_model" validate:"required"`
}

type Contract struct {
	Dir             string `mapstructure:"contracts_dir" validate:"required"`
	Name            string `mapstructure:"contract_name" validate:"required"`
	SolidityVersion string `mapstructure:"solidity_version" validate:"required"`
}

// Filename is the artifact file name derived from the contract name.
func (c Contract) Filename() string { return c.Name + ".sol" }

type Deploy struct {
	Binary     string  `mapstructure:"deploy_binary" validate:"required"`
	Script     string  `mapstructure:"deploy_script" validate:"required"`
	Network    string  `mapstructure:"deploy_network" validate:"required"`
	RPCTestnet string  `mapstructure:"rpc_testnet"`
	RPCMainnet string  `mapstructure:"rpc_mainnet"`
	SpendCap   float64 `mapstructure:"spend_cap" validate:"gte=0"`
	GasLimit   uint64  `mapstructure:"deploy_gas_limit" validate:"gt=0"`
}

// RPCURL returns the JSON-RPC endpoint configured for a network alias, or "".
func (d Deploy) RPCURL(network string) string {
	switch strings.ToLower(network) {
	case "mainnet", "bscmainnet":
		return d.RPCMainnet
	case "testnet", "bsctestnet":
		return d.RPCTestnet
	}
	return ""
}

type Server struct {
	Port          string   `mapstructure:"port" validate:"required"`
	JWTSecret     string   `mapstructure:"jwt_secret" validate:"required"`
	JWTIssuer     string   `mapstructure:"jwt_issuer"`
	JWTTTLMinutes int      `mapstructure:"jwt_ttl_minutes" validate:"gt=0"`
	DenyList      []string `mapstructure:"deny_list"`
}

type Config struct {
	ChainGPT ChainGPT `mapstructure:",squash"`
	Contract Contract `mapstructure:",squash"`
	Deploy   Deploy   `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	LogLevel string   `mapstructure:"log_level" validate:"oneof=debug info warn error"`
}

var defaults = map[string]any{
	"chaingpt_api_key":     "",
	"chaingpt_base_url":    "https://api.chaingpt.org",
	"chaingpt_model":       "smart_contract_generator",
	"chaingpt_audit_model": "smart_contract_auditor",
	"contracts_dir":        "./contracts",
	"contract_name":        "GenContract",
	"solidity_version":     "^0.8.20",
	"deploy_binary":        "npx",
	"deploy_script":        "scripts/deploy.cjs",
	"deploy_network":       "testnet",
	"rpc_testnet":          "https://data-seed-prebsc-1-s1.binance.org:8545/",
	"rpc_mainnet":          "https://bsc-dataseed.binance.org/",
	"spend_cap":            0.05,
	"deploy_gas_limit":     3_000_000,
	"deny_list":            "",
	"port":                 "8080",
	"jwt_secret":           "dev-secret-change",
	"jwt_issuer":           "architect",
	"jwt_ttl_minutes":      60,
	"log_level":            "info",
}

// Load reads environment variables, optionally from a .env file if present,
// and overlays any flags that were explicitly set on the command line.
// Flag names use dashes (contracts-dir) and map onto the underscored keys.
func Load(flags *pflag.FlagSet) (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	v := viper.New()
	for key, def := range defaults {
		v.SetDefault(key, def)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return Config{}, err
		}
	}
	if flags != nil {
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if _, known := defaults[key]; !known || bindErr != nil {
				return
			}
			bindErr = v.BindPFlag(key, f)
		})
		if bindErr != nil {
			return Config{}, bindErr
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Server.DenyList = splitList(v.GetString("deny_list"))
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	return cfg, nil
}

// Validate checks the whole configuration. A missing API key is reported as
// ErrMissingAPIKey so callers can print the credential message verbatim.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ChainGPT.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.VersionConstraint(); err != nil {
		return err
	}
	return nil
}

// VersionConstraint parses the Solidity pin (for example ^0.8.20).
func (c Config) VersionConstraint() (*semver.Constraints, error) {
	constraint, err := semver.NewConstraint(c.Contract.SolidityVersion)
	if err != nil {
		return nil, fmt.Errorf("invalid SOLIDITY_VERSION %q: %w", c.Contract.SolidityVersion, err)
	}
	return constraint, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
