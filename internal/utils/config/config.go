package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/triswaplabs/triswap-backend/internal/types/environments"
)

type AppConfig struct {
	Environment environments.Environment
	ApiServer   ApiServerConfig
	Postgres    DBConnection
	Evm         EvmConfig
	Solana      SolanaConfig
	Consensus   ConsensusConfig
	Dex         DexConfig
}

type ApiServerConfig struct {
	Port           string
	AllowedOrigins string
}

type DBConnection struct {
	Host string
	Port string
	User string
	Name string
	Pass string

	SSLMode string
}

type EvmConfig struct {
	EthereumRPCEndpoint string
	BaseRPCEndpoint     string
}

type SolanaConfig struct {
	RPCEndpoint string
}

type ConsensusConfig struct {
	VerifierContractAddr string
	ChainID              int64
	// SignerPrivateKey empty means the gateway runs read-only and
	// execute-operation results are explicitly simulated.
	SignerPrivateKey string
}

type DexConfig struct {
	UniswapQuoteURL   string
	SushiswapQuoteURL string
	AerodromeQuoteURL string
	RaydiumQuoteURL   string
	OrcaQuoteURL      string
}

func New() *AppConfig {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// env vars already present are not overridden
	godotenv.Load(".env." + env)

	return &AppConfig{
		Environment: environments.Environment(env),
		ApiServer: ApiServerConfig{
			Port:           envOrDefault("API_PORT", "8080"),
			AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		},
		Postgres: DBConnection{
			Host:    os.Getenv("DB_HOST"),
			Port:    os.Getenv("DB_PORT"),
			User:    os.Getenv("DB_USER"),
			Name:    os.Getenv("DB_NAME"),
			Pass:    os.Getenv("DB_PASS"),
			SSLMode: os.Getenv("DB_SSL_MODE"),
		},
		Evm: EvmConfig{
			EthereumRPCEndpoint: os.Getenv("ETHEREUM_RPC_ENDPOINT"),
			BaseRPCEndpoint:     os.Getenv("BASE_RPC_ENDPOINT"),
		},
		Solana: SolanaConfig{
			RPCEndpoint: os.Getenv("SOLANA_RPC_ENDPOINT"),
		},
		Consensus: ConsensusConfig{
			VerifierContractAddr: os.Getenv("CONSENSUS_VERIFIER_CONTRACT_ADDR"),
			ChainID:              envVarAtoi64("CONSENSUS_CHAIN_ID", 1),
			SignerPrivateKey:     os.Getenv("CONSENSUS_SIGNER_PRIVATE_KEY"),
		},
		Dex: DexConfig{
			UniswapQuoteURL:   os.Getenv("DEX_UNISWAP_QUOTE_URL"),
			SushiswapQuoteURL: os.Getenv("DEX_SUSHISWAP_QUOTE_URL"),
			AerodromeQuoteURL: os.Getenv("DEX_AERODROME_QUOTE_URL"),
			RaydiumQuoteURL:   os.Getenv("DEX_RAYDIUM_QUOTE_URL"),
			OrcaQuoteURL:      os.Getenv("DEX_ORCA_QUOTE_URL"),
		},
	}
}

// DatabaseEnabled reports whether a durable order store is configured.
func (c *AppConfig) DatabaseEnabled() bool {
	return c.Postgres.Host != ""
}

func envOrDefault(envName, fallback string) string {
	if v := os.Getenv(envName); v != "" {
		return v
	}
	return fallback
}

func envVarAtoi64(envName string, fallback int64) int64 {
	valueStr := os.Getenv(envName)
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		return fallback
	}
	return value
}
