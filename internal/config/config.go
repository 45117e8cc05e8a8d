package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration for the bot, sourced from
// environment variables. Values with defaults are safe to leave unset in
// development; required values fail Load so a misconfigured deployment
// dies at startup instead of at the first user interaction.
type Config struct {
	Stage string
	Port  string

	// Messaging platform
	LineChannelAccessToken string
	LineChannelSecret      string

	// Chain
	RPCEndpoint     string
	ChainID         string
	ContractAddress string
	ExplorerBaseURL string

	// Custodial wallet API
	KaiaWalletAPIBaseURL string
	AppName              string

	// Pairing gateway websocket endpoint
	PairingGatewayURL string

	// Deep link bases for the connect message
	MiniWalletURLCompact string
	MiniWalletURLTall    string
	LiffRelayBaseURL     string

	// Public base URL of this service, used for QR image links
	PublicBaseURL string

	// Certificate rendering service (optional, donations only)
	CertificateServiceURL string

	// Optional shared wallet store. Empty means in-process memory.
	RedisAddr     string
	RedisPassword string

	// Connection race and polling knobs
	ConnectTimeout       time.Duration
	ConnectPollAttempts  int
	ConnectPollInterval  time.Duration
	DonationPollAttempts int
	DonationPollInterval time.Duration
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Stage: getEnvWithDefault("STAGE", "dev"),
		Port:  getEnvWithDefault("PORT", "8080"),

		LineChannelAccessToken: os.Getenv("LINE_CHANNEL_ACCESS_TOKEN"),
		LineChannelSecret:      os.Getenv("LINE_CHANNEL_SECRET"),

		RPCEndpoint:     os.Getenv("RPC_ENDPOINT"),
		ChainID:         getEnvWithDefault("CHAIN_ID", "1001"),
		ContractAddress: os.Getenv("CONTRACT_ADDRESS"),
		ExplorerBaseURL: getEnvWithDefault("EXPLORER_BASE_URL", "https://kairos.kaiascan.io"),

		KaiaWalletAPIBaseURL: getEnvWithDefault("KAIA_WALLET_API_URL", "https://api.kaiawallet.io/api/v1/k"),
		AppName:              getEnvWithDefault("APP_NAME", "LINE Bot"),

		PairingGatewayURL: os.Getenv("PAIRING_GATEWAY_URL"),

		MiniWalletURLCompact: os.Getenv("MINI_WALLET_URL_COMPACT"),
		MiniWalletURLTall:    os.Getenv("MINI_WALLET_URL_TALL"),
		LiffRelayBaseURL:     os.Getenv("LIFF_RELAY_BASE_URL"),

		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),

		CertificateServiceURL: os.Getenv("CERTIFICATE_SERVICE_URL"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		ConnectTimeout:       getEnvDuration("CONNECT_TIMEOUT", 300*time.Second),
		ConnectPollAttempts:  getEnvInt("CONNECT_POLL_ATTEMPTS", 30),
		ConnectPollInterval:  getEnvDuration("CONNECT_POLL_INTERVAL", 2*time.Second),
		DonationPollAttempts: getEnvInt("DONATION_POLL_ATTEMPTS", 60),
		DonationPollInterval: getEnvDuration("DONATION_POLL_INTERVAL", 3*time.Second),
	}

	required := map[string]string{
		"LINE_CHANNEL_ACCESS_TOKEN": cfg.LineChannelAccessToken,
		"RPC_ENDPOINT":              cfg.RPCEndpoint,
		"PAIRING_GATEWAY_URL":       cfg.PairingGatewayURL,
	}
	for name, value := range required {
		if value == "" {
			return nil, fmt.Errorf("%s environment variable is required", name)
		}
	}

	return cfg, nil
}

// EIP155ChainID returns the chain id in CAIP-2 form, e.g. "eip155:1001",
// as expected by the wallet pairing protocol.
func (c *Config) EIP155ChainID() string {
	return "eip155:" + c.ChainID
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
