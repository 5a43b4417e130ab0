package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

// ProviderConfig holds the endpoint and account credentials for one SOAP
// provider (identity or credit bureau).
type ProviderConfig struct {
	Endpoint string
	Username string
	Password string
	Timeout  time.Duration
}

type CreditConfig struct {
	Provider ProviderConfig
	// TemplateID selects the bureau-side scoring ruleset.
	TemplateID string
	// CacheTTL bounds how long a decision may be reused within one
	// booking session before the bureau is asked again.
	CacheTTL time.Duration
	// DepositAmount is offered when a reject code is classified as
	// recoverable. Business policy, not a provider fact.
	DepositAmount float64
}

type AuthFlowConfig struct {
	// PollInterval is the collect cadence while a session is pending.
	PollInterval time.Duration
	// MaxPolls caps one attempt; the provider expires sessions on its own
	// schedule but we refuse to poll forever regardless.
	MaxPolls int
	// StrictPersonalNumber additionally enforces the Luhn check digit
	// before any provider call.
	StrictPersonalNumber bool
}

type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

type RedisSettings struct {
	Address  string
	Password string
	DB       int
}

type Config struct {
	Port     string
	AppEnv   string
	LogLevel string
	BankID   ProviderConfig
	Credit   CreditConfig
	AuthFlow AuthFlowConfig
	Token    TokenConfig
	// RedisSettings.Address empty means the in-memory credit cache.
	RedisSettings RedisSettings
}

func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("Config file not found, using defaults and environment variables")
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PROVIDER_TIMEOUT_SECONDS", 10)
	viper.SetDefault("AUTH_POLL_INTERVAL_MS", 2000)
	viper.SetDefault("AUTH_MAX_POLLS", 90)
	viper.SetDefault("PERSONAL_NUMBER_STRICT", false)
	viper.SetDefault("CREDIT_TEMPLATE_ID", "1")
	viper.SetDefault("CREDIT_CACHE_TTL_SECONDS", 600)
	viper.SetDefault("CREDIT_DEPOSIT_AMOUNT", 1500)
	viper.SetDefault("TOKEN_TTL_SECONDS", 900)

	tokenSecret := viper.GetString("TOKEN_SECRET")
	if tokenSecret == "" {
		tokenSecret = "dev-secret-change-me"
		log.Println("Warning: TOKEN_SECRET not set, using development default")
	}

	pollInterval := viper.GetInt("AUTH_POLL_INTERVAL_MS")
	if pollInterval <= 0 {
		pollInterval = 2000
	}
	maxPolls := viper.GetInt("AUTH_MAX_POLLS")
	if maxPolls <= 0 {
		maxPolls = 90
	}

	providerTimeout := time.Duration(viper.GetInt("PROVIDER_TIMEOUT_SECONDS")) * time.Second

	return &Config{
		Port:     viper.GetString("APP_PORT"),
		AppEnv:   viper.GetString("APP_ENV"),
		LogLevel: viper.GetString("LOG_LEVEL"),
		BankID: ProviderConfig{
			Endpoint: viper.GetString("BANKID_ENDPOINT"),
			Username: viper.GetString("BANKID_USERNAME"),
			Password: viper.GetString("BANKID_PASSWORD"),
			Timeout:  providerTimeout,
		},
		Credit: CreditConfig{
			Provider: ProviderConfig{
				Endpoint: viper.GetString("CREDIT_ENDPOINT"),
				Username: viper.GetString("CREDIT_USERNAME"),
				Password: viper.GetString("CREDIT_PASSWORD"),
				Timeout:  providerTimeout,
			},
			TemplateID:    viper.GetString("CREDIT_TEMPLATE_ID"),
			CacheTTL:      time.Duration(viper.GetInt("CREDIT_CACHE_TTL_SECONDS")) * time.Second,
			DepositAmount: viper.GetFloat64("CREDIT_DEPOSIT_AMOUNT"),
		},
		AuthFlow: AuthFlowConfig{
			PollInterval:         time.Duration(pollInterval) * time.Millisecond,
			MaxPolls:             maxPolls,
			StrictPersonalNumber: viper.GetBool("PERSONAL_NUMBER_STRICT"),
		},
		Token: TokenConfig{
			Secret: tokenSecret,
			TTL:    time.Duration(viper.GetInt("TOKEN_TTL_SECONDS")) * time.Second,
		},
		RedisSettings: RedisSettings{
			Address:  viper.GetString("REDIS_ADDRESS"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
	}, nil
}
