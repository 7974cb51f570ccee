// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like GENAI_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, e.g. config.production.yaml
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the first location that has one. Paths cover
// running from the repo root, cmd/, and test packages.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, p := range possiblePaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			return
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "outreach-engine"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9464
	}

	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Redis.Address == "" {
		cfg.Database.Redis.Address = "localhost:6379"
	}

	if cfg.GenAI.Model == "" {
		cfg.GenAI.Model = "gpt-4o-mini"
	}
	if cfg.GenAI.Temperature == 0 {
		cfg.GenAI.Temperature = 0.7
	}
	if cfg.GenAI.MaxTokens == 0 {
		cfg.GenAI.MaxTokens = 1000
	}
	if cfg.GenAI.TimeoutMS == 0 {
		cfg.GenAI.TimeoutMS = 30000
	}
	if cfg.GenAI.APIKey == "" {
		cfg.GenAI.APIKey = os.Getenv("GENAI_API_KEY")
	}

	if cfg.Transport.Provider == "" {
		cfg.Transport.Provider = "gmail"
	}
	if cfg.Transport.Gmail.BaseURL == "" {
		cfg.Transport.Gmail.BaseURL = "https://gmail.googleapis.com"
	}
	if cfg.Transport.Gmail.TimeoutMS == 0 {
		cfg.Transport.Gmail.TimeoutMS = 15000
	}
	if cfg.Transport.SES.Region == "" {
		cfg.Transport.SES.Region = "us-east-1"
	}

	if cfg.Auth.Google.TokenInfoURL == "" {
		cfg.Auth.Google.TokenInfoURL = "https://www.googleapis.com/oauth2/v3/tokeninfo"
	}
	if cfg.Auth.Google.RequiredScope == "" {
		cfg.Auth.Google.RequiredScope = "https://www.googleapis.com/auth/gmail.send"
	}
	if cfg.Auth.Google.TimeoutMS == 0 {
		cfg.Auth.Google.TimeoutMS = 10000
	}

	if cfg.Engine.ValidatorTimeoutMS == 0 {
		cfg.Engine.ValidatorTimeoutMS = 60000
	}
	if cfg.Engine.GeneratorTimeoutMS == 0 {
		cfg.Engine.GeneratorTimeoutMS = 30000
	}
	if cfg.Engine.DispatchTimeoutMS == 0 {
		cfg.Engine.DispatchTimeoutMS = 15000
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Transport.Provider {
	case "gmail", "ses":
	default:
		return fmt.Errorf("transport.provider must be gmail or ses, got %q", cfg.Transport.Provider)
	}

	if cfg.Transport.Provider == "ses" && cfg.Transport.SES.Sender == "" {
		return fmt.Errorf("transport.ses.sender is required for the ses provider")
	}

	if cfg.App.Environment == "production" && cfg.GenAI.APIKey == "" {
		return fmt.Errorf("genai.api_key is required in production")
	}

	return nil
}
