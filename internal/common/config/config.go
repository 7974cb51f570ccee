// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Database  DatabaseConfig  `mapstructure:"database"`
	GenAI     GenAIConfig     `mapstructure:"genai"`
	Transport TransportConfig `mapstructure:"transport"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GenAIConfig holds settings for the generative-AI collaborators (lead
// validation and draft generation).
type GenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"` // empty means provider default
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TimeoutMS   int     `mapstructure:"timeout"` // milliseconds
}

// TransportConfig selects and configures the outbound email transport.
type TransportConfig struct {
	Provider string      `mapstructure:"provider"` // "gmail" or "ses"
	Gmail    GmailConfig `mapstructure:"gmail"`
	SES      SESConfig   `mapstructure:"ses"`
}

type GmailConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	TimeoutMS int    `mapstructure:"timeout"` // milliseconds
}

type SESConfig struct {
	Region string `mapstructure:"region"`
	Sender string `mapstructure:"sender"`
}

// AuthConfig holds settings for sender identity verification.
type AuthConfig struct {
	Google struct {
		TokenInfoURL  string `mapstructure:"tokeninfo_url"`
		RequiredScope string `mapstructure:"required_scope"`
		TimeoutMS     int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"google"`
}

// EngineConfig holds core settings for the campaign orchestrator.
type EngineConfig struct {
	ValidatorTimeoutMS int `mapstructure:"validator_timeout"` // milliseconds, per batch
	GeneratorTimeoutMS int `mapstructure:"generator_timeout"` // milliseconds, per lead
	DispatchTimeoutMS  int `mapstructure:"dispatch_timeout"`  // milliseconds, per draft
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Port int `mapstructure:"port"`
}
