// internal/common/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, "outreach-engine", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 9464, cfg.Metrics.Port)

	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "localhost:6379", cfg.Database.Redis.Address)

	assert.Equal(t, "gpt-4o-mini", cfg.GenAI.Model)
	assert.Equal(t, float32(0.7), cfg.GenAI.Temperature)

	assert.Equal(t, "gmail", cfg.Transport.Provider)
	assert.Equal(t, "https://gmail.googleapis.com", cfg.Transport.Gmail.BaseURL)

	assert.Equal(t, "https://www.googleapis.com/oauth2/v3/tokeninfo", cfg.Auth.Google.TokenInfoURL)
	assert.Equal(t, "https://www.googleapis.com/auth/gmail.send", cfg.Auth.Google.RequiredScope)

	assert.Equal(t, 60000, cfg.Engine.ValidatorTimeoutMS)
	assert.Equal(t, 30000, cfg.Engine.GeneratorTimeoutMS)
	assert.Equal(t, 15000, cfg.Engine.DispatchTimeoutMS)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Transport.Provider = "ses"
	cfg.GenAI.Model = "gpt-4o"
	cfg.Engine.ValidatorTimeoutMS = 5000
	applyDefaults(cfg)

	assert.Equal(t, "ses", cfg.Transport.Provider)
	assert.Equal(t, "gpt-4o", cfg.GenAI.Model)
	assert.Equal(t, 5000, cfg.Engine.ValidatorTimeoutMS)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name: "unknown transport provider",
			mutate: func(cfg *Config) {
				cfg.Transport.Provider = "sendmail"
			},
			wantErr: "transport.provider",
		},
		{
			name: "ses without sender",
			mutate: func(cfg *Config) {
				cfg.Transport.Provider = "ses"
			},
			wantErr: "transport.ses.sender",
		},
		{
			name: "ses with sender",
			mutate: func(cfg *Config) {
				cfg.Transport.Provider = "ses"
				cfg.Transport.SES.Sender = "verified@example.com"
			},
		},
		{
			name: "production requires genai key",
			mutate: func(cfg *Config) {
				cfg.App.Environment = "production"
				cfg.GenAI.APIKey = ""
			},
			wantErr: "genai.api_key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := validateConfig(cfg)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	p := PostgresConfig{
		Host: "db.internal", Port: 5433, User: "outreach",
		Password: "secret", Database: "outreach", SSLMode: "require",
	}
	assert.Equal(t,
		"host=db.internal port=5433 user=outreach password=secret dbname=outreach sslmode=require",
		p.GetDSN())
}
