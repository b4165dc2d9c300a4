package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DSN_PRIMARY", "user:pass@tcp(127.0.0.1:3306)/storefront?parseTime=true")
	t.Setenv("JWT_SIGNING_KEY", "secret")
	for _, key := range []string{"PORT", "APP_ENV", "CORS_ALLOWED_ORIGINS", "DB_MAX_OPEN_CONNS", "DB_CONN_MAX_LIFETIME",
		"DB_AUTO_MIGRATE", "STORAGE_DRIVER", "STRIPE_CURRENCY", "PAYPAL_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "gbp", cfg.Stripe.Currency)
	assert.Equal(t, 30*time.Second, cfg.PayPal.Timeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_DSN_PRIMARY", "dsn")
	t.Setenv("JWT_SIGNING_KEY", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example.com, ,https://admin.example.com")
	t.Setenv("DB_MAX_OPEN_CONNS", "50")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("PAYPAL_BASE_URL", "https://api-m.paypal.com/")
	t.Setenv("PAYPAL_TIMEOUT", "10s")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"https://shop.example.com", "https://admin.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 50, cfg.DB.MaxOpenConns)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.Equal(t, "https://api-m.paypal.com", cfg.PayPal.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.PayPal.Timeout)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing dsn", mutate: func(c *Config) { c.DB.DSN = "" }, wantErr: "DB_DSN_PRIMARY"},
		{name: "missing jwt key", mutate: func(c *Config) { c.JWT.SigningKey = "" }, wantErr: "JWT_SIGNING_KEY"},
		{name: "cloudinary without url", mutate: func(c *Config) { c.Storage.Driver = "cloudinary" }, wantErr: "CLOUDINARY_URL"},
		{name: "unknown driver", mutate: func(c *Config) { c.Storage.Driver = "s3" }, wantErr: "unknown STORAGE_DRIVER"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DB:      DBConfig{DSN: "dsn"},
				JWT:     JWTConfig{SigningKey: "secret"},
				Storage: StorageConfig{Driver: "local"},
			}
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
