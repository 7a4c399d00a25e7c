package bootstrap

import (
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func validConfig() AppConfig {
	return AppConfig{
		MongoURI:         "mongodb://localhost:27017",
		MongoDatabase:    "family_tree",
		MongoMaxPoolSize: 100,
		MongoMinPoolSize: 5,
		TimeoutShort:     5 * time.Second,
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{"valid", func(*AppConfig) {}, ""},
		{"bad uri", func(c *AppConfig) { c.MongoURI = "postgres://nope" }, "invalid MongoDB URI"},
		{"no database", func(c *AppConfig) { c.MongoDatabase = "" }, "mongo_database"},
		{"zero max pool", func(c *AppConfig) { c.MongoMaxPoolSize = 0 }, "mongo_max_pool_size"},
		{"min above max", func(c *AppConfig) { c.MongoMinPoolSize = 200 }, "exceeds"},
		{"negative timeout", func(c *AppConfig) { c.TimeoutLong = -time.Second }, "negative"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(nil, cfg, zap.NewNop())
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error: got %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
