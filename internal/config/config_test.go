package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{Name: "ambient-toolbox-api", Env: "local", Port: 8080},
		Database: DatabaseConfig{
			Driver:   DriverOracle,
			Host:     "localhost",
			Service:  "FREEPDB1",
			User:     "app",
			Password: "secret",
		},
		JWT:       JWTConfig{Secret: "0123456789abcdef0123456789abcdef"},
		GraphQL:   GraphQLConfig{Path: "/graphql/"},
		RateLimit: RateLimitConfig{Auth: "20-M"},
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "Valid oracle config",
			mutate: func(c *Config) {},
		},
		{
			name: "Valid sqlite config without oracle settings",
			mutate: func(c *Config) {
				c.Database = DatabaseConfig{Driver: DriverSQLite, SQLitePath: "ambient.db"}
			},
		},
		{
			name:    "Unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "mysql" },
			wantErr: "지원하지 않는 데이터베이스 드라이버",
		},
		{
			name:    "SQLite without path",
			mutate:  func(c *Config) { c.Database = DatabaseConfig{Driver: DriverSQLite} },
			wantErr: "SQLite 파일 경로",
		},
		{
			name:    "GraphQL path without leading slash",
			mutate:  func(c *Config) { c.GraphQL.Path = "graphql/" },
			wantErr: "GraphQL 경로",
		},
		{
			name:    "Missing rate limit",
			mutate:  func(c *Config) { c.RateLimit.Auth = "" },
			wantErr: "rate limit",
		},
		{
			name:    "Short JWT secret",
			mutate:  func(c *Config) { c.JWT.Secret = "short" },
			wantErr: "32자 이상",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)

			err := cfg.Validate()

			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tc.wantErr)
			}
		})
	}
}

func TestLoad_SQLiteFromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("DB_SQLITE_PATH", ":memory:")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("GRAPHQL_PATH", "/api/graphql")
	t.Setenv("GRAPHQL_PLAYGROUND", "true")
	t.Setenv("RATE_LIMIT_AUTH", "5-S")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load("unittest")

	if assert.NoError(t, err) {
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, ":memory:", cfg.Database.SQLitePath)
		assert.Equal(t, "/api/graphql", cfg.GraphQL.Path)
		assert.True(t, cfg.GraphQL.Playground)
		assert.Equal(t, "5-S", cfg.RateLimit.Auth)
		assert.False(t, cfg.Metrics.Enabled)
	}
}

func TestLoad_RejectsInvalidGraphQLPath(t *testing.T) {
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("DB_SQLITE_PATH", ":memory:")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("GRAPHQL_PATH", "graphql")
	t.Setenv("RATE_LIMIT_AUTH", "5-S")

	_, err := Load("unittest")

	assert.Error(t, err)
}
