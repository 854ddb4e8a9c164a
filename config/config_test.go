package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	err := os.WriteFile(path, []byte(`
LogLevel = "debug"

[Database]
Driver = "sqlite"
Path = "draw.db"

[Auth]
TokenSecret = "secret"

[Draw]
MaxAttempts = 10
SolveTimeout = "2s"
`), 0o600)
	require.NoError(t, err)

	t.Setenv("DRAW_NODE_BUDGET", "5000")
	t.Setenv("API_PORT", "9000")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "draw.db", cfg.Database.ConnectionString())
	require.Equal(t, 10, cfg.Draw.MaxAttempts)
	require.Equal(t, 5000, cfg.Draw.NodeBudget)
	require.Equal(t, 2*time.Second, cfg.Draw.SolveTimeout)
	require.Equal(t, "9000", cfg.ApiServer.Port)
	require.Equal(t, "local", cfg.Draw.LockBackend)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "secret")
	t.Setenv("DRAW_NODE_BUDGET", "many")

	_, err := Load("")
	require.ErrorContains(t, err, "DRAW_NODE_BUDGET")
}

func TestValidate(t *testing.T) {
	valid := Default()
	valid.Auth.TokenSecret = "secret"

	tests := []struct {
		name    string
		mutate  func(*Configs)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(*Configs) {},
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Configs) { c.Database.Driver = "postgres" },
			wantErr: "invalid database driver",
		},
		{
			name:    "missing secret",
			mutate:  func(c *Configs) { c.Auth.TokenSecret = "" },
			wantErr: "missing auth token secret",
		},
		{
			name:    "zero node budget",
			mutate:  func(c *Configs) { c.Draw.NodeBudget = 0 },
			wantErr: "node budget",
		},
		{
			name:    "redis lock without redis",
			mutate:  func(c *Configs) { c.Draw.LockBackend = "redis" },
			wantErr: "missing redis address",
		},
		{
			name: "redis lock",
			mutate: func(c *Configs) {
				c.Draw.LockBackend = "redis"
				c.Redis.Addr = "localhost:6379"
			},
		},
		{
			name: "redis lock without ttl",
			mutate: func(c *Configs) {
				c.Draw.LockBackend = "redis"
				c.Redis.Addr = "localhost:6379"
				c.Draw.LockTTL = 0
			},
			wantErr: "lock ttl must be positive",
		},
		{
			name: "redis lock with negative ttl",
			mutate: func(c *Configs) {
				c.Draw.LockBackend = "redis"
				c.Redis.Addr = "localhost:6379"
				c.Draw.LockTTL = -time.Second
			},
			wantErr: "lock ttl must be positive",
		},
		{
			name:    "unknown lock backend",
			mutate:  func(c *Configs) { c.Draw.LockBackend = "etcd" },
			wantErr: "invalid draw lock backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}
