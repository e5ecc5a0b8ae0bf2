package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "partydeck.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadServerConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadServerConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Address)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "localhost:8080", cfg.GetServerAddress())
}

func TestLoadServerConfigParsesBlocks(t *testing.T) {
	path := writeConfig(t, `
server {
  address   = "0.0.0.0"
  port      = 9000
  log_level = "debug"
  seed      = 42
}

matcher {
  max_rounds             = 12
  submit_timeout_seconds = 30
}

stud {
  small_blind    = 25
  big_blind      = 50
  starting_chips = 5000
}
`)

	cfg, err := LoadServerConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "0.0.0.0:9000", cfg.GetServerAddress())
	assert.Equal(t, int64(42), cfg.Server.Seed)

	rc := cfg.RegistryConfig()
	assert.Equal(t, 12, rc.Matcher.MaxRounds)
	assert.Equal(t, 30*time.Second, rc.Matcher.SubmitTimeout)
	assert.Equal(t, 7, rc.Matcher.HandSize, "unset fields keep their defaults")
	assert.Equal(t, 25, rc.Stud.SmallBlind)
	assert.Equal(t, 50, rc.Stud.BigBlind)
	assert.Equal(t, 5000, rc.Stud.StartingChips)
}

func TestLoadServerConfigRejectsBadHCL(t *testing.T) {
	path := writeConfig(t, `server { address = `)

	_, err := LoadServerConfig(path)
	require.Error(t, err)
}

func TestValidateCatchesBadSettings(t *testing.T) {
	tests := []struct {
		name string
		cfg  ServerConfig
	}{
		{
			name: "port out of range",
			cfg:  ServerConfig{Server: ServerSettings{Port: 70000}},
		},
		{
			name: "big blind not above small blind",
			cfg: ServerConfig{
				Server: ServerSettings{Port: 8080},
				Stud:   &StudSettings{SmallBlind: 10, BigBlind: 10},
			},
		},
		{
			name: "starting chips below two big blinds",
			cfg: ServerConfig{
				Server: ServerSettings{Port: 8080},
				Stud:   &StudSettings{SmallBlind: 5, BigBlind: 10, StartingChips: 15},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.cfg.Validate())
		})
	}
}
