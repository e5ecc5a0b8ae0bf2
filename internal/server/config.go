package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/partydeck/partydeck/internal/games/stud"
	"github.com/partydeck/partydeck/internal/registry"
)

// ServerConfig represents the complete server configuration
type ServerConfig struct {
	Server    ServerSettings     `hcl:"server,block"`
	Matcher   *MatcherSettings   `hcl:"matcher,block"`
	Deception *DeceptionSettings `hcl:"deception,block"`
	Stud      *StudSettings      `hcl:"stud,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
	Seed     int64  `hcl:"seed,optional"`
}

// MatcherSettings tunes the card-matching game
type MatcherSettings struct {
	MaxRounds          int `hcl:"max_rounds,optional"`
	HandSize           int `hcl:"hand_size,optional"`
	SubmitTimeoutSecs  int `hcl:"submit_timeout_seconds,optional"`
	JudgeTimeoutSecs   int `hcl:"judge_timeout_seconds,optional"`
	RevealDelaySecs    int `hcl:"reveal_delay_seconds,optional"`
}

// DeceptionSettings tunes the statement/voting game
type DeceptionSettings struct {
	TurnsPerPlayer       int `hcl:"turns_per_player,optional"`
	StatementTimeoutSecs int `hcl:"statement_timeout_seconds,optional"`
	VoteTimeoutSecs      int `hcl:"vote_timeout_seconds,optional"`
	RevealDelaySecs      int `hcl:"reveal_delay_seconds,optional"`
}

// StudSettings tunes the five-card stud game
type StudSettings struct {
	SmallBlind     int `hcl:"small_blind,optional"`
	BigBlind       int `hcl:"big_blind,optional"`
	StartingChips  int `hcl:"starting_chips,optional"`
	ActTimeoutSecs int `hcl:"act_timeout_seconds,optional"`
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
	}
}

// LoadServerConfig loads server configuration from an HCL file. A
// missing file yields the defaults.
func LoadServerConfig(filename string) (*ServerConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultServerConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config ServerConfig
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if config.Server.Address == "" {
		config.Server.Address = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = "info"
	}

	return &config, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if s := c.Stud; s != nil {
		small, big := s.SmallBlind, s.BigBlind
		if small == 0 {
			small = stud.DefaultConfig().SmallBlind
		}
		if big == 0 {
			big = stud.DefaultConfig().BigBlind
		}
		if small <= 0 {
			return fmt.Errorf("stud: small blind must be positive")
		}
		if big <= small {
			return fmt.Errorf("stud: big blind must be greater than small blind")
		}
		if s.StartingChips < 0 || (s.StartingChips > 0 && s.StartingChips < big*2) {
			return fmt.Errorf("stud: starting chips must cover at least two big blinds")
		}
	}

	if m := c.Matcher; m != nil {
		if m.MaxRounds < 0 || m.HandSize < 0 {
			return fmt.Errorf("matcher: rounds and hand size must be positive")
		}
	}

	if d := c.Deception; d != nil && d.TurnsPerPlayer < 0 {
		return fmt.Errorf("deception: turns per player must be positive")
	}

	return nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// RegistryConfig translates the file settings into the registry's
// per-variant configs, filling defaults for anything unset.
func (c *ServerConfig) RegistryConfig() registry.Config {
	cfg := registry.DefaultConfig()

	if m := c.Matcher; m != nil {
		applyInt(&cfg.Matcher.MaxRounds, m.MaxRounds)
		applyInt(&cfg.Matcher.HandSize, m.HandSize)
		applySecs(&cfg.Matcher.SubmitTimeout, m.SubmitTimeoutSecs)
		applySecs(&cfg.Matcher.JudgeTimeout, m.JudgeTimeoutSecs)
		applySecs(&cfg.Matcher.RevealDelay, m.RevealDelaySecs)
	}
	if d := c.Deception; d != nil {
		applyInt(&cfg.Deception.TurnsPerPlayer, d.TurnsPerPlayer)
		applySecs(&cfg.Deception.StatementTimeout, d.StatementTimeoutSecs)
		applySecs(&cfg.Deception.VoteTimeout, d.VoteTimeoutSecs)
		applySecs(&cfg.Deception.RevealDelay, d.RevealDelaySecs)
	}
	if s := c.Stud; s != nil {
		applyInt(&cfg.Stud.SmallBlind, s.SmallBlind)
		applyInt(&cfg.Stud.BigBlind, s.BigBlind)
		applyInt(&cfg.Stud.StartingChips, s.StartingChips)
		applySecs(&cfg.Stud.ActTimeout, s.ActTimeoutSecs)
	}

	return cfg
}

func applyInt(dst *int, v int) {
	if v != 0 {
		*dst = v
	}
}

func applySecs(dst *time.Duration, secs int) {
	if secs != 0 {
		*dst = time.Duration(secs) * time.Second
	}
}
