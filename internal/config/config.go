// Package config loads table and logging settings from HCL files, with
// HOLDEM_* environment variables taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/kelseyhightower/envconfig"

	"github.com/lox/pokerengine/internal/game"
)

// EnvPrefix is the prefix of environment overrides, e.g. HOLDEM_LOG_LEVEL.
const EnvPrefix = "holdem"

// Policies lists the seat policy names a config may use.
var Policies = []string{"calling", "folding", "random", "tight"}

// Config represents the complete configuration
type Config struct {
	Table   TableConfig    `hcl:"table,block"`
	Log     *LogConfig     `hcl:"log,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// TableConfig defines the table being played. Amounts are in chips and may have
// up to two decimal places.
type TableConfig struct {
	Name          string `hcl:"name,label"`
	SmallBlind    string `hcl:"small_blind"`
	BigBlind      string `hcl:"big_blind"`
	StartingStack string `hcl:"starting_stack,optional"`
	Seats         int    `hcl:"seats,optional"`
	Hands         int    `hcl:"hands,optional"`
	Seed          int64  `hcl:"seed,optional"`
}

// LogConfig controls the logger built by the CLI.
type LogConfig struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"` // console or json
	File   string `hcl:"file,optional"`
}

// PlayerConfig seats one player driven by a named policy.
type PlayerConfig struct {
	Name   string `hcl:"name,label"`
	Seat   int    `hcl:"seat"`
	Policy string `hcl:"policy,optional"`
	Stack  string `hcl:"stack,optional"`
}

// env holds the supported overrides. Empty values leave the file's setting alone.
type env struct {
	LogLevel   string `envconfig:"LOG_LEVEL"`
	LogFormat  string `envconfig:"LOG_FORMAT"`
	SmallBlind string `envconfig:"SMALL_BLIND"`
	BigBlind   string `envconfig:"BIG_BLIND"`
	Hands      int    `envconfig:"HANDS"`
	Seed       int64  `envconfig:"SEED"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Table: TableConfig{
			Name:          "main",
			SmallBlind:    "0.5",
			BigBlind:      "1",
			StartingStack: "100",
			Seats:         6,
			Hands:         100,
		},
		Log: &LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads filename, falling back to Default when it does not exist, then
// applies environment overrides and validates the result.
func Load(filename string) (*Config, error) {
	var cfg *Config
	src, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, os.ErrNotExist):
		cfg = Default()
	case err != nil:
		return nil, err
	default:
		if cfg, err = Parse(src, filename); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes HCL source and fills in defaults for missing values.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := Default()
	if cfg.Log == nil {
		cfg.Log = def.Log
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = def.Log.Format
	}
	if cfg.Table.StartingStack == "" {
		cfg.Table.StartingStack = def.Table.StartingStack
	}
	if cfg.Table.Seats == 0 {
		cfg.Table.Seats = max(def.Table.Seats, len(cfg.Players))
	}
	if cfg.Table.Hands == 0 {
		cfg.Table.Hands = def.Table.Hands
	}
	for i := range cfg.Players {
		if cfg.Players[i].Policy == "" {
			cfg.Players[i].Policy = "calling"
		}
		if cfg.Players[i].Stack == "" {
			cfg.Players[i].Stack = cfg.Table.StartingStack
		}
	}
	return &cfg, nil
}

// ApplyEnv overlays HOLDEM_* environment variables.
func (c *Config) ApplyEnv() error {
	var e env
	if err := envconfig.Process(EnvPrefix, &e); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	if c.Log == nil {
		c.Log = Default().Log
	}
	if e.LogLevel != "" {
		c.Log.Level = e.LogLevel
	}
	if e.LogFormat != "" {
		c.Log.Format = e.LogFormat
	}
	if e.SmallBlind != "" {
		c.Table.SmallBlind = e.SmallBlind
	}
	if e.BigBlind != "" {
		c.Table.BigBlind = e.BigBlind
	}
	if e.Hands > 0 {
		c.Table.Hands = e.Hands
	}
	if e.Seed != 0 {
		c.Table.Seed = e.Seed
	}
	return nil
}

// Blinds returns the parsed small and big blinds.
func (t TableConfig) Blinds() (sb, bb game.Chips, err error) {
	if sb, err = game.ParseChips(t.SmallBlind); err != nil {
		return 0, 0, fmt.Errorf("small_blind: %w", err)
	}
	if bb, err = game.ParseChips(t.BigBlind); err != nil {
		return 0, 0, fmt.Errorf("big_blind: %w", err)
	}
	return sb, bb, nil
}

// Stack returns the parsed starting stack.
func (t TableConfig) Stack() (game.Chips, error) {
	return game.ParseChips(t.StartingStack)
}

// Chips returns the player's parsed stack.
func (p PlayerConfig) Chips() (game.Chips, error) {
	return game.ParseChips(p.Stack)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	sb, bb, err := c.Table.Blinds()
	if err != nil {
		return err
	}
	if sb <= 0 || bb <= 0 {
		return fmt.Errorf("blinds must be positive, got %s/%s", sb, bb)
	}
	if sb > bb {
		return fmt.Errorf("small blind %s exceeds big blind %s", sb, bb)
	}
	stack, err := c.Table.Stack()
	if err != nil {
		return fmt.Errorf("starting_stack: %w", err)
	}
	if stack <= 0 {
		return fmt.Errorf("starting_stack must be positive, got %s", stack)
	}
	if c.Table.Seats < 2 || c.Table.Seats > game.MaxSeats {
		return fmt.Errorf("seats must be between 2 and %d, got %d", game.MaxSeats, c.Table.Seats)
	}
	if c.Table.Hands < 0 {
		return fmt.Errorf("hands must not be negative, got %d", c.Table.Hands)
	}
	if c.Log != nil {
		switch c.Log.Format {
		case "console", "json":
		default:
			return fmt.Errorf("invalid log format %q", c.Log.Format)
		}
	}

	var taken game.SeatSet
	for _, p := range c.Players {
		if !game.ValidSeat(p.Seat) {
			return fmt.Errorf("player %s: invalid seat %d", p.Name, p.Seat)
		}
		if taken.Has(p.Seat) {
			return fmt.Errorf("player %s: seat %d is taken", p.Name, p.Seat)
		}
		taken = taken.Add(p.Seat)
		if !slices.Contains(Policies, p.Policy) {
			return fmt.Errorf("player %s: unknown policy %q", p.Name, p.Policy)
		}
		if _, err := p.Chips(); err != nil {
			return fmt.Errorf("player %s: stack: %w", p.Name, err)
		}
	}
	return nil
}
