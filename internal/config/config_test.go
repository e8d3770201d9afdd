package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokerengine/internal/game"
)

const sample = `
table "friday" {
  small_blind    = 0.25
  big_blind      = "0.50"
  starting_stack = 50
  hands          = 200
  seed           = 42
}

log {
  level = "debug"
}

player "alice" {
  seat   = 0
  policy = "tight"
}

player "bob" {
  seat  = 3
  stack = "75.5"
}
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample), "sample.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "friday", cfg.Table.Name)
	sb, bb, err := cfg.Table.Blinds()
	require.NoError(t, err)
	assert.Equal(t, game.Chips(25), sb)
	assert.Equal(t, game.Chips(50), bb)
	assert.Equal(t, 6, cfg.Table.Seats, "default seat count")
	assert.Equal(t, 200, cfg.Table.Hands)
	assert.Equal(t, int64(42), cfg.Table.Seed)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	require.Len(t, cfg.Players, 2)
	assert.Equal(t, "tight", cfg.Players[0].Policy)
	assert.Equal(t, "calling", cfg.Players[1].Policy)
	stack, err := cfg.Players[0].Chips()
	require.NoError(t, err)
	assert.Equal(t, game.WholeChips(50), stack, "inherits the table's starting stack")
	stack, err = cfg.Players[1].Chips()
	require.NoError(t, err)
	assert.Equal(t, game.Chips(7550), stack)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`table "x" {`), "bad.hcl")
	assert.ErrorContains(t, err, "parse")

	_, err = Parse([]byte(`table "x" { small_blind = 1 }`), "missing.hcl")
	assert.ErrorContains(t, err, "decode")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative blind", func(c *Config) { c.Table.SmallBlind = "-1" }, "small_blind"},
		{"too many decimals", func(c *Config) { c.Table.BigBlind = "0.001" }, "big_blind"},
		{"small above big", func(c *Config) { c.Table.SmallBlind = "2" }, "exceeds"},
		{"one seat", func(c *Config) { c.Table.Seats = 1 }, "seats"},
		{"eleven seats", func(c *Config) { c.Table.Seats = 11 }, "seats"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log format"},
		{"bad seat", func(c *Config) {
			c.Players = []PlayerConfig{{Name: "a", Seat: 10, Policy: "calling", Stack: "1"}}
		}, "invalid seat"},
		{"duplicate seat", func(c *Config) {
			c.Players = []PlayerConfig{
				{Name: "a", Seat: 1, Policy: "calling", Stack: "1"},
				{Name: "b", Seat: 1, Policy: "calling", Stack: "1"},
			}
		}, "taken"},
		{"unknown policy", func(c *Config) {
			c.Players = []PlayerConfig{{Name: "a", Seat: 1, Policy: "maniac", Stack: "1"}}
		}, "unknown policy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestLoadAppliesEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	t.Setenv("HOLDEM_LOG_FORMAT", "json")
	t.Setenv("HOLDEM_BIG_BLIND", "1")
	t.Setenv("HOLDEM_SEED", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level, "file value kept when not overridden")
	assert.Equal(t, "1", cfg.Table.BigBlind)
	assert.Equal(t, int64(7), cfg.Table.Seed)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default().Table, cfg.Table)
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	t.Setenv("HOLDEM_HANDS", "many")
	_, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	assert.ErrorContains(t, err, "environment")
}
