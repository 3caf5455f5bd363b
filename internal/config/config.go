package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	World   WorldConfig   `toml:"world"`
	Sim     SimConfig     `toml:"sim"`
	Logging LoggingConfig `toml:"logging"`
	Profile ProfileConfig `toml:"profile"`
}

type WorldConfig struct {
	EntityCapacity int `toml:"entity_capacity"`
	TableCapacity  int `toml:"table_capacity"`
	PoolLimit      int `toml:"pool_limit"` // free sets/arrays kept by the scratch pool, 0 = unbounded
}

type SimConfig struct {
	TickRate   time.Duration `toml:"tick_rate"`
	MaxTicks   int           `toml:"max_ticks"` // 0 = run until signalled
	Scene      string        `toml:"scene"`
	ScriptsDir string        `toml:"scripts_dir"`
	HotReload  bool          `toml:"hot_reload"`
	StatsEvery int           `toml:"stats_every"` // ticks between stats lines, 0 = never
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type ProfileConfig struct {
	Mode string `toml:"mode"` // "", "cpu", "mem", "trace"
	Path string `toml:"path"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("sim.tick_rate must be positive, got %s", c.Sim.TickRate)
	}
	if c.World.EntityCapacity < 0 || c.World.TableCapacity < 0 {
		return fmt.Errorf("world capacities must not be negative")
	}
	switch c.Profile.Mode {
	case "", "cpu", "mem", "trace":
	default:
		return fmt.Errorf("profile.mode %q: want cpu, mem or trace", c.Profile.Mode)
	}
	return nil
}

// Defaults returns the configuration used for keys missing from the file.
func Defaults() *Config {
	return &Config{
		World: WorldConfig{
			EntityCapacity: 4096,
			TableCapacity:  256,
			PoolLimit:      32,
		},
		Sim: SimConfig{
			TickRate:   50 * time.Millisecond,
			MaxTicks:   0,
			Scene:      "data/scene.yaml",
			ScriptsDir: "scripts",
			HotReload:  false,
			StatsEvery: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Profile: ProfileConfig{
			Path: ".",
		},
	}
}
