package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ecsim.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
[sim]
tick_rate = "20ms"
max_ticks = 10

[logging]
level = "debug"
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sim.TickRate != 20*time.Millisecond || cfg.Sim.MaxTicks != 10 {
		t.Fatalf("sim = %+v", cfg.Sim)
	}
	if cfg.Sim.ScriptsDir != "scripts" || cfg.World.EntityCapacity != 4096 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"zero tick rate", "[sim]\ntick_rate = \"0s\"\n", "tick_rate"},
		{"negative capacity", "[world]\nentity_capacity = -1\n", "capacities"},
		{"bad profile mode", "[profile]\nmode = \"heap\"\n", "profile.mode"},
		{"not toml", "[world\n", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("Load of missing file succeeded")
	}
}

func TestDefaultsValidate(t *testing.T) {
	if err := Defaults().validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
}
