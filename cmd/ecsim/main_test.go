package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunStopsAtMaxTicks(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	scenePath := write("scene.yaml", `
entities:
  - count: 5
    components:
      position: {x: 0, y: 0}
      velocity: {x: 1, y: 1}
      lifetime: {ticks: 2}
`)
	scriptsDir := filepath.Join(dir, "scripts")
	write("scripts/noop.lua", `return { on_tick = function(dt) end }`)
	cfgPath := write("ecsim.toml", `
[sim]
tick_rate = "1ms"
max_ticks = 5
scene = "`+filepath.ToSlash(scenePath)+`"
scripts_dir = "`+filepath.ToSlash(scriptsDir)+`"
stats_every = 2

[logging]
level = "error"
`)
	t.Setenv("ECSIM_CONFIG", cfgPath)

	if err := run(); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestRunBadConfig(t *testing.T) {
	t.Setenv("ECSIM_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	if err := run(); err == nil {
		t.Fatal("run succeeded without a config")
	}
}
