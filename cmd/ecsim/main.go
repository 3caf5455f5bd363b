package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/l1jgo/ecscore/core/ecs"
	"github.com/l1jgo/ecscore/core/event"
	coresys "github.com/l1jgo/ecscore/core/system"
	"github.com/l1jgo/ecscore/internal/config"
	"github.com/l1jgo/ecscore/internal/logging"
	"github.com/l1jgo/ecscore/internal/scene"
	"github.com/l1jgo/ecscore/internal/scripting"
	"github.com/l1jgo/ecscore/internal/sim"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// startProfile maps the configured mode onto pkg/profile. The returned stop
// func is never nil.
func startProfile(cfg config.ProfileConfig) func() {
	var mode func(*profile.Profile)
	switch cfg.Mode {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfileAllocs
	case "trace":
		mode = profile.TraceProfile
	default:
		return func() {}
	}
	p := profile.Start(mode, profile.ProfilePath(cfg.Path), profile.NoShutdownHook, profile.Quiet)
	return p.Stop
}

func run() error {
	// 1. Load config
	cfgPath := "config/ecsim.toml"
	if p := os.Getenv("ECSIM_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	stopProfile := startProfile(cfg.Profile)
	defer stopProfile()

	// 3. World
	world := ecs.NewWorld(
		ecs.WithEntityCapacity(cfg.World.EntityCapacity),
		ecs.WithTableCapacity(cfg.World.TableCapacity),
		ecs.WithPoolLimit(cfg.World.PoolLimit),
	)

	// 4. Scene
	printSection("Scene")
	reg := scene.NewRegistry()
	sim.RegisterScene(reg)
	if cfg.Sim.Scene != "" {
		sc, err := scene.Load(cfg.Sim.Scene)
		if err != nil {
			return fmt.Errorf("scene: %w", err)
		}
		spawned, err := sc.Spawn(world, reg)
		if err != nil {
			return fmt.Errorf("spawn scene: %w", err)
		}
		printStat("Entities", len(spawned))
	}

	// 5. Scripts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := scripting.NewEngine(world, log)
	defer engine.Close()
	sim.BindScripts(engine)
	if err := engine.LoadDir(cfg.Sim.ScriptsDir); err != nil {
		return fmt.Errorf("scripts: %w", err)
	}
	printStat("Lua behaviours", engine.Len())
	if cfg.Sim.HotReload {
		if err := engine.Watch(ctx, cfg.Sim.ScriptsDir); err != nil {
			log.Warn("script hot reload disabled", zap.Error(err))
		} else {
			printOK("Hot reload watching " + cfg.Sim.ScriptsDir)
		}
	}
	fmt.Println()

	// 6. Systems
	bus := event.NewBus()
	runner := coresys.NewRunner(log)
	systems := sim.Install(world, runner, bus, cfg.Sim.StatsEvery, log)
	runner.Register(scripting.NewSystem(engine))

	// 7. Tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Sim.TickRate)
	defer ticker.Stop()

	printSection("Running")
	printOK(fmt.Sprintf("Tick loop started (tick: %s)", cfg.Sim.TickRate))
	fmt.Println()

	ticks := 0
	for {
		select {
		case <-ticker.C:
			runner.Tick(cfg.Sim.TickRate)
			ticks++
			if cfg.Sim.MaxTicks > 0 && ticks >= cfg.Sim.MaxTicks {
				logFinal(log, world, runner, systems, ticks)
				return nil
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			logFinal(log, world, runner, systems, ticks)
			return nil
		}
	}
}

func logFinal(log *zap.Logger, world *ecs.World, runner *coresys.Runner, systems *sim.Systems, ticks int) {
	st := world.Stats(nil)
	log.Info("simulation stopped",
		zap.Int("ticks", ticks),
		zap.Int("entities", st.Entities),
		zap.Int("tables", len(st.Tables)),
		zap.Int("tracked", systems.Track.Len()),
	)
	for _, s := range runner.Samples() {
		log.Info("system timing",
			zap.String("system", s.Name),
			zap.Stringer("phase", s.Phase),
			zap.Duration("total", s.Total),
			zap.Int("runs", s.Runs),
			zap.Int("failures", s.Failures),
		)
	}
}
