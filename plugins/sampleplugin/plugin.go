package main

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/annelo/nightfall/internal/entity"
	"github.com/annelo/nightfall/internal/gameloop"
	"github.com/annelo/nightfall/internal/plugin"
)

const pluginName = "sampleplugin"

// BountyConfig is loaded from sampleplugin.yaml next to the shared object.
type BountyConfig struct {
	// Every is the number of kills per reward
	Every int `yaml:"every"`
	// Energy is added to the player per reward, capped like firing
	Energy int32 `yaml:"energy"`
}

// defaultConfig is registered as the config sample
var defaultConfig = BountyConfig{Every: 10, Energy: 25}

// bountySystem rewards the player with energy for every Every kills.
type bountySystem struct {
	reg     plugin.PluginRegistry
	world   *gameloop.World
	kills   atomic.Int64
	paid    atomic.Int64
	pending atomic.Int64
}

// config returns the loaded plugin config, falling back to the defaults
func (b *bountySystem) config() BountyConfig {
	if cfg, ok := b.reg.PluginConfig(pluginName).(*BountyConfig); ok && cfg != nil {
		return *cfg
	}
	return defaultConfig
}

// Name returns the system name shown in logs.
func (b *bountySystem) Name() string { return "bounty" }

func (b *bountySystem) Init(deps gameloop.Dependencies) error {
	if deps.World == nil {
		return fmt.Errorf("bounty: world is required")
	}
	b.world = deps.World
	return nil
}

// Tick pays out one reward per full batch of kills counted since the last payout.
func (b *bountySystem) Tick(ctx context.Context, dt time.Duration) {
	cfg := b.config()
	every := int64(cfg.Every)
	if every <= 0 || b.world == nil {
		return
	}
	kills := b.kills.Load()
	for kills-b.pending.Load() >= every {
		b.pending.Add(every)
		p := b.world.Player
		p.SetEnergy(p.Energy+cfg.Energy, entity.EnergyCap)
		b.paid.Add(1)
		b.world.Notify(fmt.Sprintf("Bounty: +%d energy", cfg.Energy))
	}
}

func (b *bountySystem) reset() {
	b.kills.Store(0)
	b.paid.Store(0)
	b.pending.Store(0)
}

// Register is invoked by PluginManager to register systems, hooks, config and commands
func Register(reg plugin.PluginRegistry) {
	sample := defaultConfig
	reg.RegisterPluginConfig(pluginName, &sample)

	sys := &bountySystem{reg: reg}
	reg.RegisterGameSystem(sys)

	// Count kills reported by the death step
	reg.RegisterHook(plugin.HookEnemiesKilled, func(args ...interface{}) {
		if len(args) == 1 {
			if n, ok := args[0].(int); ok {
				sys.kills.Add(int64(n))
			}
		}
	})
	reg.RegisterHook(plugin.HookSessionReset, func(args ...interface{}) {
		sys.reset()
	})

	reg.RegisterCommand("bounty", "Show bounty tally", func(args []string) (string, error) {
		cfg := sys.config()
		return fmt.Sprintf("kills: %d, rewards: %d (every %d kills, +%d energy)",
			sys.kills.Load(), sys.paid.Load(), cfg.Every, cfg.Energy), nil
	})
}

// main is never run; the package is built with -buildmode=plugin and loaded via plugin.Open.
func main() {}
