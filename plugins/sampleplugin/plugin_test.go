package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annelo/nightfall/internal/gameloop"
	"github.com/annelo/nightfall/internal/noisegeneration"
	"github.com/annelo/nightfall/internal/plugin"
	"github.com/annelo/nightfall/internal/rng"
)

func newBounty(t *testing.T, yamlConfig string) (*plugin.DefaultRegistry, gameloop.System, *gameloop.World) {
	t.Helper()
	reg := plugin.NewDefaultRegistry(nil)
	Register(reg)

	if yamlConfig != "" {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, pluginName+".yaml"), []byte(yamlConfig), 0644))
		require.NoError(t, reg.LoadPluginConfig(pluginName, dir))
	}

	world := gameloop.NewWorld(gameloop.Settings{
		PlayerSpeed:  150,
		PlayerHealth: 100,
		PlayerEnergy: 100,
		CameraFollow: 0.2,
		ViewWidth:    800,
		ViewHeight:   600,
	}, rng.New(1), noisegeneration.NewGroundNoise(1), nil)

	systems := reg.GameSystems()
	require.Len(t, systems, 1)
	require.NoError(t, systems[0].Init(gameloop.Dependencies{World: world}))
	return reg, systems[0], world
}

func TestBounty_UsesLoadedConfig(t *testing.T) {
	reg, sys, world := newBounty(t, "every: 3\nenergy: 40\n")

	reg.Emit(plugin.HookEnemiesKilled, 7)
	sys.Tick(context.Background(), time.Millisecond)

	assert.Equal(t, int32(180), world.Player.Energy)
	assert.Equal(t, "Bounty: +40 energy", world.Message.Text)

	cmd, err := reg.Command("bounty")
	require.NoError(t, err)
	out, err := cmd.Handler(nil)
	require.NoError(t, err)
	assert.Equal(t, "kills: 7, rewards: 2 (every 3 kills, +40 energy)", out)

	// оставшееся убийство засчитывается в следующую награду
	reg.Emit(plugin.HookEnemiesKilled, 2)
	sys.Tick(context.Background(), time.Millisecond)
	assert.Equal(t, int32(220), world.Player.Energy)
}

func TestBounty_DefaultsWithoutFile(t *testing.T) {
	reg, sys, world := newBounty(t, "")

	reg.Emit(plugin.HookEnemiesKilled, 9)
	sys.Tick(context.Background(), time.Millisecond)
	assert.Equal(t, int32(100), world.Player.Energy)

	reg.Emit(plugin.HookEnemiesKilled, 1)
	sys.Tick(context.Background(), time.Millisecond)
	assert.Equal(t, int32(125), world.Player.Energy)
}

func TestBounty_ResetClearsTally(t *testing.T) {
	reg, sys, world := newBounty(t, "every: 2\n")

	reg.Emit(plugin.HookEnemiesKilled, 1)
	reg.Emit(plugin.HookSessionReset)
	reg.Emit(plugin.HookEnemiesKilled, 1)
	sys.Tick(context.Background(), time.Millisecond)

	assert.Equal(t, int32(100), world.Player.Energy)
}
