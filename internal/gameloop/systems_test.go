package gameloop

import (
	"context"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annelo/nightfall/internal/entity"
	"github.com/annelo/nightfall/internal/noisegeneration"
	"github.com/annelo/nightfall/internal/rng"
	"github.com/annelo/nightfall/internal/weapon"
)

type harness struct {
	world  *World
	loop   *Loop
	events []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{}
	h.world = NewWorld(Settings{
		PlayerSpeed:  150,
		PlayerHealth: 100,
		PlayerEnergy: 100,
		CameraFollow: 0.2,
		ViewWidth:    800,
		ViewHeight:   600,
	}, rng.New(7), noisegeneration.NewGroundNoise(7), nil)
	deps := Dependencies{
		World: h.world,
		Emit:  func(event string, args ...interface{}) { h.events = append(h.events, event) },
	}
	h.loop = NewLoop(time.Millisecond, deps, Pipeline()...)
	return h
}

func (h *harness) step(dt time.Duration, in Input) {
	h.world.Now += float32(dt.Seconds())
	h.world.Input = in
	h.loop.Step(context.Background(), dt)
}

func (h *harness) count(event string) int {
	n := 0
	for _, e := range h.events {
		if e == event {
			n++
		}
	}
	return n
}

func TestStep_FirstTickStreamsTiles(t *testing.T) {
	h := newHarness(t)
	h.step(10*time.Millisecond, Input{})

	assert.Equal(t, 25, h.world.Tiles.Len())
	assert.GreaterOrEqual(t, h.world.Chests.Len(), 25*2)
	assert.LessOrEqual(t, h.world.Chests.Len(), 25*7)
}

func TestStep_PhaseChangeAndWaves(t *testing.T) {
	h := newHarness(t)
	// день занимает 0.7 от 60 секунд
	for i := 0; i < 43; i++ {
		h.step(time.Second, Input{})
	}
	require.True(t, h.world.Clock.IsNight())
	assert.Equal(t, 1, h.count(EventPhaseChanged))
	assert.Equal(t, "Night falls", h.world.Message.Text)
	assert.Positive(t, h.count(EventWaveSpawned))
	assert.Positive(t, h.world.Enemies.Len())
}

func TestStep_PlayerDeathSignalledOnce(t *testing.T) {
	h := newHarness(t)
	h.world.Player.Health = 1
	h.world.Enemies.Spawn(entity.Enemy{Body: entity.Body{Health: 5}})

	h.step(time.Second, Input{})
	h.step(time.Second, Input{})

	assert.True(t, h.world.PlayerDead)
	assert.Zero(t, h.world.Player.Health)
	assert.Equal(t, 1, h.count(EventPlayerDied))
}

func TestStep_PlayerFireSpendsEnergy(t *testing.T) {
	h := newHarness(t)
	h.step(time.Second, Input{Fire: true, AimAngle: 0})

	assert.Equal(t, 1, h.world.Projectiles.Len())
	assert.Equal(t, int32(99), h.world.Player.Energy)

	h.world.Player.Energy = 0
	h.step(time.Second, Input{Fire: true})
	assert.Equal(t, 1, h.world.Projectiles.Len())
}

func TestStep_TurretKillsEnemy(t *testing.T) {
	h := newHarness(t)
	h.world.Player.HoldTurret(weapon.Default())
	h.step(10*time.Millisecond, Input{PlaceTurret: true})
	require.Len(t, h.world.Enemies.Turrets(), 1)
	assert.Nil(t, h.world.Player.Inventory.TurretInHand)
	assert.Equal(t, 1, h.count(EventTurretPlaced))

	// враг рядом с турелью, но вне контакта с игроком; сам не двигается
	h.world.Enemies.Spawn(entity.Enemy{Body: entity.Body{Position: mgl32.Vec3{0, 200, 0}, Health: 1}})

	for i := 0; i < 20 && h.count(EventEnemiesKilled) == 0; i++ {
		h.step(100*time.Millisecond, Input{})
	}
	assert.Equal(t, 1, h.count(EventEnemiesKilled))
	assert.Zero(t, h.world.Enemies.Len())
}

func TestStep_OpenChestAndConfirmOffer(t *testing.T) {
	h := newHarness(t)
	h.step(10*time.Millisecond, Input{})

	chests := h.world.Chests.Chests()
	require.NotEmpty(t, chests)
	h.world.Player.Position = chests[0].Position

	h.step(10*time.Millisecond, Input{Interact: true})
	assert.Equal(t, 1, h.count(EventChestOpened))
	assert.NotEmpty(t, h.world.Message.Text)

	opened := 0
	for _, c := range h.world.Chests.Chests() {
		if c.Opened {
			opened++
		}
	}
	assert.Equal(t, 1, opened)

	if h.world.Offers.Weapon.Pending {
		spec := h.world.Offers.Weapon.Spec
		h.step(10*time.Millisecond, Input{ConfirmOffer: true})
		assert.Equal(t, spec.Name, h.world.Player.Weapon.Name)
		assert.Equal(t, 1, h.count(EventOfferConfirmed))
	}
}

func TestWorld_Reset(t *testing.T) {
	h := newHarness(t)
	for i := 0; i < 45; i++ {
		h.step(time.Second, Input{Fire: true})
	}
	h.world.Reset()

	assert.Equal(t, int32(1), h.world.Clock.Day())
	assert.False(t, h.world.Clock.IsNight())
	assert.Zero(t, h.world.Enemies.Len())
	assert.Zero(t, h.world.Projectiles.Len())
	assert.Zero(t, h.world.Tiles.Len())
	assert.Zero(t, h.world.Chests.Len())
	assert.Equal(t, int32(100), h.world.Player.Energy)
}
