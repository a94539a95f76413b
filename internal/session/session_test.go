package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annelo/nightfall/internal/config"
	"github.com/annelo/nightfall/internal/daynight"
	"github.com/annelo/nightfall/internal/gameloop"
	"github.com/annelo/nightfall/internal/plugin"
)

func newSession(t *testing.T) (*Session, *plugin.DefaultRegistry) {
	t.Helper()
	cfg := config.Default()
	cfg.Seed = 42
	reg := plugin.NewDefaultRegistry(nil)
	s, err := New(cfg, reg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, reg
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.TickInterval = 0
	_, err := New(cfg, nil, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestClose_Idempotent(t *testing.T) {
	s, _ := newSession(t)
	require.NoError(t, s.Close())
	assert.NoError(t, s.Close())

	// Симуляция после Close продолжает работать, метрики просто не снимаются.
	s.Step(context.Background(), 100*time.Millisecond, gameloop.Input{})
	assert.Len(t, s.Snapshot().Tiles, 25)
}

func TestSnapshot_Initial(t *testing.T) {
	s, _ := newSession(t)
	snap := s.Snapshot()

	assert.Equal(t, s.ID.String(), snap.SessionID)
	assert.Equal(t, float32(100), snap.Health)
	assert.Equal(t, int32(100), snap.Energy)
	assert.Equal(t, "Pistol", snap.Weapon)
	assert.Empty(t, snap.TurretInHand)
	assert.Equal(t, int32(1), snap.Day)
	assert.False(t, snap.Night)
	assert.Empty(t, snap.Tiles)
}

func TestStep_StreamsAndAdvances(t *testing.T) {
	s, _ := newSession(t)
	s.Step(context.Background(), 100*time.Millisecond, gameloop.Input{})

	snap := s.Snapshot()
	assert.Len(t, snap.Tiles, 25)
	assert.NotEmpty(t, snap.Chests)
	assert.InDelta(t, 0.1, snap.Now, 1e-5)
}

func TestStep_MovesPlayer(t *testing.T) {
	s, _ := newSession(t)
	move := mgl32.Vec2{1, 0}
	s.Step(context.Background(), time.Second, gameloop.Input{Move: &move, AimAngle: 1})

	snap := s.Snapshot()
	assert.InDelta(t, 150, snap.PlayerPos.X(), 1e-3)
	assert.Equal(t, float32(1), snap.PlayerAim)
	// камера догоняет на 0.2 расстояния
	assert.InDelta(t, 30, snap.Camera.X(), 1e-3)
}

func TestStep_HooksReceivePhaseChange(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 42
	cfg.Player.Health = 1e6
	reg := plugin.NewDefaultRegistry(nil)
	s, err := New(cfg, reg, nil)
	require.NoError(t, err)

	var phases []daynight.PhaseChanged
	reg.RegisterHook(plugin.HookPhaseChanged, func(args ...interface{}) {
		phases = append(phases, args[0].(daynight.PhaseChanged))
	})

	for i := 0; i < 61; i++ {
		s.Step(context.Background(), time.Second, gameloop.Input{})
	}
	require.Len(t, phases, 2)
	assert.True(t, phases[0].Night)
	assert.False(t, phases[1].Night)
	assert.Equal(t, int32(2), phases[1].Day)
	assert.Equal(t, "Day 2 begins", s.Snapshot().Message)
}

func TestReset_RestoresFirstDay(t *testing.T) {
	s, reg := newSession(t)
	resets := 0
	reg.RegisterHook(plugin.HookSessionReset, func(...interface{}) { resets++ })

	for i := 0; i < 50; i++ {
		s.Step(context.Background(), time.Second, gameloop.Input{Fire: true})
	}
	s.Reset()

	snap := s.Snapshot()
	assert.Equal(t, 1, resets)
	assert.Equal(t, int32(1), snap.Day)
	assert.False(t, snap.Night)
	assert.Empty(t, snap.Enemies)
	assert.Empty(t, snap.Projectiles)
	assert.Empty(t, snap.Tiles)
	assert.Empty(t, snap.Chests)
	assert.Zero(t, snap.Now)
}

func TestSession_ConcurrentSnapshot(t *testing.T) {
	s, _ := newSession(t)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			s.Step(context.Background(), 50*time.Millisecond, gameloop.Input{Fire: true})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 100; i++ {
			_ = s.Snapshot()
		}
	}()
	wg.Wait()
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 1
	cfg.TickInterval = time.Millisecond
	s, err := New(cfg, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	assert.Positive(t, s.Snapshot().Now)
}

type countingSystem struct{ ticks int }

func (c *countingSystem) Init(gameloop.Dependencies) error    { return nil }
func (c *countingSystem) Tick(context.Context, time.Duration) { c.ticks++ }
func (c *countingSystem) Name() string                        { return "counting" }

func TestNew_AppendsPluginSystems(t *testing.T) {
	reg := plugin.NewDefaultRegistry(nil)
	extra := &countingSystem{}
	reg.RegisterGameSystem(extra)

	cfg := config.Default()
	cfg.Seed = 3
	s, err := New(cfg, reg, nil)
	require.NoError(t, err)

	s.Step(context.Background(), time.Millisecond, gameloop.Input{})
	s.Step(context.Background(), time.Millisecond, gameloop.Input{})
	assert.Equal(t, 2, extra.ticks)
}

type failingSystem struct{ ticks int }

func (f *failingSystem) Init(gameloop.Dependencies) error    { return assert.AnError }
func (f *failingSystem) Tick(context.Context, time.Duration) { f.ticks++ }
func (f *failingSystem) Name() string                        { return "failing" }

func TestStep_PluginSystemsAddedLater(t *testing.T) {
	s, reg := newSession(t)
	s.Step(context.Background(), time.Millisecond, gameloop.Input{})

	late := &countingSystem{}
	broken := &failingSystem{}
	reg.RegisterGameSystem(late)
	reg.RegisterGameSystem(broken)
	s.Step(context.Background(), time.Millisecond, gameloop.Input{})
	s.Step(context.Background(), time.Millisecond, gameloop.Input{})

	assert.Equal(t, 2, late.ticks)
	assert.Zero(t, broken.ticks)
}
