// Package session связывает подсистемы симуляции в одну игровую сессию.
package session

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/annelo/nightfall/internal/config"
	"github.com/annelo/nightfall/internal/gameloop"
	"github.com/annelo/nightfall/internal/noisegeneration"
	"github.com/annelo/nightfall/internal/plugin"
	"github.com/annelo/nightfall/internal/rng"
	"github.com/annelo/nightfall/internal/telemetry"
)

// Session владеет миром и циклом систем. Step и Snapshot безопасны для вызова из разных горутин.
// Хуки реестра вызываются синхронно внутри Step и не должны обращаться к сессии.
type Session struct {
	ID   uuid.UUID
	Seed int64

	mu      sync.Mutex
	world   *gameloop.World
	loop    *gameloop.Loop
	ground  *noisegeneration.GroundNoise
	reg     plugin.PluginRegistry
	metrics *telemetry.Counters
	log     *zap.SugaredLogger
	live    atomic.Int64
}

// New создаёт сессию. Системы из reg выполняются после основного конвейера,
// включая добавленные позже. reg и log могут быть nil.
func New(cfg config.Config, reg plugin.PluginRegistry, log *zap.SugaredLogger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if reg == nil {
		reg = plugin.NewDefaultRegistry(log)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Session{
		ID:     uuid.New(),
		Seed:   seed,
		ground: noisegeneration.NewGroundNoise(seed),
		reg:    reg,
	}
	s.log = log.With("session", s.ID.String())

	metrics, err := telemetry.New(s.live.Load)
	if err != nil {
		return nil, fmt.Errorf("session metrics: %w", err)
	}
	s.metrics = metrics

	s.world = gameloop.NewWorld(gameloop.Settings{
		PlayerSpeed:  cfg.Player.Speed,
		PlayerHealth: cfg.Player.Health,
		PlayerEnergy: cfg.Player.Energy,
		CameraFollow: cfg.CameraFollow,
		ViewWidth:    cfg.View.Width,
		ViewHeight:   cfg.View.Height,
	}, rng.New(seed), s.ground, s.log)

	deps := gameloop.Dependencies{
		World:   s.world,
		Log:     s.log,
		Metrics: s.metrics,
		Emit: func(event string, args ...interface{}) {
			s.reg.Emit(plugin.HookType(event), args...)
		},
	}
	systems := append(gameloop.Pipeline(), newPluginSystems(reg, s.log))
	s.loop = gameloop.NewLoop(cfg.TickInterval, deps, systems...)

	s.log.Infow("session created", "seed", seed)
	return s, nil
}

// Step продвигает симуляцию на dt с вводом in.
func (s *Session) Step(ctx context.Context, dt time.Duration, in gameloop.Input) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.world.Now += float32(dt.Seconds())
	s.world.Input = in
	s.loop.Step(ctx, dt)
	s.world.Input = gameloop.Input{}
	s.live.Store(int64(s.world.Enemies.Len()))
}

// Run шагает симуляцию по таймеру без ввода до отмены ctx.
func (s *Session) Run(ctx context.Context) {
	s.log.Infow("session loop started")
	s.loop.Run(ctx, func(ctx context.Context, dt time.Duration) {
		s.Step(ctx, dt, gameloop.Input{})
	})
}

// Reset возвращает сессию к началу первого дня.
func (s *Session) Reset() {
	s.mu.Lock()
	s.world.Reset()
	s.live.Store(0)
	s.mu.Unlock()

	s.log.Infow("session reset")
	s.reg.Emit(plugin.HookSessionReset)
}

// Close снимает регистрацию метрик сессии. Повторный вызов ничего не делает.
func (s *Session) Close() error {
	return s.metrics.Close()
}

// Registry возвращает реестр хуков и команд сессии.
func (s *Session) Registry() plugin.PluginRegistry { return s.reg }
