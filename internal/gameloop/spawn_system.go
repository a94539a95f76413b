package gameloop

import (
	"context"
	"time"
)

// SpawnSystem запускает ночные волны вокруг игрока.
type SpawnSystem struct{ base }

// NewSpawnSystem создаёт систему ночных волн.
func NewSpawnSystem() *SpawnSystem { return &SpawnSystem{} }

// Name возвращает "spawn".
func (s *SpawnSystem) Name() string { return "spawn" }

// Tick выполняет один шаг системы.
func (s *SpawnSystem) Tick(ctx context.Context, dt time.Duration) {
	w := s.deps.World
	n := w.Spawner.Tick(seconds(dt), w.Clock, w.Player.Position, w.Enemies)
	if n == 0 {
		return
	}
	s.deps.logger().Debugw("wave spawned", "size", n, "day", w.Clock.Day(), "live", w.Enemies.Len())
	s.deps.Metrics.EnemiesSpawned(ctx, n)
	s.deps.emit(EventWaveSpawned, n, w.Clock.Day())
}
