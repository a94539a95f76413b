package gameloop

import (
	"context"
	"time"

	"github.com/annelo/nightfall/internal/combat"
	"github.com/annelo/nightfall/internal/projectile"
)

// MovementSystem двигает игрока, камеру и врагов, затем применяет контактный урон.
type MovementSystem struct{ base }

// NewMovementSystem создаёт систему движения.
func NewMovementSystem() *MovementSystem { return &MovementSystem{} }

// Name возвращает "movement".
func (s *MovementSystem) Name() string { return "movement" }

// Tick выполняет один шаг системы.
func (s *MovementSystem) Tick(ctx context.Context, dt time.Duration) {
	w := s.deps.World
	sec := seconds(dt)

	w.Player.Move(w.Input.Move, w.Settings.PlayerSpeed, sec)
	w.Player.Rotation = w.Input.AimAngle
	w.Camera.Follow(w.Player.Position, w.Settings.CameraFollow)

	if fled := combat.MoveEnemies(w.Enemies, w.Player.Position, w.Clock.IsNight(), w.Camera, sec); fled > 0 {
		s.deps.Metrics.EnemiesRemoved(ctx, fled, "fled")
	}
	combat.ContactDamage(w.Enemies, w.Player, sec)
	// смерть только сигнализируется, симуляция продолжается
	if !w.PlayerDead && !w.Player.Alive() {
		w.PlayerDead = true
		w.Notify("You died")
		s.deps.logger().Infow("player died", "day", w.Clock.Day())
		s.deps.emit(EventPlayerDied, w.Clock.Day())
	}
}

// TargetingSystem проверяет цели турелей и разворачивает их.
type TargetingSystem struct{ base }

// NewTargetingSystem создаёт систему наведения турелей.
func NewTargetingSystem() *TargetingSystem { return &TargetingSystem{} }

// Name возвращает "targeting".
func (s *TargetingSystem) Name() string { return "targeting" }

// Tick выполняет один шаг системы.
func (s *TargetingSystem) Tick(ctx context.Context, dt time.Duration) {
	w := s.deps.World
	for _, t := range w.Enemies.Turrets() {
		if e, ok := combat.UpdateTarget(w.Enemies, t); ok {
			combat.AimTurret(t, e.Position)
		}
	}
}

// FiringSystem охлаждает оружие и производит выстрелы игрока и турелей с целью.
type FiringSystem struct{ base }

// NewFiringSystem создаёт систему стрельбы.
func NewFiringSystem() *FiringSystem { return &FiringSystem{} }

// Name возвращает "firing".
func (s *FiringSystem) Name() string { return "firing" }

// Tick выполняет один шаг системы.
func (s *FiringSystem) Tick(ctx context.Context, dt time.Duration) {
	w := s.deps.World
	sec := seconds(dt)

	w.Player.Weapon.Advance(sec)
	if w.Input.Fire {
		if n := combat.FirePlayer(w.Player, w.Projectiles); n > 0 {
			s.deps.Metrics.ShotsFired(ctx, n, "player")
		}
	}

	for _, t := range w.Enemies.Turrets() {
		t.Weapon.Advance(sec)
		if !t.Target.Valid() {
			continue
		}
		if n := combat.FireTurret(t, w.Projectiles); n > 0 {
			s.deps.Metrics.ShotsFired(ctx, n, "turret")
		}
	}
}

// ProjectileSystem двигает снаряды и разрешает попадания.
type ProjectileSystem struct{ base }

// NewProjectileSystem создаёт систему снарядов.
func NewProjectileSystem() *ProjectileSystem { return &ProjectileSystem{} }

// Name возвращает "projectiles".
func (s *ProjectileSystem) Name() string { return "projectiles" }

// Tick выполняет один шаг системы.
func (s *ProjectileSystem) Tick(ctx context.Context, dt time.Duration) {
	w := s.deps.World
	w.Projectiles.Advance(seconds(dt))
	hits, expired := w.Projectiles.Resolve(w.Enemies)
	if hits > 0 || expired > 0 {
		s.deps.logger().Debugw("projectiles resolved", "hits", hits, "expired", expired, "flying", w.Projectiles.Len())
	}
}

// DeathSystem убирает врагов без здоровья.
type DeathSystem struct{ base }

// NewDeathSystem создаёт систему удаления убитых врагов.
func NewDeathSystem() *DeathSystem { return &DeathSystem{} }

// Name возвращает "death".
func (s *DeathSystem) Name() string { return "death" }

// Tick выполняет один шаг системы.
func (s *DeathSystem) Tick(ctx context.Context, dt time.Duration) {
	w := s.deps.World
	n := projectile.Despawn(w.Enemies)
	if n == 0 {
		return
	}
	s.deps.Metrics.EnemiesRemoved(ctx, n, "killed")
	s.deps.emit(EventEnemiesKilled, n)
}
