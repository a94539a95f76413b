package gameloop

import (
	"context"
	"fmt"
	"time"

	"github.com/annelo/nightfall/internal/entity"
)

// StreamingSystem держит окно тайлов вокруг камеры.
type StreamingSystem struct{ base }

// NewStreamingSystem создаёт систему подгрузки тайлов.
func NewStreamingSystem() *StreamingSystem { return &StreamingSystem{} }

// Name возвращает "streaming".
func (s *StreamingSystem) Name() string { return "streaming" }

// Tick выполняет один шаг системы.
func (s *StreamingSystem) Tick(ctx context.Context, dt time.Duration) {
	w := s.deps.World
	w.Tiles.Update(w.Camera.Position, w.Clock.AmbientTint())
}

// LootSystem обрабатывает открытие сундуков, подтверждение предложений и установку турели.
type LootSystem struct{ base }

// NewLootSystem создаёт систему сундуков и турелей.
func NewLootSystem() *LootSystem { return &LootSystem{} }

// Name возвращает "loot".
func (s *LootSystem) Name() string { return "loot" }

// Tick выполняет один шаг системы.
func (s *LootSystem) Tick(ctx context.Context, dt time.Duration) {
	w := s.deps.World
	if w.Input.Interact {
		s.interact(ctx)
	}
	if w.Input.ConfirmOffer {
		if o, ok := w.Offers.Confirm(w.Player, w.Now); ok {
			w.Notify(fmt.Sprintf("Took %s %s", o.Spec.Name, o.Kind))
			s.deps.emit(EventOfferConfirmed, o)
		}
	}
	if w.Input.PlaceTurret {
		if spec, ok := w.Player.TakeTurret(); ok {
			t := entity.NewTurret(w.Player.Position, spec)
			w.Enemies.PlaceTurret(t)
			w.Notify(fmt.Sprintf("Placed %s turret", spec.Name))
			s.deps.logger().Debugw("turret placed", "weapon", spec.Name, "pos", t.Position)
			s.deps.emit(EventTurretPlaced, t)
		}
	}
}

func (s *LootSystem) interact(ctx context.Context) {
	w := s.deps.World
	c, ok := w.Chests.Nearest(w.Player.Position)
	if !ok {
		return
	}
	items := c.Take()
	out := w.Offers.Apply(items, w.Player, w.Now, w.Rand)

	switch {
	case out.WeaponOffered != nil:
		w.Notify(fmt.Sprintf("Found weapon %s, confirm to equip", out.WeaponOffered.Name))
	case out.TurretOffered != nil:
		w.Notify(fmt.Sprintf("Found turret %s, confirm to swap", out.TurretOffered.Name))
	case out.TurretGranted != nil:
		w.Notify(fmt.Sprintf("Picked up turret %s", out.TurretGranted.Name))
	default:
		w.Notify(fmt.Sprintf("+%d energy", out.Energy))
	}
	s.deps.logger().Debugw("chest opened", "items", len(items), "energy", out.Energy)
	s.deps.Metrics.ChestOpened(ctx)
	s.deps.emit(EventChestOpened, items, out)
}

// Pipeline возвращает системы в порядке выполнения тика.
func Pipeline() []System {
	return []System{
		NewDayNightSystem(),
		NewSpawnSystem(),
		NewMovementSystem(),
		NewTargetingSystem(),
		NewFiringSystem(),
		NewProjectileSystem(),
		NewDeathSystem(),
		NewStreamingSystem(),
		NewLootSystem(),
	}
}
