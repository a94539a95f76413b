package gameloop

import (
	"context"
	"fmt"
	"time"
)

// base хранит зависимости системы
type base struct {
	deps Dependencies
}

// Init запоминает зависимости; мир обязателен.
func (b *base) Init(deps Dependencies) error {
	if deps.World == nil {
		return fmt.Errorf("gameloop: world is required")
	}
	b.deps = deps
	return nil
}

// DayNightSystem двигает часы и перекрашивает тайлы и сундуки.
type DayNightSystem struct{ base }

// NewDayNightSystem создаёт систему смены дня и ночи.
func NewDayNightSystem() *DayNightSystem { return &DayNightSystem{} }

// Name возвращает "daynight".
func (s *DayNightSystem) Name() string { return "daynight" }

// Tick выполняет один шаг системы.
func (s *DayNightSystem) Tick(ctx context.Context, dt time.Duration) {
	w := s.deps.World
	evt, changed := w.Clock.Advance(seconds(dt))
	_, ramping := w.Clock.AmbientIntensity()

	if changed {
		if evt.Night {
			w.Notify("Night falls")
		} else {
			w.Notify(fmt.Sprintf("Day %d begins", evt.Day))
		}
		s.deps.logger().Infow("phase changed", "night", evt.Night, "day", evt.Day)
		s.deps.Metrics.PhaseChanged(ctx, evt.Night)
		s.deps.emit(EventPhaseChanged, evt)
	}
	if changed || ramping {
		tint := w.Clock.AmbientTint()
		w.Tiles.Retint(tint)
		w.Chests.Retint(tint)
	}
}
