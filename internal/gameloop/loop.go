package gameloop

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Loop — главный цикл, вызывающий Tick всех зарегистрированных систем в порядке регистрации.
type Loop struct {
	systems []System
	tickDur time.Duration
	log     *zap.SugaredLogger
}

// NewLoop создаёт цикл с заданной длительностью тика и инициализирует системы.
func NewLoop(tick time.Duration, deps Dependencies, systems ...System) *Loop {
	log := deps.logger()
	for _, s := range systems {
		if err := s.Init(deps); err != nil {
			log.Errorw("system init failed", "system", s.Name(), "err", err)
		}
	}
	return &Loop{systems: systems, tickDur: tick, log: log}
}

// Systems возвращает системы в порядке выполнения.
func (l *Loop) Systems() []System { return l.systems }

// Step выполняет один тик всех систем. Паника в системе логируется и не прерывает тик остальных.
func (l *Loop) Step(ctx context.Context, dt time.Duration) {
	for _, s := range l.systems {
		func(sys System) {
			defer func() {
				if r := recover(); r != nil {
					l.log.Errorw("panic in system", "system", sys.Name(), "panic", r)
				}
			}()
			sys.Tick(ctx, dt)
		}(s)
	}
}

// Run запускает цикл до отмены ctx. step вызывается на каждом тике с прошедшим временем;
// nil означает прямой вызов Step.
func (l *Loop) Run(ctx context.Context, step func(ctx context.Context, dt time.Duration)) {
	if step == nil {
		step = l.Step
	}
	ticker := time.NewTicker(l.tickDur)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case t := <-ticker.C:
			dt := t.Sub(last)
			last = t
			step(ctx, dt)
		case <-ctx.Done():
			l.log.Infow("game loop stopped")
			return
		}
	}
}
