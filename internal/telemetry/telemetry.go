// Package telemetry exposes simulation counters through the global OpenTelemetry meter.
// Without a configured provider every instrument is a no-op.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/annelo/nightfall/internal/telemetry"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Counters groups the instruments a session reports to.
// A nil *Counters is valid and records nothing.
type Counters struct {
	enemiesSpawned metric.Int64Counter
	enemiesRemoved metric.Int64Counter
	shotsFired     metric.Int64Counter
	chestsOpened   metric.Int64Counter
	phaseChanges   metric.Int64Counter
	liveEnemies    metric.Int64ObservableGauge
	liveReg        metric.Registration
}

// New creates the instruments. liveEnemies is sampled on every collection; nil skips the gauge.
// Call Close when the owner goes away so the callback stops being sampled.
func New(liveEnemies func() int64) (*Counters, error) {
	return newCounters(meter(), liveEnemies)
}

func newCounters(m metric.Meter, liveEnemies func() int64) (*Counters, error) {
	c := &Counters{}

	var err error
	if c.enemiesSpawned, err = m.Int64Counter(
		"sim.enemies.spawned",
		metric.WithDescription("Enemies created by night waves"),
	); err != nil {
		return nil, fmt.Errorf("creating enemies spawned counter: %w", err)
	}
	if c.enemiesRemoved, err = m.Int64Counter(
		"sim.enemies.removed",
		metric.WithDescription("Enemies removed, by cause"),
	); err != nil {
		return nil, fmt.Errorf("creating enemies removed counter: %w", err)
	}
	if c.shotsFired, err = m.Int64Counter(
		"sim.projectiles.fired",
		metric.WithDescription("Projectiles spawned, by shooter"),
	); err != nil {
		return nil, fmt.Errorf("creating shots counter: %w", err)
	}
	if c.chestsOpened, err = m.Int64Counter(
		"sim.chests.opened",
		metric.WithDescription("Chests opened by the player"),
	); err != nil {
		return nil, fmt.Errorf("creating chests counter: %w", err)
	}
	if c.phaseChanges, err = m.Int64Counter(
		"sim.clock.phase_changes",
		metric.WithDescription("Day and night transitions"),
	); err != nil {
		return nil, fmt.Errorf("creating phase counter: %w", err)
	}

	if liveEnemies != nil {
		if c.liveEnemies, err = m.Int64ObservableGauge(
			"sim.enemies.live",
			metric.WithDescription("Enemies currently alive"),
		); err != nil {
			return nil, fmt.Errorf("creating live enemies gauge: %w", err)
		}
		if c.liveReg, err = m.RegisterCallback(
			func(ctx context.Context, o metric.Observer) error {
				o.ObserveInt64(c.liveEnemies, liveEnemies())
				return nil
			},
			c.liveEnemies,
		); err != nil {
			return nil, fmt.Errorf("registering live enemies callback: %w", err)
		}
	}

	return c, nil
}

// Close unregisters the live enemies callback. Calling it again is a no-op.
func (c *Counters) Close() error {
	if c == nil || c.liveReg == nil {
		return nil
	}
	reg := c.liveReg
	c.liveReg = nil
	if err := reg.Unregister(); err != nil {
		return fmt.Errorf("unregistering live enemies callback: %w", err)
	}
	return nil
}

// EnemiesSpawned records enemies created by a wave.
func (c *Counters) EnemiesSpawned(ctx context.Context, n int) {
	if c == nil || n == 0 {
		return
	}
	c.enemiesSpawned.Add(ctx, int64(n))
}

// EnemiesRemoved records removals; cause is "killed" or "fled".
func (c *Counters) EnemiesRemoved(ctx context.Context, n int, cause string) {
	if c == nil || n == 0 {
		return
	}
	c.enemiesRemoved.Add(ctx, int64(n), metric.WithAttributes(attribute.String("cause", cause)))
}

// ShotsFired records projectiles spawned; shooter is "player" or "turret".
func (c *Counters) ShotsFired(ctx context.Context, n int, shooter string) {
	if c == nil || n == 0 {
		return
	}
	c.shotsFired.Add(ctx, int64(n), metric.WithAttributes(attribute.String("shooter", shooter)))
}

// ChestOpened records one opened chest.
func (c *Counters) ChestOpened(ctx context.Context) {
	if c == nil {
		return
	}
	c.chestsOpened.Add(ctx, 1)
}

// PhaseChanged records a day/night transition labelled with the new phase.
func (c *Counters) PhaseChanged(ctx context.Context, night bool) {
	if c == nil {
		return
	}
	phase := "day"
	if night {
		phase = "night"
	}
	c.phaseChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("phase", phase)))
}
