package gameloop

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/annelo/nightfall/internal/telemetry"
)

// System описывает логику, выполняемую каждый тик цикла.
type System interface {
	// Init вызывается один раз перед запуском цикла.
	Init(deps Dependencies) error
	// Tick вызывается каждый игровой тик.
	Tick(ctx context.Context, dt time.Duration)
	// Name возвращает читаемое имя системы.
	Name() string
}

// Имена событий симуляции, публикуемых через Dependencies.Emit
const (
	EventPhaseChanged   = "PhaseChanged"
	EventWaveSpawned    = "WaveSpawned"
	EventEnemiesKilled  = "EnemiesKilled"
	EventChestOpened    = "ChestOpened"
	EventOfferConfirmed = "OfferConfirmed"
	EventTurretPlaced   = "TurretPlaced"
	EventPlayerDied     = "PlayerDied"
)

// Dependencies передаются системам при инициализации.
type Dependencies struct {
	World   *World
	Log     *zap.SugaredLogger
	Metrics *telemetry.Counters
	// Emit используется системами для публикации событий симуляции.
	Emit func(event string, args ...interface{})
}

// emit вызывает Emit, если он задан
func (d Dependencies) emit(event string, args ...interface{}) {
	if d.Emit != nil {
		d.Emit(event, args...)
	}
}

// logger возвращает логгер или заглушку
func (d Dependencies) logger() *zap.SugaredLogger {
	if d.Log == nil {
		return zap.NewNop().Sugar()
	}
	return d.Log
}

// seconds переводит длительность тика в игровые секунды
func seconds(dt time.Duration) float32 {
	return float32(dt.Seconds())
}
