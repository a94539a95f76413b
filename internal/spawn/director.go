// Package spawn решает, когда и где появляются ночные волны врагов.
package spawn

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annelo/nightfall/internal/daynight"
	"github.com/annelo/nightfall/internal/entity"
	"github.com/annelo/nightfall/internal/rng"
)

// Параметры волн
const (
	// WaveInterval - период таймера волн, тикает только ночью
	WaveInterval float32 = 1

	minDistance    float32 = 600
	distanceSpread float32 = 600
	baseSpeed      float32 = 120
	speedSpread    float32 = 20
	strengthJitter float32 = 0.3
	minStrength    float32 = 0.2
	maxStrength    float32 = 2
	baseHealth     float32 = 5
	healthPerPoint float32 = 10
	scalePerPoint  float32 = 0.25

	// слой отрисовки врагов
	enemyLayer float32 = 0.05
)

// Director создаёт врагов по ночному таймеру.
type Director struct {
	src   rng.Source
	timer float32
}

// NewDirector создаёт директора с источником случайности.
func NewDirector(src rng.Source) *Director {
	return &Director{src: src}
}

// Tick продвигает таймер и при его срабатывании выпускает волну вокруг center.
// Днём таймер стоит. Возвращает число созданных врагов.
func (d *Director) Tick(dt float32, clock *daynight.Clock, center mgl32.Vec3, reg *entity.Registry) int {
	if !clock.IsNight() {
		return 0
	}
	d.timer += dt
	if d.timer < WaveInterval {
		return 0
	}
	d.timer = float32(math.Mod(float64(d.timer), float64(WaveInterval)))
	return d.Wave(clock, center, reg)
}

// Wave выпускает одну волну немедленно.
func (d *Director) Wave(clock *daynight.Clock, center mgl32.Vec3, reg *entity.Registry) int {
	count := WaveSize(clock.NightFraction())
	for i := 0; i < count; i++ {
		reg.Spawn(d.enemy(clock.Day(), center))
	}
	return count
}

// WaveSize возвращает размер волны для доли ночи.
func WaveSize(nightFraction float32) int {
	return int(math.Round(float64(nightFraction * 10)))
}

// Strength возвращает базовую силу врагов для номера дня.
func Strength(day int32) float32 {
	return float32(day)/10 + 0.5
}

func (d *Director) enemy(day int32, center mgl32.Vec3) entity.Enemy {
	dist := minDistance + d.src.Float32()*distanceSpread
	angle := 2 * math.Pi * float64(d.src.Float32())
	pos := mgl32.Vec3{
		center.X() + float32(math.Cos(angle))*dist,
		center.Y() + float32(math.Sin(angle))*dist,
		enemyLayer,
	}

	s := Strength(day) + (d.src.Float32()-0.5)*strengthJitter
	s = mgl32.Clamp(s, minStrength, maxStrength)

	return entity.Enemy{
		Body:  entity.Body{Position: pos, Health: baseHealth + healthPerPoint*s},
		Speed: baseSpeed + d.src.Float32()*speedSpread,
		Scale: scalePerPoint * s,
	}
}

// Reset сбрасывает таймер волн.
func (d *Director) Reset() { d.timer = 0 }
