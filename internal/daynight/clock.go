// Package daynight реализует игровые сутки: смену дня и ночи, счётчик дней и освещённость.
package daynight

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Параметры суточного цикла
const (
	// DayLength - длительность полных суток в игровых секундах
	DayLength float32 = 60

	startDayFraction   float32 = 0.7
	startNightFraction float32 = 0.3
	fractionStep       float32 = 0.05
	minFraction        float32 = 0.1
	maxFraction        float32 = 0.9

	// Доля суток, в течение которой меняется освещённость
	rampWindow float32 = 0.1
)

var (
	// NightTint - цвет окружения ночью
	NightTint = colorful.Color{R: 0.4, G: 0.4, B: 0.7}
	// DayTint - цвет окружения днём
	DayTint = colorful.Color{R: 1, G: 1, B: 1}
)

// PhaseChanged сообщает о смене фазы суток.
type PhaseChanged struct {
	Night bool
	Day   int32
}

// Clock хранит состояние суток. Меняется только через Advance и Reset.
type Clock struct {
	elapsed       float32
	dayFraction   float32
	nightFraction float32
	night         bool
	day           int32
}

// NewClock создаёт часы в начале первого дня.
func NewClock() *Clock {
	c := &Clock{}
	c.Reset()
	return c
}

// Reset возвращает часы в начальное состояние.
func (c *Clock) Reset() {
	c.elapsed = 0
	c.dayFraction = startDayFraction
	c.nightFraction = startNightFraction
	c.night = false
	c.day = 1
}

// Advance продвигает время на dt секунд. Второе значение истинно, если фаза сменилась.
// Переход из ночи в день возможен только через конец суток.
func (c *Clock) Advance(dt float32) (PhaseChanged, bool) {
	c.elapsed += dt

	if c.elapsed >= DayLength {
		c.elapsed = 0
		c.day++
		c.dayFraction = clamp(c.dayFraction-fractionStep, minFraction, maxFraction)
		c.nightFraction = clamp(c.nightFraction+fractionStep, minFraction, maxFraction)
		c.night = false
		return PhaseChanged{Night: false, Day: c.day}, true
	}

	if !c.night && c.elapsed >= c.dayFraction*DayLength {
		c.night = true
		return PhaseChanged{Night: true, Day: c.day}, true
	}

	return PhaseChanged{}, false
}

// AmbientIntensity возвращает коэффициент яркости и признак того, что идёт рассвет или закат.
// Вне этих окон яркость не меняется и возвращается 0, false.
func (c *Clock) AmbientIntensity() (float32, bool) {
	p := c.elapsed / DayLength
	switch {
	case p > c.dayFraction-rampWindow && p <= c.dayFraction:
		return (c.dayFraction - p) * 10, true
	case p > 0 && p <= rampWindow:
		return p * 10, true
	}
	return 0, false
}

// AmbientTint возвращает текущий цвет окружения.
func (c *Clock) AmbientTint() colorful.Color {
	if k, ok := c.AmbientIntensity(); ok {
		return NightTint.BlendRgb(DayTint, float64(clamp(k, 0, 1)))
	}
	if c.night {
		return NightTint
	}
	return DayTint
}

// TimeLeftInPhase возвращает время до смены фазы.
func (c *Clock) TimeLeftInPhase() float32 {
	if c.night {
		return DayLength - c.elapsed
	}
	return DayLength*c.dayFraction - c.elapsed
}

// Elapsed возвращает секунды, прошедшие с начала текущих суток.
func (c *Clock) Elapsed() float32 { return c.elapsed }

// DayFraction возвращает долю суток, занятую днём.
func (c *Clock) DayFraction() float32 { return c.dayFraction }

// NightFraction возвращает долю суток, занятую ночью.
func (c *Clock) NightFraction() float32 { return c.nightFraction }

// IsNight сообщает, идёт ли сейчас ночь.
func (c *Clock) IsNight() bool { return c.night }

// Day возвращает номер текущих суток, начиная с 1.
func (c *Clock) Day() int32 { return c.day }

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
