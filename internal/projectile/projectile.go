// Package projectile управляет снарядами: появлением, полётом, истечением и попаданиями.
package projectile

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/annelo/nightfall/internal/entity"
	"github.com/annelo/nightfall/internal/weapon"
)

// Параметры снарядов
const (
	Speed  float32 = 300
	Damage float32 = 1
	// Lifetime - возраст, после которого снаряд исчезает без эффекта
	Lifetime float32 = 5
	// HitRadiusSq - квадрат радиуса попадания (25 единиц)
	HitRadiusSq float32 = 625

	// снаряды рисуются чуть выше стрелка
	drawLift float32 = 0.3
)

// Source - кто выпустил снаряд.
type Source int

const (
	FromPlayer Source = iota
	FromTurret
)

// Projectile - один летящий снаряд.
type Projectile struct {
	Position  mgl32.Vec3
	Direction mgl32.Vec3
	Speed     float32
	Damage    float32
	Age       float32
	Source    Source
}

// Manager владеет всеми снарядами сессии.
type Manager struct {
	items []Projectile
}

// NewManager создаёт пустой менеджер снарядов.
func NewManager() *Manager {
	return &Manager{}
}

// Spawn выпускает залп из точки origin и возвращает число снарядов.
func (m *Manager) Spawn(origin mgl32.Vec3, shots []weapon.Shot, src Source) int {
	for _, s := range shots {
		pos := origin.Add(s.Offset)
		pos[2] = origin.Z() + drawLift
		m.items = append(m.items, Projectile{
			Position:  pos,
			Direction: s.Direction,
			Speed:     Speed,
			Damage:    Damage,
			Source:    src,
		})
	}
	return len(shots)
}

// Advance двигает снаряды и увеличивает их возраст.
func (m *Manager) Advance(dt float32) {
	for i := range m.items {
		p := &m.items[i]
		p.Position = p.Position.Add(p.Direction.Mul(p.Speed * dt))
		p.Age += dt
	}
}

// Resolve удаляет истёкшие снаряды и применяет попадания.
// Истёкший снаряд не наносит урона даже при совпадении с целью.
// Каждый снаряд поражает не более одного врага: первого подходящего в порядке реестра.
func (m *Manager) Resolve(reg *entity.Registry) (hits, expired int) {
	kept := m.items[:0]
	for _, p := range m.items {
		if p.Age >= Lifetime {
			expired++
			continue
		}
		if hit(reg, p) {
			hits++
			continue
		}
		kept = append(kept, p)
	}
	// обнуляем хвост, чтобы не держать старые значения
	for i := len(kept); i < len(m.items); i++ {
		m.items[i] = Projectile{}
	}
	m.items = kept
	return hits, expired
}

func hit(reg *entity.Registry, p Projectile) bool {
	landed := false
	reg.Each(func(_ entity.Handle, e *entity.Enemy) bool {
		if !e.Alive() || planarDistSq(p.Position, e.Position) > HitRadiusSq {
			return true
		}
		e.Health -= p.Damage
		landed = true
		return false
	})
	return landed
}

// planarDistSq считает квадрат расстояния в плоскости XY. Z отвечает только за отрисовку.
func planarDistSq(a, b mgl32.Vec3) float32 {
	dx, dy := a.X()-b.X(), a.Y()-b.Y()
	return dx*dx + dy*dy
}

// Len возвращает число летящих снарядов.
func (m *Manager) Len() int { return len(m.items) }

// All возвращает копию снарядов для отрисовки.
func (m *Manager) All() []Projectile {
	out := make([]Projectile, len(m.items))
	copy(out, m.items)
	return out
}

// Reset удаляет все снаряды.
func (m *Manager) Reset() { m.items = nil }

// Despawn удаляет врагов с нулевым здоровьем и возвращает их число.
// Вызывается после Resolve, чтобы не удалять врага посреди обработки попаданий.
func Despawn(reg *entity.Registry) int {
	n := 0
	reg.Each(func(h entity.Handle, e *entity.Enemy) bool {
		if !e.Alive() {
			reg.Despawn(h)
			n++
		}
		return true
	})
	return n
}
