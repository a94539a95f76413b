// Package entity описывает боевые сущности: игрока, врагов и турели.
package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/annelo/nightfall/internal/weapon"
)

// Пределы энергии
const (
	// EnergyCap - потолок энергии при расходе на выстрелы
	EnergyCap int32 = 500
	// LootEnergyCap - потолок энергии при подборе из сундука
	LootEnergyCap int32 = 512
)

// Body - общая часть всех боевых сущностей.
type Body struct {
	// Z используется только для порядка отрисовки
	Position mgl32.Vec3
	Rotation float32
	Health   float32
}

// Alive сообщает, осталось ли здоровье.
func (b *Body) Alive() bool { return b.Health > 0 }

// Enemy - враг, созданный ночной волной.
type Enemy struct {
	Body
	Speed float32
	Scale float32
}

// Turret - турель, поставленная игроком.
type Turret struct {
	Body
	Weapon weapon.Weapon
	// Target - слабая ссылка на врага, нулевое значение означает отсутствие цели
	Target Handle
}

// NewTurret создаёт турель с оружием из каталога.
func NewTurret(pos mgl32.Vec3, spec weapon.Spec) *Turret {
	return &Turret{
		Body:   Body{Position: pos},
		Weapon: weapon.New(spec),
	}
}

// Inventory хранит то, что игрок несёт с собой.
type Inventory struct {
	TurretInHand *weapon.Spec
}

// Player - персонаж игрока. Создаётся один раз за сессию.
type Player struct {
	Body
	Energy    int32
	Weapon    weapon.Weapon
	Inventory Inventory
}

// NewPlayer создаёт игрока со стартовыми ресурсами.
func NewPlayer(health float32, energy int32, spec weapon.Spec) *Player {
	p := &Player{
		Body:   Body{Health: health},
		Weapon: weapon.New(spec),
	}
	p.SetEnergy(energy, EnergyCap)
	return p
}

// SetEnergy устанавливает энергию, ограничивая её диапазоном [0, ceiling].
func (p *Player) SetEnergy(v, ceiling int32) {
	switch {
	case v < 0:
		v = 0
	case v > ceiling:
		v = ceiling
	}
	p.Energy = v
}

// Damage отнимает здоровье, не опуская его ниже нуля.
func (p *Player) Damage(amount float32) {
	p.Health -= amount
	if p.Health < 0 {
		p.Health = 0
	}
}

// Move сдвигает игрока по вектору движения. nil означает стояние на месте.
func (p *Player) Move(move *mgl32.Vec2, speed, dt float32) {
	if move == nil {
		return
	}
	p.Position = p.Position.Add(move.Vec3(0).Mul(speed * dt))
}

// TakeTurret забирает турель из рук.
func (p *Player) TakeTurret() (weapon.Spec, bool) {
	if p.Inventory.TurretInHand == nil {
		return weapon.Spec{}, false
	}
	spec := *p.Inventory.TurretInHand
	p.Inventory.TurretInHand = nil
	return spec, true
}

// HoldTurret кладёт турель в руки.
func (p *Player) HoldTurret(spec weapon.Spec) {
	p.Inventory.TurretInHand = &spec
}
