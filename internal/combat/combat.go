// Package combat реализует поведение врагов, наведение турелей и стрельбу.
package combat

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/annelo/nightfall/internal/entity"
	"github.com/annelo/nightfall/internal/projectile"
	"github.com/annelo/nightfall/internal/viewport"
	"github.com/annelo/nightfall/internal/weapon"
)

// Параметры боя
const (
	// ContactRadiusSq - квадрат дистанции, на которой враг ранит игрока (50 единиц)
	ContactRadiusSq float32 = 2500
	// ContactDPS - урон в секунду от одного врага вплотную
	ContactDPS float32 = 2
	// AcquireRadiusSq - квадрат радиуса захвата цели турелью (1000 единиц)
	AcquireRadiusSq float32 = 1_000_000
	// TurretGate - турель стреляет вдвое реже игрока
	TurretGate float32 = 2
)

// MoveEnemies ведёт врагов к игроку ночью и от игрока днём.
// Днём враг, покинувший обзор камеры, удаляется. Возвращает число удалённых.
func MoveEnemies(reg *entity.Registry, target mgl32.Vec3, night bool, cam *viewport.Camera, dt float32) int {
	fled := 0
	reg.Each(func(h entity.Handle, e *entity.Enemy) bool {
		dir := target.Sub(e.Position)
		if !night {
			dir = dir.Mul(-1)
		}
		dir = weapon.Flatten(dir)
		if dir.Len() > 0 {
			e.Position = e.Position.Add(dir.Mul(e.Speed * dt))
			e.Rotation = weapon.AngleOf(dir)
		}
		if !night && cam != nil && !cam.Contains(e.Position) {
			reg.Despawn(h)
			fled++
		}
		return true
	})
	return fled
}

// ContactDamage снимает с игрока здоровье за каждого врага вплотную и возвращает урон.
func ContactDamage(reg *entity.Registry, p *entity.Player, dt float32) float32 {
	n := 0
	reg.Each(func(_ entity.Handle, e *entity.Enemy) bool {
		if planarDistSq(p.Position, e.Position) <= ContactRadiusSq {
			n++
		}
		return true
	})
	dmg := ContactDPS * dt * float32(n)
	if dmg > 0 {
		p.Damage(dmg)
	}
	return dmg
}

// UpdateTarget проверяет или ищет цель турели.
// Устаревшая цель сбрасывается, новая ищется на следующем тике.
// Без цели выбирается ближайший живой враг внутри радиуса захвата.
func UpdateTarget(reg *entity.Registry, t *entity.Turret) (*entity.Enemy, bool) {
	if t.Target.Valid() {
		if e, ok := reg.Enemy(t.Target); ok && e.Alive() {
			return e, true
		}
		t.Target = entity.Handle{}
		return nil, false
	}

	best := float32(math.Inf(1))
	var found *entity.Enemy
	reg.Each(func(h entity.Handle, e *entity.Enemy) bool {
		if !e.Alive() {
			return true
		}
		d := planarDistSq(t.Position, e.Position)
		if d < AcquireRadiusSq && d < best {
			best = d
			found = e
			t.Target = h
		}
		return true
	})
	return found, found != nil
}

// AimTurret разворачивает турель к цели, спроецированной на её плоскость.
func AimTurret(t *entity.Turret, target mgl32.Vec3) {
	target[2] = t.Position.Z()
	dir := weapon.Flatten(target.Sub(t.Position))
	if dir.Len() > 0 {
		t.Rotation = weapon.AngleOf(dir)
	}
}

// FirePlayer стреляет, если оружие остыло и хватает энергии. Возвращает число снарядов.
// При отказе ни время выстрела, ни энергия не меняются.
func FirePlayer(p *entity.Player, pm *projectile.Manager) int {
	w := &p.Weapon
	cost := w.Pattern.Cost()
	if !w.Ready(w.Cooldown) || p.Energy < cost {
		return 0
	}
	w.Trigger()
	n := pm.Spawn(p.Position, weapon.FanOut(w.Pattern, weapon.AimDirection(p.Rotation)), projectile.FromPlayer)
	p.SetEnergy(p.Energy-cost, entity.EnergyCap)
	return n
}

// FireTurret стреляет по направлению турели. Энергия не расходуется.
func FireTurret(t *entity.Turret, pm *projectile.Manager) int {
	w := &t.Weapon
	if !w.Ready(w.Cooldown * TurretGate) {
		return 0
	}
	w.Trigger()
	return pm.Spawn(t.Position, weapon.FanOut(w.Pattern, weapon.AimDirection(t.Rotation)), projectile.FromTurret)
}

func planarDistSq(a, b mgl32.Vec3) float32 {
	dx, dy := a.X()-b.X(), a.Y()-b.Y()
	return dx*dx + dy*dy
}
