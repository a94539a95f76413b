// Package weapon содержит каталог оружия и геометрию залпов.
package weapon

import (
	"github.com/annelo/nightfall/internal/rng"
)

// Pattern - схема разлёта снарядов при выстреле.
type Pattern int

const (
	Single Pattern = iota
	TwoShot
	SixRay
	SixAround
	ManyAround
)

// String возвращает читаемое имя схемы.
func (p Pattern) String() string {
	switch p {
	case Single:
		return "single"
	case TwoShot:
		return "two-shot"
	case SixRay:
		return "six-ray"
	case SixAround:
		return "six-around"
	case ManyAround:
		return "many-around"
	default:
		return "unknown"
	}
}

// Cost возвращает стоимость залпа в энергии, она равна числу снарядов.
func (p Pattern) Cost() int32 {
	switch p {
	case Single:
		return 1
	case TwoShot:
		return 2
	case SixRay, SixAround:
		return 6
	case ManyAround:
		return 12
	default:
		return 0
	}
}

// Spec - неизменяемое описание оружия из каталога.
type Spec struct {
	Name     string
	Pattern  Pattern
	Cooldown float32
}

// Каталог создаётся один раз и не меняется
var catalog = [...]Spec{
	{Name: "Pistol", Pattern: Single, Cooldown: 0.1},
	{Name: "Twin", Pattern: TwoShot, Cooldown: 0.2},
	{Name: "Rake", Pattern: SixRay, Cooldown: 0.3},
	{Name: "Nova", Pattern: SixAround, Cooldown: 0.4},
	{Name: "Storm", Pattern: ManyAround, Cooldown: 0.6},
}

// Catalog возвращает копию каталога в фиксированном порядке.
func Catalog() []Spec {
	out := make([]Spec, len(catalog))
	copy(out, catalog[:])
	return out
}

// Default возвращает стартовое оружие игрока.
func Default() Spec { return catalog[0] }

// Pick выбирает равновероятно случайную запись каталога.
func Pick(src rng.Source) Spec {
	return catalog[src.Intn(len(catalog))]
}

// ByName ищет оружие по имени.
func ByName(name string) (Spec, bool) {
	for _, s := range catalog {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}

// Weapon - экземпляр оружия, принадлежащий одному игроку или турели.
type Weapon struct {
	Spec
	// SinceShot - время с последнего выстрела
	SinceShot float32
}

// New создаёт экземпляр оружия по описанию.
func New(spec Spec) Weapon {
	return Weapon{Spec: spec}
}

// Advance накапливает время с последнего выстрела.
func (w *Weapon) Advance(dt float32) {
	w.SinceShot += dt
}

// Ready сообщает, прошло ли больше gate секунд с последнего выстрела.
func (w *Weapon) Ready(gate float32) bool {
	return w.SinceShot > gate
}

// Trigger отмечает выстрел.
func (w *Weapon) Trigger() {
	w.SinceShot = 0
}
