// Package loot генерирует содержимое сундуков и применяет найденное к игроку.
package loot

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/annelo/nightfall/internal/rng"
)

// Kind - тип предмета в сундуке
type Kind int

const (
	KindEnergy Kind = iota
	KindWeapon
	KindTurret
)

// String возвращает имя типа предмета.
func (k Kind) String() string {
	switch k {
	case KindEnergy:
		return "energy"
	case KindWeapon:
		return "weapon"
	case KindTurret:
		return "turret"
	default:
		return "unknown"
	}
}

// Item - предмет в сундуке
type Item struct {
	Kind  Kind
	Count uint32
}

// Параметры генерации
const (
	maxEnergy    = 100
	turretChance = 0.8 // r >= turretChance даёт турель
	weaponChance = 0.3 // r <= weaponChance даёт оружие

	minChests    = 2
	chestsSpread = 6 // от 2 до 7 сундуков на клетку

	// слой отрисовки сундуков
	chestLayer float32 = 0.02
)

// Generate создаёт содержимое сундука: энергия всегда, плюс не более одного бонуса.
// Бонус определяется одним броском r.
func Generate(src rng.Source) []Item {
	items := []Item{{Kind: KindEnergy, Count: uint32(src.Intn(maxEnergy))}}

	r := src.Float32()
	switch {
	case r >= turretChance:
		items = append(items, Item{Kind: KindTurret, Count: 1})
	case r <= weaponChance:
		items = append(items, Item{Kind: KindWeapon, Count: 1})
	}
	return items
}

// Chest - сундук, лежащий в мире
type Chest struct {
	Items    []Item
	Opened   bool
	Position mgl32.Vec3
	Rotation float32
	Tint     colorful.Color
}

// Take открывает сундук и забирает всё содержимое.
// Повторный вызов ничего не возвращает.
func (c *Chest) Take() []Item {
	if c.Opened {
		return nil
	}
	items := c.Items
	c.Items = nil
	c.Opened = true
	return items
}

// InteractRadiusSq - квадрат дистанции взаимодействия с сундуком (30 единиц)
const InteractRadiusSq float32 = 900

// Store владеет всеми сундуками сессии. Сундуки хранятся по клеткам;
// поиск, перекраска и выдача затрагивают только видимые клетки.
type Store struct {
	src     rng.Source
	cells   map[mgl32.Vec2][]*Chest
	visible map[mgl32.Vec2]struct{}
	total   int
}

// NewStore создаёт пустое хранилище сундуков
func NewStore(src rng.Source) *Store {
	return &Store{
		src:     src,
		cells:   make(map[mgl32.Vec2][]*Chest),
		visible: make(map[mgl32.Vec2]struct{}),
	}
}

// PopulateCell раскладывает от 2 до 7 сундуков в случайных точках клетки.
// Клетка сразу становится видимой.
func (s *Store) PopulateCell(origin mgl32.Vec3, size float32, tint colorful.Color) int {
	key := origin.Vec2()
	n := minChests + s.src.Intn(chestsSpread)
	for i := 0; i < n; i++ {
		pos := mgl32.Vec3{
			origin.X() + s.src.Float32()*size,
			origin.Y() + s.src.Float32()*size,
			chestLayer,
		}
		s.cells[key] = append(s.cells[key], &Chest{
			Items:    Generate(s.src),
			Position: pos,
			Rotation: s.src.Float32() * 2 * math.Pi,
			Tint:     tint,
		})
	}
	s.total += n
	s.visible[key] = struct{}{}
	return n
}

// ShowCell возвращает сундуки клетки в обзор и перекрашивает их
func (s *Store) ShowCell(origin mgl32.Vec3, tint colorful.Color) {
	key := origin.Vec2()
	s.visible[key] = struct{}{}
	for _, c := range s.cells[key] {
		c.Tint = tint
	}
}

// HideCell убирает сундуки клетки из обзора. Сами сундуки сохраняются.
func (s *Store) HideCell(origin mgl32.Vec3) {
	delete(s.visible, origin.Vec2())
}

// visibleCells возвращает видимые клетки в постоянном порядке
func (s *Store) visibleCells() []mgl32.Vec2 {
	keys := make([]mgl32.Vec2, 0, len(s.visible))
	for k := range s.visible {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Y() != keys[j].Y() {
			return keys[i].Y() < keys[j].Y()
		}
		return keys[i].X() < keys[j].X()
	})
	return keys
}

// Nearest возвращает ближайший закрытый видимый сундук в радиусе взаимодействия
func (s *Store) Nearest(pos mgl32.Vec3) (*Chest, bool) {
	var best *Chest
	bestDist := InteractRadiusSq
	for _, k := range s.visibleCells() {
		for _, c := range s.cells[k] {
			if c.Opened {
				continue
			}
			dx, dy := c.Position.X()-pos.X(), c.Position.Y()-pos.Y()
			if d := dx*dx + dy*dy; d <= bestDist {
				best, bestDist = c, d
			}
		}
	}
	return best, best != nil
}

// Retint перекрашивает видимые сундуки под текущее освещение
func (s *Store) Retint(tint colorful.Color) {
	for k := range s.visible {
		for _, c := range s.cells[k] {
			c.Tint = tint
		}
	}
}

// Chests возвращает копии видимых сундуков для отрисовки
func (s *Store) Chests() []Chest {
	var out []Chest
	for _, k := range s.visibleCells() {
		for _, c := range s.cells[k] {
			out = append(out, *c)
		}
	}
	return out
}

// Len возвращает число всех сундуков сессии, включая скрытые
func (s *Store) Len() int { return s.total }

// Reset удаляет все сундуки
func (s *Store) Reset() {
	s.cells = make(map[mgl32.Vec2][]*Chest)
	s.visible = make(map[mgl32.Vec2]struct{})
	s.total = 0
}
