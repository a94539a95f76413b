// Package tilemanager держит сетку тайлов вокруг камеры и один раз наполняет клетки сундуками.
package tilemanager

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"

	"github.com/annelo/nightfall/internal/noisegeneration"
	"github.com/annelo/nightfall/internal/worldinterfaces"
)

// Константы сетки
const (
	// CellSize - сторона тайла в мировых единицах
	CellSize float32 = 512
	// WindowRadius - окно стриминга от -2 до +2 клеток по каждой оси
	WindowRadius int32 = 2
)

// Coord - целочисленная координата клетки
type Coord struct {
	X, Y int32
}

// CoordOf возвращает клетку, в которую попадает точка мира
func CoordOf(p mgl32.Vec3) Coord {
	return Coord{
		X: int32(math.Floor(float64(p.X() / CellSize))),
		Y: int32(math.Floor(float64(p.Y() / CellSize))),
	}
}

// Origin возвращает угол клетки с наименьшими координатами
func (c Coord) Origin() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X) * CellSize, float32(c.Y) * CellSize, 0}
}

// Center возвращает центр клетки
func (c Coord) Center() mgl32.Vec3 {
	return c.Origin().Add(mgl32.Vec3{CellSize / 2, CellSize / 2, 0})
}

// inWindow проверяет, попадает ли клетка в окно вокруг center
func (c Coord) inWindow(center Coord) bool {
	dx, dy := c.X-center.X, c.Y-center.Y
	return dx >= -WindowRadius && dx <= WindowRadius && dy >= -WindowRadius && dy <= WindowRadius
}

// Tile - живой тайл земли
type Tile struct {
	Coord    Coord
	Position mgl32.Vec3
	Ground   noisegeneration.GroundKind
	Tint     colorful.Color
}

// TileManager управляет тайлами мира
type TileManager struct {
	tiles map[Coord]*Tile
	// клетки, в которых уже раскладывались сундуки; не очищается при удалении тайлов
	populated map[Coord]struct{}
	last      Coord
	started   bool

	ground worldinterfaces.GroundSampler
	chests worldinterfaces.ChestPopulator
	log    *zap.SugaredLogger
}

// NewTileManager создаёт менеджер тайлов. ground и chests могут быть nil.
func NewTileManager(ground worldinterfaces.GroundSampler, chests worldinterfaces.ChestPopulator, log *zap.SugaredLogger) *TileManager {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &TileManager{
		tiles:     make(map[Coord]*Tile),
		populated: make(map[Coord]struct{}),
		ground:    ground,
		chests:    chests,
		log:       log,
	}
}

// Update пересобирает окно, если опорная точка перешла в другую клетку.
// Первый вызов всегда строит окно. Возвращает число созданных и удалённых тайлов.
func (tm *TileManager) Update(reference mgl32.Vec3, tint colorful.Color) (created, destroyed int) {
	center := CoordOf(reference)
	if tm.started && center == tm.last {
		return 0, 0
	}
	tm.started = true
	tm.last = center

	for c := range tm.tiles {
		if !c.inWindow(center) {
			delete(tm.tiles, c)
			destroyed++
			if tm.chests != nil {
				tm.chests.HideCell(c.Origin())
			}
		}
	}

	for dx := -WindowRadius; dx <= WindowRadius; dx++ {
		for dy := -WindowRadius; dy <= WindowRadius; dy++ {
			c := Coord{X: center.X + dx, Y: center.Y + dy}
			if _, ok := tm.tiles[c]; ok {
				continue
			}
			tm.tiles[c] = tm.newTile(c, tint)
			created++
			tm.populate(c, tint)
		}
	}

	tm.log.Debugw("tile window moved", "center_x", center.X, "center_y", center.Y, "created", created, "destroyed", destroyed)
	return created, destroyed
}

func (tm *TileManager) newTile(c Coord, tint colorful.Color) *Tile {
	t := &Tile{Coord: c, Position: c.Origin(), Tint: tint}
	if tm.ground != nil {
		t.Ground = tm.ground.GroundAt(c.X, c.Y)
	}
	return t
}

// populate раскладывает сундуки в клетке, если этого ещё не делалось,
// иначе возвращает в обзор уже разложенные.
func (tm *TileManager) populate(c Coord, tint colorful.Color) {
	if _, done := tm.populated[c]; done {
		if tm.chests != nil {
			tm.chests.ShowCell(c.Origin(), tint)
		}
		return
	}
	tm.populated[c] = struct{}{}
	if tm.chests == nil {
		return
	}
	n := tm.chests.PopulateCell(c.Origin(), CellSize, tint)
	tm.log.Debugw("cell populated", "x", c.X, "y", c.Y, "chests", n)
}

// Retint перекрашивает все живые тайлы
func (tm *TileManager) Retint(tint colorful.Color) {
	for _, t := range tm.tiles {
		t.Tint = tint
	}
}

// Tile возвращает тайл по координате
func (tm *TileManager) Tile(c Coord) (Tile, bool) {
	t, ok := tm.tiles[c]
	if !ok {
		return Tile{}, false
	}
	return *t, true
}

// Tiles возвращает копии живых тайлов, упорядоченные по координатам
func (tm *TileManager) Tiles() []Tile {
	out := make([]Tile, 0, len(tm.tiles))
	for _, t := range tm.tiles {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Coord.Y != out[j].Coord.Y {
			return out[i].Coord.Y < out[j].Coord.Y
		}
		return out[i].Coord.X < out[j].Coord.X
	})
	return out
}

// Len возвращает число живых тайлов
func (tm *TileManager) Len() int { return len(tm.tiles) }

// Populated сообщает, раскладывались ли уже сундуки в клетке
func (tm *TileManager) Populated(c Coord) bool {
	_, ok := tm.populated[c]
	return ok
}

// Center возвращает текущую центральную клетку окна
func (tm *TileManager) Center() Coord { return tm.last }

// Reset удаляет все тайлы и забывает наполненные клетки
func (tm *TileManager) Reset() {
	tm.tiles = make(map[Coord]*Tile)
	tm.populated = make(map[Coord]struct{})
	tm.last = Coord{}
	tm.started = false
}
