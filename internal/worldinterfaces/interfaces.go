// Package worldinterfaces содержит общие интерфейсы для избегания циклических зависимостей
package worldinterfaces

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/annelo/nightfall/internal/noisegeneration"
)

// ChestPopulator наполняет новую клетку мира сундуками. Реализуется хранилищем сундуков.
type ChestPopulator interface {
	// PopulateCell раскладывает сундуки внутри квадрата со стороной size от угла origin
	// и возвращает их число
	PopulateCell(origin mgl32.Vec3, size float32, tint colorful.Color) int
	// ShowCell вызывается, когда тайл клетки снова попадает в окно
	ShowCell(origin mgl32.Vec3, tint colorful.Color)
	// HideCell вызывается при удалении тайла клетки
	HideCell(origin mgl32.Vec3)
}

// GroundSampler выбирает вариант грунта для клетки сетки
type GroundSampler interface {
	GroundAt(cx, cy int32) noisegeneration.GroundKind
}
